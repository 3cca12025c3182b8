package draw

import (
	"errors"
	"testing"
)

func TestParseTextAnchor(t *testing.T) {
	tests := []struct {
		anchor    string
		multiline bool
		want      textAnchor
		wantErr   bool
	}{
		{anchor: "la", want: textAnchor{line: Anchor{'l', 'a'}}},
		{anchor: "rd", want: textAnchor{line: Anchor{'r', 'd'}}},
		{anchor: "mm", multiline: true, want: textAnchor{line: Anchor{'m', 'm'}, block: 'm'}},
		{anchor: "mma", multiline: true, want: textAnchor{line: Anchor{'m', 'm'}, block: 'a'}},
		{anchor: "lad", multiline: true, want: textAnchor{line: Anchor{'l', 'a'}, block: 'd'}},
		{anchor: "mma", wantErr: true},
		{anchor: "mmaa", multiline: true, wantErr: true},
		{anchor: "mmx", multiline: true, wantErr: true},
		{anchor: "m", wantErr: true},
		{anchor: "", wantErr: true},
		{anchor: "xa", wantErr: true},
		{anchor: "lx", wantErr: true},
		{anchor: "am", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseTextAnchor(tt.anchor, tt.multiline)
		if tt.wantErr {
			if !errors.Is(err, ErrAnchor) {
				t.Errorf("parseTextAnchor(%q, %v): got %v, want ErrAnchor", tt.anchor, tt.multiline, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseTextAnchor(%q, %v): %v", tt.anchor, tt.multiline, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseTextAnchor(%q, %v) = %+v, want %+v", tt.anchor, tt.multiline, got, tt.want)
		}
	}
}

func TestAnchorMirror(t *testing.T) {
	tests := map[string]string{"la": "ra", "mm": "mm", "rd": "ld", "lm": "rm"}
	for in, want := range tests {
		a, _ := ParseAnchor(in)
		if got := a.Mirror().String(); got != want {
			t.Errorf("%s.Mirror() = %s, want %s", in, got, want)
		}
	}
}
