package main

import (
	"fmt"
	"image/color"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
	"golang.org/x/net/html"

	"slapimage/draw"
)

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func isRTF(text string) bool {
	return strings.HasPrefix(text, "{\\rtf") || strings.Contains(text, "\\rtf1")
}

func isHTML(text string) bool {
	trimmed := strings.TrimSpace(text)
	return strings.HasPrefix(trimmed, "<") &&
		(strings.Contains(text, "<html") || strings.Contains(text, "<body") || strings.Contains(text, "<div") || strings.Contains(text, "<p"))
}

// extractTextFromRTF keeps the plain text of an RTF document. \par and
// \line become newlines, \tab a tab, \'hh an escaped byte.
func extractTextFromRTF(rtf string) string {
	var result strings.Builder
	b := []byte(rtf)
	for i := 0; i < len(b); i++ {
		switch c := b[i]; {
		case c == '{' || c == '}' || c == '\r' || c == '\n':
		case c != '\\':
			result.WriteByte(c)
		case i+1 >= len(b):
		case b[i+1] == '\\' || b[i+1] == '{' || b[i+1] == '}':
			result.WriteByte(b[i+1])
			i++
		case b[i+1] == '\'' && i+3 < len(b):
			if v, err := strconv.ParseUint(string(b[i+2:i+4]), 16, 8); err == nil {
				result.WriteByte(byte(v))
			}
			i += 3
		default:
			j := i + 1
			for j < len(b) && isASCIILetter(b[j]) {
				j++
			}
			word := string(b[i+1 : j])
			for j < len(b) && (b[j] == '-' || (b[j] >= '0' && b[j] <= '9')) {
				j++
			}
			if j < len(b) && b[j] == ' ' {
				j++
			}
			switch word {
			case "par", "line":
				result.WriteByte('\n')
			case "tab":
				result.WriteByte('\t')
			}
			i = j - 1
		}
	}
	return result.String()
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// extractTextFromHTML keeps the text nodes of an HTML fragment, turning
// block ends and <br> into newlines.
func extractTextFromHTML(doc string) string {
	var result strings.Builder
	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return result.String()
		case html.TextToken:
			result.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); string(name) == "br" {
				result.WriteByte('\n')
			}
		case html.EndTagToken:
			switch name, _ := z.TagName(); string(name) {
			case "p", "div", "li", "h1", "h2", "h3", "tr":
				result.WriteByte('\n')
			}
		}
	}
}

func cleanClipboardText(text string) string {
	switch {
	case isRTF(text):
		text = extractTextFromRTF(text)
	case isHTML(text):
		text = extractTextFromHTML(text)
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\t' || r >= 32 {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}

// parseColor accepts a CSS colour name, #rgb, #rrggbb or #rrggbbaa.
func parseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return nil, fmt.Errorf("colour %q: want a name or #hex", s)
	}
	switch len(s) {
	case 4, 7, 9:
	default:
		return nil, fmt.Errorf("colour %q: want #rgb, #rrggbb or #rrggbbaa", s)
	}
	alpha := uint8(255)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("colour %q: bad alpha", s)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// parseCoords parses "xyxy:x1,y1,x2,y2" or "xywh:x,y,w,h".
func parseCoords(s string) (draw.Coords, error) {
	kind, values, ok := strings.Cut(s, ":")
	if !ok {
		return draw.Coords{}, fmt.Errorf("coords %q: want kind:a,b,c,d", s)
	}
	parts := strings.Split(values, ",")
	if len(parts) != 4 {
		return draw.Coords{}, fmt.Errorf("coords %q: want four values", s)
	}
	c := draw.Coords{Kind: draw.CoordsKind(strings.ToLower(strings.TrimSpace(kind)))}
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return draw.Coords{}, fmt.Errorf("coords %q: %w", s, err)
		}
		c.V[i] = v
	}
	return c, nil
}

func formatCoords(c draw.Coords) string {
	return fmt.Sprintf("%s:%d,%d,%d,%d", c.Kind, c.V[0], c.V[1], c.V[2], c.V[3])
}
