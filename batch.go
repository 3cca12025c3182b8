package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"slapimage/draw"
)

// layoutDoc is a batch of text fields drawn in order onto one canvas.
type layoutDoc struct {
	Template   string      `yaml:"template"`
	Width      int         `yaml:"width"`
	Height     int         `yaml:"height"`
	Background string      `yaml:"background"`
	Output     string      `yaml:"output"`
	Fields     []fieldSpec `yaml:"fields"`
}

type fieldSpec struct {
	Coords      coordsSpec `yaml:"coords"`
	Text        string     `yaml:"text"`
	Anchor      string     `yaml:"anchor"`
	Font        string     `yaml:"font"`
	Fill        string     `yaml:"fill"`
	MaxFontSize int        `yaml:"max_font_size"`
	BreakText   bool       `yaml:"break_text"`
	LineHeight  float64    `yaml:"line_height"`
	Inverted    bool       `yaml:"inverted"`
	StrokeWidth int        `yaml:"stroke_width"`
	StrokeFill  string     `yaml:"stroke_fill"`
}

// coordsSpec reads coordinates written as [kind, a, b, c, d].
type coordsSpec struct {
	draw.Coords
}

func (c *coordsSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode || len(value.Content) != 5 {
		return fmt.Errorf("line %d: coords must be [xyxy|xywh, a, b, c, d]", value.Line)
	}
	c.Kind = draw.CoordsKind(strings.ToLower(value.Content[0].Value))
	for i, n := range value.Content[1:] {
		if err := n.Decode(&c.V[i]); err != nil {
			return fmt.Errorf("line %d: coords value %d: %w", n.Line, i+1, err)
		}
	}
	return nil
}

func loadLayout(path string) (*layoutDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	var doc layoutDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", path, err)
	}
	if len(doc.Fields) == 0 {
		return nil, fmt.Errorf("layout %s has no fields", path)
	}
	// Relative template paths are resolved against the layout file.
	if doc.Template != "" && !filepath.IsAbs(doc.Template) {
		doc.Template = filepath.Join(filepath.Dir(path), doc.Template)
	}
	return &doc, nil
}

func (doc *layoutDoc) canvasSpec() (canvasSpec, error) {
	spec := canvasSpec{Template: doc.Template, Width: doc.Width, Height: doc.Height}
	if doc.Background != "" {
		bg, err := parseColor(doc.Background)
		if err != nil {
			return canvasSpec{}, fmt.Errorf("background: %w", err)
		}
		spec.Background = bg
	}
	return spec, nil
}

// renderLayout draws every field of doc and returns the canvas. The first
// failing field aborts the batch.
func renderLayout(doc *layoutDoc, cfg *Config, fonts *draw.FontSet) (*image.RGBA, error) {
	spec, err := doc.canvasSpec()
	if err != nil {
		return nil, err
	}
	return renderCanvas(spec, doc.Fields, cfg, fonts)
}

// style builds the draw style of f. A missing fill is left nil for the
// drawer to reject.
func (f fieldSpec) style() (draw.Style, error) {
	var style draw.Style
	if f.Fill != "" {
		fill, err := parseColor(f.Fill)
		if err != nil {
			return draw.Style{}, fmt.Errorf("fill: %w", err)
		}
		style.Fill = fill
	}
	if f.StrokeWidth > 0 {
		stroke, err := parseColor(f.StrokeFill)
		if err != nil {
			return draw.Style{}, fmt.Errorf("stroke_fill: %w", err)
		}
		style.Extra = map[string]any{
			draw.StyleStrokeWidth: f.StrokeWidth,
			draw.StyleStrokeFill:  stroke,
		}
	}
	return style, nil
}

// textOptions fills unset sizing options from cfg.
func (f fieldSpec) textOptions(cfg *Config) []draw.TextOption {
	maxSize := f.MaxFontSize
	if maxSize == 0 {
		maxSize = cfg.MaxFontSize
	}
	lineHeight := f.LineHeight
	if lineHeight == 0 {
		lineHeight = cfg.LineHeight
	}
	return []draw.TextOption{
		draw.WithMaxFontSize(maxSize),
		draw.WithBreakText(f.BreakText),
		draw.WithLineHeight(lineHeight),
		draw.WithInverted(f.Inverted),
	}
}

func drawField(d *draw.Drawer, f fieldSpec, cfg *Config) error {
	style, err := f.style()
	if err != nil {
		return err
	}
	return d.Text(f.Coords.Coords, f.Text, f.Anchor, f.Font, style, f.textOptions(cfg)...)
}

// planField fits f without drawing, for status reporting.
func planField(d *draw.Drawer, f fieldSpec, cfg *Config) (draw.Layout, error) {
	return d.Plan(f.Coords.Coords, f.Text, f.Anchor, f.Font, f.textOptions(cfg)...)
}
