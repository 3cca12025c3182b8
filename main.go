package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"slapimage/draw"
)

const usage = `usage: slapimage <command> [flags]

commands:
  text      draw one text field onto an image
  batch     draw the fields of a YAML layout onto an image
  preview   edit a text field interactively and save it as PNG

run "slapimage <command> -h" for the flags of a command.
`

var errUsage = errors.New("bad usage")

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "slapimage: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return errUsage
	}
	switch args[0] {
	case "text":
		return runText(args[1:], stderr)
	case "batch":
		return runBatch(args[1:], stderr)
	case "preview":
		return runPreview(args[1:], stderr)
	case "help", "-h", "--help":
		fmt.Fprint(stderr, usage)
		return nil
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return errUsage
	}
}

// commonFlags are shared by every command.
type commonFlags struct {
	config  string
	verbose bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.config, "config", "", "config file (default ~/"+configFileName+")")
	fs.BoolVar(&c.verbose, "v", false, "log fitting steps")
}

// setup installs the logger and loads the config.
func (c *commonFlags) setup(stderr io.Writer) (*Config, *draw.FontSet, error) {
	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	draw.SetLogger(logger)

	cfg, err := loadConfig(c.config)
	if err != nil {
		return nil, nil, err
	}
	return cfg, draw.NewFontSet(cfg.FontDir), nil
}

// canvasFlags select the template image or blank canvas.
type canvasFlags struct {
	template   string
	width      int
	height     int
	background string
}

func (c *canvasFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.template, "in", "", "template image (PNG, JPEG or GIF)")
	fs.IntVar(&c.width, "width", 500, "blank canvas width when no template is given")
	fs.IntVar(&c.height, "height", 500, "blank canvas height when no template is given")
	fs.StringVar(&c.background, "bg", "", "blank canvas colour (default transparent)")
}

func (c *canvasFlags) spec() (canvasSpec, error) {
	spec := canvasSpec{Template: c.template, Width: c.width, Height: c.height}
	if c.background != "" {
		bg, err := parseColor(c.background)
		if err != nil {
			return canvasSpec{}, fmt.Errorf("-bg: %w", err)
		}
		spec.Background = bg
	}
	return spec, nil
}

// fieldFlags describe one text field.
type fieldFlags struct {
	coords      string
	text        string
	clip        bool
	anchor      string
	font        string
	fill        string
	maxSize     int
	breakText   bool
	lineHeight  float64
	inverted    bool
	strokeWidth int
	strokeFill  string
}

func (f *fieldFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.coords, "coords", "", "field as xyxy:x1,y1,x2,y2 or xywh:x,y,w,h")
	fs.StringVar(&f.text, "text", "", "text to draw")
	fs.BoolVar(&f.clip, "clip", false, "read the text from the clipboard")
	fs.StringVar(&f.anchor, "anchor", "mm", "anchor code, e.g. la, mm, rd or mma for wrapped text")
	fs.StringVar(&f.font, "font", "", "font name under the font directory (default from config)")
	fs.StringVar(&f.fill, "fill", "black", "text colour")
	fs.IntVar(&f.maxSize, "max-size", 0, "largest font size tried (default from config)")
	fs.BoolVar(&f.breakText, "break", false, "word-wrap the text to the field")
	fs.Float64Var(&f.lineHeight, "line-height", 0, "line height multiplier for wrapped text (default from config)")
	fs.BoolVar(&f.inverted, "inverted", false, "draw the text upside down")
	fs.IntVar(&f.strokeWidth, "stroke-width", 0, "outline width in pixels")
	fs.StringVar(&f.strokeFill, "stroke-fill", "white", "outline colour")
}

func (f *fieldFlags) spec() (fieldSpec, error) {
	if f.coords == "" {
		return fieldSpec{}, fmt.Errorf("-coords is required")
	}
	coords, err := parseCoords(f.coords)
	if err != nil {
		return fieldSpec{}, err
	}
	text := f.text
	if f.clip {
		raw, err := readClipboardText()
		if err != nil {
			return fieldSpec{}, fmt.Errorf("read clipboard: %w", err)
		}
		text = cleanClipboardText(raw)
	}
	return fieldSpec{
		Coords:      coordsSpec{coords},
		Text:        text,
		Anchor:      f.anchor,
		Font:        f.font,
		Fill:        f.fill,
		MaxFontSize: f.maxSize,
		BreakText:   f.breakText,
		LineHeight:  f.lineHeight,
		Inverted:    f.inverted,
		StrokeWidth: f.strokeWidth,
		StrokeFill:  f.strokeFill,
	}, nil
}

func runText(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("text", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		common commonFlags
		canvas canvasFlags
		field  fieldFlags
	)
	common.register(fs)
	canvas.register(fs)
	field.register(fs)
	output := fs.String("out", "out.png", "output PNG")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, fonts, err := common.setup(stderr)
	if err != nil {
		return err
	}
	cs, err := canvas.spec()
	if err != nil {
		return err
	}
	fspec, err := field.spec()
	if err != nil {
		return err
	}

	img, err := renderCanvas(cs, []fieldSpec{fspec}, cfg, fonts)
	if err != nil {
		return err
	}
	path := cfg.GetSavePath(*output)
	if err := savePNG(path, img); err != nil {
		return err
	}
	slog.Info("saved", "path", path)
	return nil
}

func runBatch(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	layoutPath := fs.String("layout", "", "YAML layout document")
	output := fs.String("out", "", "output PNG (default: the layout's output)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *layoutPath == "" {
		return fmt.Errorf("-layout is required")
	}

	cfg, fonts, err := common.setup(stderr)
	if err != nil {
		return err
	}
	doc, err := loadLayout(*layoutPath)
	if err != nil {
		return err
	}
	out := *output
	if out == "" {
		out = doc.Output
	}
	if out == "" {
		return fmt.Errorf("no output: set -out or output in %s", *layoutPath)
	}

	img, err := renderLayout(doc, cfg, fonts)
	if err != nil {
		return err
	}
	path := cfg.GetSavePath(out)
	if err := savePNG(path, img); err != nil {
		return err
	}
	slog.Info("saved", "path", path, "fields", len(doc.Fields))
	return nil
}

func runPreview(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		common commonFlags
		canvas canvasFlags
		field  fieldFlags
	)
	common.register(fs)
	canvas.register(fs)
	field.register(fs)
	output := fs.String("out", "preview.png", "output PNG written on ctrl+s")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if field.coords == "" {
		field.coords = fmt.Sprintf("xyxy:0,0,%d,%d", canvas.width, canvas.height)
	}

	cfg, fonts, err := common.setup(io.Discard)
	if err != nil {
		return err
	}
	cs, err := canvas.spec()
	if err != nil {
		return err
	}
	fspec, err := field.spec()
	if err != nil {
		return err
	}
	m, err := initialModel(cfg, fonts, cs, fspec, cfg.GetSavePath(*output))
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// renderCanvas loads the canvas and draws fields onto it.
func renderCanvas(cs canvasSpec, fields []fieldSpec, cfg *Config, fonts *draw.FontSet) (*image.RGBA, error) {
	img, err := loadCanvas(cs)
	if err != nil {
		return nil, err
	}
	d := draw.NewDrawer(img, fonts, draw.WithDefaultFont(cfg.DefaultFont))
	for i, f := range fields {
		if err := drawField(d, f, cfg); err != nil {
			if len(fields) == 1 {
				return nil, err
			}
			return nil, fmt.Errorf("field %d (%s): %w", i, f.Coords, err)
		}
	}
	return img, nil
}
