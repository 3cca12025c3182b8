package draw

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	// DefaultFontDir is where font names are resolved when no directory is given.
	DefaultFontDir = "assets/fonts"

	// DefaultFont is always available, registered from the Go font family.
	DefaultFont = "goregular"

	fontExt = ".ttf"
)

// FontSet resolves font names to parsed TrueType fonts. A name maps to
// <dir>/<name>.ttf unless it was registered from bytes. Parsed fonts are
// cached; faces are built per call since a face carries its own glyph
// cache and is not safe to share between canvases.
//
// FontSet is safe for concurrent use.
type FontSet struct {
	dir string

	mu    sync.Mutex
	fonts map[string]*truetype.Font
}

// NewFontSet returns a FontSet reading from dir, with the Go fonts
// registered as "goregular" and "gomono".
func NewFontSet(dir string) *FontSet {
	if dir == "" {
		dir = DefaultFontDir
	}
	s := &FontSet{dir: dir, fonts: map[string]*truetype.Font{}}
	// Embedded fonts always parse.
	_ = s.Register("goregular", goregular.TTF)
	_ = s.Register("gomono", gomono.TTF)
	return s
}

// Dir returns the directory fonts are resolved in.
func (s *FontSet) Dir() string { return s.dir }

// Path returns the file a font name resolves to.
func (s *FontSet) Path(name string) string {
	return filepath.Join(s.dir, name+fontExt)
}

// Register adds a font from TrueType data, replacing any font of the same name.
func (s *FontSet) Register(name string, data []byte) error {
	f, err := truetype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", name, err)
	}
	s.mu.Lock()
	s.fonts[name] = f
	s.mu.Unlock()
	return nil
}

// Font returns the parsed font for name, loading it from disk on first use.
func (s *FontSet) Font(name string) (*truetype.Font, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.fonts[name]; ok {
		return f, nil
	}

	path := s.Path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (looked for %s)", ErrFontNotFound, name, path)
		}
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	s.fonts[name] = f
	Logger().Debug("font loaded", "name", name, "path", path)
	return f, nil
}

// Face returns a new face for name at size pixels.
func (s *FontSet) Face(name string, size int) (font.Face, error) {
	if size < MinFontSize {
		return nil, fmt.Errorf("%w: %d", ErrFontSize, size)
	}
	f, err := s.Font(name)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
