// Package asset loads sprite masks in the background. Entities hold a Handle
// and poll it each tick; nothing ever waits for a sprite to arrive.
package asset

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Built-in sprite names.
const (
	Spaceship = "spaceship"
	Invader   = "invader"
)

//go:embed sprites/*.yaml
var builtin embed.FS

// Sprite is a text-art mask scaled to a logical size.
// Any rune other than a space or '.' in Rows is a lit cell.
type Sprite struct {
	Name   string   `yaml:"name"`
	Width  float64  `yaml:"width"`
	Height float64  `yaml:"height"`
	Color  string   `yaml:"color"`
	Rows   []string `yaml:"rows"`
}

// Validate checks the sprite has a positive size and a rectangular mask.
func (s *Sprite) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("sprite %q: size must be positive, got %vx%v", s.Name, s.Width, s.Height)
	}
	if len(s.Rows) == 0 {
		return fmt.Errorf("sprite %q: no rows", s.Name)
	}
	cols := len([]rune(s.Rows[0]))
	for i, row := range s.Rows {
		if n := len([]rune(row)); n != cols {
			return fmt.Errorf("sprite %q: row %d has %d cells, want %d", s.Name, i, n, cols)
		}
	}
	if cols == 0 {
		return fmt.Errorf("sprite %q: empty rows", s.Name)
	}
	return nil
}

// Cols returns the mask width in cells.
func (s *Sprite) Cols() int {
	if len(s.Rows) == 0 {
		return 0
	}
	return len([]rune(s.Rows[0]))
}

// Lit reports whether the mask cell at col, row is filled.
func (s *Sprite) Lit(col, row int) bool {
	if row < 0 || row >= len(s.Rows) {
		return false
	}
	r := []rune(s.Rows[row])
	if col < 0 || col >= len(r) {
		return false
	}
	return r[col] != ' ' && r[col] != '.'
}

// Handle is a sprite that may not have loaded yet.
type Handle struct {
	sprite atomic.Pointer[Sprite]
	failed atomic.Bool
}

// NewHandle returns an unresolved handle.
func NewHandle() *Handle {
	return &Handle{}
}

// Ready returns the sprite once it has loaded.
func (h *Handle) Ready() (*Sprite, bool) {
	if h == nil {
		return nil, false
	}
	s := h.sprite.Load()
	return s, s != nil
}

// Resolve publishes the loaded sprite.
func (h *Handle) Resolve(s *Sprite) {
	h.sprite.Store(s)
}

// Failed reports whether loading gave up. A failed handle never becomes ready.
func (h *Handle) Failed() bool {
	return h != nil && h.failed.Load()
}

// Provider loads sprites from a filesystem on background goroutines.
// Each name is loaded at most once and its Handle shared by every caller.
type Provider struct {
	fsys   fs.FS
	logger *log.Logger

	mu      sync.Mutex
	handles map[string]*Handle
	wg      sync.WaitGroup
}

// NewProvider creates a provider reading "sprites/<name>.yaml" from fsys.
// A nil fsys uses the sprites compiled into the binary.
func NewProvider(fsys fs.FS, logger *log.Logger) *Provider {
	if fsys == nil {
		fsys = builtin
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Provider{
		fsys:    fsys,
		logger:  logger.WithPrefix("assets"),
		handles: make(map[string]*Handle),
	}
}

// Load returns the handle for name, starting the load on first use.
func (p *Provider) Load(name string) *Handle {
	p.mu.Lock()
	defer p.mu.Unlock()

	if h, ok := p.handles[name]; ok {
		return h
	}
	h := NewHandle()
	p.handles[name] = h

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		s, err := p.read(name)
		if err != nil {
			h.failed.Store(true)
			p.logger.Warn("sprite unavailable, using placeholder", "name", name, "err", err)
			return
		}
		h.Resolve(s)
		p.logger.Debug("sprite loaded", "name", name, "size", fmt.Sprintf("%vx%v", s.Width, s.Height))
	}()
	return h
}

// Wait blocks until every started load has finished.
func (p *Provider) Wait() {
	p.wg.Wait()
}

func (p *Provider) read(name string) (*Sprite, error) {
	data, err := fs.ReadFile(p.fsys, "sprites/"+name+".yaml")
	if err != nil {
		return nil, err
	}
	var s Sprite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode sprite %q: %w", name, err)
	}
	if s.Name == "" {
		s.Name = name
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
