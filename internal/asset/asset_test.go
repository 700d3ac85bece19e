package asset

import (
	"io"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderLoadsBuiltin(t *testing.T) {
	p := NewProvider(nil, log.New(io.Discard))

	ship := p.Load(Spaceship)
	invader := p.Load(Invader)
	p.Wait()

	s, ok := ship.Ready()
	require.True(t, ok)
	assert.Equal(t, 64.0, s.Width)
	assert.Equal(t, 28.0, s.Height)
	assert.True(t, s.Lit(7, 0))
	assert.False(t, s.Lit(0, 0))

	inv, ok := invader.Ready()
	require.True(t, ok)
	assert.Equal(t, 11, inv.Cols())
}

func TestProviderSharesHandles(t *testing.T) {
	p := NewProvider(nil, log.New(io.Discard))
	a := p.Load(Invader)
	b := p.Load(Invader)
	p.Wait()

	assert.Same(t, a, b)
}

func TestProviderMissingSprite(t *testing.T) {
	p := NewProvider(fstest.MapFS{}, log.New(io.Discard))
	h := p.Load("ghost")
	p.Wait()

	_, ok := h.Ready()
	assert.False(t, ok)
	assert.True(t, h.Failed())
}

func TestProviderRejectsRaggedMask(t *testing.T) {
	fsys := fstest.MapFS{
		"sprites/bad.yaml": &fstest.MapFile{Data: []byte("width: 10\nheight: 10\nrows:\n  - \"##\"\n  - \"#\"\n")},
	}
	p := NewProvider(fsys, log.New(io.Discard))
	h := p.Load("bad")
	p.Wait()

	assert.True(t, h.Failed())
}

func TestHandleResolve(t *testing.T) {
	h := NewHandle()
	_, ok := h.Ready()
	assert.False(t, ok)

	h.Resolve(&Sprite{Name: "x", Width: 1, Height: 1, Rows: []string{"#"}})
	s, ok := h.Ready()
	require.True(t, ok)
	assert.Equal(t, "x", s.Name)

	var nilHandle *Handle
	_, ok = nilHandle.Ready()
	assert.False(t, ok)
}
