package draw

import (
	"fmt"
	"io"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Canvas is a colour drawing buffer with 2x vertical resolution using half-block characters.
// Game objects draw in logical play-field units; the canvas scales them to terminal pixels.
type Canvas struct {
	termWidth      int              // Actual terminal columns
	termHeight     int              // Actual terminal rows
	subPixelHeight int              // termHeight * 2
	pixels         []colorful.Color // Flat slice: [y * termWidth + x]
	set            []bool           // true if the pixel was drawn this frame
	shown          []bool           // cells written by the previous Render or marked by MarkTextDirty

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offsets for centering the render area.
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
}

// NewCanvas creates a canvas that scales from logical coordinates to terminal pixels.
func NewCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.pixels = make([]colorful.Color, subPixelHeight*termWidth)
		c.set = make([]bool, subPixelHeight*termWidth)
		c.shown = make([]bool, termHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.set)
}

// blend paints a pixel at terminal pixel coordinates. Opacity below 1 mixes
// the colour with whatever is already there (black when empty).
func (c *Canvas) blend(x, y int, col colorful.Color, opacity float64) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight || opacity <= 0 {
		return
	}
	i := y*c.termWidth + x
	if opacity >= 1 {
		c.pixels[i] = col
		c.set[i] = true
		return
	}
	base := colorful.Color{}
	if c.set[i] {
		base = c.pixels[i]
	}
	c.pixels[i] = base.BlendRgb(col, opacity).Clamped()
	c.set[i] = true
}

// SetFloat sets a single pixel at logical coordinates.
func (c *Canvas) SetFloat(x, y float64, col colorful.Color, opacity float64) {
	c.blend(int(math.Floor(x*c.scaleX)), int(math.Floor(y*c.scaleY)), col, opacity)
}

// FillRect fills an axis-aligned rectangle given in logical coordinates.
// Rectangles smaller than a pixel still cover one pixel.
func (c *Canvas) FillRect(x, y, w, h float64, col colorful.Color, opacity float64) {
	x0 := int(math.Floor(x * c.scaleX))
	y0 := int(math.Floor(y * c.scaleY))
	x1 := int(math.Ceil((x+w)*c.scaleX)) - 1
	y1 := int(math.Ceil((y+h)*c.scaleY)) - 1
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			c.blend(px, py, col, opacity)
		}
	}
}

// FillCircle fills a circle given in logical coordinates by sampling pixel centres.
// Circles too small to cover a pixel centre still light the pixel under their centre.
func (c *Canvas) FillCircle(cx, cy, r float64, col colorful.Color, opacity float64) {
	x0 := int(math.Floor((cx - r) * c.scaleX))
	x1 := int(math.Ceil((cx + r) * c.scaleX))
	y0 := int(math.Floor((cy - r) * c.scaleY))
	y1 := int(math.Ceil((cy + r) * c.scaleY))

	r2 := r * r
	drawn := false
	for py := y0; py <= y1; py++ {
		ly := (float64(py)+0.5)/c.scaleY - cy
		for px := x0; px <= x1; px++ {
			lx := (float64(px)+0.5)/c.scaleX - cx
			if lx*lx+ly*ly <= r2 {
				c.blend(px, py, col, opacity)
				drawn = true
			}
		}
	}
	if !drawn {
		c.SetFloat(cx, cy, col, opacity)
	}
}

// MarkTextDirty records that text was written over n cells starting at the
// 1-based canvas position col, row, so the next Render erases them if no
// pixel covers them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	y := row - 1
	if y < 0 || y >= c.termHeight {
		return
	}
	for x := col - 1; x < col-1+n; x++ {
		if x >= 0 && x < c.termWidth {
			c.shown[y*c.termWidth+x] = true
		}
	}
}

// Pixel reports the colour of a terminal pixel and whether it was drawn this frame.
func (c *Canvas) Pixel(x, y int) (colorful.Color, bool) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return colorful.Color{}, false
	}
	i := y*c.termWidth + x
	return c.pixels[i], c.set[i]
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the canvas to the writer using truecolour half-block characters.
// The upper pixel is the foreground of '▀' and the lower pixel its background.
// Cells drawn last frame but empty now are blanked.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 24)

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := (row*2 + 1) * c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.set[topOffset+col]
			bottom := c.set[bottomOffset+col]
			cell := row*c.termWidth + col
			wasShown := c.shown[cell]
			c.shown[cell] = top || bottom

			switch {
			case top && bottom:
				fmt.Fprintf(&c.renderBuf, "\033[%d;%dH%s%s%c", row+1+c.offsetRow, col+1+c.offsetCol,
					fgSeq(c.pixels[topOffset+col]), bgSeq(c.pixels[bottomOffset+col]), BlockUpperHalf)
			case top:
				fmt.Fprintf(&c.renderBuf, "\033[%d;%dH%s\033[49m%c", row+1+c.offsetRow, col+1+c.offsetCol,
					fgSeq(c.pixels[topOffset+col]), BlockUpperHalf)
			case bottom:
				fmt.Fprintf(&c.renderBuf, "\033[%d;%dH%s\033[49m%c", row+1+c.offsetRow, col+1+c.offsetCol,
					fgSeq(c.pixels[bottomOffset+col]), BlockLowerHalf)
			case wasShown:
				fmt.Fprintf(&c.renderBuf, "\033[%d;%dH%s ", row+1+c.offsetRow, col+1+c.offsetCol, ResetStyle)
			}
		}
	}
	c.renderBuf.WriteString(ResetStyle)

	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1
	hasV := c.offsetRow >= 1

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder

	if hasV {
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, strings.Repeat("─", c.termWidth))
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, strings.Repeat("─", c.termWidth))
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, strings.Repeat("─", c.termWidth))
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, strings.Repeat("─", c.termWidth))
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	io.WriteString(w, buf.String())
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to 1-based terminal position (col, row),
// relative to the canvas origin.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1, py/2 + 1
}

func fgSeq(col colorful.Color) string {
	r, g, b := col.RGB255()
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", r, g, b)
}

func bgSeq(col colorful.Color) string {
	r, g, b := col.RGB255()
	return fmt.Sprintf("\033[48;2;%d;%d;%dm", r, g, b)
}
