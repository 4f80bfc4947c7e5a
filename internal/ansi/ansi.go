package ansi

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

const (
	upperHalf = '▀'
	reset     = "\x1b[0m"
)

// Mode selects the escape sequences used for colour
type Mode int

const (
	// TrueColor writes 24-bit RGB sequences
	TrueColor Mode = iota
	// Palette256 maps every pixel onto the xterm 256-colour palette
	Palette256
)

// ModeFor picks a mode from the value of $COLORTERM
func ModeFor(colorterm string) Mode {
	switch strings.ToLower(colorterm) {
	case "truecolor", "24bit":
		return TrueColor
	default:
		return Palette256
	}
}

// FromImage renders img as width x height cells. Each cell is an upper half
// block: the foreground paints the top pixel and the background the bottom one.
func FromImage(img image.Image, width, height int, mode Mode) string {
	scaled := resize.Resize(uint(width), uint(height*2), img, resize.Lanczos3)
	b := scaled.Bounds()

	var sb strings.Builder
	for row := 0; row < height; row++ {
		y := b.Min.Y + row*2
		for x := b.Min.X; x < b.Min.X+width; x++ {
			sb.WriteString(mode.cell(pixel(scaled, x, y), pixel(scaled, x, y+1)))
		}
		sb.WriteString(reset)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (m Mode) cell(top, bottom colorful.Color) string {
	if m == Palette256 {
		return fmt.Sprintf("\x1b[38;5;%dm\x1b[48;5;%dm%c", nearest(top), nearest(bottom), upperHalf)
	}
	tr, tg, tb := top.Clamped().RGB255()
	br, bg, bb := bottom.Clamped().RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c", tr, tg, tb, br, bg, bb, upperHalf)
}

// pixel reads a colour, treating transparent or out-of-range pixels as black
func pixel(img image.Image, x, y int) colorful.Color {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return colorful.Color{}
	}
	c, ok := colorful.MakeColor(img.At(x, y))
	if !ok {
		return colorful.Color{}
	}
	return c
}

// palette holds xterm colours 16-255: the 6x6x6 cube followed by the grey ramp
var palette = func() [240]colorful.Color {
	var p [240]colorful.Color
	levels := [6]uint8{0, 95, 135, 175, 215, 255}
	for i := 0; i < 216; i++ {
		p[i] = colorful.Color{
			R: float64(levels[i/36]) / 255,
			G: float64(levels[(i/6)%6]) / 255,
			B: float64(levels[i%6]) / 255,
		}
	}
	for i := 0; i < 24; i++ {
		v := float64(8+10*i) / 255
		p[216+i] = colorful.Color{R: v, G: v, B: v}
	}
	return p
}()

// nearest returns the palette index closest to c in Lab space
func nearest(c colorful.Color) int {
	c = c.Clamped()
	best, bestDist := 0, math.MaxFloat64
	for i, p := range palette {
		if d := c.DistanceLab(p); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best + 16
}

// Strip removes ANSI escape sequences from a string
func Strip(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		switch {
		case inEscape:
			inEscape = c != 'm'
		case c == '\033':
			inEscape = true
		default:
			result.WriteRune(c)
		}
	}
	return result.String()
}

// Width is the number of visible runes in s
func Width(s string) int {
	return len([]rune(Strip(s)))
}
