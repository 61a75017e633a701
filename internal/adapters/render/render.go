// Package render draws dashboard images with gonum/plot: a word cloud per
// platform and a bar chart of the platform ranking. Output is PNG.
package render

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
)

// tab10 is the matplotlib "tab10" qualitative palette.
var tab10 = []color.Color{
	color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	color.RGBA{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
	color.RGBA{R: 0xe3, G: 0x77, B: 0xc2, A: 0xff},
	color.RGBA{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
	color.RGBA{R: 0xbc, G: 0xbd, B: 0x22, A: 0xff},
	color.RGBA{R: 0x17, G: 0xbe, B: 0xcf, A: 0xff},
}

// Renderer implements domain.Renderer. The zero value is not usable; call New.
type Renderer struct {
	palette    []color.Color
	face       font.Font
	background color.Color
	minFont    float64
}

func New() *Renderer {
	return &Renderer{
		palette:    tab10,
		face:       font.Font{Typeface: plot.DefaultFont.Typeface, Variant: "Sans"},
		background: color.White,
		minFont:    8,
	}
}
