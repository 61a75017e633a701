package render

import (
	"bytes"
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"absa_dashboard/internal/domain"
)

const (
	spiralStep   = 0.15 // radians per step
	spiralTurns  = 60   // placement gives up after this many turns
	shrinkFactor = 0.85
	wordPadding  = 2 // points between neighbouring words
)

type box struct{ minX, minY, maxX, maxY float64 }

func (b box) overlaps(o box) bool {
	return b.minX < o.maxX && o.minX < b.maxX && b.minY < o.maxY && o.minY < b.maxY
}

// placement is one word positioned on the canvas.
type placement struct {
	term  string
	size  float64
	x, y  float64 // centre, in points
	color int
}

// WordCloud draws terms, largest first, on a spiral from the canvas centre.
// Font size follows sqrt(count/maxCount); words that cannot fit even at
// the minimum size are dropped.
func (r *Renderer) WordCloud(terms []domain.TermCount, opts domain.CloudOptions) ([]byte, error) {
	if len(terms) == 0 {
		return nil, domain.ErrNoText
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("render: invalid canvas %dx%d", opts.Width, opts.Height)
	}
	if opts.MaxWords > 0 && len(terms) > opts.MaxWords {
		terms = terms[:opts.MaxWords]
	}

	placed := r.layout(terms, float64(opts.Width), float64(opts.Height))

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(opts.Width), vg.Length(opts.Height)),
		vgimg.UseDPI(72), // 1pt == 1px
		vgimg.UseBackgroundColor(r.background),
	)
	dc := draw.New(c)
	for _, p := range placed {
		sty := r.style(p.size)
		sty.Color = r.palette[p.color%len(r.palette)]
		dc.FillText(sty, vg.Point{X: vg.Length(p.x), Y: vg.Length(p.y)}, p.term)
	}

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("render: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) style(size float64) text.Style {
	return text.Style{
		Font:    font.From(r.face, vg.Length(size)),
		XAlign:  text.XCenter,
		YAlign:  text.YCenter,
		Handler: plot.DefaultTextHandler,
	}
}

func (r *Renderer) layout(terms []domain.TermCount, w, h float64) []placement {
	maxCount := float64(terms[0].Count)
	for _, t := range terms {
		maxCount = math.Max(maxCount, float64(t.Count))
	}
	maxFont := math.Max(r.minFont, h/4)

	var (
		out   []placement
		boxes []box
	)
	for i, t := range terms {
		size := r.minFont + (maxFont-r.minFont)*math.Sqrt(float64(t.Count)/maxCount)
		for size >= r.minFont {
			if x, y, b, ok := r.fit(t.Term, size, w, h, boxes); ok {
				out = append(out, placement{term: t.Term, size: size, x: x, y: y, color: i})
				boxes = append(boxes, b)
				break
			}
			size *= shrinkFactor
		}
	}
	return out
}

// fit walks an elliptical Archimedean spiral until the word's bounding box
// lies inside the canvas without touching an earlier word.
func (r *Renderer) fit(term string, size, w, h float64, boxes []box) (float64, float64, box, bool) {
	sty := r.style(size)
	tw := float64(sty.Width(term)) + wordPadding
	th := float64(sty.Height(term)) + wordPadding
	if tw > w || th > h {
		return 0, 0, box{}, false
	}

	cx, cy := w/2, h/2
	aspect := w / h
	for a := 0.0; a < spiralTurns*2*math.Pi; a += spiralStep {
		x := cx + aspect*a*math.Cos(a)
		y := cy + a*math.Sin(a)
		b := box{minX: x - tw/2, minY: y - th/2, maxX: x + tw/2, maxY: y + th/2}
		if b.minX < 0 || b.minY < 0 || b.maxX > w || b.maxY > h {
			continue
		}
		if !collides(b, boxes) {
			return x, y, b, true
		}
	}
	return 0, 0, box{}, false
}

func collides(b box, boxes []box) bool {
	for _, o := range boxes {
		if b.overlaps(o) {
			return true
		}
	}
	return false
}
