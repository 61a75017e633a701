package render

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"absa_dashboard/internal/domain"
)

const (
	rankingWidth  = 6 * vg.Inch
	rankingHeight = 4 * vg.Inch
	maxScore      = 5
)

// RankingChart draws one bar per platform in ranking order, labelled with its score.
func (r *Renderer) RankingChart(scores []domain.PlatformScore) ([]byte, error) {
	if len(scores) == 0 {
		return nil, fmt.Errorf("render: no scores to chart")
	}

	p := plot.New()
	p.Title.Text = "Top Rated Platforms"
	p.Y.Label.Text = "Average sentiment (1-5)"
	p.Y.Min = 0
	p.Y.Max = maxScore + 0.5

	values := make(plotter.Values, len(scores))
	names := make([]string, len(scores))
	xys := make(plotter.XYs, len(scores))
	labels := make([]string, len(scores))
	for i, s := range scores {
		values[i] = s.Score
		names[i] = fmt.Sprintf("%d. %s", s.Rank, displayName(s))
		xys[i] = plotter.XY{X: float64(i), Y: s.Score + 0.1}
		labels[i] = fmt.Sprintf("%.2f", s.Score)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return nil, fmt.Errorf("render: bar chart: %w", err)
	}
	bars.Color = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)

	lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return nil, fmt.Errorf("render: labels: %w", err)
	}
	for i := range lbl.TextStyle {
		lbl.TextStyle[i].XAlign = text.XCenter
	}
	p.Add(lbl)

	wt, err := p.WriterTo(rankingWidth, rankingHeight, "png")
	if err != nil {
		return nil, fmt.Errorf("render: writer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("render: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func displayName(s domain.PlatformScore) string {
	if s.Name != "" {
		return s.Name
	}
	return string(s.Platform)
}
