package main

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// --- Heading Plot ---

// headingSeries returns the heading shown on every frame and the frames on
// which the camera emitted a new heading.
func headingSeries(views []view) (shown, emitted plotter.XYs) {
	shown = make(plotter.XYs, 0, len(views))
	for _, v := range views {
		x := float64(v.Entry.Frame)
		shown = append(shown, plotter.XY{X: x, Y: v.Heading})
		if v.Entry.Camera != nil && v.Entry.Camera.Heading != nil {
			emitted = append(emitted, plotter.XY{X: x, Y: *v.Entry.Camera.Heading})
		}
	}
	return shown, emitted
}

func writeHeadingPlot(path string, views []view) error {
	p := plot.New()
	p.Title.Text = "Camera heading"
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Heading (°)"

	shown, emitted := headingSeries(views)
	if len(shown) == 0 {
		return fmt.Errorf("no frames to plot")
	}

	line, err := plotter.NewLine(shown)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{R: 30, G: 120, B: 220, A: 255}
	line.Width = vg.Points(1)
	p.Add(line)
	p.Legend.Add("shown", line)

	if len(emitted) > 0 {
		scatter, err := plotter.NewScatter(emitted)
		if err != nil {
			return err
		}
		scatter.GlyphStyle.Color = color.RGBA{R: 220, G: 60, B: 30, A: 255}
		p.Add(scatter)
		p.Legend.Add("emitted", scatter)
	}

	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save heading plot: %w", err)
	}
	return nil
}
