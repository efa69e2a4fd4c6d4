package sim

import (
	"fmt"
	"image/color"

	gait "github.com/milosgajdos/go-gaitid"
	"github.com/milosgajdos/go-gaitid/cycle"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// NewReconstructionPlot creates a new plot of one control of a validation
// reconstruction cycle: the measured control as points, the law nominal
// (suffix "*") and the control corrected to the mean sensors (suffix "0")
// as lines over the cycle time axis.
// It returns error if recon is nil, any of the three columns is missing or
// a plotter fails to be created.
func NewReconstructionPlot(recon *cycle.Cycle, control string) (*plot.Plot, error) {
	if recon == nil {
		return nil, fmt.Errorf("nil reconstruction cycle: %w", gait.ErrConfiguration)
	}

	measured, err := recon.Column(control)
	if err != nil {
		return nil, err
	}
	starred, err := recon.Column(control + "*")
	if err != nil {
		return nil, err
	}
	zeroed, err := recon.Column(control + "0")
	if err != nil {
		return nil, err
	}

	time := recon.Time()

	p := plot.New()

	p.Title.Text = control
	p.X.Label.Text = "time"
	p.Y.Label.Text = control

	legend := plot.NewLegend()
	legend.Top = true
	p.Legend = legend

	// Make a scatter plotter for the measured control
	measScatter, err := plotter.NewScatter(makePoints(time, measured))
	if err != nil {
		return nil, fmt.Errorf("failed to create scatter: %v", err)
	}
	measScatter.GlyphStyle.Color = color.RGBA{R: 169, G: 169, B: 169, A: 255}
	measScatter.Shape = draw.CrossGlyph{}
	measScatter.GlyphStyle.Radius = vg.Points(2)

	p.Add(measScatter)
	p.Legend.Add("measured", measScatter)

	// Make a line plotter for the law nominal
	starLine, err := plotter.NewLine(makePoints(time, starred))
	if err != nil {
		return nil, fmt.Errorf("failed to create line: %v", err)
	}
	starLine.Color = color.RGBA{R: 255, B: 128, A: 255}

	p.Add(starLine)
	p.Legend.Add(control+"*", starLine)

	// Make a line plotter for the mean sensor corrected control
	zeroLine, err := plotter.NewLine(makePoints(time, zeroed))
	if err != nil {
		return nil, fmt.Errorf("failed to create line: %v", err)
	}
	zeroLine.Color = color.RGBA{G: 155, A: 255}
	zeroLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(zeroLine)
	p.Legend.Add(control+"0", zeroLine)

	return p, nil
}

func makePoints(time []float64, vals *mat.VecDense) plotter.XYs {
	pts := make(plotter.XYs, len(time))
	for i := range time {
		pts[i].X = time[i]
		pts[i].Y = vals.AtVec(i)
	}

	return pts
}
