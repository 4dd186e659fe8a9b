// Package report renders training diagnostics.
package report

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/toxiclf/pkg/errors"
	"github.com/YuminosukeSato/toxiclf/sklearn/model_selection"
)

// SaveLossCurve plots the per-iteration mean log-loss and writes it to
// filename. The image format follows the extension (.png, .svg, .pdf).
func SaveLossCurve(losses []float64, filename string) error {
	if len(losses) == 0 {
		return errors.NewModelError("report.SaveLossCurve", "empty data", errors.ErrEmptyData)
	}

	p := plot.New()
	p.Title.Text = "Training loss"
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = "Mean log-loss"

	pts := make(plotter.XYs, len(losses))
	for i, loss := range losses {
		pts[i].X = float64(i)
		pts[i].Y = loss
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "build loss line")
	}
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line, plotter.NewGrid())

	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return errors.Wrapf(err, "save loss curve %s", filename)
	}
	return nil
}

// WriteCVSummary prints one line per fold followed by the mean and
// standard deviation of the accuracy.
func WriteCVSummary(w io.Writer, res *model_selection.CVResult) error {
	if res == nil {
		return errors.NewValidationError("result", "must not be nil", nil)
	}
	for i, score := range res.TestScores {
		if _, err := fmt.Fprintf(w, "fold %d: accuracy=%.4f auc=%.4f fit=%.3fs\n",
			i, score, res.TestAUC[i], res.FitTimes[i]); err != nil {
			return errors.WithStack(err)
		}
	}
	_, err := fmt.Fprintf(w, "mean accuracy=%.4f (+/- %.4f) mean auc=%.4f\n",
		res.GetMeanScore(), res.GetStdScore(), res.GetMeanAUC())
	return errors.WithStack(err)
}
