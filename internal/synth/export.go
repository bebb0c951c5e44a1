package synth

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"fitlab/domain/playground"

	"github.com/xuri/excelize/v2"
)

// Sheet names used by the workbook export
const (
	SheetTraining = "training"
	SheetTruth    = "truth"
	SheetModel    = "model"
	SheetSummary  = "summary"
)

// Export bundles everything one chart shows, ready to be written out
type Export struct {
	Training    *playground.TrainingSet
	Truth       playground.PlotLine
	Model       playground.PlotLine
	Complexity  int
	Penalty     playground.Penalty
	Description string
	Regime      playground.Regime
}

// WriteCSV writes the training set as "x,y" rows
func WriteCSV(path string, ts *playground.TrainingSet) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeCSV(f, ts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// EncodeCSV streams the training set as CSV. Values are printed with the
// shortest representation that parses back to the same float.
func EncodeCSV(out io.Writer, ts *playground.TrainingSet) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"x", "y"}); err != nil {
		return err
	}
	for _, p := range ts.Points {
		if err := w.Write([]string{fToStr(p.X), fToStr(p.Y)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// BuildWorkbook lays the export out over four sheets. The caller owns the
// returned file and must Close it.
func BuildWorkbook(exp Export) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writePoints(f, SheetTraining, exp.Training.Points); err != nil {
		f.Close()
		return nil, err
	}
	if err := writePoints(f, SheetTruth, exp.Truth); err != nil {
		f.Close()
		return nil, err
	}
	if err := writePoints(f, SheetModel, exp.Model); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSummary(f, exp); err != nil {
		f.Close()
		return nil, err
	}

	// Drop the default sheet so the training data opens first.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, err
	}
	if idx, err := f.GetSheetIndex(SheetTraining); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

// WriteXLSX builds the workbook and saves it to path
func WriteXLSX(path string, exp Export) error {
	f, err := BuildWorkbook(exp)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

func writePoints(f *excelize.File, sheet string, points []playground.DataPoint) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"x", "y"}); err != nil {
		return err
	}
	for i, p := range points {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &[]interface{}{p.X, p.Y}); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(f *excelize.File, exp Export) error {
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}
	kind, strength := string(playground.KindNone), 0.0
	if exp.Penalty != nil {
		kind, strength = string(exp.Penalty.Kind()), exp.Penalty.Strength()
	}
	rows := [][]interface{}{
		{"parameter", "value"},
		{"points", exp.Training.Len()},
		{"noise_level", exp.Training.NoiseLevel},
		{"seed", exp.Training.Seed},
		{"complexity", exp.Complexity},
		{"regularization", kind},
		{"strength", strength},
		{"regime", string(exp.Regime)},
		{"description", exp.Description},
		{"fingerprint", exp.Training.Fingerprint().String()},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetSummary, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func fToStr(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
