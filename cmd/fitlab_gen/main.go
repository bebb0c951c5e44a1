package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	domain "fitlab/domain/playground"
	"fitlab/internal/playground"
	"fitlab/internal/synth"
)

func main() {
	out := flag.String("out", "fitlab.xlsx", "output file path")
	format := flag.String("format", "", "output format: xlsx or csv (default inferred from -out)")
	points := flag.Int("points", 30, "number of training points")
	noiseLevel := flag.Float64("noise", 0.3, "noise amplitude in [0, 1]")
	seed := flag.Int64("seed", 1, "noise seed (deterministic)")
	complexity := flag.Int("complexity", 3, "model complexity in [1, 20]")
	reg := flag.String("reg", "none", "regularization: none, l1 or l2")
	strength := flag.Float64("strength", 1, "regularization strength in [0, 10]")
	steps := flag.Int("steps", 200, "curve sampling steps")
	flag.Parse()

	if *points < 2 {
		fmt.Fprintln(os.Stderr, "points must be >= 2")
		os.Exit(2)
	}
	if *steps < 1 {
		fmt.Fprintln(os.Stderr, "steps must be >= 1")
		os.Exit(2)
	}
	kind, err := domain.ParsePenaltyKind(*reg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid -reg:", err)
		os.Exit(2)
	}

	fmtName := strings.ToLower(strings.TrimSpace(*format))
	if fmtName == "" {
		switch strings.ToLower(filepath.Ext(*out)) {
		case ".csv":
			fmtName = "csv"
		default:
			fmtName = "xlsx"
		}
	}

	opts := playground.DefaultOptions()
	opts.NumPoints = *points
	opts.CurveSteps = *steps

	snap, ts, err := playground.Render(playground.Settings{
		Complexity:  *complexity,
		NoiseLevel:  *noiseLevel,
		PenaltyKind: kind,
		Strength:    *strength,
	}, *seed, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error rendering fit:", err)
		os.Exit(1)
	}

	switch fmtName {
	case "csv":
		if err := synth.WriteCSV(*out, ts); err != nil {
			fmt.Fprintln(os.Stderr, "error writing csv:", err)
			os.Exit(1)
		}
	case "xlsx":
		if err := synth.WriteXLSX(*out, playground.ExportFor(snap, ts)); err != nil {
			fmt.Fprintln(os.Stderr, "error writing xlsx:", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "unsupported format:", fmtName)
		os.Exit(2)
	}

	fmt.Printf("Wrote %s\n", *out)
	fmt.Printf("Points: %d | Complexity: %d | Regime: %s | Train MSE: %.4f\n",
		ts.Len(), snap.Settings.Complexity, snap.Regime, snap.Diagnostics.TrainMSE)
}
