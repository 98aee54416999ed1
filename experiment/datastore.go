package experiment

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rietgo/rietgo/diag"
)

// Datastore holds the per-experiment numeric arrays: the measured
// pattern and, once a calculation has run, the derived background and
// total calculated pattern. It is plain data, not a category; nothing
// in it is fittable directly.
type Datastore struct {
	// X is the measured grid (2θ in degrees for CW, TOF in µs).
	X []float64

	// Meas and MeasSu are the measured intensities and their standard
	// uncertainties, aligned with X.
	Meas   []float64
	MeasSu []float64

	// Bkg and Calc are filled by the calculator on each pattern
	// evaluation; nil until the first one.
	Bkg  []float64
	Calc []float64
}

// HasMeasuredData reports whether a measured pattern is loaded.
func (d *Datastore) HasMeasuredData() bool {
	return len(d.X) > 0 && len(d.Meas) == len(d.X)
}

// SetMeasuredData installs measured arrays directly. sy may be nil, in
// which case σᵢ = sqrt(|yᵢ|) with a floor of 1 is substituted.
func (d *Datastore) SetMeasuredData(x, y, sy []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("%w: x has %d points, y has %d", ErrLengthMismatch, len(x), len(y))
	}
	if sy != nil && len(sy) != len(x) {
		return fmt.Errorf("%w: x has %d points, sy has %d", ErrLengthMismatch, len(x), len(sy))
	}
	if sy == nil {
		sy = defaultSigmas(y)
	}
	d.X = append([]float64(nil), x...)
	d.Meas = append([]float64(nil), y...)
	d.MeasSu = append([]float64(nil), sy...)
	d.Bkg = nil
	d.Calc = nil

	return nil
}

// LoadMeasuredData reads a whitespace-separated ASCII pattern file with
// two columns (x, y) or three (x, y, sy). Blank lines and lines opening
// with '#' are skipped. Missing sy falls back to sqrt(|y|).
func (d *Datastore) LoadMeasuredData(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadDataFile, err)
	}
	defer f.Close()

	var x, y, sy []float64
	hasSu := true
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return fmt.Errorf("%w: %s:%d: need at least 2 columns", ErrBadDataFile, path, line)
		}
		vals := make([]float64, 0, 3)
		for _, fld := range fields[:min(len(fields), 3)] {
			v, err := strconv.ParseFloat(fld, 64)
			if err != nil {
				return fmt.Errorf("%w: %s:%d: %v", ErrBadDataFile, path, line, err)
			}
			vals = append(vals, v)
		}
		x = append(x, vals[0])
		y = append(y, vals[1])
		if len(vals) >= 3 {
			sy = append(sy, vals[2])
		} else {
			hasSu = false
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBadDataFile, path, err)
	}
	if len(x) == 0 {
		return fmt.Errorf("%w: %s: no data rows", ErrBadDataFile, path)
	}
	if !hasSu {
		sy = defaultSigmas(y)
		diag.L().Info().
			Str("path", path).
			Msg("no uncertainty column, using sqrt(|y|)")
	}

	diag.L().Info().
		Str("path", path).
		Int("points", len(x)).
		Msg("measured data loaded")

	return d.SetMeasuredData(x, y, sy)
}

// defaultSigmas builds counting-statistics uncertainties, floored at 1
// so zero-count channels stay finite in chi-square weights.
func defaultSigmas(y []float64) []float64 {
	sy := make([]float64, len(y))
	for i, v := range y {
		s := math.Sqrt(math.Abs(v))
		if s < 1 {
			s = 1
		}
		sy[i] = s
	}

	return sy
}
