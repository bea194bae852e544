package format

import (
	"math"

	"github.com/pseudomuto/sqlpack/pkg/consts"
)

// trialMultipliers scale MaxCharsPerLine for each optimizer trial, in trial order.
var trialMultipliers = []float64{0.8, 1.0, 1.2, 1.5}

// Optimization is the best scoring result of Optimize.
type Optimization struct {
	Result *Result

	// MaxCharsPerLine is the budget that produced Result.
	MaxCharsPerLine int
	Score           float64
}

// Optimize formats query for documents several times, scaling MaxCharsPerLine by 0.8,
// 1.0, 1.2 and 1.5, and returns the best scoring result. Every trial runs on its own
// copy of the options; the Formatter itself is never modified.
//
// A result scores up to 60 points for reaching targetReduction percent fewer lines and
// up to 40 points for keeping the average line at or below 100 characters. The first
// trial wins ties. A non-positive targetReduction selects consts.DefaultTargetReduction.
// When every trial fails, the error of a plain Format call is returned.
func (f *Formatter) Optimize(query string, targetReduction int) (*Optimization, error) {
	if targetReduction <= 0 {
		targetReduction = consts.DefaultTargetReduction
	}

	var best *Optimization
	for _, multiplier := range trialMultipliers {
		opts := f.opts
		opts.MaxCharsPerLine = max(1, int(math.Floor(float64(f.opts.MaxCharsPerLine)*multiplier)))

		result, err := New(opts).Format(query, Document)
		if err != nil {
			continue
		}

		score := Score(result.Stats, targetReduction)
		if best == nil || score > best.Score {
			best = &Optimization{Result: result, MaxCharsPerLine: opts.MaxCharsPerLine, Score: score}
		}
	}

	if best != nil {
		return best, nil
	}

	result, err := f.Format(query, Document)
	if err != nil {
		return nil, err
	}

	return &Optimization{
		Result:          result,
		MaxCharsPerLine: f.opts.MaxCharsPerLine,
		Score:           Score(result.Stats, targetReduction),
	}, nil
}

// Score rates stats for the optimizer, from 0 to 100.
func Score(stats Stats, targetReduction int) float64 {
	if targetReduction <= 0 {
		targetReduction = consts.DefaultTargetReduction
	}

	reduction := math.Min(float64(stats.ReductionPercent)/float64(targetReduction), 1) * 60

	var readability float64
	if stats.AverageLineLength > 0 {
		readability = math.Min(100/float64(stats.AverageLineLength), 1) * 40
	}

	return reduction + readability
}
