// Copyright 2019, LightStep Inc.

// Package uniformity decides whether a sample of numbers is plausibly
// drawn from a uniform, or log-uniform, distribution on some unknown
// interval.
//
// Three statistics are combined and all of them must hold:
//
//   - the excess kurtosis of the sample is close to -1.2, the kurtosis
//     of a continuous uniform distribution;
//   - a chi-square test on the counts of each distinct value does not
//     reject equal counts;
//   - the same chi-square test on the normalized frequencies does not
//     reject either.
//
// The check tests shape only.  It does not know or care about the
// bounds of the interval.
package uniformity

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// NaturalBase is the default base for CheckLog.
const NaturalBase = math.E

var (
	ErrEmptySample       = fmt.Errorf("Empty sample")
	ErrNonFinite         = fmt.Errorf("NaN or Inf value in sample")
	ErrNonPositive       = fmt.Errorf("Zero, negative, NaN or Inf value under log transform")
	ErrInvalidBase       = fmt.Errorf("Log base must be positive, finite and not 1")
	ErrInvalidThresholds = fmt.Errorf("Invalid thresholds")
)

// Condition identifies one of the statistical conditions of a check.
type Condition int

const (
	// Kurtosis is violated when the excess kurtosis is too far from
	// the uniform value.
	Kurtosis Condition = iota
	// CountsChiSquare is violated when the chi-square test rejects
	// equal counts of the distinct values.
	CountsChiSquare
	// FrequencyChiSquare is violated when the frequencies do not sum
	// to one or the chi-square test on them rejects.
	FrequencyChiSquare
)

func (c Condition) String() string {
	switch c {
	case Kurtosis:
		return "kurtosis"
	case CountsChiSquare:
		return "counts chi-square"
	case FrequencyChiSquare:
		return "frequency chi-square"
	}
	return fmt.Sprintf("Condition(%d)", int(c))
}

// Thresholds configures the bounds applied to a Result.
type Thresholds struct {
	// Kurtosis is the expected excess kurtosis.
	Kurtosis float64
	// KurtosisTolerance is the allowed absolute deviation from Kurtosis.
	KurtosisTolerance float64
	// KurtosisRelTolerance widens KurtosisTolerance by this fraction
	// of |Kurtosis|, so that -1.3 and -1.1 are inside the default band.
	KurtosisRelTolerance float64
	// MinPValue is an exclusive lower bound on both p-values.
	MinPValue float64
	// FrequencySumTolerance is the allowed absolute deviation of the
	// frequency sum from 1.
	FrequencySumTolerance float64
}

// DefaultThresholds are used by the package-level functions.
var DefaultThresholds = Thresholds{
	Kurtosis:              -1.2,
	KurtosisTolerance:     0.1,
	KurtosisRelTolerance:  1e-5,
	MinPValue:             0.5,
	FrequencySumTolerance: 1e-8 + 1e-5,
}

// Validate returns ErrInvalidThresholds if a tolerance is negative or
// NaN, or MinPValue is outside [0, 1).
func (th Thresholds) Validate() error {
	switch {
	case math.IsNaN(th.Kurtosis) || math.IsInf(th.Kurtosis, 0):
		return errors.Wrapf(ErrInvalidThresholds, "kurtosis %v", th.Kurtosis)
	case !(th.KurtosisTolerance >= 0):
		return errors.Wrapf(ErrInvalidThresholds, "kurtosis tolerance %v", th.KurtosisTolerance)
	case !(th.KurtosisRelTolerance >= 0):
		return errors.Wrapf(ErrInvalidThresholds, "kurtosis relative tolerance %v", th.KurtosisRelTolerance)
	case !(th.MinPValue >= 0 && th.MinPValue < 1):
		return errors.Wrapf(ErrInvalidThresholds, "minimum p-value %v", th.MinPValue)
	case !(th.FrequencySumTolerance >= 0):
		return errors.Wrapf(ErrInvalidThresholds, "frequency sum tolerance %v", th.FrequencySumTolerance)
	}
	return nil
}

// Result holds the statistics computed for one sample.
type Result struct {
	Size     int
	Distinct int

	Kurtosis float64

	CountsStatistic float64
	CountsPValue    float64

	FrequencySum       float64
	FrequencyStatistic float64
	FrequencyPValue    float64
}

// Violations lists the conditions of th that r does not satisfy, in
// the order Kurtosis, CountsChiSquare, FrequencyChiSquare.  NaN
// statistics never satisfy a condition.
func (r Result) Violations(th Thresholds) []Condition {
	var v []Condition
	if !(math.Abs(r.Kurtosis-th.Kurtosis) <= th.KurtosisTolerance+th.KurtosisRelTolerance*math.Abs(th.Kurtosis)) {
		v = append(v, Kurtosis)
	}
	if !(r.CountsPValue > th.MinPValue) {
		v = append(v, CountsChiSquare)
	}
	if !scalar.EqualWithinAbs(r.FrequencySum, 1, th.FrequencySumTolerance) || !(r.FrequencyPValue > th.MinPValue) {
		v = append(v, FrequencyChiSquare)
	}
	return v
}

// Failure is returned by Check when the sample is not plausibly
// uniform.
type Failure struct {
	Result     Result
	Thresholds Thresholds
	Violations []Condition
}

// Violated reports whether c is among the violated conditions.
func (f *Failure) Violated(c Condition) bool {
	for _, v := range f.Violations {
		if v == c {
			return true
		}
	}
	return false
}

func (f *Failure) Error() string {
	parts := make([]string, 0, len(f.Violations))
	for _, c := range f.Violations {
		switch c {
		case Kurtosis:
			parts = append(parts, fmt.Sprintf("kurtosis %.4g not within %g of %g",
				f.Result.Kurtosis, f.Thresholds.KurtosisTolerance, f.Thresholds.Kurtosis))
		case CountsChiSquare:
			parts = append(parts, fmt.Sprintf("counts chi-square p-value %.4g <= %g",
				f.Result.CountsPValue, f.Thresholds.MinPValue))
		case FrequencyChiSquare:
			parts = append(parts, fmt.Sprintf("frequency chi-square p-value %.4g <= %g (frequency sum %.10g)",
				f.Result.FrequencyPValue, f.Thresholds.MinPValue, f.Result.FrequencySum))
		}
	}
	return fmt.Sprintf("sample of %d not uniform: %s", f.Result.Size, strings.Join(parts, "; "))
}

// Checker evaluates samples against a fixed set of Thresholds.
type Checker struct {
	thresholds Thresholds
	log        logrus.FieldLogger
}

var defaultChecker = &Checker{thresholds: DefaultThresholds, log: discardLogger()}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// NewChecker returns a Checker for th.  A nil log, including a nil
// *logrus.Logger or *logrus.Entry, disables logging.
func NewChecker(th Thresholds, log logrus.FieldLogger) (*Checker, error) {
	if err := th.Validate(); err != nil {
		return nil, err
	}
	switch l := log.(type) {
	case nil:
		log = discardLogger()
	case *logrus.Logger:
		if l == nil {
			log = discardLogger()
		}
	case *logrus.Entry:
		if l == nil {
			log = discardLogger()
		}
	}
	return &Checker{
		thresholds: th,
		log:        log,
	}, nil
}

// Thresholds returns the bounds c applies.
func (c *Checker) Thresholds() Thresholds {
	return c.thresholds
}

// Evaluate computes the Result for sample without applying any
// thresholds.  It returns ErrEmptySample or ErrNonFinite for
// malformed input.
func (c *Checker) Evaluate(sample []float64) (Result, error) {
	if len(sample) == 0 {
		return Result{}, ErrEmptySample
	}
	for i, v := range sample {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Result{}, errors.Wrapf(ErrNonFinite, "sample[%d] = %v", i, v)
		}
	}

	_, counts := ValueCounts(sample)

	r := Result{
		Size:     len(sample),
		Distinct: len(counts),
		Kurtosis: ExcessKurtosis(sample),
	}
	r.CountsStatistic, r.CountsPValue = ChiSquare(counts)

	frequencies := make([]float64, len(counts))
	copy(frequencies, counts)
	floats.Scale(1/float64(len(sample)), frequencies)
	r.FrequencySum = floats.Sum(frequencies)
	r.FrequencyStatistic, r.FrequencyPValue = ChiSquare(frequencies)

	c.log.WithFields(logrus.Fields{
		"size":        r.Size,
		"distinct":    r.Distinct,
		"kurtosis":    r.Kurtosis,
		"counts_p":    r.CountsPValue,
		"frequency_p": r.FrequencyPValue,
	}).Debug("evaluated sample")
	return r, nil
}

// Check returns nil if sample passes every condition, a *Failure if
// any condition is violated, or a precondition error from Evaluate.
func (c *Checker) Check(sample []float64) error {
	r, err := c.Evaluate(sample)
	if err != nil {
		return err
	}
	violations := r.Violations(c.thresholds)
	if len(violations) == 0 {
		return nil
	}
	f := &Failure{
		Result:     r,
		Thresholds: c.thresholds,
		Violations: violations,
	}
	c.log.WithField("violations", violations).Debug("sample not uniform")
	return f
}

// EvaluateLog transforms sample to logarithms in base and evaluates
// the result.  Every value must be strictly positive and finite.
func (c *Checker) EvaluateLog(sample []float64, base float64) (Result, error) {
	logs, err := logTransform(sample, base)
	if err != nil {
		return Result{}, err
	}
	return c.Evaluate(logs)
}

// CheckLog checks whether sample is log-uniformly distributed in
// base, that is whether its logarithms are uniformly distributed.
func (c *Checker) CheckLog(sample []float64, base float64) error {
	logs, err := logTransform(sample, base)
	if err != nil {
		return err
	}
	return c.Check(logs)
}

func logTransform(sample []float64, base float64) ([]float64, error) {
	if !(base > 0) || base == 1 || math.IsInf(base, 0) {
		return nil, errors.Wrapf(ErrInvalidBase, "base = %v", base)
	}
	if len(sample) == 0 {
		return nil, ErrEmptySample
	}
	logBase := math.Log(base)
	logs := make([]float64, len(sample))
	for i, v := range sample {
		if !(v > 0) || math.IsInf(v, 0) {
			return nil, errors.Wrapf(ErrNonPositive, "sample[%d] = %v", i, v)
		}
		logs[i] = math.Log(v) / logBase
	}
	return logs, nil
}

// Evaluate computes the Result for sample using DefaultThresholds.
func Evaluate(sample []float64) (Result, error) {
	return defaultChecker.Evaluate(sample)
}

// Check checks sample for uniformity using DefaultThresholds.
func Check(sample []float64) error {
	return defaultChecker.Check(sample)
}

// EvaluateLog computes the Result for the base-base logarithms of
// sample.
func EvaluateLog(sample []float64, base float64) (Result, error) {
	return defaultChecker.EvaluateLog(sample, base)
}

// CheckLog checks sample for log-uniformity in base using
// DefaultThresholds.  Pass NaturalBase for natural logarithms.
func CheckLog(sample []float64, base float64) error {
	return defaultChecker.CheckLog(sample, base)
}
