// Package quadrature provides adaptive one-dimensional integration built on
// fixed-order Gauss-Legendre panels.
package quadrature

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/integrate/quad"

	"github.com/matchaproject/matcha/internal/common/matchaerrors"
)

// Result is the outcome of an adaptive integration. ErrorEstimate is the
// accumulated discrepancy between parent panels and their refined halves and
// is reported even on failure.
type Result struct {
	Value         float64
	ErrorEstimate float64
	Intervals     int
}

// Settings bounds the work an adaptive integration is allowed to do.
type Settings struct {
	AbsTol       float64 // Per-panel absolute tolerance
	RelTol       float64 // Per-panel relative tolerance
	MaxIntervals int     // Hard bound on the number of panels processed
	Order        int     // Number of Gauss-Legendre nodes per panel
}

// DefaultSettings returns numerically stable defaults for the smooth,
// rapidly decaying integrands this project deals in.
func DefaultSettings() Settings {
	return Settings{
		AbsTol:       1e-10,
		RelTol:       1e-8,
		MaxIntervals: 1 << 12,
		Order:        10,
	}
}

type panel struct {
	a, b     float64
	estimate float64
}

// Adaptive integrates f over [a, b] by recursive panel bisection. Each panel
// is estimated with a fixed-order Gauss-Legendre rule; the discrepancy between
// a panel's estimate and the sum of its halves drives refinement. If the panel
// budget runs out before every panel converges, the best available estimate is
// returned together with an ErrIntegrationFailure; the result is never
// silently accepted in that case.
func Adaptive(f func(float64) float64, a, b float64, settings Settings) (Result, error) {
	if settings.Order <= 0 || settings.MaxIntervals <= 0 {
		return Result{}, errors.Errorf(
			"quadrature settings invalid: order %d, maxIntervals %d", settings.Order, settings.MaxIntervals,
		)
	}
	if a == b {
		return Result{}, nil
	}
	if a > b {
		rv, err := Adaptive(f, b, a, settings)
		rv.Value = -rv.Value
		return rv, err
	}

	stack := []panel{{a: a, b: b, estimate: quad.Fixed(f, a, b, settings.Order, nil, 0)}}
	rv := Result{}
	for len(stack) > 0 {
		if rv.Intervals >= settings.MaxIntervals {
			// Flush the unconverged panels into the estimate so the error is informative.
			for _, p := range stack {
				rv.Value += p.estimate
				rv.ErrorEstimate += math.Max(settings.AbsTol, settings.RelTol*math.Abs(p.estimate))
			}
			return rv, errors.WithStack(&matchaerrors.ErrIntegrationFailure{
				Value:         rv.Value,
				ErrorEstimate: rv.ErrorEstimate,
				Tolerance:     math.Max(settings.AbsTol, settings.RelTol*math.Abs(rv.Value)),
				Intervals:     rv.Intervals,
			})
		}
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		rv.Intervals++

		mid := 0.5 * (p.a + p.b)
		left := quad.Fixed(f, p.a, mid, settings.Order, nil, 0)
		right := quad.Fixed(f, mid, p.b, settings.Order, nil, 0)
		refined := left + right
		discrepancy := math.Abs(refined - p.estimate)
		tol := math.Max(settings.AbsTol, settings.RelTol*math.Abs(refined))
		// The width floor stops refinement from chasing roundoff on panels
		// already at machine resolution.
		if discrepancy <= tol || p.b-p.a <= 1e-14*math.Max(1, math.Abs(p.a)) {
			rv.Value += refined
			rv.ErrorEstimate += discrepancy
		} else {
			stack = append(stack, panel{a: p.a, b: mid, estimate: left}, panel{a: mid, b: p.b, estimate: right})
		}
	}
	return rv, nil
}
