// Package rootfind provides scalar root-finding on a bracketing interval.
package rootfind

import (
	"github.com/pkg/errors"

	"github.com/matchaproject/matcha/internal/common/matchaerrors"
)

// Bisect finds x in [a, b] such that f(x) == 0 by interval bisection.
// f must change sign over [a, b]; otherwise an ErrNoRootInBracket is returned.
// Evaluation errors from f abort the search immediately. The search stops once
// the bracket half-width drops below xtol, with maxIter as a hard bound.
func Bisect(f func(float64) (float64, error), a, b, xtol float64, maxIter int) (float64, error) {
	if b < a {
		a, b = b, a
	}
	fa, err := f(a)
	if err != nil {
		return 0, err
	}
	if fa == 0 {
		return a, nil
	}
	fb, err := f(b)
	if err != nil {
		return 0, err
	}
	if fb == 0 {
		return b, nil
	}
	if (fa > 0) == (fb > 0) {
		return 0, errors.WithStack(&matchaerrors.ErrNoRootInBracket{
			Lower:  a,
			Upper:  b,
			FLower: fa,
			FUpper: fb,
		})
	}

	mid := a
	for i := 0; i < maxIter; i++ {
		mid = 0.5 * (a + b)
		fm, err := f(mid)
		if err != nil {
			return 0, err
		}
		if fm == 0 || 0.5*(b-a) < xtol {
			return mid, nil
		}
		if (fm > 0) == (fa > 0) {
			a, fa = mid, fm
		} else {
			b = mid
		}
	}
	return 0, errors.Errorf(
		"bisection did not converge to xtol %v within %d iterations; bracket is [%v, %v]",
		xtol, maxIter, a, b,
	)
}
