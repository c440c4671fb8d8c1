package gsmf

import (
	"math"

	"github.com/pkg/errors"

	"github.com/matchaproject/matcha/internal/common/matchaerrors"
	"github.com/matchaproject/matcha/internal/cosmology"
)

// Mode selects one of the three published calibration sets of the stellar
// mass function model.
type Mode string

const (
	// ModeObserved is the stellar mass function as observed, i.e. including
	// measurement scatter.
	ModeObserved Mode = "observed"
	// ModeTrue is the deconvolved stellar mass function.
	ModeTrue Mode = "true"
	// ModeIntrinsic additionally removes the halo-to-halo dispersion.
	ModeIntrinsic Mode = "intrinsic"
)

// ValidModes lists the recognised calibration set names.
var ValidModes = []string{string(ModeObserved), string(ModeTrue), string(ModeIntrinsic)}

// EvolutionLaw is the shared four-coefficient redshift evolution used by every
// shape parameter of the model:
//
//	p(z) = p0 + p1*(1 - a(z)) + p2*log10(a(z)) + p3*z
//
// with scale factor a(z) = 1/(1+z).
type EvolutionLaw struct {
	P0, P1, P2, P3 float64
}

// At evaluates the law at redshift z.
func (l EvolutionLaw) At(z float64) float64 {
	a := cosmology.ScaleFactor(z)
	return l.P0 + l.P1*(1-a) + l.P2*math.Log10(a) + l.P3*z
}

// CalibrationSet holds the fitted shape coefficients of one calibration of
// the five-component model. The star-forming population carries the primary
// fits; the quiescent populations and the second star-forming component are
// partly derived from them (see componentsAt), so only their independent
// coefficients appear here.
type CalibrationSet struct {
	// Primary star-forming component (SF1).
	PhiSF   EvolutionLaw // log10 normalisation
	AlphaSF EvolutionLaw // low-mass slope; P2 is identically zero in the published fits
	BetaSF  float64      // high-mass cutoff exponent, redshift-independent
	McharSF EvolutionLaw // log10 characteristic mass

	// Quiescent components.
	PhiQ1Offset   float64      // Q1 normalisation offset from Q2, evolved with fixed P1 = -2
	PhiQ2         EvolutionLaw // Q2 log10 normalisation
	McharQ2Offset EvolutionLaw // Q2 characteristic-mass offset from SF1; P2 and P3 are zero

	// Fixed offsets defining the derived components.
	PhiSF2Offset float64 // SF2 normalisation offset from SF1
	PhiQ3Offset  float64 // Q3 normalisation offset from Q2
	BetaQ3Offset float64 // Q3 cutoff-exponent offset from Q2
}

// calibrations are the three published coefficient sets. They are fixed
// constants; this project does no fitting.
var calibrations = map[Mode]CalibrationSet{
	ModeObserved: {
		PhiSF:         EvolutionLaw{-2.97903, 0.711457, 2.13684, -0.143942},
		AlphaSF:       EvolutionLaw{-1.43664, -0.182969, 0, -0.0652577},
		BetaSF:        0.924276,
		McharSF:       EvolutionLaw{10.3495, -0.852267, -3.43822, -0.294256},
		PhiQ1Offset:   -0.687046,
		PhiQ2:         EvolutionLaw{-2.64856, -0.22453, -2.01024, -0.9555},
		McharQ2Offset: EvolutionLaw{0.469221, -1.03017, 0, 0},
		PhiSF2Offset:  0.386681,
		PhiQ3Offset:   -0.782124,
		BetaQ3Offset:  -0.292956,
	},
	ModeTrue: {
		PhiSF:         EvolutionLaw{-3.12587, 1.0149, 2.96305, 0.0322943},
		AlphaSF:       EvolutionLaw{-1.5068, -0.0962951, 0, -0.0678136},
		BetaSF:        0.984965,
		McharSF:       EvolutionLaw{10.4309, -0.936285, -3.60355, -0.439795},
		PhiQ1Offset:   -0.789231,
		PhiQ2:         EvolutionLaw{-2.6914, -0.0222751, -1.59791, -0.877709},
		McharQ2Offset: EvolutionLaw{0.431888, -0.762424, 0, 0},
		PhiSF2Offset:  0.531231,
		PhiQ3Offset:   -0.748871,
		BetaQ3Offset:  -0.326509,
	},
	ModeIntrinsic: {
		PhiSF:         EvolutionLaw{-3.13858, 0.776621, 2.46962, 0.0151814},
		AlphaSF:       EvolutionLaw{-1.50836, -0.0840718, 0, -0.0680439},
		BetaSF:        1.01977,
		McharSF:       EvolutionLaw{10.4759, -0.936793, -3.48557, -0.447515},
		PhiQ1Offset:   -0.861007,
		PhiQ2:         EvolutionLaw{-2.65967, -0.0227114, -1.49839, -0.849498},
		McharQ2Offset: EvolutionLaw{0.351052, -0.582103, 0, 0},
		PhiSF2Offset:  0.502357,
		PhiQ3Offset:   -0.876961,
		BetaQ3Offset:  -0.352607,
	},
}

// CalibrationFor returns the coefficient set for mode, or ErrInvalidMode if
// mode is not one of the three recognised names.
func CalibrationFor(mode Mode) (CalibrationSet, error) {
	set, ok := calibrations[mode]
	if !ok {
		return CalibrationSet{}, errors.WithStack(&matchaerrors.ErrInvalidMode{
			Mode:       string(mode),
			ValidModes: ValidModes,
		})
	}
	return set, nil
}
