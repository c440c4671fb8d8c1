package calculator

// Track is the evolutionary history of one stellar-mass-selected population:
// four index-aligned sequences over the shared redshift grid. Tracks are
// immutable once returned.
type Track struct {
	Redshift          []float64 `json:"redshift"`
	ProgenitorLogMass []float64 `json:"progenitorLogMass"`
	HaloDensity       []float64 `json:"haloDensity"`
	StellarLogMass    []float64 `json:"stellarLogMass"`
}

// Thresholds are the six present-day log10 stellar-mass selection thresholds,
// keyed the way downstream consumers reference them.
var Thresholds = map[string]float64{
	"9":    9.0,
	"9p5":  9.5,
	"10":   10.0,
	"10p5": 10.5,
	"11":   11.0,
	"11p5": 11.5,
}
