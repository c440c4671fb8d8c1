package gsmf

import "math"

// GeneralizedSchechter evaluates one generalized-Schechter component at
// log10 stellar mass logMs, working in log-density space for numerical range:
//
//	log10 phi(logMs) = logPhi + (alpha+1)*x - 10^(beta*x)*c - log10(c)
//
// where x = logMs - logMchar and c = log10(e). The returned value is the
// linear-space number density in Mpc^-3 dex^-1. With beta = 1 this reduces to
// the classical single Schechter function.
func GeneralizedSchechter(logPhi, alpha, beta, logMchar, logMs float64) float64 {
	x := logMs - logMchar
	c := math.Log10(math.E)
	exponent := logPhi + (alpha+1)*x - math.Pow(10, beta*x)*c - math.Log10(c)
	return math.Pow(10, exponent)
}
