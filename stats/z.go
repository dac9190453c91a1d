package stats

import "gonum.org/v1/gonum/stat/distuv"

// ZVal is the two-tailed z score for a confidence level given in percent.
func ZVal(pct float64) float64 {
	return distuv.UnitNormal.Quantile((1 + pct/100) / 2)
}
