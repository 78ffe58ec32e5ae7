package tyre

import "github.com/samber/lo"

const (
	// SlipDomainStart is the first sampled slip value, degrees.
	SlipDomainStart = 0.0
	// SlipDomainStop is the last sampled slip value, degrees (inclusive).
	SlipDomainStop = 15.0
	// SlipDomainPoints is the number of evenly spaced samples.
	SlipDomainPoints = 30
)

// SlipDomain returns the fixed sweep used for the maximum force queries:
// 30 evenly spaced points from 0 to 15 degrees inclusive.
func SlipDomain() []float64 {
	return Linspace(SlipDomainStart, SlipDomainStop, SlipDomainPoints)
}

// Linspace returns n evenly spaced values over [start, stop], endpoint included.
// n == 1 yields [start]; n <= 0 yields an empty slice.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	if n == 1 {
		return []float64{start}
	}
	step := (stop - start) / float64(n-1)
	values := lo.Times(n, func(i int) float64 {
		return start + float64(i)*step
	})
	// Pin the endpoint so accumulated rounding never drops it.
	values[n-1] = stop
	return values
}
