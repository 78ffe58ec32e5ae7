// Package tyre defines the ForceModel interface for tyre force-vs-slip curves,
// along with built-in implementations.
//
// Adding a new tyre model requires only implementing ForceModel and registering
// it in the JSON discriminator in the vehicle package.
package tyre

// ForceModel is the contract every tyre curve implementation must satisfy.
// Slip inputs are in degrees and are always sampled over non-negative values;
// the caller applies the sign of the underlying physical quantity.
type ForceModel interface {
	// Validate reports a configuration error if the model coefficients are unusable.
	Validate() error

	// CurveValue maps a single combined slip value (degrees) through the curve.
	CurveValue(slipDeg float64) float64

	// CurveValues maps each slip value (degrees) through the curve.
	CurveValues(slipDeg []float64) []float64

	// MaxForceOver returns the largest curve value over the given slip domain.
	MaxForceOver(domain []float64) float64

	// MaxLateralForce is the curve maximum over the slip-angle sweep.
	MaxLateralForce() float64

	// MaxLongitudinalForce is the curve maximum over the slip-ratio sweep.
	MaxLongitudinalForce() float64
}
