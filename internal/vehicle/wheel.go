package vehicle

import (
	"math"

	"github.com/cxd309/tyre-engine/internal/tyre"
)

// Wheel is the per-step state of one wheel position. Both wheels on an axle are
// assumed to share load and torque equally, so a single Wheel stands for either.
// AxleLoad and AxleTorque are written by the owning Car once per step.
type Wheel struct {
	AxleLoad   float64 // total normal force on this wheel's axle, N
	AxleTorque float64 // total drive torque delivered to the axle, N·m
	Tyre       tyre.ForceModel
}

// NewWheel returns an unloaded wheel fitted with the given tyre model.
func NewWheel(model tyre.ForceModel) *Wheel {
	return &Wheel{Tyre: model}
}

// NormalForce is this wheel's share of the axle load.
func (w *Wheel) NormalForce() float64 {
	return w.AxleLoad / 2
}

// Torque is this wheel's share of the axle torque.
func (w *Wheel) Torque() float64 {
	return w.AxleTorque / 2
}

func (w *Wheel) MaxLateralForce() float64 {
	return w.Tyre.MaxLateralForce()
}

func (w *Wheel) MaxLongitudinalForce() float64 {
	return w.Tyre.MaxLongitudinalForce()
}

// LateralForce apportions a vehicle-level centripetal force demand to this wheel
// in proportion to its share of the total normal force. Zero total load, or a
// wheel carrying no positive load, gives zero force.
func (w *Wheel) LateralForce(centripetalForce, totalNormalForce float64) float64 {
	if totalNormalForce == 0 || !w.loaded() {
		return 0
	}
	return centripetalForce * w.NormalForce() / totalNormalForce
}

// LongitudinalForce returns the longitudinal force still available once
// lateralForce is being produced, bounded by the friction ellipse and signed by
// the direction of acceleration. Lateral demand at or above the tyre's lateral
// capacity leaves nothing, as does a lifted-off wheel.
func (w *Wheel) LongitudinalForce(acceleration, lateralForce float64) float64 {
	if !w.loaded() {
		return 0
	}
	maxLateral := w.MaxLateralForce()
	if maxLateral <= 0 {
		return 0
	}
	ratio := lateralForce / maxLateral
	headroom := math.Max(0, 1-ratio*ratio)
	if headroom == 0 {
		return 0
	}
	return sign(acceleration) * w.MaxLongitudinalForce() * math.Sqrt(headroom)
}

// loaded reports whether the wheel is pressed onto the road.
func (w *Wheel) loaded() bool {
	return w.NormalForce() > 0
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
