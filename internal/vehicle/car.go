// Package vehicle models per-axle normal load under longitudinal weight transfer,
// rear-axle drive torque from a single fixed-ratio motor, and the per-wheel force
// capacity those loads give through each wheel's tyre model.
//
// Each update is a closed-form evaluation of the current state; nothing is
// integrated over time. A Car is not safe for concurrent use.
package vehicle

import (
	"math"

	"github.com/cxd309/tyre-engine/internal/tyre"
)

// Gravity is the gravitational acceleration used for static weight, m/s².
const Gravity = 9.81

// minMotorSpeed is the motor shaft speed (rad/s) below which the motor is
// treated as stationary and torque-limited.
const minMotorSpeed = 1e-9

// Car is a two-axle, rear-driven vehicle. Velocity and Acceleration are written
// by the caller before each UpdateWheelLoads / UpdateWheelTorques call.
type Car struct {
	// Dynamics
	Mass         float64 // kg
	Displacement float64 // metres; carried for the caller, never integrated
	Velocity     float64 // m/s
	Acceleration float64 // m/s²

	// Dimensions
	Wheelbase    float64 // metres
	CentreHeight float64 // metres
	WheelRadius  float64 // metres

	// Load distributions (front share)
	WeightDistribution   float64
	AeroLoadDistribution float64

	// Motor
	DriveRatio float64
	MotorPower float64 // W
	MaxTorque  float64 // N·m

	FrontWheel *Wheel
	RearWheel  *Wheel
}

// NewCar validates p and builds a Car with two freshly constructed, unloaded wheels.
// A missing tyre model on either position is replaced with the default magic formula.
func NewCar(p Params) (*Car, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Car{
		Mass:                 p.Mass,
		Wheelbase:            p.Wheelbase,
		CentreHeight:         p.CentreHeight,
		WheelRadius:          p.WheelRadius,
		WeightDistribution:   p.WeightDistribution,
		AeroLoadDistribution: p.AeroLoadDistribution,
		DriveRatio:           p.DriveRatio,
		MotorPower:           p.MotorPower,
		MaxTorque:            p.MaxTorque,
		FrontWheel:           NewWheel(tyreOrDefault(p.FrontTyre)),
		RearWheel:            NewWheel(tyreOrDefault(p.RearTyre)),
	}, nil
}

func tyreOrDefault(s TyreSpec) tyre.ForceModel {
	if s.Model == nil {
		return tyre.DefaultMagicFormula()
	}
	return s.Model
}

// UpdateWheelLoads sets both axle loads from static weight, longitudinal weight
// transfer through the centre of gravity, and the given aerodynamic downforce.
// The rear load is the residual, so the two always sum to weight plus downforce.
// Loads are not clamped: a negative value means that axle has lifted off.
func (c *Car) UpdateWheelLoads(aeroNormalLoad float64) {
	front := c.Mass*(Gravity*c.WeightDistribution*c.Wheelbase-c.Acceleration*c.CentreHeight)/c.Wheelbase +
		aeroNormalLoad*c.AeroLoadDistribution
	c.FrontWheel.AxleLoad = front
	// Residual of weight plus all downforce; the rear carries aero·(1-ad).
	c.RearWheel.AxleLoad = c.Mass*Gravity + aeroNormalLoad - front
}

// TotalNormalForce is the sum of both axle loads: weight plus the downforce
// passed to the last UpdateWheelLoads.
func (c *Car) TotalNormalForce() float64 {
	return c.FrontWheel.AxleLoad + c.RearWheel.AxleLoad
}

// LiftOff reports which axles carry no positive normal load after the last
// UpdateWheelLoads. It is advisory; the loads themselves are left untouched.
func (c *Car) LiftOff() (front, rear bool) {
	return c.FrontWheel.AxleLoad <= 0, c.RearWheel.AxleLoad <= 0
}

// MotorTorque returns the motor output torque at the current velocity: flat at
// MaxTorque up to the power-limited knee, MotorPower/speed above it.
// A stationary motor is torque-limited.
func (c *Car) MotorTorque() float64 {
	wheelSpeed := c.Velocity / c.WheelRadius
	motorSpeed := math.Abs(wheelSpeed * c.DriveRatio)
	if motorSpeed < minMotorSpeed {
		return c.MaxTorque
	}
	return math.Min(c.MaxTorque, c.MotorPower/motorSpeed)
}

// UpdateWheelTorques sets the axle torques for the rear-wheel-drive layout.
func (c *Car) UpdateWheelTorques() {
	c.FrontWheel.AxleTorque = 0
	c.RearWheel.AxleTorque = c.MotorTorque() * c.DriveRatio
}
