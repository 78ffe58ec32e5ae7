package engine

import (
	"github.com/cxd309/tyre-engine/internal/vehicle"
)

// ScenarioMeta holds the identity of an evaluation run.
type ScenarioMeta struct {
	ScenarioID  string `json:"scenario_id" yaml:"scenario_id"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// StepInput is the caller-supplied vehicle state for one evaluation step.
// The engine never derives one step's state from another.
type StepInput struct {
	Time             float64 `json:"time" yaml:"time"`                                             // seconds
	Velocity         float64 `json:"velocity" yaml:"velocity"`                                     // m/s
	Acceleration     float64 `json:"acceleration" yaml:"acceleration"`                             // m/s²
	AeroNormalLoad   float64 `json:"aero_normal_load,omitempty" yaml:"aero_normal_load,omitempty"` // N, total downforce
	CentripetalForce float64 `json:"centripetal_force,omitempty" yaml:"centripetal_force,omitempty"` // N, vehicle-level lateral demand
}

// Scenario is the serialisable input to the engine.
type Scenario struct {
	Meta  ScenarioMeta   `json:"scenario_meta" yaml:"scenario_meta"`
	Car   vehicle.Params `json:"car" yaml:"car"`
	Steps []StepInput    `json:"steps" yaml:"steps"`
}

// NewScenario returns an empty scenario whose car carries the default
// parameters. Decode documents over it so omitted car fields keep their defaults.
func NewScenario() Scenario {
	return Scenario{Car: vehicle.DefaultParams()}
}

// WheelLog is a point-in-time snapshot of one wheel.
type WheelLog struct {
	AxleLoad             float64 `json:"axle_load"`
	NormalForce          float64 `json:"normal_force"`
	AxleTorque           float64 `json:"axle_torque"`
	Torque               float64 `json:"torque"`
	LateralForce         float64 `json:"lateral_force"`
	LongitudinalForce    float64 `json:"longitudinal_force"`
	MaxLateralForce      float64 `json:"max_lateral_force"`
	MaxLongitudinalForce float64 `json:"max_longitudinal_force"`
	LiftOff              bool    `json:"lift_off"`
}

// StepLog is the state of the car after evaluating a single step.
type StepLog struct {
	Time             float64  `json:"time"`
	Velocity         float64  `json:"velocity"`
	Acceleration     float64  `json:"acceleration"`
	AeroNormalLoad   float64  `json:"aero_normal_load"`
	TotalNormalForce float64  `json:"total_normal_force"`
	MotorTorque      float64  `json:"motor_torque"`
	FrontWheel       WheelLog `json:"front_wheel"`
	RearWheel        WheelLog `json:"rear_wheel"`
}

// EvaluationLog is the complete output of a scenario evaluation.
type EvaluationLog struct {
	Meta   ScenarioMeta `json:"scenario_meta"`
	Output []StepLog    `json:"output"`
}

// Evaluator applies a scenario's steps to a single exclusively owned Car.
type Evaluator struct {
	meta  ScenarioMeta
	car   *vehicle.Car
	steps []StepInput
}
