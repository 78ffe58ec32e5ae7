// Package engine evaluates a scenario of caller-supplied vehicle states.
//
// Each step is evaluated independently, in three stages:
//
//  1. Load pass - the step's velocity and acceleration are written to the car
//     and both axle loads are recomputed from weight transfer and downforce.
//
//  2. Torque pass - the motor envelope gives the rear axle drive torque.
//
//  3. Force pass - the step's centripetal demand is apportioned to each wheel
//     by normal load, and the remaining longitudinal capacity is taken from
//     each tyre's friction ellipse.
//
// Nothing is integrated between steps.
package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/cxd309/tyre-engine/internal/vehicle"
)

// NewEvaluator constructs an Evaluator from a Scenario, building the car and
// checking the step list.
func NewEvaluator(s Scenario) (*Evaluator, error) {
	car, err := vehicle.NewCar(s.Car)
	if err != nil {
		return nil, fmt.Errorf("building car: %w", err)
	}
	if err := checkSteps(s.Steps); err != nil {
		return nil, err
	}
	return &Evaluator{
		meta:  s.Meta,
		car:   car,
		steps: s.Steps,
	}, nil
}

// checkSteps rejects non-finite inputs and times that run backwards.
func checkSteps(steps []StepInput) error {
	for i, st := range steps {
		fields := map[string]float64{
			"time":              st.Time,
			"velocity":          st.Velocity,
			"acceleration":      st.Acceleration,
			"aero_normal_load":  st.AeroNormalLoad,
			"centripetal_force": st.CentripetalForce,
		}
		bad := lo.PickBy(fields, func(_ string, v float64) bool {
			return math.IsNaN(v) || math.IsInf(v, 0)
		})
		if len(bad) > 0 {
			return fmt.Errorf("step %d: non-finite %v", i, lo.Keys(bad))
		}
		if i > 0 && st.Time < steps[i-1].Time {
			return fmt.Errorf("step %d: time %.3f precedes previous step time %.3f", i, st.Time, steps[i-1].Time)
		}
	}
	return nil
}

// Car exposes the evaluator's car so callers can inspect state after Run.
func (e *Evaluator) Car() *vehicle.Car {
	return e.car
}

// Run evaluates every step in order and returns the log.
func (e *Evaluator) Run() EvaluationLog {
	log.Infof("evaluating scenario %q: %d steps", e.meta.ScenarioID, len(e.steps))
	out := EvaluationLog{Meta: e.meta, Output: make([]StepLog, 0, len(e.steps))}
	for _, st := range e.steps {
		out.Output = append(out.Output, e.Evaluate(st))
	}
	log.Infof("scenario %q evaluated", e.meta.ScenarioID)
	return out
}

// Evaluate applies one step's state to the car and returns the resulting snapshot.
func (e *Evaluator) Evaluate(st StepInput) StepLog {
	c := e.car

	// Pass 1: loads.
	c.Velocity = st.Velocity
	c.Acceleration = st.Acceleration
	c.UpdateWheelLoads(st.AeroNormalLoad)
	frontLift, rearLift := c.LiftOff()
	if frontLift || rearLift {
		log.WithFields(logrus.Fields{
			"time":       st.Time,
			"front_load": c.FrontWheel.AxleLoad,
			"rear_load":  c.RearWheel.AxleLoad,
		}).Warn("axle lift-off: non-positive normal load")
	}

	// Pass 2: torques.
	c.UpdateWheelTorques()

	// Pass 3: force capacity.
	total := c.TotalNormalForce()
	row := StepLog{
		Time:             st.Time,
		Velocity:         st.Velocity,
		Acceleration:     st.Acceleration,
		AeroNormalLoad:   st.AeroNormalLoad,
		TotalNormalForce: total,
		MotorTorque:      c.MotorTorque(),
		FrontWheel:       wheelLog(c.FrontWheel, st, total, frontLift),
		RearWheel:        wheelLog(c.RearWheel, st, total, rearLift),
	}
	log.Debugf("t=%.3f front=%+v rear=%+v", row.Time, row.FrontWheel, row.RearWheel)
	return row
}

func wheelLog(w *vehicle.Wheel, st StepInput, totalNormalForce float64, liftOff bool) WheelLog {
	lateral := w.LateralForce(st.CentripetalForce, totalNormalForce)
	return WheelLog{
		AxleLoad:             w.AxleLoad,
		NormalForce:          w.NormalForce(),
		AxleTorque:           w.AxleTorque,
		Torque:               w.Torque(),
		LateralForce:         lateral,
		LongitudinalForce:    w.LongitudinalForce(st.Acceleration, lateral),
		MaxLateralForce:      w.MaxLateralForce(),
		MaxLongitudinalForce: w.MaxLongitudinalForce(),
		LiftOff:              liftOff,
	}
}

// Evaluate builds a fresh evaluator for s and runs it.
func Evaluate(s Scenario) (EvaluationLog, error) {
	ev, err := NewEvaluator(s)
	if err != nil {
		return EvaluationLog{}, err
	}
	return ev.Run(), nil
}

// DecodeJSON decodes a JSON Scenario over NewScenario, rejecting unknown keys.
func DecodeJSON(data []byte) (Scenario, error) {
	s := NewScenario()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

// RunScenario evaluates s and returns the JSON-encoded EvaluationLog.
func RunScenario(s Scenario) (string, error) {
	evalLog, err := Evaluate(s)
	if err != nil {
		return "", err
	}

	out, err := json.Marshal(evalLog)
	if err != nil {
		return "", fmt.Errorf("marshaling output: %w", err)
	}
	return string(out), nil
}

// RunJSON is the programmatic JSON entry point; config.Run uses the same decoder.
// It accepts a JSON-encoded Scenario, evaluates it, and returns a JSON-encoded
// EvaluationLog. Car parameters omitted from the input take their defaults.
func RunJSON(jsonInput string) (string, error) {
	s, err := DecodeJSON([]byte(jsonInput))
	if err != nil {
		return "", fmt.Errorf("invalid input JSON: %w", err)
	}
	return RunScenario(s)
}
