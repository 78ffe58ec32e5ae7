package engine_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxd309/tyre-engine/internal/engine"
	"github.com/cxd309/tyre-engine/internal/tyre"
	"github.com/cxd309/tyre-engine/internal/vehicle"
)

func TestEvaluateStaticStep(t *testing.T) {
	s := engine.NewScenario()
	s.Meta.ScenarioID = "static"
	s.Steps = []engine.StepInput{{Time: 0}}

	out, err := engine.Evaluate(s)
	require.NoError(t, err)
	require.Len(t, out.Output, 1)
	assert.Equal(t, "static", out.Meta.ScenarioID)

	row := out.Output[0]
	assert.InDelta(t, 1471.5, row.FrontWheel.AxleLoad, 1e-9)
	assert.InDelta(t, 1471.5, row.RearWheel.AxleLoad, 1e-9)
	assert.InDelta(t, 2943.0, row.TotalNormalForce, 1e-9)
	assert.Equal(t, 720.0, row.RearWheel.AxleTorque)
	assert.Equal(t, 0.0, row.FrontWheel.AxleTorque)
	assert.Equal(t, 240.0, row.MotorTorque)
	assert.Equal(t, 0.0, row.FrontWheel.LateralForce)
	assert.Equal(t, 0.0, row.FrontWheel.LongitudinalForce)
	assert.False(t, row.FrontWheel.LiftOff)
}

func TestEvaluateAcceleratingStep(t *testing.T) {
	s := engine.NewScenario()
	s.Steps = []engine.StepInput{
		{Time: 0, Velocity: 0, Acceleration: 0},
		{Time: 0.1, Velocity: 20, Acceleration: 5},
	}
	out, err := engine.Evaluate(s)
	require.NoError(t, err)
	require.Len(t, out.Output, 2)

	still, moving := out.Output[0], out.Output[1]
	shift := 300 * 5 * 0.3 / 1.55
	assert.InDelta(t, still.FrontWheel.AxleLoad-shift, moving.FrontWheel.AxleLoad, 1e-9)
	assert.InDelta(t, still.RearWheel.AxleLoad+shift, moving.RearWheel.AxleLoad, 1e-9)
	assert.InDelta(t, still.TotalNormalForce, moving.TotalNormalForce, 1e-9)
	assert.InDelta(t, 700, moving.RearWheel.AxleTorque, 1e-9)

	maxLong := tyre.DefaultMagicFormula().MaxLongitudinalForce()
	assert.InDelta(t, maxLong, moving.RearWheel.LongitudinalForce, 1e-15)
	assert.Equal(t, moving.RearWheel.MaxLongitudinalForce, maxLong)
}

func TestEvaluateCorneringSaturatesEllipse(t *testing.T) {
	s := engine.NewScenario()
	s.Steps = []engine.StepInput{{Velocity: 15, Acceleration: -3, CentripetalForce: 3000}}
	out, err := engine.Evaluate(s)
	require.NoError(t, err)

	row := out.Output[0]
	assert.InDelta(t, 3000*row.FrontWheel.NormalForce/row.TotalNormalForce, row.FrontWheel.LateralForce, 1e-9)
	// The lateral demand far exceeds the tyre's lateral capacity.
	assert.Equal(t, 0.0, row.FrontWheel.LongitudinalForce)
	assert.Equal(t, 0.0, row.RearWheel.LongitudinalForce)
}

func TestEvaluateLiftOffLogged(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	s := engine.NewScenario()
	s.Steps = []engine.StepInput{{Time: 1, Acceleration: 30, CentripetalForce: 800}}
	out, err := engine.Evaluate(s)
	require.NoError(t, err)

	row := out.Output[0]
	assert.True(t, row.FrontWheel.LiftOff)
	assert.False(t, row.RearWheel.LiftOff)
	assert.Less(t, row.FrontWheel.AxleLoad, 0.0)
	assert.Equal(t, 0.0, row.FrontWheel.LateralForce)
	assert.Equal(t, 0.0, row.FrontWheel.LongitudinalForce)
	assert.InDelta(t, 800*row.RearWheel.NormalForce/row.TotalNormalForce, row.RearWheel.LateralForce, 1e-9)

	warnings := lo.Filter(hook.AllEntries(), func(e *logrus.Entry, _ int) bool {
		return e.Level == logrus.WarnLevel
	})
	require.Len(t, warnings, 1)
	assert.Equal(t, 1.0, warnings[0].Data["time"])
}

func TestNewEvaluatorRejectsBadCar(t *testing.T) {
	s := engine.NewScenario()
	s.Car.Wheelbase = 0
	_, err := engine.NewEvaluator(s)
	require.Error(t, err)
	assert.ErrorIs(t, err, vehicle.ErrConfiguration)
}

func TestNewEvaluatorRejectsBadSteps(t *testing.T) {
	s := engine.NewScenario()
	s.Steps = []engine.StepInput{{Time: 2}, {Time: 1}}
	_, err := engine.NewEvaluator(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 1")

	s.Steps = []engine.StepInput{{Time: 0, Velocity: math.Inf(1)}}
	_, err = engine.NewEvaluator(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "velocity")
}

func TestRunJSON(t *testing.T) {
	input := `{
		"scenario_meta": {"scenario_id": "json"},
		"car": {"mass": 400, "aero_load_distribution": 0.4},
		"steps": [{"time": 0, "velocity": 0, "acceleration": 0, "aero_normal_load": 1000}]
	}`
	result, err := engine.RunJSON(input)
	require.NoError(t, err)

	var out engine.EvaluationLog
	require.NoError(t, json.Unmarshal([]byte(result), &out))
	require.Len(t, out.Output, 1)
	assert.Equal(t, "json", out.Meta.ScenarioID)
	assert.InDelta(t, 400*9.81*0.5+400, out.Output[0].FrontWheel.AxleLoad, 1e-9)
	assert.InDelta(t, 400*9.81+1000, out.Output[0].TotalNormalForce, 1e-9)
}

func TestRunJSONErrors(t *testing.T) {
	_, err := engine.RunJSON("{not json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid input JSON")

	_, err = engine.RunJSON(`{"car": {"weight_distribution": 2}}`)
	assert.ErrorIs(t, err, vehicle.ErrConfiguration)

	_, err = engine.RunJSON(`{"car": {"tyre_pressure": 2}, "steps": []}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tyre_pressure")
}

func TestEvaluatorCarReflectsLastStep(t *testing.T) {
	s := engine.NewScenario()
	s.Steps = []engine.StepInput{{Velocity: 3}, {Time: 1, Velocity: 7}}
	ev, err := engine.NewEvaluator(s)
	require.NoError(t, err)
	ev.Run()
	assert.Equal(t, 7.0, ev.Car().Velocity)
}
