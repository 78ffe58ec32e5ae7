package vehicle

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/cxd309/tyre-engine/internal/tyre"
)

// Params holds the static construction parameters of a Car.
// Fields omitted from a decoded document keep the values of DefaultParams,
// provided the document is decoded over DefaultParams().
type Params struct {
	Mass         float64 `json:"mass" yaml:"mass"`                   // kg
	Wheelbase    float64 `json:"wheelbase" yaml:"wheelbase"`         // metres
	CentreHeight float64 `json:"centre_height" yaml:"centre_height"` // metres
	WheelRadius  float64 `json:"wheel_radius" yaml:"wheel_radius"`   // metres

	WeightDistribution   float64 `json:"weight_distribution" yaml:"weight_distribution"`       // front share, [0,1]
	AeroLoadDistribution float64 `json:"aero_load_distribution" yaml:"aero_load_distribution"` // front share, [0,1]

	DriveRatio float64 `json:"drive_ratio" yaml:"drive_ratio"`
	MotorPower float64 `json:"motor_power" yaml:"motor_power"` // W
	MaxTorque  float64 `json:"max_torque" yaml:"max_torque"`   // N·m

	FrontTyre TyreSpec `json:"front_tyre" yaml:"front_tyre"`
	RearTyre  TyreSpec `json:"rear_tyre" yaml:"rear_tyre"`
}

// DefaultParams returns the reference single-seater parameters.
func DefaultParams() Params {
	return Params{
		Mass:                 300,
		Wheelbase:            1.55,
		CentreHeight:         0.3,
		WheelRadius:          0.175,
		WeightDistribution:   0.5,
		AeroLoadDistribution: 0.5,
		DriveRatio:           3,
		MotorPower:           80000,
		MaxTorque:            240,
		FrontTyre:            TyreSpec{Model: tyre.DefaultMagicFormula()},
		RearTyre:             TyreSpec{Model: tyre.DefaultMagicFormula()},
	}
}

// Validate returns a *ConfigurationError for the first unusable parameter.
func (p Params) Validate() error {
	positive := []struct {
		field string
		value float64
	}{
		{"mass", p.Mass},
		{"wheelbase", p.Wheelbase},
		{"wheel_radius", p.WheelRadius},
		{"drive_ratio", p.DriveRatio},
		{"motor_power", p.MotorPower},
		{"max_torque", p.MaxTorque},
	}
	for _, f := range positive {
		if !(f.value > 0) || math.IsInf(f.value, 1) {
			return &ConfigurationError{Field: f.field, Value: f.value, Reason: "must be a positive finite number"}
		}
	}

	if math.IsNaN(p.CentreHeight) || math.IsInf(p.CentreHeight, 0) {
		return &ConfigurationError{Field: "centre_height", Value: p.CentreHeight, Reason: "must be finite"}
	}

	fractions := []struct {
		field string
		value float64
	}{
		{"weight_distribution", p.WeightDistribution},
		{"aero_load_distribution", p.AeroLoadDistribution},
	}
	for _, f := range fractions {
		if !(f.value >= 0 && f.value <= 1) {
			return &ConfigurationError{Field: f.field, Value: f.value, Reason: "must lie in [0, 1]"}
		}
	}

	for _, t := range []struct {
		field string
		spec  TyreSpec
	}{
		{"front_tyre", p.FrontTyre},
		{"rear_tyre", p.RearTyre},
	} {
		if t.spec.Model == nil {
			continue // NewCar fits the default tyre
		}
		if err := t.spec.Model.Validate(); err != nil {
			return &ConfigurationError{Field: t.field, Err: err}
		}
	}
	return nil
}

// TyreSpec wraps the tyre model fitted to a wheel position.
// The physics of the force curve are encapsulated by Model; adding a new model
// only requires implementing tyre.ForceModel and registering it in decodeTyre.
type TyreSpec struct {
	Model tyre.ForceModel
}

// tyreDisc is the minimum JSON structure needed to read the model discriminator.
type tyreDisc struct {
	Model string `json:"model"`
}

// UnmarshalJSON implements json.Unmarshaler for TyreSpec.
// The object may carry a "model" discriminator key; when it is absent the magic
// formula is assumed. Coefficients missing from the object keep their defaults.
//
// Supported models:
//   - "magic_formula": shape / stiffness / curvature factors.
func (s *TyreSpec) UnmarshalJSON(data []byte) error {
	var disc tyreDisc
	if err := json.Unmarshal(data, &disc); err != nil {
		return fmt.Errorf("reading tyre model discriminator: %w", err)
	}
	return s.decodeTyre(disc.Model, func(mf *tyre.MagicFormula) error {
		return json.Unmarshal(data, mf)
	})
}

// magicFormulaYAML lets the strict YAML decoder accept the discriminator key
// alongside the coefficients.
type magicFormulaYAML struct {
	Model             string `yaml:"model"`
	tyre.MagicFormula `yaml:",inline"`
}

// UnmarshalYAML implements yaml.Unmarshaler (gopkg.in/yaml.v2) for TyreSpec,
// with the same rules as UnmarshalJSON.
func (s *TyreSpec) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw map[string]interface{}
	if err := unmarshal(&raw); err != nil {
		return fmt.Errorf("reading tyre model discriminator: %w", err)
	}
	model, _ := raw["model"].(string)
	return s.decodeTyre(model, func(mf *tyre.MagicFormula) error {
		aux := magicFormulaYAML{MagicFormula: *mf}
		if err := unmarshal(&aux); err != nil {
			return err
		}
		*mf = aux.MagicFormula
		return nil
	})
}

// MarshalJSON writes the discriminator alongside the model's own fields.
func (s TyreSpec) MarshalJSON() ([]byte, error) {
	switch m := s.Model.(type) {
	case nil:
		return []byte("null"), nil
	case tyre.MagicFormula:
		return json.Marshal(struct {
			Model string `json:"model"`
			tyre.MagicFormula
		}{tyre.MagicFormulaModelName, m})
	default:
		return nil, fmt.Errorf("unsupported tyre model %T", s.Model)
	}
}

func (s *TyreSpec) decodeTyre(model string, decodeMF func(*tyre.MagicFormula) error) error {
	switch model {
	case "", tyre.MagicFormulaModelName:
		mf := tyre.DefaultMagicFormula()
		if err := decodeMF(&mf); err != nil {
			return fmt.Errorf("parsing magic formula tyre: %w", err)
		}
		s.Model = mf
	default:
		return fmt.Errorf("unknown tyre model %q", model)
	}
	return nil
}
