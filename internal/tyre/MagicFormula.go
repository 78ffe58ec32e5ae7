package tyre

import (
	"errors"
	"fmt"
	"math"

	"github.com/samber/lo"
)

// MagicFormulaModelName is the JSON discriminator string for the MagicFormula model.
const MagicFormulaModelName = "magic_formula"

// Default magic formula coefficients, empirically tuned.
const (
	DefaultShapeFactor     = 0.0180
	DefaultStiffnessFactor = 18.6206
	DefaultCurvatureFactor = 1.1095
)

const (
	radiansPerDegree = math.Pi / 180
	horizontalShift  = 0.0
)

// ErrInvalidCoefficient is matched by every CoefficientError.
var ErrInvalidCoefficient = errors.New("invalid tyre coefficient")

// CoefficientError reports a magic formula coefficient that is not strictly positive.
type CoefficientError struct {
	Name  string
	Value float64
}

func (e *CoefficientError) Error() string {
	return fmt.Sprintf("tyre coefficient %s must be a positive finite number, got %v", e.Name, e.Value)
}

func (e *CoefficientError) Is(target error) bool { return target == ErrInvalidCoefficient }

// MagicFormula implements ForceModel using a Pacejka-style curve with a fixed
// (zero) horizontal shift. The curve rises from zero, peaks, and declines mildly
// at large slip for the default coefficients.
//
// JSON discriminator: "model": "magic_formula"
type MagicFormula struct {
	ShapeFactor     float64 `json:"shape_factor" yaml:"shape_factor"`         // C
	StiffnessFactor float64 `json:"stiffness_factor" yaml:"stiffness_factor"` // B
	CurvatureFactor float64 `json:"curvature_factor" yaml:"curvature_factor"` // E
}

// DefaultMagicFormula returns the model with the default coefficients.
func DefaultMagicFormula() MagicFormula {
	return MagicFormula{
		ShapeFactor:     DefaultShapeFactor,
		StiffnessFactor: DefaultStiffnessFactor,
		CurvatureFactor: DefaultCurvatureFactor,
	}
}

// NewMagicFormula builds a validated model from the shape, stiffness and curvature factors.
func NewMagicFormula(shape, stiffness, curvature float64) (MagicFormula, error) {
	m := MagicFormula{ShapeFactor: shape, StiffnessFactor: stiffness, CurvatureFactor: curvature}
	if err := m.Validate(); err != nil {
		return MagicFormula{}, err
	}
	return m, nil
}

func (m MagicFormula) Validate() error {
	for _, c := range []struct {
		name  string
		value float64
	}{
		{"shape_factor", m.ShapeFactor},
		{"stiffness_factor", m.StiffnessFactor},
		{"curvature_factor", m.CurvatureFactor},
	} {
		if !(c.value > 0) || math.IsInf(c.value, 1) {
			return &CoefficientError{Name: c.name, Value: c.value}
		}
	}
	return nil
}

func (m MagicFormula) CurveValue(slipDeg float64) float64 {
	x := slipDeg*radiansPerDegree + horizontalShift
	bx := m.StiffnessFactor * x
	return math.Sin(m.ShapeFactor * math.Atan(bx-m.CurvatureFactor*(bx-math.Atan(bx))))
}

func (m MagicFormula) CurveValues(slipDeg []float64) []float64 {
	return lo.Map(slipDeg, func(s float64, _ int) float64 {
		return m.CurveValue(s)
	})
}

// MaxForceOver returns 0 for an empty domain.
func (m MagicFormula) MaxForceOver(domain []float64) float64 {
	return lo.Max(m.CurveValues(domain))
}

func (m MagicFormula) MaxLateralForce() float64 {
	slipAngles := SlipDomain()
	return m.MaxForceOver(slipAngles)
}

func (m MagicFormula) MaxLongitudinalForce() float64 {
	slipRatios := SlipDomain()
	return m.MaxForceOver(slipRatios)
}
