// Package scoring evaluates a resume against a job description across a fixed
// set of weighted dimensions and aggregates the results into an overall score
// with prioritized recommendations.
package scoring

import (
	"fmt"
	"math"
	"strings"
)

// weightEpsilon is the tolerance when checking that dimension weights sum to 1.0.
const weightEpsilon = 1e-9

// DimensionSpec is one named, weighted scoring axis.
type DimensionSpec struct {
	Name   string
	Weight float64 // in (0, 1]
}

// DefaultDimensions returns the fixed dimension set. Weights sum to 1.0;
// declaration order here is the canonical result order.
func DefaultDimensions() []DimensionSpec {
	return []DimensionSpec{
		{Name: "Relevance of Experience", Weight: 0.20},
		{Name: "Impact and Achievements", Weight: 0.15},
		{Name: "Technical Proficiency", Weight: 0.15},
		{Name: "Clarity and Structure", Weight: 0.10},
		{Name: "Quantifiable Results", Weight: 0.10},
		{Name: "Communication and Writing Quality", Weight: 0.08},
		{Name: "Growth and Progression", Weight: 0.08},
		{Name: "Innovation and Problem-Solving", Weight: 0.09},
		{Name: "ATS Compatibility", Weight: 0.05},
	}
}

// ValidateDimensions checks the dimension set once at initialization: names
// must be unique and non-empty, each weight in (0, 1], and the weights must
// sum to exactly 1.0 within floating-point tolerance. A misconfigured set
// fails initialization; weights are never silently renormalized.
func ValidateDimensions(specs []DimensionSpec) error {
	if len(specs) == 0 {
		return fmt.Errorf("dimension set is empty")
	}

	seen := make(map[string]bool, len(specs))
	sum := 0.0
	for i, spec := range specs {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			return fmt.Errorf("dimension %d has an empty name", i)
		}
		key := strings.ToLower(name)
		if seen[key] {
			return fmt.Errorf("duplicate dimension %q", spec.Name)
		}
		seen[key] = true

		if spec.Weight <= 0 || spec.Weight > 1 {
			return fmt.Errorf("dimension %q has weight %v outside (0, 1]", spec.Name, spec.Weight)
		}
		sum += spec.Weight
	}

	if math.Abs(sum-1.0) > weightEpsilon {
		return fmt.Errorf("dimension weights sum to %v, expected 1.0", sum)
	}

	return nil
}
