package invoke

import (
	"fmt"
	"strings"
)

// Impact describes how much an operation changes remote state.
// The zero value is unset and behaves as ImpactHigh when used as a threshold.
type Impact int

const (
	ImpactNone Impact = iota + 1
	ImpactLow
	ImpactMedium
	ImpactHigh
)

var impactNames = map[Impact]string{
	ImpactNone:   "none",
	ImpactLow:    "low",
	ImpactMedium: "medium",
	ImpactHigh:   "high",
}

func (i Impact) String() string {
	if name, ok := impactNames[i]; ok {
		return name
	}
	return "none"
}

// ParseImpact parses an impact name (none, low, medium, high).
func ParseImpact(s string) (Impact, error) {
	for impact, name := range impactNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return impact, nil
		}
	}
	return 0, fmt.Errorf("unknown impact %q (expected none, low, medium or high)", s)
}

// Gated reports whether an operation of impact i needs confirmation under
// the given threshold. A threshold of ImpactNone disables confirmation.
func (i Impact) Gated(threshold Impact) bool {
	if threshold == 0 {
		threshold = ImpactHigh
	}
	if threshold == ImpactNone || i <= ImpactNone {
		return false
	}
	return i >= threshold
}
