package service

import (
	"fmt"
	"strings"
)

// ClampPolicy decides whether predictions are limited to the score range
type ClampPolicy string

const (
	ClampNone  ClampPolicy = "none"
	ClampScore ClampPolicy = "score"
)

const (
	ScoreMin = 0.0
	ScoreMax = 100.0
)

// ParseClampPolicy accepts "none" or "score"; empty means none
func ParseClampPolicy(s string) (ClampPolicy, error) {
	switch ClampPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", ClampNone:
		return ClampNone, nil
	case ClampScore:
		return ClampScore, nil
	}
	return "", fmt.Errorf("unknown clamp policy %q (want %q or %q)", s, ClampNone, ClampScore)
}

// Apply returns the value after the policy and whether it was changed
func (c ClampPolicy) Apply(v float64) (float64, bool) {
	if c != ClampScore {
		return v, false
	}
	switch {
	case v < ScoreMin:
		return ScoreMin, true
	case v > ScoreMax:
		return ScoreMax, true
	}
	return v, false
}
