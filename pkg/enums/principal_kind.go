package enums

import "fmt"

// PrincipalKind identifies which credential namespace a principal belongs to.
type PrincipalKind string

const (
	PrincipalKindLearner PrincipalKind = "learner"
	PrincipalKindAdmin   PrincipalKind = "admin"
)

var validPrincipalKinds = []PrincipalKind{
	PrincipalKindLearner,
	PrincipalKindAdmin,
}

// String implements fmt.Stringer.
func (k PrincipalKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known PrincipalKind.
func (k PrincipalKind) IsValid() bool {
	for _, candidate := range validPrincipalKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParsePrincipalKind converts raw input into a PrincipalKind.
func ParsePrincipalKind(value string) (PrincipalKind, error) {
	for _, candidate := range validPrincipalKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid principal kind %q", value)
}
