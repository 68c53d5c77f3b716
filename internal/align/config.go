package align

import (
	"fmt"
	"strings"
)

// Substitution terms add up to at most 1, so enhanced costs never exceed the
// unit costs used in Levenshtein mode.
const (
	gapCost        = 1.0
	lemmaCost      = 0.45
	posCost        = 0.25
	contentPOSCost = 0.125
	charWeight     = 0.3
	tieEpsilon     = 1e-9

	DefaultCaseCost        = 0.1
	DefaultTransposeWeight = 0.5
)

// Strategy selects how adjacent atomic edits are grouped into spans.
type Strategy uint8

const (
	Rules Strategy = iota
	AllSplit
	AllMerge
	AllEqual
)

var strategyNames = [...]string{
	Rules:    "rules",
	AllSplit: "all-split",
	AllMerge: "all-merge",
	AllEqual: "all-equal",
}

// Strategies lists every selectable strategy name.
func Strategies() []string {
	out := make([]string, len(strategyNames))
	copy(out, strategyNames[:])
	return out
}

func (s Strategy) String() string {
	if int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return fmt.Sprintf("Strategy(%d)", uint8(s))
}

// ParseStrategy maps a selector such as "all-equal" to its Strategy.
// An empty selector means Rules.
func ParseStrategy(name string) (Strategy, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return Rules, nil
	}
	for i, s := range strategyNames {
		if s == n {
			return Strategy(i), nil
		}
	}
	return Rules, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownStrategy, name, strings.Join(strategyNames[:], ", "))
}

func (s Strategy) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Strategy) UnmarshalText(b []byte) error {
	v, err := ParseStrategy(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
