package bfvm

import "fmt"

// EOFPolicy decides what ',' stores when the input is exhausted.
type EOFPolicy uint8

const (
	// EOFMinusOne stores -1, which is CellMax under 8-bit wrapping
	EOFMinusOne EOFPolicy = iota
	EOFZero
	EOFUnchanged
)

var eofPolicyNames = map[EOFPolicy]string{
	EOFMinusOne:  "minus-one",
	EOFZero:      "zero",
	EOFUnchanged: "unchanged",
}

func (p EOFPolicy) String() string {
	if name, ok := eofPolicyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("EOFPolicy(%d)", uint8(p))
}

func ParseEOFPolicy(str string) (EOFPolicy, error) {
	if str == "" {
		return EOFMinusOne, nil
	}
	for policy, name := range eofPolicyNames {
		if name == str {
			return policy, nil
		}
	}
	return 0, fmt.Errorf("unknown eof policy: %q", str)
}

func (p EOFPolicy) apply(cell Cell) Cell {
	switch p {
	case EOFZero:
		return 0
	case EOFUnchanged:
		return cell
	}
	return CellOf(-1)
}
