package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Amount denominations.
const (
	// Decimals is the number of decimal places in the display unit.
	Decimals = 6

	// MicroUnit is the number of micro-units per display unit.
	MicroUnit = 1_000_000
)

// Amount is a value in integer micro-units (display unit scaled by 1e6).
type Amount uint64

// ParseAmount converts a decimal string like "1.5" into micro-units.
// At most Decimals fractional digits are accepted; negatives are rejected.
func ParseAmount(s string) (Amount, error) {
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("negative amount")
	}

	parts := strings.SplitN(s, ".", 2)

	whole, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid whole part: %w", err)
	}

	var frac uint64
	if len(parts) == 2 {
		fracStr := parts[1]
		if len(fracStr) > Decimals {
			return 0, fmt.Errorf("too many decimal places (max %d)", Decimals)
		}
		// Pad to Decimals digits.
		fracStr = fracStr + strings.Repeat("0", Decimals-len(fracStr))
		frac, err = strconv.ParseUint(fracStr, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid fractional part: %w", err)
		}
	}

	if whole > math.MaxUint64/MicroUnit {
		return 0, fmt.Errorf("amount overflows")
	}
	micro := whole * MicroUnit
	if micro > math.MaxUint64-frac {
		return 0, fmt.Errorf("amount overflows")
	}
	return Amount(micro + frac), nil
}

// Micro returns the amount as a decimal string of micro-units
// (the form the wire format expects).
func (a Amount) Micro() string {
	return strconv.FormatUint(uint64(a), 10)
}

// String formats the amount in display units with trailing zeros trimmed.
func (a Amount) String() string {
	whole := uint64(a) / MicroUnit
	frac := uint64(a) % MicroUnit
	if frac == 0 {
		return strconv.FormatUint(whole, 10)
	}
	s := fmt.Sprintf("%d.%06d", whole, frac)
	return strings.TrimRight(s, "0")
}

// Units returns the whole display-unit part (truncated).
func (a Amount) Units() uint64 {
	return uint64(a) / MicroUnit
}
