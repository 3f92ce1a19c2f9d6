package services

import (
	"fmt"
	"strconv"
	"strings"

	"plantkeeper/internal/common"
)

// ParseNumber parses a user-supplied numeric string and checks it against an
// inclusive range. Returned errors wrap common.ErrInvalidNumber so the CLI
// can surface them as validation messages.
func ParseNumber(value string, min, max float64) (float64, error) {
	num, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", value, common.ErrInvalidNumber)
	}
	if num < min || num > max {
		return 0, fmt.Errorf("%v not in [%v, %v]: %w", num, min, max, common.ErrInvalidNumber)
	}
	return num, nil
}

// FormatNumber renders a numeric value with the given number of decimals,
// the way measurements are shown in lists.
func FormatNumber(value float64, decimals int) string {
	return strconv.FormatFloat(value, 'f', decimals, 64)
}
