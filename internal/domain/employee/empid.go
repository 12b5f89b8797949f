package employee

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	serialWidth = 4
	maxSerial   = 9999
)

// BuildIDPrefix derives the allocation key for an employee ID:
// company code + 2-letter first-name code + 2-letter last-name code + year.
// "AB", "John", "Doe", 2024 -> "ABJODO2024".
func BuildIDPrefix(companyCode, firstName, lastName string, year int) string {
	return strings.ToUpper(strings.TrimSpace(companyCode)) +
		nameCode(firstName) +
		nameCode(lastName) +
		fmt.Sprintf("%04d", year)
}

// nameCode takes the first two characters of a name, uppercased. Names
// shorter than two characters are padded with 'X' so the prefix stays
// fixed-width ("J" -> "JX").
func nameCode(name string) string {
	runes := []rune(strings.ToUpper(strings.TrimSpace(name)))
	if len(runes) >= 2 {
		return string(runes[:2])
	}
	for len(runes) < 2 {
		runes = append(runes, 'X')
	}
	return string(runes)
}

// NextEmployeeID computes the successor of lastID within prefix. lastID is
// the greatest persisted ID sharing the prefix, or empty when the prefix is
// fresh. The serial is 4 digits zero-padded; crossing 9999 is a hard
// capacity error, never a wraparound.
func NextEmployeeID(prefix, lastID string) (string, error) {
	serial := 0
	if lastID != "" {
		if !strings.HasPrefix(lastID, prefix) || len(lastID) != len(prefix)+serialWidth {
			return "", fmt.Errorf("malformed employee id %q for prefix %q", lastID, prefix)
		}
		parsed, err := strconv.Atoi(lastID[len(prefix):])
		if err != nil {
			return "", fmt.Errorf("malformed employee id serial %q: %w", lastID, err)
		}
		serial = parsed
	}
	serial++
	if serial > maxSerial {
		return "", ErrIDCapacity
	}
	return fmt.Sprintf("%s%0*d", prefix, serialWidth, serial), nil
}
