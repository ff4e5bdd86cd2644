// Package isbn converts and validates ISBN-10 and ISBN-13 identifiers.
// All functions are pure; identifiers are handled stripped of hyphens
// and spaces.
package isbn

import (
	"fmt"
	"strings"
)

// Identifier is a normalized 10- or 13-character ISBN.
type Identifier string

// InvalidFormatError is returned when an identifier cannot be parsed or
// converted. It indicates a programming or input error, not a missing
// book, so callers must handle it explicitly.
type InvalidFormatError struct {
	Value  string
	Reason string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid ISBN %q: %s", e.Value, e.Reason)
}

// Normalize strips hyphens and spaces from an ISBN string.
func Normalize(s string) Identifier {
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, " ", "")
	return Identifier(s)
}

// To13 converts an ISBN-10 to its ISBN-13 form by prepending "978" and
// recomputing the check digit.
func To13(isbn10 Identifier) (Identifier, error) {
	if len(isbn10) != 10 {
		return "", &InvalidFormatError{Value: string(isbn10), Reason: "expected 10 characters"}
	}

	base := "978" + string(isbn10[:9])

	sum := 0
	for i, r := range base {
		d := int(r - '0')
		if d < 0 || d > 9 {
			return "", &InvalidFormatError{Value: string(isbn10), Reason: "non-digit character"}
		}
		if i%2 == 0 {
			sum += d
		} else {
			sum += d * 3
		}
	}

	check := (10 - sum%10) % 10
	return Identifier(fmt.Sprintf("%s%d", base, check)), nil
}

// To10 converts an ISBN-13 to its ISBN-10 form. Only codes with the "978"
// prefix have a 10-digit form; anything else is an error, never a guess.
func To10(isbn13 Identifier) (Identifier, error) {
	if len(isbn13) != 13 {
		return "", &InvalidFormatError{Value: string(isbn13), Reason: "expected 13 digits"}
	}
	for _, r := range isbn13 {
		if r < '0' || r > '9' {
			return "", &InvalidFormatError{Value: string(isbn13), Reason: "non-digit character"}
		}
	}
	if !strings.HasPrefix(string(isbn13), "978") {
		return "", &InvalidFormatError{Value: string(isbn13), Reason: "no ISBN-10 form for prefix " + string(isbn13[:3])}
	}

	base := string(isbn13[3:12])

	sum := 0
	for i, r := range base {
		sum += int(r-'0') * (10 - i)
	}

	check := (11 - sum%11) % 11
	if check == 10 {
		return Identifier(base + "X"), nil
	}
	return Identifier(fmt.Sprintf("%s%d", base, check)), nil
}

// Variants returns the identifier itself plus its cross-format conversion
// when one exists. Conversion failures are silently omitted: many 13-digit
// codes simply have no 10-digit form.
func Variants(id Identifier) []Identifier {
	variants := []Identifier{id}

	switch len(id) {
	case 10:
		if converted, err := To13(id); err == nil {
			variants = append(variants, converted)
		}
	case 13:
		if converted, err := To10(id); err == nil {
			variants = append(variants, converted)
		}
	}

	return variants
}

// Valid10 reports whether the identifier is a checksum-valid ISBN-10.
func Valid10(id Identifier) bool {
	if len(id) != 10 {
		return false
	}

	sum := 0
	for i := 0; i < 10; i++ {
		c := id[i]
		var d int
		switch {
		case c >= '0' && c <= '9':
			d = int(c - '0')
		case (c == 'X' || c == 'x') && i == 9:
			d = 10
		default:
			return false
		}
		sum += d * (10 - i)
	}

	return sum%11 == 0
}

// Valid13 reports whether the identifier is a checksum-valid ISBN-13.
func Valid13(id Identifier) bool {
	if len(id) != 13 {
		return false
	}

	sum := 0
	for i := 0; i < 13; i++ {
		d := int(id[i] - '0')
		if d < 0 || d > 9 {
			return false
		}
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}

	return sum%10 == 0
}
