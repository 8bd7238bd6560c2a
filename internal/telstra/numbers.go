package telstra

import (
	"fmt"
	"regexp"
)

// nationalFormat accepts an 04 mobile of 9-10 digits, or any 10-digit string.
var nationalFormat = regexp.MustCompile(`^(04\d{7,8}|\d{10})$`)

// CheckNationalFormat reports whether n looks like a national-format Australian number.
// It is advisory: the API decides what is valid.
func CheckNationalFormat(n string) bool {
	return nationalFormat.MatchString(n)
}

// SuspectNumbers returns the numbers that fail CheckNationalFormat, in input order.
func SuspectNumbers(numbers []string) []string {
	var suspect []string
	for _, n := range numbers {
		if !CheckNationalFormat(n) {
			suspect = append(suspect, n)
		}
	}
	return suspect
}

// FormatWarning is the operator-facing message for a suspect number.
func FormatWarning(n string) string {
	return fmt.Sprintf("'%s' may not be a valid national-format Australian mobile (e.g. 0412345678)", n)
}
