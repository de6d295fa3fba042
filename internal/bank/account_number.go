package bank

import (
	"regexp"
	"strconv"
	"unicode/utf8"
)

// MaxAccountNumberLen is the longest account number accepted on lookups, in characters.
const MaxAccountNumberLen = 6

// accountNumberPattern is the format enforced on path parameters: a leading
// S or W, at least one word character, and four trailing digits.
const accountNumberPattern = `^([SW])\w+([0-9]{4})$`

var accountNumberRgx = regexp.MustCompile(accountNumberPattern)

// Violation describes one constraint an input failed.
type Violation struct {
	Constraint string
	Message    string
}

// ValidateAccountNumber checks s against every account number constraint and
// returns one Violation per failed constraint, in a stable order. A nil result
// means s is acceptable.
func ValidateAccountNumber(s string) []Violation {
	var out []Violation
	if utf8.RuneCountInString(s) > MaxAccountNumberLen {
		out = append(out, Violation{
			Constraint: "size",
			Message:    "size must be between 0 and " + strconv.Itoa(MaxAccountNumberLen),
		})
	}
	if !accountNumberRgx.MatchString(s) {
		out = append(out, Violation{
			Constraint: "pattern",
			Message:    "must match " + strconv.Quote(accountNumberPattern),
		})
	}
	return out
}
