// Package bank defines the bank record and the rules on its account number.
package bank

import "github.com/tinoosan/volley/internal/errs"

// Bank is an immutable value keyed by AccountNumber. Updates replace the whole
// record; there is no field-level mutation.
type Bank struct {
	AccountNumber  string
	Trust          float64
	TransactionFee int
}

// NotFound is the failure returned when no record has the given account number.
func NotFound(accountNumber string) error {
	return errs.NotFoundf("Could not find bank with account number %s", accountNumber)
}

// Duplicate is the failure returned when creating a record whose account number is taken.
func Duplicate(accountNumber string) error {
	return errs.Duplicatef("Bank with account number %s already exists", accountNumber)
}

// DefaultSeed returns the records a fresh development store starts with.
func DefaultSeed() []Bank {
	return []Bank{
		{AccountNumber: "SW1234", Trust: 2.0, TransactionFee: 1},
		{AccountNumber: "SW1010", Trust: 17.0, TransactionFee: 0},
		{AccountNumber: "SW5678", Trust: 0.0, TransactionFee: 100},
	}
}
