package httpapi

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"

	"github.com/tinoosan/volley/internal/bank"
)

// bankRequest is the POST/PATCH body. Pointers let the decoder tell a missing
// field from a zero value; every field is required. Unknown fields are ignored.
type bankRequest struct {
	AccountNumber  *string      `json:"accountNumber"`
	Trust          *float64     `json:"trust"`
	TransactionFee *json.Number `json:"transactionFee"`
}

type bankResponse struct {
	AccountNumber  string  `json:"accountNumber"`
	Trust          float64 `json:"trust"`
	TransactionFee int     `json:"transactionFee"`
}

func (req bankRequest) toDomain() (bank.Bank, error) {
	switch {
	case req.AccountNumber == nil:
		return bank.Bank{}, errors.New("accountNumber is required")
	case req.Trust == nil:
		return bank.Bank{}, errors.New("trust is required")
	case req.TransactionFee == nil:
		return bank.Bank{}, errors.New("transactionFee is required")
	}
	fee, err := parseFee(*req.TransactionFee)
	if err != nil {
		return bank.Bank{}, err
	}
	return bank.Bank{AccountNumber: *req.AccountNumber, Trust: *req.Trust, TransactionFee: fee}, nil
}

// parseFee accepts integral numbers as-is and truncates fractional ones toward zero.
func parseFee(n json.Number) (int, error) {
	if i, err := strconv.ParseInt(n.String(), 10, 0); err == nil {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, errors.New("transactionFee must be a number")
	}
	t := math.Trunc(f)
	if math.IsNaN(t) || t < math.MinInt64 || t >= math.MaxInt64 {
		return 0, errors.New("transactionFee out of range")
	}
	return int(t), nil
}

func toBankResponse(b bank.Bank) bankResponse {
	return bankResponse{AccountNumber: b.AccountNumber, Trust: b.Trust, TransactionFee: b.TransactionFee}
}
