package rate

import "errors"

var (
	ErrFromRequired = errors.New("from currency is required")
	ErrToRequired   = errors.New("to currency is required")
	ErrCodeInvalid  = errors.New("currency code must be 3 letters")
)

// CurrencyCodeValidator checks the shape of currency codes before they
// reach the resolver. Existence and enabled-ness are checked against the
// directory later; this only rejects obviously malformed input.
type CurrencyCodeValidator struct{}

func (v *CurrencyCodeValidator) ValidatePair(from, to string) error {
	if from == "" {
		return ErrFromRequired
	}
	if to == "" {
		return ErrToRequired
	}
	if !isCode(from) || !isCode(to) {
		return ErrCodeInvalid
	}
	return nil
}

func (v *CurrencyCodeValidator) ValidateCode(code string) error {
	if code == "" {
		return ErrFromRequired
	}
	if !isCode(code) {
		return ErrCodeInvalid
	}
	return nil
}

func isCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

func NewValidator() *CurrencyCodeValidator {
	return &CurrencyCodeValidator{}
}
