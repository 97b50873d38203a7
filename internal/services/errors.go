package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput     = errors.New("invalid input provided")
	ErrInvalidDirectory = errors.New("invalid bank directory")
	ErrValidation       = errors.New("bank selection rejected")
)

// ValidationReason names the check a bank selection failed
type ValidationReason string

const (
	ReasonUnknownBank         ValidationReason = "unknown_bank"
	ReasonCountryNotAllowed   ValidationReason = "country_not_allowed"
	ReasonIncompatibleProduct ValidationReason = "incompatible_product"

	ReasonAccountRequired          ValidationReason = "account_required"
	ReasonAccountCountryNotAllowed ValidationReason = "account_country_not_allowed"
)

// ValidationError is returned when a selected bank cannot be used for a payment
type ValidationError struct {
	Reason      ValidationReason
	BankID      string
	CountryCode string
	Product     string
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonUnknownBank:
		return fmt.Sprintf("bank %q not found in directory", e.BankID)
	case ReasonCountryNotAllowed:
		return fmt.Sprintf("bank %q country %q is not allowed", e.BankID, e.CountryCode)
	case ReasonIncompatibleProduct:
		return fmt.Sprintf("bank %q does not support payment product %q", e.BankID, e.Product)
	case ReasonAccountRequired:
		return fmt.Sprintf("bank %q requires the payer IBAN", e.BankID)
	case ReasonAccountCountryNotAllowed:
		return fmt.Sprintf("IBAN country %q is not allowed", e.CountryCode)
	default:
		return fmt.Sprintf("bank %q rejected: %s", e.BankID, e.Reason)
	}
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
