package models

import "strings"

// CapabilityKind is the type of a capability declared by a bank
type CapabilityKind string

const (
	Supported    CapabilityKind = "SUPPORTED"
	Mandatory    CapabilityKind = "MANDATORY"
	NotSupported CapabilityKind = "NOT_SUPPORTED"
)

// ValueSeparator splits the accepted values of a capability
const ValueSeparator = "|"

// bicPrefixLength is the institution part of a BIC (bank, country and location codes)
const bicPrefixLength = 8

// CapabilityDescriptor is one declared capability of a bank, as sent by the partner directory
type CapabilityDescriptor struct {
	APIName         string         `json:"Api"`
	FieldName       string         `json:"Fieldname"`
	Kind            CapabilityKind `json:"Type"`
	Value           string         `json:"Value"`
	ProtocolVersion string         `json:"ProtocolVersion,omitempty"`
}

// Values returns the accepted values of the descriptor, in declaration order
func (d CapabilityDescriptor) Values() []string {
	var values []string
	for _, v := range strings.Split(d.Value, ValueSeparator) {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// Accepts reports whether value is one of the accepted values
func (d CapabilityDescriptor) Accepts(value string) bool {
	for _, v := range d.Values() {
		if v == value {
			return true
		}
	}
	return false
}

// BankRecord represents an ASPSP entry. Records with subsidiaries are synthetic
// mother banks built from the affiliation table.
type BankRecord struct {
	ID           string                 `json:"AspspId,omitempty"`
	BIC          string                 `json:"BIC,omitempty"`
	CountryCode  string                 `json:"CountryCode,omitempty"`
	Names        []string               `json:"Name,omitempty"`
	Capabilities []CapabilityDescriptor `json:"Details,omitempty"`
	Subsidiaries []BankRecord           `json:"Subsidiaries,omitempty"`
}

// PrimaryName returns the first display name, or "" when the record has none
func (b BankRecord) PrimaryName() string {
	if len(b.Names) == 0 {
		return ""
	}
	return b.Names[0]
}

func (b BankRecord) HasBIC() bool {
	return b.BIC != ""
}

func (b BankRecord) HasName() bool {
	return len(b.Names) > 0
}

func (b BankRecord) HasSubsidiaries() bool {
	return len(b.Subsidiaries) > 0
}

// AffiliationEntry is a static mother bank definition
type AffiliationEntry struct {
	Label       string `json:"label"`
	BICPrefix   string `json:"bic_prefix"`
	CountryCode string `json:"country_code"`
}

// Product is one row of the default compatibility matrix
type Product struct {
	Code               string `json:"code" koanf:"code"`
	SupportedByDefault bool   `json:"supported_by_default" koanf:"supported_by_default"`
}

// BICPrefix returns the first 8 characters of bic, or bic itself when shorter
func BICPrefix(bic string) string {
	if len(bic) >= bicPrefixLength {
		return bic[:bicPrefixLength]
	}
	return bic
}
