package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	models "github.com/zdziszkee/bank-directory/internal/models"
	readers "github.com/zdziszkee/bank-directory/internal/readers"
)

var (
	ErrEmptyLabel         = errors.New("label cannot be empty")
	ErrInvalidBICPrefix   = errors.New("BIC prefix does not match the 8 character institution format")
	ErrInvalidCountryCode = errors.New("country code does not match ISO2 format")
)

var (
	bicPrefixRegex   = regexp.MustCompile(`^[A-Z]{6}[A-Z0-9]{2}$`)
	countryCodeRegex = regexp.MustCompile(`^[A-Z]{2}$`)
)

type AffiliationParser interface {
	ParseAffiliations(records []readers.AffiliationRecord) ([]models.AffiliationEntry, error)
}

// DefaultAffiliationParser normalises codes to upper case and fails on the first invalid record.
type DefaultAffiliationParser struct{}

func (p DefaultAffiliationParser) ParseAffiliations(records []readers.AffiliationRecord) ([]models.AffiliationEntry, error) {
	entries := make([]models.AffiliationEntry, 0, len(records))

	for _, record := range records {
		label := strings.TrimSpace(record.Label)
		if label == "" {
			return nil, fmt.Errorf("record %d: %w", record.Index, ErrEmptyLabel)
		}

		prefix := strings.ToUpper(strings.TrimSpace(record.BICPrefix))
		if !bicPrefixRegex.MatchString(prefix) {
			return nil, fmt.Errorf("record %d (%s): %w: '%s'", record.Index, label, ErrInvalidBICPrefix, record.BICPrefix)
		}

		country := strings.ToUpper(strings.TrimSpace(record.CountryISOCode))
		if !countryCodeRegex.MatchString(country) {
			return nil, fmt.Errorf("record %d (%s): %w: '%s'", record.Index, label, ErrInvalidCountryCode, record.CountryISOCode)
		}

		entries = append(entries, models.AffiliationEntry{
			Label:       label,
			BICPrefix:   prefix,
			CountryCode: country,
		})
	}

	return entries, nil
}
