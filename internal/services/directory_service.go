package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3/log"

	"github.com/zdziszkee/bank-directory/internal/affiliations"
	"github.com/zdziszkee/bank-directory/internal/compatibility"
	"github.com/zdziszkee/bank-directory/internal/directory"
	"github.com/zdziszkee/bank-directory/internal/hierarchy"
	"github.com/zdziszkee/bank-directory/internal/metrics"
	"github.com/zdziszkee/bank-directory/internal/models"
	"github.com/zdziszkee/bank-directory/internal/readers"
)

// SelectOption is one entry of a bank selection list
type SelectOption struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// DirectoryService resolves partner bank directories for payment initiation
type DirectoryService interface {
	ResolveDirectory(ctx context.Context, raw []byte, countries []string, product string) ([]models.BankRecord, error)
	ResolveRecords(ctx context.Context, records []models.BankRecord, countries []string, product string) ([]models.BankRecord, error)
	ValidateSelection(ctx context.Context, raw []byte, bankID, product string, countries []string) (*models.BankRecord, error)
	SelectOptions(ctx context.Context, raw []byte, countries []string, product string) ([]SelectOption, error)
	RequiresExtraIdentifier(bank models.BankRecord) bool
	ValidateAccount(bank models.BankRecord, iban string, countries []string) error
	Affiliations() []models.AffiliationEntry
	Products() []models.Product
}

// directoryService implements DirectoryService
type directoryService struct {
	table     *affiliations.Table
	evaluator *compatibility.Evaluator
	builder   *hierarchy.Builder
	filter    *directory.Filter
	reader    readers.DirectoryReader
	metrics   *metrics.Metrics
}

// NewDirectoryService creates a new instance of the directory service.
// m may be nil to disable metrics.
func NewDirectoryService(table *affiliations.Table, evaluator *compatibility.Evaluator, reader readers.DirectoryReader, m *metrics.Metrics) DirectoryService {
	return &directoryService{
		table:     table,
		evaluator: evaluator,
		builder:   hierarchy.NewBuilder(table),
		filter:    directory.NewFilter(evaluator),
		reader:    reader,
		metrics:   m,
	}
}

// ResolveDirectory parses a partner directory and returns its hierarchical, filtered bank list
func (s *directoryService) ResolveDirectory(ctx context.Context, raw []byte, countries []string, product string) ([]models.BankRecord, error) {
	records, err := s.parse(raw)
	if err != nil {
		return nil, err
	}
	return s.ResolveRecords(ctx, records, countries, product)
}

// ResolveRecords builds and filters an already parsed bank list
func (s *directoryService) ResolveRecords(ctx context.Context, records []models.BankRecord, countries []string, product string) ([]models.BankRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if product == "" {
		return nil, fmt.Errorf("%w: payment product must not be empty", ErrInvalidInput)
	}

	countries = normalizeCountries(countries)
	banks := s.filter.Apply(s.builder.Build(records), countries, product)

	log.Debugf("Resolved %d banks from %d directory entries (countries=%v, product=%s)", len(banks), len(records), countries, product)
	s.metrics.ObserveResolution(product, len(banks))
	return banks, nil
}

// ValidateSelection checks that bankID, an ASPSP id or a BIC as found in
// SelectOptions, is a known bank of an allowed country able to process
// product, and returns it
func (s *directoryService) ValidateSelection(ctx context.Context, raw []byte, bankID, product string, countries []string) (*models.BankRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if bankID == "" || product == "" {
		return nil, fmt.Errorf("%w: bank id and payment product are required", ErrInvalidInput)
	}

	records, err := s.parse(raw)
	if err != nil {
		return nil, err
	}

	bank, err := s.validate(records, bankID, product, normalizeCountries(countries))
	if err != nil {
		log.Infof("Bank selection rejected: %v", err)
		var verr *ValidationError
		if errors.As(err, &verr) {
			s.metrics.ObserveValidation(string(verr.Reason))
		}
		return nil, err
	}

	s.metrics.ObserveValidation("valid")
	return bank, nil
}

func (s *directoryService) validate(records []models.BankRecord, bankID, product string, countries []string) (*models.BankRecord, error) {
	banks := s.builder.Build(records)
	bank, ok := directory.Find(banks, bankID)
	if !ok {
		// Selection lists are keyed by BIC.
		bank, ok = directory.FindByBIC(banks, bankID)
	}
	if !ok {
		return nil, &ValidationError{Reason: ReasonUnknownBank, BankID: bankID, Product: product}
	}
	if !countryAllowed(bank.CountryCode, countries) {
		return nil, &ValidationError{Reason: ReasonCountryNotAllowed, BankID: bankID, CountryCode: bank.CountryCode, Product: product}
	}
	if !s.evaluator.IsCompatible(bank.Capabilities, product) {
		return nil, &ValidationError{Reason: ReasonIncompatibleProduct, BankID: bankID, CountryCode: bank.CountryCode, Product: product}
	}
	return &bank, nil
}

// SelectOptions renders the flat selection list of a partner directory as "BIC - name" choices
func (s *directoryService) SelectOptions(ctx context.Context, raw []byte, countries []string, product string) ([]SelectOption, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if product == "" {
		return nil, fmt.Errorf("%w: payment product must not be empty", ErrInvalidInput)
	}

	records, err := s.parse(raw)
	if err != nil {
		return nil, err
	}

	banks := s.filter.ApplyLenient(records, normalizeCountries(countries), product)
	options := make([]SelectOption, 0, len(banks))
	for _, bank := range banks {
		value := bank.BIC
		if bank.HasName() {
			value += " - " + bank.PrimaryName()
		}
		options = append(options, SelectOption{Key: bank.BIC, Value: value})
	}
	return options, nil
}

func (s *directoryService) RequiresExtraIdentifier(bank models.BankRecord) bool {
	return s.evaluator.RequiresExtraIdentifier(bank)
}

// ValidateAccount checks the payer account identifier supplied for bank. It is
// required when RequiresExtraIdentifier holds and, when given, must be an IBAN
// issued in one of countries.
func (s *directoryService) ValidateAccount(bank models.BankRecord, iban string, countries []string) error {
	iban = compatibility.NormalizeIBAN(iban)
	if iban == "" {
		if s.evaluator.RequiresExtraIdentifier(bank) {
			return &ValidationError{Reason: ReasonAccountRequired, BankID: bank.ID, CountryCode: bank.CountryCode}
		}
		return nil
	}
	if !compatibility.ValidIBAN(iban) {
		return fmt.Errorf("%w: malformed IBAN", ErrInvalidInput)
	}
	if country := iban[:2]; !countryAllowed(country, normalizeCountries(countries)) {
		return &ValidationError{Reason: ReasonAccountCountryNotAllowed, BankID: bank.ID, CountryCode: country}
	}
	return nil
}

func (s *directoryService) Affiliations() []models.AffiliationEntry {
	return s.table.Entries()
}

func (s *directoryService) Products() []models.Product {
	return s.evaluator.Matrix().Products()
}

func (s *directoryService) parse(raw []byte) ([]models.BankRecord, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDirectory)
	}
	doc, err := s.reader.ReadDirectory(bytes.NewReader(raw))
	if err != nil {
		log.Warnf("Failed to read bank directory: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDirectory, err)
	}
	return doc.Banks, nil
}

func normalizeCountries(countries []string) []string {
	normalized := make([]string, 0, len(countries))
	for _, c := range countries {
		if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
			normalized = append(normalized, c)
		}
	}
	return normalized
}

func countryAllowed(country string, countries []string) bool {
	if country == "" {
		return false
	}
	if len(countries) == 0 {
		return true
	}
	for _, c := range countries {
		if c == country {
			return true
		}
	}
	return false
}
