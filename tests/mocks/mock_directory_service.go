package mocks

import (
	"context"

	models "github.com/zdziszkee/bank-directory/internal/models"
	service "github.com/zdziszkee/bank-directory/internal/services"
)

// MockDirectoryService implements service.DirectoryService.
type MockDirectoryService struct {
	ResolveDirectoryFunc        func(ctx context.Context, raw []byte, countries []string, product string) ([]models.BankRecord, error)
	ResolveRecordsFunc          func(ctx context.Context, records []models.BankRecord, countries []string, product string) ([]models.BankRecord, error)
	ValidateSelectionFunc       func(ctx context.Context, raw []byte, bankID, product string, countries []string) (*models.BankRecord, error)
	SelectOptionsFunc           func(ctx context.Context, raw []byte, countries []string, product string) ([]service.SelectOption, error)
	RequiresExtraIdentifierFunc func(bank models.BankRecord) bool
	ValidateAccountFunc         func(bank models.BankRecord, iban string, countries []string) error
	AffiliationsFunc            func() []models.AffiliationEntry
	ProductsFunc                func() []models.Product
}

func (m *MockDirectoryService) ResolveDirectory(ctx context.Context, raw []byte, countries []string, product string) ([]models.BankRecord, error) {
	return m.ResolveDirectoryFunc(ctx, raw, countries, product)
}

func (m *MockDirectoryService) ResolveRecords(ctx context.Context, records []models.BankRecord, countries []string, product string) ([]models.BankRecord, error) {
	return m.ResolveRecordsFunc(ctx, records, countries, product)
}

func (m *MockDirectoryService) ValidateSelection(ctx context.Context, raw []byte, bankID, product string, countries []string) (*models.BankRecord, error) {
	return m.ValidateSelectionFunc(ctx, raw, bankID, product, countries)
}

func (m *MockDirectoryService) SelectOptions(ctx context.Context, raw []byte, countries []string, product string) ([]service.SelectOption, error) {
	return m.SelectOptionsFunc(ctx, raw, countries, product)
}

func (m *MockDirectoryService) RequiresExtraIdentifier(bank models.BankRecord) bool {
	if m.RequiresExtraIdentifierFunc == nil {
		return false
	}
	return m.RequiresExtraIdentifierFunc(bank)
}

func (m *MockDirectoryService) ValidateAccount(bank models.BankRecord, iban string, countries []string) error {
	return m.ValidateAccountFunc(bank, iban, countries)
}

func (m *MockDirectoryService) Affiliations() []models.AffiliationEntry {
	return m.AffiliationsFunc()
}

func (m *MockDirectoryService) Products() []models.Product {
	return m.ProductsFunc()
}
