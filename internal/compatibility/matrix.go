package compatibility

import "github.com/zdziszkee/bank-directory/internal/models"

const (
	ProductNormal  = "Normal"
	ProductInstant = "Instant"
)

// Matrix is the operator-configured default compatibility of each known payment product
type Matrix struct {
	codes    []string
	defaults map[string]bool
}

// NewMatrix builds a matrix from products in order. A repeated code keeps its
// first position and its last default.
func NewMatrix(products ...models.Product) Matrix {
	m := Matrix{defaults: make(map[string]bool, len(products))}
	for _, p := range products {
		if _, ok := m.defaults[p.Code]; !ok {
			m.codes = append(m.codes, p.Code)
		}
		m.defaults[p.Code] = p.SupportedByDefault
	}
	return m
}

// DefaultMatrix returns the SEPA products: Normal supported by default, Instant not.
func DefaultMatrix() Matrix {
	return NewMatrix(DefaultProducts()...)
}

func DefaultProducts() []models.Product {
	return []models.Product{
		{Code: ProductNormal, SupportedByDefault: true},
		{Code: ProductInstant, SupportedByDefault: false},
	}
}

// Products returns the known products in configured order
func (m Matrix) Products() []models.Product {
	products := make([]models.Product, 0, len(m.codes))
	for _, code := range m.codes {
		products = append(products, models.Product{Code: code, SupportedByDefault: m.defaults[code]})
	}
	return products
}

func (m Matrix) Known(code string) bool {
	_, ok := m.defaults[code]
	return ok
}

// Default returns the default compatibility of code; unknown codes are unsupported
func (m Matrix) Default(code string) bool {
	return m.defaults[code]
}

func (m Matrix) snapshot() map[string]bool {
	values := make(map[string]bool, len(m.defaults))
	for code, supported := range m.defaults {
		values[code] = supported
	}
	return values
}
