package compatibility

import (
	"regexp"
	"strings"

	"github.com/zdziszkee/bank-directory/internal/models"
)

// Descriptor sentinels of the partner directory
const (
	APIPaymentInitiation = "POST /payments"
	FieldPaymentProduct  = "PaymentProduct"
	FieldDebtorAccount   = "DebtorAccount"
)

var ibanPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{11,30}$`)

// Evaluator answers whether a bank can process a payment product.
// It holds no mutable state and can be shared.
type Evaluator struct {
	matrix                   Matrix
	extraIdentifierCountries map[string]struct{}
}

type Option func(*Evaluator)

// WithExtraIdentifierCountries sets the countries whose banks always need an
// account identifier from the payer. Replaces the default (ES).
func WithExtraIdentifierCountries(countries ...string) Option {
	return func(e *Evaluator) {
		e.extraIdentifierCountries = make(map[string]struct{}, len(countries))
		for _, c := range countries {
			e.extraIdentifierCountries[strings.ToUpper(strings.TrimSpace(c))] = struct{}{}
		}
	}
}

func New(matrix Matrix, opts ...Option) *Evaluator {
	e := &Evaluator{
		matrix:                   matrix,
		extraIdentifierCountries: map[string]struct{}{"ES": {}},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Evaluator) Matrix() Matrix {
	return e.matrix
}

// IsCompatible is the strict check used before initiating a payment.
// Without descriptors the matrix default applies. Each SUPPORTED
// payment-product descriptor of the payment API rewrites the whole product
// set, so products it does not list become unsupported. Unknown products are
// never compatible.
func (e *Evaluator) IsCompatible(capabilities []models.CapabilityDescriptor, product string) bool {
	if !e.matrix.Known(product) {
		return false
	}
	if len(capabilities) == 0 {
		return e.matrix.Default(product)
	}

	supported := e.matrix.snapshot()
	for _, c := range capabilities {
		if !isProductSelector(c) {
			continue
		}
		for code := range supported {
			supported[code] = c.Accepts(code)
		}
	}
	return supported[product]
}

// IsCompatibleLenient is the permissive check used to render selection
// options: a bank is compatible unless one of its descriptors declares a
// non-empty value set without product.
func (e *Evaluator) IsCompatibleLenient(capabilities []models.CapabilityDescriptor, product string) bool {
	for _, c := range capabilities {
		if len(c.Values()) > 0 && !c.Accepts(product) {
			return false
		}
	}
	return true
}

// RequiresExtraIdentifier reports whether the payer's account identifier must
// be collected for bank.
func (e *Evaluator) RequiresExtraIdentifier(bank models.BankRecord) bool {
	if _, ok := e.extraIdentifierCountries[strings.ToUpper(bank.CountryCode)]; ok {
		return true
	}
	for _, c := range bank.Capabilities {
		if c.APIName == APIPaymentInitiation && c.FieldName == FieldDebtorAccount && c.Kind == models.Mandatory {
			return true
		}
	}
	return false
}

// NormalizeIBAN upper-cases iban and strips the spaces of its printed form
func NormalizeIBAN(iban string) string {
	return strings.ToUpper(strings.Join(strings.Fields(iban), ""))
}

// ValidIBAN checks the shape of a normalized IBAN: country, check digits and BBAN.
func ValidIBAN(iban string) bool {
	return ibanPattern.MatchString(iban)
}

func isProductSelector(c models.CapabilityDescriptor) bool {
	return c.APIName == APIPaymentInitiation && c.FieldName == FieldPaymentProduct && c.Kind == models.Supported
}
