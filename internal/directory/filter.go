package directory

import (
	"github.com/zdziszkee/bank-directory/internal/compatibility"
	"github.com/zdziszkee/bank-directory/internal/models"
)

// Filter narrows a directory down to the banks usable for a payment
type Filter struct {
	evaluator *compatibility.Evaluator
}

func NewFilter(evaluator *compatibility.Evaluator) *Filter {
	return &Filter{evaluator: evaluator}
}

// Apply keeps the banks located in one of countries (any country when empty)
// that have a BIC and can process product. Mother banks are kept with their
// compatible subsidiaries only, and dropped when none is left. Order is
// preserved and banks is left untouched.
func (f *Filter) Apply(banks []models.BankRecord, countries []string, product string) []models.BankRecord {
	allowed := countrySet(countries)
	result := make([]models.BankRecord, 0, len(banks))

	for _, bank := range banks {
		if !eligible(bank, allowed) {
			continue
		}
		if !bank.HasSubsidiaries() {
			if f.evaluator.IsCompatible(bank.Capabilities, product) {
				result = append(result, bank)
			}
			continue
		}

		subsidiaries := f.compatibleSubsidiaries(bank.Subsidiaries, product)
		if len(subsidiaries) == 0 {
			continue
		}
		bank.Subsidiaries = subsidiaries
		result = append(result, bank)
	}
	return result
}

// ApplyLenient is the flat, permissive variant used for selection options:
// same country and BIC rules, lenient compatibility, no subsidiary handling.
func (f *Filter) ApplyLenient(banks []models.BankRecord, countries []string, product string) []models.BankRecord {
	allowed := countrySet(countries)
	result := make([]models.BankRecord, 0, len(banks))

	for _, bank := range banks {
		if eligible(bank, allowed) && f.evaluator.IsCompatibleLenient(bank.Capabilities, product) {
			result = append(result, bank)
		}
	}
	return result
}

func (f *Filter) compatibleSubsidiaries(subsidiaries []models.BankRecord, product string) []models.BankRecord {
	var compatible []models.BankRecord
	for _, sub := range subsidiaries {
		if f.evaluator.IsCompatible(sub.Capabilities, product) {
			compatible = append(compatible, sub)
		}
	}
	return compatible
}

func eligible(bank models.BankRecord, allowed map[string]struct{}) bool {
	if bank.CountryCode == "" {
		return false
	}
	if len(allowed) > 0 {
		if _, ok := allowed[bank.CountryCode]; !ok {
			return false
		}
	}
	return bank.HasBIC()
}

func countrySet(countries []string) map[string]struct{} {
	set := make(map[string]struct{}, len(countries))
	for _, c := range countries {
		set[c] = struct{}{}
	}
	return set
}
