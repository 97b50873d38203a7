package directory

import (
	"strings"

	"github.com/zdziszkee/bank-directory/internal/models"
)

// Find returns the bank with the given id, looking at top-level banks and one
// level of subsidiaries, in list order. Synthetic mother banks have no id and
// are never returned.
func Find(banks []models.BankRecord, id string) (models.BankRecord, bool) {
	if id == "" {
		return models.BankRecord{}, false
	}
	return find(banks, func(b models.BankRecord) bool { return b.ID == id })
}

// FindByBIC is Find keyed on the BIC. Matching is case-insensitive and
// synthetic mother banks are skipped like in Find.
func FindByBIC(banks []models.BankRecord, bic string) (models.BankRecord, bool) {
	return find(banks, func(b models.BankRecord) bool {
		return b.ID != "" && b.HasBIC() && strings.EqualFold(b.BIC, bic)
	})
}

func find(banks []models.BankRecord, match func(models.BankRecord) bool) (models.BankRecord, bool) {
	for _, bank := range banks {
		if match(bank) {
			return bank, true
		}
		for _, sub := range bank.Subsidiaries {
			if match(sub) {
				return sub, true
			}
		}
	}
	return models.BankRecord{}, false
}

// ParseCountryCodes splits a comma separated country list such as "fr, ES"
func ParseCountryCodes(s string) []string {
	var codes []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}
