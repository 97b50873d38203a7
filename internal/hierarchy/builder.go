package hierarchy

import (
	"sort"

	"github.com/zdziszkee/bank-directory/internal/affiliations"
	"github.com/zdziszkee/bank-directory/internal/models"
)

// Builder groups raw directory records under the mother banks of an affiliation table
type Builder struct {
	table *affiliations.Table
}

func NewBuilder(table *affiliations.Table) *Builder {
	return &Builder{table: table}
}

// Build returns the two-level directory: standalone banks and synthetic
// mother banks holding their subsidiaries, both sorted by primary name.
// Records without a BIC or a name are dropped and subsidiaries declared by
// raw records are ignored. Mothers without subsidiaries are not returned.
func (b *Builder) Build(raw []models.BankRecord) []models.BankRecord {
	result := make([]models.BankRecord, 0, len(raw))
	subsidiaries := make(map[string][]models.BankRecord)

	for _, record := range raw {
		if !record.HasBIC() || !record.HasName() {
			continue
		}
		// Only synthetic mothers carry subsidiaries.
		record.Subsidiaries = nil
		prefix := models.BICPrefix(record.BIC)
		if _, ok := b.table.ByPrefix(prefix); ok {
			subsidiaries[prefix] = append(subsidiaries[prefix], record)
			continue
		}
		result = append(result, record)
	}

	// Entries are label ordered, so mothers sharing a name keep a stable position.
	for _, entry := range b.table.Entries() {
		subs, ok := subsidiaries[entry.BICPrefix]
		if !ok {
			continue
		}
		sortByPrimaryName(subs)
		result = append(result, motherBank(entry, subs))
	}

	sortByPrimaryName(result)
	return result
}

func motherBank(entry models.AffiliationEntry, subsidiaries []models.BankRecord) models.BankRecord {
	return models.BankRecord{
		BIC:          entry.BICPrefix,
		CountryCode:  entry.CountryCode,
		Names:        []string{entry.Label},
		Subsidiaries: subsidiaries,
	}
}

func sortByPrimaryName(banks []models.BankRecord) {
	sort.SliceStable(banks, func(i, j int) bool {
		return banks[i].PrimaryName() < banks[j].PrimaryName()
	})
}
