package hierarchy_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zdziszkee/bank-directory/internal/affiliations"
	"github.com/zdziszkee/bank-directory/internal/hierarchy"
	"github.com/zdziszkee/bank-directory/internal/models"
)

func TestHierarchy(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Hierarchy Suite")
}

func bank(id, bic, name string) models.BankRecord {
	b := models.BankRecord{ID: id, BIC: bic, CountryCode: "FR"}
	if name != "" {
		b.Names = []string{name}
	}
	return b
}

func primaryNames(banks []models.BankRecord) []string {
	names := make([]string, 0, len(banks))
	for _, b := range banks {
		names = append(names, b.PrimaryName())
	}
	return names
}

var _ = Describe("Builder", func() {
	var builder *hierarchy.Builder

	BeforeEach(func() {
		table, err := affiliations.New([]models.AffiliationEntry{
			{Label: "Mother", BICPrefix: "AAAAFRPP", CountryCode: "FR"},
			{Label: "Credit Agricole", BICPrefix: "AGRIFRPP", CountryCode: "FR"},
			{Label: "Unused Mother", BICPrefix: "UUUUFRPP", CountryCode: "FR"},
		})
		Expect(err).NotTo(HaveOccurred())
		builder = hierarchy.NewBuilder(table)
	})

	It("should group subsidiaries under a synthetic mother", func() {
		result := builder.Build([]models.BankRecord{
			bank("2", "AAAAFRPP2", "Sub Two"),
			bank("1", "AAAAFRPP1", "Sub One"),
		})

		Expect(result).To(HaveLen(1))
		mother := result[0]
		Expect(mother.ID).To(BeEmpty())
		Expect(mother.BIC).To(Equal("AAAAFRPP"))
		Expect(mother.CountryCode).To(Equal("FR"))
		Expect(mother.Names).To(Equal([]string{"Mother"}))
		Expect(primaryNames(mother.Subsidiaries)).To(Equal([]string{"Sub One", "Sub Two"}))
	})

	It("should build the directory with affiliation", func() {
		result := builder.Build([]models.BankRecord{
			bank("1", "PSSTFRPPBOR", "La Banque Postale"),
			bank("2", "", "Banque incomplete"),
			bank("3", "PSSTFRPPBO1", ""),
			bank("4", "AGRIFRPPXX2", "Credit Agricole Paris"),
			bank("5", "AGRIFRPPXX3", "Credit Agricole Alpes Provence"),
			bank("6", "AGRIFRPPXX1", "Credit Agricole Alpes Maritimes"),
		})

		Expect(result).To(HaveLen(2))
		Expect(result[0].PrimaryName()).To(Equal("Credit Agricole"))
		Expect(result[0].BIC).To(Equal("AGRIFRPP"))
		Expect(primaryNames(result[0].Subsidiaries)).To(Equal([]string{
			"Credit Agricole Alpes Maritimes",
			"Credit Agricole Alpes Provence",
			"Credit Agricole Paris",
		}))
		Expect(result[0].Subsidiaries[0].BIC).To(Equal("AGRIFRPPXX1"))
		Expect(result[0].Subsidiaries[2].BIC).To(Equal("AGRIFRPPXX2"))

		Expect(result[1].PrimaryName()).To(Equal("La Banque Postale"))
		Expect(result[1].BIC).To(Equal("PSSTFRPPBOR"))
		Expect(result[1].HasSubsidiaries()).To(BeFalse())
	})

	It("should place every valid record exactly once", func() {
		raw := []models.BankRecord{
			bank("1", "AAAAFRPP1", "Sub One"),
			bank("2", "BBBBFRPP", "Independent"),
			bank("3", "AGRIFRPPXX1", "Credit Agricole Nord"),
			bank("4", "", "No BIC"),
			bank("5", "AAAAFRPP2", "Sub Two"),
		}
		result := builder.Build(raw)

		seen := map[string]int{}
		for _, top := range result {
			if top.ID != "" {
				seen[top.ID]++
			}
			for _, sub := range top.Subsidiaries {
				seen[sub.ID]++
			}
		}
		Expect(seen).To(Equal(map[string]int{"1": 1, "2": 1, "3": 1, "5": 1}))
	})

	It("should never return mothers without subsidiaries", func() {
		result := builder.Build([]models.BankRecord{bank("1", "BBBBFRPP", "Independent")})
		Expect(result).To(HaveLen(1))
		Expect(result[0].BIC).To(Equal("BBBBFRPP"))
		for _, top := range result {
			Expect(top.BIC).NotTo(Equal("UUUUFRPP"))
		}
	})

	It("should keep the synthetic mother when a raw record carries its exact BIC", func() {
		result := builder.Build([]models.BankRecord{bank("9", "AAAAFRPP", "Raw Mother")})

		Expect(result).To(HaveLen(1))
		Expect(result[0].PrimaryName()).To(Equal("Mother"))
		Expect(result[0].ID).To(BeEmpty())
		Expect(result[0].Subsidiaries).To(HaveLen(1))
		Expect(result[0].Subsidiaries[0].ID).To(Equal("9"))
	})

	It("should treat short BICs as their own prefix", func() {
		result := builder.Build([]models.BankRecord{bank("1", "IT14004", "Santander")})
		Expect(result).To(HaveLen(1))
		Expect(result[0].ID).To(Equal("1"))
	})

	It("should sort top-level entries by name and keep ties in input order", func() {
		result := builder.Build([]models.BankRecord{
			bank("1", "ZZZZFRPP", "Beta"),
			bank("2", "YYYYFRPP", "Alpha"),
			bank("3", "XXXXFRPP", "Beta"),
			bank("4", "AAAAFRPPXXX", "Sub"),
		})

		Expect(primaryNames(result)).To(Equal([]string{"Alpha", "Beta", "Beta", "Mother"}))
		Expect(result[1].ID).To(Equal("1"))
		Expect(result[2].ID).To(Equal("3"))
	})

	It("should ignore subsidiaries declared by raw records", func() {
		own := bank("9", "ZZZZFRPP", "Own Group")
		own.Subsidiaries = []models.BankRecord{bank("10", "ZZZZFRPP1", "Own Child")}
		raw := []models.BankRecord{own}

		result := builder.Build(raw)
		Expect(result).To(HaveLen(1))
		Expect(result[0].HasSubsidiaries()).To(BeFalse())
		Expect(raw[0].Subsidiaries).To(HaveLen(1))
	})

	It("should return an empty directory for empty input", func() {
		Expect(builder.Build(nil)).To(BeEmpty())
	})
})
