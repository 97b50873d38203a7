package parser_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zdziszkee/bank-directory/internal/models"
	parser "github.com/zdziszkee/bank-directory/internal/parsers"
	readers "github.com/zdziszkee/bank-directory/internal/readers"
)

func TestAffiliationParser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AffiliationParser Suite")
}

var _ = Describe("DefaultAffiliationParser", func() {
	var (
		p       parser.AffiliationParser
		records []readers.AffiliationRecord
	)

	BeforeEach(func() {
		p = parser.DefaultAffiliationParser{}
		records = []readers.AffiliationRecord{}
	})

	Context("with valid records", func() {
		BeforeEach(func() {
			records = []readers.AffiliationRecord{
				{Index: 1, Label: "Credit Agricole", BICPrefix: "AGRIFRPP", CountryISOCode: "FR"},
				{Index: 2, Label: " Caisse d'Epargne ", BICPrefix: "cepafrpp", CountryISOCode: "fr"},
			}
		})

		It("should parse and normalise them", func() {
			entries, err := p.ParseAffiliations(records)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(Equal([]models.AffiliationEntry{
				{Label: "Credit Agricole", BICPrefix: "AGRIFRPP", CountryCode: "FR"},
				{Label: "Caisse d'Epargne", BICPrefix: "CEPAFRPP", CountryCode: "FR"},
			}))
		})
	})

	Context("with no records", func() {
		It("should return an empty list", func() {
			entries, err := p.ParseAffiliations(records)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(BeEmpty())
		})
	})

	Context("with an empty label", func() {
		BeforeEach(func() {
			records = []readers.AffiliationRecord{{Index: 3, Label: "  ", BICPrefix: "AGRIFRPP", CountryISOCode: "FR"}}
		})

		It("should fail", func() {
			_, err := p.ParseAffiliations(records)
			Expect(err).To(MatchError(parser.ErrEmptyLabel))
			Expect(err.Error()).To(ContainSubstring("record 3"))
		})
	})

	Context("with a full BIC instead of a prefix", func() {
		BeforeEach(func() {
			records = []readers.AffiliationRecord{{Index: 1, Label: "Credit Agricole", BICPrefix: "AGRIFRPPXXX", CountryISOCode: "FR"}}
		})

		It("should fail", func() {
			_, err := p.ParseAffiliations(records)
			Expect(err).To(MatchError(parser.ErrInvalidBICPrefix))
		})
	})

	Context("with an invalid country code", func() {
		BeforeEach(func() {
			records = []readers.AffiliationRecord{{Index: 1, Label: "Credit Agricole", BICPrefix: "AGRIFRPP", CountryISOCode: "FRA"}}
		})

		It("should fail", func() {
			_, err := p.ParseAffiliations(records)
			Expect(err).To(MatchError(parser.ErrInvalidCountryCode))
			Expect(err.Error()).To(ContainSubstring("Credit Agricole"))
		})
	})
})
