package readers_test

import (
	"io"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zdziszkee/bank-directory/internal/models"
	"github.com/zdziszkee/bank-directory/internal/readers/csv"
	jsonreader "github.com/zdziszkee/bank-directory/internal/readers/json"
)

func TestReaders(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Readers Suite")
}

type errorReader struct{}

func (e *errorReader) Read(p []byte) (n int, err error) {
	return 0, io.ErrUnexpectedEOF
}

var _ = Describe("CSVAffiliationReader", func() {
	var csvReader *csv.CSVAffiliationReader

	BeforeEach(func() {
		csvReader = &csv.CSVAffiliationReader{}
	})

	It("should handle empty input", func() {
		records, err := csvReader.ReadAffiliations(strings.NewReader(""))
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(BeEmpty())
	})

	It("should handle only header, no data", func() {
		records, err := csvReader.ReadAffiliations(strings.NewReader("LABEL,BIC PREFIX,COUNTRY ISO2 CODE"))
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(BeEmpty())
	})

	It("should handle header with whitespace and case differences", func() {
		input := " label , Bic Prefix ,country iso2 code\n" +
			"Credit Agricole,AGRIFRPP,FR"

		records, err := csvReader.ReadAffiliations(strings.NewReader(input))
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(1))
		Expect(records[0].Label).To(Equal("Credit Agricole"))
		Expect(records[0].BICPrefix).To(Equal("AGRIFRPP"))
		Expect(records[0].CountryISOCode).To(Equal("FR"))
	})

	It("should reject invalid header with missing column", func() {
		_, err := csvReader.ReadAffiliations(strings.NewReader("LABEL,BIC PREFIX"))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("invalid header length"))
	})

	It("should reject invalid header with wrong column name", func() {
		_, err := csvReader.ReadAffiliations(strings.NewReader("NAME,BIC PREFIX,COUNTRY ISO2 CODE"))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("invalid header"))
	})

	It("should reject row with invalid length", func() {
		input := "LABEL,BIC PREFIX,COUNTRY ISO2 CODE\n" +
			"Credit Agricole,AGRIFRPP"
		_, err := csvReader.ReadAffiliations(strings.NewReader(input))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("wrong number of fields"))
	})

	It("should handle quoted fields and set proper indexes", func() {
		input := "LABEL,BIC PREFIX,COUNTRY ISO2 CODE\n" +
			`"Caisse d'Epargne, groupe BPCE",CEPAFRPP,FR` + "\n" +
			" Banque Populaire , CCBPFRPP , FR "

		records, err := csvReader.ReadAffiliations(strings.NewReader(input))
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(2))
		Expect(records[0].Index).To(Equal(1))
		Expect(records[0].Label).To(Equal("Caisse d'Epargne, groupe BPCE"))
		Expect(records[1].Index).To(Equal(2))
		Expect(records[1].Label).To(Equal("Banque Populaire"))
		Expect(records[1].BICPrefix).To(Equal("CCBPFRPP"))
	})

	It("should handle reader errors", func() {
		_, err := csvReader.ReadAffiliations(&errorReader{})
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("read header"))
	})
})

var _ = Describe("JSONAffiliationReader", func() {
	var reader *jsonreader.JSONAffiliationReader

	BeforeEach(func() {
		reader = &jsonreader.JSONAffiliationReader{}
	})

	It("should read organizations ordered by label", func() {
		input := `{"BankOrganizationsList": {
			"Societe Generale": {"prefixBIC": "SOGEFRPP", "country": "FR"},
			"Credit Agricole": {"prefixBIC": "AGRIFRPP", "country": "FR"}
		}}`

		records, err := reader.ReadAffiliations(strings.NewReader(input))
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(2))
		Expect(records[0].Label).To(Equal("Credit Agricole"))
		Expect(records[0].BICPrefix).To(Equal("AGRIFRPP"))
		Expect(records[0].Index).To(Equal(1))
		Expect(records[1].Label).To(Equal("Societe Generale"))
		Expect(records[1].CountryISOCode).To(Equal("FR"))
	})

	It("should accept an empty organization list", func() {
		records, err := reader.ReadAffiliations(strings.NewReader(`{"BankOrganizationsList": {}}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(BeEmpty())
	})

	It("should accept an empty document", func() {
		records, err := reader.ReadAffiliations(strings.NewReader(""))
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(BeEmpty())
	})

	It("should reject a document without organizations", func() {
		_, err := reader.ReadAffiliations(strings.NewReader(`{"Banks": []}`))
		Expect(err).To(MatchError(jsonreader.ErrMissingOrganizations))
	})

	It("should reject malformed JSON", func() {
		_, err := reader.ReadAffiliations(strings.NewReader(`{"BankOrganizationsList": [`))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("decode affiliations"))
	})
})

var _ = Describe("JSONDirectoryReader", func() {
	var reader *jsonreader.JSONDirectoryReader

	BeforeEach(func() {
		reader = &jsonreader.JSONDirectoryReader{}
	})

	It("should read the partner bank list", func() {
		input := `{"Application":"PIS","ASPSP":[
			{"AspspId":"1409","Name":["La Banque Postale"],"CountryCode":"FR","BIC":"PSSTFRPP",
			 "Details":[{"Api":"POST /payments","Fieldname":"PaymentProduct","Type":"SUPPORTED","Value":"Normal|Instant","ProtocolVersion":"STET_V_1_4_0_47"}]},
			{"AspspId":"224","CountryCode":"DE","Name":["08/15direkt"]}
		],"MessageCreateDateTime":"2019-11-15T16:52:37.092+0100","MessageId":"6f31954f"}`

		doc, err := reader.ReadDirectory(strings.NewReader(input))
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Application).To(Equal("PIS"))
		Expect(doc.MessageID).To(Equal("6f31954f"))
		Expect(doc.Banks).To(HaveLen(2))

		bank := doc.Banks[0]
		Expect(bank.ID).To(Equal("1409"))
		Expect(bank.BIC).To(Equal("PSSTFRPP"))
		Expect(bank.PrimaryName()).To(Equal("La Banque Postale"))
		Expect(bank.Capabilities).To(ConsistOf(models.CapabilityDescriptor{
			APIName:         "POST /payments",
			FieldName:       "PaymentProduct",
			Kind:            models.Supported,
			Value:           "Normal|Instant",
			ProtocolVersion: "STET_V_1_4_0_47",
		}))
		Expect(bank.Capabilities[0].Values()).To(Equal([]string{"Normal", "Instant"}))

		Expect(doc.Banks[1].HasBIC()).To(BeFalse())
	})

	It("should reject malformed JSON", func() {
		_, err := reader.ReadDirectory(strings.NewReader(`{"ASPSP": {`))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("decode directory"))
	})
})
