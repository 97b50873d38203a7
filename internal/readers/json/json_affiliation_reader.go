package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/zdziszkee/bank-directory/internal/readers"
)

var ErrMissingOrganizations = errors.New("missing BankOrganizationsList")

type affiliationDocument struct {
	Organizations map[string]struct {
		PrefixBIC string `json:"prefixBIC"`
		Country   string `json:"country"`
	} `json:"BankOrganizationsList"`
}

// JSONAffiliationReader reads documents of the form
// {"BankOrganizationsList": {"<label>": {"prefixBIC": "...", "country": "FR"}}}
type JSONAffiliationReader struct {
}

func (j *JSONAffiliationReader) ReadAffiliations(reader io.Reader) ([]readers.AffiliationRecord, error) {
	var doc affiliationDocument
	if err := json.NewDecoder(reader).Decode(&doc); err != nil {
		if err == io.EOF {
			return []readers.AffiliationRecord{}, nil
		}
		return nil, fmt.Errorf("decode affiliations: %w", err)
	}
	if doc.Organizations == nil {
		return nil, ErrMissingOrganizations
	}

	// JSON objects are unordered; index records by label so that errors are reproducible.
	labels := make([]string, 0, len(doc.Organizations))
	for label := range doc.Organizations {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	records := make([]readers.AffiliationRecord, 0, len(labels))
	for i, label := range labels {
		org := doc.Organizations[label]
		records = append(records, readers.AffiliationRecord{
			Index:          i + 1,
			Label:          label,
			BICPrefix:      org.PrefixBIC,
			CountryISOCode: org.Country,
		})
	}
	return records, nil
}
