package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/zdziszkee/bank-directory/internal/readers"
)

type CSVAffiliationReader struct {
}

const expectedHeader = "LABEL,BIC PREFIX,COUNTRY ISO2 CODE"

func (c *CSVAffiliationReader) ReadAffiliations(reader io.Reader) ([]readers.AffiliationRecord, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.ReuseRecord = true

	header, err := csvReader.Read()
	if err != nil {
		if err == io.EOF {
			return []readers.AffiliationRecord{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	expectedHeaders := strings.Split(expectedHeader, ",")
	if len(header) != len(expectedHeaders) {
		return nil, fmt.Errorf("invalid header length: expected %d, got %d", len(expectedHeaders), len(header))
	}
	headerMap := map[string]int{}
	for i, col := range header {
		// Case-insensitive and space-trimmed comparison
		normalized := strings.TrimSpace(strings.ToUpper(col))
		if normalized != expectedHeaders[i] {
			return nil, fmt.Errorf("invalid header: expected '%s' at index %d, got '%s'", expectedHeaders[i], i, col)
		}
		headerMap[normalized] = i
	}

	var records []readers.AffiliationRecord
	rowNum := 1
	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		getVal := func(field string) string {
			return strings.TrimSpace(row[headerMap[field]])
		}

		records = append(records, readers.AffiliationRecord{
			Index:          rowNum,
			Label:          getVal("LABEL"),
			BICPrefix:      getVal("BIC PREFIX"),
			CountryISOCode: getVal("COUNTRY ISO2 CODE"),
		})
		rowNum++
	}

	return records, nil
}
