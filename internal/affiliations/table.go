package affiliations

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zdziszkee/bank-directory/internal/models"
	parser "github.com/zdziszkee/bank-directory/internal/parsers"
	"github.com/zdziszkee/bank-directory/internal/readers"
	"github.com/zdziszkee/bank-directory/internal/readers/csv"
	jsonreader "github.com/zdziszkee/bank-directory/internal/readers/json"
)

//go:embed bank_affiliations.json
var defaultAffiliations []byte

const defaultSource = "embedded:bank_affiliations.json"

// Table maps mother bank labels to their affiliation entry. It is read-only
// once built and safe to share between goroutines.
type Table struct {
	byLabel  map[string]models.AffiliationEntry
	byPrefix map[string]models.AffiliationEntry
}

// New builds a table from entries. Labels and BIC prefixes must be unique.
func New(entries []models.AffiliationEntry) (*Table, error) {
	t := &Table{
		byLabel:  make(map[string]models.AffiliationEntry, len(entries)),
		byPrefix: make(map[string]models.AffiliationEntry, len(entries)),
	}
	for _, entry := range entries {
		if _, ok := t.byLabel[entry.Label]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLabel, entry.Label)
		}
		if other, ok := t.byPrefix[entry.BICPrefix]; ok {
			return nil, fmt.Errorf("%w: %s used by %q and %q", ErrDuplicatePrefix, entry.BICPrefix, other.Label, entry.Label)
		}
		t.byLabel[entry.Label] = entry
		t.byPrefix[entry.BICPrefix] = entry
	}
	return t, nil
}

// Load reads, validates and indexes an affiliation source. Every failure is a *ConfigurationError.
func Load(source string, r io.Reader, reader readers.AffiliationReader, p parser.AffiliationParser) (*Table, error) {
	records, err := reader.ReadAffiliations(r)
	if err != nil {
		return nil, &ConfigurationError{Source: source, Err: err}
	}
	entries, err := p.ParseAffiliations(records)
	if err != nil {
		return nil, &ConfigurationError{Source: source, Err: err}
	}
	t, err := New(entries)
	if err != nil {
		return nil, &ConfigurationError{Source: source, Err: err}
	}
	return t, nil
}

// LoadFile loads a .json or .csv affiliation file.
func LoadFile(path string) (*Table, error) {
	var reader readers.AffiliationReader
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		reader = &jsonreader.JSONAffiliationReader{}
	case ".csv":
		reader = &csv.CSVAffiliationReader{}
	default:
		return nil, &ConfigurationError{Source: path, Err: fmt.Errorf("%w: %s", ErrUnsupportedType, filepath.Ext(path))}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, &ConfigurationError{Source: path, Err: err}
	}
	defer file.Close()

	return Load(path, file, reader, parser.DefaultAffiliationParser{})
}

// Default loads the affiliation table shipped with the binary.
func Default() (*Table, error) {
	return Load(defaultSource, bytes.NewReader(defaultAffiliations), &jsonreader.JSONAffiliationReader{}, parser.DefaultAffiliationParser{})
}

func (t *Table) Len() int {
	return len(t.byLabel)
}

// Get returns the entry of a mother bank label
func (t *Table) Get(label string) (models.AffiliationEntry, bool) {
	entry, ok := t.byLabel[label]
	return entry, ok
}

// ByPrefix returns the entry whose BIC prefix is prefix
func (t *Table) ByPrefix(prefix string) (models.AffiliationEntry, bool) {
	entry, ok := t.byPrefix[prefix]
	return entry, ok
}

// Entries returns a copy of all entries sorted by label
func (t *Table) Entries() []models.AffiliationEntry {
	entries := make([]models.AffiliationEntry, 0, len(t.byLabel))
	for _, entry := range t.byLabel {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Label < entries[j].Label
	})
	return entries
}
