package readers

import (
	"io"

	"github.com/zdziszkee/bank-directory/internal/models"
)

// AffiliationRecord is one raw mother bank definition as read from a source
type AffiliationRecord struct {
	Index          int
	Label          string // LABEL
	BICPrefix      string // BIC PREFIX
	CountryISOCode string // COUNTRY ISO2 CODE
}

// AffiliationReader reads the mother bank definitions of a source document
type AffiliationReader interface {
	ReadAffiliations(reader io.Reader) ([]AffiliationRecord, error)
}

// DirectoryDocument is a partner directory snapshot
type DirectoryDocument struct {
	Application           string              `json:"Application,omitempty"`
	Banks                 []models.BankRecord `json:"ASPSP"`
	MessageCreateDateTime string              `json:"MessageCreateDateTime,omitempty"`
	MessageID             string              `json:"MessageId,omitempty"`
}

// DirectoryReader reads a partner directory snapshot
type DirectoryReader interface {
	ReadDirectory(reader io.Reader) (*DirectoryDocument, error)
}
