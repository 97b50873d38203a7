package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/zdziszkee/bank-directory/internal/readers"
)

// JSONDirectoryReader reads the partner "get ASPSPs" response
type JSONDirectoryReader struct {
}

func (j *JSONDirectoryReader) ReadDirectory(reader io.Reader) (*readers.DirectoryDocument, error) {
	var doc readers.DirectoryDocument
	if err := json.NewDecoder(reader).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode directory: %w", err)
	}
	return &doc, nil
}
