// Package catalog loads the parts catalog and derives the searchable
// documents the vector index is built from.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Record is a single catalog entry as stored in the catalog file. Records are
// immutable once loaded; the file is read once at startup.
type Record struct {
	Name           string   `json:"name"`
	Price          Price    `json:"price"`
	Description    string   `json:"description"`
	CompatibleWith []string `json:"compatibleWith"`
}

// Price accepts both numeric and quoted-string price fields.
type Price float64

// UnmarshalJSON implements json.Unmarshaler.
func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if strings.HasPrefix(s, `"`) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		s = strings.TrimSpace(raw)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("price %q: %w", s, err)
	}
	*p = Price(v)
	return nil
}

// String renders the price without trailing zeros.
func (p Price) String() string {
	return strconv.FormatFloat(float64(p), 'f', -1, 64)
}

// Document is the flattened, searchable form of one Record. IDs follow the
// catalog order, 0..N-1, and never change after index build.
type Document struct {
	ID     int
	Text   string
	Source string
}

// SourceCatalog tags documents derived from the catalog file.
const SourceCatalog = "catalog"

// Load reads and parses the catalog file. Absence or a parse failure is a
// fatal startup condition for the caller.
func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return records, nil
}

// Documents derives one Document per Record, in input order.
func Documents(records []Record) []Document {
	docs := make([]Document, 0, len(records))
	for i, r := range records {
		docs = append(docs, Document{
			ID:     i,
			Text:   flatten(r),
			Source: SourceCatalog,
		})
	}
	return docs
}

func flatten(r Record) string {
	return fmt.Sprintf("Product: %s. Price: %s. Description: %s. Fits: %s.",
		r.Name, r.Price, r.Description, strings.Join(r.CompatibleWith, ", "))
}
