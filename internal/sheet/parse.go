package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Parse reads a header-delimited CSV sheet. Missing columns leave fields
// empty; blank lines are skipped. Row IDs follow parse order.
func Parse(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, Row{
			ID:         len(rows),
			Profession: field(record, FieldProfession),
			ItemType:   field(record, FieldItemType),
			Name:       field(record, FieldName),
			SpellID:    field(record, FieldSpellID),
			TextureID:  field(record, FieldTextureID),
			Crafters:   field(record, FieldCrafters),
		})
	}
	return rows, nil
}
