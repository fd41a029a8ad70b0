package packinglist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/autentke/autentke/internal/apperr"
	enc "github.com/autentke/autentke/internal/encoding"
	"github.com/autentke/autentke/internal/importer"
	"github.com/autentke/autentke/internal/pricing"
	"github.com/autentke/autentke/internal/product"
)

// Parser reads supplier packing lists. The separator may be ';' or ',' and
// the header row may be preceded by free text. Files without a known header
// are read as name, cost, quantity columns.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]importer.Line, error) {
	utf8r, charset, err := enc.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	raw, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read packing list: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(string(raw)))
	reader.Comma = detectComma(string(raw))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows []record

	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, apperr.InvalidWrap(err, "packing list is not a valid CSV file")
		}

		line, _ := reader.FieldPos(0)
		rows = append(rows, record{line: line, fields: fields})
	}

	profile, cols, start := detectProfile(rows)

	slog.Debug("parsing packing list",
		"charset", charset,
		"profile", profile.Name,
		"rows", len(rows)-start)

	return parseRows(cols, rows[start:])
}

// record is a CSV row with the file line it starts on.
type record struct {
	line   int
	fields []string
}

// detectComma picks ';' unless the first line only separates with ','.
func detectComma(s string) rune {
	first, _, _ := strings.Cut(s, "\n")
	if !strings.Contains(first, ";") && strings.Contains(first, ",") {
		return ','
	}

	return ';'
}

// columns holds the index of each field; quantity is -1 when absent.
type columns struct {
	name, cost, quantity int
}

// detectProfile returns the matched profile, its column indices and the index
// of the first data row.
func detectProfile(rows []record) (Profile, columns, int) {
	for rowIdx, row := range rows {
		idx := make(map[string]int)

		for i, cell := range row.fields {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				idx[name] = i
			}
		}

		for _, p := range profiles {
			nameIdx, okName := idx[p.NameCol]
			costIdx, okCost := idx[p.CostCol]

			if !okName || !okCost {
				continue
			}

			qtyIdx, ok := idx[p.QuantityCol]
			if !ok {
				qtyIdx = -1
			}

			return p, columns{name: nameIdx, cost: costIdx, quantity: qtyIdx}, rowIdx + 1
		}
	}

	return headerless, columns{name: 0, cost: 1, quantity: 2}, 0
}

func parseRows(cols columns, rows []record) ([]importer.Line, error) {
	var lines []importer.Line

	for _, rec := range rows {
		rowNum := rec.line
		row := rec.fields

		name := cellValue(row, cols.name)
		costStr := cellValue(row, cols.cost)

		if name == "" && costStr == "" {
			continue
		}

		if name == "" {
			return nil, apperr.Invalid("row %d: missing product name", rowNum)
		}

		cost, err := pricing.ParseAmount(costStr)
		if err != nil {
			return nil, apperr.InvalidWrap(err, "row %d: invalid cost %q", rowNum, costStr)
		}

		if cost < 0 {
			return nil, apperr.Invalid("row %d: negative cost", rowNum)
		}

		qty := 1

		if s := cellValue(row, cols.quantity); s != "" {
			qty, err = strconv.Atoi(s)
			if err != nil || qty < 1 {
				return nil, apperr.Invalid("row %d: invalid quantity %q", rowNum, s)
			}

			if qty > product.MaxQuantity {
				return nil, apperr.Invalid("row %d: quantity %d exceeds %d", rowNum, qty, product.MaxQuantity)
			}
		}

		lines = append(lines, importer.Line{
			Row:      rowNum,
			Name:     name,
			Cost:     cost,
			Quantity: qty,
		})
	}

	if len(lines) == 0 {
		return nil, apperr.Invalid("packing list has no products")
	}

	return lines, nil
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
