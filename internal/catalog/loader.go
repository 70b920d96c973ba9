package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/goldenhour/attendance-server/internal/attendance/types"
)

// Paths names the three catalog files.
type Paths struct {
	Employees string
	Outlets   string
	Models    string
}

// Load reads all three catalogs. A missing file is an error; a bad row
// inside a file is logged and skipped, so one typo cannot take down the
// whole catalog.
func Load(p Paths, logger *log.Logger) (*Catalog, error) {
	employees, err := loadEmployees(p.Employees, logger)
	if err != nil {
		return nil, err
	}
	outlets, err := loadOutlets(p.Outlets, logger)
	if err != nil {
		return nil, err
	}
	models, err := loadModels(p.Models, logger)
	if err != nil {
		return nil, err
	}
	return &Catalog{employees: employees, outlets: outlets, models: models}, nil
}

// loadEmployees reads rows of EmployeeID,Name.
func loadEmployees(path string, logger *log.Logger) ([]types.Employee, error) {
	rows, err := readRows(path, 2, logger)
	if err != nil {
		return nil, err
	}
	out := make([]types.Employee, 0, len(rows))
	for _, r := range rows {
		if r[0] == "" {
			continue
		}
		out = append(out, types.Employee{EmployeeID: r[0], Name: r[1]})
	}
	return out, nil
}

// loadOutlets reads rows of OutletCode,OutletName. Order is preserved;
// lookups return the first match.
func loadOutlets(path string, logger *log.Logger) ([]Outlet, error) {
	rows, err := readRows(path, 2, logger)
	if err != nil {
		return nil, err
	}
	out := make([]Outlet, 0, len(rows))
	for _, r := range rows {
		if r[0] == "" {
			continue
		}
		out = append(out, Outlet{OutletCode: r[0], OutletName: r[1]})
	}
	return out, nil
}

// loadModels reads rows of ModelID,Price,OutletCode,Stock, one row per
// (model, outlet) pair, and aggregates them into per-model stock maps.
func loadModels(path string, logger *log.Logger) ([]Model, error) {
	rows, err := readRows(path, 4, logger)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*Model)
	var order []string
	for i, r := range rows {
		if r[0] == "" {
			continue
		}
		price, err := strconv.ParseFloat(r[1], 64)
		if err != nil {
			logger.Printf("catalog %s row %d: bad price %q, skipping", path, i+2, r[1])
			continue
		}
		stock, err := strconv.Atoi(r[3])
		if err != nil {
			logger.Printf("catalog %s row %d: bad stock %q, skipping", path, i+2, r[3])
			continue
		}

		m, ok := byID[r[0]]
		if !ok {
			m = &Model{ModelID: r[0], Price: price, StockByOutlet: make(map[string]int)}
			byID[r[0]] = m
			order = append(order, r[0])
		}
		m.StockByOutlet[r[2]] = stock
	}

	out := make([]Model, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	return out, nil
}

// readRows parses one catalog file: header skipped, fields trimmed, short
// rows padded to minFields, unparseable rows logged and skipped.
func readRows(path string, minFields int, logger *log.Logger) ([][]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	data, err := decodeToUTF8(raw)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}

	r := csv.NewReader(bytes.NewReader(data))
	// Variable field counts are handled here, not rejected by the reader.
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	// Header row.
	if _, err := r.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("catalog %s: empty file, no header row", path)
		}
		return nil, fmt.Errorf("catalog %s: read header: %w", path, err)
	}

	var rows [][]string
	rowNum := 1
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++
		if err != nil {
			logger.Printf("catalog %s row %d: %v, skipping", path, rowNum, err)
			continue
		}

		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
		if len(row) < minFields {
			padded := make([]string, minFields)
			copy(padded, row)
			row = padded
		}
		rows = append(rows, row)
	}
	return rows, nil
}
