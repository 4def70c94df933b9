package template

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"edge-analysis/internal/models"
)

// ReadCSV reads a delimited file into a raw table, preserving header
// order. All cells are kept as strings; typing happens later in the
// pipeline.
func ReadCSV(path string, comma rune) (*models.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	headerReader := csv.NewReader(f)
	headerReader.Comma = comma
	headers, err := headerReader.Read()
	if err == io.EOF {
		return &models.RawTable{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding %s: %w", path, err)
	}

	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = comma
		return r
	})
	defer gocsv.SetCSVReader(gocsv.DefaultCSVReader)

	maps, err := gocsv.CSVToMaps(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	table := &models.RawTable{Headers: headers}
	for _, m := range maps {
		row := make(models.RawRecord, len(m))
		for k, v := range m {
			row[k] = v
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// ReadXLSX reads the first sheet of a workbook into a raw table.
func ReadXLSX(path string) (*models.RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &models.RawTable{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return &models.RawTable{}, nil
	}

	table := &models.RawTable{Headers: rows[0]}
	for _, cells := range rows[1:] {
		row := make(models.RawRecord, len(table.Headers))
		for i, h := range table.Headers {
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
