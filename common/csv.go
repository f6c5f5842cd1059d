package common

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ReadColumn reads up to limit floats from one column of a CSV stream
// after skipping skip records. Rows that are too short or do not parse
// are ignored. A limit <= 0 reads everything.
func ReadColumn(r io.Reader, limit, skip, column int) ([]float64, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	for i := 0; i < skip; i++ {
		if _, err := reader.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, nil
			}
			return nil, fmt.Errorf("read data error: %w", err)
		}
	}

	var data []float64
	for limit <= 0 || len(data) < limit {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read data error: %w", err)
		}
		if len(record) <= column {
			continue
		}
		v, err := strconv.ParseFloat(record[column], 64)
		if err != nil {
			continue
		}
		data = append(data, v)
	}
	return data, nil
}

// ReadDataFromFile is ReadColumn over a file.
func ReadDataFromFile(filePath string, limit, skip, column int) ([]float64, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file error '%s': %w", filePath, err)
	}
	defer file.Close()
	return ReadColumn(file, limit, skip, column)
}
