package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"kwtaxonomy/internal/models"
)

// readRecords reads keyword records from path ("-" for stdin). The file may
// hold a JSON array or an object with a "records" array.
func readRecords(path string, stdin io.Reader) ([]models.KeywordRecord, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []models.KeywordRecord{}, nil
	}

	if data[0] == '[' {
		var records []models.KeywordRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
		return records, nil
	}

	var wrapped struct {
		Records []models.KeywordRecord `json:"records"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return wrapped.Records, nil
}
