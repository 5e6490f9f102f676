package utils

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strings"
)

// DefaultWords is the built-in list a round draws from when the host supplies no word.
var DefaultWords = []string{
	"bicycle", "tornado", "keyboard", "pizza", "stadium", "theatre", "astronaut",
	"library", "jungle", "microphone", "bank", "castle", "ice cream", "robot", "bridge",
}

// ReadCsvFile loads a word list from a CSV file. Only the first column is used,
// blank and duplicate entries are skipped.
func ReadCsvFile(filePath string) ([]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("unable to read word file %s: %w", filePath, err)
	}
	defer f.Close()

	csvReader := csv.NewReader(f)
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to parse %s as CSV: %w", filePath, err)
	}

	seen := make(map[string]bool)
	var words []string

	for _, record := range records {
		if len(record) == 0 {
			continue
		}
		word := strings.TrimSpace(record[0])
		if word == "" {
			log.Println("Skipping invalid record: ", record)
			continue
		}
		if seen[word] {
			continue
		}
		seen[word] = true
		words = append(words, word)
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("word file %s contains no words", filePath)
	}

	return words, nil
}
