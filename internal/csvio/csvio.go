// Package csvio moves a catalog to and from a directory of CSV files:
// works.csv, characters.csv, genres.csv, work_genres.csv and
// work_characters.csv. Ids in the files are local to the export; an import
// assigns fresh ids and remaps association rows.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	WorksFile          = "works.csv"
	CharactersFile     = "characters.csv"
	GenresFile         = "genres.csv"
	WorkGenresFile     = "work_genres.csv"
	WorkCharactersFile = "work_characters.csv"
)

var (
	worksHeader          = []string{"id", "image", "title", "release_date", "rating"}
	charactersHeader     = []string{"id", "image", "name", "age", "weight", "history"}
	genresHeader         = []string{"id", "image", "name"}
	workGenresHeader     = []string{"work_id", "genre_id"}
	workCharactersHeader = []string{"work_id", "character_id"}
)

// table is a parsed CSV file addressed by header name.
type table struct {
	header map[string]int
	rows   [][]string
}

func (t table) value(row []string, key string) string {
	idx, ok := t.header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// readTable loads path. A missing file reads as an empty table.
func readTable(path string) (table, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return table{}, nil
	}
	if err != nil {
		return table{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	head, err := r.Read()
	if err == io.EOF {
		return table{}, nil
	}
	if err != nil {
		return table{}, fmt.Errorf("read header %s: %w", filepath.Base(path), err)
	}

	t := table{header: make(map[string]int, len(head))}
	for idx, name := range head {
		t.header[strings.TrimSpace(strings.ToLower(name))] = idx
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return table{}, fmt.Errorf("read %s: %w", filepath.Base(path), err)
		}
		if len(row) == 0 {
			continue
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

func writeTable(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

func parseInt(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

func parseFloat(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
