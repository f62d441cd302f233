package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/PauloHMTeixeira/etl-loteria-federal/pkg/records"
)

// WritePartitions materializes one CSV file per lottery under dir, named
// <loteria>.csv. These are debugging/inspection artifacts; the pipeline
// itself hands batches over in memory.
func WritePartitions(dir string, batches map[string]records.Batch) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("dataset: mkdir %s: %w", dir, err)
	}
	for name, b := range batches {
		if err := writeCSV(filepath.Join(dir, name+".csv"), b); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(path string, b records.Batch) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dataset: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(b.Columns); err != nil {
		return fmt.Errorf("dataset: write header %s: %w", path, err)
	}
	line := make([]string, len(b.Columns))
	for _, r := range b.Rows {
		for i, c := range b.Columns {
			line[i] = csvCell(r[c])
		}
		if err := w.Write(line); err != nil {
			return fmt.Errorf("dataset: write row %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("dataset: flush %s: %w", path, err)
	}
	return nil
}

// csvCell renders a value for the partition file: structured values as
// JSON text, dates as ISO, null as empty.
func csvCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case time.Time:
		return t.Format("2006-01-02")
	case []any, map[string]any, []int64:
		if enc, err := json.Marshal(t); err == nil {
			return string(enc)
		}
		return ""
	default:
		return fmt.Sprint(t)
	}
}
