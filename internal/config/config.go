// Package config defines the JSON-serializable configuration model for the
// ETL run. It is intentionally small and explicit: a pipeline file is
// decoded with the standard library, then 12-factor style environment
// overrides are applied on top.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Pipeline is the top-level object decoded from a pipeline file.
type Pipeline struct {
	// Job names the run, used as the metrics job grouping key.
	Job string `json:"job"`

	// Source describes where the raw multi-lottery document comes from.
	Source Source `json:"source"`

	// Partition controls the optional per-lottery CSV partition files.
	Partition Partition `json:"partition"`

	// Storage selects and configures the relational store.
	Storage Storage `json:"storage"`

	// Lotteries optionally restricts the run to these products (normalized
	// names). Empty means every product found in the document.
	Lotteries []string `json:"lotteries"`

	// Runtime holds driver behavior knobs.
	Runtime RuntimeConfig `json:"runtime"`
}

// Source identifies the raw document source.
type Source struct {
	// Kind selects the source implementation: "file" or "http".
	Kind string `json:"kind"`

	File SourceFile `json:"file"`
	HTTP SourceHTTP `json:"http"`
}

// SourceFile holds options for the "file" source kind.
type SourceFile struct {
	// Path is the local path of the raw JSON document.
	Path string `json:"path"`
}

// SourceHTTP holds options for the "http" source kind.
type SourceHTTP struct {
	// BaseURL is the results API root; each product is fetched from
	// <BaseURL>/<loteria>.
	BaseURL string `json:"base_url"`

	// Concurrency bounds parallel product downloads. Zero means default.
	Concurrency int `json:"concurrency"`
}

// Partition controls the debugging CSV partition files.
type Partition struct {
	// WriteCSV enables writing one <loteria>.csv per product under Dir.
	WriteCSV bool `json:"write_csv"`

	// Dir is the target directory for partition files.
	Dir string `json:"dir"`
}

// Storage selects the sink for the per-lottery relations.
type Storage struct {
	// Kind selects the backend: "sqlite" (default) or "postgres".
	Kind string `json:"kind"`

	DB DBConfig `json:"db"`
}

// DBConfig configures the selected backend's connection.
type DBConfig struct {
	// DSN is the backend connection string; for sqlite this is the
	// database file path.
	DSN string `json:"dsn"`
}

// RuntimeConfig holds driver behavior knobs.
type RuntimeConfig struct {
	// ContinueOnError makes the driver log a lottery's fatal error and move
	// on to the next product instead of aborting the run.
	ContinueOnError bool `json:"continue_on_error"`
}

// Load decodes a pipeline file and applies environment overrides.
func Load(path string) (Pipeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return Pipeline{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	var p Pipeline
	if err := json.NewDecoder(f).Decode(&p); err != nil {
		return Pipeline{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	p.ApplyEnv()
	return p, nil
}

// ApplyEnv overlays environment variables onto the pipeline:
//
//	ETL_STORAGE_KIND, ETL_DSN, ETL_DATASET_PATH, ETL_FEED_BASE_URL,
//	ETL_CONTINUE_ON_ERROR
func (p *Pipeline) ApplyEnv() {
	if v := os.Getenv("ETL_STORAGE_KIND"); v != "" {
		p.Storage.Kind = v
	}
	if v := os.Getenv("ETL_DSN"); v != "" {
		p.Storage.DB.DSN = v
	}
	if v := os.Getenv("ETL_DATASET_PATH"); v != "" {
		p.Source.File.Path = v
	}
	if v := os.Getenv("ETL_FEED_BASE_URL"); v != "" {
		p.Source.HTTP.BaseURL = v
	}
	if v := os.Getenv("ETL_CONTINUE_ON_ERROR"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			p.Runtime.ContinueOnError = b
		}
	}
}
