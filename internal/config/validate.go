// This file adds a lightweight linter for Pipeline values. It performs
// static checks over a decoded Pipeline and returns a list of issues
// (errors and warnings) that callers surface in the CLI or in tests.
package config

import (
	"fmt"
	"strings"

	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/loterias"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates an issue that blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates an issue surfaced to users without
	// necessarily blocking execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding. Path is a dotted path into
// the config (e.g. "storage.kind").
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a
// single error where needed.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// ValidatePipeline performs static validation of a Pipeline. It does not
// mutate the pipeline; callers decide whether warnings are fatal.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{SeverityWarning, "job", "job name is empty; metrics will group under the default job"})
	}

	switch p.Source.Kind {
	case "file":
		if strings.TrimSpace(p.Source.File.Path) == "" {
			issues = append(issues, Issue{SeverityError, "source.file.path", "file source requires a path"})
		}
	case "http":
		if strings.TrimSpace(p.Source.HTTP.BaseURL) == "" {
			issues = append(issues, Issue{SeverityError, "source.http.base_url", "http source requires a base URL"})
		}
	case "":
		issues = append(issues, Issue{SeverityError, "source.kind", "source kind is required (file or http)"})
	default:
		issues = append(issues, Issue{SeverityError, "source.kind", fmt.Sprintf("unknown source kind %q", p.Source.Kind)})
	}

	if strings.TrimSpace(p.Storage.Kind) == "" {
		issues = append(issues, Issue{SeverityError, "storage.kind", "storage kind is required (sqlite or postgres)"})
	}
	if strings.TrimSpace(p.Storage.DB.DSN) == "" {
		issues = append(issues, Issue{SeverityError, "storage.db.dsn", "storage DSN is required"})
	}

	if p.Partition.WriteCSV && strings.TrimSpace(p.Partition.Dir) == "" {
		issues = append(issues, Issue{SeverityError, "partition.dir", "partition dir is required when write_csv is set"})
	}

	known := map[string]struct{}{}
	for _, n := range loterias.Known() {
		known[n] = struct{}{}
	}
	for i, l := range p.Lotteries {
		norm := loterias.NormalizeName(l)
		if norm == "" {
			issues = append(issues, Issue{SeverityError, fmt.Sprintf("lotteries[%d]", i), "empty lottery name"})
			continue
		}
		if _, ok := known[norm]; !ok {
			issues = append(issues, Issue{
				SeverityWarning,
				fmt.Sprintf("lotteries[%d]", i),
				fmt.Sprintf("%q is not a known product; it will flow through without range validation", norm),
			})
		}
	}

	return issues
}
