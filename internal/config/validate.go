package config

import "fmt"

// Severity classifies a validation finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one validation finding with a JSON-ish path to the offending field.
type Issue struct {
	Severity Severity
	Path     string
	Message  string
}

// Validate checks a Config for structural problems. It returns all findings
// rather than stopping at the first, so operators can fix a job file in one
// pass. Errors make the job unrunnable; warnings do not.
func Validate(cfg Config) []Issue {
	var issues []Issue

	if cfg.Job == "" {
		issues = append(issues, Issue{SeverityWarning, "job", "job name is empty; metrics will use the default label"})
	}
	if len(cfg.Tables) == 0 {
		issues = append(issues, Issue{SeverityError, "tables", "at least one table source is required"})
	}

	seen := map[string]bool{}
	for i, ts := range cfg.Tables {
		path := fmt.Sprintf("tables[%d]", i)
		if ts.TableName == "" {
			issues = append(issues, Issue{SeverityError, path + ".table_name", "table name must not be empty"})
		}
		if ts.FilePath == "" {
			issues = append(issues, Issue{SeverityError, path + ".file_path", "file path must not be empty"})
		}
		if seen[ts.TableName] {
			issues = append(issues, Issue{SeverityError, path + ".table_name", fmt.Sprintf("duplicate table name %q", ts.TableName)})
		}
		seen[ts.TableName] = true
	}

	if cfg.Categorical.MaxUniqueRatio < 0 || cfg.Categorical.MaxUniqueRatio > 1 {
		issues = append(issues, Issue{SeverityError, "categorical.max_unique_ratio", "ratio must be within [0, 1]"})
	}
	if cfg.Categorical.MaxUniqueCount < 0 {
		issues = append(issues, Issue{SeverityError, "categorical.max_unique_count", "count must not be negative"})
	}
	if cfg.BatchSize <= 0 {
		issues = append(issues, Issue{SeverityError, "batch_size", "batch size must be > 0"})
	}

	return issues
}
