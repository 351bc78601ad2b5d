package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Sink identifies the relational sink for the load stage.
type Sink struct {
	// Kind selects the storage backend ("postgres", "sqlite", "mysql",
	// "mssql"). SinkFromEnv always produces "postgres".
	Kind string `json:"kind"`

	// DSN is the backend connection string.
	DSN string `json:"dsn"`
}

// sinkEnvVars are the five required environment variables for the Postgres
// sink.
var sinkEnvVars = []string{
	"POSTGRES_USER",
	"POSTGRES_PASSWORD",
	"POSTGRES_HOST",
	"POSTGRES_PORT",
	"POSTGRES_DB",
}

// SinkFromEnv builds the Postgres sink configuration from the process
// environment. All five variables must be present and non-empty; a missing
// value is a configuration error that aborts the load stage before any write.
func SinkFromEnv() (Sink, error) {
	vals := make(map[string]string, len(sinkEnvVars))
	var missing []string
	for _, key := range sinkEnvVars {
		v := os.Getenv(key)
		if v == "" {
			missing = append(missing, key)
			continue
		}
		vals[key] = v
	}
	if len(missing) > 0 {
		return Sink{}, fmt.Errorf("database environment variables not fully set: missing %s", strings.Join(missing, ", "))
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		url.QueryEscape(vals["POSTGRES_USER"]),
		url.QueryEscape(vals["POSTGRES_PASSWORD"]),
		vals["POSTGRES_HOST"],
		vals["POSTGRES_PORT"],
		vals["POSTGRES_DB"],
	)
	return Sink{Kind: "postgres", DSN: dsn}, nil
}
