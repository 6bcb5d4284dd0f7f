// Command validate checks a processed crop profile file against the source
// CSV it was built from: row parity, the four-stage model, and exact
// re-derivation of every profile. Paths come from CROPS_SOURCE_PATH and
// CROPS_OUTPUT_PATH, as for cmd/etl.
//
// Usage:
//
//	go run ./cmd/validate
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/couchcryptid/crop-profile-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/crop-profile-etl/internal/config"
	"github.com/couchcryptid/crop-profile-etl/internal/observability"
	"github.com/couchcryptid/crop-profile-etl/internal/verify"
	"github.com/spf13/afero"
)

func main() {
	if code := run(); code != 0 {
		os.Exit(code)
	}
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load config: %v\n", err)
		return 1
	}
	logger := observability.NewLogger(cfg)
	fs := afero.NewOsFs()

	ds, err := csvfile.NewReader(fs, cfg.SourcePath, logger).Extract(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	profiles, err := verify.LoadProfiles(fs, cfg.OutputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	result := verify.Check(ds.Records, profiles)
	result.Print(os.Stdout)
	if !result.Passed() {
		return 1
	}
	return 0
}
