package preflight

import (
	"context"
	"strings"

	"deckwright/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Options toggles the checks that reach the network.
type Options struct {
	SkipRemote bool
}

// RunAll executes all applicable preflight checks for the given config.
// Checks are only run when the corresponding feature is enabled.
func RunAll(ctx context.Context, cfg *config.Config, opts Options) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))
	if strings.TrimSpace(cfg.Paths.LogDir) != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}
	output := CheckDirectoryAccess("Output directory", cfg.Output.Dir)
	results = append(results, output)
	if output.Passed {
		results = append(results, CheckFreeSpace("Output free space", cfg.Output.Dir, MinFreeBytes))
	}

	if opts.SkipRemote {
		return results
	}

	results = append(results, CheckGeneration(ctx, cfg))

	if cfg.Images.Enabled {
		results = append(results, CheckUnsplash(ctx, cfg))
	}

	return results
}
