package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"deckwright/internal/config"
	"deckwright/internal/generation"
	"deckwright/internal/services/unsplash"
)

// MinFreeBytes is the free space below which the output directory check fails.
const MinFreeBytes = 50 << 20

// HealthChecker is satisfied by generation.Client.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Pinger is satisfied by unsplash.Client.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CheckGeneration builds the configured backend with a single attempt and
// verifies the key and model are accepted.
func CheckGeneration(ctx context.Context, cfg *config.Config) Result {
	name := "Generation (" + strings.TrimSpace(cfg.Generation.Provider) + ")"
	if strings.TrimSpace(cfg.Generation.APIKey) == "" {
		return Result{Name: name, Detail: "API key missing"}
	}
	client, err := generation.NewFromConfig(ctx, cfg, nil, generation.WithMaxAttempts(1))
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return checkHealth(ctx, name, client)
}

func checkHealth(ctx context.Context, name string, checker HealthChecker) Result {
	checkCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := checker.HealthCheck(checkCtx); err != nil {
		return Result{Name: name, Detail: summarizeError(err)}
	}
	return Result{Name: name, Passed: true, Detail: "API reachable"}
}

// CheckUnsplash verifies the image search endpoint answers with the
// configured key.
func CheckUnsplash(ctx context.Context, cfg *config.Config) Result {
	const name = "Unsplash"
	client := unsplash.NewConfiguredClient(cfg)
	if client == nil {
		return Result{Name: name, Detail: "access key missing"}
	}
	return checkPing(ctx, name, client)
}

func checkPing(ctx context.Context, name string, pinger Pinger) Result {
	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := pinger.Ping(checkCtx); err != nil {
		return Result{Name: name, Detail: summarizeError(err)}
	}
	return Result{Name: name, Passed: true, Detail: "Reachable"}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckFreeSpace verifies the filesystem holding path has at least minBytes
// available to unprivileged users.
func CheckFreeSpace(name, path string, minBytes uint64) Result {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	available := uint64(stat.Bavail) * uint64(stat.Bsize)
	detail := fmt.Sprintf("%s (%s free)", path, formatBytes(available))
	if available < minBytes {
		return Result{Name: name, Detail: detail + ", below " + formatBytes(minBytes)}
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// summarizeError produces a human-readable summary for remote check failures.
func summarizeError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "health check timed out (API unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "health check timed out (API unreachable)"
	}
	return err.Error()
}
