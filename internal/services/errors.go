package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExternalTool marks failures of external processes (piper, ffmpeg).
	ErrExternalTool = errors.New("external tool error")
	// ErrValidation marks programming-contract violations in assembled requests.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks unusable configuration discovered at run time.
	ErrConfiguration = errors.New("configuration error")
	// ErrNotFound marks lookups for records or files that do not exist.
	ErrNotFound = errors.New("not found")
	// ErrTimeout marks operations cancelled by their deadline.
	ErrTimeout = errors.New("timeout")
	// ErrTransient marks failures worth retrying, such as a feed fetch error.
	ErrTransient = errors.New("transient failure")
	// ErrNoContent marks an exhausted selection attempt budget. It is not a
	// pipeline fault: the feed simply had nothing usable.
	ErrNoContent = errors.New("no suitable content")
)

// Wrap builds an error that carries stage context while tagging it with the
// provided marker for exit classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitCode maps a pipeline error to the process exit code the CLI should use.
// Budget exhaustion is reported distinctly from a broken pipeline.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrNoContent):
		return 2
	default:
		return 1
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
