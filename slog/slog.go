// Package slog wraps wordsaver services with log/slog logging decorators.
// Each call logs one Info line with its duration and error.
package slog
