//go:build tools
// +build tools

// Package tools documents the console's development tools.
// They run through `go run` or a global `go install` and are not tracked in go.mod.
package tools

// Development tools:
//
// Air - rebuilds and restarts the console on change. Pair it with DEV=true so
// templates and static files are read from disk.
//   Install: go install github.com/air-verse/air@v1.63.0
//   Version: v1.63.0 (pinned 2025-01-01)
//   Docs: https://github.com/air-verse/air
//
// mockgen - regenerates internal/mocks from internal/ports.
//   Run: go generate ./internal/mocks
//   Version: v0.6.0 (same as go.uber.org/mock in go.mod)
