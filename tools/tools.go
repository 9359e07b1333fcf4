//go:build tools
// +build tools

// Package tools pins the development tooling this repo expects. The tools
// are installed with `go install` rather than tracked as module
// dependencies, since nothing at runtime imports them.
package tools

// mockgen regenerates the hand-maintained fixtures under internal/mocks
// from the ports in internal/core:
//
//	go install go.uber.org/mock/mockgen@v0.6.0
//
// air gives live reload during local development of cmd/sitewatch:
//
//	go install github.com/air-verse/air@latest
