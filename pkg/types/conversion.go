// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for docx2pdf: conversion
// methods, capability tables, results and configuration.
package types

import "time"

// ConversionStatus indicates the outcome of a single conversion.
type ConversionStatus string

const (
	ConversionNone   ConversionStatus = "none"
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// Capabilities records which optional backends are installed. It is
// computed once at startup and never mutated afterwards. Methods missing
// from the map count as unavailable.
type Capabilities map[Method]bool

// Available reports whether the backend for m is installed.
func (c Capabilities) Available(m Method) bool {
	return c[m]
}

// ConversionRequest describes one conversion call.
type ConversionRequest struct {
	InputPath  string `json:"input_path" yaml:"input_path"`
	OutputPath string `json:"output_path" yaml:"output_path"`
	Method     Method `json:"method" yaml:"method"`
}

// ConversionResult is the outcome of a conversion call.
type ConversionResult struct {
	// Success is true when a new file exists at the output path.
	Success bool `json:"success" yaml:"success"`

	// Backend is the backend that ran. Empty when none was selected.
	Backend Method `json:"backend,omitempty" yaml:"backend,omitempty"`

	// Pages is the page count of the output, when known.
	Pages int `json:"pages,omitempty" yaml:"pages,omitempty"`

	// Duration is the wall time spent in the backend.
	Duration time.Duration `json:"duration" yaml:"duration"`

	// Error is the failure message, empty on success.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Status maps the result onto a ConversionStatus.
func (r ConversionResult) Status() ConversionStatus {
	if r.Success {
		return ConversionDone
	}
	return ConversionFailed
}
