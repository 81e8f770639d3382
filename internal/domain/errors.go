package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent error conditions in the sasport domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrNotFound is returned when an input directory does not exist or is
	// not a directory. It aborts the batch before any item runs.
	ErrNotFound = errors.New("sasport: input location not found")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("sasport: invalid configuration")

	// ErrBusy is returned when a batch is requested while another is running.
	ErrBusy = errors.New("sasport: a batch is already running")

	// ErrCodecUnavailable is returned when the conversion backend cannot be
	// reached, e.g. the external converter is not installed.
	ErrCodecUnavailable = errors.New("sasport: conversion backend unavailable")
)

// CodecError reports a failed conversion of a single item: malformed input,
// unsupported structure, or a backend failure. The driver downgrades it to a
// recorded failure; it never aborts the batch.
type CodecError struct {
	// Backend identifies the codec implementation that failed.
	Backend string

	// Message is the human-readable failure description, e.g. the trimmed
	// stderr of an external converter.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *CodecError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Backend, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Backend, e.Cause)
	}
	return e.Backend + ": conversion failed"
}

func (e *CodecError) Unwrap() error {
	return e.Cause
}
