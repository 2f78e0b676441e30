// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

package chunkdoc

import (
	"errors"
	"fmt"
)

var (
	// ErrReadChunkGraph is returned when chunk graph file loading fails.
	ErrReadChunkGraph = errors.New("read chunk graph")
	// ErrDecodeChunkGraph is returned when chunk graph YAML/JSON decoding fails.
	ErrDecodeChunkGraph = errors.New("decode chunk graph")
	// ErrDuplicateChunk is returned when two chunks share one id.
	ErrDuplicateChunk = errors.New("duplicate chunk id")
	// ErrUnknownChunkType is returned when chunk type tag is not recognized.
	ErrUnknownChunkType = errors.New("unknown chunk type")
	// ErrUnknownSchemaKind is returned when schema value type tag is not recognized.
	ErrUnknownSchemaKind = errors.New("unknown schema kind")
	// ErrUnknownConvention is returned when page path convention is not supported.
	ErrUnknownConvention = errors.New("unknown page path convention")
	// ErrUnknownDialect is returned when back-end renderer dialect is not supported.
	ErrUnknownDialect = errors.New("unknown renderer dialect")
	// ErrUnknownResponseFilter is returned when visible response filter is not supported.
	ErrUnknownResponseFilter = errors.New("unknown visible response filter")
	// ErrInvalidSettings is returned when settings fail validation.
	ErrInvalidSettings = errors.New("invalid settings")
	// ErrPageExists is returned when a page path is reserved twice.
	ErrPageExists = errors.New("page already created")
	// ErrPageFinalized is returned when a render target is finalized twice.
	ErrPageFinalized = errors.New("page already finalized")
	// ErrSiteFinalized is returned when a site is used after finalization.
	ErrSiteFinalized = errors.New("site already finalized")
	// ErrMissingChunk is returned when a chunk id does not resolve.
	ErrMissingChunk = errors.New("missing chunk")
	// ErrReferenceCycle is returned when chunk reference resolution revisits an id.
	ErrReferenceCycle = errors.New("chunk reference cycle")
	// ErrUnknownExampleMode is returned when example mode is not supported.
	ErrUnknownExampleMode = errors.New("unknown example mode")
	// ErrUnknownExampleFormat is returned when example format is not supported.
	ErrUnknownExampleFormat = errors.New("unknown example format")
	// ErrEncodeExample is returned when example payload encoding fails.
	ErrEncodeExample = errors.New("encode example payload")
	// ErrReadSnippets is returned when usage snippet file loading fails.
	ErrReadSnippets = errors.New("read usage snippets")
	// ErrInternal marks violated compiler invariants; compile output is discarded.
	ErrInternal = errors.New("internal compiler error")
)

// InternalError reports a violated invariant detected during compilation.
type InternalError struct {
	Err error
}

// Error implements error.
func (e *InternalError) Error() string {
	return ErrInternal.Error() + ": " + e.Err.Error()
}

// Unwrap lets errors.Is match both ErrInternal and the wrapped cause.
func (e *InternalError) Unwrap() []error {
	return []error{ErrInternal, e.Err}
}

// fail aborts the running compile with an internal error.
func fail(format string, args ...any) {
	panic(&InternalError{Err: fmt.Errorf(format, args...)})
}

// must aborts the running compile when err is not nil.
func must(err error) {
	if err != nil {
		panic(&InternalError{Err: err})
	}
}

// recoverInternal converts an internal error panic into a returned error.
func recoverInternal(errp *error) {
	r := recover()
	if r == nil {
		return
	}

	internal, ok := r.(*InternalError)
	if !ok {
		panic(r)
	}

	*errp = internal
}
