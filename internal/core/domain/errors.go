package domain

import "go.trai.ch/zerr"

var (
	// ErrNotImplemented is the explicit signal that a wrapped function has
	// no implementation yet. It always qualifies for synthesis.
	ErrNotImplemented = zerr.New("not implemented")

	// ErrMissingAPIKey is returned at construction when no synthesis
	// backend credential is configured.
	ErrMissingAPIKey = zerr.New("OPENAI_API_KEY is not set")

	// ErrInvalidAllowEntry is returned when an allowlist entry is not a
	// valid module name.
	ErrInvalidAllowEntry = zerr.New("invalid allowlist entry")

	// ErrInvalidAttempts is returned when the attempt budget is below one.
	ErrInvalidAttempts = zerr.New("max attempts must be at least 1")

	// ErrInvalidTimeout is returned when a timeout is not positive.
	ErrInvalidTimeout = zerr.New("timeouts must be positive")

	// ErrMissingFunctionName is returned when wrap-time metadata lacks a
	// module or function name.
	ErrMissingFunctionName = zerr.New("call site requires module and function names")

	// ErrDisallowedImport is returned when a candidate references modules
	// outside the allowlist.
	ErrDisallowedImport = zerr.New("disallowed import")

	// ErrUnparsableCandidate is returned when candidate source cannot be
	// analyzed; unknown source is rejected, never silently passed.
	ErrUnparsableCandidate = zerr.New("unparsable candidate source")

	// ErrEmptyCandidate is returned when the backend produces no usable
	// function body.
	ErrEmptyCandidate = zerr.New("empty candidate")

	// ErrExecutionTimeout is returned when a sandboxed run exceeds its
	// wall-clock budget.
	ErrExecutionTimeout = zerr.New("sandbox execution timed out")

	// ErrSandboxFailed is returned when the candidate raises or the
	// sandbox process fails.
	ErrSandboxFailed = zerr.New("sandbox execution failed")

	// ErrSynthesisFailed is returned when a backend request errors.
	ErrSynthesisFailed = zerr.New("synthesis request failed")

	// ErrSynthesisExhausted is the terminal error after the attempt budget
	// is spent without a successful run. It wraps the last failure.
	ErrSynthesisExhausted = zerr.New("synthesis attempts exhausted")

	// ErrNotEvolved is returned when no cached implementation exists for a
	// requested call site.
	ErrNotEvolved = zerr.New("no cached implementation for call site")

	// ErrScopeFunctionWithoutModule is returned when a delete or list scope
	// names a function but no module.
	ErrScopeFunctionWithoutModule = zerr.New("function scope requires a module")

	// ErrStoreReadFailed is returned when a cached implementation cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read cached implementation")

	// ErrStoreUnmarshalFailed is returned when cached metadata cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal cached metadata")

	// ErrStoreMarshalFailed is returned when cached metadata cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal cached metadata")

	// ErrStoreWriteFailed is returned when a cached implementation cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write cached implementation")

	// ErrStoreCreateFailed is returned when the cache directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create cache directory")

	// ErrConfigReadFailed is returned when the settings file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read settings file")

	// ErrConfigParseFailed is returned when the settings file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse settings file")

	// ErrArtifactMissing is returned when a requested diff artifact does not
	// exist and cannot be computed.
	ErrArtifactMissing = zerr.New("diff artifact not available")

	// ErrUnknownArtifactKind is returned when a requested artifact flavor is
	// not one of diff, md, or html.
	ErrUnknownArtifactKind = zerr.New("unknown artifact kind")
)
