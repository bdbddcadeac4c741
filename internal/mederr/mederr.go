// Package mederr defines the error taxonomy shared by the pipeline and the
// normalization commands. Callers match on these types with errors.As; the
// CLI maps each to a human-readable message and a non-zero exit code.
package mederr

import "fmt"

// ConfigError reports invalid input or options detected before any rendering
// or encoding starts.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

// Configf builds a ConfigError from a format string.
func Configf(format string, args ...interface{}) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// AssetError reports a missing or unreadable asset (background, logo,
// narration file). Recoverable assets are replaced with a fallback by the
// renderer; unrecoverable ones surface this error.
type AssetError struct {
	Path string
	Err  error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("asset %s: %v", e.Path, e.Err)
}

func (e *AssetError) Unwrap() error { return e.Err }

// ProcessKind classifies failures of external processes.
type ProcessKind string

const (
	KindSynthesis ProcessKind = "synthesis"
	KindEncode    ProcessKind = "encode"
	KindTimeout   ProcessKind = "timeout"
)

// ProcessError reports a failed invocation of an external process (speech
// synthesis or the encoding engine) together with its captured diagnostic
// output.
type ProcessError struct {
	Kind       ProcessKind
	Op         string
	Diagnostic string
	Err        error
}

func (e *ProcessError) Error() string {
	if e.Diagnostic != "" {
		return fmt.Sprintf("%s %s: %v: %s", e.Kind, e.Op, e.Err, e.Diagnostic)
	}
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Op, e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }

// SynthesisUnavailable reports that speech synthesis failed after all
// bounded retries.
func SynthesisUnavailable(op string, err error) *ProcessError {
	return &ProcessError{Kind: KindSynthesis, Op: op, Err: err}
}

// EncodeFailed reports a non-zero exit or missing output from the encoding
// engine. Encode failures are deterministic and never retried.
func EncodeFailed(op, diagnostic string, err error) *ProcessError {
	return &ProcessError{Kind: KindEncode, Op: op, Diagnostic: diagnostic, Err: err}
}

// ExternalProcessTimeout reports that an external invocation exceeded its
// configured deadline. Partial output is discarded by the caller.
func ExternalProcessTimeout(op string, err error) *ProcessError {
	return &ProcessError{Kind: KindTimeout, Op: op, Err: err}
}

// UnreadableMediaError reports an input that the encoding engine could not
// probe or decode. Fatal for that input, never retried.
type UnreadableMediaError struct {
	Path string
	Err  error
}

func (e *UnreadableMediaError) Error() string {
	return fmt.Sprintf("unreadable media %s: %v", e.Path, e.Err)
}

func (e *UnreadableMediaError) Unwrap() error { return e.Err }

// UnsupportedTempoFactorError reports a tempo factor outside the supported
// band. Factors are rejected rather than clamped.
type UnsupportedTempoFactorError struct {
	Factor   float64
	Min, Max float64
}

func (e *UnsupportedTempoFactorError) Error() string {
	return fmt.Sprintf("unsupported tempo factor %.2f (supported range %.2f-%.2f)", e.Factor, e.Min, e.Max)
}

// MissingFrameError reports a gap in a numbered frame sequence. Index is the
// first missing frame number.
type MissingFrameError struct {
	Index int
}

func (e *MissingFrameError) Error() string {
	return fmt.Sprintf("missing frame %d in sequence", e.Index)
}
