// Package errors provides severity-aware error types for the
// recommendation pipeline.
package errors

import "fmt"

// Severity indicates error impact level.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// CardError is a structured error with card context. Recoverable means
// the pipeline produced (or can still produce) results despite it.
type CardError struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Severity    Severity `json:"severity"`
	CardAlias   string   `json:"card_alias,omitempty"`
	Recoverable bool     `json:"recoverable"`
}

func (e *CardError) Error() string {
	if e.CardAlias != "" {
		return fmt.Sprintf("[%s] %s: %s (card: %s)", e.Severity, e.Code, e.Message, e.CardAlias)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Code, e.Message)
}

// Error codes
const (
	ErrCodeCalcFailed         = "CALC_FAILED"
	ErrCodeShapeMismatch      = "SHAPE_MISMATCH"
	ErrCodeDetailUnavailable  = "DETAIL_UNAVAILABLE"
	ErrCodeMalformedItem      = "MALFORMED_ITEM"
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeCatalogUnavailable = "CATALOG_UNAVAILABLE"
)

// NewCalcFailed marks the batch-fatal path: the recommendation call
// itself failed and no results can be produced.
func NewCalcFailed(err error) *CardError {
	return &CardError{
		Code:        ErrCodeCalcFailed,
		Message:     fmt.Sprintf("savings calculation failed: %v", err),
		Severity:    SeverityFatal,
		Recoverable: false,
	}
}

// NewDetailUnavailable records a per-card detail lookup failure. The
// card still produces a result from its own fields.
func NewDetailUnavailable(alias string, err error) *CardError {
	return &CardError{
		Code:        ErrCodeDetailUnavailable,
		Message:     fmt.Sprintf("card detail lookup failed: %v", err),
		Severity:    SeverityWarning,
		CardAlias:   alias,
		Recoverable: true,
	}
}

// NewMalformedItem records a raw saving that could not be enriched and
// was dropped from the batch.
func NewMalformedItem(alias string, cause any) *CardError {
	return &CardError{
		Code:        ErrCodeMalformedItem,
		Message:     fmt.Sprintf("raw saving could not be enriched: %v", cause),
		Severity:    SeverityError,
		CardAlias:   alias,
		Recoverable: true,
	}
}

// NewInvalidInput rejects user input before any network call is made.
func NewInvalidInput(field, reason string) *CardError {
	return &CardError{
		Code:        ErrCodeInvalidInput,
		Message:     fmt.Sprintf("invalid %s: %s", field, reason),
		Severity:    SeverityError,
		Recoverable: false,
	}
}
