package tailoring

import (
	"fmt"

	"github.com/jonathan/resume-tailor/internal/types"
)

// Code is a failure taxonomy code
type Code string

// Failure codes
const (
	CodeInvalidInput        Code = "invalid_input"
	CodeInputTooLarge       Code = "input_too_large"
	CodeNoViableSection     Code = "no_viable_section"
	CodeTimeout             Code = "timeout"
	CodeServiceUnavailable  Code = "service_unavailable"
	CodeInvalidResponse     Code = "invalid_response"
	CodeQualityNotAchieved  Code = "quality_not_achieved"
	CodeUpstreamUnavailable Code = "upstream_unavailable"
	CodeCancelled           Code = "cancelled"
	CodeStorageFailed       Code = "storage_failed"
)

// Failure is the terminal error of a tailoring request. It carries enough
// context for the caller to decide on a manual fallback.
type Failure struct {
	Code       Code                  `json:"code"`
	Message    string                `json:"message"`
	Attempts   int                   `json:"attempts"`
	LastReport *types.ScoreReport    `json:"last_report,omitempty"`
	Best       *types.TailoredResume `json:"best,omitempty"`
	Trace      []Transition          `json:"trace,omitempty"`
	Cause      error                 `json:"-"`
}

func (e *Failure) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("tailoring failed (%s): %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("tailoring failed (%s): %s", e.Code, e.Message)
}

func (e *Failure) Unwrap() error {
	return e.Cause
}
