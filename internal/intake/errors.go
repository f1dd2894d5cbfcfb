package intake

import "fmt"

// Kind classifies a pipeline failure.
type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindValidation    Kind = "validation"
	KindPersistence   Kind = "persistence"
)

// Pipeline stages reported in failure details.
const (
	StageValidation  = "validation"
	StageEnrichment  = "enrichment"
	StagePersistence = "persistence"
)

// Error is a pipeline failure. Msg is safe to show to the client; Err holds
// the underlying cause for logs and errors.Is.
type Error struct {
	Kind  Kind
	Stage string
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Details is a short diagnostic for the failure envelope.
func (e *Error) Details() string {
	return fmt.Sprintf("%s error at %s stage", e.Kind, e.Stage)
}

func validationError(msg string) *Error {
	return &Error{Kind: KindValidation, Stage: StageValidation, Msg: msg}
}
