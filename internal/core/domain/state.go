package domain

// AnalysisState is a state of the submission state machine.
type AnalysisState string

// Submission states. Idle, Succeeded and Failed all accept a new submission;
// Submitting rejects one.
const (
	StateIdle       AnalysisState = "idle"
	StateSubmitting AnalysisState = "submitting"
	StateSucceeded  AnalysisState = "succeeded"
	StateFailed     AnalysisState = "failed"
)

// String returns the string representation.
func (s AnalysisState) String() string {
	return string(s)
}

// Terminal returns true for Succeeded and Failed.
func (s AnalysisState) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// ResultOrigin records how the displayed result was obtained.
type ResultOrigin string

// Result origins.
const (
	OriginNone       ResultOrigin = ""
	OriginSubmission ResultOrigin = "submission"
	OriginHistory    ResultOrigin = "history"
)

// AnalysisStatus is an immutable snapshot of the orchestrator.
type AnalysisStatus struct {
	// State is the submission state.
	State AnalysisState

	// SubmissionID identifies the latest submission (empty before the first).
	SubmissionID string

	// Input is the snapshot of the latest submitted input.
	Input *BusinessInput

	// Result is the currently displayed result. It survives failures.
	Result *AnalysisResult

	// Origin records whether Result came from a submission or from history.
	Origin ResultOrigin

	// ShowOutreach is true when outreach generation was requested for the
	// submission that produced Result.
	ShowOutreach bool

	// Err is the error of the latest failed submission or history load.
	Err error

	// ErrMessage is a human-readable form of Err.
	ErrMessage string
}
