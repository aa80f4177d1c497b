package models

import "fmt"

// Outcome is the terminal state of one processed query.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeEmpty
	OutcomeError
)

// Result is the user-facing outcome of a query: a generated report, an
// explicit "no results", or an error description.
type Result struct {
	Outcome    Outcome
	ReportPath string
	Err        string
}

func Success(reportPath string) Result {
	return Result{Outcome: OutcomeSuccess, ReportPath: reportPath}
}

func Empty() Result {
	return Result{Outcome: OutcomeEmpty}
}

func Failure(err error) Result {
	return Result{Outcome: OutcomeError, Err: err.Error()}
}

// Message renders the result for the caller.
func (r Result) Message() string {
	switch r.Outcome {
	case OutcomeSuccess:
		return fmt.Sprintf("Excel report generated: %s", r.ReportPath)
	case OutcomeEmpty:
		return "No results found for the query."
	default:
		return fmt.Sprintf("Error processing query: %s", r.Err)
	}
}
