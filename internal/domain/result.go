package domain

// Status is the outcome of a single CQL test evaluation
type Status string

const (
	StatusPass  Status = "pass"
	StatusFail  Status = "fail"
	StatusSkip  Status = "skip"
	StatusError Status = "error"
)

// KnownStatuses lists every status value a well-formed document may carry,
// in the order they are displayed
var KnownStatuses = []Status{StatusPass, StatusFail, StatusSkip, StatusError}

// IsKnown reports whether s is one of the four recognized statuses.
// Unknown statuses are kept on the record verbatim but never match a filter.
func (s Status) IsKnown() bool {
	switch s {
	case StatusPass, StatusFail, StatusSkip, StatusError:
		return true
	}
	return false
}

// TestError carries the error detail attached to a failed or errored test
type TestError struct {
	Message string `json:"message,omitempty"`
	Name    string `json:"name,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

// TestResult is one test outcome from a CQL test run document.
// Records are immutable once loaded; every derived view copies.
type TestResult struct {
	TestStatus     Status     `json:"testStatus"`
	GroupName      string     `json:"groupName"`
	TestName       string     `json:"testName"`
	TestsName      string     `json:"testsName"`
	Expression     string     `json:"expression"`
	Actual         string     `json:"actual,omitempty"`
	Expected       string     `json:"expected,omitempty"`
	Error          *TestError `json:"error,omitempty"`
	ResponseStatus *int       `json:"responseStatus,omitempty"`
	// Invalid is a tri-state: nil (absent), "true", "false" or "semantic"
	// in the documents seen in the wild. Preserved, not interpreted.
	Invalid *string `json:"invalid,omitempty"`
}

// Key returns the composite identity used to join tests across documents.
// Neither groupName nor testName is unique alone.
func (r TestResult) Key() string {
	return r.GroupName + "::" + r.TestName
}

// Summary holds the aggregate counts a run document reports about itself.
// The counts come from the source document and are never recomputed from
// the detail array, so the two can disagree.
type Summary struct {
	PassCount  int `json:"passCount"`
	FailCount  int `json:"failCount"`
	SkipCount  int `json:"skipCount"`
	ErrorCount int `json:"errorCount"`
}

// Total is the sum of all four counts
func (s Summary) Total() int {
	return s.PassCount + s.FailCount + s.SkipCount + s.ErrorCount
}

// Count returns the summary count for one status (0 for unknown statuses)
func (s Summary) Count(status Status) int {
	switch status {
	case StatusPass:
		return s.PassCount
	case StatusFail:
		return s.FailCount
	case StatusSkip:
		return s.SkipCount
	case StatusError:
		return s.ErrorCount
	}
	return 0
}
