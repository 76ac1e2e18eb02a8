package domain

import "fmt"

// Engine describes the CQL engine/translator that produced a test run.
// Used only as a display label and as a comparison-matrix column header.
type Engine struct {
	APIURL               string `json:"apiUrl,omitempty"`
	CQLVersion           string `json:"cqlVersion,omitempty"`
	CQLEngineVersion     string `json:"cqlEngineVersion,omitempty"`
	CQLTranslatorVersion string `json:"cqlTranslatorVersion,omitempty"`
	Description          string `json:"description,omitempty"`
}

// Label returns the human-readable engine label for a given source filename,
// formatted as "engine (filename)" for comparison column headers.
func (e Engine) Label(filename string) string {
	name := e.Description
	if name == "" {
		name = e.APIURL
	}
	if name == "" {
		name = "unknown engine"
	}
	if filename == "" {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, filename)
}
