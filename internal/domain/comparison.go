package domain

// Consistency classifies how a single test's outcome agrees across the
// documents included in a comparison.
type Consistency string

const (
	// ConsistencyNoData means no included file reported this test
	ConsistencyNoData Consistency = "no-data"
	// ConsistencyConsistent means every file containing the test agrees on status
	ConsistencyConsistent Consistency = "consistent"
	// ConsistencyInconsistent means at least two files disagree on status
	ConsistencyInconsistent Consistency = "inconsistent"
)

// FileResult is one file's outcome for a joined test
type FileResult struct {
	Filename    string
	EngineLabel string
	Status      Status
	Actual      string
	Expected    string
	Error       *TestError
}

// ComparisonTest is one row of the comparison matrix: a (group, test) key
// joined across every compared file. Results holds one entry per file that
// contains the key, in the comparison's file order; a file lacking the key
// has no entry, so lookups by filename are may-be-missing. Recomputed from
// scratch on every selection/filter change, never mutated in place.
type ComparisonTest struct {
	TestName    string
	GroupName   string
	Results     []FileResult
	Consistency Consistency
}

// Key returns the composite join key
func (c ComparisonTest) Key() string {
	return c.GroupName + "::" + c.TestName
}

// ResultFor returns the entry for filename, or nil when that file does not
// contain this test.
func (c ComparisonTest) ResultFor(filename string) *FileResult {
	for i := range c.Results {
		if c.Results[i].Filename == filename {
			return &c.Results[i]
		}
	}
	return nil
}

// FileCount is the number of files reporting this test
func (c ComparisonTest) FileCount() int {
	return len(c.Results)
}
