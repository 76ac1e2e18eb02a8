package domain

// Document is one loaded CQL test results file (the CqlTestResults root)
type Document struct {
	Engine           Engine       `json:"cqlengine"`
	Summary          Summary      `json:"testResultsSummary"`
	TestsRunDateTime string       `json:"testsRunDateTime"`
	Results          []TestResult `json:"results"`
}

// Index is the manifest shape listing result files to load together.
// Entries are resolved relative to the manifest's own URL or path.
type Index struct {
	Files []string `json:"files"`
}

// DocumentSet holds every document loaded for a dashboard or comparison
// view, keyed by filename. Filenames keeps load order for display.
type DocumentSet struct {
	Docs      map[string]*Document
	Filenames []string
}

// NewDocumentSet creates an empty set
func NewDocumentSet() *DocumentSet {
	return &DocumentSet{Docs: make(map[string]*Document)}
}

// Add stores a document under filename, replacing any previous one.
// Re-adding an existing filename keeps its original position.
func (ds *DocumentSet) Add(filename string, doc *Document) {
	if _, ok := ds.Docs[filename]; !ok {
		ds.Filenames = append(ds.Filenames, filename)
	}
	ds.Docs[filename] = doc
}

// Get returns the document for filename, or nil when absent
func (ds *DocumentSet) Get(filename string) *Document {
	return ds.Docs[filename]
}

// Len returns the number of loaded documents
func (ds *DocumentSet) Len() int {
	return len(ds.Filenames)
}

// EngineLabel returns the "engine (filename)" label for one loaded file,
// or just the filename when the document is missing.
func (ds *DocumentSet) EngineLabel(filename string) string {
	if doc := ds.Docs[filename]; doc != nil {
		return doc.Engine.Label(filename)
	}
	return filename
}
