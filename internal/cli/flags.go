package cli

import "cqv/internal/config"

// Flags holds command-line flags
type Flags struct {
	Status      string
	Search      string
	GroupBy     string
	SortBy      string
	SortOrder   string
	Consistency string
	Plain       bool
	NoValidate  bool
	SchemaRef   string
	CSVPath     string
	JSONPath    string
	IndexRef    string
	Index       bool
	ChartDir    string
	Pattern     string
	OutPath     string
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Status:      f.Status,
		Search:      f.Search,
		GroupBy:     f.GroupBy,
		SortBy:      f.SortBy,
		SortOrder:   f.SortOrder,
		Consistency: f.Consistency,
		Plain:       f.Plain,
		NoValidate:  f.NoValidate,
		SchemaRef:   f.SchemaRef,
		CSVPath:     f.CSVPath,
		JSONPath:    f.JSONPath,
		IndexRef:    f.IndexRef,
		Index:       f.Index,
		ChartDir:    f.ChartDir,
		Pattern:     f.Pattern,
		OutPath:     f.OutPath,
	}
}
