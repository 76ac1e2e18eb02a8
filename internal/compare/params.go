package compare

import (
	"go.uber.org/zap"

	"cqv/internal/domain"
)

// RawMatrixParams carries unvalidated comparison parameter strings from an
// external source (CLI flags, session state).
type RawMatrixParams struct {
	Search      string
	Group       string
	AnyStatus   string
	Consistency string
	SortBy      string
	SortOrder   string
}

// MatrixParams holds a validated set of comparison view parameters. An
// empty SortBy keeps the matrix row order.
type MatrixParams struct {
	Filter   MatrixFilter
	SortBy   MatrixSortKey
	SortDesc bool
}

// ParseMatrixParams validates raw parameter values against the known
// enumerations. Invalid values fall back to the default (no constraint,
// matrix row order, ascending) and are logged as a warning; they are never
// surfaced as errors. An empty value means "use the default" and is not
// logged.
func ParseMatrixParams(raw RawMatrixParams, log *zap.Logger) MatrixParams {
	if log == nil {
		log = zap.NewNop()
	}
	p := MatrixParams{Filter: MatrixFilter{Search: raw.Search, Group: raw.Group}}

	if raw.AnyStatus != "" {
		if domain.Status(raw.AnyStatus).IsKnown() {
			p.Filter.AnyStatus = domain.Status(raw.AnyStatus)
		} else {
			log.Warn("invalid any-status filter, ignoring",
				zap.String("status", raw.AnyStatus))
		}
	}

	if raw.Consistency != "" {
		switch c := domain.Consistency(raw.Consistency); c {
		case domain.ConsistencyNoData, domain.ConsistencyConsistent, domain.ConsistencyInconsistent:
			p.Filter.Consistency = c
		default:
			log.Warn("invalid consistency filter, ignoring",
				zap.String("consistency", raw.Consistency))
		}
	}

	if raw.SortBy != "" {
		switch k := MatrixSortKey(raw.SortBy); k {
		case MatrixSortByGroup, MatrixSortByName, MatrixSortByConsistency, MatrixSortByFileCount:
			p.SortBy = k
		default:
			log.Warn("invalid sort-by, keeping matrix order",
				zap.String("sortBy", raw.SortBy))
		}
	}

	switch raw.SortOrder {
	case "", "asc":
	case "desc":
		p.SortDesc = true
	default:
		log.Warn("invalid sort-order, using ascending",
			zap.String("sortOrder", raw.SortOrder))
	}

	return p
}
