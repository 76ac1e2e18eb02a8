package query

import (
	"go.uber.org/zap"

	"cqv/internal/domain"
)

// SortKey selects which field a results view is ordered by
type SortKey string

const (
	SortByName       SortKey = "name"
	SortByGroup      SortKey = "group"
	SortByStatus     SortKey = "status"
	SortByExpression SortKey = "expression"
	SortByTestsName  SortKey = "testsName"
)

// SortOrder is ascending or descending
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// GroupKey selects how a results view is partitioned
type GroupKey string

const (
	GroupByNone      GroupKey = "none"
	GroupByGroup     GroupKey = "group"
	GroupByStatus    GroupKey = "status"
	GroupByTestsName GroupKey = "testsName"
)

// StatusAll is the status filter value that matches every record
const StatusAll = "all"

// Defaults applied whenever an external parameter is missing or invalid
const (
	DefaultSortKey   = SortByName
	DefaultSortOrder = SortAsc
	DefaultGroupKey  = GroupByNone
	DefaultStatus    = StatusAll
)

// Params holds a validated set of view parameters
type Params struct {
	Status  string // StatusAll or one of the four domain statuses
	Search  string
	GroupBy GroupKey
	SortBy  SortKey
	Order   SortOrder
}

// DefaultParams returns the documented defaults
func DefaultParams() Params {
	return Params{
		Status:  DefaultStatus,
		GroupBy: DefaultGroupKey,
		SortBy:  DefaultSortKey,
		Order:   DefaultSortOrder,
	}
}

// RawParams carries unvalidated parameter strings from an external source
// (URL query values, session state, CLI flags).
type RawParams struct {
	Status    string
	Search    string
	GroupBy   string
	SortBy    string
	SortOrder string
}

// ParseParams validates raw parameter values against the known enumerations.
// Invalid values fall back to the documented default and are logged as a
// warning; they are never surfaced as errors. An empty value means "use the
// default" and is not logged.
func ParseParams(raw RawParams, log *zap.Logger) Params {
	if log == nil {
		log = zap.NewNop()
	}
	p := DefaultParams()
	p.Search = raw.Search

	if raw.Status != "" {
		if raw.Status == StatusAll || domain.Status(raw.Status).IsKnown() {
			p.Status = raw.Status
		} else {
			log.Warn("invalid status filter, using default",
				zap.String("status", raw.Status),
				zap.String("default", DefaultStatus))
		}
	}

	if raw.GroupBy != "" {
		switch GroupKey(raw.GroupBy) {
		case GroupByNone, GroupByGroup, GroupByStatus, GroupByTestsName:
			p.GroupBy = GroupKey(raw.GroupBy)
		default:
			log.Warn("invalid groupBy, using default",
				zap.String("groupBy", raw.GroupBy),
				zap.String("default", string(DefaultGroupKey)))
		}
	}

	if raw.SortBy != "" {
		switch SortKey(raw.SortBy) {
		case SortByName, SortByGroup, SortByStatus, SortByExpression, SortByTestsName:
			p.SortBy = SortKey(raw.SortBy)
		default:
			log.Warn("invalid sortBy, using default",
				zap.String("sortBy", raw.SortBy),
				zap.String("default", string(DefaultSortKey)))
		}
	}

	if raw.SortOrder != "" {
		switch SortOrder(raw.SortOrder) {
		case SortAsc, SortDesc:
			p.Order = SortOrder(raw.SortOrder)
		default:
			log.Warn("invalid sortOrder, using default",
				zap.String("sortOrder", raw.SortOrder),
				zap.String("default", string(DefaultSortOrder)))
		}
	}

	return p
}
