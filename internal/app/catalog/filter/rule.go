package filter

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/light-bringer/carcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/carcat-service/internal/pkg/query"
)

// Kind tags how a parameter's value is interpreted.
type Kind int

const (
	// Range compares one column against a parsed scalar bound.
	Range Kind = iota
	// Membership tests a column against a comma-separated value list.
	Membership
	// Boolean applies a fixed predicate chosen by a true/false value.
	Boolean
	// Computed builds a predicate from a parsed scalar and the current time.
	Computed
	// Existence thresholds the number of related rows.
	Existence
	// Text matches free text case-insensitively.
	Text
	// Tags tests the car's tag array.
	Tags
	// Composite splits a key:value token on the first colon.
	Composite
)

// ValueType selects the scalar parser for Range and Computed rules.
type ValueType int

const (
	Int ValueType = iota
	Decimal
	Float
	// Count is a non-negative integer.
	Count
	Date
	// Day parses a date and bounds a TIMESTAMP column by whole UTC days.
	Day
)

// Op is the comparison applied by a Range rule.
type Op int

const (
	Gte Op = iota
	Lte
	Eq
)

// Match selects contains or exact text matching.
type Match int

const (
	Contains Match = iota
	Exact
)

// Env carries request-time inputs for Boolean and Computed rules.
type Env struct {
	Now   time.Time
	Today civil.Date
}

// Rule describes one query parameter.
type Rule struct {
	Param string
	Kind  Kind

	// Field is the target column. Text rules may target several Fields instead.
	Field  string
	Fields []string
	// Relation, when set, moves the predicate into an EXISTS sub-query
	// (or the COUNT sub-query for Existence rules).
	Relation *query.Relation

	Value ValueType
	Op    Op
	Match Match
	// Split treats a Text value as a comma-separated list.
	Split bool
	// All requires every listed value to match instead of any.
	All bool

	// OnTrue and OnFalse are the Boolean branches. A nil branch adds no constraint.
	OnTrue  func(Env) query.Condition
	OnFalse func(Env) query.Condition

	// Compute builds a Computed rule's predicate from its parsed value.
	Compute func(v interface{}, env Env) query.Condition

	// Compose builds a Composite rule's predicate from the split token.
	Compose func(key, value string) (query.Condition, error)
}

// compile turns a raw, non-blank value into a condition. A nil condition
// means the value imposes no constraint.
func (r *Rule) compile(raw string, env Env) (query.Condition, error) {
	switch r.Kind {
	case Range:
		v, err := parseValue(r.Param, raw, r.Value)
		if err != nil {
			return nil, err
		}
		return r.within(r.compare(v)), nil

	case Membership:
		values, err := splitList(r.Param, raw)
		if err != nil {
			return nil, err
		}
		return r.within(query.In(r.Field, values)), nil

	case Boolean:
		b, err := parseBool(r.Param, raw)
		if err != nil {
			return nil, err
		}
		branch := r.OnFalse
		if b {
			branch = r.OnTrue
		}
		if branch == nil {
			return nil, nil
		}
		return branch(env), nil

	case Computed:
		v, err := parseValue(r.Param, raw, r.Value)
		if err != nil {
			return nil, err
		}
		return r.Compute(v, env), nil

	case Existence:
		n, err := parseCount(r.Param, raw)
		if err != nil {
			return nil, err
		}
		return query.CountAtLeast(*r.Relation, n), nil

	case Text:
		return r.compileText(raw)

	case Tags:
		values, err := splitList(r.Param, raw)
		if err != nil {
			return nil, err
		}
		conds := make([]query.Condition, 0, len(values))
		for _, v := range values {
			conds = append(conds, query.ArrayContains(r.Field, v))
		}
		if r.All {
			return query.And(conds...), nil
		}
		return query.Or(conds...), nil

	case Composite:
		key, value, ok := strings.Cut(raw, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, domain.NewValidationError(r.Param, "expected key:value", domain.ErrMalformedFilter)
		}
		cond, err := r.Compose(key, strings.TrimSpace(value))
		if err != nil {
			return nil, domain.NewValidationError(r.Param, err.Error(), domain.ErrMalformedFilter)
		}
		return cond, nil
	}
	return nil, nil
}

func (r *Rule) compare(v interface{}) query.Condition {
	if r.Value == Day {
		day := v.(civil.Date)
		if r.Op == Lte {
			return query.Lt(r.Field, startOfDay(day.AddDays(1)))
		}
		return query.Gte(r.Field, startOfDay(day))
	}
	switch r.Op {
	case Lte:
		return query.Lte(r.Field, v)
	case Eq:
		return query.Eq(r.Field, v)
	default:
		return query.Gte(r.Field, v)
	}
}

// compileText matches one term, or each comma-separated term when Split is set.
// With All, every term gets its own EXISTS so different related rows may match.
func (r *Rule) compileText(raw string) (query.Condition, error) {
	terms := []string{strings.TrimSpace(raw)}
	if r.Split {
		var err error
		if terms, err = splitList(r.Param, raw); err != nil {
			return nil, err
		}
	}

	match := func(field, term string) query.Condition {
		if r.Match == Exact {
			return query.EqualFold(field, term)
		}
		return query.ContainsFold(field, term)
	}
	termCond := func(term string) query.Condition {
		if len(r.Fields) == 0 {
			return match(r.Field, term)
		}
		alts := make([]query.Condition, 0, len(r.Fields))
		for _, f := range r.Fields {
			alts = append(alts, match(f, term))
		}
		return query.Or(alts...)
	}

	if r.All {
		conds := make([]query.Condition, 0, len(terms))
		for _, term := range terms {
			conds = append(conds, r.within(termCond(term)))
		}
		return query.And(conds...), nil
	}
	conds := make([]query.Condition, 0, len(terms))
	for _, term := range terms {
		conds = append(conds, termCond(term))
	}
	return r.within(query.Or(conds...)), nil
}

// within wraps cond in an EXISTS over the rule's relation, if any.
func (r *Rule) within(cond query.Condition) query.Condition {
	if r.Relation == nil {
		return cond
	}
	return query.Exists(*r.Relation, cond)
}

func startOfDay(d civil.Date) time.Time {
	return d.In(time.UTC)
}
