// Package filter compiles catalog query parameters into store predicates.
//
// Every supported parameter is described by a Rule in a fixed registry. The
// Engine looks up each supplied parameter, interprets its value by the rule's
// Kind and ANDs the results. Conditions are emitted in registry order, so the
// same parameter set always yields the same SQL no matter how the request
// ordered it.
package filter

import (
	"strings"

	"github.com/light-bringer/carcat-service/internal/pkg/clock"
	"github.com/light-bringer/carcat-service/internal/pkg/query"
)

// Reserved parameters control the listing and are never filters.
var Reserved = map[string]bool{
	"page":      true,
	"page_size": true,
	"ordering":  true,
}

// Engine interprets query parameters against a rule registry.
type Engine struct {
	rules []Rule
	clock clock.Clock
}

// NewEngine creates an Engine with the default rules.
func NewEngine(clk clock.Clock) *Engine {
	return NewEngineWithRules(clk, DefaultRules())
}

// NewEngineWithRules creates an Engine with a custom registry.
func NewEngineWithRules(clk clock.Clock, rules []Rule) *Engine {
	return &Engine{rules: rules, clock: clk}
}

// Plan is a compiled filter set.
type Plan struct {
	// Conditions are the per-parameter predicates, in registry order.
	Conditions []query.Condition
	// Params names the parameters that produced a condition.
	Params []string
}

// Apply ANDs the plan's conditions into the builder.
func (p *Plan) Apply(b *query.Builder) *query.Builder {
	return b.WhereAll(p.Conditions)
}

// Merge returns a plan holding both plans' conditions.
func (p *Plan) Merge(other *Plan) *Plan {
	return &Plan{
		Conditions: append(append([]query.Condition{}, p.Conditions...), other.Conditions...),
		Params:     append(append([]string{}, p.Params...), other.Params...),
	}
}

// Compile builds a Plan from params. Unknown and reserved names are ignored
// and blank values count as absent. The first invalid value, in registry
// order, is returned as a *domain.ValidationError.
func (e *Engine) Compile(params map[string]string) (*Plan, error) {
	now := e.clock.Now().UTC()
	env := Env{Now: now, Today: e.clock.Today()}

	plan := &Plan{}
	for i := range e.rules {
		rule := &e.rules[i]
		raw, ok := params[rule.Param]
		if !ok || Reserved[rule.Param] || strings.TrimSpace(raw) == "" {
			continue
		}
		cond, err := rule.compile(raw, env)
		if err != nil {
			return nil, err
		}
		if cond == nil {
			continue
		}
		plan.Conditions = append(plan.Conditions, cond)
		plan.Params = append(plan.Params, rule.Param)
	}
	return plan, nil
}

// Params lists every parameter the engine understands, in registry order.
func (e *Engine) Params() []string {
	names := make([]string, 0, len(e.rules))
	for _, r := range e.rules {
		names = append(names, r.Param)
	}
	return names
}
