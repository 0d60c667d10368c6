package query

import (
	"fmt"
	"regexp"
	"strings"
)

// Condition represents a WHERE clause condition.
// Implementations must generate SQL fragments and parameter maps
// using Spanner's named parameter format (@paramName).
type Condition interface {
	// SQL returns the SQL fragment and parameter map for this condition.
	// paramIndex is used to generate unique parameter names (@p0, @p1, etc.)
	// and the returned map must contain exactly one entry per consumed index.
	SQL(paramIndex int) (string, map[string]interface{})
}

func paramName(index int) string {
	return fmt.Sprintf("p%d", index)
}

// compareCondition implements binary comparisons (field <op> value).
type compareCondition struct {
	field string
	op    string
	value interface{}
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("status", "active") generates "status = @p0"
func Eq(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: "=", value: value}
}

// Gte creates a "field >= value" condition.
func Gte(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: ">=", value: value}
}

// Lte creates a "field <= value" condition.
func Lte(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: "<=", value: value}
}

// Lt creates a "field < value" condition.
func Lt(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: "<", value: value}
}

// SQL generates the SQL fragment for the comparison.
func (c *compareCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	name := paramName(paramIndex)
	sql := fmt.Sprintf("%s %s @%s", c.field, c.op, name)
	return sql, map[string]interface{}{name: c.value}
}

// inCondition implements set membership against an array parameter.
type inCondition struct {
	field  string
	values interface{}
}

// In creates a membership condition. values must be a slice Spanner can
// encode as an ARRAY parameter.
// Example: In("fuel", []string{"petrol", "diesel"}) generates "fuel IN UNNEST(@p0)"
func In(field string, values interface{}) Condition {
	return &inCondition{field: field, values: values}
}

// SQL generates the SQL fragment for the membership test.
func (c *inCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	name := paramName(paramIndex)
	return fmt.Sprintf("%s IN UNNEST(@%s)", c.field, name), map[string]interface{}{name: c.values}
}

// IsNull creates a WHERE condition for NULL checks.
// Example: IsNull("discount_price") generates "discount_price IS NULL"
func IsNull(field string) Condition {
	return &isNullCondition{field: field}
}

// isNullCondition implements IS NULL comparison.
type isNullCondition struct {
	field string
}

// SQL generates the SQL fragment for IS NULL comparison.
func (c *isNullCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	sql := fmt.Sprintf("%s IS NULL", c.field)
	return sql, map[string]interface{}{}
}

// IsNotNull creates a WHERE condition for NOT NULL checks.
// Example: IsNotNull("discount_price") generates "discount_price IS NOT NULL"
func IsNotNull(field string) Condition {
	return &isNotNullCondition{field: field}
}

// isNotNullCondition implements IS NOT NULL comparison.
type isNotNullCondition struct {
	field string
}

// SQL generates the SQL fragment for IS NOT NULL comparison.
func (c *isNotNullCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	sql := fmt.Sprintf("%s IS NOT NULL", c.field)
	return sql, map[string]interface{}{}
}

// foldCondition implements case-insensitive text matching.
type foldCondition struct {
	field    string
	value    string
	contains bool
}

// ContainsFold creates a case-insensitive substring match.
// Example: ContainsFold("title", "City") generates "STRPOS(LOWER(title), @p0) > 0" with p0 = "city"
func ContainsFold(field, substr string) Condition {
	return &foldCondition{field: field, value: substr, contains: true}
}

// EqualFold creates a case-insensitive equality match.
// Example: EqualFold("name", "ABS") generates "LOWER(name) = @p0" with p0 = "abs"
func EqualFold(field, value string) Condition {
	return &foldCondition{field: field, value: value}
}

// SQL generates the SQL fragment for the case-insensitive match.
func (c *foldCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	name := paramName(paramIndex)
	params := map[string]interface{}{name: strings.ToLower(c.value)}
	if c.contains {
		return fmt.Sprintf("STRPOS(LOWER(%s), @%s) > 0", c.field, name), params
	}
	return fmt.Sprintf("LOWER(%s) = @%s", c.field, name), params
}

// arrayContainsCondition tests membership of a value in an ARRAY column.
type arrayContainsCondition struct {
	field string
	value interface{}
}

// ArrayContains creates a condition matching rows whose ARRAY column holds value.
// Example: ArrayContains("tags", "suv") generates "@p0 IN UNNEST(tags)"
func ArrayContains(field string, value interface{}) Condition {
	return &arrayContainsCondition{field: field, value: value}
}

// SQL generates the SQL fragment for the array membership test.
func (c *arrayContainsCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	name := paramName(paramIndex)
	return fmt.Sprintf("@%s IN UNNEST(%s)", name, c.field), map[string]interface{}{name: c.value}
}

var jsonKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ValidJSONKey reports whether key can be embedded in a JSON path literal.
func ValidJSONKey(key string) bool {
	return jsonKeyPattern.MatchString(key)
}

// jsonValueCondition compares a top-level scalar of a JSON column.
type jsonValueCondition struct {
	field string
	key   string
	value string
}

// JSONValueEq matches rows whose JSON column has key set to the scalar value.
// Keys that fail ValidJSONKey never match.
// Example: JSONValueEq("metadata", "variant", "zx") generates "JSON_VALUE(metadata, '$.variant') = @p0"
func JSONValueEq(field, key, value string) Condition {
	return &jsonValueCondition{field: field, key: key, value: value}
}

// SQL generates the SQL fragment for the JSON scalar comparison.
func (c *jsonValueCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	if !ValidJSONKey(c.key) {
		return "FALSE", map[string]interface{}{}
	}
	name := paramName(paramIndex)
	sql := fmt.Sprintf("JSON_VALUE(%s, '$.%s') = @%s", c.field, c.key, name)
	return sql, map[string]interface{}{name: c.value}
}

// groupCondition joins child conditions with AND or OR.
type groupCondition struct {
	op         string
	conditions []Condition
}

// And groups conditions with AND. An empty group is TRUE.
func And(conditions ...Condition) Condition {
	return &groupCondition{op: "AND", conditions: conditions}
}

// Or groups conditions with OR. An empty group is FALSE.
func Or(conditions ...Condition) Condition {
	return &groupCondition{op: "OR", conditions: conditions}
}

// SQL generates the parenthesised group.
func (c *groupCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	if len(c.conditions) == 0 {
		if c.op == "OR" {
			return "FALSE", map[string]interface{}{}
		}
		return "TRUE", map[string]interface{}{}
	}
	fragments, params := renderAll(c.conditions, paramIndex)
	if len(fragments) == 1 {
		return fragments[0], params
	}
	return "(" + strings.Join(fragments, " "+c.op+" ") + ")", params
}

// Relation describes a child table correlated with the outer query's row.
type Relation struct {
	// Table is the child table name.
	Table string
	// Correlate is the join predicate against the outer row,
	// e.g. "car_images.car_id = cars.car_id".
	Correlate string
}

// existsCondition implements a correlated EXISTS semi-join.
type existsCondition struct {
	relation   Relation
	conditions []Condition
	negate     bool
}

// Exists matches outer rows with at least one related row satisfying all conditions.
// Example: Exists(Relation{"car_images", "car_images.car_id = cars.car_id"}, Eq("car_images.category_key", "interior"))
// generates "EXISTS (SELECT 1 FROM car_images WHERE car_images.car_id = cars.car_id AND car_images.category_key = @p0)"
func Exists(relation Relation, conditions ...Condition) Condition {
	return &existsCondition{relation: relation, conditions: conditions}
}

// NotExists matches outer rows with no related row satisfying all conditions.
func NotExists(relation Relation, conditions ...Condition) Condition {
	return &existsCondition{relation: relation, conditions: conditions, negate: true}
}

// SQL generates the EXISTS sub-query.
func (c *existsCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	where, params := c.relation.where(c.conditions, paramIndex)
	prefix := "EXISTS"
	if c.negate {
		prefix = "NOT EXISTS"
	}
	return fmt.Sprintf("%s (SELECT 1 FROM %s WHERE %s)", prefix, c.relation.Table, where), params
}

// countCondition compares the number of related rows against a threshold.
type countCondition struct {
	relation Relation
	min      int64
}

// CountAtLeast matches outer rows with at least min related rows.
// Example: CountAtLeast(Relation{"car_images", "car_images.car_id = cars.car_id"}, 3)
// generates "(SELECT COUNT(*) FROM car_images WHERE car_images.car_id = cars.car_id) >= @p0"
func CountAtLeast(relation Relation, min int64) Condition {
	return &countCondition{relation: relation, min: min}
}

// SQL generates the correlated COUNT sub-query.
func (c *countCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	name := paramName(paramIndex)
	sql := fmt.Sprintf("(SELECT COUNT(*) FROM %s WHERE %s) >= @%s", c.relation.Table, c.relation.Correlate, name)
	return sql, map[string]interface{}{name: c.min}
}

func (r Relation) where(conditions []Condition, paramIndex int) (string, map[string]interface{}) {
	fragments, params := renderAll(conditions, paramIndex)
	return strings.Join(append([]string{r.Correlate}, fragments...), " AND "), params
}

// exprCondition is a raw SQL template whose '?' placeholders become parameters.
type exprCondition struct {
	template string
	args     []interface{}
}

// Expr creates a condition from a SQL template. Each '?' is replaced, in
// order, by a generated parameter bound to the matching argument.
// Example: Expr("(price - discount_price) * 100 >= ? * price", 20) generates
// "((price - discount_price) * 100 >= @p0 * price)"
func Expr(template string, args ...interface{}) Condition {
	return &exprCondition{template: template, args: args}
}

// SQL generates the expanded template.
func (c *exprCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	var sql strings.Builder
	params := make(map[string]interface{}, len(c.args))
	next := 0
	for _, r := range c.template {
		if r == '?' && next < len(c.args) {
			name := paramName(paramIndex + next)
			sql.WriteString("@" + name)
			params[name] = c.args[next]
			next++
			continue
		}
		sql.WriteRune(r)
	}
	return "(" + sql.String() + ")", params
}

// renderAll renders conditions with sequential parameter numbering.
func renderAll(conditions []Condition, paramIndex int) ([]string, map[string]interface{}) {
	fragments := make([]string, 0, len(conditions))
	params := make(map[string]interface{})
	for _, condition := range conditions {
		fragment, condParams := condition.SQL(paramIndex)
		fragments = append(fragments, fragment)
		for k, v := range condParams {
			params[k] = v
		}
		paramIndex += len(condParams)
	}
	return fragments, params
}
