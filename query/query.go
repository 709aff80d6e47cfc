package query

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hupe1980/diorama/document"
)

// Operator represents a condition operator in the query DSL.
type Operator string

const (
	// OpEq tests direct equality.
	OpEq Operator = "$eq"
	// OpNe tests direct inequality.
	OpNe Operator = "$ne"
	// OpGt tests strict greater-than ordering.
	OpGt Operator = "$gt"
	// OpGte tests greater-than-or-equal ordering.
	OpGte Operator = "$gte"
	// OpLt tests strict less-than ordering.
	OpLt Operator = "$lt"
	// OpLte tests less-than-or-equal ordering.
	OpLte Operator = "$lte"
	// OpIn tests membership in an operand array.
	OpIn Operator = "$in"
	// OpNin tests absence or non-membership.
	OpNin Operator = "$nin"
	// OpExists tests whether the field path resolves at all.
	OpExists Operator = "$exists"
	// OpRegex tests an unanchored pattern search over string values.
	OpRegex Operator = "$regex"
	// OpNot negates the wrapped condition.
	OpNot Operator = "$not"

	// OpAnd combines sub-queries; all must match.
	OpAnd Operator = "$and"
	// OpOr combines sub-queries; at least one must match.
	OpOr Operator = "$or"
	// OpNor combines sub-queries; none may match.
	OpNor Operator = "$nor"
)

// Query is a compiled predicate over documents.
//
// Compile validates the whole tree up front, so Matches and Filter
// cannot fail at evaluation time and never return partial results for
// malformed input.
type Query struct {
	root andGroup
}

// Compile parses a document-shaped query into an evaluable tree.
//
// Top-level keys are implicitly AND-ed. A key is either a combinator
// ($and/$or/$nor with a sequence of sub-queries) or a dot-notation
// field path whose condition is a scalar (implicit equality) or a
// mapping of operator to operand. Unrecognized operators fail with an
// *OperatorError; structural problems fail with ErrBadQuery.
func Compile(q map[string]any) (*Query, error) {
	root, err := compileQuery(q, 0)
	if err != nil {
		return nil, err
	}
	return &Query{root: root}, nil
}

// MustCompile is like Compile but panics on error. Intended for
// fixed queries in tests and examples.
func MustCompile(q map[string]any) *Query {
	c, err := Compile(q)
	if err != nil {
		panic(err)
	}
	return c
}

// Matches reports whether the document satisfies the query.
func (q *Query) Matches(doc document.Document) bool {
	return q.root.matches(doc)
}

type node interface {
	matches(doc document.Document) bool
}

// andGroup matches iff all children match. Empty matches.
type andGroup []node

func (g andGroup) matches(doc document.Document) bool {
	for _, n := range g {
		if !n.matches(doc) {
			return false
		}
	}
	return true
}

// orGroup matches iff any child matches. Empty does not match.
type orGroup []node

func (g orGroup) matches(doc document.Document) bool {
	for _, n := range g {
		if n.matches(doc) {
			return true
		}
	}
	return false
}

// norGroup matches iff no child matches. Empty matches.
type norGroup []node

func (g norGroup) matches(doc document.Document) bool {
	for _, n := range g {
		if n.matches(doc) {
			return false
		}
	}
	return true
}

// fieldNode resolves one field path and applies its condition to the
// resolved value (possibly the absent sentinel).
type fieldNode struct {
	path string
	cond condition
}

func (f *fieldNode) matches(doc document.Document) bool {
	return f.cond.holds(document.Resolve(doc, f.path))
}

type condition interface {
	holds(v document.Value) bool
}

// equalsCond is the implicit-equality scalar condition.
type equalsCond struct {
	operand document.Value
}

func (c equalsCond) holds(v document.Value) bool {
	return compareEqual(v, c.operand)
}

// opsCond is an operator mapping; every predicate must hold.
type opsCond []predicate

func (c opsCond) holds(v document.Value) bool {
	for i := range c {
		if !c[i].holds(v) {
			return false
		}
	}
	return true
}

// predicate is one compiled (operator, operand) pair.
type predicate struct {
	op         Operator
	cmp        compareFunc // table-dispatched operators
	operand    document.Value
	re         *regexp.Regexp // $regex
	wantExists bool           // $exists
	not        condition      // $not
}

func (p *predicate) holds(v document.Value) bool {
	switch p.op {
	case OpExists:
		return !v.IsAbsent() == p.wantExists
	case OpRegex:
		s, ok := v.AsString()
		return ok && p.re.MatchString(s)
	case OpNot:
		return !p.not.holds(v)
	default:
		return p.cmp(v, p.operand)
	}
}

func compileQuery(q map[string]any, depth int) (andGroup, error) {
	if depth > document.MaxDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d levels", ErrBadQuery, document.MaxDepth)
	}

	group := make(andGroup, 0, len(q))
	for key, raw := range q {
		switch Operator(key) {
		case OpAnd:
			subs, err := compileSubQueries(key, raw, depth)
			if err != nil {
				return nil, err
			}
			group = append(group, andGroup(subs))
		case OpOr:
			subs, err := compileSubQueries(key, raw, depth)
			if err != nil {
				return nil, err
			}
			group = append(group, orGroup(subs))
		case OpNor:
			subs, err := compileSubQueries(key, raw, depth)
			if err != nil {
				return nil, err
			}
			group = append(group, norGroup(subs))
		default:
			// A $-prefixed key at query level that is not a combinator is
			// a malformed request, not a field path.
			if strings.HasPrefix(key, "$") {
				return nil, &OperatorError{Op: key}
			}
			cond, err := compileCondition(raw, depth)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", key, err)
			}
			group = append(group, &fieldNode{path: key, cond: cond})
		}
	}
	return group, nil
}

func compileSubQueries(key string, raw any, depth int) ([]node, error) {
	list, ok := raw.([]any)
	if !ok {
		// Accept the concrete slice type too, common when queries are
		// built in Go code rather than decoded from JSON.
		typed, tok := raw.([]map[string]any)
		if !tok {
			return nil, fmt.Errorf("%w: %s requires a sequence of sub-queries, got %T", ErrBadQuery, key, raw)
		}
		list = make([]any, len(typed))
		for i := range typed {
			list[i] = typed[i]
		}
	}

	subs := make([]node, 0, len(list))
	for i, item := range list {
		sub, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: element %d of %s must be an object, got %T", ErrBadQuery, i, key, item)
		}
		compiled, err := compileQuery(sub, depth+1)
		if err != nil {
			return nil, err
		}
		subs = append(subs, compiled)
	}
	return subs, nil
}

func compileCondition(raw any, depth int) (condition, error) {
	if depth > document.MaxDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d levels", ErrBadQuery, document.MaxDepth)
	}

	m, ok := raw.(map[string]any)
	if !ok {
		operand, err := document.FromAny(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadQuery, err)
		}
		return equalsCond{operand: operand}, nil
	}

	preds := make(opsCond, 0, len(m))
	for op, rawOperand := range m {
		p, err := compilePredicate(Operator(op), rawOperand, depth)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	return preds, nil
}

func compilePredicate(op Operator, rawOperand any, depth int) (predicate, error) {
	switch op {
	case OpExists:
		want, ok := rawOperand.(bool)
		if !ok {
			return predicate{}, fmt.Errorf("%w: $exists requires a boolean operand, got %T", ErrBadQuery, rawOperand)
		}
		return predicate{op: op, wantExists: want}, nil

	case OpRegex:
		pattern, ok := rawOperand.(string)
		if !ok {
			return predicate{}, fmt.Errorf("%w: $regex requires a string pattern, got %T", ErrBadQuery, rawOperand)
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return predicate{}, fmt.Errorf("%w: $regex pattern: %v", ErrBadQuery, err)
		}
		return predicate{op: op, re: re}, nil

	case OpNot:
		inner, err := compileCondition(rawOperand, depth+1)
		if err != nil {
			return predicate{}, err
		}
		return predicate{op: op, not: inner}, nil

	case OpIn, OpNin:
		operand, err := document.FromAny(rawOperand)
		if err != nil {
			return predicate{}, fmt.Errorf("%w: %v", ErrBadQuery, err)
		}
		if operand.Kind != document.KindArray {
			return predicate{}, fmt.Errorf("%w: %s requires an array operand, got %s", ErrBadQuery, op, operand.Kind)
		}
		return predicate{op: op, cmp: compareFuncs[op], operand: operand}, nil

	default:
		cmp, ok := compareFuncs[op]
		if !ok {
			return predicate{}, &OperatorError{Op: string(op)}
		}
		operand, err := document.FromAny(rawOperand)
		if err != nil {
			return predicate{}, fmt.Errorf("%w: %v", ErrBadQuery, err)
		}
		return predicate{op: op, cmp: cmp, operand: operand}, nil
	}
}
