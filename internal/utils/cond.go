package querybuilder

// CondType is the connective placed before a WHERE clause
type CondType int

const (
	CondTypeAnd CondType = iota + 1
	CondTypeOr
)

func (c CondType) String() string {
	switch c {
	case CondTypeAnd:
		return "AND"
	case CondTypeOr:
		return "OR"
	default:
		return ""
	}
}

// Condition is a single clause or, when isSubGroup is set, a parenthesised group of clauses.
// The connective of the first condition of a group is never rendered.
type Condition struct {
	condType   CondType
	clause     string
	args       []interface{}
	subCond    []Condition
	isSubGroup bool
}

// InsertRows holds one slice of values per row
type InsertRows [][]interface{}
