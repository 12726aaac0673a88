package braces

import sitter "github.com/smacker/go-tree-sitter"

// ClauseRole names the slot a clause fills in its control statement.
type ClauseRole int

const (
	// RoleThen is the consequence of an if statement.
	RoleThen ClauseRole = iota
	// RoleElse is the statement after else.
	RoleElse
	// RoleBody is the body of a loop.
	RoleBody
)

func (r ClauseRole) String() string {
	switch r {
	case RoleThen:
		return "then"
	case RoleElse:
		return "else"
	case RoleBody:
		return "body"
	default:
		return "unknown"
	}
}

// Clause is a sub-statement of a control statement that needs braces.
type Clause struct {
	Role ClauseRole
	Node *sitter.Node
	// Stmt is the control statement owning the clause.
	Stmt *sitter.Node
}

// loopKinds are the control statements with a single body field.
var loopKinds = map[string]struct{}{
	"while_statement": {},
	"for_statement":   {},
	"for_range_loop":  {},
	"do_statement":    {},
}

// isControl reports whether n is a statement the classifier looks at.
func isControl(n *sitter.Node) bool {
	if n.Type() == "if_statement" {
		return true
	}
	_, ok := loopKinds[n.Type()]
	return ok
}

// Classify returns the clauses of n that are single statements rather
// than compound statements. An else clause holding another if statement
// is never returned, so else-if chains stay flat.
func Classify(n *sitter.Node) []Clause {
	if n == nil {
		return nil
	}

	var clauses []Clause
	switch {
	case n.Type() == "if_statement":
		if then := n.ChildByFieldName("consequence"); needsBraces(then) {
			clauses = append(clauses, Clause{Role: RoleThen, Node: then, Stmt: n})
		}
		if els := elseBody(n); needsBraces(els) && els.Type() != "if_statement" {
			clauses = append(clauses, Clause{Role: RoleElse, Node: els, Stmt: n})
		}
	case isControl(n):
		if body := n.ChildByFieldName("body"); needsBraces(body) {
			clauses = append(clauses, Clause{Role: RoleBody, Node: body, Stmt: n})
		}
	}
	return clauses
}

// elseBody returns the statement after else. Newer grammars wrap it in an
// else_clause node, older ones put it in the alternative field directly.
func elseBody(n *sitter.Node) *sitter.Node {
	alt := n.ChildByFieldName("alternative")
	if alt == nil || alt.Type() != "else_clause" {
		return alt
	}
	return lastChild(alt)
}

func needsBraces(n *sitter.Node) bool {
	return n != nil && !n.IsNull() && n.Type() != "compound_statement"
}
