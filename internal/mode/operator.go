package mode

// Operator represents a Vim operator: a pending edit action awaiting a
// motion to define its span.
type Operator struct {
	// Name is the operator identifier (e.g., "delete", "change").
	Name string

	// Key is the key that triggers this operator.
	Key rune

	// Wired indicates the operator has motion semantics. Unwired
	// operators enter the pending state but cancel on any follow-up.
	Wired bool

	// EntersInsert indicates the operator enters insert mode after
	// applying (change).
	EntersInsert bool
}

// Standard Vim operators. Delete is the reference implementation; Change
// extends it with an insert-mode transition. Yank, Indent, and Outdent are
// declared but not wired to span semantics.
var (
	// OpDelete deletes text.
	OpDelete = Operator{
		Name:  "delete",
		Key:   'd',
		Wired: true,
	}

	// OpChange deletes text and enters insert mode.
	OpChange = Operator{
		Name:         "change",
		Key:          'c',
		Wired:        true,
		EntersInsert: true,
	}

	// OpYank copies text to a register.
	OpYank = Operator{
		Name: "yank",
		Key:  'y',
	}

	// OpIndent shifts text right.
	OpIndent = Operator{
		Name: "indent",
		Key:  '>',
	}

	// OpOutdent shifts text left.
	OpOutdent = Operator{
		Name: "outdent",
		Key:  '<',
	}
)

// operators maps operator keys to their definitions.
var operators = map[rune]*Operator{
	'd': &OpDelete,
	'c': &OpChange,
	'y': &OpYank,
	'>': &OpIndent,
	'<': &OpOutdent,
}

// GetOperator returns the operator for the given key, or nil.
func GetOperator(key rune) *Operator {
	return operators[key]
}

// IsOperator returns true if the key is an operator.
func IsOperator(key rune) bool {
	_, ok := operators[key]
	return ok
}
