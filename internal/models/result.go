package models

// Outcome reports whether a mutation matched something and changed the store
type Outcome int

const (
	// Skipped means nothing matched or there was nothing to do
	Skipped Outcome = iota
	// Applied means the operation matched and changed the store
	Applied
)

// Applied reports whether the outcome is Applied
func (o Outcome) Applied() bool {
	return o == Applied
}

func (o Outcome) String() string {
	if o == Applied {
		return "applied"
	}
	return "skipped"
}

// MarshalText renders the outcome as "applied" or "skipped"
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Result is returned by operations that validate caller input.
// Failures carry a human-readable message intended to be shown verbatim.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    *User  `json:"user,omitempty"`
}

// Fail builds a failed Result
func Fail(message string) Result {
	return Result{Success: false, Message: message}
}
