package gen

import "strings"

// ErrorList accumulates the errors found while generating a module so
// they can be reported together.
type ErrorList struct {
	Errors []error
}

// Add appends err if it is non-nil.
func (l *ErrorList) Add(err error) {
	if err != nil {
		l.Errors = append(l.Errors, err)
	}
}

// Len returns the number of collected errors.
func (l *ErrorList) Len() int {
	return len(l.Errors)
}

// Err returns l as an error, or nil when nothing was collected.
func (l *ErrorList) Err() error {
	if len(l.Errors) == 0 {
		return nil
	}
	return l
}

func (l *ErrorList) Error() string {
	msgs := make([]string, len(l.Errors))
	for i, err := range l.Errors {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

func (l *ErrorList) Unwrap() []error {
	return l.Errors
}
