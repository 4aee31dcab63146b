package macros

import (
	"errors"
	"fmt"

	"github.com/nickwells/location.mod/location"
)

// These are the kinds of error that can be reported. Every error returned
// by the loader or the expander wraps exactly one of them so you can test
// the kind with errors.Is.
var (
	ErrMalformedDefinition = errors.New("bad macro definition")
	ErrMalformedInvocation = errors.New("bad macro invocation")
	ErrUnknownMacro        = errors.New("unknown macro")
	ErrArgCount            = errors.New("wrong number of macro arguments")
	ErrDuplicateMacro      = errors.New("duplicate macro definition")
)

// Error records the details of a failure to load or expand a macro
type Error struct {
	Kind error
	Name string
	Loc  *location.L
	Msg  string
}

// Error returns a description of the error. The text depends on the kind
// of error and will include the location if it is known
func (e *Error) Error() string {
	at := ""
	if e.Loc != nil {
		at = " at " + e.Loc.String()
	}

	switch e.Kind {
	case ErrUnknownMacro:
		return fmt.Sprintf("Macro '%s'%s was not found", e.Name, at)
	case ErrArgCount:
		return fmt.Sprintf("Macro '%s'%s: %s", e.Name, at, e.Msg)
	case ErrDuplicateMacro:
		return fmt.Sprintf("Macro '%s'%s is already defined", e.Name, at)
	}

	return fmt.Sprintf("Bad macro%s: %s", at, e.Msg)
}

// Unwrap returns the kind of the error
func (e *Error) Unwrap() error {
	return e.Kind
}

// newErr constructs an Error located at the line holding offset off in the
// text
func newErr(kind error, name, srcName, text string, off int, msg string) *Error {
	return &Error{
		Kind: kind,
		Name: name,
		Loc:  locate(srcName, text, off),
		Msg:  msg,
	}
}

// locate returns a location giving the line in the text which holds the
// offset
func locate(srcName, text string, off int) *location.L {
	loc := location.New(srcName)
	if off > len(text) {
		off = len(text)
	}

	loc.Incr()
	for i := 0; i < off; i++ {
		if text[i] == '\n' {
			loc.Incr()
		}
	}

	return loc
}
