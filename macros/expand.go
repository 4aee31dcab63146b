package macros

import (
	"fmt"
	"io"
	"strings"
)

// Call records a single invocation of a macro
type Call struct {
	Name string
	Args []string
}

// Instantiate returns the body of the macro with each parameter replaced by
// the corresponding argument. The parameters are replaced one after another
// in the order they were declared, every occurrence of the parameter text in
// the body (as changed by any earlier replacement) is replaced. An error is
// returned if the number of arguments is not the same as the number of
// parameters.
func (d Def) Instantiate(args []string) (string, error) {
	body, err := d.instantiate(args)
	if err != nil {
		return "", err
	}

	return body, nil
}

func (d Def) instantiate(args []string) (string, *Error) {
	if len(args) != len(d.Params) {
		return "", &Error{
			Kind: ErrArgCount,
			Name: d.Name,
			Msg: fmt.Sprintf("expected %d argument(s) but %d were given",
				len(d.Params), len(args)),
		}
	}

	body := d.Body
	for i, p := range d.Params {
		body = strings.ReplaceAll(body, p, args[i])
	}

	return body, nil
}

// Expand returns the text with every macro invocation replaced by the
// expansion of the macro from the table
func Expand(t *Table, text string) (string, error) {
	return t.Expand(text, "source")
}

// Expand returns the text with every macro invocation replaced by the
// expansion of the macro. The srcName is used to report the location of any
// error. If any error is found then no partial expansion is returned.
func (t *Table) Expand(text, srcName string) (string, error) {
	var b strings.Builder
	b.Grow(len(text))

	if err := t.ExpandTo(&b, text, srcName); err != nil {
		return "", err
	}

	return b.String(), nil
}

// ExpandTo writes the text to w with every macro invocation replaced by the
// expansion of the macro. The text is written in order as each invocation
// is found. If an error is returned then anything already written should be
// discarded.
func (t *Table) ExpandTo(w io.Writer, text, srcName string) error {
	s := newScanner(text, t.Mark())
	copied := 0
	for {
		f, ok, err := s.next(false)
		if !ok {
			break
		}
		if _, werr := io.WriteString(w, text[copied:f.start]); werr != nil {
			return werr
		}
		if err != nil {
			return newErr(ErrMalformedInvocation, f.name,
				srcName, text, f.start, err.Error())
		}

		exp, mErr := t.instantiate(Call{Name: f.name, Args: f.items})
		if mErr != nil {
			mErr.Loc = locate(srcName, text, f.start)
			return mErr
		}
		if _, werr := io.WriteString(w, exp); werr != nil {
			return werr
		}
		copied = s.pos
	}

	_, err := io.WriteString(w, text[copied:])

	return err
}

// instantiate finds the called macro and expands it with the arguments
func (t *Table) instantiate(c Call) (string, *Error) {
	d, ok := t.defs[c.Name]
	if !ok {
		return "", &Error{Kind: ErrUnknownMacro, Name: c.Name}
	}

	return d.instantiate(c.Args)
}
