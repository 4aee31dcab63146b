package macros

import (
	"fmt"
	"strings"
)

// DfltMark is the default mark character. A double mark starts and ends a
// macro and separates the macro name and parameters from the body. A single
// mark separates the name, the parameters and the arguments.
const DfltMark = '#'

type scanState int

const (
	seekStart scanState = iota
	readName
	readItemOrEnd
	readItem
	readBody
	done
)

// form is a definition or an invocation as found by the scanner. For an
// invocation the items are the arguments and the body is empty.
type form struct {
	start int
	name  string
	items []string
	body  string
}

// scanner finds definitions or invocations in the text. It only ever moves
// forward through the text.
type scanner struct {
	text  string
	pos   int
	mark  string
	dmark string
}

func newScanner(text string, mark rune) *scanner {
	m := string(mark)
	return &scanner{
		text:  text,
		mark:  m,
		dmark: m + m,
	}
}

func (s *scanner) rest() string {
	return s.text[s.pos:]
}

// next returns the next form in the text. If there are no more double marks
// the bool will be false. If withBody is true a definition is read,
// otherwise an invocation. If the form is not complete then an error is
// returned, the form will hold the offset of its opening double mark and as
// much of the rest as was read.
//
// After the name, the next double mark and the next single mark are found
// separately. If they are at the same place the list of parameters (or
// arguments) is finished, otherwise another one follows and it runs up to,
// but not including, the next single mark.
func (s *scanner) next(withBody bool) (form, bool, error) {
	var f form

	item := "an argument"
	if withBody {
		item = "a parameter"
	}

	state := seekStart
	for {
		switch state {
		case seekStart:
			i := strings.Index(s.rest(), s.dmark)
			if i < 0 {
				return f, false, nil
			}
			f.start = s.pos + i
			s.pos = f.start + len(s.dmark)
			state = readName

		case readName:
			i := strings.Index(s.rest(), s.mark)
			if i < 0 {
				return f, true, fmt.Errorf(
					"a macro was started with '%s'"+
						" but the name was not finished with '%s'",
					s.dmark, s.mark)
			}
			f.name = strings.TrimSpace(s.rest()[:i])
			state = readItemOrEnd

		case readItemOrEnd:
			dbl := strings.Index(s.rest(), s.dmark)
			if dbl < 0 {
				return f, true, fmt.Errorf(
					"a macro was started with '%s'"+
						" but not finished with '%s'",
					s.dmark, s.dmark)
			}
			sgl := strings.Index(s.rest(), s.mark)
			if dbl == sgl {
				s.pos += dbl + len(s.dmark)
				state = done
				if withBody {
					state = readBody
				}
			} else {
				s.pos += sgl + len(s.mark)
				state = readItem
			}

		case readItem:
			i := strings.Index(s.rest(), s.mark)
			if i < 0 {
				return f, true, fmt.Errorf(
					"%s was started with '%s' but not finished with '%s'",
					item, s.mark, s.mark)
			}
			f.items = append(f.items, strings.TrimSpace(s.rest()[:i]))
			s.pos += i
			state = readItemOrEnd

		case readBody:
			i := strings.Index(s.rest(), s.dmark)
			if i < 0 {
				return f, true, fmt.Errorf(
					"the body was not finished with '%s'", s.dmark)
			}
			f.body = strings.TrimSpace(s.rest()[:i])
			s.pos += i + len(s.dmark)
			state = done

		case done:
			return f, true, nil
		}
	}
}
