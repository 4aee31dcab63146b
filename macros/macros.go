package macros

import (
	"fmt"
	"maps"
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/nickwells/check.mod/v2/check"
	"github.com/nickwells/filecheck.mod/filecheck"
)

// Def records a single macro definition. The order of the Params is
// significant, the first argument in an invocation replaces the first
// parameter and so on.
type Def struct {
	Name   string
	Params []string
	Body   string
}

// Table holds the macros that can be expanded. It is created by a Loader and
// is not changed after that so it is safe to use from several goroutines. A
// zero Table has no macros and uses the default mark.
type Table struct {
	defs map[string]Def
	mark rune
}

// Find returns the named macro definition and true if it is in the table,
// otherwise it returns false
func (t *Table) Find(name string) (Def, bool) {
	d, ok := t.defs[name]
	if !ok {
		return Def{}, false
	}

	d.Params = slices.Clone(d.Params)

	return d, true
}

// Names returns the names of all the macros in the table in sorted order
func (t *Table) Names() []string {
	return slices.Sorted(maps.Keys(t.defs))
}

// Len returns the number of macros in the table
func (t *Table) Len() int {
	return len(t.defs)
}

// Mark returns the mark character used to find invocations
func (t *Table) Mark() rune {
	if t.mark == 0 {
		return DfltMark
	}
	return t.mark
}

// Loader records the information needed to build a Table
//
// You should create a new Loader with NewLoader, then load as many
// definitions documents as you need and finally take the Table.
//
// If you want to load definitions documents by name from a set of
// directories then give the directories with the Dirs option and any
// suffixes to try with the Suffix option.
type Loader struct {
	defs     map[string]Def
	dirs     []string
	suffixes []string
	mark     rune
	noRedef  bool
}

type OptFunc func(l *Loader) error

// NewLoader creates a new Loader object.
func NewLoader(opts ...OptFunc) (*Loader, error) {
	l := &Loader{
		defs:     make(map[string]Def),
		dirs:     make([]string, 0),
		suffixes: []string{""},
		mark:     DfltMark,
	}

	for _, o := range opts {
		if err := o(l); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// Dirs returns an OptFunc that will add the directory names to the,
// initially empty, set of directories to be searched by LoadNamed. Each of
// the passed values must be a directory, an error will be returned if not
// and none of the passed values will be added.
func Dirs(dirs ...string) OptFunc {
	return func(l *Loader) error {
		if len(dirs) == 0 {
			return fmt.Errorf("at least one definitions directory must be passed")
		}

		es := filecheck.Provisos{
			Checks:    []check.FileInfo{check.FileInfoIsDir},
			Existence: filecheck.MustExist,
		}
		for _, dir := range dirs {
			err := es.StatusCheck(dir)
			if err != nil {
				return err
			}
		}

		l.dirs = append(l.dirs, dirs...)
		return nil
	}
}

// Suffix returns an OptFunc that will add a suffix to the list of strings to
// be tried as suffixes by LoadNamed. Any suffix must be complete and include
// the separator (if any). For instance ".mac". The suffixes are tried in the
// order they are added and there is always a first, empty suffix so that a
// name will always match a file with the exact same name.
func Suffix(suffix string) OptFunc {
	return func(l *Loader) error {
		l.suffixes = append(l.suffixes, suffix)

		return nil
	}
}

// Mark returns an OptFunc that will change the character used to mark the
// macros. The default value is given by DfltMark. The mark must be a valid,
// printable, non-space character.
func Mark(mark rune) OptFunc {
	return func(l *Loader) error {
		if mark == utf8.RuneError || !utf8.ValidRune(mark) {
			return fmt.Errorf("the macro mark (%U) is not a valid character",
				mark)
		}
		if unicode.IsSpace(mark) || !unicode.IsPrint(mark) {
			return fmt.Errorf("the macro mark (%q) must be printable"+
				" and not white space", mark)
		}

		l.mark = mark

		return nil
	}
}

// NoRedefinition returns an OptFunc that will make the Loader report an
// error if a macro is defined more than once. By default a later
// definition silently replaces any earlier one with the same name.
func NoRedefinition() OptFunc {
	return func(l *Loader) error {
		l.noRedef = true

		return nil
	}
}

// AddMacro will add a macro to the set of definitions. It will return an
// error only if the macro is already defined and redefinition is not
// allowed.
func (l *Loader) AddMacro(name string, params []string, body string) error {
	return l.add(Def{
		Name:   name,
		Params: slices.Clone(params),
		Body:   body,
	}, "AddMacro", "", 0)
}

// add records the definition, srcName, text and off are used to locate any
// error
func (l *Loader) add(d Def, srcName, text string, off int) error {
	if _, exists := l.defs[d.Name]; exists && l.noRedef {
		return newErr(ErrDuplicateMacro, d.Name, srcName, text, off, "")
	}

	l.defs[d.Name] = d

	return nil
}

// Table returns a Table holding the macros loaded so far. Any further
// loading will not affect the returned Table.
func (l *Loader) Table() *Table {
	return &Table{
		defs: maps.Clone(l.defs),
		mark: l.mark,
	}
}
