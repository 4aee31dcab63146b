package macros_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nickwells/macrayon.mod/macros"
)

// tableDefs returns all the definitions in the table
func tableDefs(t *testing.T, tbl *macros.Table) []macros.Def {
	t.Helper()

	var defs []macros.Def
	for _, name := range tbl.Names() {
		d, ok := tbl.Find(name)
		if !ok {
			t.Fatalf("macro %q is named but cannot be found", name)
		}
		defs = append(defs, d)
	}

	return defs
}

func TestLoadDefinitions(t *testing.T) {
	testCases := []struct {
		name    string
		text    string
		opts    []macros.OptFunc
		expDefs []macros.Def
		expErr  error
		expMsg  string
	}{
		{
			name: "empty",
			text: "",
		},
		{
			name: "no definitions",
			text: "just some text # with a single mark",
		},
		{
			name: "one definition",
			text: "##greet#name##Hello, name!##",
			expDefs: []macros.Def{
				{Name: "greet", Params: []string{"name"}, Body: "Hello, name!"},
			},
		},
		{
			name: "no parameters",
			text: "##shout##LOUD##",
			expDefs: []macros.Def{
				{Name: "shout", Body: "LOUD"},
			},
		},
		{
			name: "several definitions with text between",
			text: "Macros for the report\n\n" +
				"##title # t ##\n== t ==\n##\n" +
				"ignored\n" +
				"##row#a#b#c##| a | b | c |##\n",
			expDefs: []macros.Def{
				{Name: "row", Params: []string{"a", "b", "c"}, Body: "| a | b | c |"},
				{Name: "title", Params: []string{"t"}, Body: "== t =="},
			},
		},
		{
			name: "later definitions replace earlier ones",
			text: "##m##first## ##m#x##second x##",
			expDefs: []macros.Def{
				{Name: "m", Params: []string{"x"}, Body: "second x"},
			},
		},
		{
			name:   "duplicates not allowed",
			text:   "##m##first##\n##m#x##second x##",
			opts:   []macros.OptFunc{macros.NoRedefinition()},
			expErr: macros.ErrDuplicateMacro,
			expMsg: "Macro 'm' at definitions:2 is already defined",
		},
		{
			name: "other mark",
			text: "%%pct#x%%x%%",
			opts: []macros.OptFunc{macros.Mark('%')},
			expDefs: []macros.Def{
				{Name: "pct#x", Body: "x"},
			},
		},
		{
			name:   "truncated definition",
			text:   "##name#param",
			expErr: macros.ErrMalformedDefinition,
			expMsg: "Bad macro at definitions:1:" +
				" a macro was started with '##' but not finished with '##'",
		},
		{
			name:   "truncated body",
			text:   "##ok##fine##\n\n##name#param##body",
			expErr: macros.ErrMalformedDefinition,
			expMsg: "Bad macro at definitions:3:" +
				" the body was not finished with '##'",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tbl, err := macros.LoadDefinitions(tc.text, tc.opts...)
			if tc.expErr != nil {
				if !errors.Is(err, tc.expErr) {
					t.Fatalf("expected error %v, got %v", tc.expErr, err)
				}
				if err.Error() != tc.expMsg {
					t.Errorf("expected error message:\n\t%s\ngot:\n\t%s",
						tc.expMsg, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if diff := cmp.Diff(tc.expDefs, tableDefs(t, tbl)); diff != "" {
				t.Errorf("unexpected definitions (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadIsAllOrNothing(t *testing.T) {
	l, err := macros.NewLoader()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = l.Load("##a##A## ##b#x", "bad")
	if !errors.Is(err, macros.ErrMalformedDefinition) {
		t.Fatalf("expected a malformed definition, got %v", err)
	}
	if n := l.Table().Len(); n != 0 {
		t.Errorf("expected no definitions after a failed load, got %d", n)
	}

	err = l.Load("##a##A##", "good")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	l2, err := macros.NewLoader(macros.NoRedefinition())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l2.Load("##a##A##", "first"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = l2.Load("##b##B## ##a##again##", "second")
	if !errors.Is(err, macros.ErrDuplicateMacro) {
		t.Fatalf("expected a duplicate macro error, got %v", err)
	}
	if _, ok := l2.Table().Find("b"); ok {
		t.Error("macro 'b' should not have been added")
	}
}

func TestTableIsFixed(t *testing.T) {
	l, err := macros.NewLoader()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l.AddMacro("p", []string{"x"}, "<x>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tbl := l.Table()
	if err := l.AddMacro("q", nil, "Q"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l.AddMacro("p", nil, "changed"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff([]string{"p"}, tbl.Names()); diff != "" {
		t.Errorf("unexpected names (-want +got):\n%s", diff)
	}

	d, _ := tbl.Find("p")
	d.Params[0] = "y"
	d2, _ := tbl.Find("p")
	if diff := cmp.Diff(
		macros.Def{Name: "p", Params: []string{"x"}, Body: "<x>"},
		d2); diff != "" {
		t.Errorf("the table has been changed (-want +got):\n%s", diff)
	}
}

func TestAddMacroNoRedefinition(t *testing.T) {
	l, err := macros.NewLoader(macros.NoRedefinition())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l.AddMacro("m", nil, "M"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = l.AddMacro("m", nil, "M")
	if !errors.Is(err, macros.ErrDuplicateMacro) {
		t.Errorf("expected a duplicate macro error, got %v", err)
	}
}

func TestBadOptions(t *testing.T) {
	testCases := []struct {
		name string
		opt  macros.OptFunc
	}{
		{name: "space mark", opt: macros.Mark(' ')},
		{name: "newline mark", opt: macros.Mark('\n')},
		{name: "invalid mark", opt: macros.Mark(-1)},
		{name: "no dirs", opt: macros.Dirs()},
		{name: "missing dir", opt: macros.Dirs("testdata/nonesuch")},
		{name: "not a dir", opt: macros.Dirs("testdata/defs2/sig")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := macros.NewLoader(tc.opt); err == nil {
				t.Error("expected an error, got none")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "MACROS")
	err := os.WriteFile(fname, []byte("##a##A##\n##b#x##\n"), 0o644)
	if err != nil {
		t.Fatalf("cannot create the definitions file: %v", err)
	}

	l, err := macros.NewLoader()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = l.LoadFile(fname)
	if !errors.Is(err, macros.ErrMalformedDefinition) {
		t.Fatalf("expected a malformed definition, got %v", err)
	}
	if exp := "Bad macro at " + fname + ":2:" +
		" the body was not finished with '##'"; err.Error() != exp {
		t.Errorf("expected error message:\n\t%s\ngot:\n\t%s", exp, err)
	}

	if err := l.LoadFile(filepath.Join(dir, "nonesuch")); err == nil {
		t.Error("expected an error loading a missing file")
	}
	if err := l.LoadFile(dir); err == nil {
		t.Error("expected an error loading a directory")
	}
	if err := l.LoadFile("testdata/defs1/html.mac"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"em", "link"}, l.Table().Names()); diff != "" {
		t.Errorf("unexpected names (-want +got):\n%s", diff)
	}
}
