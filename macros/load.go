package macros

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nickwells/check.mod/v2/check"
	"github.com/nickwells/filecheck.mod/filecheck"
)

// LoadDefinitions parses the text as a definitions document and returns the
// resulting Table. Any options are applied to the Loader used.
func LoadDefinitions(text string, opts ...OptFunc) (*Table, error) {
	l, err := NewLoader(opts...)
	if err != nil {
		return nil, err
	}

	if err := l.Load(text, "definitions"); err != nil {
		return nil, err
	}

	return l.Table(), nil
}

// Load parses the text as a definitions document and adds each definition
// found. The srcName is used to report the location of any error. Text
// before, between and after the definitions is ignored.
//
// If any definition is not well-formed then an error is returned and none
// of the definitions in the text are added.
func (l *Loader) Load(text, srcName string) error {
	type found struct {
		d   Def
		off int
	}
	var defs []found

	s := newScanner(text, l.mark)
	for {
		f, ok, err := s.next(true)
		if err != nil {
			return newErr(ErrMalformedDefinition, f.name,
				srcName, text, f.start, err.Error())
		}
		if !ok {
			break
		}

		defs = append(defs, found{
			d: Def{
				Name:   f.name,
				Params: f.items,
				Body:   f.body,
			},
			off: f.start,
		})
	}

	if l.noRedef {
		seen := make(map[string]bool, len(defs))
		for _, fd := range defs {
			_, exists := l.defs[fd.d.Name]
			if exists || seen[fd.d.Name] {
				return newErr(ErrDuplicateMacro, fd.d.Name,
					srcName, text, fd.off, "")
			}
			seen[fd.d.Name] = true
		}
	}

	for _, fd := range defs {
		if err := l.add(fd.d, srcName, text, fd.off); err != nil {
			return err
		}
	}

	return nil
}

// LoadFile reads the whole of the named file and loads it as a definitions
// document
func (l *Loader) LoadFile(filename string) error {
	es := filecheck.Provisos{
		Checks:    []check.FileInfo{check.FileInfoIsRegular},
		Existence: filecheck.MustExist,
	}
	if err := es.StatusCheck(filename); err != nil {
		return err
	}

	text, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("cannot read the macro definitions: %w", err)
	}

	return l.Load(string(text), filename)
}

// LoadNamed searches the definitions directories for a file with the given
// name (possibly with a suffix) and loads the first one it finds. If no
// file is found an error is returned.
func (l *Loader) LoadNamed(name string) error {
	for _, dir := range l.dirs {
		for _, suffix := range l.suffixes {
			filename := filepath.Join(dir, name+suffix)
			text, err := os.ReadFile(filename)
			if err == nil {
				return l.Load(string(text), filename)
			}
			if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("cannot read the macro definitions: %w",
					err)
			}
		}
	}

	errStr := fmt.Sprintf("Macro definitions '%s' were not found", name)
	if len(l.dirs) == 1 {
		errStr += " in the definitions directory: " + l.dirs[0]
	} else if len(l.dirs) > 1 {
		errStr += " in any of the definitions directories: " +
			strings.Join(l.dirs, ", ")
	}

	return errors.New(errStr)
}
