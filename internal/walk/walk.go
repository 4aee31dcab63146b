// Package walk finds the source files under a directory and expands the
// macros in each of them, writing the result to a file with the same name
// but a different extension.
package walk

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/nickwells/check.mod/v2/check"
	"github.com/nickwells/filecheck.mod/filecheck"
	"github.com/nickwells/macrayon.mod/macros"
	log "github.com/sirupsen/logrus"
)

// Sources recursively searches the directory for regular files with the
// given extension. The names are returned in lexical order.
func Sources(root, ext string) ([]string, error) {
	var filenames []string

	err := filepath.WalkDir(root, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && filepath.Ext(name) == ext {
			filenames = append(filenames, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(filenames)

	return filenames, nil
}

// Target returns the name of the file to be written for the source file. If
// the source has the fromExt extension it is replaced by toExt, otherwise
// toExt is added.
func Target(src, fromExt, toExt string) string {
	return strings.TrimSuffix(src, fromExt) + toExt
}

// Summary records the results of a Run
type Summary struct {
	Files  int
	Failed int
}

// Walker expands the macros in source files
type Walker struct {
	Table  *macros.Table
	SrcExt string
	DstExt string

	// KeepGoing, if set, makes Run carry on with the remaining files after a
	// failure. All the errors are returned together.
	KeepGoing bool
	// DryRun, if set, expands the files but does not write the results
	DryRun bool

	Log log.FieldLogger
}

func (w *Walker) logger() log.FieldLogger {
	if w.Log == nil {
		return log.StandardLogger()
	}
	return w.Log
}

// ExpandFile expands the macros in the src file and writes the result to
// the dst file. The dst file is only written if the whole of src expands
// without error.
func (w *Walker) ExpandFile(src, dst string) error {
	w.logger().WithFields(log.Fields{
		"src": src,
		"dst": dst,
	}).Info("Transforming")

	es := filecheck.Provisos{
		Checks:    []check.FileInfo{check.FileInfoIsRegular},
		Existence: filecheck.MustExist,
	}
	if err := es.StatusCheck(src); err != nil {
		return err
	}

	text, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("cannot read the source: %w", err)
	}

	var buf bytes.Buffer
	if err := w.Table.ExpandTo(&buf, string(text), src); err != nil {
		return err
	}

	if w.DryRun {
		w.logger().WithField("dst", dst).Debug("dry run, not written")
		return nil
	}

	if err := os.WriteFile(dst, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("cannot write the target: %w", err)
	}

	return nil
}

// Run expands every source file under the root directory
func (w *Walker) Run(root string) (Summary, error) {
	var sum Summary

	srcs, err := Sources(root, w.SrcExt)
	if err != nil {
		return sum, err
	}
	w.logger().WithField("count", len(srcs)).Debug("source files found")

	var errs []error
	for _, src := range srcs {
		sum.Files++

		err := w.ExpandFile(src, Target(src, w.SrcExt, w.DstExt))
		if err == nil {
			continue
		}

		sum.Failed++
		if !w.KeepGoing {
			return sum, err
		}
		w.logger().Error(err)
		errs = append(errs, err)
	}

	return sum, errors.Join(errs...)
}
