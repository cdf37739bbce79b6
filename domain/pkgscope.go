package domain

import (
	"errors"
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strings"

	"github.com/on-the-ground/precalc/internal/log"
	"go.uber.org/zap"
)

// ErrNoGoFiles reports a package directory without non-test Go files.
var ErrNoGoFiles = errors.New("no Go files")

// PackageScope resolves bounds against the constants of a Go package, so any
// constant expression valid in that package (MAX_A, MAX_A-1, 1<<4) is a bound.
type PackageScope struct {
	fset *token.FileSet
	pkg  *types.Package
}

// LoadPackageScope type-checks the non-test Go files of dir. Type errors
// unrelated to constants do not prevent lookups; skip names files to leave out,
// such as a previously generated output.
func LoadPackageScope(dir string, skip ...string) (*PackageScope, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read package dir: %w", err)
	}

	fset := token.NewFileSet()
	var files []*ast.File
	pkgName := ""
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") || isSkipped(name, skip) {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		if pkgName == "" {
			pkgName = f.Name.Name
		}
		if f.Name.Name != pkgName {
			continue
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoGoFiles, dir)
	}

	conf := types.Config{
		Importer: importer.ForCompiler(fset, "source", nil),
		Error: func(err error) {
			log.Logger().Debug("ignoring type error while loading constants", zap.Error(err))
		},
	}
	pkg, _ := conf.Check(pkgName, fset, files, nil)
	return &PackageScope{fset: fset, pkg: pkg}, nil
}

func isSkipped(name string, skip []string) bool {
	for _, s := range skip {
		if filepath.Base(s) == name {
			return true
		}
	}
	return false
}

// Name is the package name of the loaded directory.
func (s *PackageScope) Name() string {
	return s.pkg.Name()
}

// Declares reports whether name is declared at package level.
func (s *PackageScope) Declares(name string) bool {
	return s.pkg.Scope().Lookup(name) != nil
}

// Lookup evaluates expr in the package. Typed constants keep their declared type.
func (s *PackageScope) Lookup(expr string) (types.TypeAndValue, error) {
	return evalConstant(s.fset, s.pkg, expr)
}
