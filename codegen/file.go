package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"sort"

	"github.com/on-the-ground/precalc/model"
)

// DefaultGenerator names the tool in the header of generated files.
const DefaultGenerator = "precalcgen"

// Constant is a named constant a generated file declares for its bodies and bounds.
type Constant struct {
	Name  string
	Value string
}

// File is one generated Go source file.
type File struct {
	Package   string
	Generator string
	// Source is the declaration the file was generated from, if any.
	Source    string
	Constants []Constant
	Units     []*Unit
}

// Render assembles, formats and fingerprints f.
func Render(f File) ([]byte, error) {
	if f.Package == "" {
		return nil, fmt.Errorf("generated file has no package name")
	}
	gen := f.Generator
	if gen == "" {
		gen = DefaultGenerator
	}

	var b bytes.Buffer
	w := func(msg string, args ...any) {
		fmt.Fprintf(&b, msg, args...)
	}
	w("// Code generated by %s. DO NOT EDIT.\n", gen)
	if f.Source != "" {
		w("// source: %s\n", f.Source)
	}
	w("\npackage %s\n\n", f.Package)

	if len(f.Constants) > 0 {
		consts := append([]Constant(nil), f.Constants...)
		sort.Slice(consts, func(i, j int) bool { return consts[i].Name < consts[j].Name })
		w("const (\n")
		for _, c := range consts {
			w("\t%s = %s\n", c.Name, c.Value)
		}
		w(")\n\n")
	}

	seen := make(map[string]struct{}, len(f.Units))
	for _, u := range f.Units {
		if _, dup := seen[u.Spec.Name]; dup {
			return nil, model.NewError(model.ErrUnsupportedType).
				Function(u.Spec.Name).
				Detail("declared twice in package %s", f.Package).
				Build()
		}
		seen[u.Spec.Name] = struct{}{}
		b.WriteString(u.Decls())
	}

	src, err := format.Source(b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated source: %w", err)
	}
	return Stamp(src), nil
}

// WriteFile renders f and writes it to w.
func WriteFile(w io.Writer, f File) error {
	src, err := Render(f)
	if err != nil {
		return err
	}
	_, err = w.Write(src)
	return err
}
