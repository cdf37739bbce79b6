// Package decl reads declaration files: YAML documents that list the functions
// precalcgen generates for one Go package.
package decl

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/on-the-ground/precalc/config"
	"github.com/on-the-ground/precalc/domain"
	"github.com/on-the-ground/precalc/model"
)

// File is a parsed declaration file.
type File struct {
	// Package is the name of the package the generated file belongs to.
	Package string `yaml:"package"`
	// Output is the generated file's name, relative to the declaration file.
	Output string `yaml:"output,omitempty"`

	config.Config `yaml:",inline"`

	// Constants are named integer literals usable in bounds and bodies. They are
	// declared in the generated file.
	Constants map[string]string `yaml:"constants,omitempty"`
	Functions []Function        `yaml:"functions"`

	// Path is where the file was loaded from, empty for parsed input.
	Path string `yaml:"-"`
}

// Function declares one precalculated function.
type Function struct {
	Name     string  `yaml:"name"`
	Original string  `yaml:"original,omitempty"`
	Mode     string  `yaml:"mode,omitempty"`
	Result   string  `yaml:"result"`
	Params   []Param `yaml:"params"`
	Body     string  `yaml:"body"`
}

// Param declares one argument and its inclusive range.
type Param struct {
	Name  string      `yaml:"name"`
	Type  string      `yaml:"type"`
	Lower model.Bound `yaml:"lower"`
	Upper model.Bound `yaml:"upper"`
}

// Parse decodes a declaration file. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty declaration file")
		}
		return nil, fmt.Errorf("parsing declaration file: %w", err)
	}
	return &f, nil
}

// Load reads and parses the declaration file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// Dir is the directory of the declaration file, "." for parsed input.
func (f *File) Dir() string {
	if f.Path == "" {
		return "."
	}
	return filepath.Dir(f.Path)
}

// OutputPath is where the generated file goes. Without an explicit output it is
// named after the declaration file: precalc.yaml becomes precalc_gen.go.
func (f *File) OutputPath() string {
	out := f.Output
	if out == "" {
		base := "precalc"
		if f.Path != "" {
			base = strings.TrimSuffix(filepath.Base(f.Path), filepath.Ext(f.Path))
		}
		out = base + "_gen.go"
	}
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(f.Dir(), out)
}

// Scope resolves the file's constants.
func (f *File) Scope() domain.MapScope {
	return domain.MapScope(f.Constants)
}

// ConstantNames lists the constants in a stable order.
func (f *File) ConstantNames() []string {
	names := make([]string, 0, len(f.Constants))
	for n := range f.Constants {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Specs validates every declared function and converts it, taking modes the
// declarations leave out from cfg. All invalid declarations are reported.
func (f *File) Specs(cfg config.Config) ([]model.FunctionSpec, error) {
	var errs error
	if f.Package == "" {
		errs = multierr.Append(errs, fmt.Errorf("package is required"))
	}
	if len(f.Functions) == 0 {
		errs = multierr.Append(errs, fmt.Errorf("no functions declared"))
	}
	for _, name := range f.ConstantNames() {
		if _, ok := (model.Bound{Expr: f.Constants[name]}).Literal(); !ok {
			errs = multierr.Append(errs, fmt.Errorf("constant %s = %q is not an integer literal", name, f.Constants[name]))
		}
	}

	specs := make([]model.FunctionSpec, 0, len(f.Functions))
	seen := make(map[string]struct{}, len(f.Functions))
	for _, fn := range f.Functions {
		spec, err := fn.spec(cfg.DefaultMode)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if _, dup := seen[spec.Name]; dup {
			errs = multierr.Append(errs, model.NewError(model.ErrUnsupportedType).
				Function(spec.Name).
				Detail("declared twice").
				Build())
			continue
		}
		seen[spec.Name] = struct{}{}
		specs = append(specs, spec)
	}
	if errs != nil {
		return nil, errs
	}
	return specs, nil
}

func (fn Function) spec(defaultMode model.Mode) (model.FunctionSpec, error) {
	spec := model.FunctionSpec{
		Name:         fn.Name,
		OriginalName: fn.Original,
		Result:       fn.Result,
		Body:         fn.Body,
		Mode:         defaultMode,
	}
	if fn.Mode != "" {
		m, err := model.ParseMode(fn.Mode)
		if err != nil {
			return spec, model.NewError(model.ErrUnsupportedType).Function(fn.Name).Cause(err).Build()
		}
		spec.Mode = m
	}

	var errs error
	for _, p := range fn.Params {
		k, err := model.ParseKind(p.Type)
		if err != nil {
			errs = multierr.Append(errs, model.NewError(model.ErrUnsupportedType).
				Function(fn.Name).
				Param(p.Name).
				Detail("%q is not an integer type", p.Type).
				Build())
			continue
		}
		spec.Params = append(spec.Params, model.ParameterSpec{
			Name:  p.Name,
			Kind:  k,
			Lower: p.Lower,
			Upper: p.Upper,
		})
	}
	if errs != nil {
		return spec, errs
	}
	if _, err := model.ParseKind(fn.Result); err != nil {
		return spec, model.NewError(model.ErrUnsupportedType).
			Function(fn.Name).
			Detail("result %q is not an integer type", fn.Result).
			Build()
	}
	if strings.TrimSpace(fn.Body) == "" {
		return spec, model.NewError(model.ErrNonTotalComputation).
			Function(fn.Name).
			Detail("declaration has no body").
			Build()
	}
	for _, p := range spec.Params {
		if strings.TrimSpace(p.Lower.Expr) == "" || strings.TrimSpace(p.Upper.Expr) == "" {
			return spec, model.NewError(model.ErrInvalidRange).Function(fn.Name).Param(p.Name).Detail("missing bound").Build()
		}
	}
	return spec, spec.Validate()
}
