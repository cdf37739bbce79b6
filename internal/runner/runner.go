// Package runner drives precalcgen: it turns a declaration file into a
// generated Go source file, or checks that the committed file is current.
package runner

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/on-the-ground/precalc/codegen"
	"github.com/on-the-ground/precalc/config"
	"github.com/on-the-ground/precalc/decl"
	"github.com/on-the-ground/precalc/domain"
	"github.com/on-the-ground/precalc/internal/log"
	"github.com/on-the-ground/precalc/model"
)

// Options are the command line inputs of a run.
type Options struct {
	// Decl is the declaration file.
	Decl string
	// Dir is the package whose constants bounds may name. Empty means the
	// declaration file's directory.
	Dir string
	// Out overrides the declaration's output path.
	Out string
	// Settings are dotted config keys set on the command line. They take
	// precedence over the declaration file.
	Settings map[string]string
}

// Job is a loaded declaration ready to be generated.
type Job struct {
	File   *decl.File
	Config config.Config
	Specs  []model.FunctionSpec
	Scope  domain.Scope
	Out    string
}

// Load reads the declaration and resolves configuration and scope.
func Load(opts Options) (*Job, error) {
	f, err := decl.Load(opts.Decl)
	if err != nil {
		return nil, err
	}

	cfg := config.Default().Merge(f.Config)
	for key, value := range opts.Settings {
		if err := cfg.Set(key, value); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	specs, err := f.Specs(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.Decl, err)
	}

	out := opts.Out
	if out == "" {
		out = f.OutputPath()
	}
	dir := opts.Dir
	if dir == "" {
		dir = f.Dir()
	}

	scope := domain.Scope(f.Scope())
	pkg, err := domain.LoadPackageScope(dir, out)
	switch {
	case errors.Is(err, domain.ErrNoGoFiles):
		log.Logger().Debug("no package constants", zap.String("dir", dir))
	case err != nil:
		log.Logger().Warn("package constants unavailable, bounds may only name declared constants",
			zap.String("dir", dir), zap.Error(err))
	default:
		if pkg.Name() != f.Package {
			return nil, fmt.Errorf("%s declares package %s, but %s holds package %s", opts.Decl, f.Package, dir, pkg.Name())
		}
		if err := collisions(f, specs, pkg); err != nil {
			return nil, fmt.Errorf("%s: %w", opts.Decl, err)
		}
		scope = domain.Scopes(f.Scope(), pkg)
	}

	return &Job{File: f, Config: cfg, Specs: specs, Scope: scope, Out: out}, nil
}

// collisions reports generated declarations whose names the package already
// declares.
func collisions(f *decl.File, specs []model.FunctionSpec, pkg *domain.PackageScope) error {
	var errs error
	for _, name := range f.ConstantNames() {
		if pkg.Declares(name) {
			errs = multierr.Append(errs, fmt.Errorf("constant %s is already declared in package %s", name, pkg.Name()))
		}
	}
	for _, spec := range specs {
		for _, name := range []string{spec.Name, spec.Internal()} {
			if pkg.Declares(name) {
				errs = multierr.Append(errs, fmt.Errorf("function %s is already declared in package %s", name, pkg.Name()))
			}
		}
	}
	return errs
}

// Render generates the source of every declared function. All failing
// declarations are reported together.
func (j *Job) Render() ([]byte, error) {
	var (
		units []*codegen.Unit
		errs  error
	)
	for _, spec := range j.Specs {
		u, err := codegen.GenerateBody(spec, j.Scope, j.Config.MaxTableSize)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		units = append(units, u)
	}
	if errs != nil {
		return nil, errs
	}

	consts := make([]codegen.Constant, 0, len(j.File.Constants))
	for _, name := range j.File.ConstantNames() {
		consts = append(consts, codegen.Constant{Name: name, Value: j.File.Constants[name]})
	}
	return codegen.Render(codegen.File{
		Package:   j.File.Package,
		Source:    filepath.Base(j.File.Path),
		Constants: consts,
		Units:     units,
	})
}

// Generate writes the generated file and returns its path.
func Generate(opts Options) (string, error) {
	j, err := Load(opts)
	if err != nil {
		return "", err
	}
	src, err := j.Render()
	if err != nil {
		return "", err
	}
	if old, err := os.ReadFile(j.Out); err == nil && bytes.Equal(old, src) {
		log.Logger().Info("generated file is up to date", zap.String("file", j.Out))
		return j.Out, nil
	}
	if err := os.WriteFile(j.Out, src, 0o644); err != nil {
		return "", err
	}
	log.Logger().Info("wrote generated file",
		zap.String("file", j.Out),
		zap.Int("functions", len(j.Specs)),
		zap.String("fingerprint", fmt.Sprintf("%016x", codegen.Fingerprint(src))),
	)
	return j.Out, nil
}

// ErrStale reports a generated file that differs from a fresh generation.
var ErrStale = fmt.Errorf("generated file is stale")

// Check regenerates in memory and compares with the file on disk.
func Check(opts Options) error {
	j, err := Load(opts)
	if err != nil {
		return err
	}
	fresh, err := j.Render()
	if err != nil {
		return err
	}
	onDisk, err := os.ReadFile(j.Out)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStale, err)
	}
	if !codegen.Verify(onDisk) {
		return fmt.Errorf("%w: %s was edited after generation", ErrStale, j.Out)
	}
	if codegen.Stale(onDisk, fresh) {
		return fmt.Errorf("%w: %s does not match %s; run precalcgen generate", ErrStale, j.Out, opts.Decl)
	}
	return nil
}
