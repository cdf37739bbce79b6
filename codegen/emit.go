package codegen

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/on-the-ground/precalc/domain"
	"github.com/on-the-ground/precalc/model"
)

// valuesPerLine is how many table entries share a line of the table literal.
const valuesPerLine = 16

type emitter struct {
	spec     model.FunctionSpec
	m        *domain.Mapper
	identity uuid.UUID
	b        strings.Builder
}

func (e *emitter) w(msg string, args ...any) {
	fmt.Fprintf(&e.b, msg, args...)
}

func (e *emitter) String() string {
	return e.b.String()
}

// ident is the stringer-style name of a generated declaration, e.g. _Add_rows0.
func (e *emitter) ident(what string, dim int) string {
	if dim < 0 {
		return "_" + e.spec.Name + "_" + what
	}
	return fmt.Sprintf("_%s_%s%d", e.spec.Name, what, dim)
}

func (e *emitter) unit(values []string) {
	e.w("// %s: %s, identity %s\n\n", e.spec.Name, e.spec.Mode, e.identity)
	if e.spec.Body != "" {
		e.original()
	}
	e.bounds()
	if e.spec.Mode == model.ModePanic {
		e.rows()
	}
	e.table(values)
	e.dispatch()
}

func (e *emitter) signature() string {
	params := make([]string, len(e.spec.Params))
	for i, p := range e.spec.Params {
		params[i] = p.Name + " " + p.Kind.String()
	}
	return strings.Join(params, ", ")
}

func (e *emitter) args() string {
	return strings.Join(e.spec.ParamNames(), ", ")
}

func (e *emitter) original() {
	e.w("func %s(%s) %s {\n", e.spec.Internal(), e.signature(), e.spec.Result)
	e.w("\treturn %s(%s)\n", e.spec.Result, strings.TrimSpace(e.spec.Body))
	e.w("}\n\n")
}

func (e *emitter) bounds() {
	e.w("const (\n")
	for d := 0; d < e.m.Dims(); d++ {
		r := e.m.Range(d)
		e.w("\t%s uint64 = %#x // %s\n", e.ident("lo", d), r.Lower.Bits, r.Lower)
		e.w("\t%s uint64 = %d\n", e.ident("span", d), r.Span())
	}
	e.w(")\n\n")
}

func (e *emitter) rows() {
	for d := 0; d < e.m.Dims(); d++ {
		e.w("var %s = [...]int{", e.ident("rows", d))
		for k, row := range e.m.Rows(d) {
			if k%valuesPerLine == 0 {
				e.w("\n\t")
			} else {
				e.w(" ")
			}
			e.w("%d,", row)
		}
		e.w("\n}\n\n")
	}
}

func (e *emitter) table(values []string) {
	e.w("var %s = [...]%s{", e.ident("table", -1), e.spec.Result)
	for i, v := range values {
		if i%valuesPerLine == 0 {
			e.w("\n\t")
		} else {
			e.w(" ")
		}
		e.w("%s,", v)
	}
	e.w("\n}\n\n")
}

// offset is the flat index expression over the locals _i0.._iN.
func (e *emitter) offset() string {
	terms := make([]string, e.m.Dims())
	for d := range terms {
		if stride := e.m.Stride(d); stride == 1 {
			terms[d] = fmt.Sprintf("_i%d", d)
		} else {
			terms[d] = fmt.Sprintf("_i%d*%d", d, stride)
		}
	}
	return strings.Join(terms, "+")
}

func (e *emitter) doc() {
	ranges := make([]string, e.m.Dims())
	for d := range ranges {
		r := e.m.Range(d)
		ranges[d] = fmt.Sprintf("%s in [%s, %s]", r.Name, r.Lower, r.Upper)
	}
	e.w("// %s is precalculated for %s.\n", e.spec.Name, strings.Join(ranges, ", "))
	switch e.spec.Mode {
	case model.ModePanic:
		e.w("// Arguments outside these ranges panic.\n")
	case model.ModeOption:
		e.w("// It reports false for arguments outside these ranges.\n")
	case model.ModeFallback:
		e.w("// Arguments outside these ranges are computed by %s.\n", e.spec.Internal())
	}
}

func (e *emitter) dispatch() {
	e.doc()
	name, result := e.spec.Name, e.spec.Result
	switch e.spec.Mode {
	case model.ModePanic:
		e.w("func %s(%s) %s {\n", name, e.signature(), result)
		terms := make([]string, e.m.Dims())
		for d, p := range e.spec.Params {
			terms[d] = fmt.Sprintf("%s[uint64(%s)-%s]", e.ident("rows", d), p.Name, e.ident("lo", d))
		}
		e.w("\treturn %s[%s]\n", e.ident("table", -1), strings.Join(terms, "+"))
		e.w("}\n\n")

	case model.ModeOption:
		e.w("func %s(%s) (%s, bool) {\n", name, e.signature(), result)
		e.checks()
		e.w("\t\tvar _zero %s\n", result)
		e.w("\t\treturn _zero, false\n")
		e.w("\t}\n")
		e.w("\treturn %s[%s], true\n", e.ident("table", -1), e.offset())
		e.w("}\n\n")

	case model.ModeFallback:
		e.w("func %s(%s) %s {\n", name, e.signature(), result)
		e.checks()
		e.w("\t\treturn %s(%s)\n", e.spec.Internal(), e.args())
		e.w("\t}\n")
		e.w("\treturn %s[%s]\n", e.ident("table", -1), e.offset())
		e.w("}\n\n")
	}
}

// checks declares the per-dimension indices and opens the out-of-range branch.
func (e *emitter) checks() {
	conds := make([]string, e.m.Dims())
	for d, p := range e.spec.Params {
		e.w("\t_i%d := uint64(%s) - %s\n", d, p.Name, e.ident("lo", d))
		conds[d] = fmt.Sprintf("_i%d > %s", d, e.ident("span", d))
	}
	e.w("\tif %s {\n", strings.Join(conds, " || "))
}
