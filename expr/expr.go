// Package expr compiles Go integer expressions into original computations, so
// a declaration can carry its own body instead of pointing at compiled code.
//
// Evaluation follows Go semantics: operands of a binary operator share a kind,
// untyped constants take the kind of the other operand, arithmetic wraps at the
// kind's width, division truncates toward zero. Constant subexpressions are
// folded exactly at compile time and must fit their kind, as the Go compiler
// requires. Runtime failures that would panic in Go (division by zero, negative
// shift counts) are reported as errors.
package expr

import (
	"errors"
	"fmt"
	"go/ast"
	"go/constant"
	"go/parser"
	"go/token"
	"go/types"
	"math/big"

	"github.com/on-the-ground/precalc/domain"
	"github.com/on-the-ground/precalc/model"
)

var (
	ErrDivideByZero  = errors.New("integer divide by zero")
	ErrNegativeShift = errors.New("negative shift amount")
)

// Program is a compiled expression.
type Program struct {
	src    string
	root   node
	result model.Kind
}

// Compile parses body and type-checks it against params. Identifiers other than
// parameters, integer type names, min and max are resolved through scope.
func Compile(body string, params []model.ParameterSpec, result model.Kind, scope domain.Scope) (*Program, error) {
	if !result.Valid() {
		return nil, model.NewError(model.ErrUnsupportedType).
			Detail("result must be an integer kind, got %s", result).
			Build()
	}
	e, err := parser.ParseExpr(body)
	if err != nil {
		return nil, compileError(body, "%v", err)
	}
	c := compiler{src: body, scope: scope, params: make(map[string]int, len(params)), kinds: make([]model.Kind, len(params))}
	for i, p := range params {
		c.params[p.Name] = i
		c.kinds[i] = p.Kind
	}
	root, err := c.compile(e)
	if err != nil {
		return nil, err
	}
	if root.kind() == untyped {
		if root, err = c.convert(root, result); err != nil {
			return nil, err
		}
	}
	if root.kind() != result {
		return nil, compileError(body, "expression has type %s, want %s", root.kind(), result)
	}
	return &Program{src: body, root: root, result: result}, nil
}

// Eval evaluates the program for one argument tuple.
func (p *Program) Eval(args []model.Int) (model.Int, error) {
	bits, err := p.root.eval(args)
	if err != nil {
		return model.Int{}, err
	}
	return model.NewInt(p.result, bits), nil
}

// Source is the expression text as compiled.
func (p *Program) Source() string {
	return p.src
}

func (p *Program) Result() model.Kind {
	return p.result
}

func compileError(src, msg string, args ...any) error {
	return model.NewError(model.ErrUnsupportedType).
		Detail("body %q: %s", src, fmt.Sprintf(msg, args...)).
		Build()
}

// untyped marks constant nodes that have not been given a kind yet.
const untyped = model.KindInvalid

type compiler struct {
	src    string
	scope  domain.Scope
	params map[string]int
	kinds  []model.Kind
}

func (c *compiler) compile(e ast.Expr) (node, error) {
	switch e := e.(type) {
	case *ast.ParenExpr:
		return c.compile(e.X)
	case *ast.BasicLit:
		return c.literal(e)
	case *ast.Ident:
		return c.ident(e)
	case *ast.UnaryExpr:
		return c.unary(e)
	case *ast.BinaryExpr:
		return c.binary(e)
	case *ast.CallExpr:
		return c.call(e)
	}
	return nil, compileError(c.src, "unsupported expression %T", e)
}

func (c *compiler) literal(e *ast.BasicLit) (node, error) {
	if e.Kind != token.INT && e.Kind != token.CHAR {
		return nil, compileError(c.src, "%s is not an integer literal", e.Value)
	}
	v := constant.MakeFromLiteral(e.Value, e.Kind, 0)
	return constantNode(c.src, v)
}

func (c *compiler) ident(e *ast.Ident) (node, error) {
	if i, ok := c.params[e.Name]; ok {
		return param{idx: i, k: c.kinds[i]}, nil
	}
	if c.scope == nil {
		return nil, model.NewError(model.ErrUnresolvedConstant).Detail("body %q: undefined: %s", c.src, e.Name).Build()
	}
	tv, err := c.scope.Lookup(e.Name)
	if err != nil {
		return nil, model.NewError(model.ErrUnresolvedConstant).
			Detail("body %q: %s", c.src, e.Name).
			Cause(err).
			Build()
	}
	return c.scoped(e.Name, tv)
}

// scoped turns a constant from scope into a node. Untyped constants stay
// untyped; typed ones keep their predeclared integer kind.
func (c *compiler) scoped(name string, tv types.TypeAndValue) (node, error) {
	n, err := constantNode(c.src, tv.Value)
	if err != nil {
		return nil, err
	}
	if tv.Type == nil {
		return n, nil
	}
	basic, ok := types.Unalias(tv.Type).(*types.Basic)
	if !ok {
		return nil, compileError(c.src, "constant %s has named type %s", name, tv.Type)
	}
	if basic.Info()&types.IsUntyped != 0 {
		return n, nil
	}
	k, err := model.ParseKind(basic.Name())
	if err != nil {
		return nil, compileError(c.src, "constant %s of type %s is not an integer", name, basic.Name())
	}
	return c.typed(n.(untypedConst).v, k)
}

func constantNode(src string, v constant.Value) (node, error) {
	v = constant.ToInt(v)
	if v.Kind() != constant.Int {
		return nil, compileError(src, "%s is not an integer constant", v)
	}
	b, ok := new(big.Int).SetString(v.ExactString(), 10)
	if !ok {
		return nil, compileError(src, "%s is not an integer constant", v)
	}
	return untypedConst{v: b}, nil
}

// convert gives an untyped constant the kind k, or checks a typed node has it.
func (c *compiler) convert(n node, k model.Kind) (node, error) {
	u, ok := n.(untypedConst)
	if !ok {
		if n.kind() != k {
			return nil, compileError(c.src, "mismatched types %s and %s", n.kind(), k)
		}
		return n, nil
	}
	return c.typed(u.v, k)
}

// typed is the constant v of kind k. It fails where Go reports an overflow.
func (c *compiler) typed(v *big.Int, k model.Kind) (node, error) {
	i, fits := model.IntFromBig(k, v)
	if !fits {
		return nil, compileError(c.src, "constant %s overflows %s", v, k)
	}
	return typedConst{k: k, v: v, bits: i.Bits}, nil
}

// constValue is the exact value of a constant node.
func constValue(n node) (*big.Int, bool) {
	switch n := n.(type) {
	case untypedConst:
		return n.v, true
	case typedConst:
		return n.v, true
	}
	return nil, false
}

func (c *compiler) unary(e *ast.UnaryExpr) (node, error) {
	x, err := c.compile(e.X)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case token.ADD:
		return x, nil
	case token.SUB, token.XOR:
	default:
		return nil, compileError(c.src, "unsupported operator %s", e.Op)
	}
	switch x := x.(type) {
	case untypedConst:
		r := new(big.Int)
		if e.Op == token.SUB {
			r.Neg(x.v)
		} else {
			r.Not(x.v)
		}
		return untypedConst{v: r}, nil
	case typedConst:
		r := new(big.Int)
		switch {
		case e.Op == token.SUB:
			r.Neg(x.v)
		case x.k.Signed():
			r.Not(x.v)
		default:
			r.Xor(x.v, x.k.Max())
		}
		return c.typed(r, x.k)
	}
	return unaryOp{op: e.Op, x: x}, nil
}

func (c *compiler) binary(e *ast.BinaryExpr) (node, error) {
	x, err := c.compile(e.X)
	if err != nil {
		return nil, err
	}
	y, err := c.compile(e.Y)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case token.SHL, token.SHR:
		return c.shift(e.Op, x, y)
	case token.ADD, token.SUB, token.MUL, token.QUO, token.REM,
		token.AND, token.OR, token.XOR, token.AND_NOT:
	default:
		return nil, compileError(c.src, "unsupported operator %s", e.Op)
	}

	ux, xConst := x.(untypedConst)
	uy, yConst := y.(untypedConst)
	if xConst && yConst {
		v, err := foldBinary(e.Op, ux.v, uy.v)
		if err != nil {
			return nil, compileError(c.src, "%v", err)
		}
		return untypedConst{v: v}, nil
	}

	k := x.kind()
	if xConst {
		k = y.kind()
	}
	if !xConst && !yConst && x.kind() != y.kind() {
		return nil, compileError(c.src, "mismatched types %s and %s", x.kind(), y.kind())
	}
	if x, err = c.convert(x, k); err != nil {
		return nil, err
	}
	if y, err = c.convert(y, k); err != nil {
		return nil, err
	}
	if tc, ok := y.(typedConst); ok && tc.bits == 0 && (e.Op == token.QUO || e.Op == token.REM) {
		return nil, compileError(c.src, "invalid operation: division by zero")
	}
	tx, xTyped := x.(typedConst)
	ty, yTyped := y.(typedConst)
	if xTyped && yTyped {
		v, err := foldBinary(e.Op, tx.v, ty.v)
		if err != nil {
			return nil, compileError(c.src, "%v", err)
		}
		return c.typed(v, k)
	}
	return binaryOp{op: e.Op, x: x, y: y, k: k}, nil
}

func (c *compiler) shift(op token.Token, x, y node) (node, error) {
	xv, xConst := constValue(x)
	yv, yConst := constValue(y)
	if yConst {
		if yv.Sign() < 0 {
			return nil, compileError(c.src, "invalid shift count %s", yv)
		}
		if !yv.IsUint64() {
			return nil, compileError(c.src, "shift count %s too large", yv)
		}
	}
	if xConst && yConst {
		n := yv.Uint64()
		if op == token.SHL && n > 1<<12 {
			return nil, compileError(c.src, "shift count %d too large", n)
		}
		r := new(big.Int)
		if op == token.SHL {
			r.Lsh(xv, uint(n))
		} else {
			r.Rsh(xv, uint(n))
		}
		if x.kind() == untyped {
			return untypedConst{v: r}, nil
		}
		return c.typed(r, x.kind())
	}
	if xConst && x.kind() == untyped {
		return nil, compileError(c.src, "untyped shift operand %s needs a conversion", xv)
	}
	if yConst && y.kind() == untyped {
		var err error
		if y, err = c.typed(yv, model.Uint64); err != nil {
			return nil, err
		}
	}
	return shiftOp{op: op, x: x, y: y}, nil
}

func (c *compiler) call(e *ast.CallExpr) (node, error) {
	fn, ok := e.Fun.(*ast.Ident)
	if !ok || e.Ellipsis.IsValid() {
		return nil, compileError(c.src, "unsupported call")
	}
	args := make([]node, len(e.Args))
	for i, a := range e.Args {
		n, err := c.compile(a)
		if err != nil {
			return nil, err
		}
		args[i] = n
	}

	switch fn.Name {
	case "min", "max":
		return c.minMax(fn.Name == "min", args)
	}
	k, err := model.ParseKind(fn.Name)
	if err != nil {
		return nil, compileError(c.src, "unsupported function %s", fn.Name)
	}
	if len(args) != 1 {
		return nil, compileError(c.src, "conversion to %s takes one argument", k)
	}
	if v, isConst := constValue(args[0]); isConst {
		return c.typed(v, k)
	}
	return conversion{x: args[0], k: k}, nil
}

func (c *compiler) minMax(isMin bool, args []node) (node, error) {
	if len(args) == 0 {
		return nil, compileError(c.src, "not enough arguments for min or max")
	}
	k := untyped
	for _, a := range args {
		if a.kind() != untyped {
			k = a.kind()
			break
		}
	}
	if k == untyped {
		best := args[0].(untypedConst).v
		for _, a := range args[1:] {
			v := a.(untypedConst).v
			if (isMin && v.Cmp(best) < 0) || (!isMin && v.Cmp(best) > 0) {
				best = v
			}
		}
		return untypedConst{v: best}, nil
	}
	var best *big.Int
	folded := true
	for i, a := range args {
		n, err := c.convert(a, k)
		if err != nil {
			return nil, err
		}
		args[i] = n
		v, isConst := constValue(n)
		switch {
		case !isConst:
			folded = false
		case best == nil, isMin && v.Cmp(best) < 0, !isMin && v.Cmp(best) > 0:
			best = v
		}
	}
	if folded {
		return c.typed(best, k)
	}
	return minMaxOp{isMin: isMin, args: args, k: k}, nil
}

func foldBinary(op token.Token, x, y *big.Int) (*big.Int, error) {
	r := new(big.Int)
	switch op {
	case token.ADD:
		return r.Add(x, y), nil
	case token.SUB:
		return r.Sub(x, y), nil
	case token.MUL:
		return r.Mul(x, y), nil
	case token.QUO, token.REM:
		if y.Sign() == 0 {
			return nil, errors.New("invalid operation: division by zero")
		}
		if op == token.QUO {
			return r.Quo(x, y), nil
		}
		return r.Rem(x, y), nil
	case token.AND:
		return r.And(x, y), nil
	case token.OR:
		return r.Or(x, y), nil
	case token.XOR:
		return r.Xor(x, y), nil
	case token.AND_NOT:
		return r.AndNot(x, y), nil
	}
	return nil, fmt.Errorf("unsupported operator %s", op)
}
