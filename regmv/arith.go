package regmv

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/parser"
)

func init() {
	Register("arith", newArith)
}

// cueKeywords cannot be bound as field names in the evaluation source.
var cueKeywords = map[string]bool{
	"x": true, "result": true,
	"true": true, "false": true, "null": true,
	"for": true, "in": true, "if": true, "let": true,
	"div": true, "mod": true, "quo": true, "rem": true,
	"len": true, "close": true, "and": true, "or": true,
}

// arith replaces a numeric group with the result of an expression. Inside
// the expression x is the group's own value, gN is numeric group N and a
// numeric named group is available under its name.
type arith struct {
	group selector
	expr  string
	ctx   *cue.Context
}

func newArith(args string) (Transform, error) {
	group, expr, ok := strings.Cut(args, ":")
	if !ok || strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("%w: expected arith:GROUP:EXPR", ErrTransformSyntax)
	}
	sel, err := parseSelector(group)
	if err != nil {
		return nil, err
	}
	if _, err := parser.ParseExpr("arith", expr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransformSyntax, err)
	}
	return &arith{group: sel, expr: expr, ctx: cuecontext.New()}, nil
}

func (a *arith) Name() string { return "arith:" + a.group.String() }

func (a *arith) Prepare([]*CaptureSet) error { return nil }

func (a *arith) Apply(set *CaptureSet) error {
	targets, err := a.group.targets(set)
	if err != nil {
		return err
	}
	for _, i := range targets {
		v := set.Value(i)
		lit, ok := numericLiteral(v)
		if !ok {
			if a.group.all {
				continue
			}
			return fmt.Errorf("%w: group %s is %q", ErrNotNumeric, a.group, v)
		}
		result, err := a.eval(set, lit)
		if err != nil {
			return err
		}
		set.SetIndex(i, padLike(v, result))
	}
	return nil
}

func (a *arith) eval(set *CaptureSet, x string) (string, error) {
	var src strings.Builder
	seen := map[string]bool{"x": true}
	fmt.Fprintf(&src, "x: %s\n", x)
	for i := 1; i < set.Len(); i++ {
		if !set.Matched(i) {
			continue
		}
		lit, ok := numericLiteral(set.Value(i))
		if !ok {
			continue
		}
		name := "g" + strconv.Itoa(i)
		seen[name] = true
		fmt.Fprintf(&src, "%s: %s\n", name, lit)
	}
	for i := 1; i < set.Len(); i++ {
		name := set.Name(i)
		if !bindable(name) || seen[name] || !set.Matched(i) {
			continue
		}
		lit, ok := numericLiteral(set.Value(i))
		if !ok {
			continue
		}
		seen[name] = true
		fmt.Fprintf(&src, "%s: %s\n", name, lit)
	}
	fmt.Fprintf(&src, "result: %s\n", a.expr)

	v := a.ctx.CompileString(src.String())
	if err := v.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrArithmetic, err)
	}
	r := v.LookupPath(cue.ParsePath("result"))
	if err := r.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrArithmetic, err)
	}
	if !r.IsConcrete() {
		return "", fmt.Errorf("%w: %q is not a concrete number", ErrArithmetic, a.expr)
	}
	switch r.Kind() {
	case cue.IntKind:
		n, err := r.Int64()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrArithmetic, err)
		}
		return strconv.FormatInt(n, 10), nil
	case cue.FloatKind:
		f, err := r.Float64()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrArithmetic, err)
		}
		return formatFloat(f), nil
	default:
		return "", fmt.Errorf("%w: %q yields %s, not a number", ErrArithmetic, a.expr, r.Kind())
	}
}

func bindable(name string) bool {
	if name == "" || cueKeywords[name] || strings.HasPrefix(name, "__") {
		return false
	}
	return name[0] < '0' || name[0] > '9'
}

// numericLiteral returns s in a form CUE accepts as a number literal.
func numericLiteral(s string) (string, bool) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(n, 10), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}
	lit := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(lit, ".") {
		lit += ".0"
	}
	return lit, true
}

func formatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// padLike zero-pads an integer result to the digit count of orig when orig
// was written with leading zeros, so 007 plus one renders as 008.
func padLike(orig, result string) string {
	digits := strings.TrimLeft(orig, "+-")
	if len(digits) < 2 || digits[0] != '0' || strings.ContainsAny(digits, ".eE") {
		return result
	}
	sign := ""
	body := result
	if strings.HasPrefix(body, "-") {
		sign, body = "-", body[1:]
	}
	if strings.Contains(body, ".") || len(body) >= len(digits) {
		return result
	}
	return sign + strings.Repeat("0", len(digits)-len(body)) + body
}
