package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/elemdirectives/internal/ctxlog"
	"github.com/vk/elemdirectives/internal/schema"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// functions are the HCL functions available to attribute value expressions.
var functions = map[string]function.Function{
	"concat":    stdlib.ConcatFunc,
	"format":    stdlib.FormatFunc,
	"join":      stdlib.JoinFunc,
	"lower":     stdlib.LowerFunc,
	"trimspace": stdlib.TrimSpaceFunc,
	"upper":     stdlib.UpperFunc,
}

// newEvalContext evaluates variable defaults and exposes them as `var.*`.
// Defaults may use functions but not other variables.
func newEvalContext(ctx context.Context, variables []*schema.Variable) (*hcl.EvalContext, error) {
	logger := ctxlog.FromContext(ctx)
	base := &hcl.EvalContext{Functions: functions}

	vars := make(map[string]cty.Value, len(variables))
	for _, v := range variables {
		if _, exists := vars[v.Name]; exists {
			return nil, fmt.Errorf("variable %q is declared more than once", v.Name)
		}
		val := cty.NullVal(cty.DynamicPseudoType)
		if v.Default != nil {
			var diags hcl.Diagnostics
			val, diags = v.Default.Value(base)
			if diags.HasErrors() {
				return nil, fmt.Errorf("variable %q: %w", v.Name, diags)
			}
		}
		logger.Debug("Variable evaluated.", "name", v.Name, "type", val.Type().FriendlyName())
		vars[v.Name] = val
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"var": cty.ObjectVal(vars)},
		Functions: functions,
	}, nil
}

// evalString evaluates expr and converts the result to a Go string. A
// missing expression or a null result yields "".
func evalString(ctx context.Context, expr hcl.Expression, evalCtx *hcl.EvalContext) (string, error) {
	if expr == nil {
		return "", nil
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return "", diags
	}
	return toString(ctx, val)
}

// toString converts a cty value to a string, applying the usual implicit
// conversions for numbers and bools.
func toString(ctx context.Context, val cty.Value) (string, error) {
	logger := ctxlog.FromContext(ctx)
	if val.IsNull() {
		return "", nil
	}
	if !val.IsWhollyKnown() {
		return "", fmt.Errorf("value is not known")
	}

	converted, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("cannot convert %s to string: %w", val.Type().FriendlyName(), err)
	}
	if !val.Type().Equals(cty.String) {
		logger.Debug("Implicitly converted value type.", "from", val.Type().FriendlyName(), "to", "string")
	}
	return converted.AsString(), nil
}
