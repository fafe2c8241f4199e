// internal/project/translate.go
package project

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/PakBeast/PakBeast/internal/address"
	"github.com/PakBeast/PakBeast/internal/edit"
	"github.com/PakBeast/PakBeast/internal/script"
)

// translateEdit turns one decoded block into a typed edit, enforcing
// that exactly one of set/delete is present.
func translateEdit(filename string, blk *editBlock) (edit.Edit, error) {
	addr, err := address.Parse(blk.Address)
	if err != nil {
		return edit.Edit{}, fmt.Errorf("%s: edit %q %q: %w", filename, blk.File, blk.Address, err)
	}
	if addr.File != "" {
		return edit.Edit{}, fmt.Errorf("%s: edit %q %q: the address label must not repeat the file", filename, blk.File, blk.Address)
	}
	addr.File = blk.File

	hasSet := exprDefined(blk.Set)
	if hasSet == blk.Delete {
		return edit.Edit{}, fmt.Errorf("%s: edit %q %q: exactly one of set or delete is required", filename, blk.File, blk.Address)
	}

	e := edit.Edit{Address: addr, Enabled: true, Note: blk.Note}
	if blk.Enabled != nil {
		e.Enabled = *blk.Enabled
	}
	if blk.Delete {
		e.Op = edit.OpDelete
		return e, nil
	}

	val, diags := blk.Set.Value(nil)
	if diags.HasErrors() {
		return edit.Edit{}, fmt.Errorf("%s: edit %q %q: invalid set value: %w", filename, blk.File, blk.Address, diags)
	}
	values, err := literalsFromValue(val)
	if err != nil {
		return edit.Edit{}, fmt.Errorf("%s: edit %q %q: %w", filename, blk.File, blk.Address, err)
	}
	e.Op = edit.OpSet
	e.Values = values
	return e, nil
}

// exprDefined reports whether an optional expression attribute was
// genuinely present in the source. The decoder populates omitted
// attributes with zero-width placeholder expressions, so a nil check is
// not enough; a real attribute occupies bytes in the file.
func exprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	rng := expr.Range()
	return rng.End.Byte > rng.Start.Byte
}

// literalsFromValue converts a set attribute's value into script
// literals. A tuple spreads into one literal per element; a scalar
// becomes a single literal.
func literalsFromValue(val cty.Value) ([]script.Literal, error) {
	if val.IsNull() {
		return nil, fmt.Errorf("set value cannot be null")
	}
	ty := val.Type()
	if ty.IsTupleType() || ty.IsListType() || ty.IsSetType() {
		values := make([]script.Literal, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			lit, err := literalFromValue(elem)
			if err != nil {
				return nil, err
			}
			values = append(values, lit)
		}
		return values, nil
	}
	lit, err := literalFromValue(val)
	if err != nil {
		return nil, err
	}
	return []script.Literal{lit}, nil
}

func literalFromValue(val cty.Value) (script.Literal, error) {
	if val.IsNull() {
		return script.Literal{}, fmt.Errorf("set value cannot contain null")
	}
	switch val.Type() {
	case cty.String:
		return script.NewString(val.AsString()), nil
	case cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return script.NewNumber(f), nil
	case cty.Bool:
		return script.NewBool(val.True()), nil
	}
	return script.Literal{}, fmt.Errorf("unsupported set value type %s", val.Type().FriendlyName())
}

// valueFromLiteral is the inverse mapping used when rendering a project.
// Identifier literals have no HCL form of their own and emit as strings;
// applying the edit restores the bare spelling where the original was
// bare.
func valueFromLiteral(lit script.Literal) cty.Value {
	switch lit.Kind {
	case script.LitNumber:
		return cty.NumberFloatVal(lit.Num)
	case script.LitBool:
		return cty.BoolVal(lit.Bool)
	default:
		return cty.StringVal(lit.Str)
	}
}
