// internal/project/render.go
package project

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/PakBeast/PakBeast/internal/edit"
	"github.com/PakBeast/PakBeast/internal/script"
)

// Render emits the project in canonical HCL, suitable for saving and
// loading back with Decode.
func Render(f *File) []byte {
	out := hclwrite.NewEmptyFile()
	body := out.Body()

	hasHeader := false
	for _, attr := range []struct{ name, value string }{
		{"name", f.Name},
		{"author", f.Author},
		{"source", f.Source},
	} {
		if attr.value != "" {
			body.SetAttributeValue(attr.name, cty.StringVal(attr.value))
			hasHeader = true
		}
	}

	for i, e := range f.Edits {
		if hasHeader || i > 0 {
			body.AppendNewline()
		}
		block := body.AppendNewBlock("edit", []string{e.Address.File, e.Address.PathString()})
		blockBody := block.Body()

		switch e.Op {
		case edit.OpSet:
			blockBody.SetAttributeValue("set", tupleOf(e.Values))
		case edit.OpDelete:
			blockBody.SetAttributeValue("delete", cty.True)
		}
		if !e.Enabled {
			blockBody.SetAttributeValue("enabled", cty.False)
		}
		if e.Note != "" {
			blockBody.SetAttributeValue("note", cty.StringVal(e.Note))
		}
	}
	return hclwrite.Format(out.Bytes())
}

// tupleOf keeps each element's own type, so `set = [25, "melee"]` stays
// heterogeneous.
func tupleOf(values []script.Literal) cty.Value {
	if len(values) == 0 {
		return cty.EmptyTupleVal
	}
	elems := make([]cty.Value, len(values))
	for i, lit := range values {
		elems[i] = valueFromLiteral(lit)
	}
	return cty.TupleVal(elems)
}
