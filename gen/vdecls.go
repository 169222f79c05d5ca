package gen

import (
	"fmt"
	"strings"

	"github.com/benn-herrera/vbindgen/model"
	"github.com/benn-herrera/vbindgen/policy"
	"github.com/benn-herrera/vbindgen/resolver"
)

// enumSentinel is the member C enums use to force 32-bit width.
const enumSentinel = "force_u32"

// emitStruct writes the C layout struct and its public alias.
func (w *vWriter) emitStruct(d *model.Decl) {
	cName := d.Name
	fmt.Fprintf(w.b, "pub struct C.%s {\n", cName)
	w.b.WriteString("pub mut:\n")
	for _, f := range d.Fields {
		fieldName := w.pol.Override(policy.Sym(f.Name))
		// reserved/padding members are not exposed
		if strings.HasPrefix(fieldName, "_") {
			continue
		}
		key := policy.Member(cName, f.Name)
		shape, ok := w.classify(key.String(), model.KindStruct, w.pol.OverrideOr(key, f.Type))
		if !ok {
			continue
		}
		if shape.Kind == resolver.ShapeVoid {
			w.fail(key.String(), model.KindStruct, shape, "void struct field")
			continue
		}
		def, err := w.fieldDefault(shape)
		if err != nil {
			w.fail(key.String(), model.KindStruct, shape, err.Error())
			continue
		}
		name := w.names.Snake(fieldName)
		if def == "" {
			fmt.Fprintf(w.b, "\t%s %s\n", name, w.cType(shape))
		} else {
			fmt.Fprintf(w.b, "\t%s %s = %s\n", name, w.cType(shape), def)
		}
	}
	w.b.WriteString("}\n\n")
	alias := w.names.StructType(w.pol.Override(policy.Sym(cName)))
	fmt.Fprintf(w.b, "pub type %s = C.%s\n\n", alias, cName)
}

// emitEnum writes a u32-backed V enum.
func (w *vWriter) emitEnum(d *model.Decl) {
	fmt.Fprintf(w.b, "pub enum %s as u32 {\n", w.names.EnumType(w.pol.Override(policy.Sym(d.Name))))
	for _, it := range d.Items {
		name := w.names.EnumItem(w.pol.Override(policy.Sym(it.Name)))
		if name == "" {
			w.errs.Add(fmt.Errorf("%s (enum): member %q has no name after the enum prefix", d.Name, it.Name))
			continue
		}
		if name == enumSentinel {
			continue
		}
		if it.HasValue() {
			fmt.Fprintf(w.b, "\t%s = %s\n", name, it.Value)
		} else {
			fmt.Fprintf(w.b, "\t%s\n", name)
		}
	}
	w.b.WriteString("}\n\n")
}

// emitConsts writes one constant per item; values are already V literals.
func (w *vWriter) emitConsts(d *model.Decl) {
	for _, it := range d.Items {
		name := w.names.Snake(w.pol.Override(policy.Sym(it.Name)))
		fmt.Fprintf(w.b, "pub const %s = %s\n", name, it.Value)
	}
	w.b.WriteString("\n")
}

type funcParam struct {
	name  string
	shape resolver.Shape
}

// emitFunc writes the foreign declaration of a C function followed by
// either a marshaling wrapper or, for raw callbacks, a constant alias.
func (w *vWriter) emitFunc(d *model.Decl) {
	cName := d.Name
	failed := false

	params := make([]funcParam, 0, len(d.Params))
	for _, p := range d.Params {
		key := policy.Member(cName, p.Name)
		shape, ok := w.classify(key.String(), model.KindFunc, w.pol.OverrideOr(key, p.Type))
		if !ok {
			failed = true
			continue
		}
		if shape.Kind == resolver.ShapeVoid || shape.IsArray() {
			w.fail(key.String(), model.KindFunc, shape, fmt.Sprintf("%s is not allowed as a parameter", shape.Kind))
			failed = true
			continue
		}
		params = append(params, funcParam{name: w.names.Snake(p.Name), shape: shape})
	}

	resKey := policy.Member(cName, policy.Result)
	res, ok := w.classify(resKey.String(), model.KindFunc, w.pol.OverrideOr(resKey, d.ResultType()))
	if !ok {
		return
	}
	if res.IsArray() {
		w.fail(resKey.String(), model.KindFunc, res, "arrays cannot be returned")
		return
	}
	if failed {
		return
	}

	cArgs := make([]string, len(params))
	for i, p := range params {
		cArgs[i] = w.cType(p.shape)
	}
	if cRes := w.cType(res); cRes != "" {
		fmt.Fprintf(w.b, "fn C.%s(%s) %s\n", cName, strings.Join(cArgs, ", "), cRes)
	} else {
		fmt.Fprintf(w.b, "fn C.%s(%s)\n", cName, strings.Join(cArgs, ", "))
	}

	vName := w.names.Snake(w.pol.Override(policy.Sym(cName)))
	if w.pol.IsCallback(cName) {
		fmt.Fprintf(w.b, "pub const %s = C.%s\n\n", vName, cName)
		return
	}

	vParams := make([]string, len(params))
	callArgs := make([]string, len(params))
	for i, p := range params {
		vParams[i] = fmt.Sprintf("%s %s", p.name, w.vType(p.shape))
		if p.shape.Kind == resolver.ShapeString {
			callArgs[i] = fmt.Sprintf("vstring_to_cstring(%s)", p.name)
		} else {
			callArgs[i] = p.name
		}
	}

	vRes := w.vType(res)
	if vRes != "" {
		fmt.Fprintf(w.b, "pub fn %s(%s) %s {\n", vName, strings.Join(vParams, ", "), vRes)
	} else {
		fmt.Fprintf(w.b, "pub fn %s(%s) {\n", vName, strings.Join(vParams, ", "))
	}

	call := fmt.Sprintf("C.%s(%s)", cName, strings.Join(callArgs, ", "))
	switch {
	case res.Kind == resolver.ShapeString:
		fmt.Fprintf(w.b, "\treturn unsafe { cstring_to_vstring(%s) }\n", call)
	case vRes != "":
		fmt.Fprintf(w.b, "\treturn %s\n", call)
	default:
		fmt.Fprintf(w.b, "\t%s\n", call)
	}
	w.b.WriteString("}\n\n")
}
