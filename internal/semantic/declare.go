package semantic

import (
	"strconv"
	"strings"

	"github.com/angelscript-go/asc/internal/ast"
	"github.com/angelscript-go/asc/internal/diag"
	"github.com/angelscript-go/asc/internal/registry"
	"github.com/angelscript-go/asc/internal/resolve"
	"github.com/angelscript-go/asc/internal/types"
)

// Declarer walks a parsed Module in two passes. The first pass registers a
// stub TypeEntry for every class/interface/enum/funcdef so that a sibling
// declared later in the same unit (or an earlier namespace referencing a
// later one) already exists by name once the second pass starts resolving
// bases, fields, parameters, and global types against it. Anything the
// second pass still can't resolve is reported as a diagnostic on the spot;
// registry.Defer is not used, and the Analyzer runs no resolution sweep.
type Declarer struct {
	reg    *registry.TypeRegistry
	arenas *ast.Arenas
	sink   *diag.Sink

	// scopes is allocated by NewDeclarer; no pass reads or writes it.
	scopes map[ast.TypeExprID]resolve.Scope
}

// NewDeclarer creates a Declarer over reg, reporting problems to sink.
func NewDeclarer(reg *registry.TypeRegistry, arenas *ast.Arenas, sink *diag.Sink) *Declarer {
	return &Declarer{reg: reg, arenas: arenas, sink: sink, scopes: make(map[ast.TypeExprID]resolve.Scope)}
}

func joinNamespace(outer []string, name string) []string {
	segs := strings.Split(name, "::")
	return append(append([]string{}, outer...), segs...)
}

func qualifiedOf(ns []string, name string) string {
	if len(ns) == 0 {
		return name
	}
	return strings.Join(ns, "::") + "::" + name
}

// DeclareNames runs the first pass over mod, registering a stub TypeEntry
// for every nominal type declaration.
func (d *Declarer) DeclareNames(mod *ast.Module) {
	d.declareNamesIn(mod.Items, nil)
}

func (d *Declarer) declareNamesIn(items []ast.ItemID, ns []string) {
	for _, id := range items {
		switch it := d.arenas.Item(id).(type) {
		case *ast.NamespaceDecl:
			d.declareNamesIn(it.Items, joinNamespace(ns, it.Name))
		case *ast.ClassDecl:
			qn := qualifiedOf(ns, it.Name)
			cls := &types.ClassType{Hash: types.HashNominal(types.KindClass, qn), Name: it.Name, Namespace: strings.Join(ns, "::"), Ref: types.RefKindStandard, Final: it.Final, Shared: it.Shared}
			if err := d.reg.Register(cls); err != nil {
				d.sink.Errorf(diag.KindDuplicateDecl, it.Sp, "%s", err)
			}
		case *ast.InterfaceDecl:
			qn := qualifiedOf(ns, it.Name)
			iface := &types.InterfaceType{Hash: types.HashNominal(types.KindInterface, qn), Name: it.Name, Namespace: strings.Join(ns, "::")}
			if err := d.reg.Register(iface); err != nil {
				d.sink.Errorf(diag.KindDuplicateDecl, it.Sp, "%s", err)
			}
		case *ast.EnumDecl:
			d.declareEnum(it, ns)
		case *ast.FuncdefDecl:
			qn := qualifiedOf(ns, it.Name)
			fd := &types.FuncdefType{Hash: types.HashNominal(types.KindFuncdef, qn), Name: it.Name, Namespace: strings.Join(ns, "::")}
			if err := d.reg.Register(fd); err != nil {
				d.sink.Errorf(diag.KindDuplicateDecl, it.Sp, "%s", err)
			}
		}
	}
}

func (d *Declarer) declareEnum(it *ast.EnumDecl, ns []string) {
	qn := qualifiedOf(ns, it.Name)
	enum := &types.EnumType{Hash: types.HashNominal(types.KindEnum, qn), Name: it.Name, Namespace: strings.Join(ns, "::")}
	next := int64(0)
	for _, m := range it.Members {
		val := next
		if m.Value != 0 {
			if lit, ok := d.arenas.Expr(m.Value).(*ast.Literal); ok && lit.Kind == ast.LitInt {
				if n, err := strconv.ParseInt(lit.Text, 0, 64); err == nil {
					val = n
				}
			}
		}
		enum.Members = append(enum.Members, types.EnumMemberEntry{Name: m.Name, Value: val})
		next = val + 1
	}
	if err := d.reg.Register(enum); err != nil {
		d.sink.Errorf(diag.KindDuplicateDecl, it.Sp, "%s", err)
	}
}

// DeclareDetails runs the second pass, resolving bases, fields, method and
// funcdef signatures, and globals now that every nominal name in the unit
// has a stub entry. Call after DeclareNames has run over every file in a
// compilation.
func (d *Declarer) DeclareDetails(mod *ast.Module) {
	d.declareDetailsIn(mod.Items, nil)
}

func (d *Declarer) declareDetailsIn(items []ast.ItemID, ns []string) {
	scope := resolve.Scope{Namespace: ns}
	for _, id := range items {
		switch it := d.arenas.Item(id).(type) {
		case *ast.NamespaceDecl:
			d.declareDetailsIn(it.Items, joinNamespace(ns, it.Name))

		case *ast.ClassDecl:
			d.declareClassDetails(it, ns, scope)

		case *ast.InterfaceDecl:
			d.declareInterfaceDetails(it, ns, scope)

		case *ast.FuncdefDecl:
			d.declareFuncdefDetails(it, ns, scope)

		case *ast.FuncDecl:
			fn := d.resolveFunc(it, scope, 0)
			if fn != nil {
				d.reg.RegisterFunction(qualifiedOf(ns, it.Name), fn)
			}

		case *ast.GlobalVarDecl:
			d.declareGlobals(it, scope, ns)

		case *ast.TypedefDecl:
			dt, err := resolveType(d.reg, d.arenas, it.Target, scope)
			if err != nil {
				d.sink.Errorf(diag.KindUnresolvedName, it.Sp, "typedef %s: %s", it.Name, err)
				continue
			}
			if err := d.reg.RegisterGlobal("typedef::"+qualifiedOf(ns, it.Name), dt); err != nil {
				d.sink.Errorf(diag.KindDuplicateDecl, it.Sp, "%s", err)
			}

		case *ast.ImportDecl:
			ret, err := resolveType(d.reg, d.arenas, it.ReturnType, scope)
			if err != nil {
				d.sink.Errorf(diag.KindUnresolvedName, it.Sp, "import %s: %s", it.Name, err)
				continue
			}
			fn := &types.FunctionDef{Name: it.Name, Return: ret, Params: d.resolveParams(it.Params, scope)}
			d.reg.RegisterFunction(qualifiedOf(ns, it.Name), fn)
		}
	}
}

func (d *Declarer) declareClassDetails(it *ast.ClassDecl, ns []string, scope resolve.Scope) {
	qn := qualifiedOf(ns, it.Name)
	entry, ok := d.reg.LookupQualified(qn)
	if !ok {
		return
	}
	cls, ok := entry.(*types.ClassType)
	if !ok {
		return
	}

	for i, baseName := range it.Bases {
		baseHash, kind, err := d.resolveNominal(baseName, scope)
		if err != nil {
			d.sink.Errorf(diag.KindUnresolvedName, it.Sp, "%s", err)
			continue
		}
		if i == 0 && kind == types.KindClass {
			cls.Base = baseHash
			continue
		}
		cls.Interfaces = append(cls.Interfaces, baseHash)
	}

	for _, fid := range it.Fields {
		f := d.arenas.Item(fid).(*ast.FieldDecl)
		dt, err := resolveType(d.reg, d.arenas, f.Type, scope)
		if err != nil {
			d.sink.Errorf(diag.KindUnresolvedName, f.Sp, "field %s: %s", f.Name, err)
			continue
		}
		cls.Fields = append(cls.Fields, types.FieldEntry{Name: f.Name, Type: dt, Private: f.Private, Protected: f.Protected})
	}

	for _, pid := range it.Props {
		p := d.arenas.Item(pid).(*ast.PropertyDecl)
		dt, err := resolveType(d.reg, d.arenas, p.Type, scope)
		if err != nil {
			d.sink.Errorf(diag.KindUnresolvedName, p.Sp, "property %s: %s", p.Name, err)
			continue
		}
		prop := types.PropertyEntry{Name: p.Name, Type: dt}
		if p.Get != nil {
			getter := &types.FunctionDef{Name: "get_" + p.Name, Receiver: cls.Hash, Return: dt, Const: true}
			d.reg.RegisterFunction(qn+"::get_"+p.Name, getter)
			prop.Getter = getter
		}
		if p.Set != nil {
			setter := &types.FunctionDef{Name: "set_" + p.Name, Receiver: cls.Hash, Params: []types.ParamEntry{{Name: "value", Type: dt}}}
			d.reg.RegisterFunction(qn+"::set_"+p.Name, setter)
			prop.Setter = setter
		}
		cls.Properties = append(cls.Properties, prop)
	}

	for _, mid := range it.Methods {
		m := d.arenas.Item(mid).(*ast.FuncDecl)
		fn := d.resolveFunc(m, scope, cls.Hash)
		if fn == nil {
			continue
		}
		cls.MethodNames = append(cls.MethodNames, m.Name)
		d.reg.RegisterFunction(qn+"::"+m.Name, fn)
		classifyBehaviorOrOperator(cls, fn, m.Name, it.Name)
	}

	if it.Bases == nil && cls.Base == 0 && len(cls.Interfaces) == 0 && cls.Behaviors.Destructor == nil && cls.Behaviors.AddRef == nil {
		// A script class with no explicit lifetime behaviors gets the
		// engine's implicit reference counting, the way a bare `class Foo
		// {}` works without user-written AddRef/Release.
		cls.Behaviors.AddRef = &types.FunctionDef{Name: "$addref", Receiver: cls.Hash, Behavior: types.BehaviorAddRef}
		cls.Behaviors.Release = &types.FunctionDef{Name: "$release", Receiver: cls.Hash, Behavior: types.BehaviorRelease}
		if len(cls.Behaviors.Factories) == 0 {
			cls.Behaviors.Factories = append(cls.Behaviors.Factories, &types.FunctionDef{Name: "$factory", Return: types.DataType{Hash: cls.Hash, Handle: true}, Behavior: types.BehaviorFactory})
		}
	}

	if reason := cls.Behaviors.Validate(cls.Ref); reason != "" {
		d.sink.Errorf(diag.KindIllegalBehavior, it.Sp, "class %s: %s", it.Name, reason)
	}
}

// classifyBehaviorOrOperator recognizes fn's source name as a
// constructor/destructor and files it under the right slot of
// cls.Behaviors, purely by name the way the parser recognized constructors
// and destructors structurally in the first place. Operator overloads are
// already tagged on fn by resolveFunc; ordinary methods need nothing here.
func classifyBehaviorOrOperator(cls *types.ClassType, fn *types.FunctionDef, name, className string) {
	switch name {
	case className:
		fn.Behavior = types.BehaviorConstructor
		cls.Behaviors.Constructors = append(cls.Behaviors.Constructors, fn)
	case "~" + className:
		fn.Behavior = types.BehaviorDestructor
		cls.Behaviors.Destructor = fn
	}
}

func (d *Declarer) declareInterfaceDetails(it *ast.InterfaceDecl, ns []string, scope resolve.Scope) {
	qn := qualifiedOf(ns, it.Name)
	entry, ok := d.reg.LookupQualified(qn)
	if !ok {
		return
	}
	iface, ok := entry.(*types.InterfaceType)
	if !ok {
		return
	}
	for _, baseName := range it.Bases {
		baseHash, _, err := d.resolveNominal(baseName, scope)
		if err != nil {
			d.sink.Errorf(diag.KindUnresolvedName, it.Sp, "%s", err)
			continue
		}
		iface.Bases = append(iface.Bases, baseHash)
	}
	for _, m := range it.Methods {
		ret, err := resolveType(d.reg, d.arenas, m.ReturnType, scope)
		if err != nil {
			d.sink.Errorf(diag.KindUnresolvedName, m.Sp, "method %s: %s", m.Name, err)
			continue
		}
		iface.Methods = append(iface.Methods, types.FunctionDef{Name: m.Name, Receiver: iface.Hash, Return: ret, Params: d.resolveParams(m.Params, scope)})
	}
}

func (d *Declarer) declareFuncdefDetails(it *ast.FuncdefDecl, ns []string, scope resolve.Scope) {
	qn := qualifiedOf(ns, it.Name)
	entry, ok := d.reg.LookupQualified(qn)
	if !ok {
		return
	}
	fd, ok := entry.(*types.FuncdefType)
	if !ok {
		return
	}
	ret, err := resolveType(d.reg, d.arenas, it.ReturnType, scope)
	if err != nil {
		d.sink.Errorf(diag.KindUnresolvedName, it.Sp, "funcdef %s: %s", it.Name, err)
		return
	}
	fd.Signature = types.FunctionDef{Name: it.Name, Return: ret, Params: d.resolveParams(it.Params, scope)}
}

func (d *Declarer) declareGlobals(it *ast.GlobalVarDecl, scope resolve.Scope, ns []string) {
	dt, err := resolveType(d.reg, d.arenas, it.Type, scope)
	if err != nil {
		d.sink.Errorf(diag.KindUnresolvedName, it.Sp, "%s", err)
		return
	}
	if it.Const {
		dt.Const = true
	}
	for _, decl := range it.Declarators {
		if err := d.reg.RegisterGlobal(qualifiedOf(ns, decl.Name), dt); err != nil {
			d.sink.Errorf(diag.KindDuplicateDecl, it.Sp, "%s", err)
		}
	}
}

func (d *Declarer) resolveFunc(fd *ast.FuncDecl, scope resolve.Scope, receiver types.TypeHash) *types.FunctionDef {
	var ret types.DataType
	if fd.ReturnType != 0 {
		r, err := resolveType(d.reg, d.arenas, fd.ReturnType, scope)
		if err != nil {
			d.sink.Errorf(diag.KindUnresolvedName, fd.Sp, "function %s: %s", fd.Name, err)
			return nil
		}
		ret = r
	}
	return &types.FunctionDef{
		Name:     fd.Name,
		Receiver: receiver,
		Return:   ret,
		Params:   d.resolveParams(fd.Params, scope),
		Const:    fd.Modifiers.Const,
		Operator: types.LookupOperator(fd.Name),
	}
}

func (d *Declarer) resolveParams(params []ast.Param, scope resolve.Scope) []types.ParamEntry {
	out := make([]types.ParamEntry, 0, len(params))
	for _, p := range params {
		dt, err := resolveType(d.reg, d.arenas, p.Type, scope)
		if err != nil {
			d.sink.Errorf(diag.KindUnresolvedName, diag.Span{}, "parameter %s: %s", p.Name, err)
			continue
		}
		out = append(out, types.ParamEntry{Name: p.Name, Type: dt, HasDefault: p.Default != 0})
	}
	return out
}

// resolveNominal resolves a bare base-class/interface name (not a
// TypeExprID; ClassDecl.Bases and InterfaceDecl.Bases are plain strings)
// against scope, returning the entry's hash and kind.
func (d *Declarer) resolveNominal(name string, scope resolve.Scope) (types.TypeHash, types.TypeKind, error) {
	segs := strings.Split(name, "::")
	qualified, err := resolve.Lookup(segs, scope, func(n string) bool {
		_, ok := d.reg.LookupQualified(n)
		return ok
	})
	if err != nil {
		return 0, 0, err
	}
	entry, _ := d.reg.LookupQualified(qualified)
	return entry.TypeHash(), entry.Kind(), nil
}
