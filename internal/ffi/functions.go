package ffi

import (
	"fmt"

	"github.com/angelscript-go/asc/internal/types"
)

// RegisterMethod registers an ordinary instance method on receiver. decl
// is a full signature ("int Length() const", "void SetName(const string
// &in)"); native is the host value later bound to it (opaque here — the
// native call bridge that invokes it is out of scope). A method whose name
// matches an opXxx entry in types.LookupOperator is automatically also
// recorded as that operator, exactly as the declaration pass classifies a
// script-defined method of the same name.
func (r *Registrar) RegisterMethod(receiver types.TypeHash, decl string, native any) error {
	def, err := r.registerSignature(receiver, decl, native)
	if err != nil {
		return err
	}
	cls, err := r.classOf(receiver)
	if err != nil {
		return err
	}
	qn := cls.QualifiedName() + "::" + def.Name
	r.reg.RegisterFunction(qn, def)
	cls.MethodNames = append(cls.MethodNames, def.Name)
	if op := def.Operator; op != types.OperatorNone {
		r.reg.RegisterOperator(receiver, op, def)
	}
	return nil
}

// RegisterOperator registers an operator overload on receiver. It is
// identical to RegisterMethod: operator classification is driven entirely
// by decl's method name (opAdd, opEquals, opIndex, ...), the same way an
// ordinary script method is reclassified as an operator by name alone.
// This entry point exists purely to give that registration-surface
// operation its own name, distinct from RegisterMethod.
func (r *Registrar) RegisterOperator(receiver types.TypeHash, decl string, native any) error {
	return r.RegisterMethod(receiver, decl, native)
}

// RegisterGlobalFunction registers a free function with no receiver.
func (r *Registrar) RegisterGlobalFunction(namespace, decl string, native any) error {
	def, err := r.registerSignature(0, decl, native)
	if err != nil {
		return err
	}
	r.reg.RegisterFunction(qualifyName(namespace, def.Name), def)
	return nil
}

// RegisterBehavior registers a lifetime or construction behavior (factory,
// constructor, destructor, AddRef, Release, GetRefCount, list-construct,
// list-factory) on receiver. decl's own name is whatever the host chooses
// (AngelScript convention spells all of these "f", e.g. "MyClass@ f()" for
// a factory) — kind, not name, determines how it's filed.
func (r *Registrar) RegisterBehavior(receiver types.TypeHash, kind types.BehaviorKind, decl string, native any) error {
	def, err := r.registerSignature(receiver, decl, native)
	if err != nil {
		return err
	}
	def.Behavior = kind
	cls, err := r.classOf(receiver)
	if err != nil {
		return err
	}
	qn := cls.QualifiedName() + "::" + def.Name

	switch kind {
	case types.BehaviorConstructor:
		cls.Behaviors.Constructors = append(cls.Behaviors.Constructors, def)
	case types.BehaviorFactory:
		cls.Behaviors.Factories = append(cls.Behaviors.Factories, def)
	case types.BehaviorDestructor:
		cls.Behaviors.Destructor = def
	case types.BehaviorAddRef:
		cls.Behaviors.AddRef = def
	case types.BehaviorRelease:
		cls.Behaviors.Release = def
	case types.BehaviorGetRefCount:
		cls.Behaviors.GetRefCount = def
	case types.BehaviorListConstruct:
		cls.Behaviors.ListConstructors = append(cls.Behaviors.ListConstructors, def)
	case types.BehaviorListFactory:
		cls.Behaviors.ListFactories = append(cls.Behaviors.ListFactories, def)
	default:
		return fmt.Errorf("ffi: %q: not a behavior kind (%s)", decl, kind)
	}
	r.reg.RegisterFunction(qn, def)
	return nil
}

// RegisterFactory registers a factory behavior (returns a handle to a new
// instance), the construction path RefKindStandard/Scoped/NoCount types
// require instead of a plain constructor.
func (r *Registrar) RegisterFactory(receiver types.TypeHash, decl string, native any) error {
	return r.RegisterBehavior(receiver, types.BehaviorFactory, decl, native)
}

// RegisterConstructor registers a value-type constructor behavior.
func (r *Registrar) RegisterConstructor(receiver types.TypeHash, decl string, native any) error {
	return r.RegisterBehavior(receiver, types.BehaviorConstructor, decl, native)
}

// RegisterDestructor registers the single destructor behavior a scoped
// reference type requires.
func (r *Registrar) RegisterDestructor(receiver types.TypeHash, decl string, native any) error {
	return r.RegisterBehavior(receiver, types.BehaviorDestructor, decl, native)
}

// RegisterAddRef registers the AddRef behavior a standard reference-counted
// type requires.
func (r *Registrar) RegisterAddRef(receiver types.TypeHash, decl string, native any) error {
	return r.RegisterBehavior(receiver, types.BehaviorAddRef, decl, native)
}

// RegisterRelease registers the Release behavior a standard reference-
// counted type requires.
func (r *Registrar) RegisterRelease(receiver types.TypeHash, decl string, native any) error {
	return r.RegisterBehavior(receiver, types.BehaviorRelease, decl, native)
}
