package types

// TypeBehaviors indexes a class's special (non-overload) function
// registrations by BehaviorKind. Constructors and list-constructors are
// overload sets (a class may have several constructors); the lifetime
// hooks (destructor/AddRef/Release/GetRefCount) are each at most one
// function, since AngelScript does not allow overloading them.
type TypeBehaviors struct {
	Constructors     []*FunctionDef
	Factories        []*FunctionDef
	Destructor       *FunctionDef
	AddRef           *FunctionDef
	Release          *FunctionDef
	GetRefCount      *FunctionDef
	ListConstructors []*FunctionDef
	ListFactories    []*FunctionDef
}

// Validate checks the registered behaviors against ref's legality
// requirements, returning a human-readable reason when a behavior is
// missing or one is present that ref forbids. Returns "" when legal.
func (b TypeBehaviors) Validate(ref ReferenceKind) string {
	switch ref {
	case RefKindStandard:
		if b.AddRef == nil || b.Release == nil {
			return "reference-counted types must define both AddRef and Release behaviors"
		}
		if len(b.Factories) == 0 && len(b.ListFactories) == 0 {
			return "reference-counted types must be constructed through a factory behavior"
		}
	case RefKindScoped:
		if b.Destructor == nil {
			return "scoped reference types must define a destructor behavior"
		}
		if b.AddRef != nil || b.Release != nil {
			return "scoped reference types must not define AddRef/Release"
		}
	case RefKindNoCount:
		if b.AddRef != nil || b.Release != nil || b.Destructor != nil {
			return "no-count reference types must not define lifetime behaviors"
		}
	case RefKindValue, RefKindNoHandle:
		if b.AddRef != nil || b.Release != nil {
			return "value types must not define AddRef/Release"
		}
	}
	return ""
}
