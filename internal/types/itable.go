package types

// ITable is a class's interface dispatch table: for every interface the
// class implements (directly or transitively), the concrete method that
// satisfies each of that interface's method slots, in the interface's own
// declaration order.
//
// Slot assignment is leaf-driven: the *interface's* method order fixes the
// slot numbers, not the implementing class's declaration order, so a
// single interface dispatch site (`iface.Method()` through a handle whose
// static type is the interface) can index straight into the implementing
// class's slot array without a name lookup at call time.
type ITable struct {
	slots map[TypeHash][]*FunctionDef
}

// NewITable creates an empty dispatch table.
func NewITable() *ITable {
	return &ITable{slots: make(map[TypeHash][]*FunctionDef)}
}

// Bind assigns impls as iface's dispatch slots, in iface's method order.
// Bind overwrites any previous binding for the same interface.
func (t *ITable) Bind(iface TypeHash, impls []*FunctionDef) {
	t.slots[iface] = impls
}

// Slot returns the method bound at index i for iface, or nil if iface is
// not implemented or i is out of range.
func (t *ITable) Slot(iface TypeHash, i int) *FunctionDef {
	fns, ok := t.slots[iface]
	if !ok || i < 0 || i >= len(fns) {
		return nil
	}
	return fns[i]
}

// Implements reports whether the class this table belongs to implements
// iface at all.
func (t *ITable) Implements(iface TypeHash) bool {
	_, ok := t.slots[iface]
	return ok
}

// BuildSlots resolves iface's method list against methodsByName (the
// implementing class's own methods, keyed by name) in iface's declared
// order, returning the slots to pass to Bind and the names (if any) that
// had no matching implementation.
func BuildSlots(iface *InterfaceType, methodsByName map[string]*FunctionDef) (slots []*FunctionDef, missing []string) {
	slots = make([]*FunctionDef, 0, len(iface.Methods))
	for _, sig := range iface.Methods {
		impl, ok := methodsByName[sig.Name]
		if !ok {
			missing = append(missing, sig.Name)
			slots = append(slots, nil)
			continue
		}
		slots = append(slots, impl)
	}
	return slots, missing
}
