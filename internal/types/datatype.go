package types

// RefMod is the parameter reference modifier: `&in`, `&out`, `&inout`, or
// none for a plain by-value (or by-handle) parameter.
type RefMod int

const (
	RefModNone RefMod = iota
	RefModIn
	RefModOut
	RefModInOut
)

func (m RefMod) String() string {
	switch m {
	case RefModIn:
		return "&in"
	case RefModOut:
		return "&out"
	case RefModInOut:
		return "&inout"
	default:
		return ""
	}
}

// DataType is a fully-resolved type reference: which type, plus the
// const/handle/handle-to-const/reference modifiers layered on top of it.
// Two DataTypes are the same type iff every field compares equal —
// DataType is a plain value, safe to use as a map key.
type DataType struct {
	Hash          TypeHash
	Const         bool // pointee (or value) is const
	Handle        bool // this is a T@ handle, not a value of T
	HandleConst   bool // the handle itself cannot be reseated (T@ const)
	Ref           RefMod
}

// IsHandle reports whether the type is accessed through a handle.
func (d DataType) IsHandle() bool { return d.Handle }

// WithConst returns a copy of d with Const set.
func (d DataType) WithConst(c bool) DataType {
	d.Const = c
	return d
}

// WithHandle returns a copy of d with Handle set.
func (d DataType) WithHandle(h bool) DataType {
	d.Handle = h
	return d
}

// Equal reports whether d and other denote the exact same type, including
// modifiers. Overload resolution and ITable slot matching both need this
// stricter-than-assignability notion of sameness.
func (d DataType) Equal(other DataType) bool {
	return d == other
}
