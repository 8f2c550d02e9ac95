// Package types is the registry-facing type system: content-addressed
// TypeHash identity, DataType (a type plus its const/handle/reference
// modifiers), the reference-kind legality matrix, and the TypeEntry family
// (Primitive/Class/Enum/Interface/Funcdef/TemplateParam).
package types

import (
	"hash/fnv"
	"strconv"
)

// TypeHash is the 64-bit content hash that identifies a type across the
// whole compilation: two TypeEntry values with the same qualified name and
// shape hash equal, regardless of which pass or module produced them. AST
// nodes and bytecode refer to types by TypeHash, never by pointer — this
// is what lets the registry resolve forward references (a class that
// mentions a type declared later in the same file) without two-pass
// pointer patching.
type TypeHash uint64

// String renders a TypeHash as an unpadded hex string, for diagnostics
// and snapshot tests.
func (h TypeHash) String() string {
	return "0x" + strconv.FormatUint(uint64(h), 16)
}

// HashPrimitive computes the stable hash for a built-in primitive, keyed
// only by name — primitives have no shape beyond their name.
func HashPrimitive(name string) TypeHash {
	return hashString("primitive:" + name)
}

// HashNominal computes the hash for a class/interface/enum/funcdef: keyed
// by qualified name and kind tag, so a class and an enum that happen to
// share a name in different namespaces never collide.
func HashNominal(kind TypeKind, qualifiedName string) TypeHash {
	return hashString(kind.String() + ":" + qualifiedName)
}

// HashTemplateInstantiation computes the hash for a template instantiation
// (e.g. `array<int>`), keyed by the generic type's hash plus its ordered
// argument hashes, so `array<int>` and `array<string>` never collide and
// repeated instantiations of the same arguments share one TypeHash.
func HashTemplateInstantiation(generic TypeHash, args []TypeHash) TypeHash {
	h := fnv.New64a()
	writeUint64(h, uint64(generic))
	for _, a := range args {
		writeUint64(h, uint64(a))
	}
	return TypeHash(h.Sum64())
}

func hashString(s string) TypeHash {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return TypeHash(h.Sum64())
}

func writeUint64(h interface{ Write([]byte) (int, error) }, v uint64) {
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
	_, _ = h.Write(buf[:])
}
