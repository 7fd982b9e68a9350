package token

// FNV-1a 32-bit constants.
const (
	fnvOffset = 0x811c9dc5
	fnvPrime  = 0x01000193
)

// Hash returns the 32-bit FNV-1a hash of name. The result is zero exactly
// when name is empty; a non-empty name hashing to zero is remapped to the
// offset basis so zero stays reserved for anonymous sections.
func Hash(name []byte) uint32 {
	if len(name) == 0 {
		return 0
	}
	h := uint32(fnvOffset)
	for _, c := range name {
		h ^= uint32(c)
		h *= fnvPrime
	}
	if h == 0 {
		h = fnvOffset
	}
	return h
}
