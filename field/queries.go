package field

import "math/big"

// This file supplies per-type static accessors (GetModulo/GetP/GetOp/
// GetBitSize/UnitSize/IsFullBit/IsMont/One/GetIoSeparator) and per-value
// queries (IsOdd/IsValid/IsNegative/Compare/Less/CompareRaw) that field.go
// and serialize.go (which holds SetIoMode/GetIoMode) don't already cover
// directly.

// BitSize returns the exact bit length of the modulus.
func (m *Modulus) BitSize() int { return m.bitLen }

// UnitSize returns the word size in bytes (always 8: this package is
// 64-bit-word-only).
func (m *Modulus) UnitSize() int { return 8 }

// IsFullBit reports whether the modulus's bit length is an exact multiple
// of the word size, i.e. whether the top word uses its high bit.
func (m *Modulus) IsFullBit() bool { return m.bitLen%64 == 0 }

// IsMont reports whether the active backend uses Montgomery representation.
func (m *Modulus) IsMont() bool { return m.kind == BackendMontgomery }

// GetOp returns the currently active Op table. Exposed for tests that need
// to invoke backend entry points directly (e.g. differential testing
// across backends); ordinary callers should go through F[Tag] instead.
func (m *Modulus) GetOp() Op { return m.active }

// GetModulo returns the *Modulus descriptor bound to Tag, exactly as Tag's
// Describe method returns it; it does not check that the Modulus was
// initialized (a Tag whose Describe returns nil yields nil).
func GetModulo[Tag Descriptor]() *Modulus { return descriptorOf[Tag]() }

// GetP returns a copy of the prime modulus bound to Tag.
func GetP[Tag Descriptor]() *big.Int { return descriptorOf[Tag]().Prime() }

// GetBitSize returns the bit length of the modulus bound to Tag.
func GetBitSize[Tag Descriptor]() int { return descriptorOf[Tag]().bitLen }

// One returns the multiplicative identity of Tag's field.
func One[Tag Descriptor]() F[Tag] {
	var one F[Tag]
	one.SetOne()
	return one
}

// IsOdd reports whether z's canonical value is odd.
func (z *F[Tag]) IsOdd() bool {
	m := descriptorOf[Tag]()
	var canon limbs
	m.active.ToCanonical(&canon, &z.value, m)
	return canon[0]&1 == 1
}

// IsValid reports whether z's stored words represent a value in [0,p),
// the validity invariant every backend's arithmetic is required to
// preserve after any operation, Montgomery included: the stored words are
// always a single fully reduced representative, never a lazily-bounded
// non-unique one.
func (z *F[Tag]) IsValid() bool {
	m := descriptorOf[Tag]()
	return cmp(&z.value, &m.p, m.n) < 0
}

// IsNegative reports whether z's canonical value is > (p-1)/2, the sign
// convention Sign uses.
func (z *F[Tag]) IsNegative() bool { return z.Sign() < 0 }

// Compare returns -1, 0 or +1 according to the canonical (fully
// demontgomerized) values of x and y; it defines a total order on the
// field's residues.
func Compare[Tag Descriptor](x, y *F[Tag]) int {
	m := descriptorOf[Tag]()
	var a, b limbs
	m.active.ToCanonical(&a, &x.value, m)
	m.active.ToCanonical(&b, &y.value, m)
	return cmp(&a, &b, m.n)
}

// Less reports whether x's canonical value is strictly less than y's.
func Less[Tag Descriptor](x, y *F[Tag]) bool { return Compare(x, y) < 0 }

// CompareRaw compares x and y's stored internal words directly, without
// demontgomerizing first. Only meaningful when the active backend is not
// Montgomery: under Montgomery the stored words are v*R mod p, whose order
// is unrelated to the order of the canonical values and is explicitly
// unspecified.
func CompareRaw[Tag Descriptor](x, y *F[Tag]) int {
	m := descriptorOf[Tag]()
	return cmp(&x.value, &y.value, m.n)
}

// GetIoSeparator returns the separator a composite type built on top of
// F[Tag] would use between textual field elements: a single space for
// text IoModes, empty string for the binary Array/ArrayRaw modes.
func GetIoSeparator(mode IoMode) string {
	if mode.isArray() || mode.isArrayRaw() {
		return ""
	}
	return " "
}
