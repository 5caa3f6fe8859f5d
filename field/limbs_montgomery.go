package field

import "math/bits"

// Montgomery multiplication over a runtime word count n, using the
// separated-operand-scanning (SOS) form of Montgomery reduction: build
// the full 2n-word product once, then cancel its low n words one word at
// a time by adding suitable multiples of p. Needs two precomputed
// constants (R^2 mod p and -p^-1 mod 2^64); the result is then fully
// reduced to [0,p) by reduceModP, with every carry chain kept a single
// straight loop rather than interleaved per-word carry variables.

// precomputeMontgomery computes R^2 mod p (R = 2^(64n)) and -p^-1 mod
// 2^64, the two constants Montgomery reduction needs.
func (m *Modulus) precomputeMontgomery() {
	n := m.n
	m.montNInv0 = negModInverse64(m.p[0])

	numerator := make([]uint64, 4*n+1)
	bitpos := 128 * n
	numerator[bitpos/64] = 1 << uint(bitpos%64)
	den := make([]uint64, 2*n)
	copy(den, m.p[:n])
	q := divideWords(numerator, den)
	qp := make([]uint64, len(numerator))
	mulWideSlice(qp, q, den)
	rem := make([]uint64, len(numerator))
	subSlice(rem, numerator, qp)
	m.montR2.setZero(maxWords)
	for i := 0; i < n && i < len(rem); i++ {
		m.montR2[i] = rem[i]
	}
}

// negModInverse64 returns -x^-1 mod 2^64 for odd x via Newton-Raphson
// doubling of precision: y_{k+1} = y_k * (2 - x*y_k) doubles the number
// of correct low bits each round, starting from the fact that any odd x
// is its own inverse mod 8.
func negModInverse64(x uint64) uint64 {
	y := x
	for i := 0; i < 5; i++ { // 3,6,12,24,48,96 correct bits - more than the needed 64
		y = y * (2 - x*y)
	}
	return -y
}

// addScaledAt adds q*p (p has n words) into T starting at word offset,
// propagating carry as far as needed into the rest of T.
func addScaledAt(T []uint64, p []uint64, q uint64, offset int) {
	var carry uint64
	for j := 0; j < len(p); j++ {
		hi, lo := bits.Mul64(q, p[j])
		var c1, c2 uint64
		lo, c1 = bits.Add64(lo, carry, 0) // carry is a full word, not a 0/1 carry bit
		T[offset+j], c2 = bits.Add64(T[offset+j], lo, 0)
		carry = hi + c1 + c2 // q*p[j] + T[offset+j] + carry < 2^128: cannot overflow
	}
	k := offset + len(p)
	for carry != 0 {
		T[k], carry = bits.Add64(T[k], carry, 0)
		k++
	}
}

// mulMontgomery computes z = x*y / R mod p (Montgomery multiplication)
// for a runtime word count n. The SOS reduction loop below leaves an
// exact integer (no modular reduction yet) spanning
// T[n:2n+2] that is congruent to x*y*R^-1 mod p; reduceModP brings it
// into the canonical range exactly, via the same long-division routine
// the Barrett backend uses, rather than relying on a by-hand overflow
// bound for how many conditional subtractions a lazy reduction would
// need for an arbitrary n.
func mulMontgomery(z, x, y *limbs, m *Modulus) {
	incrementCallCounter(CCMulMontgomery)
	n := m.n
	xs := make([]uint64, n)
	ys := make([]uint64, n)
	ps := make([]uint64, n)
	copy(xs, x[:n])
	copy(ys, y[:n])
	copy(ps, m.p[:n])

	T := make([]uint64, 2*n+4)
	mulWideSlice(T[:2*n], xs, ys)

	for i := 0; i < n; i++ {
		q := T[i] * m.montNInv0
		addScaledAt(T, ps, q, i)
	}

	reduceModP(z, T[n:], m)
}

// reduceModP reduces an arbitrary-length non-negative value raw modulo
// p, writing the canonical n-word result to z.
func reduceModP(z *limbs, raw []uint64, m *Modulus) {
	n := m.n
	den := make([]uint64, n)
	copy(den, m.p[:n])

	num := make([]uint64, len(raw))
	copy(num, raw)

	q := divideWords(num, den)
	qp := make([]uint64, len(num))
	mulWideSlice(qp, q, den)

	rem := make([]uint64, len(num))
	subSlice(rem, num, qp)

	z.setZero(maxWords)
	for i := 0; i < n && i < len(rem); i++ {
		z[i] = rem[i]
	}
	reduceFinal(z, m)
}

// montgomeryAdd and montgomerySub operate on operands that are themselves
// always held fully reduced to [0,p): the addition of two such values
// overflows by at most one bit, which add_a's own carry return reports
// directly, so a single conditional subtraction of p (exactly as
// barrettAdd does) is enough to bring the result back into [0,p). The
// Montgomery multiplier R cancels out of addition and subtraction, so
// operating on the R-scaled representation this way is equivalent to
// operating on the canonical value directly.
func montgomeryAdd(z, x, y *limbs, m *Modulus) {
	n := m.n
	carry := add_a(z, x, y, n)
	if carry != 0 || cmp(z, &m.p, n) >= 0 {
		sub_a(z, z, &m.p, n)
	}
}

func montgomerySub(z, x, y *limbs, m *Modulus) {
	n := m.n
	borrow := sub_a(z, x, y, n)
	if borrow != 0 {
		add_a(z, z, &m.p, n)
	}
}

func montgomeryNeg(z, x *limbs, m *Modulus) {
	n := m.n
	if x.isZero(n) {
		z.setZero(maxWords)
		return
	}
	sub_a(z, &m.p, x, n)
}

func montgomeryMul(z, x, y *limbs, m *Modulus) {
	mulMontgomery(z, x, y, m)
}

func montgomerySqr(z, x *limbs, m *Modulus) {
	mulMontgomery(z, x, x, m)
}

func montgomeryIsZero(x *limbs, m *Modulus) bool {
	return x.isZero(m.n)
}

// montgomeryToCanonical converts from the Montgomery-domain representation
// (v*R mod p) to the canonical integer v in [0,p), by reducing with a
// multiplicand of 1, which is equivalent to dividing by R modulo p.
// reduceModP (called by mulMontgomery) already leaves its result fully
// reduced, so no further correction is needed here.
func montgomeryToCanonical(z, x *limbs, m *Modulus) {
	var one limbs
	one[0] = 1
	mulMontgomery(z, x, &one, m)
}

// montgomeryFromCanonical converts a canonical integer in [0,p) into
// Montgomery domain by multiplying with the precomputed R^2 mod p.
func montgomeryFromCanonical(z, x *limbs, m *Modulus) {
	mulMontgomery(z, x, &m.montR2, m)
}

var montgomeryOp = Op{
	Name:          "montgomery",
	Add:           montgomeryAdd,
	Sub:           montgomerySub,
	Mul:           montgomeryMul,
	Sqr:           montgomerySqr,
	Neg:           montgomeryNeg,
	Inv:           invMontgomery,
	FromCanonical: montgomeryFromCanonical,
	ToCanonical:   montgomeryToCanonical,
	IsZero:        montgomeryIsZero,
}

// invMontgomery inverts x (Montgomery domain) by round-tripping through
// the canonical reference inverse: convert to canonical, invert via
// big.Int, convert back. A fixed-width binary-GCD inverse would need a
// signed-accumulator width bound re-derived per word count, which is easy
// to get subtly wrong; reusing the reference backend's big.Int inversion
// avoids that risk entirely.
func invMontgomery(z, x *limbs, m *Modulus) bool {
	var canonical limbs
	montgomeryToCanonical(&canonical, x, m)
	if canonical.isZero(m.n) {
		z.setZero(maxWords)
		return false
	}
	var inv limbs
	if !invViaBigInt(&inv, &canonical, m) {
		z.setZero(maxWords)
		return false
	}
	montgomeryFromCanonical(z, &inv, m)
	return true
}
