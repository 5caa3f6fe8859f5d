package field

import "math/bits"

// Barrett reduction over a runtime word count n <= maxWords, using plain
// loops in place of hand-unrolled per-width carry chains.

// precomputeBarrett computes mu = floor(2^(128n) / p), the reciprocal of p
// used by the Barrett backend to reduce a 2n-word product. The actual
// reduction below recomputes the quotient with the same long-division
// routine rather than reusing mu as an approximate multiply-and-correct
// step (the classical Barrett shortcut): mu is kept and exposed mainly so
// that a future optimized reduction pass has the expensive reciprocal
// already available, but the current reduceBarrett_fa is deliberately the
// simple, obviously-correct exact-division version, since the
// approximate variant's off-by-one correction logic is easy to get
// subtly wrong.
func (m *Modulus) precomputeBarrett() {
	n := m.n
	numerator := make([]uint64, 4*n+1)
	bitpos := 128 * n
	numerator[bitpos/64] = 1 << uint(bitpos%64)

	divisor := make([]uint64, 2*n)
	copy(divisor, m.p[:n])

	quotient := divideWords(numerator, divisor)
	for i := 0; i < len(quotient) && i < maxWords; i++ {
		m.barrettMu[i] = quotient[i]
	}
}

// divideWords computes floor(num/den) via long division on bit-vectors
// represented as little-endian uint64 slices. This is only ever called
// once per Modulus (at InitPrime time), so it favors clarity over speed.
func divideWords(num, den []uint64) []uint64 {
	nbits := len(num) * 64
	quotient := make([]uint64, len(num))
	var remainder []uint64 = make([]uint64, len(num)+1)

	denBits := bitLenOfSlice(den)
	if denBits == 0 {
		return quotient
	}

	for i := nbits - 1; i >= 0; i-- {
		// remainder = remainder*2 + bit i of num
		carry := (num[i/64] >> uint(i%64)) & 1
		for j := 0; j < len(remainder); j++ {
			newCarry := remainder[j] >> 63
			remainder[j] = (remainder[j] << 1) | carry
			carry = newCarry
		}
		if geSlice(remainder, den) {
			subSlice(remainder, remainder, den)
			quotient[i/64] |= 1 << uint(i%64)
		}
	}
	return quotient
}

func bitLenOfSlice(x []uint64) int {
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != 0 {
			return i*64 + bits.Len64(x[i])
		}
	}
	return 0
}

func geSlice(x, y []uint64) bool {
	n := len(x)
	if len(y) > n {
		n = len(y)
	}
	for i := n - 1; i >= 0; i-- {
		var xv, yv uint64
		if i < len(x) {
			xv = x[i]
		}
		if i < len(y) {
			yv = y[i]
		}
		if xv != yv {
			return xv > yv
		}
	}
	return true // equal
}

func subSlice(z, x, y []uint64) {
	var borrow uint64
	for i := 0; i < len(z); i++ {
		var xv, yv uint64
		if i < len(x) {
			xv = x[i]
		}
		if i < len(y) {
			yv = y[i]
		}
		z[i], borrow = bits.Sub64(xv, yv, borrow)
	}
}

// mulWide_a computes the full 2n-word product z = x*y (both n words).
func mulWide_a(z *[2 * maxWords]uint64, x, y *limbs, n int) {
	for i := 0; i < 2*n; i++ {
		z[i] = 0
	}
	for i := 0; i < n; i++ {
		var carry uint64
		xi := x[i]
		if xi == 0 {
			continue
		}
		for j := 0; j < n; j++ {
			hi, lo := bits.Mul64(xi, y[j])
			var c1 uint64
			z[i+j], c1 = bits.Add64(z[i+j], lo, 0)
			hi, c1 = bits.Add64(hi, 0, c1)
			z[i+j+1], carry = bits.Add64(z[i+j+1], hi, carry)
			carry += c1
		}
		// propagate any remaining carry
		k := i + n + 1
		for carry != 0 && k < 2*n {
			z[k], carry = bits.Add64(z[k], carry, 0)
			k++
		}
	}
}

// reduceBarrett_fa reduces a 2n-word value x modulo p (given by m),
// writing a fully-reduced n-word result to z. See precomputeBarrett for
// why this computes the quotient directly instead of via mu.
func reduceBarrett_fa(z *limbs, x *[2 * maxWords]uint64, m *Modulus) {
	n := m.n

	full := make([]uint64, 2*n)
	copy(full, x[:2*n])
	den := make([]uint64, n)
	copy(den, m.p[:n])

	q := divideWords(full, den)

	var qp = make([]uint64, 2*n)
	mulWideSlice(qp, q, den)

	remFull := make([]uint64, 2*n)
	subSlice(remFull, full, qp)
	for i := 0; i < n; i++ {
		z[i] = remFull[i]
	}
	for i := n; i < maxWords; i++ {
		z[i] = 0
	}
	reduceFinal(z, m)
}

func mulWideSlice(z, x, y []uint64) {
	for i := range z {
		z[i] = 0
	}
	for i := 0; i < len(x); i++ {
		var carry uint64
		xi := x[i]
		if xi == 0 {
			continue
		}
		for j := 0; j < len(y); j++ {
			if i+j >= len(z) {
				break
			}
			hi, lo := bits.Mul64(xi, y[j])
			var c1 uint64
			z[i+j], c1 = bits.Add64(z[i+j], lo, 0)
			hi, c1 = bits.Add64(hi, 0, c1)
			if i+j+1 < len(z) {
				z[i+j+1], carry = bits.Add64(z[i+j+1], hi, carry)
			}
			carry += c1
		}
		k := i + len(y) + 1
		for carry != 0 && k < len(z) {
			z[k], carry = bits.Add64(z[k], carry, 0)
			k++
		}
	}
}

// reduceFinal subtracts p from z (n words) while z >= p.
func reduceFinal(z *limbs, m *Modulus) {
	n := m.n
	for cmp(z, &m.p, n) >= 0 {
		sub_a(z, z, &m.p, n)
	}
}

// barrettAdd/barrettSub/barrettNeg/barrettMul/barrettSqr implement Op for
// the canonical (non-Montgomery) Barrett-reduction backend.

func barrettAdd(z, x, y *limbs, m *Modulus) {
	n := m.n
	carry := add_a(z, x, y, n)
	if carry != 0 || cmp(z, &m.p, n) >= 0 {
		sub_a(z, z, &m.p, n)
	}
}

func barrettSub(z, x, y *limbs, m *Modulus) {
	n := m.n
	borrow := sub_a(z, x, y, n)
	if borrow != 0 {
		add_a(z, z, &m.p, n)
	}
}

func barrettNeg(z, x *limbs, m *Modulus) {
	n := m.n
	if x.isZero(n) {
		z.setZero(maxWords)
		return
	}
	sub_a(z, &m.p, x, n)
}

func barrettMul(z, x, y *limbs, m *Modulus) {
	incrementCallCounter(CCMulBarrett)
	var wide [2 * maxWords]uint64
	mulWide_a(&wide, x, y, m.n)
	reduceBarrett_fa(z, &wide, m)
}

func barrettSqr(z, x *limbs, m *Modulus) {
	barrettMul(z, x, x, m)
}

func barrettIsZero(x *limbs, m *Modulus) bool {
	return x.isZero(m.n)
}

func identityConv(z, x *limbs, m *Modulus) {
	*z = *x
}

var barrettOp = Op{
	Name:          "barrett",
	Add:           barrettAdd,
	Sub:           barrettSub,
	Mul:           barrettMul,
	Sqr:           barrettSqr,
	Neg:           barrettNeg,
	Inv:           invViaBigInt,
	FromCanonical: identityConv,
	ToCanonical:   identityConv,
	IsZero:        barrettIsZero,
}
