package field

import "math/big"

// backend_bignum.go is the portable reference backend: every operation
// round-trips through math/big.Int. Promoted here to a first-class,
// selectable backend rather than a test-only oracle, giving callers a
// portable bignum-reference implementation among the interchangeable
// backends.

func bignumAdd(z, x, y *limbs, m *Modulus) {
	xi := toBigInt(x, m.n)
	yi := toBigInt(y, m.n)
	xi.Add(xi, yi)
	xi.Mod(xi, m.pInt)
	setFromBigInt(z, xi, m.n)
}

func bignumSub(z, x, y *limbs, m *Modulus) {
	xi := toBigInt(x, m.n)
	yi := toBigInt(y, m.n)
	xi.Sub(xi, yi)
	xi.Mod(xi, m.pInt)
	setFromBigInt(z, xi, m.n)
}

func bignumMul(z, x, y *limbs, m *Modulus) {
	incrementCallCounter(CCMulBignum)
	xi := toBigInt(x, m.n)
	yi := toBigInt(y, m.n)
	xi.Mul(xi, yi)
	xi.Mod(xi, m.pInt)
	setFromBigInt(z, xi, m.n)
}

func bignumSqr(z, x *limbs, m *Modulus) {
	bignumMul(z, x, x, m)
}

func bignumNeg(z, x *limbs, m *Modulus) {
	xi := toBigInt(x, m.n)
	xi.Neg(xi)
	xi.Mod(xi, m.pInt)
	setFromBigInt(z, xi, m.n)
}

func bignumIsZero(x *limbs, m *Modulus) bool {
	return x.isZero(m.n)
}

// invViaBigInt sets z to the modular inverse of x via big.Int.ModInverse,
// returning false (and setting z to zero) if x is zero. Every backend
// shares this one inversion routine rather than each hand-rolling its own
// fixed-width binary-GCD variant, which is easy to get subtly wrong at an
// arbitrary word count (see limbs_montgomery.go).
func invViaBigInt(z, x *limbs, m *Modulus) bool {
	xi := toBigInt(x, m.n)
	if xi.Sign() == 0 {
		z.setZero(maxWords)
		return false
	}
	inv := new(big.Int).ModInverse(xi, m.pInt)
	if inv == nil {
		z.setZero(maxWords)
		return false
	}
	setFromBigInt(z, inv, m.n)
	return true
}

var bignumOp = Op{
	Name:          "bignum",
	Add:           bignumAdd,
	Sub:           bignumSub,
	Mul:           bignumMul,
	Sqr:           bignumSqr,
	Neg:           bignumNeg,
	Inv:           invViaBigInt,
	FromCanonical: identityConv,
	ToCanonical:   identityConv,
	IsZero:        bignumIsZero,
}
