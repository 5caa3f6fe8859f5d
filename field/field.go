package field

import (
	"math/big"
)

// FieldElementInterface documents the intended surface of F[Tag]. It
// cannot actually be implemented as a vtable-free Go interface without
// sacrificing efficiency: a real interface would force every Add/Mul/...
// call through a boxed argument and a type assertion, which defeats the
// point of a fixed-capacity value type. It is kept here purely as
// documentation of the contract every F[Tag] instantiation honors.
type FieldElementInterface[SelfRead any] interface {
	IsZero() bool
	IsOne() bool
	SetOne()
	SetZero()
	Mul(x, y SelfRead)
	Add(x, y SelfRead)
	Sub(x, y SelfRead)
	Square(x SelfRead)
	Neg(x SelfRead)
	Inv(x SelfRead)
	Divide(x, y SelfRead)
	BigInt() *big.Int
	SetBigInt(x *big.Int)
	Uint64() (uint64, error)
	SetUint64(x uint64)
	Normalize()
	IsEqual(other SelfRead) bool
	Sign() int
	Jacobi() int
	AddEq(y SelfRead)
	SubEq(y SelfRead)
	SquareEq()
	NegEq()
}

// F is a field element of the prime field described by Tag. Tag is a
// zero-sized type whose Describe method returns the (shared, already
// initialized) Modulus every F[Tag] value is arithmetic modulo. The zero
// value of F[Tag] is the field element 0.
//
// The internal representation depends on Tag's Modulus's active backend
// (the canonical value itself for the reference and Barrett backends, a
// value scaled by the Montgomery radix R for the Montgomery backend); both
// are always fully reduced to [0,p), so under a given backend each field
// element has exactly one stored form. IsEqual compares canonical values
// and so does not depend on the backend.
type F[Tag Descriptor] struct {
	value limbs
}

func descriptorOf[Tag Descriptor]() *Modulus {
	var tag Tag
	return tag.Describe()
}

// SetZero sets z to 0 and returns z for chaining.
func (z *F[Tag]) SetZero() *F[Tag] {
	z.value.setZero(maxWords)
	return z
}

// SetOne sets z to 1 and returns z for chaining.
func (z *F[Tag]) SetOne() *F[Tag] {
	m := descriptorOf[Tag]()
	var one limbs
	one[0] = 1
	m.active.FromCanonical(&z.value, &one, m)
	return z
}

// IsZero reports whether z is the additive identity.
func (z *F[Tag]) IsZero() bool {
	m := descriptorOf[Tag]()
	return m.active.IsZero(&z.value, m)
}

// IsOne reports whether z is the multiplicative identity.
func (z *F[Tag]) IsOne() bool {
	var one F[Tag]
	one.SetOne()
	return z.IsEqual(&one)
}

// Add sets z = x + y.
func (z *F[Tag]) Add(x, y *F[Tag]) *F[Tag] {
	m := descriptorOf[Tag]()
	m.active.Add(&z.value, &x.value, &y.value, m)
	return z
}

// AddEq sets z += y.
func (z *F[Tag]) AddEq(y *F[Tag]) *F[Tag] { return z.Add(z, y) }

// Sub sets z = x - y.
func (z *F[Tag]) Sub(x, y *F[Tag]) *F[Tag] {
	m := descriptorOf[Tag]()
	m.active.Sub(&z.value, &x.value, &y.value, m)
	return z
}

// SubEq sets z -= y.
func (z *F[Tag]) SubEq(y *F[Tag]) *F[Tag] { return z.Sub(z, y) }

// Mul sets z = x * y.
func (z *F[Tag]) Mul(x, y *F[Tag]) *F[Tag] {
	m := descriptorOf[Tag]()
	m.active.Mul(&z.value, &x.value, &y.value, m)
	return z
}

// MulEq sets z *= y.
func (z *F[Tag]) MulEq(y *F[Tag]) *F[Tag] { return z.Mul(z, y) }

// Square sets z = x * x.
func (z *F[Tag]) Square(x *F[Tag]) *F[Tag] {
	m := descriptorOf[Tag]()
	m.active.Sqr(&z.value, &x.value, m)
	return z
}

// SquareEq sets z = z * z.
func (z *F[Tag]) SquareEq() *F[Tag] { return z.Square(z) }

// Neg sets z = -x.
func (z *F[Tag]) Neg(x *F[Tag]) *F[Tag] {
	m := descriptorOf[Tag]()
	m.active.Neg(&z.value, &x.value, m)
	return z
}

// NegEq sets z = -z.
func (z *F[Tag]) NegEq() *F[Tag] { return z.Neg(z) }

// Inv sets z = x^-1, or z = 0 if x is zero. Inv never panics; use TryInv
// to be told about the zero case.
func (z *F[Tag]) Inv(x *F[Tag]) *F[Tag] {
	m := descriptorOf[Tag]()
	m.active.Inv(&z.value, &x.value, m)
	return z
}

// InvEq sets z = z^-1.
func (z *F[Tag]) InvEq() *F[Tag] { return z.Inv(z) }

// TryInv sets z = x^-1 and returns nil, or leaves z set to zero and
// returns ErrDivisionByZero if x is zero.
func (z *F[Tag]) TryInv(x *F[Tag]) error {
	m := descriptorOf[Tag]()
	if !m.active.Inv(&z.value, &x.value, m) {
		return ErrDivisionByZero
	}
	return nil
}

// Divide sets z = x / y, or z = 0 if y is zero.
func (z *F[Tag]) Divide(x, y *F[Tag]) *F[Tag] {
	var inv F[Tag]
	inv.Inv(y)
	return z.Mul(x, &inv)
}

// DivideEq sets z /= y.
func (z *F[Tag]) DivideEq(y *F[Tag]) *F[Tag] { return z.Divide(z, y) }

// Normalize recomputes z's internal representation from its canonical
// value. Every backend already keeps values fully reduced to a single
// representative, so this leaves z's stored words unchanged; arithmetic
// methods never require it.
func (z *F[Tag]) Normalize() *F[Tag] {
	m := descriptorOf[Tag]()
	var canon limbs
	m.active.ToCanonical(&canon, &z.value, m)
	m.active.FromCanonical(&z.value, &canon, m)
	return z
}

// IsEqual reports whether z and other represent the same field element.
func (z *F[Tag]) IsEqual(other *F[Tag]) bool {
	m := descriptorOf[Tag]()
	var a, b limbs
	m.active.ToCanonical(&a, &z.value, m)
	m.active.ToCanonical(&b, &other.value, m)
	return a == b
}

// SetUint64 sets z to x mod p.
func (z *F[Tag]) SetUint64(x uint64) *F[Tag] {
	m := descriptorOf[Tag]()
	var canon limbs
	canon[0] = x
	if m.n == 1 {
		// p fits in one word, so x itself may be >= p.
		canon[0] = x % m.p[0]
	}
	m.active.FromCanonical(&z.value, &canon, m)
	return z
}

// Uint64 returns z's canonical value as a uint64, or ErrDoesNotFit if it
// does not fit.
func (z *F[Tag]) Uint64() (uint64, error) {
	m := descriptorOf[Tag]()
	var canon limbs
	m.active.ToCanonical(&canon, &z.value, m)
	for i := 1; i < m.n; i++ {
		if canon[i] != 0 {
			return 0, ErrDoesNotFit
		}
	}
	return canon[0], nil
}

// SetBigInt sets z to x mod p.
func (z *F[Tag]) SetBigInt(x *big.Int) *F[Tag] {
	m := descriptorOf[Tag]()
	reduced := new(big.Int).Mod(x, m.pInt)
	var canon limbs
	setFromBigInt(&canon, reduced, m.n)
	m.active.FromCanonical(&z.value, &canon, m)
	return z
}

// BigInt returns z's canonical value as a *big.Int in [0,p).
func (z *F[Tag]) BigInt() *big.Int {
	m := descriptorOf[Tag]()
	var canon limbs
	m.active.ToCanonical(&canon, &z.value, m)
	return toBigInt(&canon, m.n)
}

// Sign returns -1, 0 or +1 depending on whether z, interpreted as its
// representative in (-p/2, p/2), is negative, zero or positive: -1 exactly
// when z's canonical value exceeds (p-1)/2.
func (z *F[Tag]) Sign() int {
	m := descriptorOf[Tag]()
	if z.IsZero() {
		return 0
	}
	var canon limbs
	m.active.ToCanonical(&canon, &z.value, m)
	v := toBigInt(&canon, m.n)
	if v.Cmp(m.half) > 0 {
		return -1
	}
	return 1
}

// DivBy2 sets z = x * 2^-1 mod p.
func (z *F[Tag]) DivBy2(x *F[Tag]) *F[Tag] {
	m := descriptorOf[Tag]()
	var canon limbs
	m.active.ToCanonical(&canon, &x.value, m)
	v := toBigInt(&canon, m.n)
	v.Mul(v, m.inv2)
	v.Mod(v, m.pInt)
	setFromBigInt(&canon, v, m.n)
	m.active.FromCanonical(&z.value, &canon, m)
	return z
}

// DivBy2Eq sets z = z * 2^-1 mod p.
func (z *F[Tag]) DivBy2Eq() *F[Tag] { return z.DivBy2(z) }

// Jacobi returns the Jacobi (Legendre, since p is prime) symbol of z:
// +1 if z is a nonzero square, -1 if z is a non-square, 0 if z is zero.
func (z *F[Tag]) Jacobi() int {
	m := descriptorOf[Tag]()
	if z.IsZero() {
		return 0
	}
	var canon limbs
	m.active.ToCanonical(&canon, &z.value, m)
	v := toBigInt(&canon, m.n)
	return big.Jacobi(v, m.pInt)
}

// Exp sets z = x^e. A negative e computes x's inverse raised to -e; e = 0
// yields 1.
func (z *F[Tag]) Exp(x *F[Tag], e *big.Int) *F[Tag] {
	base := *x
	if e.Sign() < 0 {
		base.InvEq()
		e = new(big.Int).Neg(e)
	}
	var result F[Tag]
	result.SetOne()
	for i := e.BitLen() - 1; i >= 0; i-- {
		result.SquareEq()
		if e.Bit(i) == 1 {
			result.MulEq(&base)
		}
	}
	*z = result
	return z
}

// ExpUint64 sets z = x^e.
func (z *F[Tag]) ExpUint64(x *F[Tag], e uint64) *F[Tag] {
	return z.Exp(x, new(big.Int).SetUint64(e))
}
