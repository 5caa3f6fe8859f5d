package field

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/arcfield/prime/internal/testutils"
)

// smallTag binds a small, easy-to-brute-force prime (p=1009) for tests
// that want exhaustive or near-exhaustive coverage.
type smallTag struct{}

var smallModulus = mustInit("1009")

func (smallTag) Describe() *Modulus { return smallModulus }

// bigTag binds a large (521-bit, Mersenne) prime - the NIST P-521 prime -
// for tests that exercise multi-word limbs.
type bigTag struct{}

var bigModulus = mustInit("6864797660130609714981900799081393217269435300143305409394463459185543183397656052122559640661454554977296311391480858037121987999716643812574028291115057151")

func (bigTag) Describe() *Modulus { return bigModulus }

func mustInit(dec string) *Modulus {
	p, ok := new(big.Int).SetString(dec, 10)
	if !ok {
		panic("bad test modulus literal")
	}
	m, err := InitPrime(p)
	if err != nil {
		panic(err)
	}
	return m
}

type tag13 struct{}

var modulus13 = mustInit("13")

func (tag13) Describe() *Modulus { return modulus13 }

func TestSmallModularMultiplication(t *testing.T) {
	// 3 * 9 mod 13 == 1
	var a, nine F[tag13]
	a.SetUint64(3)
	nine.SetUint64(9)
	a.MulEq(&nine)
	var one F[tag13]
	one.SetOne()
	testutils.FatalUnless(t, a.IsEqual(&one), "3*9 mod 13 should be 1, got %v", a.String())
}

func TestRingAxioms(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		var x, y, z F[smallTag]
		x.SetRandomUnsafe(r)
		y.SetRandomUnsafe(r)
		z.SetRandomUnsafe(r)

		// (x+y)+z == x+(y+z)
		var lhs, rhs F[smallTag]
		var tmp F[smallTag]
		tmp.Add(&x, &y)
		lhs.Add(&tmp, &z)
		tmp.Add(&y, &z)
		rhs.Add(&x, &tmp)
		testutils.FatalUnless(t, lhs.IsEqual(&rhs), "addition not associative")

		// x+y == y+x
		lhs.Add(&x, &y)
		rhs.Add(&y, &x)
		testutils.FatalUnless(t, lhs.IsEqual(&rhs), "addition not commutative")

		// x*(y+z) == x*y+x*z
		tmp.Add(&y, &z)
		lhs.Mul(&x, &tmp)
		var xy, xz F[smallTag]
		xy.Mul(&x, &y)
		xz.Mul(&x, &z)
		rhs.Add(&xy, &xz)
		testutils.FatalUnless(t, lhs.IsEqual(&rhs), "distributivity failed")

		// x*y == y*x
		lhs.Mul(&x, &y)
		rhs.Mul(&y, &x)
		testutils.FatalUnless(t, lhs.IsEqual(&rhs), "multiplication not commutative")

		// x*1 == x
		var one F[smallTag]
		one.SetOne()
		lhs.Mul(&x, &one)
		testutils.FatalUnless(t, lhs.IsEqual(&x), "x*1 != x")

		// x+0 == x
		var zero F[smallTag]
		zero.SetZero()
		lhs.Add(&x, &zero)
		testutils.FatalUnless(t, lhs.IsEqual(&x), "x+0 != x")
	}
}

func TestInverse(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 300; i++ {
		var x F[smallTag]
		x.SetRandomUnsafe(r)
		if x.IsZero() {
			continue
		}
		var inv, prod F[smallTag]
		inv.Inv(&x)
		prod.Mul(&inv, &x)
		testutils.FatalUnless(t, prod.IsOne(), "inv(x)*x != 1 for x=%v", x.String())
	}

	var zero, invZero F[smallTag]
	zero.SetZero()
	invZero.Inv(&zero)
	testutils.FatalUnless(t, invZero.IsZero(), "inv(0) must be 0, got %v", invZero.String())

	var err error
	var z F[smallTag]
	err = z.TryInv(&zero)
	testutils.FatalUnless(t, err == ErrDivisionByZero, "TryInv(0) should report ErrDivisionByZero")
}

func TestNegation(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		var x, negX, doubleNeg, sum F[smallTag]
		x.SetRandomUnsafe(r)
		negX.Neg(&x)
		doubleNeg.Neg(&negX)
		testutils.FatalUnless(t, doubleNeg.IsEqual(&x), "-(-x) != x")
		sum.Add(&x, &negX)
		testutils.FatalUnless(t, sum.IsZero(), "x + (-x) != 0")
	}
	var zero, negZero F[smallTag]
	zero.SetZero()
	negZero.Neg(&zero)
	testutils.FatalUnless(t, negZero.IsZero(), "-0 != 0")
}

func TestSquaringMatchesMul(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	for i := 0; i < 200; i++ {
		var x, sq, mul F[smallTag]
		x.SetRandomUnsafe(r)
		sq.Square(&x)
		mul.Mul(&x, &x)
		testutils.FatalUnless(t, sq.IsEqual(&mul), "sqr(x) != x*x")
	}
}

func TestDivBy2(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for i := 0; i < 200; i++ {
		var x, half, doubled F[smallTag]
		x.SetRandomUnsafe(r)
		half.DivBy2(&x)
		var two F[smallTag]
		two.SetUint64(2)
		doubled.Mul(&half, &two)
		testutils.FatalUnless(t, doubled.IsEqual(&x), "divBy2(x)*2 != x")
	}
}

func TestExpMatchesRepeatedMultiplication(t *testing.T) {
	var base F[smallTag]
	base.SetUint64(12345 % 1009)

	var acc F[smallTag]
	acc.SetOne()
	for i := 0; i <= 100; i++ {
		var byExp F[smallTag]
		byExp.ExpUint64(&base, uint64(i))
		testutils.FatalUnless(t, acc.IsEqual(&byExp), "pow(x,%d) mismatch", i)
		acc.MulEq(&base)
	}

	// pow(x, p-1) == 1
	pMinus1 := new(big.Int).Sub(smallModulus.Prime(), big.NewInt(1))
	var shouldBeOne F[smallTag]
	shouldBeOne.Exp(&base, pMinus1)
	testutils.FatalUnless(t, shouldBeOne.IsOne(), "pow(x,p-1) != 1")

	// pow(x, p) == x
	var shouldBeX F[smallTag]
	shouldBeX.Exp(&base, smallModulus.Prime())
	testutils.FatalUnless(t, shouldBeX.IsEqual(&base), "pow(x,p) != x")
}

func TestCompareTotalOrder(t *testing.T) {
	r := rand.New(rand.NewSource(6))
	var negCount int
	for v := int64(0); v < smallModulus.Prime().Int64(); v++ {
		var x F[smallTag]
		x.SetUint64(uint64(v))
		if x.IsNegative() {
			negCount++
		}
	}
	// |{x : isNegative(x)}| == (p-1)/2
	want := (smallModulus.Prime().Int64() - 1) / 2
	testutils.FatalUnless(t, int64(negCount) == want, "expected %d negative residues, got %d", want, negCount)

	for i := 0; i < 100; i++ {
		var a, b F[smallTag]
		a.SetRandomUnsafe(r)
		b.SetRandomUnsafe(r)
		c := Compare(&a, &b)
		d := Compare(&b, &a)
		testutils.FatalUnless(t, c == -d, "Compare not antisymmetric")
		if a.IsEqual(&b) {
			testutils.FatalUnless(t, c == 0, "equal elements must compare equal")
		}
	}
}

func TestIntegerRoundTrip(t *testing.T) {
	var x F[smallTag]
	x.SetUint64(42)
	u, err := x.Uint64()
	testutils.FatalUnless(t, err == nil && u == 42, "uint64 round-trip failed")

	var largeVal F[bigTag]
	largeVal.SetUint64(1 << 40)
	u2, err := largeVal.Uint64()
	testutils.FatalUnless(t, err == nil && u2 == 1<<40, "uint64 round-trip failed on large modulus")
}
