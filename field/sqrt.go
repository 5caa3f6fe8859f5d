package field

import "math/big"

// sqrtPrecomp holds the Tonelli-Shanks constants for one Modulus: the
// factorization p-1 = q*2^s with q odd, and a fixed non-residue g raised
// to q, generating the 2-power-order subgroup Tonelli-Shanks walks down.
// A fixed s=32 with a precomputed discrete-log block table only works for
// one hardcoded prime; here s is whatever InitPrime's modulus produces,
// so the block-table trick (which depends on s being fixed and small at
// compile time) is replaced by the textbook per-bit descent. Built once by
// InitPrime, so Sqrt/TrySqrt only read it and concurrent square roots
// against the same Modulus write no shared state.
type sqrtPrecomp struct {
	q          *big.Int // (p-1) / 2^s, odd
	s          uint
	nonResidue *big.Int // a fixed quadratic non-residue mod p
	gQ         *big.Int // nonResidue^q mod p, generator of the order-2^s subgroup
}

func (m *Modulus) sqrtTablesOrInit() *sqrtPrecomp {
	if m.sqrtTables != nil {
		return m.sqrtTables
	}
	p := m.pInt
	pMinus1 := new(big.Int).Sub(p, big.NewInt(1))
	s := uint(0)
	q := new(big.Int).Set(pMinus1)
	for q.Bit(0) == 0 {
		q.Rsh(q, 1)
		s++
	}

	nonResidue := big.NewInt(2)
	for big.Jacobi(nonResidue, p) != -1 {
		nonResidue.Add(nonResidue, big.NewInt(1))
	}
	gQ := new(big.Int).Exp(nonResidue, q, p)

	tables := &sqrtPrecomp{q: q, s: s, nonResidue: nonResidue, gQ: gQ}
	m.sqrtTables = tables
	return tables
}

// Sqrt sets z to a square root of x and returns true, or leaves z at zero
// and returns false if x has no square root mod p (x is a non-residue).
// Uses Tonelli-Shanks, specialized on the modulus's 2-adicity s, computed
// at runtime rather than hardcoded.
func (z *F[Tag]) Sqrt(x *F[Tag]) bool {
	m := descriptorOf[Tag]()
	if x.IsZero() {
		z.SetZero()
		return true
	}

	var xCanon limbs
	m.active.ToCanonical(&xCanon, &x.value, m)
	xi := toBigInt(&xCanon, m.n)

	if big.Jacobi(xi, m.pInt) == -1 {
		z.SetZero()
		return false
	}

	tables := m.sqrtTablesOrInit()

	// p === 3 mod 4 (s == 1): the fast closed form r = x^((p+1)/4).
	if tables.s == 1 {
		e := new(big.Int).Rsh(new(big.Int).Add(m.pInt, big.NewInt(1)), 2)
		r := new(big.Int).Exp(xi, e, m.pInt)
		z.SetBigInt(r)
		return true
	}

	// General Tonelli-Shanks descent.
	mExp := tables.s
	c := new(big.Int).Set(tables.gQ)
	t := new(big.Int).Exp(xi, tables.q, m.pInt)
	rExp := new(big.Int).Rsh(new(big.Int).Add(tables.q, big.NewInt(1)), 1)
	r := new(big.Int).Exp(xi, rExp, m.pInt)

	one := big.NewInt(1)
	for t.Cmp(one) != 0 {
		// find least i, 0 < i < mExp, such that t^(2^i) == 1
		i := uint(0)
		tt := new(big.Int).Set(t)
		for tt.Cmp(one) != 0 {
			tt.Mul(tt, tt)
			tt.Mod(tt, m.pInt)
			i++
		}

		b := new(big.Int).Set(c)
		for j := uint(0); j < mExp-i-1; j++ {
			b.Mul(b, b)
			b.Mod(b, m.pInt)
		}
		c = new(big.Int).Mul(b, b)
		c.Mod(c, m.pInt)
		t.Mul(t, c)
		t.Mod(t, m.pInt)
		r.Mul(r, b)
		r.Mod(r, m.pInt)
		mExp = i
	}

	z.SetBigInt(r)
	return true
}

// TrySqrt is Sqrt's error-returning form.
func (z *F[Tag]) TrySqrt(x *F[Tag]) error {
	if !z.Sqrt(x) {
		return ErrNotASquare
	}
	return nil
}
