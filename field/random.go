package field

import (
	"crypto/rand"
	"math/big"
	mathrand "math/rand"
)

// SetRandom sets z to a cryptographically random element, using
// crypto/rand. This is the default, safe choice; SetRandomUnsafe exists
// for fast, repeatable sampling in tests and benchmarks only.
func (z *F[Tag]) SetRandom() error {
	m := descriptorOf[Tag]()
	v, err := rand.Int(rand.Reader, m.pInt)
	if err != nil {
		return err
	}
	z.SetBigInt(v)
	return nil
}

// SetRandomUnsafe sets z to a pseudo-random element using r, which is not
// a cryptographically secure source. Intended for tests and benchmarks
// that need fast, reproducible sampling only.
func (z *F[Tag]) SetRandomUnsafe(r *mathrand.Rand) *F[Tag] {
	m := descriptorOf[Tag]()
	v := new(big.Int).Rand(r, m.pInt)
	z.SetBigInt(v)
	return z
}
