package field

import (
	"math/rand"
	"testing"

	"github.com/arcfield/prime/internal/testutils"
)

func TestSqrtRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	found, notFound := 0, 0
	for i := 0; i < 500; i++ {
		var x, root F[smallTag]
		x.SetRandomUnsafe(r)
		if x.IsZero() {
			continue
		}
		ok := root.Sqrt(&x)
		if ok {
			found++
			var sq F[smallTag]
			sq.Square(&root)
			testutils.FatalUnless(t, sq.IsEqual(&x), "sqrt(x)^2 != x")
		} else {
			notFound++
			testutils.FatalUnless(t, x.Jacobi() == -1, "Sqrt returned false but Jacobi != -1")
		}
	}
	testutils.FatalUnless(t, found > 0 && notFound > 0, "expected both residues and non-residues among %d random samples", found+notFound)
}

func TestSqrtZero(t *testing.T) {
	var zero, root F[smallTag]
	zero.SetZero()
	ok := root.Sqrt(&zero)
	testutils.FatalUnless(t, ok && root.IsZero(), "sqrt(0) must be (0,true)")
}

type tag17 struct{}

var modulus17 = mustInit("17")

func (tag17) Describe() *Modulus { return modulus17 }

func TestSqrtGeneralDescent(t *testing.T) {
	// 17-1 = 16 = 2^4, so s=4: exercises the general Tonelli-Shanks
	// descent loop, not just the p=3 mod 4 closed form.
	for v := uint64(1); v < 17; v++ {
		var x, root, sq F[tag17]
		x.SetUint64(v)
		ok := root.Sqrt(&x)
		if ok {
			sq.Square(&root)
			testutils.FatalUnless(t, sq.IsEqual(&x), "sqrt(%d)^2 != %d", v, v)
		} else {
			testutils.FatalUnless(t, x.Jacobi() == -1, "Sqrt(%d) returned false but Jacobi != -1", v)
		}
	}
}
