package field

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/arcfield/prime/internal/testutils"
)

func TestMultiplySlice(t *testing.T) {
	r := rand.New(rand.NewSource(10))
	a := make([]F[smallTag], 20)
	b := make([]F[smallTag], 20)
	for i := range a {
		a[i].SetRandomUnsafe(r)
		b[i].SetRandomUnsafe(r)
	}
	var out []F[smallTag]
	MultiplySlice(&out, a, b)
	for i := range a {
		var want F[smallTag]
		want.Mul(&a[i], &b[i])
		testutils.FatalUnless(t, out[i].IsEqual(&want), "MultiplySlice[%d] mismatch", i)
	}
}

func TestSummationSlice(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	a := make([]F[smallTag], 15)
	var want F[smallTag]
	want.SetZero()
	for i := range a {
		a[i].SetRandomUnsafe(r)
		want.AddEq(&a[i])
	}
	got := SummationSlice(a)
	testutils.FatalUnless(t, got.IsEqual(&want), "SummationSlice mismatch")
}

func TestMultiInvertEqNoZeros(t *testing.T) {
	r := rand.New(rand.NewSource(12))
	a := make([]F[smallTag], 25)
	orig := make([]F[smallTag], 25)
	for i := range a {
		for {
			a[i].SetRandomUnsafe(r)
			if !a[i].IsZero() {
				break
			}
		}
		orig[i] = a[i]
	}
	err := MultiInvertEq(a)
	testutils.FatalUnless(t, err == nil, "MultiInvertEq reported an error with no zero inputs: %v", err)
	for i := range a {
		var prod F[smallTag]
		prod.Mul(&a[i], &orig[i])
		testutils.FatalUnless(t, prod.IsOne(), "MultiInvertEq[%d] not the inverse", i)
	}
}

func TestMultiInvertEqWithZeros(t *testing.T) {
	a := make([]F[smallTag], 5)
	a[0].SetUint64(3)
	a[1].SetZero()
	a[2].SetUint64(7)
	a[3].SetZero()
	a[4].SetUint64(11)

	orig := make([]F[smallTag], 5)
	copy(orig, a)

	err := MultiInvertEq(a)
	testutils.FatalUnless(t, err != nil, "expected a MultiInversionError")
	var multiErr *MultiInversionError
	ok := errors.As(err, &multiErr)
	testutils.FatalUnless(t, ok, "error was not a *MultiInversionError: %v", err)
	testutils.FatalUnless(t, len(multiErr.ZeroIndices) == 2 && multiErr.ZeroIndices[0] == 1 && multiErr.ZeroIndices[1] == 3,
		"unexpected zero indices: %v", multiErr.ZeroIndices)

	for _, i := range []int{0, 2, 4} {
		var prod F[smallTag]
		prod.Mul(&a[i], &orig[i])
		testutils.FatalUnless(t, prod.IsOne(), "MultiInvertEq[%d] not the inverse", i)
	}
	testutils.FatalUnless(t, a[1].IsZero() && a[3].IsZero(), "zero entries must stay zero")
}
