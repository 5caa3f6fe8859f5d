package field

import (
	"bytes"
	"math/big"
	"math/rand"
	"testing"

	"github.com/arcfield/prime/internal/testutils"
)

func TestHexStringRoundTrip(t *testing.T) {
	v, ok := new(big.Int).SetString("123456789012345678901234567890", 16)
	testutils.FatalUnless(t, ok, "literal parse failed")

	var x F[bigTag]
	x.SetBigInt(v)

	got := x.textString(IoHex)
	testutils.FatalUnless(t, got == "123456789012345678901234567890", "hex round-trip mismatch, got %q", got)
}

func TestStreamFormattingPrefixOverridesMode(t *testing.T) {
	var x F[bigTag]
	x.SetUint64(0x123)
	s := x.textString(IoHex | IoPrefix)
	testutils.FatalUnless(t, s == "0x123", "expected 0x123, got %q", s)

	var y F[bigTag]
	buf := bytes.NewBufferString("0b100")
	_, err := y.ReadFrom(buf, IoHex)
	testutils.FatalUnless(t, err == nil, "ReadFrom failed: %v", err)
	u, err := y.Uint64()
	testutils.FatalUnless(t, err == nil && u == 4, "expected 4 (prefix beats base hint), got %d", u)
}

func TestIoRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	modes := []IoMode{IoBin, IoDec, IoHex, IoBin | IoPrefix, IoHex | IoPrefix, IoArray, IoArrayRaw}
	for _, mode := range modes {
		for i := 0; i < 30; i++ {
			var x, y F[smallTag]
			x.SetRandomUnsafe(r)

			var buf bytes.Buffer
			_, err := x.WriteTo(&buf, mode)
			testutils.FatalUnless(t, err == nil, "WriteTo failed for mode %d: %v", mode, err)

			_, err = y.ReadFrom(&buf, mode)
			testutils.FatalUnless(t, err == nil, "ReadFrom failed for mode %d: %v", mode, err)

			testutils.FatalUnless(t, x.IsEqual(&y), "round-trip mismatch for mode %d: %v != %v", mode, x.String(), y.String())
		}
	}
}

func TestArrayDecodeRejectsOutOfRange(t *testing.T) {
	// byteLen for modulus13 is 1 byte; 200 >= 13 must be rejected in Array mode.
	var y F[tag13]
	buf := bytes.NewReader([]byte{200})
	_, err := y.ReadFrom(buf, IoArray)
	testutils.FatalUnless(t, err == ErrValueOutOfRange, "expected ErrValueOutOfRange, got %v", err)
}

func TestMarshalBinaryRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		var x, y F[smallTag]
		x.SetRandomUnsafe(r)
		data, err := x.MarshalBinary()
		testutils.FatalUnless(t, err == nil, "MarshalBinary failed: %v", err)
		err = y.UnmarshalBinary(data)
		testutils.FatalUnless(t, err == nil, "UnmarshalBinary failed: %v", err)
		testutils.FatalUnless(t, x.IsEqual(&y), "binary marshal round-trip mismatch")
	}
}

func TestMontgomeryTransparency(t *testing.T) {
	// formatting -> parsing -> formatting is the identity under smallTag's
	// default (Montgomery) backend, whose stored words differ from the
	// canonical value.
	r := rand.New(rand.NewSource(8))
	for i := 0; i < 50; i++ {
		var x F[smallTag]
		x.SetRandomUnsafe(r)
		s1 := x.String()
		var y F[smallTag]
		buf := bytes.NewBufferString(s1)
		_, err := y.ReadFrom(buf, IoDec)
		testutils.FatalUnless(t, err == nil, "ReadFrom failed: %v", err)
		s2 := y.String()
		testutils.FatalUnless(t, s1 == s2, "format->parse->format not identity: %q != %q", s1, s2)
	}
}

func TestFaultyWriterReportsError(t *testing.T) {
	fb := testutils.NewFaultyBuffer(0, bytes.ErrTooLarge)
	var x F[smallTag]
	x.SetUint64(5)
	_, err := x.WriteTo(fb, IoDec)
	testutils.FatalUnless(t, err != nil, "expected WriteTo to surface the faulty writer's error")
}
