package field

import (
	"crypto"

	"github.com/bytemare/hash2curve"
)

// HashToField hashes input into a single field element using the
// expand-message-XMD construction, with dst as the domain-separation tag
// required by the hash-to-curve standard. HashToFieldXMD is generic over
// the target field's order (a *big.Int parameter, not a hardcoded curve
// constant), so it plugs into any Modulus without curve-specific
// assumptions.
func HashToField[Tag Descriptor](h crypto.Hash, input, dst []byte) F[Tag] {
	m := descriptorOf[Tag]()
	// securityLength follows RFC 9380's L = ceil((ceil(log2(p)) + k) / 8)
	// with k = 128, a conventional 128-bit security target.
	securityLength := (m.bitLen + 128 + 7) / 8
	elems := hash2curve.HashToFieldXMD(h, input, dst, 1, 1, securityLength, m.pInt)

	var z F[Tag]
	z.SetBigInt(elems[0])
	return z
}

// HashToFieldMulti hashes input into count independent field elements,
// using distinct XMD expansions for each (hash2curve's "count" parameter).
func HashToFieldMulti[Tag Descriptor](h crypto.Hash, input, dst []byte, count int) []F[Tag] {
	m := descriptorOf[Tag]()
	securityLength := (m.bitLen + 128 + 7) / 8
	elems := hash2curve.HashToFieldXMD(h, input, dst, count, 1, securityLength, m.pInt)

	out := make([]F[Tag], count)
	for i := range elems {
		out[i].SetBigInt(elems[i])
	}
	return out
}
