package field

import (
	"math/big"

	"golang.org/x/xerrors"
)

// Backend identifies one of the interchangeable arithmetic implementations
// an F[Tag] can be bound to. The zero value, BackendAuto, lets InitPrime
// (or SetBackend) choose, and selects BackendMontgomery. Each of the three
// concrete backends accepts every modulus InitPrime accepts; a value other
// than these four constants is rejected with ErrUnsupportedBackend.
type Backend int

const (
	BackendAuto Backend = iota
	BackendBignum
	BackendMontgomery
	BackendBarrett
)

// Descriptor is implemented by the zero-sized tag types used to
// instantiate F[Tag]. Describe must always return the same, already
// initialized *Modulus for a given Tag.
type Descriptor interface {
	Describe() *Modulus
}

// Modulus holds everything the arithmetic backends need to know about one
// prime: its value, its word count, and backend-specific precomputed
// constants. A Modulus is built once via InitPrime and is read-only
// afterwards, apart from SetBackend and SetIoMode; concurrent arithmetic
// against the same Modulus is safe, but InitPrime itself must not race
// with other calls for the same Tag.
type Modulus struct {
	p      limbs // the prime, canonical form
	pInt   *big.Int
	n      int // active word count, 1 <= n <= maxWords
	bitLen int

	// Barrett reciprocal floor(2^(128n)/p) (at most n+1 words, truncated to
	// maxWords). The Barrett backend's reduction currently computes its
	// quotient by long division and does not read this field; see
	// precomputeBarrett.
	barrettMu limbs

	// Montgomery precomputation (backendMontgomery).
	montR2    limbs // R^2 mod p, R = 2^(64n)
	montNInv0 uint64 // -p^-1 mod 2^64

	// Square root precomputation (Tonelli-Shanks), built by InitPrime.
	sqrtTables *sqrtPrecomp

	half *big.Int // floor((p-1)/2), the negative/non-negative residue boundary
	inv2 *big.Int // 2^-1 mod p, cached

	active Op
	kind   Backend

	// ioMode is the per-type default IoMode used by String/stream
	// insertion when no mode is given explicitly. Racy by design:
	// I/O-mode setters are startup configuration, not something swapped
	// concurrently with in-flight formatting.
	ioMode IoMode
}

var (
	ErrModulusEven        = xerrors.New(ErrorPrefix + "modulus must be odd")
	ErrModulusNotPrime    = xerrors.New(ErrorPrefix + "modulus failed a primality test")
	ErrModulusTooLarge    = xerrors.New(ErrorPrefix + "modulus exceeds the compile-time bit bound")
	ErrModulusNonPositive = xerrors.New(ErrorPrefix + "modulus must be positive")
)

// Option configures InitPrime.
type Option func(*modulusOptions)

type modulusOptions struct {
	backend        Backend
	skipPrimality  bool
}

// WithBackend requests a specific backend; BackendAuto (the default) lets
// InitPrime choose.
func WithBackend(b Backend) Option {
	return func(o *modulusOptions) { o.backend = b }
}

// WithoutPrimalityCheck skips the (probabilistic) primality test, for
// moduli already known to be prime where ProbablyPrime's cost matters.
func WithoutPrimalityCheck() Option {
	return func(o *modulusOptions) { o.skipPrimality = true }
}

// InitPrime builds a Modulus for the odd prime p. p must fit within the
// package's compile-time bit bound.
func InitPrime(p *big.Int, opts ...Option) (*Modulus, error) {
	var o modulusOptions
	for _, opt := range opts {
		opt(&o)
	}
	if p.Sign() <= 0 {
		return nil, ErrModulusNonPositive
	}
	if p.Bit(0) == 0 {
		return nil, ErrModulusEven
	}
	if p.BitLen() > maxBits {
		return nil, ErrModulusTooLarge
	}
	if !o.skipPrimality && !p.ProbablyPrime(40) {
		return nil, ErrModulusNotPrime
	}

	m := &Modulus{
		pInt:   new(big.Int).Set(p),
		bitLen: p.BitLen(),
	}
	m.n = (m.bitLen + 63) / 64
	if m.n == 0 {
		m.n = 1
	}
	setFromBigInt(&m.p, p, m.n)

	m.precomputeBarrett()
	m.precomputeMontgomery()
	m.half = new(big.Int).Rsh(pMinus1(p), 1)
	m.inv2 = new(big.Int).ModInverse(big.NewInt(2), p)
	m.sqrtTablesOrInit()

	if err := m.SetBackend(o.backend); err != nil {
		return nil, err
	}
	return m, nil
}

func pMinus1(p *big.Int) *big.Int { return new(big.Int).Sub(p, big.NewInt(1)) }

// SetBackend switches the active backend. It does not convert values
// already produced under the previous backend: an F[Tag] keeps its stored
// words, which the new backend then reads in its own representation. A
// value stored in Montgomery form therefore reads as a different element
// after a switch to BackendBignum or BackendBarrett, and vice versa;
// values keep their meaning only across switches between the two
// canonical backends.
func (m *Modulus) SetBackend(b Backend) error {
	switch b {
	case BackendAuto:
		// Montgomery is the fastest correct default for any odd modulus.
		m.active = montgomeryOp
		m.kind = BackendMontgomery
	case BackendBignum:
		m.active = bignumOp
		m.kind = BackendBignum
	case BackendMontgomery:
		m.active = montgomeryOp
		m.kind = BackendMontgomery
	case BackendBarrett:
		m.active = barrettOp
		m.kind = BackendBarrett
	default:
		return xerrors.Errorf("%w: unknown backend %d", ErrUnsupportedBackend, b)
	}
	return nil
}

// Backend reports the currently active backend kind.
func (m *Modulus) Backend() Backend { return m.kind }

// BitLen returns the bit length of the prime.
func (m *Modulus) BitLen() int { return m.bitLen }

// Prime returns a copy of the modulus as a *big.Int.
func (m *Modulus) Prime() *big.Int { return new(big.Int).Set(m.pInt) }

// setFromBigInt writes x into the low n words of z, little-endian. We go
// through Bytes() rather than Bits() since big.Word width is platform
// dependent (32 or 64 bits) and Bytes() is not.
func setFromBigInt(z *limbs, x *big.Int, n int) {
	z.setZero(maxWords)
	buf := x.Bytes()
	for i := 0; i < len(buf); i++ {
		b := buf[len(buf)-1-i]
		z[i/8] |= uint64(b) << (8 * uint(i%8))
	}
}

func toBigInt(x *limbs, n int) *big.Int {
	buf := make([]byte, n*8)
	for i := 0; i < n*8; i++ {
		buf[n*8-1-i] = byte(x[i/8] >> (8 * uint(i%8)))
	}
	return new(big.Int).SetBytes(buf)
}
