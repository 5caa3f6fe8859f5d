package field

import "golang.org/x/xerrors"

// Op is the pluggable dispatch table behind a Modulus: every F[Tag]
// arithmetic method forwards to the Op currently active on Tag's
// Modulus. Swapping Op.* func values (via Modulus.SetBackend) changes
// every F[Tag] value's arithmetic without touching call sites.
type Op struct {
	Name string

	// Add, Sub, Mul, Sqr operate on the backend's internal representation.
	Add func(z, x, y *limbs, m *Modulus)
	Sub func(z, x, y *limbs, m *Modulus)
	Mul func(z, x, y *limbs, m *Modulus)
	Sqr func(z, x *limbs, m *Modulus)
	Neg func(z, x *limbs, m *Modulus)

	// Inv sets z to the inverse of x and returns true, or sets z to zero
	// and returns false if x is zero (in internal representation).
	Inv func(z, x *limbs, m *Modulus) bool

	// FromCanonical/ToCanonical convert between the external canonical
	// representation (a value in [0,p)) and whatever internal form the
	// backend uses (the identity for the reference and Barrett backends;
	// for the Montgomery backend, Montgomery multiplication by R^2 mod p
	// and by 1 respectively, i.e. scaling by R and by R^-1).
	FromCanonical func(z, x *limbs, m *Modulus)
	ToCanonical   func(z, x *limbs, m *Modulus)

	// IsZero reports whether x represents zero. Kept as a separate vtable
	// entry, rather than always calling limbs.isZero directly, so a future
	// backend whose internal representation doesn't equate "zero" with
	// "all-zero words" has somewhere to hook in.
	IsZero func(x *limbs, m *Modulus) bool
}

var ErrUnsupportedBackend = xerrors.New(ErrorPrefix + "unsupported backend")
