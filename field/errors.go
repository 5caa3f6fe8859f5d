package field

import "golang.org/x/xerrors"

// ErrorPrefix is prepended to every error string this package returns.
const ErrorPrefix = "field: "

var (
	// ErrDivisionByZero is returned by TryInv when its argument is zero,
	// and is what a *MultiInversionError unwraps to. Inv and Divide never
	// return an error: per this package's convention, Inv(0) == 0.
	ErrDivisionByZero = xerrors.New(ErrorPrefix + "division by zero")

	// ErrDoesNotFit is returned by Uint64 when the field element's
	// canonical value does not fit in the target type.
	ErrDoesNotFit = xerrors.New(ErrorPrefix + "value does not fit into the requested type")

	// ErrNotASquare is returned by Sqrt (its error-returning variant) when
	// the argument has no square root modulo p.
	ErrNotASquare = xerrors.New(ErrorPrefix + "value is not a quadratic residue")

	// ErrInvalidEncoding is returned by the text/binary decoders on
	// malformed input.
	ErrInvalidEncoding = xerrors.New(ErrorPrefix + "invalid encoding")

	// ErrValueOutOfRange is returned by the decoders (ReadFrom's text and
	// Array modes, UnmarshalBinary, UnmarshalText) when the decoded value
	// or magnitude is not less than p.
	ErrValueOutOfRange = xerrors.New(ErrorPrefix + "decoded value is not less than the modulus")
)

// MultiInversionError is returned by the batch inversion operations when
// one or more of the arguments were zero. It names every offending index
// instead of aborting at the first one.
type MultiInversionError struct {
	// ZeroIndices holds, in increasing order, the positions of every zero
	// argument encountered.
	ZeroIndices []int
}

func (e *MultiInversionError) Error() string {
	return xerrors.Errorf("%w: %d zero argument(s) found during batch inversion", ErrDivisionByZero, len(e.ZeroIndices)).Error()
}

func (e *MultiInversionError) Unwrap() error { return ErrDivisionByZero }
