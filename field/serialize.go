package field

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/big"
	"strings"

	"golang.org/x/xerrors"
)

// IoMode controls how F[Tag] values are read from and written to text and
// binary streams, using mcl-style bit flags.
type IoMode uint

const (
	IoAuto     IoMode = 0
	IoPrefix   IoMode = 1
	IoBin      IoMode = 2
	IoDec      IoMode = 10
	IoHex      IoMode = 16
	IoArray    IoMode = 32
	IoArrayRaw IoMode = 64
)

func (mode IoMode) base() int {
	switch {
	case mode&IoHex == IoHex:
		return 16
	case mode&IoDec == IoDec: // before IoBin: IoDec (10) contains IoBin's bit (2)
		return 10
	case mode&IoBin == IoBin:
		return 2
	default:
		return 10
	}
}

func (mode IoMode) hasPrefix() bool { return mode&IoPrefix == IoPrefix }
func (mode IoMode) isArray() bool   { return mode&IoArray == IoArray }
func (mode IoMode) isArrayRaw() bool { return mode&IoArrayRaw == IoArrayRaw }

// WriteTo writes z to w according to mode and returns the number of bytes
// written.
func (z *F[Tag]) WriteTo(w io.Writer, mode IoMode) (int64, error) {
	m := descriptorOf[Tag]()

	if mode.isArrayRaw() {
		n, err := w.Write(limbsToBytes(&z.value, m.n))
		return int64(n), err
	}
	if mode.isArray() {
		var canon limbs
		m.active.ToCanonical(&canon, &z.value, m)
		n, err := w.Write(limbsToBytes(&canon, m.n))
		return int64(n), err
	}

	s := z.textString(mode)
	n, err := io.WriteString(w, s)
	return int64(n), err
}

func (z *F[Tag]) textString(mode IoMode) string {
	v := z.BigInt()
	base := mode.base()
	digits := v.Text(base)
	if !mode.hasPrefix() {
		return digits
	}
	switch base {
	case 16:
		return "0x" + digits
	case 2:
		return "0b" + digits
	default:
		return digits
	}
}

// String renders z using Tag's configured IoMode (decimal with no prefix
// unless SetIoMode was called).
func (z *F[Tag]) String() string {
	m := descriptorOf[Tag]()
	mode := m.ioMode
	if mode == IoAuto {
		mode = IoDec
	}
	return z.textString(mode)
}

// SetIoMode sets Tag's default IoMode, used by String and stream
// insertion/extraction when no explicit mode is given. A startup-time
// convenience, not safe to call concurrently with formatting.
func SetIoMode[Tag Descriptor](mode IoMode) { descriptorOf[Tag]().ioMode = mode }

// GetIoMode returns Tag's current default IoMode.
func GetIoMode[Tag Descriptor]() IoMode { return descriptorOf[Tag]().ioMode }

// byteLen returns the number of bytes the canonical/raw encoding of an
// n-word field element occupies.
func byteLen(n int) int { return n * 8 }

// limbsToBytes renders the low n words of x as a little-endian byte slice.
func limbsToBytes(x *limbs, n int) []byte {
	buf := make([]byte, n*8)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint64(buf[i*8:], x[i])
	}
	return buf
}

// ReadFrom reads a field element from r according to mode.
func (z *F[Tag]) ReadFrom(r io.Reader, mode IoMode) (int64, error) {
	m := descriptorOf[Tag]()

	if mode.isArrayRaw() {
		buf := make([]byte, byteLen(m.n))
		n, err := io.ReadFull(r, buf)
		if err != nil {
			return int64(n), err
		}
		var raw limbs
		copy(raw[:], bytesToWords(buf))
		z.value = raw
		return int64(n), nil
	}
	if mode.isArray() {
		buf := make([]byte, byteLen(m.n))
		n, err := io.ReadFull(r, buf)
		if err != nil {
			return int64(n), err
		}
		var canon limbs
		copy(canon[:], bytesToWords(buf))
		if cmp(&canon, &m.p, m.n) >= 0 {
			return int64(n), ErrValueOutOfRange
		}
		m.active.FromCanonical(&z.value, &canon, m)
		return int64(n), nil
	}

	buf := new(strings.Builder)
	limit := 2*m.bitLen + 4 // generous upper bound on digit count across any supported base/prefix
	chunk := make([]byte, 1)
	for buf.Len() < limit {
		n, err := r.Read(chunk)
		if n == 0 {
			break
		}
		c := chunk[0]
		if c == '-' && buf.Len() == 0 {
			buf.WriteByte(c)
		} else if isDigitByte(c) {
			buf.WriteByte(c)
		} else {
			break
		}
		if err != nil {
			break
		}
	}
	text := buf.String()
	if text == "" {
		return 0, ErrInvalidEncoding
	}
	base := mode.base()
	magnitude := strings.TrimPrefix(text, "-")
	hasPrefix := strings.HasPrefix(magnitude, "0x") || strings.HasPrefix(magnitude, "0X") ||
		strings.HasPrefix(magnitude, "0b") || strings.HasPrefix(magnitude, "0B")
	if mode.hasPrefix() || mode == IoAuto || hasPrefix {
		// base 0: *big.Int.SetString auto-detects 0x/0b/0 prefixes; a
		// prefix actually present in the input always wins over the
		// caller's base hint.
		base = 0
	}
	v, ok := new(big.Int).SetString(text, base)
	if !ok {
		return int64(len(text)), ErrInvalidEncoding
	}
	if new(big.Int).Abs(v).Cmp(m.pInt) >= 0 {
		return int64(len(text)), ErrValueOutOfRange
	}
	z.SetBigInt(v)
	return int64(len(text)), nil
}

func isDigitByte(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		return true
	case c == 'x' || c == 'X' || c == 'b' || c == 'B':
		return true
	}
	return false
}

// bytesToWords reinterprets a little-endian byte buffer (as produced by
// WriteTo's Array/ArrayRaw modes) as a little-endian uint64 slice.
func bytesToWords(buf []byte) []uint64 {
	n := (len(buf) + 7) / 8
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		lo := i * 8
		hi := lo + 8
		if hi > len(buf) {
			hi = len(buf)
		}
		var word uint64
		for j := hi - 1; j >= lo; j-- {
			word = (word << 8) | uint64(buf[j])
		}
		out[i] = word
	}
	return out
}

// MarshalBinary implements encoding.BinaryMarshaler using the canonical
// Array encoding.
func (z *F[Tag]) MarshalBinary() ([]byte, error) {
	m := descriptorOf[Tag]()
	var canon limbs
	m.active.ToCanonical(&canon, &z.value, m)
	return limbsToBytes(&canon, m.n), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler using the
// canonical Array encoding.
func (z *F[Tag]) UnmarshalBinary(data []byte) error {
	m := descriptorOf[Tag]()
	if len(data) != byteLen(m.n) {
		return xerrors.Errorf("%w: expected %d bytes, got %d", ErrInvalidEncoding, byteLen(m.n), len(data))
	}
	var canon limbs
	for i := 0; i < m.n; i++ {
		canon[i] = binary.LittleEndian.Uint64(data[i*8:])
	}
	if cmp(&canon, &m.p, m.n) >= 0 {
		return ErrValueOutOfRange
	}
	m.active.FromCanonical(&z.value, &canon, m)
	return nil
}

// MarshalText implements encoding.TextMarshaler, using decimal with no prefix.
func (z *F[Tag]) MarshalText() ([]byte, error) {
	return []byte(z.textString(IoDec)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, auto-detecting a
// 0x/0b prefix if present and otherwise assuming decimal. A magnitude not
// less than p is rejected with ErrValueOutOfRange.
func (z *F[Tag]) UnmarshalText(text []byte) error {
	m := descriptorOf[Tag]()
	s := string(text)
	base := 10
	magnitude := strings.TrimPrefix(s, "-")
	if len(magnitude) > 2 && magnitude[0] == '0' && strings.ContainsRune("xXbB", rune(magnitude[1])) {
		base = 0
	}
	v, ok := new(big.Int).SetString(s, base)
	if !ok {
		return xerrors.Errorf("%w: %q", ErrInvalidEncoding, text)
	}
	if new(big.Int).Abs(v).Cmp(m.pInt) >= 0 {
		return ErrValueOutOfRange
	}
	z.SetBigInt(v)
	return nil
}

// Format implements fmt.Formatter so that %v/%d/%x/%b pick the expected
// IoMode.
func (z *F[Tag]) Format(s fmt.State, verb rune) {
	var mode IoMode
	switch verb {
	case 'x', 'X':
		mode = IoHex
	case 'b':
		mode = IoBin
	default:
		mode = IoDec
	}
	if s.Flag('#') {
		mode |= IoPrefix
	}
	io.WriteString(s, z.textString(mode))
}
