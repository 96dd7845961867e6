// Package bigint provides the immutable non-negative integer type used by the SRP engine.
package bigint

import (
	"encoding/hex"
	"fmt"
	"math/big"
)

// Int is an arbitrary-precision non-negative integer. Operations never modify their
// receiver or arguments; the zero value is 0.
type Int struct {
	v *big.Int
}

var (
	// Zero is the integer 0.
	Zero = Int{}
	// One is the integer 1.
	One = FromInt64(1)
)

// FromHex parses a hexadecimal string. Leading zeros are accepted.
func FromHex(s string) (Int, error) {
	return FromString(s, 16)
}

// FromString parses s as a non-negative integer in the given radix.
func FromString(s string, radix int) (Int, error) {
	v, ok := new(big.Int).SetString(s, radix)
	if !ok {
		return Int{}, fmt.Errorf("invalid base-%d integer %q", radix, s)
	}
	if v.Sign() < 0 {
		return Int{}, fmt.Errorf("negative integer %q", s)
	}
	return Int{v: v}, nil
}

// MustHex is like FromHex but panics on error. For constants only.
func MustHex(s string) Int {
	x, err := FromHex(s)
	if err != nil {
		panic(err)
	}
	return x
}

// FromBytes interprets b as a big-endian unsigned integer.
func FromBytes(b []byte) Int {
	return Int{v: new(big.Int).SetBytes(b)}
}

// FromInt64 returns v as an Int. v must not be negative.
func FromInt64(v int64) Int {
	if v < 0 {
		panic("bigint: negative value")
	}
	return Int{v: big.NewInt(v)}
}

func (x Int) big() *big.Int {
	if x.v == nil {
		return new(big.Int)
	}
	return x.v
}

// Add returns x + y.
func (x Int) Add(y Int) Int {
	return Int{v: new(big.Int).Add(x.big(), y.big())}
}

// Sub returns x - y. It panics if y > x; reduce with Mod first.
func (x Int) Sub(y Int) Int {
	r := new(big.Int).Sub(x.big(), y.big())
	if r.Sign() < 0 {
		panic("bigint: negative difference")
	}
	return Int{v: r}
}

// Mul returns x * y.
func (x Int) Mul(y Int) Int {
	return Int{v: new(big.Int).Mul(x.big(), y.big())}
}

// Mod returns x mod m. It panics if m is zero.
func (x Int) Mod(m Int) Int {
	if m.IsZero() {
		panic("bigint: division by zero")
	}
	return Int{v: new(big.Int).Mod(x.big(), m.big())}
}

// ModPow returns x^e mod m.
func (x Int) ModPow(e, m Int) Int {
	return ModPow(x, e, m)
}

// ModPow returns base^exp mod m using square-and-multiply. It panics if m is zero.
func ModPow(base, exp, m Int) Int {
	if m.IsZero() {
		panic("bigint: division by zero")
	}
	return Int{v: new(big.Int).Exp(base.big(), exp.big(), m.big())}
}

// Equal reports whether x == y.
func (x Int) Equal(y Int) bool {
	return x.big().Cmp(y.big()) == 0
}

// Cmp compares x and y and returns -1, 0 or +1.
func (x Int) Cmp(y Int) int {
	return x.big().Cmp(y.big())
}

// Sign returns 0 if x is zero and +1 otherwise.
func (x Int) Sign() int {
	return x.big().Sign()
}

// IsZero reports whether x == 0.
func (x Int) IsZero() bool {
	return x.Sign() == 0
}

// BitLen returns the length of x in bits.
func (x Int) BitLen() int {
	return x.big().BitLen()
}

// Hex returns the lower-case hexadecimal form of x with an even number of digits.
func (x Int) Hex() string {
	s := x.big().Text(16)
	if len(s)%2 == 1 {
		s = "0" + s
	}
	return s
}

// String implements fmt.Stringer with the Hex form.
func (x Int) String() string {
	return x.Hex()
}

// PadHex returns the SRP wire encoding of x: an even-length hex string, with an extra
// leading "00" byte when the top digit is 8 or above so the value never reads as negative.
func (x Int) PadHex() string {
	s := x.big().Text(16)
	if len(s)%2 == 1 {
		return "0" + s
	}
	if s[0] >= '8' {
		return "00" + s
	}
	return s
}

// PadBytes returns the bytes of PadHex.
func (x Int) PadBytes() []byte {
	b, err := hex.DecodeString(x.PadHex())
	if err != nil {
		// PadHex always yields valid even-length hex.
		panic(err)
	}
	return b
}

// Bytes returns the minimal big-endian encoding of x.
func (x Int) Bytes() []byte {
	return x.big().Bytes()
}

// Scrub overwrites the storage of x with zeros. It is the only mutating operation and
// is meant for secret values that are about to go out of scope; any Int sharing the
// storage reads as zero afterwards.
func (x Int) Scrub() {
	if x.v == nil {
		return
	}
	words := x.v.Bits()
	for i := range words {
		words[i] = 0
	}
	x.v.SetInt64(0)
}
