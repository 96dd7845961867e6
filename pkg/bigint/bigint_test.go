package bigint_test

import (
	"testing"

	"github.com/fzdarsky/cognito-srp/pkg/bigint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		radix     int
		wantHex   string
		wantError bool
	}{
		{name: "hex", input: "ff", radix: 16, wantHex: "ff"},
		{name: "upper-case hex", input: "ABC", radix: 16, wantHex: "0abc"},
		{name: "leading zeros", input: "000102", radix: 16, wantHex: "0102"},
		{name: "decimal", input: "255", radix: 10, wantHex: "ff"},
		{name: "not hex", input: "xyz", radix: 16, wantError: true},
		{name: "empty", input: "", radix: 16, wantError: true},
		{name: "negative", input: "-5", radix: 10, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, err := bigint.FromString(tt.input, tt.radix)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHex, x.Hex())
		})
	}
}

func TestArithmetic(t *testing.T) {
	a := bigint.FromInt64(17)
	b := bigint.FromInt64(5)

	assert.True(t, a.Add(b).Equal(bigint.FromInt64(22)))
	assert.True(t, a.Sub(b).Equal(bigint.FromInt64(12)))
	assert.True(t, a.Mul(b).Equal(bigint.FromInt64(85)))
	assert.True(t, a.Mod(b).Equal(bigint.FromInt64(2)))
	assert.Equal(t, 1, a.Cmp(b))
	assert.Equal(t, -1, b.Cmp(a))

	// operands are untouched
	assert.True(t, a.Equal(bigint.FromInt64(17)))
	assert.True(t, b.Equal(bigint.FromInt64(5)))
}

func TestSub_NegativePanics(t *testing.T) {
	assert.Panics(t, func() {
		bigint.FromInt64(1).Sub(bigint.FromInt64(2))
	})
}

func TestMod_ZeroPanics(t *testing.T) {
	assert.Panics(t, func() {
		bigint.FromInt64(1).Mod(bigint.Zero)
	})
}

func TestModPow(t *testing.T) {
	assert.True(t, bigint.ModPow(bigint.FromInt64(3), bigint.FromInt64(5), bigint.FromInt64(7)).Equal(bigint.FromInt64(5)))
	assert.True(t, bigint.FromInt64(2).ModPow(bigint.FromInt64(10), bigint.FromInt64(1000)).Equal(bigint.FromInt64(24)))

	for _, n := range []int64{2, 3, 7, 1 << 40} {
		got := bigint.ModPow(bigint.FromInt64(12345), bigint.Zero, bigint.FromInt64(n))
		assert.True(t, got.Equal(bigint.One), "x^0 mod %d", n)
	}
}

func TestModPow_MatchesRepeatedMultiplication(t *testing.T) {
	m := bigint.FromInt64(1000003)
	base := bigint.FromInt64(987654)

	want := bigint.One
	for e := int64(0); e < 40; e++ {
		got := bigint.ModPow(base, bigint.FromInt64(e), m)
		assert.True(t, got.Equal(want), "exponent %d", e)
		want = want.Mul(base).Mod(m)
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		value   int64
		wantHex string
		wantPad string
	}{
		{0, "00", "00"},
		{1, "01", "01"},
		{0x7f, "7f", "7f"},
		{0x80, "80", "0080"},
		{0xabc, "0abc", "0abc"},
		{0x7fff, "7fff", "7fff"},
		{0x8000, "8000", "008000"},
		{0xffff, "ffff", "00ffff"},
	}

	for _, tt := range tests {
		x := bigint.FromInt64(tt.value)
		assert.Equal(t, tt.wantHex, x.Hex(), "Hex(%#x)", tt.value)
		assert.Equal(t, tt.wantPad, x.PadHex(), "PadHex(%#x)", tt.value)
		assert.Zero(t, len(x.PadHex())%2)
	}
}

func TestPadBytes(t *testing.T) {
	assert.Equal(t, []byte{0x00, 0x9f, 0x86}, bigint.FromInt64(0x9f86).PadBytes())
	assert.Equal(t, []byte{0x01, 0x02}, bigint.FromInt64(0x0102).PadBytes())
	assert.Equal(t, []byte{0x00}, bigint.Zero.PadBytes())
}

func TestZeroValue(t *testing.T) {
	var x bigint.Int

	assert.True(t, x.IsZero())
	assert.Equal(t, 0, x.Sign())
	assert.True(t, x.Add(bigint.One).Equal(bigint.One))
}

func TestScrub(t *testing.T) {
	x := bigint.MustHex("deadbeefdeadbeefdeadbeefdeadbeef")
	y := x.Add(bigint.Zero)

	x.Scrub()

	assert.True(t, x.IsZero())
	assert.Equal(t, "deadbeefdeadbeefdeadbeefdeadbeef", y.Hex())
}
