package digest_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/fzdarsky/cognito-srp/pkg/digest"
	"github.com/fzdarsky/cognito-srp/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func newSHA256HMAC(key []byte) *digest.HMAC {
	return digest.NewHMAC(func() digest.Engine { return digest.NewSHA256() }, key, digest.SHA256BlockSize)
}

// RFC 4231 test cases plus a key exactly one block long.
func TestHMAC_RFC4231(t *testing.T) {
	tests := []struct {
		name string
		key  string
		data string
		want string
	}{
		{
			name: "case 1 short key",
			key:  "0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b",
			data: hex.EncodeToString([]byte("Hi There")),
			want: "b0344c61d8db38535ca8afceaf0bf12b881dc200c9833da726e9376c2e32cff7",
		},
		{
			name: "case 2 key shorter than output",
			key:  hex.EncodeToString([]byte("Jefe")),
			data: hex.EncodeToString([]byte("what do ya want for nothing?")),
			want: "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843",
		},
		{
			name: "case 4 combined key",
			key:  "0102030405060708090a0b0c0d0e0f10111213141516171819",
			data: "cdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcd",
			want: "82558a389a443c0ea4cc819899f2083a85f0faa3e578f8077a2e3ff46729665b",
		},
		{
			name: "block-sized key",
			key:  "0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f",
			data: hex.EncodeToString([]byte("block-sized key")),
			want: "729eff3ba21fafa1fedef143e5ac64d0a8487ade37eedc73e7d742f7a5053a66",
		},
		{
			name: "case 6 key larger than block",
			key:  repeatHex("aa", 131),
			data: hex.EncodeToString([]byte("Test Using Larger Than Block-Size Key - Hash Key First")),
			want: "60e431591ee0b67f0d8a26aacbf5b77f8e0bc6213728c5140546040f0ee37f54",
		},
		{
			name: "case 7 key and data larger than block",
			key:  repeatHex("aa", 131),
			data: hex.EncodeToString([]byte("This is a test using a larger than block-size key and a larger than block-size data. The key needs to be hashed before being used by the HMAC algorithm.")),
			want: "9b09ffa71b942fcb27635fbcd5b0e944bfdc63644f0713938a7f51535c3a35e2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := mustHex(t, tt.key)
			data := mustHex(t, tt.data)

			m := newSHA256HMAC(key)
			m.Update(data)
			assert.Equal(t, tt.want, m.DigestString(digest.EncodingHex))

			ref := hmac.New(sha256.New, key)
			ref.Write(data)
			assert.Equal(t, tt.want, hex.EncodeToString(ref.Sum(nil)))
		})
	}
}

func repeatHex(b string, n int) string {
	out := make([]byte, 0, len(b)*n)
	for range n {
		out = append(out, b...)
	}
	return string(out)
}

func TestHMAC_ChunkedUpdates(t *testing.T) {
	m := newSHA256HMAC([]byte("Jefe"))
	m.UpdateString("what do ya ").Update(nil).UpdateString("").UpdateString("want for nothing?")

	assert.Equal(t, "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843", m.DigestString(digest.EncodingHex))
}

func TestHMAC_DigestIsIdempotent(t *testing.T) {
	m := newSHA256HMAC([]byte("key"))
	m.UpdateString("message")

	first := m.Digest()
	second := m.Digest()
	assert.Equal(t, first, second)

	// updates after finalization are inert
	m.UpdateString("ignored")
	assert.Equal(t, first, m.Digest())
	assert.Equal(t, digest.SHA256Size, m.Size())
}

func TestHMAC_DoesNotRetainKey(t *testing.T) {
	key := []byte("Jefe")
	m := newSHA256HMAC(key)

	// mutating the caller's key after construction must not affect the MAC
	key[0] = 'X'
	m.UpdateString("what do ya want for nothing?")
	assert.Equal(t, "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843", m.DigestString(digest.EncodingHex))
}

func TestProvider(t *testing.T) {
	p := digest.NewProvider()

	sum, err := digest.Sum(p, digest.SHA256Algorithm, []byte("a"), []byte("bc"))
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", hex.EncodeToString(sum))

	mac, err := digest.MAC(p, digest.SHA256Algorithm, []byte("Jefe"), []byte("what do ya want "), []byte("for nothing?"))
	require.NoError(t, err)
	assert.Equal(t, "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843", hex.EncodeToString(mac))
}

func TestProvider_UnsupportedAlgorithm(t *testing.T) {
	p := digest.NewProvider()

	_, err := p.NewHash("md5")
	assert.ErrorIs(t, err, protocol.ErrUnsupportedAlgorithm)

	_, err = p.NewHMAC("sha1", []byte("k"))
	assert.ErrorIs(t, err, protocol.ErrUnsupportedAlgorithm)

	_, err = digest.Sum(p, "sha512", []byte("x"))
	assert.ErrorIs(t, err, protocol.ErrUnsupportedAlgorithm)
}
