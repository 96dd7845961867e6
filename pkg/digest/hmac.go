package digest

// Factory creates a fresh hash engine.
type Factory func() Engine

// HMAC is an RFC 2104 message authentication code over any Engine.
type HMAC struct {
	inner Engine
	outer Engine
	sum   []byte
}

// NewHMAC keys a new HMAC. Keys longer than blockSize are hashed first. The padded key
// buffers are zeroed before NewHMAC returns; the engines hold only the XORed state.
func NewHMAC(newEngine Factory, key []byte, blockSize int) *HMAC {
	m := &HMAC{
		inner: newEngine(),
		outer: newEngine(),
	}

	ipad := make([]byte, blockSize)
	if len(key) > blockSize {
		e := newEngine()
		_ = e.Update(key)
		hashed := e.Digest()
		copy(ipad, hashed)
		clear(hashed)
	} else {
		copy(ipad, key)
	}
	opad := make([]byte, blockSize)
	copy(opad, ipad)

	for i := range blockSize {
		ipad[i] ^= 0x36
		opad[i] ^= 0x5c
	}

	_ = m.inner.Update(ipad)
	_ = m.outer.Update(opad)

	clear(ipad)
	clear(opad)

	return m
}

// Update feeds p into the inner hash. Empty input is a no-op, and a failing update
// (such as after Digest) is ignored, leaving the prior state as it was.
func (m *HMAC) Update(p []byte) *HMAC {
	if len(p) == 0 {
		return m
	}
	_ = m.inner.Update(p)
	return m
}

// UpdateString feeds the UTF-8 bytes of s.
func (m *HMAC) UpdateString(s string) *HMAC {
	return m.Update([]byte(s))
}

// Digest returns the MAC. The first call finalizes both engines; later calls return
// the cached value.
func (m *HMAC) Digest() []byte {
	if m.sum == nil {
		innerSum := m.inner.Digest()
		_ = m.outer.Update(innerSum)
		clear(innerSum)
		m.sum = m.outer.Digest()
	}
	out := make([]byte, len(m.sum))
	copy(out, m.sum)
	return out
}

// DigestString returns the MAC in the given encoding.
func (m *HMAC) DigestString(enc Encoding) string {
	return Encode(m.Digest(), enc)
}

// Size is the MAC length in bytes.
func (m *HMAC) Size() int {
	return m.outer.Size()
}
