package digest

import (
	"encoding/binary"
	"math/bits"
)

// SHA-256 sizes in bytes.
const (
	SHA256Size      = 32
	SHA256BlockSize = 64
)

var sha256Init = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a, 0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

var sha256K = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5,
	0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3,
	0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc,
	0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7,
	0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13,
	0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3,
	0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5,
	0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208,
	0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

// SHA256 is a streaming FIPS 180-4 SHA-256 engine.
type SHA256 struct {
	h        [8]uint32
	buf      [SHA256BlockSize]byte
	nbuf     int
	length   uint64 // message length in bytes
	finished bool
	sum      [SHA256Size]byte
}

// NewSHA256 returns a fresh SHA-256 engine.
func NewSHA256() *SHA256 {
	return &SHA256{h: sha256Init}
}

// Update appends p to the message, compressing every complete block.
func (s *SHA256) Update(p []byte) error {
	if s.finished {
		return ErrFinished
	}
	s.length += uint64(len(p))
	s.write(p)
	return nil
}

func (s *SHA256) write(p []byte) {
	if s.nbuf > 0 {
		n := copy(s.buf[s.nbuf:], p)
		s.nbuf += n
		p = p[n:]
		if s.nbuf < SHA256BlockSize {
			return
		}
		s.compress(s.buf[:])
		s.nbuf = 0
	}
	for len(p) >= SHA256BlockSize {
		s.compress(p[:SHA256BlockSize])
		p = p[SHA256BlockSize:]
	}
	s.nbuf = copy(s.buf[:], p)
}

// Digest pads the message, runs the final compressions and returns the 32-byte sum.
func (s *SHA256) Digest() []byte {
	if !s.finished {
		s.finish()
	}
	out := make([]byte, SHA256Size)
	copy(out, s.sum[:])
	return out
}

func (s *SHA256) finish() {
	bitLen := s.length << 3

	// 0x80, zeros up to 56 mod 64, then the 64-bit big-endian bit length.
	var pad [SHA256BlockSize + 8]byte
	pad[0] = 0x80
	n := 56 - s.nbuf
	if s.nbuf >= 56 {
		n += SHA256BlockSize
	}
	binary.BigEndian.PutUint64(pad[n:], bitLen)
	s.write(pad[:n+8])

	for i, v := range s.h {
		binary.BigEndian.PutUint32(s.sum[i*4:], v)
	}
	clear(s.buf[:])
	s.finished = true
}

// Finished reports whether Digest has been called.
func (s *SHA256) Finished() bool { return s.finished }

// Size returns 32.
func (s *SHA256) Size() int { return SHA256Size }

// BlockSize returns 64.
func (s *SHA256) BlockSize() int { return SHA256BlockSize }

func (s *SHA256) compress(p []byte) {
	var w [64]uint32
	for i := range 16 {
		w[i] = binary.BigEndian.Uint32(p[i*4:])
	}
	for i := 16; i < 64; i++ {
		v1 := w[i-2]
		s1 := bits.RotateLeft32(v1, -17) ^ bits.RotateLeft32(v1, -19) ^ (v1 >> 10)
		v2 := w[i-15]
		s0 := bits.RotateLeft32(v2, -7) ^ bits.RotateLeft32(v2, -18) ^ (v2 >> 3)
		w[i] = s1 + w[i-7] + s0 + w[i-16]
	}

	a, b, c, d, e, f, g, h := s.h[0], s.h[1], s.h[2], s.h[3], s.h[4], s.h[5], s.h[6], s.h[7]
	for i := range 64 {
		t1 := h + (bits.RotateLeft32(e, -6) ^ bits.RotateLeft32(e, -11) ^ bits.RotateLeft32(e, -25)) +
			((e & f) ^ (^e & g)) + sha256K[i] + w[i]
		t2 := (bits.RotateLeft32(a, -2) ^ bits.RotateLeft32(a, -13) ^ bits.RotateLeft32(a, -22)) +
			((a & b) ^ (a & c) ^ (b & c))
		h = g
		g = f
		f = e
		e = d + t1
		d = c
		c = b
		b = a
		a = t1 + t2
	}

	s.h[0] += a
	s.h[1] += b
	s.h[2] += c
	s.h[3] += d
	s.h[4] += e
	s.h[5] += f
	s.h[6] += g
	s.h[7] += h
}
