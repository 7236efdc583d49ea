// Package rollsum implements the rolling two-accumulator checksum carried by
// testbench vector streams.
//
// The checksum belongs to the classic Adler family: two running sums a and b,
// modulus 65521 (the largest prime below 2^16), combined as b<<16 | a. Unlike
// hash/adler32 it is computed per framed message rather than once over a whole
// stream, and both accumulators are 16 bits wide: additions wrap at 16 bits
// before the modulus is applied, matching the checker in the simulated
// hardware. For messages large enough that an intermediate sum exceeds 2^16
// the result therefore differs from IEEE Adler-32, which accumulates in a
// wider register.
package rollsum

import "hash"

// mod is the largest prime below 2^16.
const mod = 65521

// Digest holds the running checksum state for one message.
type Digest struct {
	a, b uint16
}

var _ hash.Hash32 = (*Digest)(nil)

// New returns a Digest in its initial state (a=1, b=0).
func New() *Digest {
	return &Digest{a: 1}
}

// update folds p into the accumulators. The additions deliberately happen in
// uint16 so that overflow wraps before the modulus, not after.
func update(a, b uint16, p []byte) (uint16, uint16) {
	for _, c := range p {
		a = (a + uint16(c)) % mod
		b = (b + a) % mod
	}
	return a, b
}

// Write folds p into the digest. It never returns an error.
func (d *Digest) Write(p []byte) (int, error) {
	d.a, d.b = update(d.a, d.b, p)
	return len(p), nil
}

// WriteByte folds a single byte into the digest.
func (d *Digest) WriteByte(c byte) error {
	d.a, d.b = update(d.a, d.b, []byte{c})
	return nil
}

// Sum32 returns the checksum of the bytes written so far: b<<16 | a.
func (d *Digest) Sum32() uint32 {
	return uint32(d.b)<<16 | uint32(d.a)
}

// Sum appends the big-endian checksum to in.
func (d *Digest) Sum(in []byte) []byte {
	s := d.Sum32()
	return append(in, byte(s>>24), byte(s>>16), byte(s>>8), byte(s))
}

// Reset restores the initial state for the next message.
func (d *Digest) Reset() {
	d.a, d.b = 1, 0
}

// Size returns the number of bytes Sum appends.
func (d *Digest) Size() int { return 4 }

// BlockSize returns the checksum's block size.
func (d *Digest) BlockSize() int { return 1 }

// Checksum returns the checksum of data in one shot.
func Checksum(data []byte) uint32 {
	a, b := update(1, 0, data)
	return uint32(b)<<16 | uint32(a)
}
