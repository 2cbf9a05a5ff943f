// Package mpeg parses ID3v1 and ID3v2 (2.2-2.4) tags from MPEG audio files.
package mpeg

import "encoding/binary"

// decodeSynchsafe decodes a 4-byte synch-safe integer: 7 bits per byte,
// most significant byte first, 28 bits total.
//
// Some writers store a plain 32-bit big-endian size in this field. If any
// byte has its high bit set the input cannot be synch-safe, so the same
// bytes are reinterpreted as plain big-endian. The fallback is mandatory
// for interoperability with non-compliant encoders.
func decodeSynchsafe(b []byte) uint32 {
	var sum uint32

	for i, c := range b {
		if c&0x80 != 0 {
			return binary.BigEndian.Uint32(b)
		}

		sum |= uint32(c&0x7f) << (7 * (len(b) - 1 - i))
	}

	return sum
}

// decodeUnsynchronization removes the 0x00 of every 0xFF 0x00 pair that
// unsynchronization stuffed in to prevent false MPEG sync signals.
// A standalone trailing 0xFF passes through unchanged.
func decodeUnsynchronization(b []byte) []byte {
	out := make([]byte, 0, len(b))

	for i := 0; i < len(b); i++ {
		out = append(out, b[i])

		if b[i] == 0xFF && i+1 < len(b) && b[i+1] == 0x00 {
			i++
		}
	}

	return out
}
