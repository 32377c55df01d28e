// Package protocol implements the primitive wire types of the Minecraft
// Java Edition network protocol: base-128 varints, length-prefixed UTF-8
// strings, and raw byte fields, all read from and written to a Packet
// buffer with a single forward read cursor.
package protocol

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

const (
	segmentBits = 0x7F
	continueBit = 0x80

	// MaxVarIntBytes is the longest legal encoding of a 32-bit varint.
	MaxVarIntBytes = 5
)

// Error kinds. Every codec failure wraps one of these; callers test with
// errors.Is and read the wrapped message for the offending offset or value.
var (
	// ErrFraming covers cursor overruns, declared lengths that exceed the
	// buffer, and varints that fail to terminate within 32 bits.
	ErrFraming = errors.New("protocol: framing error")

	// ErrEncoding covers invalid UTF-8 and values that cannot be encoded
	// within the format's bounds.
	ErrEncoding = errors.New("protocol: encoding error")
)

// Packet is a growable byte buffer with a read cursor. One Packet holds
// exactly one frame payload: outbound packets are built with the Write
// methods and handed to the framing layer; inbound packets arrive from the
// framing layer with the protocol id already consumed and tagged.
//
// The cursor only moves forward. A Packet is never reused across frames.
type Packet struct {
	buf    []byte
	cursor int

	id    byte
	idSet bool
}

// New returns an empty Packet ready for writing.
func New() *Packet {
	return &Packet{}
}

// FromBytes returns a Packet holding a copy of b with the cursor at the start.
func FromBytes(b []byte) *Packet {
	buf := make([]byte, len(b))
	copy(buf, b)
	return &Packet{buf: buf}
}

// Len reports the total number of bytes in the buffer, read or not.
func (p *Packet) Len() int { return len(p.buf) }

// Bytes returns the underlying buffer. The slice is only valid until the
// next Write call.
func (p *Packet) Bytes() []byte { return p.buf }

// Remaining reports the number of unread bytes.
func (p *Packet) Remaining() int { return len(p.buf) - p.cursor }

// WriteVarInt appends value encoded as a base-128 varint: 7 data bits per
// byte, least significant group first, high bit set on every byte except
// the last. Encoding a 32-bit value never takes more than five bytes; the
// bound exists to catch corrupted call sites, not protocol traffic.
func (p *Packet) WriteVarInt(value int32) error {
	v := uint32(value)
	for i := 0; ; i++ {
		if i == MaxVarIntBytes {
			return fmt.Errorf("varint for %d exceeds %d bytes: %w", value, MaxVarIntBytes, ErrEncoding)
		}
		if v&^uint32(segmentBits) == 0 {
			p.buf = append(p.buf, byte(v))
			return nil
		}
		p.buf = append(p.buf, byte(v&segmentBits|continueBit))
		v >>= 7
	}
}

// ReadVarInt decodes a varint at the cursor and advances past it.
func (p *Packet) ReadVarInt() (int32, error) {
	var value int32
	var shift uint
	for {
		if p.cursor >= len(p.buf) {
			return 0, fmt.Errorf("varint truncated at offset %d: %w", p.cursor, ErrFraming)
		}
		b := p.buf[p.cursor]
		p.cursor++

		value |= int32(b&segmentBits) << shift

		if b&continueBit == 0 {
			return value, nil
		}

		shift += 7
		if shift >= 32 {
			return 0, fmt.Errorf("varint exceeds 32 bits: %w", ErrFraming)
		}
	}
}

// WriteString appends s as a varint byte length followed by the raw UTF-8
// bytes. The length counts bytes, not runes.
func (p *Packet) WriteString(s string) error {
	if err := p.WriteVarInt(int32(len(s))); err != nil {
		return fmt.Errorf("write string length: %w", err)
	}
	p.buf = append(p.buf, s...)
	return nil
}

// ReadString decodes a length-prefixed UTF-8 string at the cursor.
func (p *Packet) ReadString() (string, error) {
	length, err := p.ReadVarInt()
	if err != nil {
		return "", fmt.Errorf("read string length: %w", err)
	}
	if length < 0 {
		return "", fmt.Errorf("negative string length %d: %w", length, ErrFraming)
	}
	raw, err := p.ReadSlice(int(length))
	if err != nil {
		return "", fmt.Errorf("read string data: %w", err)
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("string data is not valid UTF-8: %w", ErrEncoding)
	}
	return string(raw), nil
}

// WriteSlice appends b verbatim. Used for fixed-width fields: ports,
// timestamps, salts, flag bytes.
func (p *Packet) WriteSlice(b []byte) {
	p.buf = append(p.buf, b...)
}

// ReadSlice returns an owned copy of the next n bytes and advances the
// cursor. Reading exactly the remaining bytes is valid; one byte more is a
// framing error.
func (p *Packet) ReadSlice(n int) ([]byte, error) {
	if n < 0 || p.cursor+n > len(p.buf) {
		return nil, fmt.Errorf("read %d bytes with %d remaining: %w", n, p.Remaining(), ErrFraming)
	}
	out := make([]byte, n)
	copy(out, p.buf[p.cursor:p.cursor+n])
	p.cursor += n
	return out, nil
}

// ReadProtocolID consumes one byte as the frame's classification tag. The
// framing layer calls it exactly once per inbound frame, right after the
// length prefix is stripped; once set the tag is immutable.
func (p *Packet) ReadProtocolID() (byte, error) {
	if p.idSet {
		return 0, fmt.Errorf("protocol id already set to 0x%02X: %w", p.id, ErrEncoding)
	}
	if p.cursor >= len(p.buf) {
		return 0, fmt.Errorf("empty frame has no protocol id: %w", ErrFraming)
	}
	p.id = p.buf[p.cursor]
	p.cursor++
	p.idSet = true
	return p.id, nil
}

// ProtocolID reports the tag set by ReadProtocolID, if any. Outbound
// packets never carry a tag; their id is the first varint they write.
func (p *Packet) ProtocolID() (byte, bool) {
	return p.id, p.idSet
}
