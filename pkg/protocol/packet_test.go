package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestVarIntRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value int32
		size  int
	}{
		{"zero", 0, 1},
		{"one", 1, 1},
		{"127", 127, 1},
		{"128", 128, 2},
		{"255", 255, 2},
		{"300", 300, 2},
		{"759", 759, 2},
		{"25565", 25565, 3},
		{"max_varint", 2147483647, 5},
		{"negative_one", -1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			if err := p.WriteVarInt(tt.value); err != nil {
				t.Fatalf("WriteVarInt(%d): %v", tt.value, err)
			}
			if p.Len() != tt.size {
				t.Errorf("WriteVarInt(%d) wrote %d bytes, want %d", tt.value, p.Len(), tt.size)
			}

			got, err := p.ReadVarInt()
			if err != nil {
				t.Fatalf("ReadVarInt: %v", err)
			}
			if got != tt.value {
				t.Errorf("ReadVarInt = %d, want %d", got, tt.value)
			}
			if p.Remaining() != 0 {
				t.Errorf("%d bytes left unread", p.Remaining())
			}
		})
	}
}

func TestVarIntKnownBytes(t *testing.T) {
	tests := []struct {
		value int32
		want  []byte
	}{
		{0, []byte{0x00}},
		{300, []byte{0xAC, 0x02}}, // 300 = 0x12C
		{759, []byte{0xF7, 0x05}},
		{25565, []byte{0xDD, 0xC7, 0x01}},
	}

	for _, tt := range tests {
		p := New()
		if err := p.WriteVarInt(tt.value); err != nil {
			t.Fatalf("WriteVarInt(%d): %v", tt.value, err)
		}
		if !bytes.Equal(p.Bytes(), tt.want) {
			t.Errorf("WriteVarInt(%d) = % X, want % X", tt.value, p.Bytes(), tt.want)
		}
	}
}

func TestReadVarIntOversized(t *testing.T) {
	// Six continuation bytes never terminate a 32-bit varint; the decoder
	// must fail instead of looping.
	p := FromBytes([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80})
	if _, err := p.ReadVarInt(); !errors.Is(err, ErrFraming) {
		t.Fatalf("ReadVarInt on oversized input = %v, want ErrFraming", err)
	}
}

func TestReadVarIntTruncated(t *testing.T) {
	p := FromBytes([]byte{0x80})
	if _, err := p.ReadVarInt(); !errors.Is(err, ErrFraming) {
		t.Fatalf("ReadVarInt on truncated input = %v, want ErrFraming", err)
	}
}

func TestStringRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"ascii", "localhost"},
		{"multibyte", "sâlut băieții"},
		{"long", string(bytes.Repeat([]byte{'a'}, 300))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			if err := p.WriteString(tt.value); err != nil {
				t.Fatalf("WriteString(%q): %v", tt.value, err)
			}
			got, err := p.ReadString()
			if err != nil {
				t.Fatalf("ReadString: %v", err)
			}
			if got != tt.value {
				t.Errorf("ReadString = %q, want %q", got, tt.value)
			}
		})
	}
}

func TestReadStringInvalidUTF8(t *testing.T) {
	p := FromBytes([]byte{0x02, 0xFF, 0xFE})
	if _, err := p.ReadString(); !errors.Is(err, ErrEncoding) {
		t.Fatalf("ReadString on invalid UTF-8 = %v, want ErrEncoding", err)
	}
}

func TestReadStringTruncated(t *testing.T) {
	// Declared length 10, only 3 bytes present.
	p := FromBytes([]byte{0x0A, 'a', 'b', 'c'})
	if _, err := p.ReadString(); !errors.Is(err, ErrFraming) {
		t.Fatalf("ReadString on truncated data = %v, want ErrFraming", err)
	}
}

func TestReadSliceExactRemaining(t *testing.T) {
	// Regression: reading exactly the remaining bytes must succeed; the
	// bound is len(buf), not len(buf)-1.
	p := FromBytes([]byte{1, 2, 3, 4})
	got, err := p.ReadSlice(4)
	if err != nil {
		t.Fatalf("ReadSlice(4) on 4-byte buffer: %v", err)
	}
	if !bytes.Equal(got, []byte{1, 2, 3, 4}) {
		t.Errorf("ReadSlice = % X, want 01 02 03 04", got)
	}
	if _, err := p.ReadSlice(1); !errors.Is(err, ErrFraming) {
		t.Errorf("ReadSlice past end = %v, want ErrFraming", err)
	}
}

func TestReadSliceReturnsOwnedCopy(t *testing.T) {
	p := FromBytes([]byte{1, 2, 3})
	got, err := p.ReadSlice(2)
	if err != nil {
		t.Fatalf("ReadSlice(2): %v", err)
	}
	got[0] = 0xFF
	if p.Bytes()[0] != 1 {
		t.Errorf("mutating the returned slice reached the buffer")
	}
}

func TestProtocolID(t *testing.T) {
	p := FromBytes([]byte{0x02, 0xAA})

	if _, ok := p.ProtocolID(); ok {
		t.Fatal("ProtocolID set before ReadProtocolID")
	}

	id, err := p.ReadProtocolID()
	if err != nil {
		t.Fatalf("ReadProtocolID: %v", err)
	}
	if id != 0x02 {
		t.Errorf("ReadProtocolID = 0x%02X, want 0x02", id)
	}
	if got, ok := p.ProtocolID(); !ok || got != 0x02 {
		t.Errorf("ProtocolID = (0x%02X, %v), want (0x02, true)", got, ok)
	}

	// The tag is set exactly once per frame.
	if _, err := p.ReadProtocolID(); !errors.Is(err, ErrEncoding) {
		t.Errorf("second ReadProtocolID = %v, want ErrEncoding", err)
	}
}

func TestReadProtocolIDEmpty(t *testing.T) {
	p := New()
	if _, err := p.ReadProtocolID(); !errors.Is(err, ErrFraming) {
		t.Fatalf("ReadProtocolID on empty buffer = %v, want ErrFraming", err)
	}
}
