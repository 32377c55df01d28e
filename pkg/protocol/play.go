package protocol

import (
	"encoding/binary"
	"fmt"
	"time"
)

// ChatMessage is an unsigned chat message (serverbound 0x04 in Play state):
// message string, millisecond timestamp, zero salt, zero signature length,
// signed-preview off. Servers that enforce message signing reject it.
type ChatMessage struct {
	Message   string
	Timestamp time.Time
}

func (m *ChatMessage) Encode() (*Packet, error) {
	p := New()
	if err := p.WriteVarInt(int32(C2SChatMessage)); err != nil {
		return nil, err
	}
	if err := p.WriteString(m.Message); err != nil {
		return nil, fmt.Errorf("write message: %w", err)
	}
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(m.Timestamp.UnixMilli()))
	p.WriteSlice(ts[:])
	p.WriteSlice(make([]byte, 8)) // salt
	p.WriteSlice([]byte{0})       // signature length
	p.WriteSlice([]byte{0})       // signed preview
	return p, nil
}

// KeepAlive is the server's liveness probe (clientbound 0x1E in Play
// state). The client echoes the id back as serverbound 0x11 or gets
// disconnected for timing out.
type KeepAlive struct {
	ID int64
}

func DecodeKeepAlive(p *Packet) (*KeepAlive, error) {
	raw, err := p.ReadSlice(8)
	if err != nil {
		return nil, fmt.Errorf("read keep alive id: %w", err)
	}
	return &KeepAlive{ID: int64(binary.BigEndian.Uint64(raw))}, nil
}

// Encode builds the serverbound echo for this keep alive.
func (k *KeepAlive) Encode() (*Packet, error) {
	p := New()
	if err := p.WriteVarInt(int32(C2SKeepAlive)); err != nil {
		return nil, err
	}
	var id [8]byte
	binary.BigEndian.PutUint64(id[:], uint64(k.ID))
	p.WriteSlice(id[:])
	return p, nil
}
