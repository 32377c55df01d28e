package protocol

import (
	"encoding/binary"
	"fmt"
)

// Handshake is the first frame of a session (serverbound 0x00). It declares
// the protocol version, the address the client dialed, and the state the
// connection moves to next.
type Handshake struct {
	ProtocolVersion int32
	ServerAddress   string
	ServerPort      uint16
	NextState       int32
}

// Encode builds the handshake payload: id, version varint, address string,
// two big-endian port bytes, next-state varint.
func (h *Handshake) Encode() (*Packet, error) {
	p := New()
	if err := p.WriteVarInt(int32(C2SHandshake)); err != nil {
		return nil, err
	}
	if err := p.WriteVarInt(h.ProtocolVersion); err != nil {
		return nil, fmt.Errorf("write protocol version: %w", err)
	}
	if err := p.WriteString(h.ServerAddress); err != nil {
		return nil, fmt.Errorf("write server address: %w", err)
	}
	var port [2]byte
	binary.BigEndian.PutUint16(port[:], h.ServerPort)
	p.WriteSlice(port[:])
	if err := p.WriteVarInt(h.NextState); err != nil {
		return nil, fmt.Errorf("write next state: %w", err)
	}
	return p, nil
}
