package protocol

import (
	"fmt"

	"github.com/google/uuid"
)

// LoginStart is sent by the client with its username (serverbound 0x00 in
// Login state). The trailing byte declares that no signature data follows;
// this client never signs.
type LoginStart struct {
	Username string
}

func (l *LoginStart) Encode() (*Packet, error) {
	p := New()
	if err := p.WriteVarInt(int32(C2SLoginStart)); err != nil {
		return nil, err
	}
	if err := p.WriteString(l.Username); err != nil {
		return nil, fmt.Errorf("write username: %w", err)
	}
	p.WriteSlice([]byte{0}) // has sig data
	return p, nil
}

// LoginSuccess is sent by the server after a successful login (clientbound
// 0x02): sixteen raw UUID bytes followed by the username string.
type LoginSuccess struct {
	UUID     uuid.UUID
	Username string
}

// DecodeLoginSuccess reads a login success payload from p. The framing
// layer has already consumed the protocol id.
func DecodeLoginSuccess(p *Packet) (*LoginSuccess, error) {
	raw, err := p.ReadSlice(16)
	if err != nil {
		return nil, fmt.Errorf("read uuid: %w", err)
	}
	id, err := uuid.FromBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("parse uuid: %w", err)
	}
	name, err := p.ReadString()
	if err != nil {
		return nil, fmt.Errorf("read username: %w", err)
	}
	return &LoginSuccess{UUID: id, Username: name}, nil
}
