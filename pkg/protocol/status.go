package protocol

import "fmt"

// StatusRequest asks the server for its status JSON (serverbound 0x00 in
// Status state). The payload is just the id.
type StatusRequest struct{}

func (StatusRequest) Encode() (*Packet, error) {
	p := New()
	if err := p.WriteVarInt(int32(C2SStatusRequest)); err != nil {
		return nil, err
	}
	return p, nil
}

// StatusResponse carries the server's status document (clientbound 0x00 in
// Status state). The JSON schema is the caller's concern.
type StatusResponse struct {
	JSON string
}

func DecodeStatusResponse(p *Packet) (*StatusResponse, error) {
	s, err := p.ReadString()
	if err != nil {
		return nil, fmt.Errorf("read status json: %w", err)
	}
	return &StatusResponse{JSON: s}, nil
}
