package client

import (
	"context"
	"fmt"
	"time"

	"github.com/go-theft-craft/chat/pkg/protocol"
)

func (c *Client) handshake(ctx context.Context, nextState int32) error {
	if err := c.ensureFreshHandshake(ctx); err != nil {
		return err
	}

	hs := protocol.Handshake{
		ProtocolVersion: protocol.ProtocolVersion,
		ServerAddress:   c.host,
		ServerPort:      c.port,
		NextState:       nextState,
	}
	p, err := hs.Encode()
	if err != nil {
		return fmt.Errorf("encode handshake: %w", err)
	}
	if err := c.SendPacket(p); err != nil {
		return fmt.Errorf("send handshake: %w", err)
	}
	c.state = StateHandshakeSent
	return nil
}

// Status performs a status query: handshake with next state 1, an empty
// status request, then the server's JSON document. The schema is the
// caller's concern.
func (c *Client) Status(ctx context.Context) (string, error) {
	if err := c.handshake(ctx, protocol.NextStateStatus); err != nil {
		return "", err
	}

	req, err := (protocol.StatusRequest{}).Encode()
	if err != nil {
		return "", fmt.Errorf("encode status request: %w", err)
	}
	if err := c.SendPacket(req); err != nil {
		return "", fmt.Errorf("send status request: %w", err)
	}

	frame, err := c.BlockUntilPacketID(ctx, protocol.S2CStatusResponse)
	if err != nil {
		return "", err
	}
	resp, err := protocol.DecodeStatusResponse(frame)
	if err != nil {
		return "", fmt.Errorf("decode status response: %w", err)
	}

	c.log.Info("status received", "bytes", len(resp.JSON))
	return resp.JSON, nil
}

// Login performs an offline-mode login: handshake with next state 2, a
// login start carrying username, then the server's login success. On
// return the connection is in the play state.
func (c *Client) Login(ctx context.Context, username string) (*protocol.LoginSuccess, error) {
	if err := c.handshake(ctx, protocol.NextStateLogin); err != nil {
		return nil, err
	}

	start, err := (&protocol.LoginStart{Username: username}).Encode()
	if err != nil {
		return nil, fmt.Errorf("encode login start: %w", err)
	}
	if err := c.SendPacket(start); err != nil {
		return nil, fmt.Errorf("send login start: %w", err)
	}

	frame, err := c.BlockUntilPacketID(ctx, protocol.S2CLoginSuccess)
	if err != nil {
		return nil, err
	}
	success, err := protocol.DecodeLoginSuccess(frame)
	if err != nil {
		return nil, fmt.Errorf("decode login success: %w", err)
	}

	c.log.Info("login success", "username", success.Username, "uuid", success.UUID)
	return success, nil
}

// SendChatMessage sends msg as an unsigned play-state chat message stamped
// with the current time.
func (c *Client) SendChatMessage(msg string) error {
	p, err := (&protocol.ChatMessage{Message: msg, Timestamp: time.Now()}).Encode()
	if err != nil {
		return fmt.Errorf("encode chat message: %w", err)
	}
	if err := c.SendPacket(p); err != nil {
		return fmt.Errorf("send chat message: %w", err)
	}
	return nil
}

// RespondToKeepAlive waits for the server's next keep alive and echoes its
// id back. Call it in a loop to stay connected in the play state.
func (c *Client) RespondToKeepAlive(ctx context.Context) error {
	frame, err := c.BlockUntilPacketID(ctx, protocol.S2CKeepAlive)
	if err != nil {
		return err
	}
	ka, err := protocol.DecodeKeepAlive(frame)
	if err != nil {
		return fmt.Errorf("decode keep alive: %w", err)
	}

	echo, err := ka.Encode()
	if err != nil {
		return fmt.Errorf("encode keep alive echo: %w", err)
	}
	if err := c.SendPacket(echo); err != nil {
		return fmt.Errorf("send keep alive echo: %w", err)
	}

	c.log.Debug("keep alive echoed", "id", ka.ID)
	return nil
}
