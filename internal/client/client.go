// Package client implements a single-connection Minecraft Java Edition
// client: length-prefixed framing over TCP and the handshake → status/login
// → play sequencing on top of the pkg/protocol codec.
package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/go-theft-craft/chat/pkg/protocol"
)

// State tracks where the connection is in the handshake cycle.
type State int

const (
	// StateFresh means no handshake has been sent on the current stream.
	StateFresh State = iota
	// StateHandshakeSent means the stream is committed to whatever state
	// the handshake negotiated; a new handshake needs a new stream.
	StateHandshakeSent
	// StateClosed means the client has been closed and cannot redial.
	StateClosed
)

// ErrTimeout is returned when a context deadline expires while waiting for
// a packet.
var ErrTimeout = errors.New("client: timed out waiting for packet")

// Client owns one connection to one server. It is not safe for concurrent
// use: reads and writes share the buffered stream halves with no internal
// locking. Use one Client per session.
type Client struct {
	host string
	port uint16
	log  *slog.Logger

	dial func(ctx context.Context) (net.Conn, error)

	conn  net.Conn
	r     *bufio.Reader
	w     *bufio.Writer
	state State
}

// Dial connects to host:port and returns a Client ready to handshake.
func Dial(ctx context.Context, host string, port uint16, log *slog.Logger) (*Client, error) {
	c := &Client{
		host: host,
		port: port,
		log:  log.With("server", net.JoinHostPort(host, strconv.Itoa(int(port)))),
	}
	c.dial = func(ctx context.Context) (net.Conn, error) {
		var d net.Dialer
		return d.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(int(port))))
	}
	if err := c.redial(ctx); err != nil {
		return nil, err
	}
	c.log.Info("connected")
	return c, nil
}

func (c *Client) redial(ctx context.Context) error {
	if c.conn != nil {
		c.conn.Close()
	}
	conn, err := c.dial(ctx)
	if err != nil {
		return fmt.Errorf("connect to %s:%d: %w", c.host, c.port, err)
	}
	c.conn = conn
	c.r = bufio.NewReader(conn)
	c.w = bufio.NewWriter(conn)
	c.state = StateFresh
	return nil
}

// ensureFreshHandshake guarantees the next handshake goes out on a stream
// that has not seen one. A second handshake on the same socket would land
// in whatever state the previous one negotiated, so leaving
// StateHandshakeSent always dials a new stream.
func (c *Client) ensureFreshHandshake(ctx context.Context) error {
	switch c.state {
	case StateClosed:
		return errors.New("client is closed")
	case StateHandshakeSent:
		c.log.Debug("redialing before new handshake")
		return c.redial(ctx)
	default:
		return nil
	}
}

// Close shuts the connection down. The client cannot be reused afterwards.
func (c *Client) Close() error {
	c.state = StateClosed
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// SendPacket frames and writes one packet: varint length prefix, then the
// payload, then a flush. This is the only path that flushes the write half.
func (c *Client) SendPacket(p *protocol.Packet) error {
	prefix := protocol.New()
	if err := prefix.WriteVarInt(int32(p.Len())); err != nil {
		return fmt.Errorf("encode length prefix: %w", err)
	}
	if _, err := c.w.Write(prefix.Bytes()); err != nil {
		return fmt.Errorf("write length prefix: %w", err)
	}
	if _, err := c.w.Write(p.Bytes()); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	if err := c.w.Flush(); err != nil {
		return fmt.Errorf("flush packet: %w", err)
	}
	return nil
}

// ReadPacket reads one inbound frame. The length prefix is read one byte
// at a time because its size is unknown until the continuation bit clears.
// A prefix that fails to terminate within five bytes is reported as no
// frame, (nil, nil): it can be a transient misalignment rather than a dead
// stream, and the dispatch loop just keeps going.
//
// The returned packet already carries its protocol id tag.
func (c *Client) ReadPacket() (*protocol.Packet, error) {
	prefix := protocol.New()
	for {
		b, err := c.r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("read length prefix: %w", err)
		}
		prefix.WriteSlice([]byte{b})
		if prefix.Len() > protocol.MaxVarIntBytes {
			return nil, nil
		}
		if b&0x80 == 0 {
			break
		}
	}

	length, err := prefix.ReadVarInt()
	if err != nil {
		return nil, fmt.Errorf("decode length prefix: %w", err)
	}
	if length < 1 {
		return nil, fmt.Errorf("frame length %d: %w", length, protocol.ErrFraming)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(c.r, payload); err != nil {
		return nil, fmt.Errorf("read %d-byte frame: %w", length, err)
	}

	p := protocol.FromBytes(payload)
	if _, err := p.ReadProtocolID(); err != nil {
		return nil, fmt.Errorf("read protocol id: %w", err)
	}
	return p, nil
}

// BlockUntilPacketID discards frames until one arrives with the wanted
// protocol id. The context bounds the wait: a deadline is pushed down to
// the stream and expiry surfaces as ErrTimeout.
func (c *Client) BlockUntilPacketID(ctx context.Context, id byte) (*protocol.Packet, error) {
	if deadline, ok := ctx.Deadline(); ok {
		if err := c.conn.SetReadDeadline(deadline); err != nil {
			return nil, fmt.Errorf("set read deadline: %w", err)
		}
		defer c.conn.SetReadDeadline(time.Time{})
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p, err := c.ReadPacket()
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				return nil, fmt.Errorf("waiting for packet 0x%02X: %w", id, ErrTimeout)
			}
			return nil, err
		}
		if p == nil {
			continue
		}

		got, ok := p.ProtocolID()
		if !ok || got != id {
			c.log.Debug("discarding frame", "id", fmt.Sprintf("0x%02X", got), "want", fmt.Sprintf("0x%02X", id))
			continue
		}
		return p, nil
	}
}
