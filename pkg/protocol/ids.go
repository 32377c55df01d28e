package protocol

// ProtocolVersion is the protocol number this client speaks: 759, Java
// Edition 1.19. There is no version negotiation; servers on other versions
// reject the handshake.
const ProtocolVersion = 759

// Next-state values carried in the handshake.
const (
	NextStateStatus int32 = 1
	NextStateLogin  int32 = 2
)

// Packet ids for the states this client touches, protocol 759.
const (
	// Handshaking (C→S)
	C2SHandshake byte = 0x00

	// Status
	C2SStatusRequest  byte = 0x00
	S2CStatusResponse byte = 0x00

	// Login
	C2SLoginStart   byte = 0x00
	S2CLoginSuccess byte = 0x02

	// Play
	C2SChatMessage byte = 0x04
	C2SKeepAlive   byte = 0x11
	S2CKeepAlive   byte = 0x1E
)
