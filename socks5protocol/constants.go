package socks5protocol

const socks5Version = byte(5)

// Auth constants
const (
	noAuthID       = byte(0)
	noAcceptableID = byte(255)
)

// Command types
const (
	ConnectCommand = uint8(1)
	BindCommand    = uint8(2)
)

// Address types
const (
	IPv4Address     = uint8(1)
	HostnameAddress = uint8(3)
	IPv6Address     = uint8(4)
)

// Negotiation responses
var (
	noAuth       = []byte{socks5Version, noAuthID}
	noAcceptable = []byte{socks5Version, noAcceptableID}
)

// Reply codes
const (
	SuccessReply byte = iota
	ServerFailure
	RuleFailure
	NetworkUnreachable
	HostUnreachable
	ConnectionRefused
	TTLExpired
	CommandNotSupported
	AddrTypeNotSupported
)
