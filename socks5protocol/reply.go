package socks5protocol

import (
	"github.com/duratarskeyk/go-common-utils/idlenet"
	"github.com/proxycore/socksd/corestructs"
)

// Reply is the single response message of the protocol. Addr carries the raw
// bytes of a bound socket address when one exists, Hostname carries the
// client-supplied name verbatim when it must be echoed back. Whichever is
// present wins; with neither, a zero address of the declared type's width is
// substituted so the message stays well-formed on every failure path.
type Reply struct {
	Status   byte
	AddrType byte
	Addr     []byte
	Hostname []byte
	Port     uint16
}

// NewSuccessReply builds a success reply that echoes the request's address
// type, as the protocol requires. hostname must be nil when the reply should
// carry the raw bound address instead, e.g. the second BIND reply.
func NewSuccessReply(addrType byte, bound *Address, hostname []byte) *Reply {
	return &Reply{
		Status:   SuccessReply,
		AddrType: addrType,
		Addr:     bound.Value,
		Hostname: hostname,
		Port:     bound.Port,
	}
}

// Bytes encodes the reply into its exact wire form.
func (r *Reply) Bytes() []byte {
	payload := r.Hostname
	if payload == nil {
		payload = r.Addr
	}
	if payload == nil {
		if r.AddrType == IPv6Address {
			payload = make([]byte, 16)
		} else {
			payload = make([]byte, 4)
		}
	}

	buf := make([]byte, 0, 7+len(payload))
	buf = append(buf, socks5Version, r.Status, 0, r.AddrType)
	if r.AddrType == HostnameAddress {
		buf = append(buf, byte(len(payload)))
	}
	buf = append(buf, payload...)
	buf = append(buf, byte(r.Port>>8), byte(r.Port&0xFF))

	return buf
}

// SendReply writes the reply to the client connection. The write is
// unbuffered, so the reply is on the wire once this returns.
func SendReply(req *Socks5Request, reply *Reply) error {
	_, err := idlenet.WriteWithTimeout(req.Fields.Conn, req.Fields.Timeouts.Write, reply.Bytes())
	return err
}

// SendFailReply writes a failure reply that echoes the request's address
// type with a zeroed address, the only well-formed shape available once the
// command could not be executed.
func SendFailReply(req *Socks5Request, replyCode byte) error {
	return SendReply(req, &Reply{
		Status:   replyCode,
		AddrType: AddrTypeForHostType(req.Fields.HostType),
	})
}

// AddrTypeForHostType maps the parsed host type back to its wire tag. Before
// any address was parsed HostType is zero, which maps to IPv4, the same
// default the failure paths of the protocol use.
func AddrTypeForHostType(hostType int) byte {
	switch hostType {
	case corestructs.HostTypeIPv6:
		return IPv6Address
	case corestructs.HostTypeHostname:
		return HostnameAddress
	default:
		return IPv4Address
	}
}
