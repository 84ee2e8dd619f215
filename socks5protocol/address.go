package socks5protocol

import (
	"fmt"
	"net"
)

// Address is one decoded SOCKS5 address: a type tag, the raw value bytes as
// they appear on the wire (4 for IPv4, 16 for IPv6, the name for hostnames)
// and the port.
type Address struct {
	Type  byte
	Value []byte
	Port  uint16

	StrAddr         string
	StrAddrWithPort string
}

func (addr *Address) fillValues() {
	val := addr.Value
	switch addr.Type {
	case IPv4Address, IPv6Address:
		addr.StrAddr = net.IP(val).String()
	case HostnameAddress:
		addr.StrAddr = string(val)
	}
	if addr.Type == IPv6Address {
		addr.StrAddrWithPort = fmt.Sprintf("[%s]:%d", addr.StrAddr, addr.Port)
	} else {
		addr.StrAddrWithPort = fmt.Sprintf("%s:%d", addr.StrAddr, addr.Port)
	}
}

// AddressFromNetAddr converts a local or remote socket address into the
// Address carried by replies. 4-byte representable IPs are always encoded
// as IPv4.
func AddressFromNetAddr(netAddr net.Addr) *Address {
	res := &Address{Type: IPv4Address}

	var ip net.IP
	switch a := netAddr.(type) {
	case *net.TCPAddr:
		ip = a.IP
		res.Port = uint16(a.Port)
	case *net.UDPAddr:
		ip = a.IP
		res.Port = uint16(a.Port)
	}

	if ip4 := ip.To4(); ip4 != nil {
		res.Value = ip4
	} else if ip != nil {
		res.Type = IPv6Address
		res.Value = ip.To16()
	} else {
		res.Value = make([]byte, 4)
	}
	res.fillValues()

	return res
}
