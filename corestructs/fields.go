package corestructs

import (
	"net"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	HostTypeIPv4 = iota
	HostTypeIPv6
	HostTypeHostname
)

// Fields holds the per-session state shared between the protocol reader and
// the tunnel handler. One instance lives as long as one client connection.
type Fields struct {
	Conn     net.Conn
	Timeouts *Timeouts

	SessionID string

	UserIP  string
	ProxyIP string

	HostType int
	Host     string
	HostIP   net.IP
	Port     string
	PortNum  uint16

	Download int64
	Upload   int64

	LogFields []zapcore.Field
}

// Clean resets per-session state before the Fields go back into the pool.
// The target fields must not survive: failure replies echo HostType, and a
// session that fails before address parsing has to answer with the IPv4
// zero address, not the previous session's type.
func (f *Fields) Clean() {
	f.Conn = nil
	f.Timeouts = nil
	f.SessionID = ""
	f.HostType = HostTypeIPv4
	f.Host = ""
	f.HostIP = nil
	f.Port = ""
	f.PortNum = 0
	f.LogFields = f.LogFields[:0]
}

func (f *Fields) FillLogFields() {
	f.LogFields = append(f.LogFields,
		zap.String("host", f.Host),
		zap.Uint16("port", f.PortNum),
	)
}
