package socks5protocol

// readCommand reads the request header that follows a successful method
// negotiation: version, command, reserved byte, then the target address.
func readCommand(req *Socks5Request) error {
	header := []byte{0, 0, 0, 0}
	var err error
	if _, err = req.handshakeConn.Read(header); err != nil {
		return err
	}
	if header[0] != socks5Version {
		return ErrVersionMismatch
	}
	if header[1] != ConnectCommand && header[1] != BindCommand {
		return ErrUnknownCommand
	}
	req.Command = header[1]

	return readAddress(req, header[3])
}
