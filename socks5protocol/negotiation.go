package socks5protocol

// negotiate performs the method selection step. Only "no authentication
// required" is offered; any method list without it gets a 0xFF response,
// written before the failure is returned so the client sees the rejection.
func negotiate(req *Socks5Request) error {
	header := []byte{0}
	if _, err := req.handshakeConn.Read(header); err != nil {
		return err
	}

	if header[0] == 0 {
		if _, err := req.handshakeConn.Write(noAcceptable); err != nil {
			return err
		}
		return ErrNoAuthMethodsOffered
	}

	methods := make([]byte, header[0])
	if _, err := req.handshakeConn.Read(methods); err != nil {
		return err
	}

	for _, method := range methods {
		if method == noAuthID {
			_, err := req.handshakeConn.Write(noAuth)
			return err
		}
	}

	if _, err := req.handshakeConn.Write(noAcceptable); err != nil {
		return err
	}

	return ErrNoAcceptableAuthMethod
}
