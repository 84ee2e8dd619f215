package socks5protocol

import (
	"errors"
	"fmt"
)

var ErrVersionMismatch = errors.New("wrong socks version")
var ErrUnknownAddressType = errors.New("unknown address type")
var ErrUnknownCommand = errors.New("unknown command code received")
var ErrSliceTooShort = errors.New("slice is too short")
var ErrNoAuthMethodsOffered = errors.New("no auth methods offered")
var ErrNoAcceptableAuthMethod = errors.New("no acceptable auth method")

type ErrNegotiationFailure struct {
	err error
}

func (e *ErrNegotiationFailure) Error() string {
	return fmt.Sprintf("SOCKS5 negotiation error: %s", e.err)
}

func (e *ErrNegotiationFailure) Unwrap() error {
	return e.err
}

type ErrCommandReadFailure struct {
	err error
}

func (e *ErrCommandReadFailure) Error() string {
	return fmt.Sprintf("SOCKS5 command packet read error: %s", e.err)
}

func (e *ErrCommandReadFailure) Unwrap() error {
	return e.err
}
