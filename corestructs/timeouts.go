package corestructs

import (
	"encoding/json"
	"time"
)

type Timeouts struct {
	Handshake time.Duration
	Connect   time.Duration
	Read      time.Duration
	Write     time.Duration
}

// DefaultTimeouts returns the values used when no timeouts file is given.
func DefaultTimeouts() *Timeouts {
	return &Timeouts{
		Handshake: 30 * time.Second,
		Connect:   10 * time.Second,
		Read:      30 * time.Second,
		Write:     30 * time.Second,
	}
}

type timeoutsJSON struct {
	Handshake time.Duration `json:"handshake"`
	Connect   time.Duration `json:"connect"`
	Read      time.Duration `json:"read"`
	Write     time.Duration `json:"write"`
}

// UnmarshalJSON reads timeout values expressed in seconds.
func (t *Timeouts) UnmarshalJSON(data []byte) error {
	var tj timeoutsJSON
	if err := json.Unmarshal(data, &tj); err != nil {
		return err
	}
	t.Handshake = tj.Handshake * time.Second
	t.Connect = tj.Connect * time.Second
	t.Read = tj.Read * time.Second
	t.Write = tj.Write * time.Second

	return nil
}
