package identity

import "time"

// Member represents a registered household member who may administer the
// ledger.
type Member struct {
	ID           string
	Username     string
	PINHash      []byte
	TokenVersion int
	CreatedAt    time.Time
	LastLogin    time.Time
}

// Credentials carries a login or registration request.
type Credentials struct {
	Username string
	PIN      string
}
