package domain

// Identity is the verified principal attached to an inbound request. It is
// minted by the external auth provider; this service only consumes it.
type Identity struct {
	UserID string
	Email  string
	Name   string
}
