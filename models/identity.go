package models

// Identity is the request-scoped caller identity resolved from a bearer
// token. The zero value means an anonymous caller.
type Identity struct {
	ID    string
	Email string
}

func (id Identity) IsAnonymous() bool {
	return id.ID == ""
}
