package domain

// AdminCredentials is stored in plaintext in the document.
type AdminCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// IsZero reports whether no credentials were stored.
func (c AdminCredentials) IsZero() bool {
	return c.Username == "" && c.Password == ""
}

// Principal is the authenticated caller.
type Principal struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}
