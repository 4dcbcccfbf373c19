package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User owns exactly one wallet.
type User struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Wallet    WalletAccount `json:"wallet"`
	CreatedAt time.Time     `json:"createdAt"`
}

// HasEmail compares emails case-insensitively.
func (u *User) HasEmail(email string) bool {
	return strings.EqualFold(strings.TrimSpace(u.Email), strings.TrimSpace(email))
}
