package internal

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Account is one user of the platform. Each account exclusively owns a single
// purchase log; the log has no existence apart from its account.
type Account struct {
	ID           uuid.UUID    `json:"id"`
	Username     string       `json:"username"`
	FullName     string       `json:"full_name"`
	PhoneNumber  string       `json:"phone_number"`
	Country      string       `json:"country"`
	Address      string       `json:"address"`
	PasswordHash []byte       `json:"password_hash"`
	Log          *PurchaseLog `json:"purchase_log"`
}

// AccountDetails carries the profile fields collected at signup.
type AccountDetails struct {
	Username    string
	Password    string
	FullName    string
	PhoneNumber string
	Country     string
	Address     string
}

// NewAccount creates an account with an empty purchase log. The password is
// stored only as a bcrypt hash.
func NewAccount(d AccountDetails) (*Account, error) {
	if d.Username == "" {
		return nil, fmt.Errorf("username must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(d.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	return &Account{
		ID:           uuid.New(),
		Username:     d.Username,
		FullName:     d.FullName,
		PhoneNumber:  d.PhoneNumber,
		Country:      d.Country,
		Address:      d.Address,
		PasswordHash: hash,
		Log:          NewPurchaseLog(),
	}, nil
}

// CheckPassword reports whether password matches the stored hash.
func (a *Account) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(password)) == nil
}
