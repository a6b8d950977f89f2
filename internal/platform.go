package internal

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotLoggedIn   = errors.New("no user is logged in")
	ErrUnknownUser   = errors.New("unknown username")
	ErrWrongPassword = errors.New("incorrect password")
	ErrUsernameTaken = errors.New("username already exists")
)

// Platform is one interactive session over the account store: it loads the
// account database, tracks the currently logged-in user, and writes the
// database back after every mutation. All calls happen on one goroutine; each
// purchase log is only ever touched through its owning account here, which
// keeps the log's single-owner contract.
type Platform struct {
	store    *Store
	rates    *RateTable
	accounts map[string]*Account
	current  *Account
}

// NewPlatform loads the account database from store. A missing data file
// starts an empty platform.
func NewPlatform(store *Store, rates *RateTable) (*Platform, error) {
	accounts, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Platform{
		store:    store,
		rates:    rates,
		accounts: accounts,
	}, nil
}

// Rates returns the fee schedule in effect for this session.
func (pf *Platform) Rates() *RateTable {
	return pf.rates
}

// Current returns the logged-in account, or nil.
func (pf *Platform) Current() *Account {
	return pf.current
}

// HasAccount reports whether username is taken.
func (pf *Platform) HasAccount(username string) bool {
	_, ok := pf.accounts[username]
	return ok
}

// CreateAccount registers a new account and persists the database.
func (pf *Platform) CreateAccount(d AccountDetails) (*Account, error) {
	if pf.HasAccount(d.Username) {
		return nil, fmt.Errorf("%w: %s", ErrUsernameTaken, d.Username)
	}
	account, err := NewAccount(d)
	if err != nil {
		return nil, err
	}
	pf.accounts[account.Username] = account
	if err := pf.Save(); err != nil {
		return nil, err
	}
	return account, nil
}

// Login makes the named account current after verifying the password.
func (pf *Platform) Login(username, password string) (*Account, error) {
	account, ok := pf.accounts[username]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUser, username)
	}
	if !account.CheckPassword(password) {
		return nil, ErrWrongPassword
	}
	pf.current = account
	return account, nil
}

// Logout persists the database and clears the current user.
func (pf *Platform) Logout() error {
	if err := pf.Save(); err != nil {
		return err
	}
	pf.current = nil
	return nil
}

// RecordTransaction builds a purchase from raw input, adds it to the current
// user's log and persists the database.
func (pf *Platform) RecordTransaction(date time.Time, card string, amount decimal.Decimal, status Status) (Purchase, error) {
	if pf.current == nil {
		return Purchase{}, ErrNotLoggedIn
	}
	p, err := NewPurchase(date, card, amount, status, pf.rates)
	if err != nil {
		return Purchase{}, err
	}
	pf.current.Log.AddPurchase(p)
	if err := pf.Save(); err != nil {
		return Purchase{}, err
	}
	return p, nil
}

// ImportFile parses a transaction file with the named parser and records every
// row into the current user's log. The file is validated in full before the
// first row is inserted, so a bad row cannot leave a half-imported log behind.
// Returns the number of records imported.
func (pf *Platform) ImportFile(source, path string) (int, error) {
	if pf.current == nil {
		return 0, ErrNotLoggedIn
	}
	parser, err := GetParser(source)
	if err != nil {
		return 0, err
	}
	rows, err := parser.Parse(path)
	if err != nil {
		return 0, err
	}

	purchases := make([]Purchase, 0, len(rows))
	for i, row := range rows {
		p, err := NewPurchase(row.Date, row.Card, row.Amount, row.Status, pf.rates)
		if err != nil {
			return 0, fmt.Errorf("record %d: %w", i+1, err)
		}
		purchases = append(purchases, p)
	}

	for _, p := range purchases {
		pf.current.Log.AddPurchase(p)
	}
	if err := pf.Save(); err != nil {
		return 0, err
	}
	return len(purchases), nil
}

// Save writes the account database back to the store.
func (pf *Platform) Save() error {
	return pf.store.Save(pf.accounts)
}
