package internal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

// Console drives the interactive session: a login-level menu (create account,
// log in, exit) and a user-level menu (record transactions, run queries, view
// history). Input and output are plain streams so tests can script a whole
// session.
type Console struct {
	platform *Platform
	in       *bufio.Scanner
	out      io.Writer
	currency Currency

	// readPassword prompts for a password without echoing when possible.
	// Injectable so scripted sessions can answer from the input stream.
	readPassword func(prompt string) (string, error)
}

// NewConsole builds a console over the given streams. When in is the process
// stdin on a terminal, passwords are read without echo.
func NewConsole(platform *Platform, in io.Reader, out io.Writer, cur Currency) *Console {
	c := &Console{
		platform: platform,
		in:       bufio.NewScanner(in),
		out:      out,
		currency: cur,
	}
	c.readPassword = func(prompt string) (string, error) {
		fmt.Fprint(c.out, prompt)
		if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			defer fmt.Fprintln(c.out)
			pw, err := term.ReadPassword(int(f.Fd()))
			return string(pw), err
		}
		return c.readLine()
	}
	return c
}

func (c *Console) readLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	return c.readLine()
}

// Run executes the login-level menu until the user exits or input ends.
func (c *Console) Run() error {
	for {
		fmt.Fprintln(c.out, "\n*** Welcome to the Titan Payment Platform ***")
		fmt.Fprintln(c.out, "1. Create a new account")
		fmt.Fprintln(c.out, "2. Login to an existing account")
		fmt.Fprintln(c.out, "3. Exit")

		choice, err := c.prompt("Please select an option to proceed: ")
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			if err := c.createAccount(); err != nil {
				if err == io.EOF {
					return nil
				}
				fmt.Fprintf(c.out, "Could not create account: %v\n", err)
			}
		case "2":
			if err := c.login(); err != nil {
				if err == io.EOF {
					return nil
				}
				return err
			}
		case "3":
			return nil
		default:
			fmt.Fprintln(c.out, "Incorrect option. Please enter 1, 2 or 3 to proceed.")
		}
	}
}

func (c *Console) createAccount() error {
	var username string
	for {
		u, err := c.prompt("Please enter your desired username: ")
		if err != nil {
			return err
		}
		if c.platform.HasAccount(u) {
			fmt.Fprintf(c.out, "Username %s already exists. Please use a different name.\n", u)
			continue
		}
		username = u
		break
	}

	var password string
	for {
		pw, err := c.readPassword("Please enter your password: ")
		if err != nil {
			return err
		}
		pw2, err := c.readPassword("Please confirm your password: ")
		if err != nil {
			return err
		}
		if pw != pw2 {
			fmt.Fprintln(c.out, "Passwords do not match. Please try again.")
			continue
		}
		password = pw
		break
	}

	fullName, err := c.prompt("Please enter your full name: ")
	if err != nil {
		return err
	}
	phone, err := c.prompt("Please enter your phone number: ")
	if err != nil {
		return err
	}
	country, err := c.prompt("Please enter your country of residence: ")
	if err != nil {
		return err
	}
	address, err := c.prompt("Please provide your full address: ")
	if err != nil {
		return err
	}

	_, err = c.platform.CreateAccount(AccountDetails{
		Username:    username,
		Password:    password,
		FullName:    fullName,
		PhoneNumber: phone,
		Country:     country,
		Address:     address,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, "New user account successfully created.")
	return nil
}

func (c *Console) login() error {
	username, err := c.prompt("Please enter your username: ")
	if err != nil {
		return err
	}
	password, err := c.readPassword("Please enter your password: ")
	if err != nil {
		return err
	}

	account, err := c.platform.Login(username, password)
	if err != nil {
		fmt.Fprintf(c.out, "Login failed: %v\n", err)
		return nil
	}
	fmt.Fprintln(c.out, "Login successful.")
	return c.userMenu(account)
}

func (c *Console) userMenu(account *Account) error {
	for c.platform.Current() != nil {
		fmt.Fprintf(c.out, "\nWelcome back, %s!\n", account.FullName)
		fmt.Fprintln(c.out, "1. Display user info")
		fmt.Fprintln(c.out, "2. Record a transaction")
		fmt.Fprintln(c.out, "3. Show minimum and maximum purchase")
		fmt.Fprintln(c.out, "4. Show amount due and total paid")
		fmt.Fprintln(c.out, "5. Retrieve payment history")
		fmt.Fprintln(c.out, "6. Display purchase history")
		fmt.Fprintln(c.out, "7. Import transactions from file")
		fmt.Fprintln(c.out, "8. Log out")

		choice, err := c.prompt("Please select an option to proceed: ")
		if err != nil {
			return err
		}

		var actionErr error
		switch choice {
		case "1":
			c.displayInfo(account)
		case "2":
			actionErr = c.recordTransaction()
		case "3":
			PrintMinMax(c.out, account.Log.MinPurchase, account.Log.MaxPurchase, c.currency)
		case "4":
			due, paid := account.Log.QueryTotals()
			PrintTotals(c.out, due, paid, c.currency)
		case "5":
			PrintHistory(c.out, account.Log.QueryPurchases(StatusPaid), c.currency)
		case "6":
			actionErr = c.purchaseHistory(account)
		case "7":
			actionErr = c.importFile()
		case "8":
			if err := c.platform.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Successfully logged out.")
		default:
			fmt.Fprintln(c.out, "Incorrect option. Please enter a number in 1-8 to proceed.")
		}

		if actionErr == io.EOF {
			return io.EOF
		}
		if actionErr != nil {
			fmt.Fprintf(c.out, "Error: %v\n", actionErr)
		}
	}
	return nil
}

func (c *Console) displayInfo(account *Account) {
	fmt.Fprintf(c.out, "Username: %s\n", account.Username)
	fmt.Fprintf(c.out, "Full name: %s\n", account.FullName)
	fmt.Fprintf(c.out, "Phone number: %s\n", account.PhoneNumber)
	fmt.Fprintf(c.out, "Country: %s\n", account.Country)
	fmt.Fprintf(c.out, "Address: %s\n", account.Address)
}

func (c *Console) recordTransaction() error {
	date, err := c.promptDate("Enter date in format YYYY-MM-DD: ")
	if err != nil {
		return err
	}

	cards := strings.Join(c.platform.Rates().SupportedCards(), ", ")
	cardStr, err := c.prompt(fmt.Sprintf("Enter card type (%s): ", cards))
	if err != nil {
		return err
	}

	amountStr, err := c.prompt("Enter amount: ")
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return fmt.Errorf("invalid amount %q", amountStr)
	}

	statusStr, err := c.prompt("Enter 1 for payment or leave empty for purchase: ")
	if err != nil {
		return err
	}
	status := StatusDue
	if n, err := strconv.Atoi(statusStr); err == nil && n == 1 {
		status = StatusPaid
	}

	p, err := c.platform.RecordTransaction(date, strings.ToLower(cardStr), amount, status)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Transaction logged: %s\n", p)
	return nil
}

func (c *Console) purchaseHistory(account *Account) error {
	from, err := c.promptDate("Enter start date in format YYYY-MM-DD: ")
	if err != nil {
		return err
	}
	to, err := c.promptDate("Enter end date in format YYYY-MM-DD: ")
	if err != nil {
		return err
	}
	PrintHistory(c.out, account.Log.QueryPurchasesInRange(StatusDue, from, to), c.currency)
	return nil
}

func (c *Console) importFile() error {
	source, err := c.prompt(fmt.Sprintf("Enter source type (%s): ", strings.Join(AvailableSources(), ", ")))
	if err != nil {
		return err
	}
	path, err := c.prompt("Enter path to the transaction file: ")
	if err != nil {
		return err
	}
	n, err := c.platform.ImportFile(source, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Imported %d transactions.\n", n)
	return nil
}

func (c *Console) promptDate(label string) (time.Time, error) {
	s, err := c.prompt(label)
	if err != nil {
		return time.Time{}, err
	}
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return date, nil
}
