package main

import (
	"fmt"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/titanpay/titan/internal"
)

type Params struct {
	DataFile string `descr:"Path to the account data file" default:"titan-users.json"`
	Rates    string `descr:"Path to a YAML fee-rate table (built-in rates when omitted)"`
	Currency string `descr:"Currency code used when displaying amounts" default:"USD"`
}

func main() {
	boa.NewCmdT[Params]("titan").
		WithShort("Single-user payment ledger for tracking card purchases and payments").
		WithLong("Tracks purchases and payments across multiple payment cards, computing card and convenience fees and billing cycles at record time, with chronological history and running totals per account.").
		WithRunFunc(func(params *Params) {
			rates := internal.DefaultRates()
			if params.Rates != "" {
				var err error
				rates, err = internal.LoadRates(params.Rates)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error loading rates: %v\n", err)
					os.Exit(1)
				}
			}

			platform, err := internal.NewPlatform(internal.NewStore(params.DataFile), rates)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading account data: %v\n", err)
				os.Exit(1)
			}

			console := internal.NewConsole(platform, os.Stdin, os.Stdout, internal.GetCurrency(params.Currency))
			if err := console.Run(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}).
		Run()
}
