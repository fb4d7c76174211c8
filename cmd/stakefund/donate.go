// Copyright 2025 Stakefund Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stakefund-io/stakefund/database/models"
)

var donateFlags = struct {
	donor  string
	amount uint64
}{}

func donateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "donate [campaign ID]",
		Short: "Record a donation to a campaign",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ledger, err := openLedger(cmd)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			defer ledger.Close()
			donationID, err := ledger.RecordDonation(
				args[0],
				donateFlags.donor,
				donateFlags.amount,
			)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(donationID)
		},
	}
	cmd.Flags().
		StringVar(&donateFlags.donor, "donor", "", "donor identity")
	cmd.Flags().
		Uint64Var(&donateFlags.amount, "amount", 0, "donation amount")
	//nolint:errcheck
	cmd.MarkFlagRequired("donor")
	//nolint:errcheck
	cmd.MarkFlagRequired("amount")
	return cmd
}

func balanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "balance [account]",
		Short: "Show an account's accumulated reward balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ledger, err := openLedger(cmd)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			defer ledger.Close()
			account, err := ledger.Database().GetAccount(args[0], nil)
			if err != nil {
				if errors.Is(err, models.ErrAccountNotFound) {
					fmt.Println(0)
					return
				}
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(uint64(account.Balance))
		},
	}
}
