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
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var campaignFlags = struct {
	creator     string
	name        string
	description string
	target      uint64
}{}

func campaignCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Manage crowdfunding campaigns",
	}
	cmd.AddCommand(campaignCreateCommand())
	cmd.AddCommand(campaignShowCommand())
	return cmd
}

func campaignCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new campaign",
		Run: func(cmd *cobra.Command, args []string) {
			ledger, err := openLedger(cmd)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			defer ledger.Close()
			campaignID, err := ledger.CreateCampaign(
				campaignFlags.creator,
				campaignFlags.name,
				campaignFlags.description,
				campaignFlags.target,
			)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(campaignID)
		},
	}
	cmd.Flags().
		StringVar(&campaignFlags.creator, "creator", "", "campaign creator identity")
	cmd.Flags().
		StringVar(&campaignFlags.name, "name", "", "campaign name")
	cmd.Flags().
		StringVar(&campaignFlags.description, "description", "", "campaign description")
	cmd.Flags().
		Uint64Var(&campaignFlags.target, "target", 0, "funding target, 0 for no fixed goal")
	//nolint:errcheck
	cmd.MarkFlagRequired("creator")
	//nolint:errcheck
	cmd.MarkFlagRequired("name")
	return cmd
}

func campaignShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [campaign ID]",
		Short: "Show a campaign and its donations",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ledger, err := openLedger(cmd)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			defer ledger.Close()
			campaign, err := ledger.Campaign(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Campaign:      %s\n", campaign.CampaignID)
			fmt.Printf("Creator:       %s\n", campaign.Creator)
			fmt.Printf("Name:          %s\n", campaign.Name)
			if campaign.Description != "" {
				fmt.Printf("Description:   %s\n", campaign.Description)
			}
			fmt.Printf("Target:        %d\n", uint64(campaign.TargetAmount))
			fmt.Printf("Current funds: %d\n", uint64(campaign.CurrentFunds))
			donations, err := ledger.Donations(campaign.CampaignID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Donations:     %d\n", len(donations))
			for _, donation := range donations {
				fmt.Printf(
					"  %s  %s  %d\n",
					donation.DonationID,
					donation.Donor,
					uint64(donation.Amount),
				)
			}
		},
	}
}
