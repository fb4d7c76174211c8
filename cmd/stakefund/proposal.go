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
	"time"

	"github.com/spf13/cobra"
)

var proposalFlags = struct {
	proposer    string
	description string
	duration    time.Duration
	voter       string
	no          bool
	stake       uint64
	actor       string
}{}

func proposalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proposal",
		Short: "Manage spending proposals and votes",
	}
	cmd.AddCommand(proposalCreateCommand())
	cmd.AddCommand(proposalShowCommand())
	cmd.AddCommand(proposalVoteCommand())
	cmd.AddCommand(proposalExecuteCommand())
	return cmd
}

func proposalCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [campaign ID]",
		Short: "Open a time-bounded proposal on a campaign",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ledger, err := openLedger(cmd)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			defer ledger.Close()
			proposalID, err := ledger.CreateProposal(
				args[0],
				proposalFlags.proposer,
				proposalFlags.description,
				proposalFlags.duration,
			)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(proposalID)
		},
	}
	cmd.Flags().
		StringVar(&proposalFlags.proposer, "proposer", "", "proposer identity")
	cmd.Flags().
		StringVar(&proposalFlags.description, "description", "", "proposal description")
	cmd.Flags().
		DurationVar(&proposalFlags.duration, "duration", time.Hour, "voting window duration")
	//nolint:errcheck
	cmd.MarkFlagRequired("proposer")
	return cmd
}

func proposalShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [proposal ID]",
		Short: "Show a proposal and its tallies",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ledger, err := openLedger(cmd)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			defer ledger.Close()
			proposal, err := ledger.Proposal(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			status := "closed"
			if proposal.Open(time.Now().Unix()) {
				status = "open"
			}
			fmt.Printf("Proposal:    %s\n", proposal.ProposalID)
			fmt.Printf("Campaign:    %s\n", proposal.CampaignID)
			fmt.Printf("Proposer:    %s\n", proposal.Proposer)
			if proposal.Description != "" {
				fmt.Printf("Description: %s\n", proposal.Description)
			}
			fmt.Printf("Status:      %s\n", status)
			fmt.Printf(
				"Ends:        %s\n",
				time.Unix(proposal.EndTime, 0).Format(time.RFC3339),
			)
			fmt.Printf("Yes votes:   %d\n", proposal.YesVotes)
			fmt.Printf("No votes:    %d\n", proposal.NoVotes)
			fmt.Printf("Executed:    %t\n", proposal.Executed)
		},
	}
}

func proposalVoteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vote [proposal ID]",
		Short: "Cast a vote on an open proposal",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ledger, err := openLedger(cmd)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			defer ledger.Close()
			stake := proposalFlags.stake
			if !cmd.Flags().Changed("stake") {
				// Default to the voter's recorded stake in the campaign
				proposal, err := ledger.Proposal(args[0])
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					os.Exit(1)
				}
				stake, err = ledger.DonorStake(
					proposal.CampaignID,
					proposalFlags.voter,
				)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					os.Exit(1)
				}
			}
			result, err := ledger.CastVote(
				args[0],
				proposalFlags.voter,
				!proposalFlags.no,
				stake,
			)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Yes votes: %d\n", result.YesVotes)
			fmt.Printf("No votes:  %d\n", result.NoVotes)
			fmt.Printf("Reward:    %d\n", result.Reward)
			if result.RewardErr != nil {
				fmt.Fprintf(
					os.Stderr,
					"Warning: vote counted but reward transfer failed: %v\n",
					result.RewardErr,
				)
			}
		},
	}
	cmd.Flags().
		StringVar(&proposalFlags.voter, "voter", "", "voter identity")
	cmd.Flags().
		BoolVar(&proposalFlags.no, "no", false, "vote against instead of in favor")
	cmd.Flags().
		Uint64Var(&proposalFlags.stake, "stake", 0, "voter stake, defaults to recorded donations")
	//nolint:errcheck
	cmd.MarkFlagRequired("voter")
	return cmd
}

func proposalExecuteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "execute [proposal ID]",
		Short: "Mark a closed proposal as executed",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ledger, err := openLedger(cmd)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			defer ledger.Close()
			err = ledger.MarkProposalExecuted(args[0], proposalFlags.actor)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("executed")
		},
	}
	cmd.Flags().
		StringVar(&proposalFlags.actor, "actor", "", "executing identity, must be the proposer")
	//nolint:errcheck
	cmd.MarkFlagRequired("actor")
	return cmd
}
