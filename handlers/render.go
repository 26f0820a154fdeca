// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-elect/actions"
	"github.com/danielhkuo/quickly-elect/election"
	"github.com/danielhkuo/quickly-elect/platform"
)

const (
	colorBlurple   = 0x5865F2
	colorDarkGreen = 0x1F8B4C
)

// electionMessage renders the public election embed with its Vote/Results
// buttons. Posted once at setup and refreshed whenever the voter count
// changes.
func electionMessage(id actions.ElectionID, e *election.Election) platform.Message {
	var candidates []string
	for _, name := range e.CandidateNames() {
		candidates = append(candidates, fmt.Sprintf("* %s (Region %s)", name, e.Candidates[name]))
	}

	embed := platform.Embed{
		Title: "Ranked Office Election",
		Color: colorBlurple,
		Fields: []platform.Field{
			{Name: "Candidates", Value: strings.Join(candidates, "\n")},
		},
	}

	if len(e.ReservedOffices) > 0 {
		var reserved []string
		for _, region := range e.ReservedOffices {
			reserved = append(reserved, fmt.Sprintf("* %s", region))
		}
		embed.Fields = append(embed.Fields, platform.Field{
			Name:  "Reserved offices",
			Value: strings.Join(reserved, "\n"),
		})
	}

	if e.VoterCount() > 0 {
		embed.Fields = append(embed.Fields, platform.Field{
			Name:   "Voters",
			Value:  humanize.Comma(int64(e.VoterCount())),
			Inline: true,
		})
	}

	return platform.Message{
		Embeds: []platform.Embed{embed},
		Buttons: []platform.Button{
			{
				CustomID: actions.Encode(actions.ElectionAction{ID: id, Kind: actions.InitiateVote}),
				Label:    "Vote!",
				Style:    platform.StylePrimary,
				Emoji:    "🗳️",
			},
			{
				CustomID: actions.Encode(actions.ElectionAction{ID: id, Kind: actions.GetResult}),
				Label:    "Results",
				Style:    platform.StyleSecondary,
				Emoji:    "🧮",
			},
		},
	}
}

// ballotEmbed shows a voter their own recorded ballot.
func ballotEmbed(b *election.Ballot) platform.Embed {
	var lines []string
	for _, name := range b.Names() {
		lines = append(lines, fmt.Sprintf("* %s %d", name, b.Votes[name]))
	}
	return platform.Embed{
		Title: "Your current ballot",
		Color: colorDarkGreen,
		Fields: []platform.Field{
			{Name: "Votes", Value: strings.Join(lines, "\n")},
		},
	}
}

// confirmMessage asks a returning voter whether to discard their old ballot.
func confirmMessage(voteID actions.VoteID, existing *election.Ballot) platform.Message {
	return platform.Message{
		Content: "You have already submitted a ballot. " +
			"Voting again will overwrite your existing votes. Is this okay?",
		Embeds: []platform.Embed{ballotEmbed(existing)},
		Buttons: []platform.Button{
			{
				CustomID: actions.Encode(actions.VoteAction{ID: voteID, Kind: actions.ConfirmInitiateVote}),
				Label:    "Vote Again",
				Style:    platform.StyleDanger,
				Emoji:    "🗳️",
			},
			{
				CustomID: actions.Encode(actions.VoteAction{ID: voteID, Kind: actions.CancelVote}),
				Label:    "Keep Existing Votes",
				Style:    platform.StyleSecondary,
				Emoji:    "✅",
			},
		},
	}
}

// votePrompt renders the ranking step for one candidate: a 1-5 menu plus
// Skip and Stop Voting.
func votePrompt(e *election.Election, b *election.Ballot, name election.Name, voteID actions.VoteID) platform.Message {
	position := len(b.Votes) + 1
	total := len(e.Candidates)

	return platform.Message{
		Content: fmt.Sprintf("# Please vote for the candidate\n%s (Region: %s)\n-# %s of %d",
			name, e.Candidates[name], humanize.Ordinal(position), total),
		Menu: &platform.SelectMenu{
			CustomID: actions.Encode(actions.VoteAction{ID: voteID, Kind: actions.SelectVote}),
			Options: []platform.SelectOption{
				{Label: "1 (least desired)", Value: "1"},
				{Label: "2", Value: "2"},
				{Label: "3", Value: "3"},
				{Label: "4", Value: "4"},
				{Label: "5 (most desired)", Value: "5"},
			},
		},
		Buttons: []platform.Button{
			{
				CustomID: actions.Encode(actions.VoteAction{ID: voteID, Kind: actions.SkipVote}),
				Label:    "Skip",
				Style:    platform.StyleSecondary,
				Emoji:    "🤷",
			},
			{
				CustomID: actions.Encode(actions.VoteAction{ID: voteID, Kind: actions.VoidBallot}),
				Label:    "Stop Voting",
				Style:    platform.StyleDanger,
				Emoji:    "🛑",
			},
		},
	}
}

// resultMessage formats a finished tally, or the standing explanation when
// the office count could not be filled.
func resultMessage(winners []election.Name, ok bool) platform.Message {
	if !ok {
		return platform.Message{
			Content: "Election did not complete. Likely there were not enough " +
				"candidates to fill the required offices.",
		}
	}
	var lines []string
	for _, name := range winners {
		lines = append(lines, fmt.Sprintf("* **%s**", name))
	}
	return platform.Message{
		Content: "The following candidates have been elected:\n" + strings.Join(lines, "\n"),
	}
}
