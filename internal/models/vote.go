// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Vote values. A vote row holds exactly one of these; anything else is
// rejected before it reaches storage.
const (
	Upvote   = 1
	Downvote = -1
)

// ValidVote reports whether v is an accepted vote value.
func ValidVote(v int) bool {
	return v == Upvote || v == Downvote
}

// VoteCounts is the derived tally of a subject's votes. It is computed
// from raw vote rows at read time — no running counters are kept.
type VoteCounts struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
}

// TallyVotes counts upvotes and downvotes in a set of raw vote values.
func TallyVotes(values []int) VoteCounts {
	var t VoteCounts
	for _, v := range values {
		switch v {
		case Upvote:
			t.Upvotes++
		case Downvote:
			t.Downvotes++
		}
	}
	return t
}
