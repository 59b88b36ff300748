package models

import (
	"github.com/google/uuid"
)

// MatchSide is the tally for one side of a match.
type MatchSide struct {
	DemoID   uuid.UUID `json:"demoId"`   // The demo on this side
	Total    int       `json:"total"`    // All votes for this side
	Audience int       `json:"audience"` // Audience votes for this side
	Judge    int       `json:"judge"`    // Judge votes for this side
	Score    float64   `json:"score"`    // Weighted final score in [0,1]
}

// MatchResult is the derived outcome of a match. It is never
// persisted, only the winner ID is stored when voting closes.
type MatchResult struct {
	MatchID  uuid.UUID  `json:"matchId"`
	A        MatchSide  `json:"a"`
	B        MatchSide  `json:"b"`
	WinnerID *uuid.UUID `json:"winnerId"` // nil on a tie
}

// ComputeMatchResult tallies a vote set for a match.
//
// Audience and judge votes each contribute half of the final score,
// scaled by the share of that voter class a side received. When no
// judge voted, the audience share alone determines the score. When no
// audience member voted, only the judge half contributes and a side
// can score at most 0.5. This asymmetry matches the original event
// tooling and is relied upon by published recaps, so it stays.
//
// The winner is the side with the strictly greater score. Equal
// scores, including a voteless match, mean no winner.
//
// The function is pure: live tally reads and the persisted result at
// close time run the exact same computation.
func ComputeMatchResult(match Match, votes []Vote) MatchResult {
	result := MatchResult{
		MatchID: match.ID,
		A:       MatchSide{DemoID: match.DemoAID},
		B:       MatchSide{DemoID: match.DemoBID},
	}

	for _, vote := range votes {
		var side *MatchSide
		switch vote.DemoID {
		case match.DemoAID:
			side = &result.A
		case match.DemoBID:
			side = &result.B
		default:
			// Votes for demos outside the match are never counted
			continue
		}

		side.Total++
		if vote.Type == VoteTypeJudge {
			side.Judge++
		} else {
			side.Audience++
		}
	}

	totalAudience := result.A.Audience + result.B.Audience
	totalJudge := result.A.Judge + result.B.Judge

	result.A.Score = score(result.A, totalAudience, totalJudge)
	result.B.Score = score(result.B, totalAudience, totalJudge)

	if result.A.Score > result.B.Score {
		result.WinnerID = &result.A.DemoID
	} else if result.B.Score > result.A.Score {
		result.WinnerID = &result.B.DemoID
	}

	return result
}

// score computes the weighted final score for one side.
func score(side MatchSide, totalAudience, totalJudge int) float64 {
	switch {
	case totalAudience > 0 && totalJudge > 0:
		return 0.5*float64(side.Audience)/float64(totalAudience) +
			0.5*float64(side.Judge)/float64(totalJudge)
	case totalAudience > 0:
		// Full weight shifts to the only present voter class
		return float64(side.Audience) / float64(totalAudience)
	case totalJudge > 0:
		// Deliberately not renormalized, see ComputeMatchResult
		return 0.5 * float64(side.Judge) / float64(totalJudge)
	}

	return 0
}
