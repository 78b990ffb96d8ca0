// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// This file defines the judge's verdict (RankingResult) and the final
// aggregate returned to the caller (BakeOffResult).
package model

import "fmt"

// DirectorSuggestion is the structured output of the suggestion stage: a
// single director name the model believes complements the user's selections.
type DirectorSuggestion struct {
	AdditionalDirector string `json:"additional_director"` // The name of one more director suited to the video idea.
}

// RankingResult is the judge's verdict over a set of cinematic breakdowns.
// The Reasoning field exists to make the model think before it answers: the
// prompt instructs it to write its comparison first, so the rankings and
// explanation that follow are grounded in it. It is carried through to the
// caller but is not presented.
type RankingResult struct {
	Reasoning        string `json:"reasoning"`         // The judge's internal comparison, produced before the rankings.
	DirectorRankings []int  `json:"director_rankings"` // One rank per breakdown, parallel to the judged list, 1 = best.
	Explanation      string `json:"explanation"`       // A formatted explanation of the verdict, intended for direct display.
}

// Validate checks the verdict against the number of breakdowns that were
// judged. The only hard invariant is that the rankings list is parallel to
// the breakdown list; duplicate or gapped rank values are tolerated and
// resolved by WinnerIndex.
//
// Inputs:
//   - breakdownCount: The number of breakdowns submitted to the judge.
//
// Outputs:
//   - error: A descriptive error on a length mismatch, or nil.
func (r *RankingResult) Validate(breakdownCount int) error {
	if len(r.DirectorRankings) != breakdownCount {
		return fmt.Errorf(
			"ranking result has %d entries but %d breakdowns were judged",
			len(r.DirectorRankings), breakdownCount)
	}
	return nil
}

// WinnerIndex returns the index of the breakdown holding the best (lowest)
// rank value. When the judge hands out the same rank more than once, the
// first occurrence in list order wins, which keeps the result deterministic.
// Returns -1 for an empty ranking.
func (r *RankingResult) WinnerIndex() int {
	winner := -1
	for i, rank := range r.DirectorRankings {
		if winner == -1 || rank < r.DirectorRankings[winner] {
			winner = i
		}
	}
	return winner
}

// BakeOffResult is the complete outcome of one bake-off run: the suggested
// director, every breakdown in submission order, and the judge's verdict.
// It is the single value handed from the workflow back to the web layer.
type BakeOffResult struct {
	VideoIdea          string                `json:"video_idea"`          // The concept the bake-off was run for.
	AdditionalDirector string                `json:"additional_director"` // The director the suggestion stage added to the roster.
	Breakdowns         []*CinematicBreakdown `json:"breakdowns"`          // All breakdowns, in the order they were submitted to the judge.
	Ranking            *RankingResult        `json:"ranking"`             // The judge's verdict over Breakdowns.
}

// Winner returns the breakdown the judge ranked best, or nil when the result
// holds no breakdowns.
func (b *BakeOffResult) Winner() *CinematicBreakdown {
	if b.Ranking == nil {
		return nil
	}
	idx := b.Ranking.WinnerIndex()
	if idx < 0 || idx >= len(b.Breakdowns) {
		return nil
	}
	return b.Breakdowns[idx]
}
