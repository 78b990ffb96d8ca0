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

// This file covers the judge's verdict: winner selection, the parallelism
// invariant, and the aggregate result.
package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaycherian/gcp-go-director-bakeoff/internal/core/model"
)

// TestWinnerIndexFirstMinimum verifies the deterministic tie-break: when the
// best rank appears more than once, the earliest breakdown in submission
// order wins.
func TestWinnerIndexFirstMinimum(t *testing.T) {
	r := &model.RankingResult{DirectorRankings: []int{2, 1, 1, 3}}
	assert.Equal(t, 1, r.WinnerIndex())

	r = &model.RankingResult{DirectorRankings: []int{3, 2, 1}}
	assert.Equal(t, 2, r.WinnerIndex())

	// A single entry is trivially the winner.
	r = &model.RankingResult{DirectorRankings: []int{5}}
	assert.Equal(t, 0, r.WinnerIndex())
}

// TestWinnerIndexEmpty verifies that an empty verdict selects nobody.
func TestWinnerIndexEmpty(t *testing.T) {
	r := &model.RankingResult{}
	assert.Equal(t, -1, r.WinnerIndex())
}

// TestRankingValidate verifies the parallelism invariant between the verdict
// and the judged breakdowns.
func TestRankingValidate(t *testing.T) {
	r := &model.RankingResult{DirectorRankings: []int{1, 2, 3}}
	assert.NoError(t, r.Validate(3))

	err := r.Validate(4)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "3 entries")

	// Duplicate and gapped rank values are tolerated.
	r = &model.RankingResult{DirectorRankings: []int{1, 1, 7}}
	assert.NoError(t, r.Validate(3))
}

// TestBakeOffResultWinner verifies that the aggregate pairs the verdict with
// the right breakdown.
func TestBakeOffResultWinner(t *testing.T) {
	result := &model.BakeOffResult{
		Breakdowns: []*model.CinematicBreakdown{
			{Director: "A"},
			{Director: "B"},
			{Director: "C"},
		},
		Ranking: &model.RankingResult{DirectorRankings: []int{2, 3, 1}},
	}
	winner := result.Winner()
	assert.NotNil(t, winner)
	assert.Equal(t, "C", winner.Director)

	// No verdict, no winner.
	result.Ranking = nil
	assert.Nil(t, result.Winner())
}
