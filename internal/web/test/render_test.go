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

// Package web_test covers the presentation layer: card ordering, the trusted
// markup contract for the judge's explanation, escaping of everything else,
// and the error panel.
package web_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaycherian/gcp-go-director-bakeoff/internal/core/model"
	"github.com/jaycherian/gcp-go-director-bakeoff/internal/web"
)

// newResult builds a three-way bake-off outcome where the submission order
// (A, B, C) differs from the rank order (B, C, A).
func newResult() *model.BakeOffResult {
	breakdown := func(director string) *model.CinematicBreakdown {
		return &model.CinematicBreakdown{
			Director:           director,
			VideoIdea:          "a chase across rooftops at dawn",
			SubjectDescription: "a courier with a battered satchel",
			ActionDescription:  "vaulting between rooftops",
			SettingDescription: "an old city waking under pink light",
			CinematicStyle:     "kinetic realism",
			ShotAndFraming:     "tracking medium shot",
			CameraMovement:     "fast lateral tracking",
			LightingAndColor:   "warm dawn tones",
		}
	}
	return &model.BakeOffResult{
		VideoIdea:          "a chase across rooftops at dawn",
		AdditionalDirector: "C",
		Breakdowns: []*model.CinematicBreakdown{
			breakdown("A"), breakdown("B"), breakdown("C"),
		},
		Ranking: &model.RankingResult{
			DirectorRankings: []int{3, 1, 2},
			Explanation:      "<h4>The Verdict</h4><p>B wins on momentum.</p>",
		},
	}
}

// TestResultsViewOrdersByRank verifies cards are sorted by rank ascending and
// the winner and suggested flags land on the right cards.
func TestResultsViewOrdersByRank(t *testing.T) {
	view := web.NewResultsView("app", newResult())

	require.Len(t, view.Cards, 3)
	assert.Equal(t, "B", view.Cards[0].Director)
	assert.Equal(t, "C", view.Cards[1].Director)
	assert.Equal(t, "A", view.Cards[2].Director)

	assert.True(t, view.Cards[0].Winner)
	assert.False(t, view.Cards[1].Winner)
	assert.True(t, view.Cards[1].Suggested)
	assert.False(t, view.Cards[0].Suggested)
}

// TestResultsViewStableOnTies verifies that equal ranks keep submission
// order, matching the first-minimum winner rule.
func TestResultsViewStableOnTies(t *testing.T) {
	result := newResult()
	result.Ranking.DirectorRankings = []int{1, 1, 2}
	view := web.NewResultsView("app", result)

	assert.Equal(t, "A", view.Cards[0].Director)
	assert.Equal(t, "B", view.Cards[1].Director)
	assert.True(t, view.Cards[0].Winner)
	assert.False(t, view.Cards[1].Winner)
}

// TestRenderResultsTrustedExplanation verifies the judge's markup is the one
// piece of model output rendered unescaped.
func TestRenderResultsTrustedExplanation(t *testing.T) {
	renderer, err := web.NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = renderer.RenderResults(&buf, web.NewResultsView("app", newResult()))
	require.NoError(t, err)

	page := buf.String()
	assert.Contains(t, page, "<h4>The Verdict</h4>")
	assert.NotContains(t, page, "&lt;h4&gt;")
}

// TestRenderResultsEscapesEverythingElse verifies that markup in any other
// field, model-produced or user-supplied, is escaped.
func TestRenderResultsEscapesEverythingElse(t *testing.T) {
	renderer, err := web.NewRenderer()
	require.NoError(t, err)

	result := newResult()
	result.Breakdowns[0].Director = `<script>alert("x")</script>`
	result.Breakdowns[0].SubjectDescription = "<b>bold subject</b>"
	result.VideoIdea = "<img src=x>"

	var buf bytes.Buffer
	err = renderer.RenderResults(&buf, web.NewResultsView("app", result))
	require.NoError(t, err)

	page := buf.String()
	assert.NotContains(t, page, `<script>alert`)
	assert.NotContains(t, page, "<b>bold subject</b>")
	assert.NotContains(t, page, "<img src=x>")
}

// TestRenderResultsShowsAssembledPrompt verifies each card carries its
// assembled prompt and detail attributes.
func TestRenderResultsShowsAssembledPrompt(t *testing.T) {
	renderer, err := web.NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = renderer.RenderResults(&buf, web.NewResultsView("app", newResult()))
	require.NoError(t, err)

	page := buf.String()
	assert.Contains(t, page, "A courier with a battered satchel, vaulting between rooftops")
	assert.Contains(t, page, "Lighting &amp; Color")
	assert.Equal(t, 3, strings.Count(page, "rank-badge"))
}

// TestRenderForm verifies the form page is prefilled with the configured
// roster.
func TestRenderForm(t *testing.T) {
	renderer, err := web.NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = renderer.RenderForm(&buf, &web.FormView{
		AppName:       "app",
		FormDirectors: "Quentin Tarantino, Alfred Hitchcock",
	})
	require.NoError(t, err)
	page := buf.String()
	assert.Contains(t, page, `value="Quentin Tarantino, Alfred Hitchcock"`)
	// The inline progress placeholder revealed while a run is in flight.
	assert.Contains(t, page, `id="progress"`)
}

// TestRenderError verifies the error panel shows the message and tucks the
// trace into a collapsible section.
func TestRenderError(t *testing.T) {
	renderer, err := web.NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = renderer.RenderError(&buf, &web.ErrorView{
		AppName: "app",
		Message: "The bake-off could not be completed.",
		Trace:   "bake-off stage ranking_judge failed: upstream transport failure",
	})
	require.NoError(t, err)

	page := buf.String()
	assert.Contains(t, page, "The bake-off could not be completed.")
	assert.Contains(t, page, "<details>")
	assert.Contains(t, page, "ranking_judge")
}
