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

// Package web renders the browser-facing pages: the submission form, the
// ranked results, and the error panel. This file defines the view models the
// templates consume.
//
// Trust contract: the judge's explanation is the ONLY field rendered as raw
// markup (it is typed template.HTML), because the judge prompt instructs the
// model to format it with simple HTML tags. Every other string in every view,
// user-supplied or model-produced, goes through html/template's contextual
// escaping.
package web

import (
	"html/template"
	"sort"

	"github.com/jaycherian/gcp-go-director-bakeoff/internal/core/model"
)

// FormView backs the submission form page.
type FormView struct {
	AppName       string // Application display name for the page header.
	FormDirectors string // Comma-separated names prefilled into the director field.
	VideoIdea     string // Previous submission, echoed back on validation errors.
}

// Attribute is one labeled cinematic aspect shown in a card's detail panel.
type Attribute struct {
	Label string
	Value string
}

// BreakdownCard is one director's entry in the results list.
type BreakdownCard struct {
	Rank       int         // The judge's rank for this breakdown, 1 = best.
	Director   string      // The director this breakdown interprets for.
	Suggested  bool        // True when this director came from the suggestion stage.
	Winner     bool        // True for the single winning card.
	Prompt     string      // The assembled video-generation prompt.
	Attributes []Attribute // The seven cinematic aspects, in canonical order.
}

// ResultsView backs the results page. Cards are ordered by rank ascending;
// equal ranks keep their submission order, matching the winner rule.
type ResultsView struct {
	AppName            string
	VideoIdea          string
	AdditionalDirector string
	Cards              []BreakdownCard
	Explanation        template.HTML // Judge markup, rendered unescaped. See the package trust contract.
}

// ErrorView backs the error panel shown when a bake-off fails.
type ErrorView struct {
	AppName string
	Message string // A short, user-readable description of what failed.
	Trace   string // The full error chain, shown in a collapsible section.
}

// NewResultsView converts a completed bake-off into its presentation form.
//
// Inputs:
//   - appName: Application display name for the page header.
//   - result: The completed bake-off outcome.
//
// Outputs:
//   - *ResultsView: The view with cards sorted by rank ascending, stable.
func NewResultsView(appName string, result *model.BakeOffResult) *ResultsView {
	winnerIdx := result.Ranking.WinnerIndex()
	cards := make([]BreakdownCard, 0, len(result.Breakdowns))
	for i, b := range result.Breakdowns {
		cards = append(cards, BreakdownCard{
			Rank:      result.Ranking.DirectorRankings[i],
			Director:  b.Director,
			Suggested: b.Director == result.AdditionalDirector,
			Winner:    i == winnerIdx,
			Prompt:    b.AssemblePrompt(),
			Attributes: []Attribute{
				{Label: "Subject", Value: b.SubjectDescription},
				{Label: "Action", Value: b.ActionDescription},
				{Label: "Setting", Value: b.SettingDescription},
				{Label: "Cinematic Style", Value: b.CinematicStyle},
				{Label: "Shot & Framing", Value: b.ShotAndFraming},
				{Label: "Camera Movement", Value: b.CameraMovement},
				{Label: "Lighting & Color", Value: b.LightingAndColor},
			},
		})
	}
	sort.SliceStable(cards, func(i, j int) bool { return cards[i].Rank < cards[j].Rank })

	return &ResultsView{
		AppName:            appName,
		VideoIdea:          result.VideoIdea,
		AdditionalDirector: result.AdditionalDirector,
		Cards:              cards,
		Explanation:        template.HTML(result.Ranking.Explanation),
	}
}
