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

// This file provides factory functions that create example ("few-shot")
// instances of the core data models. The examples are marshaled to JSON and
// embedded in the prompts, giving the generative model a concrete instance of
// the exact output shape it must produce.
package model

// GetExampleBreakdown creates a fully populated CinematicBreakdown used as a
// few-shot example in the breakdown prompt.
//
// Outputs:
//   - *CinematicBreakdown: A pointer to a populated example breakdown.
func GetExampleBreakdown() *CinematicBreakdown {
	return &CinematicBreakdown{
		Director:           "Stanley Kubrick",
		VideoIdea:          "an astronaut discovers a strange artifact on a desolate moon",
		SubjectDescription: "A lone astronaut in a pristine white EVA suit, face obscured by a gold-mirrored visor reflecting the artifact",
		ActionDescription:  "walking in measured, deliberate steps toward a perfectly smooth black monolith half-buried in grey regolith",
		SettingDescription: "a vast, silent lunar plain under a pitch-black sky, Earth hanging small and blue on the horizon",
		CinematicStyle:     "clinical, hyper-composed photorealism with meticulous one-point perspective",
		ShotAndFraming:     "extreme wide shot, subject centered, symmetrical framing that dwarfs the astronaut against the landscape",
		CameraMovement:     "an agonizingly slow forward dolly that never wavers from the central axis",
		LightingAndColor:   "harsh, unfiltered sunlight casting knife-edged shadows, a palette of sterile whites and absolute blacks",
	}
}

// GetExampleRanking creates an example RankingResult used as a few-shot
// example in the judge prompt. The rankings are parallel to a hypothetical
// list of three breakdowns, and the explanation demonstrates the markup the
// judge is expected to emit.
//
// Outputs:
//   - *RankingResult: A pointer to a populated example verdict.
func GetExampleRanking() *RankingResult {
	return &RankingResult{
		Reasoning: "The first interpretation leans on spectacle but loses the emotional core of the idea. " +
			"The second weds its formal rigor to the mystery at the heart of the concept, and every " +
			"craft choice reinforces it. The third is charming but tonally at odds with the material.",
		DirectorRankings: []int{2, 1, 3},
		Explanation: "<h4>The Verdict</h4><p>The second interpretation wins on coherence: its framing, " +
			"movement, and palette all serve the same feeling of dread and wonder.</p><br>" +
			"<p>The first is visually rich but unfocused, and the third plays the idea for warmth " +
			"where the concept calls for awe.</p>",
	}
}

// GetExampleSuggestion creates an example DirectorSuggestion used as a
// few-shot example in the suggestion prompt.
//
// Outputs:
//   - *DirectorSuggestion: A pointer to a populated example suggestion.
func GetExampleSuggestion() *DirectorSuggestion {
	return &DirectorSuggestion{
		AdditionalDirector: "Denis Villeneuve",
	}
}
