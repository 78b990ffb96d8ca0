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

// Package test provides utility functions and mock data to support the
// application's test suite: a cached test configuration, a scripted
// generative-model fake, and canned model responses. No test that uses this
// package touches the network.
package test

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"google.golang.org/genai"

	"github.com/jaycherian/gcp-go-director-bakeoff/internal/cloud"
	"github.com/jaycherian/gcp-go-director-bakeoff/internal/core/model"
)

// StateManager caches the test configuration so the TOML files are read only
// once per test run.
type StateManager struct {
	config *cloud.Config
}

var state = &StateManager{}

// HandleErr fails the current test when err is non-nil. A convenience to cut
// boilerplate in table-style tests.
//
// Inputs:
//   - err: The error to check.
//   - t: The *testing.T object from the current test.
func HandleErr(err error, t *testing.T) {
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// SetupOS points the configuration loader at this repository's configs
// directory and selects the "test" runtime, so the loader picks up
// .env.toml plus the .env.test.toml overrides. The path is derived from this
// source file's location, which makes it independent of the package the test
// binary runs in.
//
// Outputs:
//   - error: An error if setting an environment variable fails.
func SetupOS() (err error) {
	_, thisFile, _, _ := runtime.Caller(0)
	configDir := filepath.Join(filepath.Dir(thisFile), "..", "..", "configs")

	err = os.Setenv(cloud.EnvConfigFilePrefix, configDir)
	if err != nil {
		return err
	}
	err = os.Setenv(cloud.EnvConfigRuntime, "test")
	return err
}

// GetConfig is the singleton accessor for the test configuration.
//
// Outputs:
//   - *cloud.Config: The loaded and cached test configuration.
func GetConfig() *cloud.Config {
	if state.config == nil {
		if err := SetupOS(); err != nil {
			log.Fatalf("failed to setup environment for test: %v\n", err)
		}
		config := cloud.NewConfig()
		cloud.LoadConfig(&config)
		state.config = config
	}
	return state.config
}

// ScriptedGenerator is a cloud.ContentGenerator whose behavior is supplied by
// the test as a function. Calls are counted under a mutex so tests can assert
// fan-out width even when calls run concurrently.
type ScriptedGenerator struct {
	mu       sync.Mutex
	calls    int
	generate func(ctx context.Context, content []*genai.Content) (*genai.GenerateContentResponse, error)
}

// NewScriptedGenerator wraps the given function as a ContentGenerator.
//
// Inputs:
//   - generate: The function invoked for every GenerateContent call.
//
// Outputs:
//   - *ScriptedGenerator: The ready fake.
func NewScriptedGenerator(
	generate func(ctx context.Context, content []*genai.Content) (*genai.GenerateContentResponse, error),
) *ScriptedGenerator {
	return &ScriptedGenerator{generate: generate}
}

// GenerateContent implements cloud.ContentGenerator.
func (s *ScriptedGenerator) GenerateContent(ctx context.Context, content []*genai.Content) (*genai.GenerateContentResponse, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.generate(ctx, content)
}

// Calls returns how many times the generator has been invoked.
func (s *ScriptedGenerator) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// PromptText extracts the text of a single-turn prompt, the shape every
// bake-off task call uses. Scripted generators switch on its contents to
// decide which canned response applies.
func PromptText(content []*genai.Content) string {
	if len(content) == 0 || len(content[0].Parts) == 0 {
		return ""
	}
	return content[0].Parts[0].Text
}

// TextResponse wraps raw model output text in the response envelope the real
// client returns, including nominal usage metadata so token counters have
// something to record.
//
// Inputs:
//   - text: The model output, typically a JSON document.
//
// Outputs:
//   - *genai.GenerateContentResponse: A single-candidate response.
func TextResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Role:  "model",
					Parts: []*genai.Part{{Text: text}},
				},
			},
		},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     100,
			CandidatesTokenCount: 200,
		},
	}
}

// SuggestionJSON returns a canned suggestion response naming the given
// director.
func SuggestionJSON(director string) string {
	out, _ := json.Marshal(&model.DirectorSuggestion{AdditionalDirector: director})
	return string(out)
}

// BreakdownJSON returns a canned, fully populated breakdown response for the
// given director and idea.
func BreakdownJSON(director string, videoIdea string) string {
	out, _ := json.Marshal(&model.CinematicBreakdown{
		Director:           director,
		VideoIdea:          videoIdea,
		SubjectDescription: "a weathered lighthouse keeper with a storm lantern",
		ActionDescription:  "climbing the spiral stair as waves strike the tower",
		SettingDescription: "a remote sea rock at dusk under gathering clouds",
		CinematicStyle:     "painterly realism with heavy atmosphere",
		ShotAndFraming:     "low-angle wide shot framing keeper against the tower",
		CameraMovement:     "slow upward crane following the climb",
		LightingAndColor:   "amber lantern glow against slate blues",
	})
	return string(out)
}

// RankingJSON returns a canned verdict response with the given rank values.
func RankingJSON(rankings []int, explanation string) string {
	out, _ := json.Marshal(&model.RankingResult{
		Reasoning:        "the middle entries trade style for fidelity",
		DirectorRankings: rankings,
		Explanation:      explanation,
	})
	return string(out)
}
