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

// Package model_test contains unit tests for the data models. This file
// covers the CinematicBreakdown record: prompt assembly and the completeness
// invariant.
package model_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaycherian/gcp-go-director-bakeoff/internal/core/model"
)

// newCompleteBreakdown returns a breakdown with every field populated, as a
// starting point for the tests below.
func newCompleteBreakdown() *model.CinematicBreakdown {
	return &model.CinematicBreakdown{
		Director:           "Agnès Varda",
		VideoIdea:          "a gleaner walks a harvested field",
		SubjectDescription: "an elderly gleaner in a heavy coat",
		ActionDescription:  "stooping to gather left-behind potatoes",
		SettingDescription: "a muddy field after the harvest, late afternoon",
		CinematicStyle:     "handheld documentary realism",
		ShotAndFraming:     "intimate medium shot at eye level",
		CameraMovement:     "loose handheld drift alongside the subject",
		LightingAndColor:   "flat overcast light, earthen browns and greys",
	}
}

// TestAssemblePrompt verifies the full assembly rules: the seven components
// joined by commas in canonical order, first letter capitalized, one
// terminating period, and the input echoes excluded.
func TestAssemblePrompt(t *testing.T) {
	b := newCompleteBreakdown()
	prompt := b.AssemblePrompt()

	expected := "An elderly gleaner in a heavy coat, " +
		"stooping to gather left-behind potatoes, " +
		"a muddy field after the harvest, late afternoon, " +
		"handheld documentary realism, " +
		"intimate medium shot at eye level, " +
		"loose handheld drift alongside the subject, " +
		"flat overcast light, earthen browns and greys."
	assert.Equal(t, expected, prompt)

	// The echoes must not leak into the assembled prompt.
	assert.False(t, strings.Contains(prompt, b.Director))
	assert.False(t, strings.Contains(prompt, b.VideoIdea))
}

// TestAssemblePromptSkipsEmptyComponents verifies that blank or
// whitespace-only components are dropped rather than leaving dangling commas.
func TestAssemblePromptSkipsEmptyComponents(t *testing.T) {
	b := newCompleteBreakdown()
	b.ActionDescription = ""
	b.CameraMovement = "   "

	prompt := b.AssemblePrompt()
	assert.False(t, strings.Contains(prompt, ", ,"))
	assert.True(t, strings.HasSuffix(prompt, "flat overcast light, earthen browns and greys."))
	assert.True(t, strings.HasPrefix(prompt, "An elderly gleaner"))
}

// TestAssemblePromptEmpty verifies the degenerate case of a breakdown with no
// populated components.
func TestAssemblePromptEmpty(t *testing.T) {
	b := &model.CinematicBreakdown{Director: "x", VideoIdea: "y"}
	assert.Equal(t, "", b.AssemblePrompt())
}

// TestValidateComplete verifies that a fully populated breakdown passes.
func TestValidateComplete(t *testing.T) {
	assert.NoError(t, newCompleteBreakdown().Validate())
}

// TestValidateMissingField verifies that validation names the first missing
// field in canonical order, echoes included.
func TestValidateMissingField(t *testing.T) {
	b := newCompleteBreakdown()
	b.SettingDescription = ""
	err := b.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "setting_description")

	b = newCompleteBreakdown()
	b.Director = "  "
	err = b.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "director")
}
