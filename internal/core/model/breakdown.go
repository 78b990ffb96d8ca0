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

// Package model defines the core data structures for the application.
// This file contains the CinematicBreakdown record, the structured shape
// every breakdown-generation task call must satisfy. Instances are held only
// in the workflow's working set for the duration of one request and are never
// persisted.
package model

import (
	"fmt"
	"strings"
	"unicode"
)

// CinematicBreakdown is one director's structured interpretation of a video
// concept. The first two fields echo the task inputs; the remaining seven are
// the deconstructed cinematic aspects the model must fill in. The JSON tags
// form the wire contract with the generative model, which is instructed to
// return exactly this shape.
type CinematicBreakdown struct {
	Director           string `json:"director"`            // The director sent as part of input, echoed in the output.
	VideoIdea          string `json:"video_idea"`          // The video idea sent as part of input, echoed in the output.
	SubjectDescription string `json:"subject_description"` // A detailed description of the main subject or character.
	ActionDescription  string `json:"action_description"`  // A description of the specific action the subject is performing.
	SettingDescription string `json:"setting_description"` // A rich description of the environment, location, and time of day.
	CinematicStyle     string `json:"cinematic_style"`     // The overall visual style or medium (e.g., "Photorealistic, 8K").
	ShotAndFraming     string `json:"shot_and_framing"`    // The specific camera shot type and framing (e.g., "Medium shot").
	CameraMovement     string `json:"camera_movement"`     // The movement of the camera during the shot (e.g., "Slow dolly shot").
	LightingAndColor   string `json:"lighting_and_color"`  // The lighting style and color palette that sets the mood.
}

// components returns the seven descriptive attributes in their canonical
// order, excluding the two input echoes.
func (b *CinematicBreakdown) components() []string {
	return []string{
		b.SubjectDescription,
		b.ActionDescription,
		b.SettingDescription,
		b.CinematicStyle,
		b.ShotAndFraming,
		b.CameraMovement,
		b.LightingAndColor,
	}
}

// AssemblePrompt combines the seven cinematic components into a single
// formatted prompt suitable for a video generation model. Components are
// trimmed, empty ones skipped, and the remainder joined with commas. The
// first rune is upper-cased and the sentence is terminated with one period.
// A breakdown with no non-empty components yields an empty string.
//
// Outputs:
//   - string: The complete, formatted cinematic prompt.
func (b *CinematicBreakdown) AssemblePrompt() string {
	parts := make([]string, 0, 7)
	for _, c := range b.components() {
		if trimmed := strings.TrimSpace(c); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	sentence := strings.Join(parts, ", ")
	runes := []rune(sentence)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes) + "."
}

// Validate enforces the record invariant: every attribute, the input echoes
// included, must be present and non-empty once a breakdown has been produced.
// A violation means the model returned a partial record, which is treated as
// a failed task call rather than a usable instance.
//
// Outputs:
//   - error: A descriptive error naming the first empty field, or nil.
func (b *CinematicBreakdown) Validate() error {
	fields := map[string]string{
		"director":            b.Director,
		"video_idea":          b.VideoIdea,
		"subject_description": b.SubjectDescription,
		"action_description":  b.ActionDescription,
		"setting_description": b.SettingDescription,
		"cinematic_style":     b.CinematicStyle,
		"shot_and_framing":    b.ShotAndFraming,
		"camera_movement":     b.CameraMovement,
		"lighting_and_color":  b.LightingAndColor,
	}
	// Check in canonical order so the reported field is deterministic.
	order := []string{
		"director", "video_idea", "subject_description", "action_description",
		"setting_description", "cinematic_style", "shot_and_framing",
		"camera_movement", "lighting_and_color",
	}
	for _, name := range order {
		if strings.TrimSpace(fields[name]) == "" {
			return fmt.Errorf("cinematic breakdown is missing required field %q", name)
		}
	}
	return nil
}
