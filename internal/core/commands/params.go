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

// Package commands contains the individual stages of the director bake-off
// workflow. Each command is a self-contained unit of work that plugs into the
// chain-of-responsibility framework in the cor package.
//
// This file defines the named context parameters the commands share beyond
// the chain's default in/out piping.
package commands

const (
	// ParamVideoIdea is the context key holding the user's video concept.
	// It is set by the service layer before the chain runs and read by every
	// prompt-rendering command.
	ParamVideoIdea = "video_idea"

	// ParamSuggestion is the context key where the suggestion stage records
	// the name of the director it added to the roster.
	ParamSuggestion = "additional_director"

	// ParamBreakdowns is the context key where the judging stage preserves
	// the breakdown list it judged, so the final assembler can pair it with
	// the verdict after the chain's piping has replaced the primary input.
	ParamBreakdowns = "breakdowns"
)
