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

// Package cloud defines the data structures for application configuration,
// loaded from TOML files. It provides a structured way to manage settings
// for the generative AI models, the prompt templates used by the bake-off
// workflow, and the default director roster.
//
// This file centralizes all configuration-related structs, making it easy
// to understand and manage the application's configurable parameters.
//
// Structs:
//   - PromptTemplates: Holds the text templates for prompts sent to GenAI models.
//   - GenAiLLMModel: Configuration for a single generative model (LLM).
//   - BakeOff: Settings specific to the director bake-off workflow.
//   - Config: The top-level struct that aggregates all other configuration structs.
//
// Functions:
//   - NewConfig: A constructor that initializes a new Config object with empty maps.
package cloud

import "google.golang.org/genai"

// DefaultSafetySettings defines the default content safety thresholds for GenAI models.
// These settings are configured to be non-restrictive, allowing all content categories
// (Dangerous Content, Harassment, Hate Speech, Sexually Explicit) to pass through without
// being blocked. The inputs here are short, user-supplied video concepts, so the
// permissive setup keeps creative prompts from being rejected mid-workflow.
var DefaultSafetySettings = []*genai.SafetySetting{
	{
		Category:  genai.HarmCategoryDangerousContent,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHarassment,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHateSpeech,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategorySexuallyExplicit,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
}

// PromptTemplates holds the templates for the three prompt types used by the
// bake-off workflow. Each template is a Go text/template whose vocabulary is
// documented on the command that renders it.
type PromptTemplates struct {
	SuggestPrompt   string `toml:"suggest"`   // The template for suggesting one additional director.
	BreakdownPrompt string `toml:"breakdown"` // The template for generating a cinematic breakdown.
	RankingPrompt   string `toml:"ranking"`   // The template for ranking the full breakdown set.
}

// GenAiLLMModel represents the configuration for a generative large language model (LLM).
type GenAiLLMModel struct {
	Model              string  `toml:"model"`               // The name of the generative model (e.g., "gemini-2.0-flash-001").
	SystemInstructions string  `toml:"system_instructions"` // The system instructions for the LLM.
	Temperature        float32 `toml:"temperature"`         // The temperature parameter for the LLM.
	TopP               float32 `toml:"top_p"`               // The top_p parameter for the LLM.
	TopK               float32 `toml:"top_k"`               // The top_k parameter for the LLM.
	MaxTokens          int32   `toml:"max_tokens"`          // The maximum number of tokens for the LLM output.
	OutputFormat       string  `toml:"output_format"`       // The desired output MIME type, "application/json" for all bake-off tasks.
	RateLimit          int     `toml:"rate_limit"`          // The rate limit for the LLM in requests per second.
}

// BakeOff holds the workflow-specific settings: the roster used when the
// caller supplies no directors, and the shorter roster prefilled in the
// web form.
type BakeOff struct {
	DefaultDirectors []string `toml:"default_directors"` // Fallback roster when the director input is blank or unparseable.
	FormDirectors    string   `toml:"form_directors"`    // Comma-separated value prefilled into the web form's director field.
}

// Config represents the overall configuration for the application, loaded from TOML files.
// It acts as the root container for all other configuration structs.
type Config struct {
	// Application holds general application settings.
	Application struct {
		Name                    string `toml:"name"`                       // The name of the application.
		GoogleProjectId         string `toml:"google_project_id"`          // The Google Cloud project ID, used only for telemetry export. May be empty.
		Port                    int    `toml:"port"`                       // The HTTP port the server listens on.
		RequestTimeoutInSeconds int    `toml:"request_timeout_in_seconds"` // The deadline applied to one complete bake-off request.
	} `toml:"application"`
	PromptTemplates PromptTemplates          `toml:"prompt_templates"` // Prompt templates configuration.
	BakeOff         BakeOff                  `toml:"bake_off"`         // Bake-off workflow settings.
	AgentModels     map[string]GenAiLLMModel `toml:"agent_models"`     // A map of generative models, keyed by a logical name (e.g., "creative-flash").
}

// NewConfig is a constructor function that creates a new, initialized Config instance.
// It's important to initialize the maps within the struct to avoid nil pointer panics
// when the configuration loader tries to populate them.
//
// Outputs:
//   - *Config: A pointer to a new Config struct with its map fields initialized.
func NewConfig() *Config {
	return &Config{
		AgentModels: make(map[string]GenAiLLMModel),
	}
}
