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

// Package cloud provides components for interacting with the generative AI
// service. This file is central to the application's architecture: it
// initializes the client object needed to communicate with the model provider
// and acts as a dependency injection container, creating a single shared
// `ServiceClients` struct that is passed through the application instead of a
// package-level model handle.
//
// Logic Flow:
//  1. The `NewCloudServiceClients` function is called once at application startup.
//  2. It reads the provider API key from the environment; a missing key is a
//     configuration error returned to the caller, which treats it as fatal.
//  3. It creates the genai client against the Gemini API backend.
//  4. It reads the configuration to build one rate-limited agent model per
//     `[agent_models]` entry, storing them in a map by logical name.
//
// Structs:
//   - ServiceClients: A container struct holding the initialized GenAI client
//     and the configured agent models.
//
// Functions:
//   - NewCloudServiceClients: A factory function that creates and configures
//     the clients based on the application's configuration.
package cloud

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// ServiceClients is a struct that acts as a central container for the clients
// that interact with the generative AI provider. This pattern is a form of
// dependency injection, making it easy to manage and share these client
// connections across the entire application without global mutable state.
type ServiceClients struct {
	GenAIClient *genai.Client               // Client for the Gemini generative AI service.
	AgentModels map[string]ContentGenerator // Configured agent (LLM) models, keyed by a logical name from the config.
}

// NewCloudServiceClients is a factory function that initializes the generative
// AI client and the configured agent models. It serves as the main entry point
// for setting up the application's external dependencies.
//
// Inputs:
//   - ctx: The root context.Context for the application, used to manage the lifecycle of the clients.
//   - config: A pointer to the loaded application configuration (`Config`).
//
// Outputs:
//   - *ServiceClients: A pointer to the fully initialized ServiceClients struct.
//   - error: An error if the API key is missing or the client fails to initialize.
func NewCloudServiceClients(ctx context.Context, config *Config) (*ServiceClients, error) {
	// The provider access key is the one required external credential. Absence
	// is a startup failure, not a per-request condition.
	apiKey := os.Getenv(EnvGeminiAPIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("missing required environment variable %s: set it to a valid Gemini API key", EnvGeminiAPIKey)
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	// Iterate through the agent model configurations, create a generation
	// config for each, apply its specific settings (temperature, TopK, etc.),
	// and wrap it in our rate-limiting (`QuotaAware`) model.
	agentModels := make(map[string]ContentGenerator)
	for amKey, values := range config.AgentModels {
		generation := &genai.GenerateContentConfig{
			Temperature:       genai.Ptr[float32](values.Temperature),
			TopP:              genai.Ptr[float32](values.TopP),
			TopK:              genai.Ptr[float32](values.TopK),
			MaxOutputTokens:   values.MaxTokens,
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: values.SystemInstructions}}},
			SafetySettings:    DefaultSafetySettings,
			ResponseMIMEType:  values.OutputFormat,
		}
		agentModels[amKey] = NewQuotaAwareModel(generation, values.Model, gc.Models, values.RateLimit)
	}

	return &ServiceClients{
		GenAIClient: gc,
		AgentModels: agentModels,
	}, nil
}
