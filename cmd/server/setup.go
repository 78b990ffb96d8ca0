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

// Package main contains the setup and initialization logic for the server's
// state: a centralized container holding the configuration, the generative AI
// clients, the assembled workflow, and the services built on top of them.
//
// Functions:
//   - SetupOS: Points the configuration loader at the config directory and
//     the runtime environment.
//   - GetConfig: A singleton accessor that loads the TOML configuration once.
//   - InitState: Creates the service clients, the bake-off workflow, the
//     bake-off service, and the page renderer.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/jaycherian/gcp-go-director-bakeoff/internal/cloud"
	"github.com/jaycherian/gcp-go-director-bakeoff/internal/core/services"
	"github.com/jaycherian/gcp-go-director-bakeoff/internal/core/workflow"
	"github.com/jaycherian/gcp-go-director-bakeoff/internal/web"
)

// StateManager holds the shared dependencies for the server. Using a single
// container instead of scattered globals keeps the wiring in one place.
type StateManager struct {
	config         *cloud.Config
	cloud          *cloud.ServiceClients
	bakeOffService *services.BakeOffService
	renderer       *web.Renderer
}

// state is the package-level instance of StateManager.
var state = &StateManager{}

// SetupOS sets the environment variables the configuration loader uses to
// find the TOML files. The runtime defaults to "local" so a developer
// checkout picks up .env.local.toml overrides when present.
//
// Outputs:
//   - error: An error if setting an environment variable fails.
func SetupOS() (err error) {
	err = os.Setenv(cloud.EnvConfigFilePrefix, "configs")
	if err != nil {
		return err
	}
	if os.Getenv(cloud.EnvConfigRuntime) == "" {
		err = os.Setenv(cloud.EnvConfigRuntime, "local")
	}
	return err
}

// GetConfig provides a singleton instance of the application configuration,
// loading it from the TOML files on first use. A .env file in the working
// directory, if present, is read first so the Gemini API key can live there
// instead of the shell environment.
//
// Outputs:
//   - *cloud.Config: A pointer to the loaded application configuration.
func GetConfig() *cloud.Config {
	if state.config == nil {
		// Ignore the error: a missing .env file just means the key comes
		// from the real environment.
		_ = godotenv.Load()

		if err := SetupOS(); err != nil {
			log.Fatalf("failed to set up environment: %v\n", err)
		}
		config := cloud.NewConfig()
		cloud.LoadConfig(&config)
		state.config = config
	}
	return state.config
}

// InitState initializes the entire server state: the generative AI clients,
// the bake-off workflow and service, and the page renderer. Any failure here
// is fatal, since the server cannot do useful work without them.
//
// Inputs:
//   - ctx: The root context for the server, governing client lifecycles.
func InitState(ctx context.Context) {
	config := GetConfig()

	cloudClients, err := cloud.NewCloudServiceClients(ctx, config)
	if err != nil {
		slog.Error("failed to initialize cloud clients", "error", err)
		log.Fatal(err)
	}
	state.cloud = cloudClients

	wf, err := workflow.NewBakeOffWorkflow(config, cloudClients)
	if err != nil {
		slog.Error("failed to assemble bake-off workflow", "error", err)
		log.Fatal(err)
	}
	state.bakeOffService = services.NewBakeOffService(config, wf)

	renderer, err := web.NewRenderer()
	if err != nil {
		slog.Error("failed to compile page templates", "error", err)
		log.Fatal(err)
	}
	state.renderer = renderer
}
