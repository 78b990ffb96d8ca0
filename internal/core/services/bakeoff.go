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

// Package services sits between the web layer and the workflow. It owns the
// request-level concerns: input normalization, the roster fallback, the
// per-request deadline, and structured logging of run outcomes.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jaycherian/gcp-go-director-bakeoff/internal/cloud"
	"github.com/jaycherian/gcp-go-director-bakeoff/internal/core/model"
	"github.com/jaycherian/gcp-go-director-bakeoff/internal/core/workflow"
)

// BakeOffService runs complete bake-offs on behalf of the web handlers.
type BakeOffService struct {
	config   *cloud.Config
	workflow *workflow.BakeOffWorkflow
}

// NewBakeOffService is the constructor for BakeOffService.
//
// Inputs:
//   - config: The loaded application configuration.
//   - wf: The assembled bake-off workflow.
//
// Outputs:
//   - *BakeOffService: A pointer to the newly created service.
func NewBakeOffService(config *cloud.Config, wf *workflow.BakeOffWorkflow) *BakeOffService {
	return &BakeOffService{config: config, workflow: wf}
}

// ParseDirectorList normalizes a raw, comma-separated director string into a
// roster. Names are trimmed and empty entries dropped. When nothing usable
// remains, the configured default roster is returned, so a blank form field
// still produces a full bake-off.
//
// Inputs:
//   - raw: The director field exactly as submitted.
//
// Outputs:
//   - []string: The normalized roster, never empty.
func (s *BakeOffService) ParseDirectorList(raw string) []string {
	directors := make([]string, 0, 4)
	for _, name := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			directors = append(directors, trimmed)
		}
	}
	if len(directors) == 0 {
		return append([]string(nil), s.config.BakeOff.DefaultDirectors...)
	}
	return directors
}

// RunBakeOff validates the inputs, applies the configured request deadline,
// and executes the workflow once.
//
// Inputs:
//   - ctx: The incoming request context.
//   - videoIdea: The user's video concept. Must be non-blank.
//   - rawDirectors: The raw director field; see ParseDirectorList.
//
// Outputs:
//   - *model.BakeOffResult: The complete outcome, nil on failure.
//   - error: A validation or workflow error.
func (s *BakeOffService) RunBakeOff(ctx context.Context, videoIdea string, rawDirectors string) (*model.BakeOffResult, error) {
	videoIdea = strings.TrimSpace(videoIdea)
	if videoIdea == "" {
		return nil, fmt.Errorf("a video idea is required")
	}
	directors := s.ParseDirectorList(rawDirectors)

	timeout := time.Duration(s.config.Application.RequestTimeoutInSeconds) * time.Second
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	runID := uuid.New().String()
	start := time.Now()
	slog.InfoContext(runCtx, "starting bake-off",
		"run_id", runID,
		"video_idea", videoIdea,
		"directors", directors)

	result, err := s.workflow.Execute(runCtx, videoIdea, directors)
	if err != nil {
		slog.ErrorContext(runCtx, "bake-off failed",
			"run_id", runID,
			"duration", time.Since(start).String(),
			"error", err.Error())
		return nil, err
	}

	slog.InfoContext(runCtx, "bake-off complete",
		"run_id", runID,
		"duration", time.Since(start).String(),
		"additional_director", result.AdditionalDirector,
		"winner", result.Winner().Director)
	return result, nil
}
