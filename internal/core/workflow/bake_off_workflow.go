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

// Package workflow assembles the individual commands into the complete
// director bake-off pipeline and exposes a single typed entry point over it.
//
// Pipeline order:
//  1. DirectorSuggester   - adds one model-suggested director to the roster.
//  2. BreakdownGenerator  - one parallel breakdown call per roster director.
//  3. RankingJudge        - judges the full breakdown set in one call.
//  4. ResultAssembler     - pairs the verdict with its breakdowns.
//
// The chain stops at the first stage that records an error, so a failed run
// never yields a partial result.
package workflow

import (
	"context"
	"fmt"
	"text/template"

	"github.com/jaycherian/gcp-go-director-bakeoff/internal/cloud"
	"github.com/jaycherian/gcp-go-director-bakeoff/internal/core/commands"
	"github.com/jaycherian/gcp-go-director-bakeoff/internal/core/cor"
	"github.com/jaycherian/gcp-go-director-bakeoff/internal/core/model"
)

// Logical agent model names expected in the [agent_models] configuration.
const (
	CreativeModelName = "creative-flash"
	JudgeModelName    = "director-judge"
)

// BakeOffWorkflow wraps the assembled command chain. One instance is created
// at startup and shared across requests; each Execute call gets its own
// chain context, so concurrent requests do not interfere.
type BakeOffWorkflow struct {
	chain cor.Chain
}

// NewBakeOffWorkflow builds the bake-off pipeline from the application
// configuration and the initialized service clients.
//
// Inputs:
//   - config: The loaded application configuration, providing the prompt templates.
//   - services: The service clients container, providing the agent models.
//
// Outputs:
//   - *BakeOffWorkflow: The assembled pipeline.
//   - error: An error if a template fails to parse or an agent model is missing.
func NewBakeOffWorkflow(config *cloud.Config, services *cloud.ServiceClients) (*BakeOffWorkflow, error) {
	creative, ok := services.AgentModels[CreativeModelName]
	if !ok {
		return nil, fmt.Errorf("agent model %q is not configured", CreativeModelName)
	}
	judge, ok := services.AgentModels[JudgeModelName]
	if !ok {
		return nil, fmt.Errorf("agent model %q is not configured", JudgeModelName)
	}

	suggestTemplate, err := template.New("suggest").Parse(config.PromptTemplates.SuggestPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse suggest prompt template: %w", err)
	}
	breakdownTemplate, err := template.New("breakdown").Parse(config.PromptTemplates.BreakdownPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse breakdown prompt template: %w", err)
	}
	rankingTemplate, err := template.New("ranking").Parse(config.PromptTemplates.RankingPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ranking prompt template: %w", err)
	}

	chain := cor.NewBaseChain("bake_off_workflow").
		AddCommand(commands.NewDirectorSuggester("director_suggester", creative, suggestTemplate)).
		AddCommand(commands.NewBreakdownGenerator("breakdown_generator", creative, breakdownTemplate)).
		AddCommand(commands.NewRankingJudge("ranking_judge", judge, rankingTemplate)).
		AddCommand(commands.NewResultAssembler("result_assembler"))

	return &BakeOffWorkflow{chain: chain}, nil
}

// Execute runs the full pipeline for one request.
//
// Inputs:
//   - ctx: The request context, carrying the per-request deadline and trace.
//   - videoIdea: The user's video concept.
//   - directors: The parsed, non-empty director roster chosen by the user.
//
// Outputs:
//   - *model.BakeOffResult: The complete outcome, nil on failure.
//   - error: The error from the first stage that failed, nil on success.
func (w *BakeOffWorkflow) Execute(ctx context.Context, videoIdea string, directors []string) (*model.BakeOffResult, error) {
	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(ctx)
	chainCtx.Add(commands.ParamVideoIdea, videoIdea)
	chainCtx.Add(cor.CtxIn, directors)

	w.chain.Execute(chainCtx)

	if chainCtx.HasErrors() {
		for stage, err := range chainCtx.GetErrors() {
			return nil, fmt.Errorf("bake-off stage %s failed: %w", stage, err)
		}
	}

	result, ok := chainCtx.Get(cor.CtxIn).(*model.BakeOffResult)
	if !ok {
		return nil, fmt.Errorf("bake-off pipeline produced no result")
	}
	return result, nil
}
