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

package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"go.opentelemetry.io/otel/metric"

	"github.com/jaycherian/gcp-go-director-bakeoff/internal/cloud"
	"github.com/jaycherian/gcp-go-director-bakeoff/internal/core/cor"
	"github.com/jaycherian/gcp-go-director-bakeoff/internal/core/model"
)

// RankingJudge is the judging stage of the pipeline. It submits the complete
// breakdown list to the judge model in one call and parses the verdict. The
// prompt directs the model to fill a "reasoning" field before the rankings,
// so the comparison happens before the answer is committed. The verdict is
// validated for parallelism with the breakdown list; rank values themselves
// (ties, gaps) are taken as the judge produced them.
//
// Template vocabulary:
//   - VIDEO_IDEA: the user's video concept.
//   - BREAKDOWNS_JSON: the judged breakdowns, marshaled as a JSON array in
//     submission order.
//   - EXAMPLE_JSON: a marshaled example of the expected output shape.
type RankingJudge struct {
	cor.BaseCommand
	model            cloud.ContentGenerator
	promptTemplate   *template.Template
	inputTokenCount  metric.Int64Counter
	outputTokenCount metric.Int64Counter
	retryCount       metric.Int64Counter
}

// NewRankingJudge is the constructor for the RankingJudge command.
//
// Inputs:
//   - name: The name for this command instance, used in logs and telemetry.
//   - generativeAIModel: The client for the judge generative model.
//   - promptTemplate: The parsed template for the ranking prompt.
//
// Outputs:
//   - *RankingJudge: A pointer to the newly created command.
func NewRankingJudge(
	name string,
	generativeAIModel cloud.ContentGenerator,
	promptTemplate *template.Template,
) *RankingJudge {
	base := cor.NewBaseCommand(name)
	inputTokenCount, _ := base.Meter.Int64Counter(fmt.Sprintf("%s.tokens.input", name))
	outputTokenCount, _ := base.Meter.Int64Counter(fmt.Sprintf("%s.tokens.output", name))
	retryCount, _ := base.Meter.Int64Counter(fmt.Sprintf("%s.counter.retries", name))
	return &RankingJudge{
		BaseCommand:      *base,
		model:            generativeAIModel,
		promptTemplate:   promptTemplate,
		inputTokenCount:  inputTokenCount,
		outputTokenCount: outputTokenCount,
		retryCount:       retryCount,
	}
}

// IsExecutable verifies the command has a non-empty breakdown list to judge.
func (r *RankingJudge) IsExecutable(context cor.Context) bool {
	if !r.BaseCommand.IsExecutable(context) {
		return false
	}
	breakdowns, ok := context.Get(r.GetInputParam()).([]*model.CinematicBreakdown)
	_, ideaOk := context.Get(ParamVideoIdea).(string)
	return ok && ideaOk && len(breakdowns) > 0
}

// Execute renders the judging prompt over the full breakdown set, calls the
// judge model, and places the parsed verdict in the output parameter. The
// judged breakdowns are preserved under ParamBreakdowns so the assembler can
// pair them with the verdict after the chain pipes the output forward.
func (r *RankingJudge) Execute(context cor.Context) {
	breakdowns := context.Get(r.GetInputParam()).([]*model.CinematicBreakdown)
	videoIdea := context.Get(ParamVideoIdea).(string)

	breakdownsJSON, err := json.MarshalIndent(breakdowns, "", "  ")
	if err != nil {
		context.AddError(r.GetName(), fmt.Errorf("failed to marshal breakdowns for judging: %w", err))
		r.ErrorCounter.Add(context.GetContext(), 1)
		return
	}
	exampleJSON, err := json.MarshalIndent(model.GetExampleRanking(), "", "  ")
	if err != nil {
		context.AddError(r.GetName(), fmt.Errorf("failed to marshal ranking example: %w", err))
		r.ErrorCounter.Add(context.GetContext(), 1)
		return
	}

	var prompt strings.Builder
	err = r.promptTemplate.Execute(&prompt, map[string]interface{}{
		"VIDEO_IDEA":      videoIdea,
		"BREAKDOWNS_JSON": string(breakdownsJSON),
		"EXAMPLE_JSON":    string(exampleJSON),
	})
	if err != nil {
		context.AddError(r.GetName(), fmt.Errorf("failed to render ranking prompt: %w", err))
		r.ErrorCounter.Add(context.GetContext(), 1)
		return
	}

	out, err := cloud.GenerateTextResponse(
		context.GetContext(),
		r.inputTokenCount,
		r.outputTokenCount,
		r.retryCount,
		0,
		r.model,
		cloud.NewUserContent(prompt.String()))
	if err != nil {
		context.AddError(r.GetName(), fmt.Errorf("ranking call failed: %w", err))
		r.ErrorCounter.Add(context.GetContext(), 1)
		return
	}

	ranking := &model.RankingResult{}
	if err := json.Unmarshal([]byte(out), ranking); err != nil {
		context.AddError(r.GetName(), fmt.Errorf("failed to parse ranking response: %w", err))
		r.ErrorCounter.Add(context.GetContext(), 1)
		return
	}
	if err := ranking.Validate(len(breakdowns)); err != nil {
		context.AddError(r.GetName(), err)
		r.ErrorCounter.Add(context.GetContext(), 1)
		return
	}

	context.Add(ParamBreakdowns, breakdowns)
	context.Add(r.GetOutputParam(), ranking)
	r.SuccessCounter.Add(context.GetContext(), 1)
}
