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
	"golang.org/x/sync/errgroup"

	"github.com/jaycherian/gcp-go-director-bakeoff/internal/cloud"
	"github.com/jaycherian/gcp-go-director-bakeoff/internal/core/cor"
	"github.com/jaycherian/gcp-go-director-bakeoff/internal/core/model"
)

// BreakdownGenerator is the fan-out stage of the pipeline. It takes the full
// director roster and runs one breakdown-generation call per director in
// parallel. The calls share an error group: the first failure cancels every
// in-flight sibling, and the stage reports that failure rather than a partial
// result. Successful results are written to indexed slots, so the output list
// preserves roster order regardless of completion order.
//
// Template vocabulary:
//   - VIDEO_IDEA: the user's video concept.
//   - DIRECTOR: the single director this call interprets for.
//   - EXAMPLE_JSON: a marshaled example of the expected output shape.
type BreakdownGenerator struct {
	cor.BaseCommand
	model            cloud.ContentGenerator
	promptTemplate   *template.Template
	inputTokenCount  metric.Int64Counter
	outputTokenCount metric.Int64Counter
	retryCount       metric.Int64Counter
}

// NewBreakdownGenerator is the constructor for the BreakdownGenerator command.
//
// Inputs:
//   - name: The name for this command instance, used in logs and telemetry.
//   - generativeAIModel: The client for the creative generative model.
//   - promptTemplate: The parsed template for the breakdown prompt.
//
// Outputs:
//   - *BreakdownGenerator: A pointer to the newly created command.
func NewBreakdownGenerator(
	name string,
	generativeAIModel cloud.ContentGenerator,
	promptTemplate *template.Template,
) *BreakdownGenerator {
	base := cor.NewBaseCommand(name)
	inputTokenCount, _ := base.Meter.Int64Counter(fmt.Sprintf("%s.tokens.input", name))
	outputTokenCount, _ := base.Meter.Int64Counter(fmt.Sprintf("%s.tokens.output", name))
	retryCount, _ := base.Meter.Int64Counter(fmt.Sprintf("%s.counter.retries", name))
	return &BreakdownGenerator{
		BaseCommand:      *base,
		model:            generativeAIModel,
		promptTemplate:   promptTemplate,
		inputTokenCount:  inputTokenCount,
		outputTokenCount: outputTokenCount,
		retryCount:       retryCount,
	}
}

// IsExecutable verifies the command has a non-empty roster and a video idea.
func (b *BreakdownGenerator) IsExecutable(context cor.Context) bool {
	if !b.BaseCommand.IsExecutable(context) {
		return false
	}
	roster, ok := context.Get(b.GetInputParam()).([]string)
	_, ideaOk := context.Get(ParamVideoIdea).(string)
	return ok && ideaOk && len(roster) > 0
}

// Execute fans one generation task out per roster director and joins on all
// of them. On success it places the ordered breakdown list in the output
// parameter; on any task failure it records the error and emits nothing.
func (b *BreakdownGenerator) Execute(context cor.Context) {
	roster := context.Get(b.GetInputParam()).([]string)
	videoIdea := context.Get(ParamVideoIdea).(string)

	exampleJSON, err := json.MarshalIndent(model.GetExampleBreakdown(), "", "  ")
	if err != nil {
		context.AddError(b.GetName(), fmt.Errorf("failed to marshal breakdown example: %w", err))
		b.ErrorCounter.Add(context.GetContext(), 1)
		return
	}

	breakdowns := make([]*model.CinematicBreakdown, len(roster))
	group, groupCtx := errgroup.WithContext(context.GetContext())

	for i, director := range roster {
		group.Go(func() error {
			var prompt strings.Builder
			err := b.promptTemplate.Execute(&prompt, map[string]interface{}{
				"VIDEO_IDEA":   videoIdea,
				"DIRECTOR":     director,
				"EXAMPLE_JSON": string(exampleJSON),
			})
			if err != nil {
				return fmt.Errorf("failed to render breakdown prompt for %s: %w", director, err)
			}

			out, err := cloud.GenerateTextResponse(
				groupCtx,
				b.inputTokenCount,
				b.outputTokenCount,
				b.retryCount,
				0,
				b.model,
				cloud.NewUserContent(prompt.String()))
			if err != nil {
				return fmt.Errorf("breakdown call for %s failed: %w", director, err)
			}

			breakdown := &model.CinematicBreakdown{}
			if err := json.Unmarshal([]byte(out), breakdown); err != nil {
				return fmt.Errorf("failed to parse breakdown response for %s: %w", director, err)
			}
			if err := breakdown.Validate(); err != nil {
				return fmt.Errorf("breakdown for %s is incomplete: %w", director, err)
			}
			breakdowns[i] = breakdown
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		context.AddError(b.GetName(), err)
		b.ErrorCounter.Add(context.GetContext(), 1)
		return
	}

	context.Add(b.GetOutputParam(), breakdowns)
	b.SuccessCounter.Add(context.GetContext(), 1)
}
