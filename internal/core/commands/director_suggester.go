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

// DirectorSuggester is the first stage of the bake-off pipeline. Given the
// user's video idea and chosen directors, it asks the creative model for one
// additional director whose style would complement the set, then emits the
// combined roster for the breakdown stage.
//
// Template vocabulary:
//   - VIDEO_IDEA: the user's video concept.
//   - DIRECTOR_LIST: the comma-joined names of the user's chosen directors.
//   - EXAMPLE_JSON: a marshaled example of the expected output shape.
type DirectorSuggester struct {
	cor.BaseCommand
	model            cloud.ContentGenerator
	promptTemplate   *template.Template
	inputTokenCount  metric.Int64Counter
	outputTokenCount metric.Int64Counter
	retryCount       metric.Int64Counter
}

// NewDirectorSuggester is the constructor for the DirectorSuggester command.
//
// Inputs:
//   - name: The name for this command instance, used in logs and telemetry.
//   - generativeAIModel: The client for the creative generative model.
//   - promptTemplate: The parsed template for the suggestion prompt.
//
// Outputs:
//   - *DirectorSuggester: A pointer to the newly created command.
func NewDirectorSuggester(
	name string,
	generativeAIModel cloud.ContentGenerator,
	promptTemplate *template.Template,
) *DirectorSuggester {
	base := cor.NewBaseCommand(name)
	inputTokenCount, _ := base.Meter.Int64Counter(fmt.Sprintf("%s.tokens.input", name))
	outputTokenCount, _ := base.Meter.Int64Counter(fmt.Sprintf("%s.tokens.output", name))
	retryCount, _ := base.Meter.Int64Counter(fmt.Sprintf("%s.counter.retries", name))
	return &DirectorSuggester{
		BaseCommand:      *base,
		model:            generativeAIModel,
		promptTemplate:   promptTemplate,
		inputTokenCount:  inputTokenCount,
		outputTokenCount: outputTokenCount,
		retryCount:       retryCount,
	}
}

// IsExecutable verifies the command has a director roster to extend and a
// video idea to suggest against.
func (d *DirectorSuggester) IsExecutable(context cor.Context) bool {
	if !d.BaseCommand.IsExecutable(context) {
		return false
	}
	_, ok := context.Get(d.GetInputParam()).([]string)
	_, ideaOk := context.Get(ParamVideoIdea).(string)
	return ok && ideaOk
}

// Execute renders the suggestion prompt, calls the creative model, and places
// the combined roster (the user's directors plus the suggested one) in the
// output parameter. The suggested name alone is recorded under
// ParamSuggestion for the final result assembly.
func (d *DirectorSuggester) Execute(context cor.Context) {
	directors := context.Get(d.GetInputParam()).([]string)
	videoIdea := context.Get(ParamVideoIdea).(string)

	exampleJSON, err := json.MarshalIndent(model.GetExampleSuggestion(), "", "  ")
	if err != nil {
		context.AddError(d.GetName(), fmt.Errorf("failed to marshal suggestion example: %w", err))
		d.ErrorCounter.Add(context.GetContext(), 1)
		return
	}

	var prompt strings.Builder
	err = d.promptTemplate.Execute(&prompt, map[string]interface{}{
		"VIDEO_IDEA":    videoIdea,
		"DIRECTOR_LIST": strings.Join(directors, ", "),
		"EXAMPLE_JSON":  string(exampleJSON),
	})
	if err != nil {
		context.AddError(d.GetName(), fmt.Errorf("failed to render suggestion prompt: %w", err))
		d.ErrorCounter.Add(context.GetContext(), 1)
		return
	}

	out, err := cloud.GenerateTextResponse(
		context.GetContext(),
		d.inputTokenCount,
		d.outputTokenCount,
		d.retryCount,
		0,
		d.model,
		cloud.NewUserContent(prompt.String()))
	if err != nil {
		context.AddError(d.GetName(), fmt.Errorf("director suggestion call failed: %w", err))
		d.ErrorCounter.Add(context.GetContext(), 1)
		return
	}

	suggestion := &model.DirectorSuggestion{}
	if err := json.Unmarshal([]byte(out), suggestion); err != nil {
		context.AddError(d.GetName(), fmt.Errorf("failed to parse suggestion response: %w", err))
		d.ErrorCounter.Add(context.GetContext(), 1)
		return
	}
	suggested := strings.TrimSpace(suggestion.AdditionalDirector)
	if suggested == "" {
		context.AddError(d.GetName(), fmt.Errorf("model returned an empty director suggestion"))
		d.ErrorCounter.Add(context.GetContext(), 1)
		return
	}

	roster := append(append(make([]string, 0, len(directors)+1), directors...), suggested)
	context.Add(ParamSuggestion, suggested)
	context.Add(d.GetOutputParam(), roster)
	d.SuccessCounter.Add(context.GetContext(), 1)
}
