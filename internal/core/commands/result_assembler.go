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
	"fmt"

	"github.com/jaycherian/gcp-go-director-bakeoff/internal/core/cor"
	"github.com/jaycherian/gcp-go-director-bakeoff/internal/core/model"
)

// ResultAssembler is the final stage of the pipeline. It is a purely local
// command: it gathers the verdict from its input parameter and the values the
// earlier stages recorded under named keys, and assembles them into the
// single BakeOffResult the service layer returns. Winner selection lives on
// the RankingResult itself (first occurrence of the minimum rank), so the
// assembler has no ranking logic of its own.
type ResultAssembler struct {
	cor.BaseCommand
}

// NewResultAssembler is the constructor for the ResultAssembler command.
//
// Inputs:
//   - name: The name for this command instance, used in logs and telemetry.
//
// Outputs:
//   - *ResultAssembler: A pointer to the newly created command.
func NewResultAssembler(name string) *ResultAssembler {
	return &ResultAssembler{BaseCommand: *cor.NewBaseCommand(name)}
}

// IsExecutable verifies the verdict and the judged breakdowns are both present.
func (a *ResultAssembler) IsExecutable(context cor.Context) bool {
	if !a.BaseCommand.IsExecutable(context) {
		return false
	}
	_, rankingOk := context.Get(a.GetInputParam()).(*model.RankingResult)
	_, breakdownsOk := context.Get(ParamBreakdowns).([]*model.CinematicBreakdown)
	return rankingOk && breakdownsOk
}

// Execute assembles the final BakeOffResult and places it in the output
// parameter, where the workflow's caller picks it up.
func (a *ResultAssembler) Execute(context cor.Context) {
	ranking := context.Get(a.GetInputParam()).(*model.RankingResult)
	breakdowns := context.Get(ParamBreakdowns).([]*model.CinematicBreakdown)

	videoIdea, _ := context.Get(ParamVideoIdea).(string)
	suggested, _ := context.Get(ParamSuggestion).(string)

	result := &model.BakeOffResult{
		VideoIdea:          videoIdea,
		AdditionalDirector: suggested,
		Breakdowns:         breakdowns,
		Ranking:            ranking,
	}
	if result.Winner() == nil {
		context.AddError(a.GetName(), fmt.Errorf("verdict selects no winner for %d breakdowns", len(breakdowns)))
		a.ErrorCounter.Add(context.GetContext(), 1)
		return
	}

	context.Add(a.GetOutputParam(), result)
	a.SuccessCounter.Add(context.GetContext(), 1)
}
