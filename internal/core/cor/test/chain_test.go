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

// Package cor_test covers the chain-of-responsibility framework itself: data
// piping between commands and the abort-on-first-failure behavior the
// bake-off pipeline relies on.
package cor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaycherian/gcp-go-director-bakeoff/internal/core/cor"
)

// appendCommand appends its suffix to the string flowing through the chain.
type appendCommand struct {
	cor.BaseCommand
	suffix string
}

func newAppendCommand(name string, suffix string) *appendCommand {
	return &appendCommand{BaseCommand: *cor.NewBaseCommand(name), suffix: suffix}
}

func (c *appendCommand) Execute(context cor.Context) {
	in := context.Get(c.GetInputParam()).(string)
	context.Add(c.GetOutputParam(), in+c.suffix)
}

// failingCommand records an error. It forwards its input so a chain running
// in continue-on-failure mode still has data for the commands behind it.
type failingCommand struct {
	cor.BaseCommand
}

func newFailingCommand(name string) *failingCommand {
	return &failingCommand{BaseCommand: *cor.NewBaseCommand(name)}
}

func (c *failingCommand) Execute(context cor.Context) {
	context.AddError(c.GetName(), errors.New("boom"))
	context.Add(c.GetOutputParam(), context.Get(c.GetInputParam()))
}

// TestChainPipesOutputToInput verifies the flip-flop piping: each command's
// output becomes the next command's input, and the final output is readable
// from the input slot after the chain completes.
func TestChainPipesOutputToInput(t *testing.T) {
	chain := cor.NewBaseChain("pipe").
		AddCommand(newAppendCommand("first", "-a")).
		AddCommand(newAppendCommand("second", "-b"))

	chCtx := cor.NewBaseContext()
	chCtx.SetContext(context.Background())
	chCtx.Add(cor.CtxIn, "seed")

	chain.Execute(chCtx)

	assert.False(t, chCtx.HasErrors())
	assert.Equal(t, "seed-a-b", chCtx.Get(cor.CtxIn))
}

// TestChainStopsOnFirstFailure verifies that once a command records an
// error, later commands are skipped and the error is preserved under the
// failing command's name.
func TestChainStopsOnFirstFailure(t *testing.T) {
	tail := newAppendCommand("tail", "-never")
	chain := cor.NewBaseChain("abort").
		AddCommand(newAppendCommand("head", "-a")).
		AddCommand(newFailingCommand("broken")).
		AddCommand(tail)

	chCtx := cor.NewBaseContext()
	chCtx.SetContext(context.Background())
	chCtx.Add(cor.CtxIn, "seed")

	chain.Execute(chCtx)

	assert.True(t, chCtx.HasErrors())
	_, ok := chCtx.GetErrors()["broken"]
	assert.True(t, ok)
	// The tail command never ran, so its suffix is absent everywhere.
	assert.NotEqual(t, "seed-a-never", chCtx.Get(cor.CtxIn))
}

// TestChainContinueOnFailure verifies the opt-in behavior where the chain
// keeps running after an error.
func TestChainContinueOnFailure(t *testing.T) {
	chain := cor.NewBaseChain("continue").
		AddCommand(newFailingCommand("broken")).
		AddCommand(newAppendCommand("tail", "-b")).
		ContinueOnFailure(true)

	chCtx := cor.NewBaseContext()
	chCtx.SetContext(context.Background())
	chCtx.Add(cor.CtxIn, "seed")

	chain.Execute(chCtx)

	assert.True(t, chCtx.HasErrors())
	assert.Equal(t, "seed-b", chCtx.Get(cor.CtxIn))
}
