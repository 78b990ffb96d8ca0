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

// Package cloud_test covers the resilient text-generation helper: response
// flattening, markdown fence stripping, the retry policy, and cancellation.
package cloud_test

import (
	"context"
	"errors"
	"testing"

	"github.com/zeebo/assert"
	"go.opentelemetry.io/otel"
	"google.golang.org/genai"

	"github.com/jaycherian/gcp-go-director-bakeoff/internal/cloud"
	test "github.com/jaycherian/gcp-go-director-bakeoff/internal/testutil"
)

func TestGenerateTextResponseStripsFences(t *testing.T) {
	meter := otel.Meter("cloud-test")
	inTok, _ := meter.Int64Counter("in")
	outTok, _ := meter.Int64Counter("out")
	retries, _ := meter.Int64Counter("retries")

	gen := test.NewScriptedGenerator(func(_ context.Context, _ []*genai.Content) (*genai.GenerateContentResponse, error) {
		return test.TextResponse("```json\n{\"ok\": true}\n```"), nil
	})

	out, err := cloud.GenerateTextResponse(context.Background(), inTok, outTok, retries, 0, gen, cloud.NewUserContent("hello"))
	assert.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, out)
}

func TestGenerateTextResponseRetriesThenSucceeds(t *testing.T) {
	meter := otel.Meter("cloud-test")
	inTok, _ := meter.Int64Counter("in")
	outTok, _ := meter.Int64Counter("out")
	retries, _ := meter.Int64Counter("retries")

	failures := 2
	gen := test.NewScriptedGenerator(func(_ context.Context, _ []*genai.Content) (*genai.GenerateContentResponse, error) {
		if failures > 0 {
			failures--
			return nil, errors.New("transient")
		}
		return test.TextResponse("recovered"), nil
	})

	out, err := cloud.GenerateTextResponse(context.Background(), inTok, outTok, retries, 0, gen, cloud.NewUserContent("hello"))
	assert.NoError(t, err)
	assert.Equal(t, "recovered", out)
	assert.Equal(t, 3, gen.Calls())
}

func TestGenerateTextResponseExhaustsRetries(t *testing.T) {
	meter := otel.Meter("cloud-test")
	inTok, _ := meter.Int64Counter("in")
	outTok, _ := meter.Int64Counter("out")
	retries, _ := meter.Int64Counter("retries")

	gen := test.NewScriptedGenerator(func(_ context.Context, _ []*genai.Content) (*genai.GenerateContentResponse, error) {
		return nil, errors.New("permanent")
	})

	_, err := cloud.GenerateTextResponse(context.Background(), inTok, outTok, retries, 0, gen, cloud.NewUserContent("hello"))
	assert.Error(t, err)
	// The initial attempt plus MaxRetries follow-ups.
	assert.Equal(t, cloud.MaxRetries+1, gen.Calls())
}

func TestGenerateTextResponseNoRetryOnCancel(t *testing.T) {
	meter := otel.Meter("cloud-test")
	inTok, _ := meter.Int64Counter("in")
	outTok, _ := meter.Int64Counter("out")
	retries, _ := meter.Int64Counter("retries")

	ctx, cancel := context.WithCancel(context.Background())
	gen := test.NewScriptedGenerator(func(_ context.Context, _ []*genai.Content) (*genai.GenerateContentResponse, error) {
		cancel()
		return nil, errors.New("interrupted")
	})

	_, err := cloud.GenerateTextResponse(ctx, inTok, outTok, retries, 0, gen, cloud.NewUserContent("hello"))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 1, gen.Calls())
}
