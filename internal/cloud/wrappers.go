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
// service. This file implements a wrapper around the standard Generative AI
// client. The wrapper uses the Decorator design pattern to add rate limiting
// to the model without altering the client code.
//
// The bake-off workflow fans several concurrent requests out against a single
// model, so a shared limiter in front of the endpoint keeps a burst of
// breakdown generations from tripping the provider's per-minute quota.
//
// Structs:
//   - QuotaAwareGenerativeAIModel: A struct that wraps the base genai model
//     handle with its generation config and a rate limiter.
//
// Functions:
//   - NewQuotaAwareModel: A constructor to create a new instance of the wrapped model.
//   - GenerateContent: The ContentGenerator implementation that waits for limiter
//     capacity before dispatching the call.
package cloud

import (
	"context"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// QuotaAwareGenerativeAIModel decorates a generative model handle with a
// token-bucket rate limiter. It satisfies the ContentGenerator interface, so
// workflow commands never see the limiter directly.
type QuotaAwareGenerativeAIModel struct {
	GenerativeContentConfig *genai.GenerateContentConfig // The generation parameters (temperature, output MIME type, safety settings).
	ModelName               string                       // The provider model identifier.
	ModelHandle             *genai.Models                // The underlying genai model service handle.
	RateLimit               *rate.Limiter                // Controls request frequency against the provider quota.
}

// NewQuotaAwareModel is a constructor function that creates a new
// QuotaAwareGenerativeAIModel. It takes the generation config, the model name
// and handle, and a rate limit in requests per second.
//
// Inputs:
//   - wrapped: The *genai.GenerateContentConfig holding the model parameters.
//   - name: The provider model identifier to invoke.
//   - modelHandle: The genai model service used to dispatch requests.
//   - requestsPerSecond: The maximum number of API calls allowed per second.
//
// Outputs:
//   - *QuotaAwareGenerativeAIModel: A pointer to the newly created wrapper.
func NewQuotaAwareModel(wrapped *genai.GenerateContentConfig, name string, modelHandle *genai.Models, requestsPerSecond int) *QuotaAwareGenerativeAIModel {
	return &QuotaAwareGenerativeAIModel{
		GenerativeContentConfig: wrapped,
		ModelName:               name,
		ModelHandle:             modelHandle,
		// A bucket that refills one token per second and allows a burst of
		// `requestsPerSecond`, matching the size of one breakdown fan-out.
		RateLimit: rate.NewLimiter(rate.Every(time.Second), requestsPerSecond),
	}
}

// GenerateContent dispatches a request to the underlying model once the rate
// limiter grants capacity. Unlike a non-blocking Allow check, Wait queues the
// caller and honors context cancellation, so an aborted bake-off request
// never holds a quota token.
//
// Inputs:
//   - ctx: The context for the request, controlling cancellation and deadline.
//   - content: The conversation content forming the prompt.
//
// Outputs:
//   - *genai.GenerateContentResponse: The response from the AI model if successful.
//   - error: An error if the limiter wait or the request itself fails.
func (q *QuotaAwareGenerativeAIModel) GenerateContent(ctx context.Context, content []*genai.Content) (*genai.GenerateContentResponse, error) {
	if err := q.RateLimit.Wait(ctx); err != nil {
		return nil, err
	}
	return q.ModelHandle.GenerateContent(ctx, q.ModelName, content, q.GenerativeContentConfig)
}
