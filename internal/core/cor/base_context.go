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

// Package cor (Chain of Responsibility) provides the fundamental building
// blocks for creating workflows. This file defines `BaseContext`, the default
// implementation of the `Context` interface.
//
// The `Context` is the shared property bag passed through the entire chain of
// commands for one bake-off request. Each command reads its inputs from the
// context, performs its work, and writes its results back for subsequent
// commands to use. The context also collects errors keyed by the command that
// produced them, which is how a stage failure surfaces to the service layer.
package cor

import (
	"context"
)

// BaseContext is the default implementation of the Context interface. It holds
// the shared state for a workflow execution.
type BaseContext struct {
	data    map[string]interface{} // A map to store arbitrary key-value data.
	errors  map[string]error       // A map to store errors, keyed by the command name that produced them.
	context context.Context        // The standard Go context for cancellation and passing request-scoped values.
}

// NewBaseContext is the constructor for BaseContext.
// It initializes all the internal maps to ensure they are ready for use.
//
// Outputs:
//   - Context: A new, empty context object.
func NewBaseContext() Context {
	return &BaseContext{
		data:   make(map[string]interface{}),
		errors: make(map[string]error),
	}
}

// SetContext sets the underlying standard Go context. This is used by the
// BaseChain to manage the context for OpenTelemetry spans and by the service
// layer to apply the per-request deadline.
func (c *BaseContext) SetContext(context context.Context) {
	c.context = context
}

// GetContext retrieves the underlying standard Go context.
func (c *BaseContext) GetContext() context.Context {
	return c.context
}

// Add stores a key-value pair in the context's data map.
//
// Outputs:
//   - Context: The context instance, allowing for fluent method chaining.
func (c *BaseContext) Add(key string, value interface{}) Context {
	c.data[key] = value
	return c
}

// AddError adds an error to the context's error map, keyed by the command name.
func (c *BaseContext) AddError(key string, err error) {
	c.errors[key] = err
}

// GetErrors returns the map of all errors collected during the workflow.
func (c *BaseContext) GetErrors() map[string]error {
	return c.errors
}

// Get retrieves a value from the context's data map by its key, or nil when
// the key does not exist.
func (c *BaseContext) Get(key string) interface{} {
	return c.data[key]
}

// Remove deletes a key-value pair from the context's data map.
func (c *BaseContext) Remove(key string) {
	delete(c.data, key)
}

// HasErrors checks if any errors have been added to the context.
func (c *BaseContext) HasErrors() bool {
	return len(c.errors) > 0
}
