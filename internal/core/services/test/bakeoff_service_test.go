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

// Package services_test covers the request-level concerns owned by the
// BakeOffService: director list normalization, the default roster fallback,
// and input validation.
package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaycherian/gcp-go-director-bakeoff/internal/core/services"
	test "github.com/jaycherian/gcp-go-director-bakeoff/internal/testutil"
)

// newService builds a BakeOffService over the test configuration. The tests
// in this file never reach the workflow, so none is wired in.
func newService() *services.BakeOffService {
	return services.NewBakeOffService(test.GetConfig(), nil)
}

// TestParseDirectorList verifies trimming and empty-entry dropping.
func TestParseDirectorList(t *testing.T) {
	s := newService()

	directors := s.ParseDirectorList("  Wes Anderson ,  , Bong Joon-ho ")
	assert.Equal(t, []string{"Wes Anderson", "Bong Joon-ho"}, directors)

	directors = s.ParseDirectorList("Single Name")
	assert.Equal(t, []string{"Single Name"}, directors)
}

// TestParseDirectorListFallback verifies that blank or comma-only input
// yields the configured default roster rather than an empty one.
func TestParseDirectorListFallback(t *testing.T) {
	s := newService()
	expected := test.GetConfig().BakeOff.DefaultDirectors

	assert.Equal(t, expected, s.ParseDirectorList(""))
	assert.Equal(t, expected, s.ParseDirectorList("   "))
	assert.Equal(t, expected, s.ParseDirectorList(" , ,, "))
}

// TestParseDirectorListFallbackIsACopy verifies the fallback roster cannot be
// mutated through the returned slice.
func TestParseDirectorListFallbackIsACopy(t *testing.T) {
	s := newService()
	first := s.ParseDirectorList("")
	first[0] = "mutated"
	second := s.ParseDirectorList("")
	assert.NotEqual(t, "mutated", second[0])
}

// TestRunBakeOffRequiresVideoIdea verifies that a blank idea is rejected
// before any model work begins.
func TestRunBakeOffRequiresVideoIdea(t *testing.T) {
	s := newService()

	_, err := s.RunBakeOff(context.Background(), "", "Wes Anderson")
	assert.Error(t, err)

	_, err = s.RunBakeOff(context.Background(), "   ", "Wes Anderson")
	assert.Error(t, err)
}
