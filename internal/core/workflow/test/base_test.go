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

// Package workflow_test contains integration-style tests for the bake-off
// pipeline. This file provides the shared setup via TestMain: the test
// configuration and local-only telemetry. The generative models themselves
// are scripted fakes supplied per test, so the suite runs without network
// access or credentials.
package workflow_test

import (
	"context"
	"os"
	"testing"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"

	"github.com/jaycherian/gcp-go-director-bakeoff/internal/cloud"
	"github.com/jaycherian/gcp-go-director-bakeoff/internal/telemetry"
	test "github.com/jaycherian/gcp-go-director-bakeoff/internal/testutil"
)

// Shared resources for the suite, initialized once in TestMain.
var (
	ctx    context.Context
	config *cloud.Config
)

const tName = "github.com/jaycherian/gcp-go-director-bakeoff/tests/workflow"

var (
	tracer = otel.Tracer(tName)
	logger = otelslog.NewLogger(tName)
)

// TestMain sets up the shared test state before any test in this package
// runs: the test configuration (no Google project, so telemetry stays local)
// and logging.
func TestMain(m *testing.M) {
	var cancel context.CancelFunc
	ctx, cancel = context.WithCancel(context.Background())

	config = test.GetConfig()

	telemetry.SetupLogging()

	shutdown, err := telemetry.SetupOpenTelemetry(ctx, config)
	if err != nil {
		panic(err)
	}

	logger.Info("completed test setup")

	code := m.Run()

	_ = shutdown(context.Background())
	cancel()
	os.Exit(code)
}
