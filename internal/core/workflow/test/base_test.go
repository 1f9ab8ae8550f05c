// Copyright 2025 InterviewAce Authors
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

// Package workflow_test contains integration tests for the analysis
// workflow. This file, `base_test.go`, provides the foundational setup and
// teardown logic for all tests within this package. It uses the special
// `TestMain` function, which acts as the main entry point for the test
// suite, allowing for global initialization of configuration and telemetry.
// These shared resources are then available to all other test files in this
// package.
package workflow_test

import (
	"context"
	"os"
	"testing"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"

	"github.com/interviewace/video-analysis/internal/config"
	"github.com/interviewace/video-analysis/internal/telemetry"
	test "github.com/interviewace/video-analysis/internal/testutil"
)

// Shared resources for the suite, initialized once in TestMain.
var (
	ctx context.Context // The root context for all tests in the suite.
	cfg *config.Config  // The application configuration loaded from test files.
)

// Instrumentation scope for the suite's own spans and log records.
const tName = "github.com/interviewace/video-analysis/tests/workflow"

var (
	tracer = otel.Tracer(tName)
	logger = otelslog.NewLogger(tName)
)

// TestMain sets up shared state before any test in this package runs and
// tears it down afterwards.
//
// Inputs:
//   - m: the test suite handle; m.Run() executes the package's tests.
func TestMain(m *testing.M) {
	var cancel context.CancelFunc
	ctx, cancel = context.WithCancel(context.Background())
	defer cancel()

	// Load configuration from the test-specific TOML files.
	cfg = test.GetConfig()

	telemetry.SetupLogging()

	// Initialize OpenTelemetry; the returned shutdown flushes buffered
	// telemetry after the run.
	shutdown, err := telemetry.SetupOpenTelemetry(ctx, cfg)
	if err != nil {
		panic(err)
	}

	logger.Info("completed test setup")

	exitCode := m.Run()

	if err := shutdown(ctx); err != nil {
		logger.Error("failed to shutdown telemetry", "error", err)
	}

	os.Exit(exitCode)
}
