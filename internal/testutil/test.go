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

// Package test provides utility functions and mock data to support the
// application's test suite. It helps in setting up a consistent test
// environment, loading test-specific configurations, and providing sample
// data for the media and workflow tests.
package test

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/interviewace/video-analysis/internal/config"
)

// StateManager acts as a simple in-memory cache for the application
// configuration during test runs. This prevents the need to reload
// configuration files for every test, speeding up the test suite.
type StateManager struct {
	config *config.Config
}

// state is a package-level variable that holds the singleton instance of
// StateManager, ensuring that the configuration is loaded only once per test
// run.
var state = &StateManager{}

// HandleErr is a simple test helper function that checks if an error is not
// nil. If an error exists, it fails the test immediately by calling t.Errorf.
// This is a convenience function to reduce boilerplate error-checking code
// in tests.
//
// Inputs:
//   - err: The error to check.
//   - t: The *testing.T object from the current test.
func HandleErr(err error, t *testing.T) {
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// findConfigDir walks upward from the current working directory until it
// finds the module's configs directory. Test binaries run inside their
// package directory, so the relative location of configs/ varies with the
// package depth; walking up keeps every test package pointed at the same
// files.
func findConfigDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "configs"
	}
	for {
		candidate := filepath.Join(dir, "configs")
		if _, err := os.Stat(filepath.Join(candidate, ".env.toml")); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "configs"
		}
		dir = parent
	}
}

// SetupOS configures the environment variables the configuration loader
// depends on. By setting these variables, we direct the loader to use the
// test-specific configuration files (`.env.test.toml`) instead of the local
// development ones.
//
// Outputs:
//   - error: when setting any environment variable fails.
func SetupOS() (err error) {
	// Set the directory where the configuration files are located.
	err = os.Setenv(config.EnvConfigFilePrefix, findConfigDir())
	if err != nil {
		return err
	}
	// Set the runtime environment identifier to "test". This causes the
	// loader to look for a file named ".env.test.toml" for overrides.
	err = os.Setenv(config.EnvConfigRuntime, "test")
	return err
}

// GetConfig is a singleton accessor for the test configuration. It ensures
// that the configuration is loaded from the TOML files only once and is
// cached in the package-level `state` variable for subsequent calls. Tests
// that need to mutate the configuration (for example to point the upload
// directory at a t.TempDir) should copy the struct first.
//
// Outputs:
//   - *config.Config: the loaded and cached configuration.
func GetConfig() *config.Config {
	if state.config == nil {
		if err := SetupOS(); err != nil {
			log.Fatalf("failed to setup environment for test: %v\n", err)
		}
		cfg := config.NewConfig()
		config.LoadConfig(cfg)
		state.config = cfg
	}
	return state.config
}

// GetTestProbeOutputText returns a hardcoded JSON string shaped like the
// ffprobe output for a short webcam interview recording: one H.264 video
// stream at 30000/1001 fps and one mono audio stream. This mock data is used
// to test the probe folding logic without invoking ffprobe.
//
// Outputs:
//   - A string containing the JSON payload of an ffprobe run.
func GetTestProbeOutputText() string {
	return `{
  "streams": [
    {
      "codec_type": "video",
      "avg_frame_rate": "30000/1001",
      "r_frame_rate": "30000/1001",
      "nb_frames": "1798",
      "duration": "60.027"
    },
    {
      "codec_type": "audio",
      "avg_frame_rate": "0/0",
      "r_frame_rate": "0/0",
      "nb_frames": "2815",
      "duration": "60.030"
    }
  ],
  "format": {
    "duration": "60.030"
  }
}`
}

// GetTestProbeSilentOutputText returns ffprobe-shaped JSON for a container
// with a single video stream and no audio at all, the shape produced by
// screen recorders with the microphone disabled. The video stream omits
// nb_frames and carries no usable frame rate, exercising both probe
// fallbacks at once.
//
// Outputs:
//   - A string containing the JSON payload of an ffprobe run.
func GetTestProbeSilentOutputText() string {
	return `{
  "streams": [
    {
      "codec_type": "video",
      "avg_frame_rate": "0/0",
      "r_frame_rate": "0/0",
      "nb_frames": "",
      "duration": "12.5"
    }
  ],
  "format": {
    "duration": "12.5"
  }
}`
}
