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

// Package main contains the setup and initialization logic for the
// application's state. This file is responsible for creating a centralized
// state manager holding all shared dependencies — the configuration, the
// media demuxer, the speech and perception clients, the analysis workflow,
// and the services behind the HTTP routes.
//
// Functions:
//   - SetupOS: Points the configuration loader at the correct TOML files.
//   - GetConfig: A singleton that loads the configuration exactly once.
//   - InitState: Builds every shared dependency and wires the pipeline.
package main

import (
	"log"
	"os"

	"github.com/interviewace/video-analysis/internal/config"
	"github.com/interviewace/video-analysis/internal/core/services"
	"github.com/interviewace/video-analysis/internal/core/workflow"
	"github.com/interviewace/video-analysis/internal/media"
	"github.com/interviewace/video-analysis/internal/perception"
	"github.com/interviewace/video-analysis/internal/resume"
	"github.com/interviewace/video-analysis/internal/speech"
)

// StateManager holds all the shared dependencies of the server, acting as a
// centralized container so the route handlers have one place to reach for
// services instead of a scatter of globals.
type StateManager struct {
	config        *config.Config
	mediaService  *services.MediaService
	resumeService *resume.Analyzer
}

// state is the single instance of StateManager for this process.
var state = &StateManager{}

// SetupOS sets the environment variables the configuration loader uses to
// find the TOML files, unless the environment already provides them.
//
// Outputs:
//   - error: when setting an environment variable fails.
func SetupOS() (err error) {
	if os.Getenv(config.EnvConfigFilePrefix) == "" {
		if err = os.Setenv(config.EnvConfigFilePrefix, "configs"); err != nil {
			return err
		}
	}
	if os.Getenv(config.EnvConfigRuntime) == "" {
		err = os.Setenv(config.EnvConfigRuntime, "local")
	}
	return err
}

// GetConfig provides a singleton instance of the application configuration,
// loading it from the TOML files on first use.
//
// Outputs:
//   - *config.Config: the loaded application configuration.
func GetConfig() *config.Config {
	if state.config == nil {
		if err := SetupOS(); err != nil {
			log.Fatalf("failed to set up configuration environment: %v\n", err)
		}
		cfg := config.NewConfig()
		config.LoadConfig(cfg)
		state.config = cfg
	}
	return state.config
}

// InitState initializes the entire application state.
//
// Logic Flow:
//  1. Load the configuration.
//  2. Build the demuxer over the configured ffmpeg/ffprobe binaries.
//  3. Build the speech adapter: local whisper first, Google Cloud Speech as
//     the network fallback. Engine availability is resolved here, once.
//  4. Build the perception sidecar clients.
//  5. Assemble the analysis workflow and wrap it in the media service that
//     owns the upload directory.
func InitState() {
	cfg := GetConfig()

	demuxer := media.NewDemuxer(cfg.Media)

	stt := speech.NewAdapter(
		speech.NewWhisperEngine(cfg.Speech),
		speech.NewGoogleEngine(cfg.Speech),
	)

	landmarks := perception.NewLandmarkClient(cfg.Perception)
	emotions := perception.NewEmotionClient(cfg.Perception)

	analyzer := workflow.NewInterviewAnalyzer(cfg, demuxer, stt, landmarks, emotions)

	mediaService, err := services.NewMediaService(cfg, analyzer)
	if err != nil {
		panic(err)
	}
	state.mediaService = mediaService
	state.resumeService = resume.NewAnalyzer()
}
