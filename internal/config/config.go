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

// Package config defines the data structures for application configuration,
// loaded from TOML files. Every tunable the analysis core consumes is
// declared here rather than hardcoded: the analysis duration cap, the frame
// sampling cadence, the ideal speaking-rate band, the gaze thresholds, the
// filler-word lexicons, and the locations of the external tools and
// perception sidecars.
//
// Structs:
//   - Storage: upload directory and temp-audio naming.
//   - Media: paths to the ffmpeg/ffprobe executables.
//   - Speech: primary (local whisper) and secondary (Google Cloud Speech)
//     engine settings.
//   - Perception: endpoints of the landmark and emotion sidecars.
//   - Analysis: the numeric knobs and lexicons of the scoring model.
//   - Config: the top-level aggregate.
//
// Functions:
//   - NewConfig: constructor that seeds every knob with the defaults the
//     scoring model was calibrated against.
package config

// Storage holds the on-disk layout for uploads and derived artifacts.
type Storage struct {
	UploadDir       string `toml:"upload_dir"`        // Directory for uploaded videos and analysis JSON files.
	TempAudioPrefix string `toml:"temp_audio_prefix"` // File name prefix for extracted temp audio.
}

// Media holds the locations of the external demuxing tools.
type Media struct {
	FFmpegPath  string `toml:"ffmpeg_path"`  // Path to the ffmpeg executable.
	FFprobePath string `toml:"ffprobe_path"` // Path to the ffprobe executable.
}

// Speech configures the transcription engines. The primary engine is a local
// whisper.cpp binary; the secondary is the network-dependent Google Cloud
// Speech service.
type Speech struct {
	WhisperPath      string `toml:"whisper_path"`       // Path to the whisper-cli executable.
	WhisperModelPath string `toml:"whisper_model_path"` // Path to the whisper GGML model file.
	Language         string `toml:"language"`           // Language hint passed to both engines (e.g. "en").
	GoogleEnabled    bool   `toml:"google_enabled"`     // Whether the Google Cloud Speech fallback is configured.
	SampleRateHertz  int    `toml:"sample_rate_hertz"`  // PCM sample rate of extracted audio.
}

// Perception holds the endpoints of the perception-model sidecars. The
// detectors themselves are black boxes behind HTTP; only their addresses and
// the request timeout are configurable here.
type Perception struct {
	LandmarkEndpoint string `toml:"landmark_endpoint"` // Base URL of the facial-landmark detector sidecar.
	EmotionEndpoint  string `toml:"emotion_endpoint"`  // Base URL of the emotion classifier sidecar.
	TimeoutSeconds   int    `toml:"timeout_seconds"`   // Per-request timeout for sidecar calls.
}

// Analysis holds the numeric model of the scoring pipeline. The defaults
// below are the values the score fusion was calibrated against; deployments
// can tighten or loosen them per environment.
type Analysis struct {
	MaxAnalysisSeconds  float64  `toml:"max_analysis_seconds"`   // Cap on how much of the video is analyzed.
	FrameSampleEverySec float64  `toml:"frame_sample_every_sec"` // Cadence of frame sampling in seconds.
	MinIdealWPM         float64  `toml:"min_ideal_wpm"`          // Lower bound of the neutral speaking-rate band.
	MaxIdealWPM         float64  `toml:"max_ideal_wpm"`          // Upper bound of the neutral speaking-rate band.
	GazeCenterMin       float64  `toml:"gaze_center_min"`        // Lower bound of the central iris band.
	GazeCenterMax       float64  `toml:"gaze_center_max"`        // Upper bound of the central iris band.
	HeadFacingRatio     float64  `toml:"head_facing_ratio"`      // Minimum nose-to-eye symmetry ratio for a facing head.
	SingleWordFillers   []string `toml:"single_word_fillers"`    // Filler tokens counted by exact token match.
	MultiWordFillers    []string `toml:"multi_word_fillers"`     // Filler phrases counted by substring occurrence.
}

// Config represents the overall configuration for the application, loaded
// from TOML files. It acts as the root container for all other configuration
// structs.
type Config struct {
	// Application holds general application settings.
	Application struct {
		Name string `toml:"name"` // The name of the application, used as the telemetry service name.
		Port int    `toml:"port"` // TCP port for the HTTP boundary.
	} `toml:"application"`
	Storage    Storage    `toml:"storage"`
	Media      Media      `toml:"media"`
	Speech     Speech     `toml:"speech"`
	Perception Perception `toml:"perception"`
	Analysis   Analysis   `toml:"analysis"`
}

// NewConfig creates a Config pre-populated with the calibrated defaults.
// TOML files loaded on top of it only need to state what differs.
func NewConfig() *Config {
	c := &Config{}
	c.Application.Name = "interview-video-analysis"
	c.Application.Port = 8080
	c.Storage = Storage{
		UploadDir:       "uploads",
		TempAudioPrefix: "temp_audio",
	}
	c.Media = Media{
		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",
	}
	c.Speech = Speech{
		WhisperPath:      "whisper-cli",
		WhisperModelPath: "models/ggml-small.bin",
		Language:         "en",
		GoogleEnabled:    true,
		SampleRateHertz:  16000,
	}
	c.Perception = Perception{
		LandmarkEndpoint: "http://127.0.0.1:9001",
		EmotionEndpoint:  "http://127.0.0.1:9002",
		TimeoutSeconds:   30,
	}
	c.Analysis = Analysis{
		MaxAnalysisSeconds:  180,
		FrameSampleEverySec: 2.0,
		MinIdealWPM:         90,
		MaxIdealWPM:         160,
		GazeCenterMin:       0.2,
		GazeCenterMax:       0.8,
		HeadFacingRatio:     0.6,
		SingleWordFillers: []string{
			"um", "uh", "ah", "er", "em", "like", "so",
			"well", "right", "actually", "basically",
		},
		MultiWordFillers: []string{
			"you know", "i mean", "kind of", "sort of",
		},
	}
	return c
}
