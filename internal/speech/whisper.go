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

package speech

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/interviewace/video-analysis/internal/config"
	"github.com/interviewace/video-analysis/internal/core/model"
)

// WhisperEngine runs a local whisper.cpp binary over the extracted WAV. It
// is the primary engine: no network, no credentials, bounded only by CPU.
//
// Availability is resolved once at construction by checking that both the
// binary and the model file exist. The result is latched for the life of
// the process; a missing installation is logged once and the engine is
// skipped on every subsequent request instead of paying a spawn failure
// per video.
type WhisperEngine struct {
	binaryPath string
	modelPath  string
	language   string
	available  bool
}

// NewWhisperEngine is the constructor for the WhisperEngine.
//
// Inputs:
//   - cfg: the speech configuration naming the whisper binary, its model
//     file, and the transcription language.
//
// Outputs:
//   - *WhisperEngine: a pointer to the newly instantiated engine, with its
//     availability already resolved.
func NewWhisperEngine(cfg config.Speech) *WhisperEngine {
	engine := &WhisperEngine{
		binaryPath: cfg.WhisperPath,
		modelPath:  cfg.WhisperModelPath,
		language:   cfg.Language,
	}
	if engine.language == "" {
		engine.language = "en"
	}

	resolved, err := exec.LookPath(engine.binaryPath)
	if err != nil {
		slog.Warn("whisper binary not found, local transcription disabled",
			"binary", engine.binaryPath, "error", err)
		return engine
	}
	engine.binaryPath = resolved

	if _, err := os.Stat(engine.modelPath); err != nil {
		slog.Warn("whisper model not found, local transcription disabled",
			"model", engine.modelPath, "error", err)
		return engine
	}

	engine.available = true
	return engine
}

// Name implements Engine.
func (w *WhisperEngine) Name() string { return "whisper" }

// Available implements Engine. The value is latched at construction.
func (w *WhisperEngine) Available() bool { return w.available }

// Transcribe implements Engine by running the whisper binary over the WAV
// and collecting plain text from stdout.
func (w *WhisperEngine) Transcribe(ctx context.Context, track *model.AudioTrack) (string, error) {
	cmd := exec.CommandContext(ctx, w.binaryPath,
		"-m", w.modelPath,
		"-f", track.Path,
		"-l", w.language,
		"--no-prints",
		"--no-timestamps")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("whisper run failed: %w (%s)", err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}
