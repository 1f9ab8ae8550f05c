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
	"context"
	"errors"
	"log/slog"

	"github.com/interviewace/video-analysis/internal/core/model"
)

// Placeholder transcript texts for the non-ok statuses. The report carries
// these strings in the transcript field so a reader of the raw JSON sees
// why no real text is present.
const (
	TextNoAudio            = "No audio detected in video."
	TextUnclear            = "Audio unclear or no speech detected."
	TextServiceUnavailable = "Speech recognition service unavailable (check internet)."
)

// Adapter walks an ordered list of engines and returns the first usable
// transcript. It never returns an error: every failure mode is folded into
// the result's status so downstream analysis can degrade instead of abort.
//
// Logic Flow:
//  1. Skip engines that report themselves unavailable.
//  2. Run each remaining engine in order; the first non-empty transcript
//     wins with status ok.
//  3. When every engine is exhausted, classify the terminal state: an
//     unintelligible result maps to unclear, an unreachable service to
//     service_unavailable, anything else to a generic error.
type Adapter struct {
	engines []Engine
}

// NewAdapter is the constructor for the Adapter. Engines are tried in the
// order given.
func NewAdapter(engines ...Engine) *Adapter {
	return &Adapter{engines: engines}
}

// Transcribe converts the audio track into a tagged transcript.
//
// Inputs:
//   - ctx: the Go context bounding each engine attempt.
//   - track: the extracted audio track.
//
// Outputs:
//   - model.TranscriptResult: the transcript text and its status tag. Only
//     an ok status carries real speech; the other statuses carry a
//     placeholder message.
func (a *Adapter) Transcribe(ctx context.Context, track *model.AudioTrack) model.TranscriptResult {
	var lastErr error
	for _, engine := range a.engines {
		if !engine.Available() {
			slog.Debug("skipping unavailable speech engine", "engine", engine.Name())
			continue
		}
		text, err := engine.Transcribe(ctx, track)
		if err != nil {
			slog.Warn("speech engine failed", "engine", engine.Name(), "error", err)
			lastErr = err
			continue
		}
		if text == "" {
			slog.Info("speech engine heard no speech", "engine", engine.Name())
			lastErr = ErrUnintelligible
			continue
		}
		slog.Info("transcription complete", "engine", engine.Name(), "chars", len(text))
		return model.TranscriptResult{Text: text, Status: model.StatusOK}
	}

	switch {
	case errors.Is(lastErr, ErrUnintelligible):
		return model.TranscriptResult{Text: TextUnclear, Status: model.StatusUnclear}
	case errors.Is(lastErr, ErrServiceUnavailable):
		return model.TranscriptResult{Text: TextServiceUnavailable, Status: model.StatusServiceUnavailable}
	case lastErr != nil:
		return model.TranscriptResult{Text: "Audio analysis error: " + lastErr.Error(), Status: model.StatusError}
	default:
		// No engine was available at all.
		return model.TranscriptResult{Text: TextServiceUnavailable, Status: model.StatusServiceUnavailable}
	}
}
