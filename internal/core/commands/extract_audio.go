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

package commands

import (
	"errors"
	"log/slog"

	"github.com/interviewace/video-analysis/internal/config"
	"github.com/interviewace/video-analysis/internal/core/cor"
	"github.com/interviewace/video-analysis/internal/core/model"
	"github.com/interviewace/video-analysis/internal/media"
	"github.com/interviewace/video-analysis/internal/speech"
)

// ExtractAudio clips and extracts the source's audio as a temporary mono
// WAV bounded by the analysis duration cap. The WAV is registered with the
// run context as a temp file the moment it exists, so it is removed on
// every exit path, successful or not.
//
// Failure modes become data, not chain errors: a source with no audio
// stream publishes a no_audio transcript directly (the transcription
// command then has no audio track to read and skips itself), and an ffmpeg
// failure publishes an error-status transcript the same way. The video leg
// of the pipeline continues regardless.
type ExtractAudio struct {
	cor.BaseCommand
	demuxer *media.Demuxer
	storage config.Storage
	speech  config.Speech
	maxSecs float64
}

// NewExtractAudio is the constructor for the ExtractAudio command.
//
// Inputs:
//   - name: the command name for logging and telemetry.
//   - demuxer: the shared media demuxer.
//   - cfg: the application configuration (storage layout, sample rate,
//     duration cap).
//
// Outputs:
//   - *ExtractAudio: a pointer to the newly instantiated command.
func NewExtractAudio(name string, demuxer *media.Demuxer, cfg *config.Config) *ExtractAudio {
	cmd := &ExtractAudio{
		BaseCommand: *cor.NewBaseCommand(name),
		demuxer:     demuxer,
		storage:     cfg.Storage,
		speech:      cfg.Speech,
		maxSecs:     cfg.Analysis.MaxAnalysisSeconds,
	}
	cmd.InputParamName = KeyMediaSource
	cmd.OutputParamName = KeyAudioTrack
	return cmd
}

// Execute extracts the bounded audio track from the probed source.
func (c *ExtractAudio) Execute(context cor.Context) {
	ctx, span := c.Tracer.Start(context.GetContext(), "extract_audio_execute")
	defer span.End()

	src := context.Get(c.GetInputParam()).(*model.MediaSource)

	track, err := c.demuxer.ExtractAudio(ctx, src, c.maxSecs,
		c.speech.SampleRateHertz, c.storage.UploadDir, c.storage.TempAudioPrefix)
	if err != nil {
		c.GetErrorCounter().Add(ctx, 1)
		if errors.Is(err, media.ErrNoAudio) {
			slog.InfoContext(ctx, "no audio track in video, skipping transcription", "path", src.Path)
			context.Add(KeyTranscript, model.TranscriptResult{
				Text:   speech.TextNoAudio,
				Status: model.StatusNoAudio,
			})
			return
		}
		slog.WarnContext(ctx, "audio extraction failed", "path", src.Path, "error", err)
		context.Add(KeyTranscript, model.TranscriptResult{
			Text:   "Audio analysis error: " + err.Error(),
			Status: model.StatusError,
		})
		return
	}

	context.AddTempFile(track.Path)
	slog.InfoContext(ctx, "extracted audio track",
		"path", track.Path, "effective_duration", track.EffectiveDuration)

	context.Add(c.GetOutputParam(), track)
	c.GetSuccessCounter().Add(ctx, 1)
}
