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

	"github.com/interviewace/video-analysis/internal/analysis"
	"github.com/interviewace/video-analysis/internal/config"
	"github.com/interviewace/video-analysis/internal/core/cor"
	"github.com/interviewace/video-analysis/internal/core/model"
	"github.com/interviewace/video-analysis/internal/media"
	"github.com/interviewace/video-analysis/internal/perception"
)

// SampleFrames drives the video leg of the pipeline: one forward pass over
// the sampled frames, feeding each frame to the landmark detector for gaze
// classification and to the emotion classifier for the emotion histogram.
//
// Logic Flow:
//  1. Walk the decoder once at the configured cadence.
//  2. Per frame, classify emotion and gaze independently. A frame either
//     model cannot score is skipped for that concern only.
//  3. A sidecar that reports itself unavailable is dropped for the rest of
//     the run; its concern ends up with zero-valued defaults.
//  4. Publish the gaze report snapshot and the emotion histogram. A decoder
//     failure publishes the zero-valued defaults rather than failing the
//     chain, so a video-less report still carries the audio leg's findings.
type SampleFrames struct {
	cor.BaseCommand
	demuxer   *media.Demuxer
	landmarks perception.LandmarkDetector
	emotions  perception.EmotionClassifier
	gaze      *analysis.GazeClassifier
	cadence   float64
	maxSecs   float64
}

// NewSampleFrames is the constructor for the SampleFrames command.
//
// Inputs:
//   - name: the command name for logging and telemetry.
//   - demuxer: the shared media demuxer.
//   - landmarks: the face landmark detector.
//   - emotions: the emotion classifier.
//   - gaze: the per-frame gaze classifier.
//   - cfg: the analysis configuration (cadence and duration cap).
//
// Outputs:
//   - *SampleFrames: a pointer to the newly instantiated command.
func NewSampleFrames(
	name string,
	demuxer *media.Demuxer,
	landmarks perception.LandmarkDetector,
	emotions perception.EmotionClassifier,
	gaze *analysis.GazeClassifier,
	cfg config.Analysis,
) *SampleFrames {
	cmd := &SampleFrames{
		BaseCommand: *cor.NewBaseCommand(name),
		demuxer:     demuxer,
		landmarks:   landmarks,
		emotions:    emotions,
		gaze:        gaze,
		cadence:     cfg.FrameSampleEverySec,
		maxSecs:     cfg.MaxAnalysisSeconds,
	}
	cmd.InputParamName = KeyMediaSource
	cmd.OutputParamName = KeyGaze
	return cmd
}

// Execute samples the video stream and accumulates both frame-level
// signals.
func (c *SampleFrames) Execute(context cor.Context) {
	ctx, span := c.Tracer.Start(context.GetContext(), "sample_frames_execute")
	defer span.End()

	src := context.Get(c.GetInputParam()).(*model.MediaSource)

	accumulator := &model.GazeAccumulator{}
	histogram := model.NewEmotionHistogram()
	useLandmarks := c.landmarks.Available()
	useEmotions := c.emotions.Available()
	framesSeen := 0

	err := c.demuxer.SampleFrames(ctx, src, c.cadence, c.maxSecs, func(frame media.SampledFrame) {
		framesSeen++

		if useEmotions {
			obs, err := c.emotions.Classify(ctx, frame.JPEG)
			switch {
			case errors.Is(err, perception.ErrUnavailable):
				useEmotions = false
			case err != nil:
				slog.DebugContext(ctx, "emotion classification skipped frame",
					"frame", frame.Index, "error", err)
			default:
				histogram.Observe(obs)
			}
		}

		if useLandmarks {
			obs, err := c.landmarks.Detect(ctx, frame.JPEG)
			switch {
			case errors.Is(err, perception.ErrUnavailable):
				useLandmarks = false
			case err != nil:
				slog.DebugContext(ctx, "landmark detection skipped frame",
					"frame", frame.Index, "error", err)
			default:
				accumulator.Observe(c.gaze.Classify(obs))
			}
		}
	})
	if err != nil {
		// The audio leg's findings still make a useful report; publish
		// the zero-valued video defaults and move on.
		c.GetErrorCounter().Add(ctx, 1)
		slog.WarnContext(ctx, "frame sampling failed, reporting video defaults",
			"path", src.Path, "error", err)
	} else {
		c.GetSuccessCounter().Add(ctx, 1)
	}

	gazeReport := accumulator.Snapshot()
	slog.InfoContext(ctx, "frame analysis complete",
		"frames_sampled", framesSeen,
		"face_frames", gazeReport.TotalFaceFrames,
		"eye_contact_frames", gazeReport.FramesWithEyeContact,
		"gaze_percentage", gazeReport.Percentage)

	context.Add(c.GetOutputParam(), gazeReport)
	context.Add(KeyEmotions, histogram)
}
