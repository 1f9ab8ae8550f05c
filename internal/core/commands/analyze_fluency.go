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
	"log/slog"

	"github.com/interviewace/video-analysis/internal/analysis"
	"github.com/interviewace/video-analysis/internal/core/cor"
	"github.com/interviewace/video-analysis/internal/core/model"
)

// AnalyzeFluency folds the tagged transcript into the fluency report. A
// transcript with a non-ok status passes through with zero-valued metrics;
// the analyzer handles that branch itself, so this command runs for every
// transcript the pipeline produced.
type AnalyzeFluency struct {
	cor.BaseCommand
	analyzer *analysis.FluencyAnalyzer
}

// NewAnalyzeFluency is the constructor for the AnalyzeFluency command.
//
// Inputs:
//   - name: the command name for logging and telemetry.
//   - analyzer: the fluency analyzer.
//
// Outputs:
//   - *AnalyzeFluency: a pointer to the newly instantiated command.
func NewAnalyzeFluency(name string, analyzer *analysis.FluencyAnalyzer) *AnalyzeFluency {
	cmd := &AnalyzeFluency{
		BaseCommand: *cor.NewBaseCommand(name),
		analyzer:    analyzer,
	}
	cmd.InputParamName = KeyTranscript
	cmd.OutputParamName = KeyFluency
	return cmd
}

// Execute computes the fluency metrics from the transcript and the
// effective duration of the extracted audio.
func (c *AnalyzeFluency) Execute(context cor.Context) {
	ctx, span := c.Tracer.Start(context.GetContext(), "analyze_fluency_execute")
	defer span.End()

	transcript := context.Get(c.GetInputParam()).(model.TranscriptResult)

	duration := 0.0
	if track, ok := context.Get(KeyAudioTrack).(*model.AudioTrack); ok {
		duration = track.EffectiveDuration
	}

	report := c.analyzer.Analyze(transcript, duration)
	slog.InfoContext(ctx, "fluency analysis complete",
		"status", report.Status,
		"word_count", report.WordCount,
		"filler_count", report.FillerCount,
		"wpm", report.SpeakingRateWPM)

	context.Add(c.GetOutputParam(), report)
	c.GetSuccessCounter().Add(ctx, 1)
}
