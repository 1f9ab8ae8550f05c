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
	"path/filepath"

	"github.com/interviewace/video-analysis/internal/core/cor"
	"github.com/interviewace/video-analysis/internal/core/model"
)

// AssembleReport gathers everything the previous stages published into the
// terminal AnalysisReport. Missing legs contribute their zero-valued
// defaults, so an assembled report always has every section populated.
type AssembleReport struct {
	cor.BaseCommand
}

// NewAssembleReport is the constructor for the AssembleReport command.
//
// Inputs:
//   - name: the command name for logging and telemetry.
//
// Outputs:
//   - *AssembleReport: a pointer to the newly instantiated command.
func NewAssembleReport(name string) *AssembleReport {
	cmd := &AssembleReport{BaseCommand: *cor.NewBaseCommand(name)}
	cmd.InputParamName = KeyVideoPath
	cmd.OutputParamName = KeyReport
	return cmd
}

// Execute assembles the final report from the context.
func (c *AssembleReport) Execute(context cor.Context) {
	ctx, span := c.Tracer.Start(context.GetContext(), "assemble_report_execute")
	defer span.End()

	videoPath := context.Get(c.GetInputParam()).(string)
	report := model.NewAnalysisReport(filepath.Base(videoPath))

	if fluency, ok := context.Get(KeyFluency).(model.FluencyReport); ok {
		report.Fluency = fluency
	}
	if gaze, ok := context.Get(KeyGaze).(model.GazeReport); ok {
		report.Gaze = gaze
	}
	if histogram, ok := context.Get(KeyEmotions).(*model.EmotionHistogram); ok {
		report.Emotions = histogram.Counts()
		report.EmotionSummary = histogram.Dominant()
	} else {
		report.EmotionSummary = model.EmotionSummary{DominantEmotion: model.NeutralEmotion}
	}
	if scores, ok := context.Get(KeyScores).(model.FusedScores); ok {
		report.Scores = scores
	}

	context.Add(c.GetOutputParam(), report)
	c.GetSuccessCounter().Add(ctx, 1)
}
