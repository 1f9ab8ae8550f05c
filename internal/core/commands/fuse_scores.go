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

// FuseScores combines the gaze and fluency reports into the bounded
// interview scores. Either leg may be missing when its stage degraded; the
// zero value of the missing report is exactly the degraded default the
// scoring model expects, so the command tolerates absence instead of
// requiring both inputs.
type FuseScores struct {
	cor.BaseCommand
	fusion *analysis.ScoreFusion
}

// NewFuseScores is the constructor for the FuseScores command.
//
// Inputs:
//   - name: the command name for logging and telemetry.
//   - fusion: the score fusion engine.
//
// Outputs:
//   - *FuseScores: a pointer to the newly instantiated command.
func NewFuseScores(name string, fusion *analysis.ScoreFusion) *FuseScores {
	cmd := &FuseScores{
		BaseCommand: *cor.NewBaseCommand(name),
		fusion:      fusion,
	}
	cmd.InputParamName = KeyFluency
	cmd.OutputParamName = KeyScores
	return cmd
}

// IsExecutable loosens the default precondition: scores are computed from
// whatever legs produced output, so only a valid Go context is required.
func (c *FuseScores) IsExecutable(context cor.Context) bool {
	return context != nil && context.GetContext() != nil
}

// Execute fuses both report legs into the final scores.
func (c *FuseScores) Execute(context cor.Context) {
	ctx, span := c.Tracer.Start(context.GetContext(), "fuse_scores_execute")
	defer span.End()

	fluency, _ := context.Get(KeyFluency).(model.FluencyReport)
	gaze, _ := context.Get(KeyGaze).(model.GazeReport)

	scores := c.fusion.Fuse(gaze, fluency)
	slog.InfoContext(ctx, "fused interview scores",
		"eye_contact", scores.EyeContactScore,
		"fluency", scores.FluencyScore,
		"overall", scores.OverallScore)

	context.Add(c.GetOutputParam(), scores)
	c.GetSuccessCounter().Add(ctx, 1)
}
