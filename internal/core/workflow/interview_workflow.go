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

// Package workflow assembles the pipeline commands into executable chains.
// A workflow owns the chain topology; the commands own the work.
package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/interviewace/video-analysis/internal/analysis"
	"github.com/interviewace/video-analysis/internal/config"
	"github.com/interviewace/video-analysis/internal/core/commands"
	"github.com/interviewace/video-analysis/internal/core/cor"
	"github.com/interviewace/video-analysis/internal/core/model"
	"github.com/interviewace/video-analysis/internal/media"
	"github.com/interviewace/video-analysis/internal/perception"
	"github.com/interviewace/video-analysis/internal/speech"
)

// InterviewAnalyzer runs the full interview analysis pipeline over one
// uploaded video: probe, audio extraction, transcription, fluency metrics,
// frame sampling with gaze and emotion classification, score fusion, and
// report persistence.
//
// The chain is assembled once and reused; all per-run state lives in the
// run context, so concurrent analyses are independent. One video flows
// through sequentially, which bounds the process to a single decoder and a
// single transcription at a time per request.
type InterviewAnalyzer struct {
	chain cor.Chain
}

// NewInterviewAnalyzer is the constructor for the InterviewAnalyzer.
//
// Inputs:
//   - cfg: the application configuration.
//   - demuxer: the shared media demuxer.
//   - stt: the speech-to-text fallback adapter.
//   - landmarks: the face landmark detector.
//   - emotions: the emotion classifier.
//
// Outputs:
//   - *InterviewAnalyzer: a pointer to the newly instantiated workflow.
func NewInterviewAnalyzer(
	cfg *config.Config,
	demuxer *media.Demuxer,
	stt *speech.Adapter,
	landmarks perception.LandmarkDetector,
	emotions perception.EmotionClassifier,
) *InterviewAnalyzer {
	chain := cor.NewBaseChain("interview_analysis")
	chain.AddCommand(commands.NewProbeSource("probe_source", demuxer))
	chain.AddCommand(commands.NewExtractAudio("extract_audio", demuxer, cfg))
	chain.AddCommand(commands.NewTranscribe("transcribe", stt))
	chain.AddCommand(commands.NewAnalyzeFluency("analyze_fluency", analysis.NewFluencyAnalyzer(cfg.Analysis)))
	chain.AddCommand(commands.NewSampleFrames("sample_frames", demuxer, landmarks, emotions,
		analysis.NewGazeClassifier(cfg.Analysis), cfg.Analysis))
	chain.AddCommand(commands.NewFuseScores("fuse_scores", analysis.NewScoreFusion(cfg.Analysis)))
	chain.AddCommand(commands.NewAssembleReport("assemble_report"))
	chain.AddCommand(commands.NewWriteReport("write_report", cfg.Storage))

	return &InterviewAnalyzer{chain: chain}
}

// Analyze runs the pipeline for one video and returns the assembled
// report. Temporary files created during the run are removed on every exit
// path. An error is returned only for failures the pipeline cannot degrade
// around (an unreadable container, an unwritable report); everything else
// surfaces inside the report itself.
//
// Inputs:
//   - ctx: the Go context bounding the whole run.
//   - videoPath: local path of the uploaded video.
//
// Outputs:
//   - *model.AnalysisReport: the completed report.
//   - error: joined chain errors when the run could not produce one.
func (w *InterviewAnalyzer) Analyze(ctx context.Context, videoPath string) (*model.AnalysisReport, error) {
	runCtx := cor.NewBaseContext()
	defer runCtx.Close()

	runCtx.SetContext(ctx)
	runCtx.Add(commands.KeyVideoPath, videoPath)

	w.chain.Execute(runCtx)

	if runCtx.HasErrors() {
		errs := make([]error, 0, len(runCtx.GetErrors()))
		for name, err := range runCtx.GetErrors() {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
		return nil, errors.Join(errs...)
	}

	report, ok := runCtx.Get(commands.KeyReport).(*model.AnalysisReport)
	if !ok {
		return nil, fmt.Errorf("pipeline finished without a report for %s", videoPath)
	}
	return report, nil
}
