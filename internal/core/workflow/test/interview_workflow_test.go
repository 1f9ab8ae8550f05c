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

package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interviewace/video-analysis/internal/core/workflow"
	"github.com/interviewace/video-analysis/internal/media"
	"github.com/interviewace/video-analysis/internal/perception"
	"github.com/interviewace/video-analysis/internal/speech"
)

// newAnalyzer assembles the full pipeline over the test configuration, with
// scripted perception fakes instead of live sidecars. The demuxer points at
// binaries that do not exist, so any run reaching the decoder fails at the
// probe stage; these tests exercise the chain topology and its error
// surface, not ffmpeg itself.
func newAnalyzer(t *testing.T) *workflow.InterviewAnalyzer {
	t.Helper()

	runCfg := *cfg
	runCfg.Storage.UploadDir = t.TempDir()
	runCfg.Media.FFmpegPath = "/nonexistent/ffmpeg"
	runCfg.Media.FFprobePath = "/nonexistent/ffprobe"

	return workflow.NewInterviewAnalyzer(
		&runCfg,
		media.NewDemuxer(runCfg.Media),
		speech.NewAdapter(),
		&perception.FakeLandmarkDetector{Unavailable: true},
		&perception.FakeEmotionClassifier{Unavailable: true},
	)
}

// TestAnalyzeUnreadableVideoFails verifies the one failure mode the
// pipeline must not degrade around: a container the probe cannot read
// yields an error and no report.
func TestAnalyzeUnreadableVideoFails(t *testing.T) {
	spanCtx, span := tracer.Start(ctx, "test-analyze-unreadable")
	defer span.End()

	analyzer := newAnalyzer(t)

	report, err := analyzer.Analyze(spanCtx, "/nonexistent/interview.webm")
	require.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "probe_source")

	logger.InfoContext(spanCtx, "analyze failed as expected", "error", err)
}

// TestAnalyzerIsReusable verifies that the chain is assembled once and that
// consecutive runs stay independent: a failed run leaves no state behind
// that would change the next run's outcome.
func TestAnalyzerIsReusable(t *testing.T) {
	analyzer := newAnalyzer(t)

	_, firstErr := analyzer.Analyze(ctx, "/nonexistent/a.webm")
	_, secondErr := analyzer.Analyze(ctx, "/nonexistent/b.webm")

	require.Error(t, firstErr)
	require.Error(t, secondErr)
}
