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

// Package model_test contains the test suite for the core data models: the
// report accumulators the pipeline increments per sampled frame and the
// terminal analysis report.
package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/interviewace/video-analysis/internal/core/model"
)

// TestNewAnalysisReport verifies the report shell: the identifier must be a
// stable hash of the source file name so re-analyzing the same upload
// produces the same id, and the emotions map must be ready to serialize
// even when no frame was ever classified.
func TestNewAnalysisReport(t *testing.T) {
	first := model.NewAnalysisReport("interview_1728615848664.webm")
	second := model.NewAnalysisReport("interview_1728615848664.webm")
	other := model.NewAnalysisReport("interview_1728615900000.webm")

	// Same file name, same identifier.
	assert.Equal(t, first.Id, second.Id)
	// Different file name, different identifier.
	assert.NotEqual(t, first.Id, other.Id)
	assert.Equal(t, "success", first.Status)
	assert.False(t, first.CreateDate.IsZero())
	assert.NotNil(t, first.Emotions)
	assert.Empty(t, first.Emotions)
}

func TestGazeAccumulatorCountsOnlyFaceFrames(t *testing.T) {
	acc := &model.GazeAccumulator{}

	acc.Observe(model.GazeFrameResult{FaceDetected: true, LookingAtCamera: true})
	acc.Observe(model.GazeFrameResult{FaceDetected: true, LookingAtCamera: false})
	acc.Observe(model.GazeFrameResult{FaceDetected: true, LookingAtCamera: true})
	// A frame with no detected face touches neither counter.
	acc.Observe(model.GazeFrameResult{FaceDetected: false, LookingAtCamera: false})

	assert.Equal(t, 3, acc.TotalFaceFrames)
	assert.Equal(t, 2, acc.FramesWithEyeContact)
	assert.Equal(t, 1, acc.LookedAwayEvents())
	assert.InDelta(t, 66.666, acc.Percentage(), 0.01)
}

// TestGazeAccumulatorEmpty pins the zero-face default: the percentage is
// defined as zero so the score fusion never divides by zero.
func TestGazeAccumulatorEmpty(t *testing.T) {
	acc := &model.GazeAccumulator{}

	assert.Equal(t, 0.0, acc.Percentage())
	assert.Equal(t, 0, acc.LookedAwayEvents())

	snapshot := acc.Snapshot()
	assert.Equal(t, 0.0, snapshot.Percentage)
	assert.Equal(t, 0, snapshot.TotalFaceFrames)
}

func TestGazeSnapshotRoundsPercentage(t *testing.T) {
	acc := &model.GazeAccumulator{TotalFaceFrames: 3, FramesWithEyeContact: 1}

	assert.Equal(t, 33.33, acc.Snapshot().Percentage)
}

func TestEmotionHistogramDominant(t *testing.T) {
	histogram := model.NewEmotionHistogram()
	histogram.Observe(model.EmotionObservation{Detected: true, Label: "happy"})
	histogram.Observe(model.EmotionObservation{Detected: true, Label: "happy"})
	histogram.Observe(model.EmotionObservation{Detected: true, Label: "neutral"})
	// Frames the classifier could not score are a no-op.
	histogram.Observe(model.EmotionObservation{Detected: false})
	histogram.Observe(model.EmotionObservation{Detected: true, Label: ""})

	summary := histogram.Dominant()
	assert.Equal(t, "happy", summary.DominantEmotion)
	assert.Equal(t, 66.67, summary.Confidence)

	counts := histogram.Counts()
	assert.Equal(t, 2, counts["happy"])
	assert.Equal(t, 1, counts["neutral"])

	// Counts returns a copy; mutating it must not touch the histogram.
	counts["happy"] = 99
	assert.Equal(t, 2, histogram.Counts()["happy"])
}

// TestEmotionHistogramTieBreak verifies that an exact tie resolves to the
// lexicographically smaller label, keeping the summary deterministic across
// runs regardless of map iteration order.
func TestEmotionHistogramTieBreak(t *testing.T) {
	histogram := model.NewEmotionHistogram()
	histogram.Observe(model.EmotionObservation{Detected: true, Label: "sad"})
	histogram.Observe(model.EmotionObservation{Detected: true, Label: "angry"})

	assert.Equal(t, "angry", histogram.Dominant().DominantEmotion)
	assert.Equal(t, 50.0, histogram.Dominant().Confidence)
}

func TestEmotionHistogramEmptyIsNeutral(t *testing.T) {
	summary := model.NewEmotionHistogram().Dominant()

	assert.Equal(t, model.NeutralEmotion, summary.DominantEmotion)
	assert.Equal(t, 0.0, summary.Confidence)
}

func TestTranscriptUsable(t *testing.T) {
	assert.True(t, model.TranscriptResult{Text: "hello", Status: model.StatusOK}.Usable())
	assert.False(t, model.TranscriptResult{Status: model.StatusNoAudio}.Usable())
	assert.False(t, model.TranscriptResult{Status: model.StatusUnclear}.Usable())
	assert.False(t, model.TranscriptResult{Status: model.StatusServiceUnavailable}.Usable())
	assert.False(t, model.TranscriptResult{Status: model.StatusError}.Usable())
}

func TestLandmarkFrameAt(t *testing.T) {
	frame := model.GetExampleCenteredFrame()

	point, ok := frame.At(model.NoseTipIndex)
	assert.True(t, ok)
	assert.Equal(t, 0.50, point.X)

	// Indices beyond the mesh are reported absent, not panicked on.
	_, ok = frame.At(model.MeshSize)
	assert.False(t, ok)
	_, ok = frame.At(-1)
	assert.False(t, ok)

	// A nil frame has no landmarks at all.
	var missing *model.LandmarkFrame
	_, ok = missing.At(model.NoseTipIndex)
	assert.False(t, ok)
}

func TestExampleFramesCarryFullMesh(t *testing.T) {
	assert.Len(t, model.GetExampleCenteredFrame().Points, model.MeshSize)
	assert.Len(t, model.GetExampleAvertedFrame().Points, model.MeshSize)

	// The iris clusters sit inside the mesh bounds.
	for _, index := range append(model.LeftIrisIndices, model.RightIrisIndices...) {
		_, ok := model.GetExampleCenteredFrame().At(index)
		assert.True(t, ok)
	}
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 33.33, model.Round2(100.0/3.0))
	assert.Equal(t, 77.5, model.Round1(77.5))
	assert.Equal(t, 66.7, model.Round1(200.0/3.0))
}
