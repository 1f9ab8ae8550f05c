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

package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/interviewace/video-analysis/internal/config"
	"github.com/interviewace/video-analysis/internal/core/model"
)

func newTestScoreFusion() *ScoreFusion {
	return NewScoreFusion(config.NewConfig().Analysis)
}

func fluencyWith(wpm, per100 float64) model.FluencyReport {
	return model.FluencyReport{
		Status:            model.StatusOK,
		SpeakingRateWPM:   wpm,
		FillerPer100Words: per100,
	}
}

func TestFuseReferenceScenario(t *testing.T) {
	// 150 WPM sits in the ideal band; 5 fillers per 100 words cost 25
	// points: fluency 75. Gaze 80% passes through as the eye contact score.
	scores := newTestScoreFusion().Fuse(
		model.GazeReport{Percentage: 80.0},
		fluencyWith(150.0, 5.0))

	assert.Equal(t, 80.0, scores.EyeContactScore)
	assert.Equal(t, 75.0, scores.FluencyScore)
	assert.Equal(t, 77.5, scores.OverallScore)
}

func TestFuseNoSpeechStillScoresEighty(t *testing.T) {
	// With no measured speech the filler penalty is zero and only the -20
	// rate step fires, leaving fluency at 80 rather than 0.
	scores := newTestScoreFusion().Fuse(
		model.GazeReport{},
		model.FluencyReport{Status: model.StatusNoAudio})

	assert.Equal(t, 80.0, scores.FluencyScore)
	assert.Equal(t, 0.0, scores.EyeContactScore)
	assert.Equal(t, 40.0, scores.OverallScore)
}

func TestFuseRateAdjustmentSteps(t *testing.T) {
	fusion := newTestScoreFusion()

	cases := []struct {
		name string
		wpm  float64
		want float64
	}{
		{"no speech", 0, 80.0},
		{"below band", 89.99, 85.0},
		{"band lower edge", 90.0, 100.0},
		{"inside band", 120.0, 100.0},
		{"band upper edge", 160.0, 100.0},
		{"above band", 160.01, 90.0},
	}
	for _, tc := range cases {
		scores := fusion.Fuse(model.GazeReport{}, fluencyWith(tc.wpm, 0))
		assert.Equal(t, tc.want, scores.FluencyScore, tc.name)
	}
}

func TestFuseFillerPenaltyCapped(t *testing.T) {
	// 20 fillers per 100 words would cost 100 points uncapped; the cap
	// holds the penalty at 50.
	scores := newTestScoreFusion().Fuse(model.GazeReport{}, fluencyWith(120.0, 20.0))
	assert.Equal(t, 50.0, scores.FluencyScore)
}

func TestFuseScoresStayBounded(t *testing.T) {
	// Worst case on both axes still bottoms out at 0, never below.
	scores := newTestScoreFusion().Fuse(
		model.GazeReport{Percentage: -5.0},
		fluencyWith(10.0, 50.0))

	assert.GreaterOrEqual(t, scores.FluencyScore, 0.0)
	assert.GreaterOrEqual(t, scores.EyeContactScore, 0.0)
	assert.GreaterOrEqual(t, scores.OverallScore, 0.0)
	assert.LessOrEqual(t, scores.OverallScore, 100.0)
}

func TestFuseOverallIsMean(t *testing.T) {
	scores := newTestScoreFusion().Fuse(
		model.GazeReport{Percentage: 100.0},
		fluencyWith(120.0, 0))

	assert.Equal(t, 100.0, scores.EyeContactScore)
	assert.Equal(t, 100.0, scores.FluencyScore)
	assert.Equal(t, 100.0, scores.OverallScore)
}

func TestFuseDeterministic(t *testing.T) {
	fusion := newTestScoreFusion()
	gaze := model.GazeReport{Percentage: 63.33}
	fluency := fluencyWith(101.7, 7.4)

	assert.Equal(t, fusion.Fuse(gaze, fluency), fusion.Fuse(gaze, fluency))
}
