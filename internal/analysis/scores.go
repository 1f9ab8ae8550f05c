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
	"math"

	"github.com/interviewace/video-analysis/internal/config"
	"github.com/interviewace/video-analysis/internal/core/model"
)

// maxFillerPenalty caps how much filler usage can subtract from the
// fluency score.
const maxFillerPenalty = 50.0

// ScoreFusion converts the raw gaze and fluency metrics into the three
// bounded 0-100 scores of the report.
//
// Logic Flow:
//  1. Eye contact score is the gaze percentage clamped to [0,100].
//  2. Fluency starts at 100 minus a filler penalty of five points per
//     filler-per-100-words, capped at maxFillerPenalty.
//  3. A speaking-rate adjustment is applied as a step function: -20 for no
//     measured speech, -15 below the ideal band, -10 above it, 0 inside.
//     Note that an empty transcript therefore still lands at a fluency
//     score of 80, not 0; the rate step is the only signal that fires.
//  4. The result is clamped to [0,100] and the overall score is the
//     arithmetic mean of the two, all rounded to one decimal.
type ScoreFusion struct {
	minIdealWPM float64
	maxIdealWPM float64
}

// NewScoreFusion is the constructor for the ScoreFusion engine.
//
// Inputs:
//   - cfg: the analysis configuration carrying the ideal speaking-rate
//     band.
//
// Outputs:
//   - *ScoreFusion: a pointer to the newly instantiated engine.
func NewScoreFusion(cfg config.Analysis) *ScoreFusion {
	return &ScoreFusion{minIdealWPM: cfg.MinIdealWPM, maxIdealWPM: cfg.MaxIdealWPM}
}

// Fuse combines the two report legs into the final scores.
//
// Inputs:
//   - gaze: the gaze report, supplying the eye-contact percentage.
//   - fluency: the fluency report, supplying filler density and speaking
//     rate.
//
// Outputs:
//   - model.FusedScores: the three bounded scores, each rounded to one
//     decimal place.
func (s *ScoreFusion) Fuse(gaze model.GazeReport, fluency model.FluencyReport) model.FusedScores {
	eyeContact := clamp(gaze.Percentage, 0, 100)

	fillerPenalty := math.Min(maxFillerPenalty, fluency.FillerPer100Words/2.0*10.0)
	base := 100.0 - fillerPenalty

	wpm := fluency.SpeakingRateWPM
	var rateAdjust float64
	switch {
	case wpm <= 0:
		rateAdjust = -20.0
	case wpm < s.minIdealWPM:
		rateAdjust = -15.0
	case wpm > s.maxIdealWPM:
		rateAdjust = -10.0
	default:
		rateAdjust = 0.0
	}

	fluencyScore := clamp(base+rateAdjust, 0, 100)

	return model.FusedScores{
		EyeContactScore: model.Round1(eyeContact),
		FluencyScore:    model.Round1(fluencyScore),
		OverallScore:    model.Round1((eyeContact + fluencyScore) / 2.0),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
