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

// Package model defines the core data structures for the application.
// This file, `report.go`, contains the accumulators the pipeline increments
// while walking sampled frames, and the terminal `AnalysisReport` aggregate
// that is serialized to the API boundary. The report is written once at the
// end of a run and is immutable afterwards.
package model

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// FluencyReport is the boundary view of the audio pipeline: the transcript
// with its status tag plus the derived metrics. Invariant: FillerPer100Words
// equals 100 * FillerCount / WordCount when WordCount > 0, and 0 otherwise.
type FluencyReport struct {
	Transcript        string  `json:"transcript"`
	Status            string  `json:"status"`
	WordCount         int     `json:"word_count"`
	FillerCount       int     `json:"filler_count"`
	SpeakingRateWPM   float64 `json:"speaking_rate_wpm"`
	FillerPer100Words float64 `json:"filler_per_100_words"`
}

// GazeAccumulator counts eye-contact outcomes across the sampled frames of a
// single run. Both counters are monotonically incremented; a frame with no
// detected face touches neither.
type GazeAccumulator struct {
	TotalFaceFrames      int `json:"total_face_frames"`
	FramesWithEyeContact int `json:"frames_with_eye_contact"`
}

// Observe folds one classified frame into the accumulator.
func (g *GazeAccumulator) Observe(frame GazeFrameResult) {
	if !frame.FaceDetected {
		return
	}
	g.TotalFaceFrames++
	if frame.LookingAtCamera {
		g.FramesWithEyeContact++
	}
}

// Percentage returns the share of face-detected frames classified as looking
// at the camera, in [0,100]. Defined as 0 when no face was ever detected so
// the caller never divides by zero.
func (g *GazeAccumulator) Percentage() float64 {
	if g.TotalFaceFrames == 0 {
		return 0.0
	}
	return float64(g.FramesWithEyeContact) / float64(g.TotalFaceFrames) * 100.0
}

// LookedAwayEvents returns the number of face frames that failed the eye
// contact check. Never negative.
func (g *GazeAccumulator) LookedAwayEvents() int {
	if d := g.TotalFaceFrames - g.FramesWithEyeContact; d > 0 {
		return d
	}
	return 0
}

// GazeReport is the boundary view of the gaze accumulator.
type GazeReport struct {
	Percentage           float64 `json:"percentage"`
	LookedAwayEvents     int     `json:"looked_away_events"`
	TotalFaceFrames      int     `json:"total_face_frames"`
	FramesWithEyeContact int     `json:"frames_with_eye_contact"`
}

// Snapshot converts the accumulator into its immutable report form, with the
// percentage rounded to two decimals.
func (g *GazeAccumulator) Snapshot() GazeReport {
	return GazeReport{
		Percentage:           Round2(g.Percentage()),
		LookedAwayEvents:     g.LookedAwayEvents(),
		TotalFaceFrames:      g.TotalFaceFrames,
		FramesWithEyeContact: g.FramesWithEyeContact,
	}
}

// NeutralEmotion is the sentinel dominant label reported when zero frames
// were successfully classified.
const NeutralEmotion = "neutral"

// EmotionHistogram accumulates per-frame emotion labels into occurrence
// counts over the sampled frames of one run.
type EmotionHistogram struct {
	counts map[string]int
}

// NewEmotionHistogram creates an empty histogram ready to accumulate labels.
func NewEmotionHistogram() *EmotionHistogram {
	return &EmotionHistogram{counts: make(map[string]int)}
}

// Observe folds one classified frame into the histogram. Frames where the
// classifier produced nothing are a no-op.
func (h *EmotionHistogram) Observe(obs EmotionObservation) {
	if !obs.Detected || obs.Label == "" {
		return
	}
	h.counts[obs.Label]++
}

// Counts returns a copy of the label-to-count mapping for serialization.
func (h *EmotionHistogram) Counts() map[string]int {
	out := make(map[string]int, len(h.counts))
	for label, count := range h.counts {
		out[label] = count
	}
	return out
}

// Dominant returns the most frequent label and its share (0-100) of all
// successfully classified frames. An empty histogram yields the neutral
// sentinel with 0 confidence. Ties break on the lexicographically smaller
// label so the summary stays deterministic.
func (h *EmotionHistogram) Dominant() EmotionSummary {
	if len(h.counts) == 0 {
		return EmotionSummary{DominantEmotion: NeutralEmotion, Confidence: 0.0}
	}
	total := 0
	best := ""
	for label, count := range h.counts {
		total += count
		if best == "" || count > h.counts[best] || (count == h.counts[best] && label < best) {
			best = label
		}
	}
	return EmotionSummary{
		DominantEmotion: best,
		Confidence:      Round2(float64(h.counts[best]) / float64(total) * 100.0),
	}
}

// EmotionSummary is the boundary view of the histogram's dominant label.
type EmotionSummary struct {
	DominantEmotion string  `json:"dominant_emotion"`
	Confidence      float64 `json:"confidence"`
}

// FusedScores holds the three bounded 0-100 scores produced by the score
// fusion engine.
type FusedScores struct {
	EyeContactScore float64 `json:"eye_contact_score"`
	FluencyScore    float64 `json:"fluency_score"`
	OverallScore    float64 `json:"overall_score"`
}

// AnalysisReport is the terminal aggregate of one analysis run, serialized
// as-is to the API boundary and to the on-disk analysis JSON.
type AnalysisReport struct {
	Id             string         `json:"id"`
	Status         string         `json:"status"`
	CreateDate     time.Time      `json:"created_at"`
	Fluency        FluencyReport  `json:"fluency"`
	Gaze           GazeReport     `json:"gaze"`
	Emotions       map[string]int `json:"emotions"`
	EmotionSummary EmotionSummary `json:"emotion_summary"`
	Scores         FusedScores    `json:"scores"`
}

// NewAnalysisReport creates a report shell for the given source video. The
// identifier is a UUIDv5 hash of the file name so re-analyzing the same
// upload produces a stable id, mirroring how uploads themselves are named.
func NewAnalysisReport(fileName string) *AnalysisReport {
	return &AnalysisReport{
		Id:         uuid.NewSHA1(uuid.NameSpaceURL, []byte(fileName)).String(),
		Status:     "success",
		CreateDate: time.Now(),
		Emotions:   make(map[string]int),
	}
}

// Round2 rounds to two decimal places, the precision used for every
// percentage and metric in the report payload.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to one decimal place, used for the fused scores.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
