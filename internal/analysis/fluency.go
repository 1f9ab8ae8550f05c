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

// Package analysis holds the pure scoring core of the pipeline: transcript
// fluency metrics, per-frame gaze classification, and the fusion of both
// signals into the bounded interview scores. Everything in this package is
// deterministic and side-effect free; all inputs arrive as values and the
// only outputs are report structs.
package analysis

import (
	"strings"
	"unicode"

	"github.com/interviewace/video-analysis/internal/config"
	"github.com/interviewace/video-analysis/internal/core/model"
)

// FluencyAnalyzer computes word count, filler usage, and speaking rate from
// a tagged transcript.
//
// Logic Flow:
//  1. A transcript whose status is not ok short-circuits to zero-valued
//     metrics; the placeholder text and status pass through untouched.
//  2. The text is lowercased, punctuation is blanked, and the remainder is
//     split on whitespace to produce the token stream.
//  3. Single-token fillers are counted by exact token match; multi-word
//     filler phrases are counted by substring occurrence over the
//     lowercased (unstripped) text, so "you know" straddling a comma still
//     counts.
//  4. Speaking rate is words per minute over the effective audio duration,
//     defined as 0 when either the duration or the word count is zero.
type FluencyAnalyzer struct {
	singleFillers map[string]struct{}
	phraseFillers []string
}

// NewFluencyAnalyzer is the constructor for the FluencyAnalyzer.
//
// Inputs:
//   - cfg: the analysis configuration carrying both filler lexicons.
//
// Outputs:
//   - *FluencyAnalyzer: a pointer to the newly instantiated analyzer.
func NewFluencyAnalyzer(cfg config.Analysis) *FluencyAnalyzer {
	singles := make(map[string]struct{}, len(cfg.SingleWordFillers))
	for _, f := range cfg.SingleWordFillers {
		singles[strings.ToLower(f)] = struct{}{}
	}
	phrases := make([]string, len(cfg.MultiWordFillers))
	for i, p := range cfg.MultiWordFillers {
		phrases[i] = strings.ToLower(p)
	}
	return &FluencyAnalyzer{singleFillers: singles, phraseFillers: phrases}
}

// Analyze folds a transcript and its effective audio duration into the
// fluency report.
//
// Inputs:
//   - transcript: the tagged speech-to-text result.
//   - durationSeconds: seconds of audio the transcript covers.
//
// Outputs:
//   - model.FluencyReport: metrics plus the pass-through transcript text
//     and status. Identical inputs always produce identical outputs.
func (a *FluencyAnalyzer) Analyze(transcript model.TranscriptResult, durationSeconds float64) model.FluencyReport {
	report := model.FluencyReport{
		Transcript: transcript.Text,
		Status:     transcript.Status,
	}
	if !transcript.Usable() {
		return report
	}

	lowered := strings.ToLower(transcript.Text)
	tokens := Tokenize(lowered)
	report.WordCount = len(tokens)

	for _, token := range tokens {
		if _, isFiller := a.singleFillers[token]; isFiller {
			report.FillerCount++
		}
	}
	for _, phrase := range a.phraseFillers {
		report.FillerCount += strings.Count(lowered, phrase)
	}

	if durationSeconds > 0 && report.WordCount > 0 {
		report.SpeakingRateWPM = model.Round2(float64(report.WordCount) / durationSeconds * 60.0)
	}
	if report.WordCount > 0 {
		report.FillerPer100Words = model.Round2(float64(report.FillerCount) / float64(report.WordCount) * 100.0)
	}
	return report
}

// Tokenize blanks every non-word rune and splits the result on whitespace.
// Digits and underscores count as word runes, matching the tokenization the
// filler lexicons were tuned against.
func Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return ' '
	}, text)
	return strings.Fields(cleaned)
}
