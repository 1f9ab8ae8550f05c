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

func newTestFluencyAnalyzer() *FluencyAnalyzer {
	return NewFluencyAnalyzer(config.NewConfig().Analysis)
}

func okTranscript(text string) model.TranscriptResult {
	return model.TranscriptResult{Text: text, Status: model.StatusOK}
}

func TestFluencyReferenceTranscript(t *testing.T) {
	report := newTestFluencyAnalyzer().Analyze(okTranscript(model.GetExampleTranscript()), 40.0)

	assert.Equal(t, model.StatusOK, report.Status)
	assert.Equal(t, 100, report.WordCount)
	assert.Equal(t, 5, report.FillerCount)
	assert.Equal(t, 150.0, report.SpeakingRateWPM)
	assert.Equal(t, 5.0, report.FillerPer100Words)
}

func TestFluencyCountsPhraseFillers(t *testing.T) {
	report := newTestFluencyAnalyzer().Analyze(
		okTranscript("you know the answer I mean the real answer you know"), 10.0)

	// "you know" twice and "i mean" once, plus no single-token fillers.
	assert.Equal(t, 3, report.FillerCount)
	assert.Equal(t, 11, report.WordCount)
}

func TestFluencyPhraseAcrossPunctuation(t *testing.T) {
	// Phrase counting runs over the raw lowercased text, so punctuation
	// between counted tokens does not hide a phrase that has none inside it.
	report := newTestFluencyAnalyzer().Analyze(okTranscript("Well, you know."), 5.0)

	// "well" (single) + "you know" (phrase).
	assert.Equal(t, 2, report.FillerCount)
	assert.Equal(t, 3, report.WordCount)
}

func TestFluencyPunctuationStrippedFromTokens(t *testing.T) {
	report := newTestFluencyAnalyzer().Analyze(okTranscript("Um, um! UM?"), 6.0)

	assert.Equal(t, 3, report.WordCount)
	assert.Equal(t, 3, report.FillerCount)
	assert.Equal(t, 100.0, report.FillerPer100Words)
}

func TestFluencyNonOKStatusShortCircuits(t *testing.T) {
	for _, status := range []string{
		model.StatusNoAudio,
		model.StatusUnclear,
		model.StatusServiceUnavailable,
		model.StatusError,
	} {
		report := newTestFluencyAnalyzer().Analyze(
			model.TranscriptResult{Text: "placeholder text", Status: status}, 60.0)

		assert.Equal(t, status, report.Status)
		assert.Zero(t, report.WordCount, status)
		assert.Zero(t, report.FillerCount, status)
		assert.Zero(t, report.SpeakingRateWPM, status)
		assert.Zero(t, report.FillerPer100Words, status)
	}
}

func TestFluencyZeroDurationGuard(t *testing.T) {
	report := newTestFluencyAnalyzer().Analyze(okTranscript("three words here"), 0)

	assert.Equal(t, 3, report.WordCount)
	assert.Zero(t, report.SpeakingRateWPM)
}

func TestFluencyEmptyTranscriptGuard(t *testing.T) {
	report := newTestFluencyAnalyzer().Analyze(okTranscript(""), 30.0)

	assert.Zero(t, report.WordCount)
	assert.Zero(t, report.SpeakingRateWPM)
	assert.Zero(t, report.FillerPer100Words)
}

func TestFluencyDeterministic(t *testing.T) {
	analyzer := newTestFluencyAnalyzer()
	in := okTranscript("so basically I was, um, kind of nervous you know")

	first := analyzer.Analyze(in, 12.5)
	second := analyzer.Analyze(in, 12.5)
	assert.Equal(t, first, second)
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize("hello, world! it's 2-part")
	assert.Equal(t, []string{"hello", "world", "it", "s", "2", "part"}, tokens)
}
