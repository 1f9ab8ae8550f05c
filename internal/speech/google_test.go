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

package speech

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/interviewace/video-analysis/internal/config"
)

// TestRecognizeRoutingByDuration pins the RPC selection: the synchronous
// Recognize call rejects audio over one minute, so any track past the sync
// limit must go through the long-running operation instead of surfacing a
// healthy service as unavailable.
func TestRecognizeRoutingByDuration(t *testing.T) {
	assert.False(t, needsLongRunningRecognize(10.0))
	assert.False(t, needsLongRunningRecognize(syncRecognizeLimitSeconds))
	assert.True(t, needsLongRunningRecognize(syncRecognizeLimitSeconds+0.01))
	assert.True(t, needsLongRunningRecognize(60.0))
	// A full-length interview at the default analysis cap routes async.
	assert.True(t, needsLongRunningRecognize(config.NewConfig().Analysis.MaxAnalysisSeconds))
}

// TestLongTrackStaysInsideInlinePayloadLimit verifies that the duration cap
// keeps inline audio content within what LongRunningRecognize accepts
// (10 MB), so the async path never needs a storage URI.
func TestLongTrackStaysInsideInlinePayloadLimit(t *testing.T) {
	cfg := config.NewConfig()

	bytesPerSecond := cfg.Speech.SampleRateHertz * 2 // 16-bit mono PCM
	maxPayload := float64(bytesPerSecond) * cfg.Analysis.MaxAnalysisSeconds

	assert.Less(t, maxPayload, 10.0*1024*1024)
}

func TestNewGoogleEngineWidensLanguageTag(t *testing.T) {
	assert.Equal(t, "en-US", NewGoogleEngine(config.Speech{Language: "en"}).language)
	assert.Equal(t, "en-US", NewGoogleEngine(config.Speech{}).language)
	assert.Equal(t, "de-DE", NewGoogleEngine(config.Speech{Language: "de-DE"}).language)
}
