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
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	gspeech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"

	"github.com/interviewace/video-analysis/internal/config"
	"github.com/interviewace/video-analysis/internal/core/model"
)

// GoogleEngine transcribes through the Google Cloud Speech-to-Text service.
// It is the network fallback behind the local whisper engine: anything that
// keeps the service from answering is reported as ErrServiceUnavailable so
// the caller can distinguish an unreachable backend from unintelligible
// audio.
//
// The API client is created lazily on first use and shared for the life of
// the process. A client that cannot be constructed (typically missing
// credentials) marks the engine permanently unavailable.
type GoogleEngine struct {
	enabled    bool
	language   string
	sampleRate int

	once      sync.Once
	client    *gspeech.Client
	clientErr error
}

// NewGoogleEngine is the constructor for the GoogleEngine.
//
// Inputs:
//   - cfg: the speech configuration carrying the enable flag, language,
//     and PCM sample rate of the extracted audio.
//
// Outputs:
//   - *GoogleEngine: a pointer to the newly instantiated engine.
func NewGoogleEngine(cfg config.Speech) *GoogleEngine {
	language := cfg.Language
	// The service wants a BCP-47 tag; widen a bare ISO 639-1 code.
	if language == "" || language == "en" {
		language = "en-US"
	}
	return &GoogleEngine{
		enabled:    cfg.GoogleEnabled,
		language:   language,
		sampleRate: cfg.SampleRateHertz,
	}
}

// Name implements Engine.
func (g *GoogleEngine) Name() string { return "google-speech" }

// Available implements Engine. A failed client construction latches the
// engine unavailable for the rest of the process.
func (g *GoogleEngine) Available() bool {
	return g.enabled && g.clientErr == nil
}

// syncRecognizeLimitSeconds is the longest track sent through the
// synchronous Recognize RPC. The service rejects synchronous requests over
// one minute of audio; anything longer goes through LongRunningRecognize.
// The margin below the documented limit absorbs container duration rounding.
const syncRecognizeLimitSeconds = 55.0

// needsLongRunningRecognize reports whether a track of the given duration
// must use the asynchronous RPC.
func needsLongRunningRecognize(durationSeconds float64) bool {
	return durationSeconds > syncRecognizeLimitSeconds
}

// Transcribe implements Engine by sending the whole WAV inline and joining
// the top alternative of each result. Short tracks use the synchronous
// Recognize call; tracks past the sync limit use LongRunningRecognize and
// wait for the operation, since the analysis cap (three minutes of mono
// 16 kHz PCM) stays well inside the inline-content limit of the
// asynchronous RPC.
func (g *GoogleEngine) Transcribe(ctx context.Context, track *model.AudioTrack) (string, error) {
	client, err := g.getClient(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	audio, err := os.ReadFile(track.Path)
	if err != nil {
		return "", fmt.Errorf("read audio track %s: %w", track.Path, err)
	}

	recognitionConfig := &speechpb.RecognitionConfig{
		Encoding:        speechpb.RecognitionConfig_LINEAR16,
		SampleRateHertz: int32(g.sampleRate),
		LanguageCode:    g.language,
	}
	recognitionAudio := &speechpb.RecognitionAudio{
		AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
	}

	var results []*speechpb.SpeechRecognitionResult
	if needsLongRunningRecognize(track.EffectiveDuration) {
		op, err := client.LongRunningRecognize(ctx, &speechpb.LongRunningRecognizeRequest{
			Config: recognitionConfig,
			Audio:  recognitionAudio,
		})
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
		}
		resp, err := op.Wait(ctx)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
		}
		results = resp.GetResults()
	} else {
		resp, err := client.Recognize(ctx, &speechpb.RecognizeRequest{
			Config: recognitionConfig,
			Audio:  recognitionAudio,
		})
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
		}
		results = resp.GetResults()
	}

	var parts []string
	for _, result := range results {
		alts := result.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		if transcript := strings.TrimSpace(alts[0].GetTranscript()); transcript != "" {
			parts = append(parts, transcript)
		}
	}
	if len(parts) == 0 {
		return "", ErrUnintelligible
	}
	return strings.Join(parts, " "), nil
}

// getClient builds the shared API client on first use.
func (g *GoogleEngine) getClient(ctx context.Context) (*gspeech.Client, error) {
	g.once.Do(func() {
		g.client, g.clientErr = gspeech.NewClient(ctx)
		if g.clientErr != nil {
			slog.Warn("google speech client unavailable", "error", g.clientErr)
		}
	})
	return g.client, g.clientErr
}

var _ Engine = (*GoogleEngine)(nil)
