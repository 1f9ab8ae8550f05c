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

// Package speech converts an extracted audio track into a transcript. Two
// engines are supported — a local whisper.cpp binary as the primary and the
// Google Cloud Speech service as the network-dependent fallback — behind a
// single Engine interface, with an Adapter that walks the ordered engine
// list until one produces text. The adapter never raises: every failure
// mode is folded into the transcript's status tag.
package speech

import (
	"context"
	"errors"

	"github.com/interviewace/video-analysis/internal/core/model"
)

// Sentinel errors engines use to classify failures. The adapter maps them
// onto transcript status tags; anything else becomes a generic error status.
var (
	// ErrUnintelligible means audio was processed but contained no
	// recognizable speech.
	ErrUnintelligible = errors.New("speech: audio unclear or no speech detected")
	// ErrServiceUnavailable means the engine's backing service could not
	// be reached.
	ErrServiceUnavailable = errors.New("speech: recognition service unavailable")
)

// Engine is a single speech-to-text backend.
type Engine interface {
	// Name returns the engine identifier used in logs.
	Name() string

	// Available reports whether the engine can serve requests. For the
	// local engine this is determined once at process start and latched:
	// an engine known to be absent is never retried per request.
	Available() bool

	// Transcribe converts the audio track to plain text. An empty string
	// with a nil error means the engine ran but heard nothing; the
	// adapter treats that as a signal to try the next engine.
	Transcribe(ctx context.Context, track *model.AudioTrack) (string, error)
}
