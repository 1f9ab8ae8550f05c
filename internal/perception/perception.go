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

// Package perception talks to the face-perception model sidecars. The face
// landmark model and the emotion classifier run as separate HTTP services;
// this package posts sampled JPEG frames to them and maps the JSON replies
// onto the pipeline's observation types.
//
// Failure handling follows two distinct tracks. A frame the model cannot
// score (bad JPEG, a non-2xx reply) is a per-frame skip: the caller logs it
// and moves to the next frame. A sidecar that cannot be reached at all is
// latched unavailable for the rest of the process; from then on the whole
// concern is skipped without re-dialing per frame, and the report carries
// the concern's zero-valued defaults.
package perception

import (
	"context"
	"errors"

	"github.com/interviewace/video-analysis/internal/core/model"
)

// ErrUnavailable is returned once a sidecar has been latched unreachable.
// Callers treat it as "stop sending frames to this model".
var ErrUnavailable = errors.New("perception: model sidecar unavailable")

// LandmarkDetector locates face mesh landmarks in a single frame.
type LandmarkDetector interface {
	// Detect returns the landmark observation for one JPEG frame. A frame
	// with no face is a successful observation with Detected false, not an
	// error.
	Detect(ctx context.Context, jpeg []byte) (model.LandmarkObservation, error)

	// Available reports whether the model can still be reached. Once false
	// it stays false for the life of the process.
	Available() bool
}

// EmotionClassifier labels the dominant facial emotion in a single frame.
type EmotionClassifier interface {
	// Classify returns the emotion observation for one JPEG frame. A frame
	// with no face is a successful observation with Detected false.
	Classify(ctx context.Context, jpeg []byte) (model.EmotionObservation, error)

	// Available reports whether the model can still be reached. Once false
	// it stays false for the life of the process.
	Available() bool
}
