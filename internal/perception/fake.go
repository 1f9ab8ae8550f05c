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

package perception

import (
	"context"

	"github.com/interviewace/video-analysis/internal/core/model"
)

// FakeLandmarkDetector replays a scripted sequence of landmark
// observations. It exists so pipeline tests can run without the model
// sidecars; the sequence wraps around when exhausted.
type FakeLandmarkDetector struct {
	Observations []model.LandmarkObservation
	Err          error
	Unavailable  bool
	Calls        int
}

// Detect implements LandmarkDetector.
func (f *FakeLandmarkDetector) Detect(_ context.Context, _ []byte) (model.LandmarkObservation, error) {
	f.Calls++
	if f.Err != nil {
		return model.LandmarkObservation{}, f.Err
	}
	if len(f.Observations) == 0 {
		return model.LandmarkObservation{}, nil
	}
	return f.Observations[(f.Calls-1)%len(f.Observations)], nil
}

// Available implements LandmarkDetector.
func (f *FakeLandmarkDetector) Available() bool { return !f.Unavailable }

// FakeEmotionClassifier replays a scripted sequence of emotion
// observations, wrapping around when exhausted.
type FakeEmotionClassifier struct {
	Observations []model.EmotionObservation
	Err          error
	Unavailable  bool
	Calls        int
}

// Classify implements EmotionClassifier.
func (f *FakeEmotionClassifier) Classify(_ context.Context, _ []byte) (model.EmotionObservation, error) {
	f.Calls++
	if f.Err != nil {
		return model.EmotionObservation{}, f.Err
	}
	if len(f.Observations) == 0 {
		return model.EmotionObservation{}, nil
	}
	return f.Observations[(f.Calls-1)%len(f.Observations)], nil
}

// Available implements EmotionClassifier.
func (f *FakeEmotionClassifier) Available() bool { return !f.Unavailable }

var (
	_ LandmarkDetector  = (*FakeLandmarkDetector)(nil)
	_ EmotionClassifier = (*FakeEmotionClassifier)(nil)
)
