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

func newTestGazeClassifier() *GazeClassifier {
	return NewGazeClassifier(config.NewConfig().Analysis)
}

func detected(frame *model.LandmarkFrame) model.LandmarkObservation {
	return model.LandmarkObservation{Detected: true, Frame: frame}
}

func TestGazeCenteredFrameLooksAtCamera(t *testing.T) {
	result := newTestGazeClassifier().Classify(detected(model.GetExampleCenteredFrame()))

	assert.True(t, result.FaceDetected)
	assert.True(t, result.LookingAtCamera)
}

func TestGazeAvertedFrameRejected(t *testing.T) {
	result := newTestGazeClassifier().Classify(detected(model.GetExampleAvertedFrame()))

	assert.True(t, result.FaceDetected)
	assert.False(t, result.LookingAtCamera)
}

func TestGazeNoFace(t *testing.T) {
	result := newTestGazeClassifier().Classify(model.LandmarkObservation{})

	assert.False(t, result.FaceDetected)
	assert.False(t, result.LookingAtCamera)
}

func TestGazeOneCenteredEyeSuffices(t *testing.T) {
	// Left eye centered, right iris pushed to the outer corner.
	frame := model.GetExampleCenteredFrame()
	for _, i := range model.RightIrisIndices {
		frame.Points[i] = model.Point2D{X: 0.645, Y: 0.45}
	}

	result := newTestGazeClassifier().Classify(detected(frame))
	assert.True(t, result.LookingAtCamera)
}

func TestGazeMissingEyeDegradesGracefully(t *testing.T) {
	// Truncate the mesh below the right-iris cluster: the right eye drops
	// out of the decision and the centered left eye carries the frame.
	frame := model.GetExampleCenteredFrame()
	frame.Points = frame.Points[:model.RightIrisIndices[0]]

	result := newTestGazeClassifier().Classify(detected(frame))
	assert.True(t, result.FaceDetected)
	assert.True(t, result.LookingAtCamera)
}

func TestGazeMissingHeadLandmarksRejectsFrame(t *testing.T) {
	// A mesh too short for the nose tip keeps its face-detected standing
	// but can never be credited with eye contact.
	frame := &model.LandmarkFrame{Points: []model.Point2D{{X: 0.5, Y: 0.5}}}

	result := newTestGazeClassifier().Classify(detected(frame))
	assert.True(t, result.FaceDetected)
	assert.False(t, result.LookingAtCamera)
}

func TestGazeTurnedHeadFailsSymmetry(t *testing.T) {
	// Irises centered but the nose pushed far off-axis: the symmetry check
	// alone must reject the frame.
	frame := model.GetExampleCenteredFrame()
	frame.Points[model.NoseTipIndex] = model.Point2D{X: 0.62, Y: 0.55}

	result := newTestGazeClassifier().Classify(detected(frame))
	assert.True(t, result.FaceDetected)
	assert.False(t, result.LookingAtCamera)
}

func TestNormalizedIrisPositionDirectionAgnostic(t *testing.T) {
	// The same physical centering normalizes identically whichever way the
	// eye axis runs in image coordinates.
	assert.InDelta(t, 0.5, NormalizedIrisPosition(0.35, 0.45, 0.40), 1e-9)
	assert.InDelta(t, 0.5, NormalizedIrisPosition(0.65, 0.55, 0.60), 1e-9)

	// 0 at the outer corner, 1 at the inner corner.
	assert.InDelta(t, 0.0, NormalizedIrisPosition(0.35, 0.45, 0.35), 1e-9)
	assert.InDelta(t, 1.0, NormalizedIrisPosition(0.65, 0.55, 0.55), 1e-9)
}

func TestNormalizedIrisPositionCollapsedAxis(t *testing.T) {
	assert.Equal(t, 0.5, NormalizedIrisPosition(0.4, 0.4, 0.9))
}

func TestGazeDeterministic(t *testing.T) {
	classifier := newTestGazeClassifier()
	obs := detected(model.GetExampleCenteredFrame())

	assert.Equal(t, classifier.Classify(obs), classifier.Classify(obs))
}
