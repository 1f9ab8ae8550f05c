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
// This file provides canonical example objects. They give the test suite
// (and anyone reading the code) a concrete picture of what a detector
// observation looks like, without every test having to assemble a full
// face-mesh landmark set by hand.
package model

// Face-mesh landmark indices used by the gaze classifier. These follow the
// numbering of the landmark detector sidecar (MediaPipe FaceMesh with iris
// refinement).
const (
	NoseTipIndex       = 1
	LeftEyeOuterIndex  = 33
	LeftEyeInnerIndex  = 133
	RightEyeOuterIndex = 362
	RightEyeInnerIndex = 263

	// MeshSize is the full landmark count emitted per detected face,
	// including the two iris clusters.
	MeshSize = 478
)

// LeftIrisIndices and RightIrisIndices are the landmark indices of the two
// iris clusters; the gaze classifier uses their centroids.
var (
	LeftIrisIndices  = []int{468, 469, 470, 471}
	RightIrisIndices = []int{473, 474, 475, 476}
)

// NewLandmarkFrame builds a full-size landmark frame from a sparse set of
// meaningful points. Unspecified indices default to the origin; tests that
// need a *missing* landmark should build a frame shorter than the index
// instead.
func NewLandmarkFrame(points map[int]Point2D) *LandmarkFrame {
	frame := &LandmarkFrame{Points: make([]Point2D, MeshSize)}
	for index, p := range points {
		if index >= 0 && index < MeshSize {
			frame.Points[index] = p
		}
	}
	return frame
}

// GetExampleCenteredFrame returns a landmark frame for a subject facing the
// camera head-on with both irises centered in their eye axes. The gaze
// classifier should report this frame as looking at the camera.
func GetExampleCenteredFrame() *LandmarkFrame {
	points := map[int]Point2D{
		NoseTipIndex:       {X: 0.50, Y: 0.55},
		LeftEyeOuterIndex:  {X: 0.35, Y: 0.45},
		LeftEyeInnerIndex:  {X: 0.45, Y: 0.45},
		RightEyeOuterIndex: {X: 0.65, Y: 0.45},
		RightEyeInnerIndex: {X: 0.55, Y: 0.45},
	}
	for _, i := range LeftIrisIndices {
		points[i] = Point2D{X: 0.40, Y: 0.45}
	}
	for _, i := range RightIrisIndices {
		points[i] = Point2D{X: 0.60, Y: 0.45}
	}
	return NewLandmarkFrame(points)
}

// GetExampleAvertedFrame returns a landmark frame for a subject whose head
// is turned sharply to the side with both irises pushed toward the outer
// eye corners. The gaze classifier should reject this frame.
func GetExampleAvertedFrame() *LandmarkFrame {
	points := map[int]Point2D{
		NoseTipIndex:       {X: 0.62, Y: 0.55},
		LeftEyeOuterIndex:  {X: 0.35, Y: 0.45},
		LeftEyeInnerIndex:  {X: 0.45, Y: 0.45},
		RightEyeOuterIndex: {X: 0.65, Y: 0.45},
		RightEyeInnerIndex: {X: 0.55, Y: 0.45},
	}
	for _, i := range LeftIrisIndices {
		points[i] = Point2D{X: 0.355, Y: 0.45}
	}
	for _, i := range RightIrisIndices {
		points[i] = Point2D{X: 0.645, Y: 0.45}
	}
	return NewLandmarkFrame(points)
}

// GetExampleTranscript returns the transcript used across the fluency tests:
// exactly 100 words of which five are single-token fillers, which at a 40
// second effective duration works out to 150 words per minute.
func GetExampleTranscript() string {
	words := make([]string, 0, 100)
	for i := 0; i < 95; i++ {
		words = append(words, "answer")
	}
	for i := 0; i < 5; i++ {
		words = append(words, "um")
	}
	out := ""
	for i, w := range words {
		if i > 0 {
			out += " "
		}
		out += w
	}
	return out
}
