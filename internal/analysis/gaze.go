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
	"math"

	"github.com/interviewace/video-analysis/internal/config"
	"github.com/interviewace/video-analysis/internal/core/model"
)

// irisDenomEpsilon guards the normalized-position division: an eye whose
// corners collapse onto the same x coordinate reads as perfectly centered
// rather than dividing by zero.
const irisDenomEpsilon = 1e-5

// GazeClassifier decides, per sampled frame, whether the subject is looking
// at the camera. The decision combines two signals from the face mesh:
//
//  1. Iris centering. Per eye, the iris centroid's position is normalized
//     along the eye axis as (iris - outer) / (inner - outer), which reads 0
//     at the outer corner and 1 at the inner corner regardless of which
//     direction the axis runs in image coordinates. An eye is centered when
//     the normalized position falls inside the configured central band.
//  2. Head orientation. The Euclidean distances from the nose tip to the
//     two outer eye corners are near-symmetric when the head faces the
//     camera; the min/max ratio must exceed the configured threshold.
//
// The frame counts as looking at the camera when the head is facing and at
// least one measurable eye is centered. An eye whose landmarks are missing
// drops out of the decision instead of failing the frame; a frame with no
// measurable eye, or with the head-orientation landmarks missing, keeps its
// face-detected standing but is never credited with eye contact.
type GazeClassifier struct {
	centerMin   float64
	centerMax   float64
	facingRatio float64
}

// NewGazeClassifier is the constructor for the GazeClassifier.
//
// Inputs:
//   - cfg: the analysis configuration carrying the central iris band and
//     the head-facing symmetry threshold.
//
// Outputs:
//   - *GazeClassifier: a pointer to the newly instantiated classifier.
func NewGazeClassifier(cfg config.Analysis) *GazeClassifier {
	return &GazeClassifier{
		centerMin:   cfg.GazeCenterMin,
		centerMax:   cfg.GazeCenterMax,
		facingRatio: cfg.HeadFacingRatio,
	}
}

// Classify maps one landmark observation onto the frame's gaze verdict.
// The classification is pure: the same observation always yields the same
// verdict.
func (g *GazeClassifier) Classify(obs model.LandmarkObservation) model.GazeFrameResult {
	if !obs.Detected {
		return model.GazeFrameResult{}
	}
	result := model.GazeFrameResult{FaceDetected: true}

	if !g.headFacing(obs.Frame) {
		return result
	}

	leftCentered, leftOK := g.eyeCentered(obs.Frame,
		model.LeftEyeOuterIndex, model.LeftEyeInnerIndex, model.LeftIrisIndices)
	rightCentered, rightOK := g.eyeCentered(obs.Frame,
		model.RightEyeOuterIndex, model.RightEyeInnerIndex, model.RightIrisIndices)

	switch {
	case leftOK && leftCentered:
		result.LookingAtCamera = true
	case rightOK && rightCentered:
		result.LookingAtCamera = true
	}
	return result
}

// headFacing checks nose-to-eye symmetry. Missing landmarks fail the check.
func (g *GazeClassifier) headFacing(frame *model.LandmarkFrame) bool {
	nose, ok := frame.At(model.NoseTipIndex)
	if !ok {
		return false
	}
	leftOuter, ok := frame.At(model.LeftEyeOuterIndex)
	if !ok {
		return false
	}
	rightOuter, ok := frame.At(model.RightEyeOuterIndex)
	if !ok {
		return false
	}

	dLeft := distance(nose, leftOuter)
	dRight := distance(nose, rightOuter)
	// A degenerate mesh with the nose on both corners reads as symmetric.
	if math.Max(dLeft, dRight) <= 0 {
		return true
	}
	return math.Min(dLeft, dRight)/math.Max(dLeft, dRight) > g.facingRatio
}

// eyeCentered computes the normalized iris position for one eye. The second
// return value is false when any required landmark is missing, which drops
// the eye from the frame's decision.
func (g *GazeClassifier) eyeCentered(frame *model.LandmarkFrame, outerIndex, innerIndex int, irisIndices []int) (centered bool, ok bool) {
	outer, okOuter := frame.At(outerIndex)
	inner, okInner := frame.At(innerIndex)
	if !okOuter || !okInner {
		return false, false
	}

	irisX := 0.0
	for _, index := range irisIndices {
		p, okIris := frame.At(index)
		if !okIris {
			return false, false
		}
		irisX += p.X
	}
	irisX /= float64(len(irisIndices))

	norm := NormalizedIrisPosition(outer.X, inner.X, irisX)
	return g.centerMin <= norm && norm <= g.centerMax, true
}

// NormalizedIrisPosition maps an iris x coordinate onto the eye axis: 0 at
// the outer corner, 1 at the inner corner. The mapping is direction
// agnostic, so a mirrored or rotated capture normalizes identically. A
// collapsed axis reads as 0.5.
func NormalizedIrisPosition(outerX, innerX, irisX float64) float64 {
	denom := innerX - outerX
	if math.Abs(denom) < irisDenomEpsilon {
		return 0.5
	}
	return (irisX - outerX) / denom
}

func distance(a, b model.Point2D) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
