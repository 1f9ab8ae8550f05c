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
	"time"

	"github.com/interviewace/video-analysis/internal/config"
	"github.com/interviewace/video-analysis/internal/core/model"
)

// LandmarkClient is the HTTP client for the face landmark sidecar. The
// sidecar returns the full face mesh as normalized [0,1] image coordinates,
// one point per mesh index.
type LandmarkClient struct {
	client *sidecarClient
}

// NewLandmarkClient is the constructor for the LandmarkClient.
//
// Inputs:
//   - cfg: the perception configuration naming the landmark endpoint and
//     the per-request timeout.
//
// Outputs:
//   - *LandmarkClient: a pointer to the newly instantiated client.
func NewLandmarkClient(cfg config.Perception) *LandmarkClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	return &LandmarkClient{
		client: newSidecarClient("landmark", cfg.LandmarkEndpoint, timeout),
	}
}

// landmarkReply is the sidecar's JSON shape.
type landmarkReply struct {
	FaceDetected bool `json:"face_detected"`
	Landmarks    []struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"landmarks"`
}

// Detect implements LandmarkDetector.
func (l *LandmarkClient) Detect(ctx context.Context, jpeg []byte) (model.LandmarkObservation, error) {
	var reply landmarkReply
	if err := l.client.post(ctx, jpeg, &reply); err != nil {
		return model.LandmarkObservation{}, err
	}
	if !reply.FaceDetected {
		return model.LandmarkObservation{}, nil
	}

	points := make([]model.Point2D, len(reply.Landmarks))
	for i, p := range reply.Landmarks {
		points[i] = model.Point2D{X: p.X, Y: p.Y}
	}
	return model.LandmarkObservation{
		Detected: true,
		Frame:    &model.LandmarkFrame{Points: points},
	}, nil
}

// Available implements LandmarkDetector.
func (l *LandmarkClient) Available() bool { return l.client.available() }

var _ LandmarkDetector = (*LandmarkClient)(nil)
