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
	"strings"
	"time"

	"github.com/interviewace/video-analysis/internal/config"
	"github.com/interviewace/video-analysis/internal/core/model"
)

// EmotionClient is the HTTP client for the emotion classification sidecar.
type EmotionClient struct {
	client *sidecarClient
}

// NewEmotionClient is the constructor for the EmotionClient.
//
// Inputs:
//   - cfg: the perception configuration naming the emotion endpoint and
//     the per-request timeout.
//
// Outputs:
//   - *EmotionClient: a pointer to the newly instantiated client.
func NewEmotionClient(cfg config.Perception) *EmotionClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	return &EmotionClient{
		client: newSidecarClient("emotion", cfg.EmotionEndpoint, timeout),
	}
}

// emotionReply is the sidecar's JSON shape.
type emotionReply struct {
	FaceDetected    bool   `json:"face_detected"`
	DominantEmotion string `json:"dominant_emotion"`
}

// Classify implements EmotionClassifier.
func (e *EmotionClient) Classify(ctx context.Context, jpeg []byte) (model.EmotionObservation, error) {
	var reply emotionReply
	if err := e.client.post(ctx, jpeg, &reply); err != nil {
		return model.EmotionObservation{}, err
	}
	label := strings.ToLower(strings.TrimSpace(reply.DominantEmotion))
	if !reply.FaceDetected || label == "" {
		return model.EmotionObservation{}, nil
	}
	return model.EmotionObservation{Detected: true, Label: label}, nil
}

// Available implements EmotionClassifier.
func (e *EmotionClient) Available() bool { return e.client.available() }

var _ EmotionClassifier = (*EmotionClient)(nil)
