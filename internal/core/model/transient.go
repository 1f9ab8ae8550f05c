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
// This file, `transient.go`, contains the struct definitions for data that
// only lives for the span of a single analysis run. These objects are the
// intermediate containers that the pipeline commands read from and write to
// as a video moves through demuxing, transcription, and frame analysis; none
// of them are persisted in this form.
package model

// Transcript status values. The speech-to-text adapter never raises for the
// failure modes below; it tags the result instead, and downstream stages
// branch on the tag (only StatusOK transcripts feed fluency analysis).
const (
	// StatusOK indicates a usable transcript was produced.
	StatusOK = "ok"
	// StatusNoAudio indicates the source video carries no audio track.
	StatusNoAudio = "no_audio"
	// StatusUnclear indicates audio was present but no engine could make
	// out any speech in it.
	StatusUnclear = "unclear"
	// StatusServiceUnavailable indicates the network-dependent fallback
	// engine could not be reached.
	StatusServiceUnavailable = "service_unavailable"
	// StatusError indicates an unexpected failure during audio analysis.
	StatusError = "error"
)

// MediaSource describes a video file that has been probed by the demuxer.
// It is derived once at the start of a run and is read-only thereafter.
type MediaSource struct {
	Path       string  // Local filesystem path of the video file.
	FrameRate  float64 // Native frame rate in frames per second.
	FrameCount int64   // Total number of video frames in the container.
	Duration   float64 // Total duration in seconds.
	HasAudio   bool    // Whether the container carries at least one audio stream.
}

// AudioTrack is a bounded-duration mono PCM extraction of a MediaSource.
// The track is exclusively owned by the run that created it; the pipeline
// context tracks the backing temp file and deletes it (with retry) when the
// run ends, on every exit path.
type AudioTrack struct {
	Path              string  // Path of the temporary WAV file.
	EffectiveDuration float64 // Seconds of audio actually extracted (<= the analysis cap).
}

// TranscriptResult is the immutable output of the speech-to-text adapter.
// Status is always one of the Status* constants above.
type TranscriptResult struct {
	Text   string `json:"text"`
	Status string `json:"status"`
}

// Usable reports whether the transcript should feed fluency computation.
// Any status other than StatusOK short-circuits fluency to zero-valued
// metrics.
func (t TranscriptResult) Usable() bool {
	return t.Status == StatusOK
}

// Point2D is a single normalized 2-D facial landmark coordinate. Both axes
// are in [0,1] relative to the frame dimensions, matching the convention of
// the landmark detector sidecar.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LandmarkFrame holds the full set of normalized facial landmarks detected
// in one sampled frame, indexed by the detector's landmark numbering
// (eye corners, iris clusters, nose tip, and the rest of the face mesh).
// Frames are consumed immediately by the gaze classifier and not retained.
type LandmarkFrame struct {
	Points []Point2D `json:"points"`
}

// At returns the landmark at the given detector index, along with a flag
// indicating whether the index is present in this frame. A missing index
// degrades the corresponding signal gracefully rather than aborting the
// frame.
func (f *LandmarkFrame) At(index int) (Point2D, bool) {
	if f == nil || index < 0 || index >= len(f.Points) {
		return Point2D{}, false
	}
	return f.Points[index], true
}

// LandmarkObservation is the normalized result of one landmark-detector call.
// Varying detector output shapes are folded into this single tagged variant
// so the frame loop never branches on raw payloads: when Detected is false
// the Frame is nil and the sampled frame contributes to no gaze counter.
type LandmarkObservation struct {
	Detected bool
	Frame    *LandmarkFrame
}

// EmotionObservation is the normalized result of one emotion-classifier call.
// When Detected is false (classifier failure, no face) the frame simply
// skips the emotion histogram.
type EmotionObservation struct {
	Detected bool
	Label    string
}

// GazeFrameResult is the gaze classifier's verdict for a single sampled
// frame. FaceDetected gates whether the frame counts toward the gaze
// accumulator at all.
type GazeFrameResult struct {
	FaceDetected    bool
	LookingAtCamera bool
}
