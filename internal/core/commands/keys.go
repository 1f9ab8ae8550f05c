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

// Package commands contains the concrete pipeline commands that turn an
// uploaded interview video into an analysis report. Each command does one
// stage of the work and communicates with its neighbors exclusively through
// named context keys, so individual stages stay independently testable.
package commands

// Context keys for the values the pipeline commands pass between each
// other. A command declares the key it reads as its input param and the key
// it writes as its output param.
const (
	// KeyVideoPath is the local path of the uploaded video; set by the
	// caller when seeding the run context.
	KeyVideoPath = "video_path"
	// KeyMediaSource is the probed *model.MediaSource.
	KeyMediaSource = "media_source"
	// KeyAudioTrack is the extracted *model.AudioTrack.
	KeyAudioTrack = "audio_track"
	// KeyTranscript is the tagged model.TranscriptResult.
	KeyTranscript = "transcript"
	// KeyFluency is the model.FluencyReport.
	KeyFluency = "fluency_report"
	// KeyGaze is the model.GazeReport.
	KeyGaze = "gaze_report"
	// KeyEmotions is the *model.EmotionHistogram accumulated over frames.
	KeyEmotions = "emotion_histogram"
	// KeyScores is the model.FusedScores.
	KeyScores = "fused_scores"
	// KeyReport is the terminal *model.AnalysisReport.
	KeyReport = "analysis_report"
	// KeyReportPath is the on-disk location the report was written to.
	KeyReportPath = "report_path"
)
