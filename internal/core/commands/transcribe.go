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

package commands

import (
	"github.com/interviewace/video-analysis/internal/core/cor"
	"github.com/interviewace/video-analysis/internal/core/model"
	"github.com/interviewace/video-analysis/internal/speech"
)

// Transcribe runs the speech-to-text adapter over the extracted audio
// track. When extraction published a transcript directly (no audio, ffmpeg
// failure) there is no audio track in the context and the default
// precondition skips this command, leaving that transcript in place.
type Transcribe struct {
	cor.BaseCommand
	adapter *speech.Adapter
}

// NewTranscribe is the constructor for the Transcribe command.
//
// Inputs:
//   - name: the command name for logging and telemetry.
//   - adapter: the ordered speech engine fallback adapter.
//
// Outputs:
//   - *Transcribe: a pointer to the newly instantiated command.
func NewTranscribe(name string, adapter *speech.Adapter) *Transcribe {
	cmd := &Transcribe{
		BaseCommand: *cor.NewBaseCommand(name),
		adapter:     adapter,
	}
	cmd.InputParamName = KeyAudioTrack
	cmd.OutputParamName = KeyTranscript
	return cmd
}

// Execute transcribes the audio track. The adapter folds every failure
// mode into the transcript's status, so this command never records a chain
// error.
func (c *Transcribe) Execute(context cor.Context) {
	ctx, span := c.Tracer.Start(context.GetContext(), "transcribe_execute")
	defer span.End()

	track := context.Get(c.GetInputParam()).(*model.AudioTrack)

	result := c.adapter.Transcribe(ctx, track)
	context.Add(c.GetOutputParam(), result)

	if result.Usable() {
		c.GetSuccessCounter().Add(ctx, 1)
	} else {
		c.GetErrorCounter().Add(ctx, 1)
	}
}
