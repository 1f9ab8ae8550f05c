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
	"fmt"
	"log/slog"

	"github.com/interviewace/video-analysis/internal/core/cor"
	"github.com/interviewace/video-analysis/internal/media"
)

// ProbeSource is the first command of the pipeline: it inspects the
// uploaded container with ffprobe and publishes the resulting MediaSource
// for every downstream stage. A video that cannot be probed is the one
// failure the pipeline treats as fatal, since neither the audio nor the
// video leg can proceed without the source description.
type ProbeSource struct {
	cor.BaseCommand
	demuxer *media.Demuxer
}

// NewProbeSource is the constructor for the ProbeSource command.
//
// Inputs:
//   - name: the command name for logging and telemetry.
//   - demuxer: the shared media demuxer.
//
// Outputs:
//   - *ProbeSource: a pointer to the newly instantiated command.
func NewProbeSource(name string, demuxer *media.Demuxer) *ProbeSource {
	cmd := &ProbeSource{
		BaseCommand: *cor.NewBaseCommand(name),
		demuxer:     demuxer,
	}
	cmd.InputParamName = KeyVideoPath
	cmd.OutputParamName = KeyMediaSource
	return cmd
}

// Execute probes the video file named by the input key.
func (c *ProbeSource) Execute(context cor.Context) {
	ctx, span := c.Tracer.Start(context.GetContext(), "probe_source_execute")
	defer span.End()

	path, ok := context.Get(c.GetInputParam()).(string)
	if !ok {
		c.GetErrorCounter().Add(ctx, 1)
		context.AddError(c.GetName(), fmt.Errorf("input %q is not a file path", c.GetInputParam()))
		return
	}

	src, err := c.demuxer.Probe(ctx, path)
	if err != nil {
		c.GetErrorCounter().Add(ctx, 1)
		context.AddError(c.GetName(), err)
		return
	}

	slog.InfoContext(ctx, "probed video source",
		"path", src.Path,
		"duration", src.Duration,
		"frame_rate", src.FrameRate,
		"has_audio", src.HasAudio)

	context.Add(c.GetOutputParam(), src)
	c.GetSuccessCounter().Add(ctx, 1)
}
