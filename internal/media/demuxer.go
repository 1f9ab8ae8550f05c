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

// Package media wraps the external ffmpeg/ffprobe tools behind the demuxing
// contract the pipeline needs: probe a container into a MediaSource, extract
// a bounded-duration mono audio track, and walk the video stream at a fixed
// sampling cadence. Decoding is a blocking subprocess; every entry point
// takes a context so the caller can abandon a run.
//
// Logic Flow (probe):
//  1. Run ffprobe with JSON output over the container's format and streams.
//  2. Take the duration from the format section, the frame rate and frame
//     count from the first video stream, and audio presence from the
//     existence of any audio stream.
//  3. A missing or non-positive frame rate falls back to DefaultFrameRate so
//     downstream stride math never divides by zero.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/interviewace/video-analysis/internal/config"
	"github.com/interviewace/video-analysis/internal/core/model"
)

// DefaultFrameRate is assumed when the container does not report a usable
// frame rate.
const DefaultFrameRate = 30.0

// Demuxer opens video containers through the configured ffmpeg/ffprobe
// binaries. It holds no per-run state and is safe to share across runs.
type Demuxer struct {
	ffmpegPath  string
	ffprobePath string
}

// NewDemuxer is the constructor for the Demuxer.
//
// Inputs:
//   - cfg: the media tool configuration naming the ffmpeg and ffprobe
//     executables.
//
// Outputs:
//   - *Demuxer: a pointer to the newly instantiated demuxer.
func NewDemuxer(cfg config.Media) *Demuxer {
	return &Demuxer{ffmpegPath: cfg.FFmpegPath, ffprobePath: cfg.FFprobePath}
}

// ffprobe JSON output shapes; only the fields the probe needs are declared.
type ffprobeStream struct {
	CodecType    string `json:"codec_type"`
	AvgFrameRate string `json:"avg_frame_rate"`
	RFrameRate   string `json:"r_frame_rate"`
	NbFrames     string `json:"nb_frames"`
	Duration     string `json:"duration"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
	Format  ffprobeFormat   `json:"format"`
}

// Probe inspects a video file and derives the read-only MediaSource the
// rest of the pipeline works from.
//
// Inputs:
//   - ctx: the Go context bounding the subprocess.
//   - path: local filesystem path of the video file.
//
// Outputs:
//   - *model.MediaSource: the probed source description.
//   - error: when ffprobe fails or emits unparsable output.
func (d *Demuxer) Probe(ctx context.Context, path string) (*model.MediaSource, error) {
	cmd := exec.CommandContext(ctx, d.ffprobePath,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed for %s: %w", path, err)
	}

	var probed ffprobeOutput
	if err := json.Unmarshal(stdout.Bytes(), &probed); err != nil {
		return nil, fmt.Errorf("ffprobe output for %s is not valid JSON: %w", path, err)
	}

	return buildMediaSource(path, &probed), nil
}

// buildMediaSource folds raw ffprobe output into a MediaSource, applying the
// frame-rate fallback and deriving the frame count when the container does
// not state one.
func buildMediaSource(path string, probed *ffprobeOutput) *model.MediaSource {
	src := &model.MediaSource{Path: path}

	src.Duration, _ = strconv.ParseFloat(probed.Format.Duration, 64)

	for _, stream := range probed.Streams {
		switch stream.CodecType {
		case "audio":
			src.HasAudio = true
		case "video":
			if src.FrameRate > 0 {
				continue
			}
			src.FrameRate = parseRational(stream.AvgFrameRate)
			if src.FrameRate <= 0 {
				src.FrameRate = parseRational(stream.RFrameRate)
			}
			src.FrameCount, _ = strconv.ParseInt(stream.NbFrames, 10, 64)
			if src.Duration <= 0 {
				src.Duration, _ = strconv.ParseFloat(stream.Duration, 64)
			}
		}
	}

	if src.FrameRate <= 0 {
		src.FrameRate = DefaultFrameRate
	}
	if src.FrameCount <= 0 && src.Duration > 0 {
		src.FrameCount = int64(src.Duration * src.FrameRate)
	}
	return src
}

// parseRational converts an ffprobe rate expression ("30000/1001" or "30")
// into a float, returning 0 for anything unparsable.
func parseRational(in string) float64 {
	if in == "" || in == "0/0" {
		return 0
	}
	if num, den, found := strings.Cut(in, "/"); found {
		n, errN := strconv.ParseFloat(num, 64)
		d, errD := strconv.ParseFloat(den, 64)
		if errN != nil || errD != nil || d == 0 {
			return 0
		}
		return n / d
	}
	v, err := strconv.ParseFloat(in, 64)
	if err != nil {
		return 0
	}
	return v
}
