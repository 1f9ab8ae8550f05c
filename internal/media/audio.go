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

// Package media wraps the external ffmpeg/ffprobe tools. This file
// implements the audio leg of the demuxing contract: extraction of a
// bounded-duration mono PCM track into a uniquely named temporary WAV file.
// The caller owns the returned file and is responsible for registering it
// for end-of-run cleanup; this package never deletes what it hands out.
package media

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/interviewace/video-analysis/internal/core/model"
)

// ErrNoAudio is returned by ExtractAudio when the probed source carries no
// audio stream. Callers translate it into the no_audio transcript status
// rather than treating it as a failure.
var ErrNoAudio = errors.New("media: source has no audio track")

// ExtractAudio clips the source to min(duration, maxSeconds) and extracts
// that span as 16-bit mono PCM at the given sample rate, writing a uniquely
// named WAV under outDir.
//
// Inputs:
//   - ctx: the Go context bounding the subprocess.
//   - src: the probed media source.
//   - maxSeconds: the analysis duration cap.
//   - sampleRate: target PCM sample rate in hertz.
//   - outDir: directory that receives the temporary WAV.
//   - prefix: file name prefix for the temporary WAV.
//
// Outputs:
//   - *model.AudioTrack: the extracted track, carrying the effective
//     duration actually clipped.
//   - error: ErrNoAudio when the source has no audio stream, or the ffmpeg
//     failure otherwise.
func (d *Demuxer) ExtractAudio(ctx context.Context, src *model.MediaSource, maxSeconds float64, sampleRate int, outDir string, prefix string) (*model.AudioTrack, error) {
	if !src.HasAudio {
		return nil, ErrNoAudio
	}

	effective := math.Min(src.Duration, maxSeconds)
	if effective <= 0 {
		effective = maxSeconds
	}

	// Millisecond timestamp keeps concurrent runs from colliding on the
	// same file name.
	outPath := filepath.Join(outDir, fmt.Sprintf("%s_%d.wav", prefix, time.Now().UnixMilli()))

	cmd := exec.CommandContext(ctx, d.ffmpegPath,
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", src.Path,
		"-t", strconv.FormatFloat(effective, 'f', 3, 64),
		"-vn",
		"-ac", "1",
		"-ar", strconv.Itoa(sampleRate),
		"-acodec", "pcm_s16le",
		outPath)
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg audio extraction failed for %s: %w", src.Path, err)
	}

	return &model.AudioTrack{Path: outPath, EffectiveDuration: effective}, nil
}
