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
// implements the frame sampler: a single forward pass over the decoder that
// keeps one frame every stride positions and hands each kept frame to a
// callback as JPEG bytes.
//
// Logic Flow:
//  1. Compute the stride from the source frame rate and the sampling
//     cadence, and the total frame budget from the duration cap.
//  2. Run one ffmpeg process with a select filter that drops everything but
//     every stride-th frame, emitting MJPEG onto stdout.
//  3. Split the MJPEG byte stream on JPEG start/end markers and invoke the
//     handler per frame with the original decoder frame index.
//  4. Stop as soon as the frame budget is met; sampling is forward-only and
//     not restartable within a run.
package media

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"os/exec"
	"strconv"

	"github.com/interviewace/video-analysis/internal/core/model"
)

// JPEG stream markers used to split the MJPEG pipe into individual frames.
var (
	jpegSOI = []byte{0xFF, 0xD8} // start of image
	jpegEOI = []byte{0xFF, 0xD9} // end of image
)

// SampledFrame is one kept frame from the sampling pass. Index is the
// position of the frame in the original decode order, not the sample
// ordinal.
type SampledFrame struct {
	Index int
	JPEG  []byte
}

// FrameHandler consumes one sampled frame. Handlers must not retain the
// JPEG slice past the call.
type FrameHandler func(frame SampledFrame)

// SampleStride computes the sampling stride in frames for a given source
// frame rate and cadence. The stride is floored to one frame, and falls
// back to one second's worth of frames when the computed value is
// non-positive.
func SampleStride(frameRate float64, cadenceSeconds float64) int {
	fps := frameRate
	if fps <= 0 {
		fps = DefaultFrameRate
	}
	stride := int(math.Round(cadenceSeconds * fps))
	if stride <= 0 {
		stride = int(math.Round(fps))
	}
	if stride < 1 {
		stride = 1
	}
	return stride
}

// SampleBudget returns the number of decoder frames covered by the analysis
// window min(duration, maxSeconds).
func SampleBudget(duration float64, maxSeconds float64, frameRate float64) int {
	fps := frameRate
	if fps <= 0 {
		fps = DefaultFrameRate
	}
	return int(math.Min(duration, maxSeconds) * fps)
}

// SampleFrames walks the video stream of src once, keeping one frame every
// stride positions up to the capped analysis window, and hands each kept
// frame to the handler. The first sampled index is always 0.
//
// Inputs:
//   - ctx: the Go context bounding the decode subprocess.
//   - src: the probed media source.
//   - cadenceSeconds: sampling cadence in seconds.
//   - maxSeconds: the analysis duration cap.
//   - handler: receives each sampled frame in decode order.
//
// Outputs:
//   - error: when the decoder cannot be started or the stream is corrupt
//     before any frame is produced. A decoder that dies mid-stream after
//     yielding frames is not an error; the frames seen so far stand.
func (d *Demuxer) SampleFrames(ctx context.Context, src *model.MediaSource, cadenceSeconds float64, maxSeconds float64, handler FrameHandler) error {
	stride := SampleStride(src.FrameRate, cadenceSeconds)
	budget := SampleBudget(src.Duration, maxSeconds, src.FrameRate)
	if budget <= 0 {
		return nil
	}
	// Number of kept frames: indices 0, stride, 2*stride, ... below budget.
	expected := (budget + stride - 1) / stride

	cmd := exec.CommandContext(ctx, d.ffmpegPath,
		"-hide_banner",
		"-loglevel", "error",
		"-i", src.Path,
		"-t", strconv.FormatFloat(math.Min(src.Duration, maxSeconds), 'f', 3, 64),
		"-vf", fmt.Sprintf("select=not(mod(n\\,%d))", stride),
		"-vsync", "vfr",
		"-f", "image2pipe",
		"-c:v", "mjpeg",
		"-q:v", "5",
		"-")
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("ffmpeg frame sampler pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg frame sampler start: %w", err)
	}

	sampled := 0
	reader := bufio.NewReaderSize(stdout, 1<<20)
	for sampled < expected {
		frame, err := readJPEGFrame(reader)
		if err != nil {
			break
		}
		handler(SampledFrame{Index: sampled * stride, JPEG: frame})
		sampled++
	}

	// The budget may be met before the stream drains; stop the decoder
	// rather than decode frames nobody will look at.
	if sampled >= expected {
		_ = cmd.Process.Kill()
	}
	_ = cmd.Wait()

	if sampled == 0 {
		return fmt.Errorf("ffmpeg frame sampler produced no frames for %s", src.Path)
	}
	return nil
}

// readJPEGFrame scans the stream for the next start-of-image marker and
// accumulates bytes through the matching end-of-image marker.
func readJPEGFrame(reader *bufio.Reader) ([]byte, error) {
	// Seek to the start marker, discarding any inter-frame padding.
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return nil, err
		}
		if b != jpegSOI[0] {
			continue
		}
		next, err := reader.Peek(1)
		if err != nil {
			return nil, err
		}
		if next[0] == jpegSOI[1] {
			if _, err := reader.Discard(1); err != nil {
				return nil, err
			}
			break
		}
	}

	frame := bytes.NewBuffer(nil)
	frame.Write(jpegSOI)
	prev := byte(0)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			if err == io.EOF && frame.Len() > len(jpegSOI) {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		frame.WriteByte(b)
		if prev == jpegEOI[0] && b == jpegEOI[1] {
			return frame.Bytes(), nil
		}
		prev = b
	}
}
