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

package media

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	test "github.com/interviewace/video-analysis/internal/testutil"
)

func TestParseRational(t *testing.T) {
	assert.InDelta(t, 29.97, parseRational("30000/1001"), 0.001)
	assert.Equal(t, 30.0, parseRational("30"))
	assert.Equal(t, 25.0, parseRational("25/1"))
	assert.Equal(t, 0.0, parseRational("0/0"))
	assert.Equal(t, 0.0, parseRational(""))
	assert.Equal(t, 0.0, parseRational("30/0"))
	assert.Equal(t, 0.0, parseRational("abc"))
	assert.Equal(t, 0.0, parseRational("a/b"))
}

func TestBuildMediaSourceFromProbeOutput(t *testing.T) {
	var probed ffprobeOutput
	require.NoError(t, json.Unmarshal([]byte(test.GetTestProbeOutputText()), &probed))

	src := buildMediaSource("interview_001.webm", &probed)

	assert.Equal(t, "interview_001.webm", src.Path)
	assert.True(t, src.HasAudio)
	assert.InDelta(t, 29.97, src.FrameRate, 0.001)
	assert.Equal(t, int64(1798), src.FrameCount)
	assert.InDelta(t, 60.030, src.Duration, 0.001)
}

func TestBuildMediaSourceSilentVideoFallsBack(t *testing.T) {
	var probed ffprobeOutput
	require.NoError(t, json.Unmarshal([]byte(test.GetTestProbeSilentOutputText()), &probed))

	src := buildMediaSource("screen_capture.mp4", &probed)

	// No audio stream, no usable frame rate, no stated frame count: the
	// probe substitutes the default rate and derives the count from it.
	assert.False(t, src.HasAudio)
	assert.Equal(t, DefaultFrameRate, src.FrameRate)
	assert.InDelta(t, 12.5, src.Duration, 0.001)
	assert.Equal(t, int64(12.5*DefaultFrameRate), src.FrameCount)
}

func TestSampleStride(t *testing.T) {
	// 2 seconds at 30 fps keeps every 60th frame.
	assert.Equal(t, 60, SampleStride(30.0, 2.0))
	// Fractional rates round to the nearest whole frame.
	assert.Equal(t, 60, SampleStride(29.97, 2.0))
	// An unusable frame rate falls back to the default.
	assert.Equal(t, 60, SampleStride(0, 2.0))
	// A zero cadence degrades to one second's worth of frames.
	assert.Equal(t, 30, SampleStride(30.0, 0))
	// The stride never drops below a single frame.
	assert.Equal(t, 1, SampleStride(0.4, 0.5))
}

func TestSampleBudget(t *testing.T) {
	// The duration cap bounds the analysis window.
	assert.Equal(t, 180*30, SampleBudget(600.0, 180.0, 30.0))
	// Shorter videos are covered in full.
	assert.Equal(t, 40*30, SampleBudget(40.0, 180.0, 30.0))
	// An unusable frame rate falls back to the default.
	assert.Equal(t, int(10*DefaultFrameRate), SampleBudget(10.0, 180.0, 0))
}

// fakeJPEG assembles a minimal marker-framed payload. The splitter only
// looks at the SOI/EOI markers, not at JPEG validity.
func fakeJPEG(payload []byte) []byte {
	out := append([]byte{}, jpegSOI...)
	out = append(out, payload...)
	return append(out, jpegEOI...)
}

func TestReadJPEGFrameSplitsStream(t *testing.T) {
	first := fakeJPEG([]byte{0x01, 0x02, 0x03})
	second := fakeJPEG([]byte{0x04, 0x05})

	stream := bytes.NewBuffer(nil)
	stream.Write([]byte{0x00, 0x00}) // inter-frame padding
	stream.Write(first)
	stream.Write([]byte{0xFF, 0x00}) // a lone 0xFF must not start a frame
	stream.Write(second)

	reader := bufio.NewReader(stream)

	frame, err := readJPEGFrame(reader)
	require.NoError(t, err)
	assert.Equal(t, first, frame)

	frame, err = readJPEGFrame(reader)
	require.NoError(t, err)
	assert.Equal(t, second, frame)

	_, err = readJPEGFrame(reader)
	assert.Error(t, err)
}

func TestReadJPEGFrameTruncatedStream(t *testing.T) {
	// A frame whose end marker never arrives is an error, not a frame.
	truncated := append(append([]byte{}, jpegSOI...), 0x01, 0x02)
	reader := bufio.NewReader(bytes.NewReader(truncated))

	_, err := readJPEGFrame(reader)
	assert.Error(t, err)
}
