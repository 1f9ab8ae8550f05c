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

package speech

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/interviewace/video-analysis/internal/core/model"
)

// fakeEngine is a scriptable engine for exercising the fallback order.
type fakeEngine struct {
	name      string
	available bool
	text      string
	err       error
	calls     int
}

func (f *fakeEngine) Name() string    { return f.name }
func (f *fakeEngine) Available() bool { return f.available }
func (f *fakeEngine) Transcribe(_ context.Context, _ *model.AudioTrack) (string, error) {
	f.calls++
	return f.text, f.err
}

func testTrack() *model.AudioTrack {
	return &model.AudioTrack{Path: "unused.wav", EffectiveDuration: 30}
}

func TestAdapterFirstEngineWins(t *testing.T) {
	primary := &fakeEngine{name: "primary", available: true, text: "hello world"}
	secondary := &fakeEngine{name: "secondary", available: true, text: "should not run"}

	result := NewAdapter(primary, secondary).Transcribe(context.Background(), testTrack())

	assert.Equal(t, model.StatusOK, result.Status)
	assert.Equal(t, "hello world", result.Text)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, secondary.calls)
}

func TestAdapterFallsBackPastUnavailableEngine(t *testing.T) {
	primary := &fakeEngine{name: "primary", available: false}
	secondary := &fakeEngine{name: "secondary", available: true, text: "from fallback"}

	result := NewAdapter(primary, secondary).Transcribe(context.Background(), testTrack())

	assert.Equal(t, model.StatusOK, result.Status)
	assert.Equal(t, "from fallback", result.Text)
	assert.Equal(t, 0, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestAdapterFallsBackPastFailingEngine(t *testing.T) {
	primary := &fakeEngine{name: "primary", available: true, err: ErrServiceUnavailable}
	secondary := &fakeEngine{name: "secondary", available: true, text: "recovered"}

	result := NewAdapter(primary, secondary).Transcribe(context.Background(), testTrack())

	assert.Equal(t, model.StatusOK, result.Status)
	assert.Equal(t, "recovered", result.Text)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestAdapterClassifiesUnclear(t *testing.T) {
	primary := &fakeEngine{name: "primary", available: true, text: ""}
	secondary := &fakeEngine{name: "secondary", available: true, err: ErrUnintelligible}

	result := NewAdapter(primary, secondary).Transcribe(context.Background(), testTrack())

	assert.Equal(t, model.StatusUnclear, result.Status)
	assert.Equal(t, TextUnclear, result.Text)
	assert.False(t, result.Usable())
}

func TestAdapterClassifiesServiceUnavailable(t *testing.T) {
	primary := &fakeEngine{name: "primary", available: false}
	secondary := &fakeEngine{name: "secondary", available: true, err: ErrServiceUnavailable}

	result := NewAdapter(primary, secondary).Transcribe(context.Background(), testTrack())

	assert.Equal(t, model.StatusServiceUnavailable, result.Status)
	assert.Equal(t, TextServiceUnavailable, result.Text)
}

func TestAdapterNoEnginesAvailable(t *testing.T) {
	primary := &fakeEngine{name: "primary", available: false}
	secondary := &fakeEngine{name: "secondary", available: false}

	result := NewAdapter(primary, secondary).Transcribe(context.Background(), testTrack())

	assert.Equal(t, model.StatusServiceUnavailable, result.Status)
	assert.Equal(t, 0, primary.calls)
	assert.Equal(t, 0, secondary.calls)
}

func TestAdapterGenericErrorStatus(t *testing.T) {
	primary := &fakeEngine{name: "primary", available: true, err: context.DeadlineExceeded}

	result := NewAdapter(primary).Transcribe(context.Background(), testTrack())

	assert.Equal(t, model.StatusError, result.Status)
	assert.Contains(t, result.Text, "Audio analysis error")
}
