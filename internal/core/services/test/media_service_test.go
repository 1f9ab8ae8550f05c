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

// Package services_test contains the test suite for the services package.
// This file specifically tests the MediaService: upload validation and
// persistence, artifact naming, and retrieval path resolution.
package services_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zeebo/assert"

	"github.com/interviewace/video-analysis/internal/core/services"
	"github.com/interviewace/video-analysis/internal/core/workflow"
	"github.com/interviewace/video-analysis/internal/media"
	"github.com/interviewace/video-analysis/internal/perception"
	"github.com/interviewace/video-analysis/internal/speech"
	test "github.com/interviewace/video-analysis/internal/testutil"
)

// webmHeader is the EBML magic that opens every webm container; the sniffer
// only needs the leading bytes, not a decodable stream.
var webmHeader = []byte{0x1A, 0x45, 0xDF, 0xA3}

// newMediaService builds a MediaService over a throwaway upload directory.
// The backing workflow is fully constructed but never reached by these
// tests; upload handling stops at the storage layer.
func newMediaService(t *testing.T) *services.MediaService {
	t.Helper()

	cfg := *test.GetConfig()
	cfg.Storage.UploadDir = t.TempDir()

	demuxer := media.NewDemuxer(cfg.Media)
	stt := speech.NewAdapter()
	analyzer := workflow.NewInterviewAnalyzer(&cfg, demuxer, stt,
		&perception.FakeLandmarkDetector{Unavailable: true},
		&perception.FakeEmotionClassifier{Unavailable: true})

	svc, err := services.NewMediaService(&cfg, analyzer)
	assert.NoError(t, err)
	return svc
}

func TestSaveUploadStoresVideo(t *testing.T) {
	svc := newMediaService(t)

	body := append(append([]byte{}, webmHeader...), bytes.Repeat([]byte{0x42}, 512)...)
	fileName, err := svc.SaveUpload(bytes.NewReader(body), "recording.webm")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(fileName, "interview_"))
	assert.True(t, strings.HasSuffix(fileName, ".webm"))

	// The stored file must round-trip through retrieval resolution.
	path, err := svc.ResolveFile(fileName)
	assert.NoError(t, err)
	stored, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, len(body), len(stored))
}

func TestSaveUploadDefaultsExtension(t *testing.T) {
	svc := newMediaService(t)

	// Browser MediaRecorder uploads often arrive with a bare blob name.
	fileName, err := svc.SaveUpload(bytes.NewReader(webmHeader), "blob")
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(fileName, ".webm"))
}

func TestSaveUploadRejectsNonVideoContent(t *testing.T) {
	svc := newMediaService(t)

	_, err := svc.SaveUpload(strings.NewReader("just some text pretending"), "video.mp4")
	assert.True(t, errors.Is(err, services.ErrNotAVideo))
}

func TestReportFileName(t *testing.T) {
	svc := newMediaService(t)

	assert.Equal(t, "interview_17.analysis.json", svc.ReportFileName("interview_17.webm"))
}

func TestResolveFileRejectsTraversal(t *testing.T) {
	svc := newMediaService(t)

	_, err := svc.ResolveFile("../configs/.env.toml")
	assert.True(t, errors.Is(err, services.ErrBadName))
	_, err = svc.ResolveFile(filepath.Join("nested", "name.webm"))
	assert.True(t, errors.Is(err, services.ErrBadName))
	_, err = svc.ResolveFile(".hidden")
	assert.True(t, errors.Is(err, services.ErrBadName))
	_, err = svc.ResolveFile("")
	assert.True(t, errors.Is(err, services.ErrBadName))
}

func TestResolveFileMissing(t *testing.T) {
	svc := newMediaService(t)

	_, err := svc.ResolveFile("interview_0.webm")
	assert.True(t, errors.Is(err, services.ErrNotFound))
}

func TestAnalyzeMissingFile(t *testing.T) {
	svc := newMediaService(t)

	_, err := svc.Analyze(context.Background(), "interview_0.webm")
	assert.True(t, errors.Is(err, services.ErrNotFound))
}
