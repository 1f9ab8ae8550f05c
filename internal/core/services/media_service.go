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

// Package services sits between the HTTP boundary and the pipeline. The
// media service owns the upload directory: it validates and persists
// incoming videos, runs the analysis workflow over them, and resolves
// stored artifacts for retrieval, keeping all path handling in one place.
package services

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"

	"github.com/interviewace/video-analysis/internal/config"
	"github.com/interviewace/video-analysis/internal/core/commands"
	"github.com/interviewace/video-analysis/internal/core/model"
	"github.com/interviewace/video-analysis/internal/core/workflow"
)

// sniffLen is how many leading bytes the content sniffer needs.
const sniffLen = 262

// defaultUploadExt is assumed when the client supplies no usable extension;
// browser MediaRecorder uploads commonly arrive this way.
const defaultUploadExt = ".webm"

var (
	// ErrNotAVideo rejects uploads whose content does not sniff as a video
	// container, regardless of the claimed file name.
	ErrNotAVideo = errors.New("services: uploaded content is not a recognized video format")
	// ErrNotFound reports a requested artifact that does not exist in the
	// upload directory.
	ErrNotFound = errors.New("services: no such file")
	// ErrBadName rejects retrieval names that try to escape the upload
	// directory.
	ErrBadName = errors.New("services: invalid file name")
)

// MediaService owns uploaded videos and their analysis artifacts.
type MediaService struct {
	storage  config.Storage
	analyzer *workflow.InterviewAnalyzer
}

// NewMediaService is the constructor for the MediaService. It ensures the
// upload directory exists.
//
// Inputs:
//   - cfg: the application configuration.
//   - analyzer: the interview analysis workflow.
//
// Outputs:
//   - *MediaService: a pointer to the newly instantiated service.
//   - error: when the upload directory cannot be created.
func NewMediaService(cfg *config.Config, analyzer *workflow.InterviewAnalyzer) (*MediaService, error) {
	if err := os.MkdirAll(cfg.Storage.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory %s: %w", cfg.Storage.UploadDir, err)
	}
	return &MediaService{storage: cfg.Storage, analyzer: analyzer}, nil
}

// SaveUpload sniffs, names, and persists one uploaded video.
//
// Logic Flow:
//  1. Peek the leading bytes and match them against known video container
//     signatures; non-video content is rejected before anything is written.
//  2. Build a unique millisecond-timestamped name, keeping the client's
//     extension when it has one.
//  3. Stream the body to disk under the upload directory.
//
// Inputs:
//   - body: the upload stream.
//   - originalName: the client-supplied file name, used only for its
//     extension.
//
// Outputs:
//   - string: the stored file name (not the full path).
//   - error: ErrNotAVideo for rejected content, or the I/O failure.
func (s *MediaService) SaveUpload(body io.Reader, originalName string) (string, error) {
	reader := bufio.NewReaderSize(body, sniffLen)
	head, err := reader.Peek(sniffLen)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if !isVideoContent(head) {
		return "", ErrNotAVideo
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" || strings.ContainsAny(ext, `/\`) {
		ext = defaultUploadExt
	}
	fileName := fmt.Sprintf("interview_%d%s", time.Now().UnixMilli(), ext)
	outPath := filepath.Join(s.storage.UploadDir, fileName)

	out, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer func() { _ = out.Close() }()

	written, err := io.Copy(out, reader)
	if err != nil {
		_ = os.Remove(outPath)
		return "", fmt.Errorf("store upload: %w", err)
	}

	slog.Info("stored uploaded video", "file", fileName, "bytes", written)
	return fileName, nil
}

// Analyze runs the pipeline over a stored upload and returns the report.
//
// Inputs:
//   - ctx: the Go context bounding the run.
//   - fileName: the stored file name returned by SaveUpload.
//
// Outputs:
//   - *model.AnalysisReport: the completed report.
//   - error: a pipeline failure the run could not degrade around.
func (s *MediaService) Analyze(ctx context.Context, fileName string) (*model.AnalysisReport, error) {
	path, err := s.ResolveFile(fileName)
	if err != nil {
		return nil, err
	}
	return s.analyzer.Analyze(ctx, path)
}

// ReportFileName returns the analysis artifact name for a stored video.
func (s *MediaService) ReportFileName(videoFileName string) string {
	return filepath.Base(commands.ReportPathFor(s.storage.UploadDir, videoFileName))
}

// ResolveFile maps a bare artifact name onto its path inside the upload
// directory, rejecting anything that is not a plain file name.
//
// Inputs:
//   - name: the bare file name of a stored video or analysis JSON.
//
// Outputs:
//   - string: the absolute-or-relative path under the upload directory.
//   - error: ErrBadName for traversal attempts, ErrNotFound when absent.
func (s *MediaService) ResolveFile(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", ErrBadName
	}
	path := filepath.Join(s.storage.UploadDir, name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", err
	}
	return path, nil
}

// isVideoContent matches the sniffed head against the video container
// signatures the pipeline can decode.
func isVideoContent(head []byte) bool {
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return false
	}
	switch kind {
	case matchers.TypeMp4, matchers.TypeWebm, matchers.TypeMov,
		matchers.TypeAvi, matchers.TypeMkv, matchers.TypeMpeg,
		matchers.TypeFlv, matchers.Type3gp:
		return true
	}
	return false
}
