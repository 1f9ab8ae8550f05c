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
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/interviewace/video-analysis/internal/config"
	"github.com/interviewace/video-analysis/internal/core/cor"
	"github.com/interviewace/video-analysis/internal/core/model"
)

// ReportSuffix is appended to a video's base name (extension stripped) to
// form its persisted analysis file.
const ReportSuffix = ".analysis.json"

// ReportPathFor returns the on-disk location of the analysis report for a
// given uploaded video file name.
func ReportPathFor(uploadDir, videoFileName string) string {
	base := strings.TrimSuffix(videoFileName, filepath.Ext(videoFileName))
	return filepath.Join(uploadDir, base+ReportSuffix)
}

// WriteReport persists the assembled report as JSON next to the uploaded
// video, keyed by the video's base name so the retrieval endpoint can find
// it later without a database.
type WriteReport struct {
	cor.BaseCommand
	storage config.Storage
}

// NewWriteReport is the constructor for the WriteReport command.
//
// Inputs:
//   - name: the command name for logging and telemetry.
//   - storage: the storage layout configuration.
//
// Outputs:
//   - *WriteReport: a pointer to the newly instantiated command.
func NewWriteReport(name string, storage config.Storage) *WriteReport {
	cmd := &WriteReport{
		BaseCommand: *cor.NewBaseCommand(name),
		storage:     storage,
	}
	cmd.InputParamName = KeyReport
	cmd.OutputParamName = KeyReportPath
	return cmd
}

// Execute serializes the report to its stable location.
func (c *WriteReport) Execute(context cor.Context) {
	ctx, span := c.Tracer.Start(context.GetContext(), "write_report_execute")
	defer span.End()

	report := context.Get(c.GetInputParam()).(*model.AnalysisReport)
	videoPath, ok := context.Get(KeyVideoPath).(string)
	if !ok {
		c.GetErrorCounter().Add(ctx, 1)
		context.AddError(c.GetName(), fmt.Errorf("missing %q in context", KeyVideoPath))
		return
	}

	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		c.GetErrorCounter().Add(ctx, 1)
		context.AddError(c.GetName(), fmt.Errorf("marshal analysis report: %w", err))
		return
	}

	outPath := ReportPathFor(c.storage.UploadDir, filepath.Base(videoPath))
	if err := os.WriteFile(outPath, payload, 0o644); err != nil {
		c.GetErrorCounter().Add(ctx, 1)
		context.AddError(c.GetName(), fmt.Errorf("write analysis report: %w", err))
		return
	}

	slog.InfoContext(ctx, "analysis report written", "path", outPath, "report_id", report.Id)
	context.Add(c.GetOutputParam(), outPath)
	c.GetSuccessCounter().Add(ctx, 1)
}
