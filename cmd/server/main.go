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

// Package main is the entry point for the interview video analysis server.
//
// The application exposes a REST API over the Gin framework: video uploads
// are analyzed synchronously by the pipeline (transcription, fluency, gaze,
// emotion, fused scores) and both the video and its analysis JSON stay
// retrievable afterwards. A separate endpoint scores plain-text resumes.
// The server is instrumented with OpenTelemetry for logging, tracing, and
// metrics.
//
// Functions:
//   - main: sets up configuration, telemetry, state, routes, and graceful
//     shutdown.
//   - VideoRouter: routes for uploading and retrieving videos and analyses.
//   - ResumeRouter: routes for resume scoring.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/interviewace/video-analysis/internal/core/services"
	"github.com/interviewace/video-analysis/internal/resume"
	"github.com/interviewace/video-analysis/internal/telemetry"
)

// serviceVersion is reported by the health endpoint.
const serviceVersion = "3.0"

func main() {
	telemetry.SetupLogging()
	slog.Info("Logging initialized")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := GetConfig()

	shutdownTelemetry, err := telemetry.SetupOpenTelemetry(ctx, cfg)
	if err != nil {
		slog.Error("Failed to setup OpenTelemetry", "error", err)
		log.Fatal(err)
	}
	slog.Info("Tracing initialized")

	InitState()
	slog.Info("Initialized State")

	r := gin.Default()
	r.Use(otelgin.Middleware(cfg.Application.Name))
	r.Use(cors.Default())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Interview video analysis backend is running")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "video-analysis",
			"version": serviceVersion,
		})
	})

	VideoRouter(r)
	ResumeRouter(r)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Application.Port),
		Handler:      r,
		ReadTimeout:  20 * time.Second,
		WriteTimeout: 10 * time.Minute, // uploads are analyzed synchronously
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to listen", "error", err)
		}
	}()
	slog.Info("Server Ready", "port", cfg.Application.Port)

	<-ctx.Done()
	slog.Info("Shutdown Server ...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server Shutdown Failed", "error", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		slog.Error("Telemetry Shutdown Failed", "error", err)
	}

	log.Println("Server exiting")
}

// VideoRouter sets up the routes for uploading and retrieving interview
// videos and their analysis artifacts.
//
// Endpoints:
//   - POST /upload-video: accepts a multipart "video" file, stores it, runs
//     the full analysis pipeline, persists the report, and returns it.
//   - GET /get-video/:filename: serves a stored video.
//   - GET /get-analysis/:filename: serves a stored analysis JSON.
func VideoRouter(r *gin.Engine) {
	r.POST("/upload-video", func(c *gin.Context) {
		fileHeader, err := c.FormFile("video")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No video file found in request"})
			return
		}
		if fileHeader.Filename == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No selected file"})
			return
		}

		upload, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Could not read upload"})
			return
		}
		defer func() { _ = upload.Close() }()

		fileName, err := state.mediaService.SaveUpload(upload, fileHeader.Filename)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, services.ErrNotAVideo) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"success": false, "error": err.Error()})
			return
		}

		report, err := state.mediaService.Analyze(c.Request.Context(), fileName)
		if err != nil {
			slog.Error("analysis failed", "file", fileName, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Analysis failed: %v", err),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"message":      "Video uploaded and analyzed",
			"video_url":    "/get-video/" + fileName,
			"analysis_url": "/get-analysis/" + state.mediaService.ReportFileName(fileName),
			"results":      report,
		})
	})

	serveArtifact := func(c *gin.Context) {
		path, err := state.mediaService.ResolveFile(c.Param("filename"))
		if err != nil {
			status := http.StatusNotFound
			if errors.Is(err, services.ErrBadName) {
				status = http.StatusBadRequest
			}
			c.Status(status)
			return
		}
		c.File(path)
	}
	r.GET("/get-video/:filename", serveArtifact)
	r.GET("/get-analysis/:filename", serveArtifact)
}

// ResumeRouter sets up the routes for resume scoring.
//
// Endpoints:
//   - POST /analyze-resume: accepts form fields (text, name, role,
//     experience) and returns the deterministic resume analysis.
//   - GET /resume-roles: lists the roles with a dedicated skill profile.
func ResumeRouter(r *gin.Engine) {
	r.POST("/analyze-resume", func(c *gin.Context) {
		text := c.PostForm("text")
		if len(text) < resume.MinTextLength {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Resume text too short or empty",
			})
			return
		}

		report := state.resumeService.Analyze(
			text,
			c.PostForm("name"),
			c.PostForm("role"),
			c.PostForm("experience"),
		)
		c.JSON(http.StatusOK, gin.H{"success": true, "results": report})
	})

	r.GET("/resume-roles", func(c *gin.Context) {
		roles := resume.SupportedRoles()
		c.JSON(http.StatusOK, gin.H{"roles": roles, "total": len(roles)})
	})
}
