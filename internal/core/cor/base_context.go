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

// Package cor provides the building blocks for the analysis pipeline. This
// file defines `BaseContext`, the default Context implementation: a property
// bag for one run holding arbitrary data, errors keyed by command name, and
// the temporary files (notably the extracted audio track) that must be
// deleted when the run ends.
//
// Temp-file deletion retries under a short backoff because the decoder
// process on some platforms releases its file handle slightly after exit; a
// deletion that still fails after the last attempt is logged and abandoned,
// never escalated.
package cor

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Deletion retry policy for temporary files.
const (
	tempFileDeleteAttempts = 3
	tempFileDeleteBackoff  = 250 * time.Millisecond
)

// BaseContext is the default implementation of the Context interface. It
// holds the shared state for one run of the pipeline.
type BaseContext struct {
	data      map[string]interface{} // Arbitrary key-value data shared between commands.
	errors    map[string]error       // Errors keyed by the command name that produced them.
	tempFiles []string               // Paths of temporary files to clean up at the end of the run.
	context   context.Context        // Standard Go context for cancellation and span propagation.
}

// NewBaseContext creates an empty context ready for a new run.
func NewBaseContext() Context {
	return &BaseContext{
		data:      make(map[string]interface{}),
		errors:    make(map[string]error),
		tempFiles: make([]string, 0),
	}
}

// SetContext sets the underlying standard Go context.
func (c *BaseContext) SetContext(context context.Context) {
	c.context = context
}

// GetContext retrieves the underlying standard Go context.
func (c *BaseContext) GetContext() context.Context {
	return c.context
}

// Close removes every temporary file registered during the run. Each
// deletion is attempted up to tempFileDeleteAttempts times with
// tempFileDeleteBackoff between attempts; a file that is already gone counts
// as deleted. Failure after the final attempt is logged and the loop moves
// on — cleanup never fails the run.
func (c *BaseContext) Close() {
	for _, file := range c.GetTempFiles() {
		var err error
		for attempt := 0; attempt < tempFileDeleteAttempts; attempt++ {
			if attempt > 0 {
				time.Sleep(tempFileDeleteBackoff)
			}
			err = os.Remove(file)
			if err == nil || os.IsNotExist(err) {
				err = nil
				break
			}
		}
		if err != nil {
			slog.Warn("failed to remove temporary file", "file", file, "error", err)
		}
	}
}

// Add stores a key-value pair in the context's data map. Returns the context
// for fluent chaining.
func (c *BaseContext) Add(key string, value interface{}) Context {
	c.data[key] = value
	return c
}

// AddTempFile registers a file path for cleanup at the end of the run.
func (c *BaseContext) AddTempFile(file string) {
	c.tempFiles = append(c.tempFiles, file)
}

// GetTempFiles returns the slice of all registered temporary file paths.
func (c *BaseContext) GetTempFiles() []string {
	return c.tempFiles
}

// AddError records an error in the context, keyed by the command name.
func (c *BaseContext) AddError(key string, err error) {
	c.errors[key] = err
}

// GetErrors returns the map of all errors collected during the run.
func (c *BaseContext) GetErrors() map[string]error {
	return c.errors
}

// Get retrieves a value by key, or nil when the key does not exist.
func (c *BaseContext) Get(key string) interface{} {
	return c.data[key]
}

// Remove deletes a key-value pair from the context's data map.
func (c *BaseContext) Remove(key string) {
	delete(c.data, key)
}

// HasErrors reports whether any errors have been recorded.
func (c *BaseContext) HasErrors() bool {
	return len(c.errors) > 0
}
