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

package perception

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"
)

const frameFieldName = "frame"

// sidecarClient is the shared transport for the model sidecars: multipart
// JPEG in, JSON out, with the permanent-unavailable latch.
type sidecarClient struct {
	name        string
	endpoint    string
	httpClient  *http.Client
	unavailable atomic.Bool
}

func newSidecarClient(name, endpoint string, timeout time.Duration) *sidecarClient {
	client := &sidecarClient{
		name:       name,
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
	if endpoint == "" {
		slog.Warn("perception sidecar not configured", "sidecar", name)
		client.unavailable.Store(true)
	}
	return client
}

func (c *sidecarClient) available() bool {
	return !c.unavailable.Load()
}

// post sends one JPEG frame and decodes the JSON reply into out.
//
// A transport-level failure (the sidecar cannot be dialed) latches the
// client unavailable and returns ErrUnavailable. An HTTP-level failure is
// returned as a plain error so the caller can skip just this frame.
func (c *sidecarClient) post(ctx context.Context, jpeg []byte, out interface{}) error {
	if !c.available() {
		return ErrUnavailable
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(frameFieldName, "frame.jpg")
	if err != nil {
		return fmt.Errorf("build multipart frame: %w", err)
	}
	if _, err := part.Write(jpeg); err != nil {
		return fmt.Errorf("write multipart frame: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close multipart frame: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return fmt.Errorf("build sidecar request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && ctx.Err() == nil {
			c.unavailable.Store(true)
			slog.Warn("perception sidecar unreachable, disabling for this process",
				"sidecar", c.name, "endpoint", c.endpoint, "error", err)
			return ErrUnavailable
		}
		return fmt.Errorf("sidecar %s request: %w", c.name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sidecar %s returned %d: %s", c.name, resp.StatusCode, bytes.TrimSpace(payload))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("sidecar %s reply is not valid JSON: %w", c.name, err)
	}
	return nil
}
