// ABOUTME: Request builders and response decoding shared by all API calls
// ABOUTME: JSON bodies get default headers, multipart bodies take the writer's content type

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// newRequest builds a request with default JSON headers
func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// formFile is a file part of a multipart body
type formFile struct {
	field string
	path  string
}

// newMultipartRequest builds a multipart/form-data POST. The content type,
// including the boundary, always comes from the multipart writer.
func (c *Client) newMultipartRequest(ctx context.Context, path string, fields [][2]string, files ...formFile) (*http.Request, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return nil, fmt.Errorf("failed to encode form field %s: %w", f[0], err)
		}
	}
	for _, f := range files {
		if err := writeFilePart(mw, f); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req, nil
}

func writeFilePart(mw *multipart.Writer, f formFile) error {
	src, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", f.path, err)
	}
	defer src.Close()

	part, err := mw.CreateFormFile(f.field, filepath.Base(f.path))
	if err != nil {
		return fmt.Errorf("failed to encode form file: %w", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("reading %s: %w", f.path, err)
	}
	return nil
}

// do sends the request and decodes a 2xx JSON body into out (when non-nil)
func (c *Client) do(ctx context.Context, req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return handleErrorResponse(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// doEnvelope sends the request and decodes the {success, data} envelope. The
// payload (data when present, else the whole body) is decoded into out when
// non-nil.
func (c *Client) doEnvelope(ctx context.Context, req *http.Request, out any) (*Envelope, error) {
	var raw json.RawMessage
	if err := c.do(ctx, req, &raw); err != nil {
		return nil, err
	}

	env, err := parseEnvelope(raw)
	if err != nil || out == nil {
		return env, err
	}

	src := raw
	if len(env.Data) > 0 && string(env.Data) != "null" {
		src = env.Data
	}
	if err := json.Unmarshal(src, out); err != nil {
		return env, fmt.Errorf("invalid response from backend: %w", err)
	}
	return env, nil
}

// parseEnvelope reads the envelope fields of a 2xx body. Bodies without a
// success field count as successful; success:false is reported as an APIError.
func parseEnvelope(raw json.RawMessage) (*Envelope, error) {
	env := &Envelope{Success: true}
	if len(raw) == 0 {
		return env, nil
	}

	var probe errorResponse
	if err := json.Unmarshal(raw, &probe); err != nil {
		// not an object, e.g. a bare list
		return env, nil
	}
	_ = json.Unmarshal(raw, env)

	if probe.Success != nil && !*probe.Success {
		msg := probe.Message
		if msg == "" {
			msg = probe.Error
		}
		if msg == "" {
			msg = "request was not successful"
		}
		return env, &APIError{StatusCode: http.StatusOK, Message: msg}
	}
	env.Success = true
	return env, nil
}
