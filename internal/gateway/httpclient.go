package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"paradisian/internal/session"
	apperrors "paradisian/pkg/errors"
	"paradisian/pkg/model"
)

type request struct {
	method      string
	path        string
	body        []byte
	contentType string
	authed      bool
}

// do performs one backend request. Bodies are held as byte slices so the
// single authorized replay after a token refresh can rebuild the reader.
func (g *Gateway) do(ctx context.Context, sess SessionContext, req request) (*model.Envelope, error) {
	if req.authed && sess != nil && sess.RefreshToken() != "" &&
		session.TokenExpired(sess.Token(), g.now()) {
		// Token is known-stale: refresh before the first attempt rather than
		// burning a round trip on a guaranteed 403.
		if err := g.refreshSession(ctx, sess); err != nil {
			g.log.Warn("Proactive token refresh failed, proceeding with stored token", "error", err)
		}
	}

	env, status, err := g.send(ctx, sess, req)
	if err != nil {
		return nil, err
	}

	if (status == http.StatusUnauthorized || status == http.StatusForbidden) && req.authed && sess != nil {
		// Single-retry policy: refresh the token and replay exactly once. A
		// second authorization failure is surfaced unchanged.
		if refreshErr := g.refreshSession(ctx, sess); refreshErr != nil {
			g.log.Warn("Token refresh after authorization failure failed", "path", req.path, "error", refreshErr)
			return nil, apperrors.FromBackendStatus(status, errorMessage(env, status))
		}
		g.log.Info("Replaying request after token refresh", "method", req.method, "path", req.path)
		env, status, err = g.send(ctx, sess, req)
		if err != nil {
			return nil, err
		}
	}

	if status >= http.StatusBadRequest {
		return nil, apperrors.FromBackendStatus(status, errorMessage(env, status))
	}
	return env, nil
}

func (g *Gateway) send(ctx context.Context, sess SessionContext, req request) (*model.Envelope, int, error) {
	var reqBody io.Reader
	if req.body != nil {
		reqBody = bytes.NewReader(req.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, g.baseURL+req.path, reqBody)
	if err != nil {
		return nil, 0, apperrors.Network("failed to create request", err)
	}
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if req.authed && sess != nil && sess.Token() != "" {
		httpReq.Header.Set("Authorization", "Bearer "+sess.Token())
	}

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, 0, apperrors.Network("request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, apperrors.Network("failed to read response body", err)
	}

	env := &model.Envelope{}
	if len(respBody) > 0 {
		// Non-envelope bodies (proxies, error pages) fall through to
		// status-only classification.
		_ = json.Unmarshal(respBody, env)
	}
	return env, resp.StatusCode, nil
}

// getJSON issues an unauthenticated GET whose response is not the standard
// envelope, e.g. the bare room-type list.
func (g *Gateway) getJSON(ctx context.Context, path string, target any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path, nil)
	if err != nil {
		return apperrors.Network("failed to create request", err)
	}

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return apperrors.Network("request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Network("failed to read response body", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		env := &model.Envelope{}
		_ = json.Unmarshal(respBody, env)
		return apperrors.FromBackendStatus(resp.StatusCode, errorMessage(env, resp.StatusCode))
	}
	if err := json.Unmarshal(respBody, target); err != nil {
		return apperrors.Network("failed to decode response", err)
	}
	return nil
}

func marshalBody(body any) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, apperrors.Internal("failed to marshal request body", err)
	}
	return data, nil
}

// multipartBody encodes the room form the way the backend's multipart
// endpoints expect it: text fields plus an optional photo part.
func multipartBody(fields map[string]string, photoName string, photo []byte) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := w.WriteField(key, value); err != nil {
			return nil, "", apperrors.Internal("failed to encode form field "+key, err)
		}
	}
	if len(photo) > 0 {
		part, err := w.CreateFormFile("photo", photoName)
		if err != nil {
			return nil, "", apperrors.Internal("failed to encode photo part", err)
		}
		if _, err := part.Write(photo); err != nil {
			return nil, "", apperrors.Internal("failed to write photo part", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", apperrors.Internal("failed to finalize multipart body", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func errorMessage(env *model.Envelope, status int) string {
	if env != nil && env.Message != "" {
		return env.Message
	}
	return fmt.Sprintf("backend returned status %d", status)
}

func defaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
