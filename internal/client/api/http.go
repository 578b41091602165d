package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aipapergrader/papergrader/internal/client/models"
	"github.com/aipapergrader/papergrader/internal/logging"
)

// HTTPClient is the concrete Client over the grading service's HTTP API.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	log     logging.Logger

	mu    sync.RWMutex
	token string
}

func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		log:     log.With("component", "api"),
	}
}

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

// SetToken installs the bearer token attached to every subsequent request.
// An empty token removes the authorization header.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do issues one request and decodes the JSON response into out (when non-nil).
// Transport failures map to ErrUnavailable, 401/403 to ErrUnauthorized, and
// any other non-2xx status to *ServerError.
func (c *HTTPClient) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debug(ctx, "sending request", "method", method, "path", path, "request_id", requestID)

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.log.Warn(ctx, "request rejected", "path", path, "status", resp.StatusCode, "request_id", requestID)
		return fmt.Errorf("%w: %s", ErrUnauthorized, serverMessage(data))
	case resp.StatusCode >= 400:
		return &ServerError{Status: resp.StatusCode, Message: serverMessage(data)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

// serverMessage extracts the error detail from a FastAPI-style
// {"detail": ...} body, falling back to the raw body text.
func serverMessage(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Detail) > 0 {
		var s string
		if err := json.Unmarshal(payload.Detail, &s); err == nil {
			return s
		}
		return string(payload.Detail)
	}
	return strings.TrimSpace(string(body))
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/login", "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()), &resp)
	if err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (c *HTTPClient) Register(ctx context.Context, email, password string, role models.Role) error {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
		"role":     string(role),
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/auth/register", "application/json", bytes.NewReader(payload), nil)
}

func (c *HTTPClient) ListTests(ctx context.Context) ([]models.Test, error) {
	var tests []models.Test
	if err := c.do(ctx, http.MethodGet, "/tests", "", nil, &tests); err != nil {
		return nil, err
	}
	return tests, nil
}

func (c *HTTPClient) CreateTest(ctx context.Context, name, description string) (*models.Test, error) {
	body := map[string]string{"name": name}
	if description != "" {
		body["description"] = description
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var created models.Test
	if err := c.do(ctx, http.MethodPost, "/tests", "application/json", bytes.NewReader(payload), &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) ListQuestions(ctx context.Context, testID int64) ([]models.Question, error) {
	var questions []models.Question
	path := fmt.Sprintf("/tests/%d/questions", testID)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (c *HTTPClient) CreateQuestion(ctx context.Context, testID int64, payload QuestionPayload) (*models.Question, error) {
	fields := map[string]string{"prompt": payload.Prompt}
	if payload.AnswerText != "" {
		fields["model_answer_text"] = payload.AnswerText
	}
	body, contentType, err := multipartBody(fields, "model_answer_image", payload.AnswerImage)
	if err != nil {
		return nil, err
	}

	var created models.Question
	path := fmt.Sprintf("/tests/%d/questions", testID)
	if err := c.do(ctx, http.MethodPost, path, contentType, body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) GradeSubmission(ctx context.Context, questionID int64, payload SubmissionPayload) (*models.ScoreResult, error) {
	fields := map[string]string{"student_name": payload.StudentName}
	if payload.AnswerText != "" {
		fields["student_answer_text"] = payload.AnswerText
	}
	body, contentType, err := multipartBody(fields, "student_answer_image", payload.AnswerImage)
	if err != nil {
		return nil, err
	}

	var result models.ScoreResult
	path := fmt.Sprintf("/grading/questions/%d/score", questionID)
	if err := c.do(ctx, http.MethodPost, path, contentType, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// multipartBody encodes text fields plus an optional file part and returns
// the body together with its content type (which carries the boundary).
func multipartBody(fields map[string]string, fileField string, att *Attachment) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}
	if att != nil {
		part, err := w.CreateFormFile(fileField, att.Name)
		if err != nil {
			return nil, "", fmt.Errorf("create file part: %w", err)
		}
		if _, err := part.Write(att.Data); err != nil {
			return nil, "", fmt.Errorf("write file part: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
