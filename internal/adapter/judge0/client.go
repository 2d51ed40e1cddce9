package judge0

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"gitlab.com/code-round.net/internal/config"
	"gitlab.com/code-round.net/internal/core/ports/secondary"
	"gitlab.com/code-round.net/internal/domain"
	"gitlab.com/code-round.net/internal/static/errs"
)

const submissionsPath = "/submissions?base64_encoded=true&wait=true"

// maxErrorBody caps how much of a failed response ends up in the cause.
const maxErrorBody = 512

var _ secondary.JudgeClient = (*Client)(nil)

type submissionRequest struct {
	SourceCode string `json:"source_code"`
	LanguageID int    `json:"language_id"`
	Stdin      string `json:"stdin"`
}

// Client talks to a Judge0 instance synchronously
type Client struct {
	baseURL   string
	authToken string
	http      *http.Client
}

func NewClient(cfg *config.JudgeConfig) *Client {
	return &Client{
		baseURL:   strings.TrimRight(cfg.Url, "/"),
		authToken: cfg.AuthToken,
		http:      &http.Client{Timeout: cfg.Timeout},
	}
}

// Execute posts the harness with wait=true, so the response already carries the verdict.
func (c *Client) Execute(ctx context.Context, source string, languageID int) (*domain.JudgeResponse, error) {
	body, err := json.Marshal(submissionRequest{
		SourceCode: base64.StdEncoding.EncodeToString([]byte(source)),
		LanguageID: languageID,
		Stdin:      base64.StdEncoding.EncodeToString(nil),
	})
	if err != nil {
		return nil, &errs.DispatchError{Cause: "failed to encode submission", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+submissionsPath, bytes.NewReader(body))
	if err != nil {
		return nil, &errs.DispatchError{Cause: "failed to build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("X-Auth-Token", c.authToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errs.DispatchError{Cause: err.Error(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		cause := fmt.Sprintf("judge responded with status %d", resp.StatusCode)
		if msg := strings.TrimSpace(string(snippet)); msg != "" {
			cause += ": " + msg
		}
		return nil, &errs.DispatchError{Cause: cause}
	}

	var out domain.JudgeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &errs.DispatchError{Cause: "failed to decode judge response", Err: err}
	}
	return &out, nil
}
