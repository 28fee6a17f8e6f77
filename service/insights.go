package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"cinesphere/model"
)

const (
	geminiBaseURL      = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel       = "gemini-2.5-flash"
	defaultMaxAttempts = 2
	defaultRetryBase   = 200 * time.Millisecond
	defaultRetryCap    = 1200 * time.Millisecond
)

// Client wraps HTTP access to the Gemini generateContent API. Every failure
// at this boundary degrades to a fixed fallback record; callers never see a
// hard error.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	model       string
	apiKey      string
	maxAttempts int
	retryBase   time.Duration
	retryCap    time.Duration
	debug       bool
}

// APIError is returned internally when the provider responds with a non-2xx
// status.
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	if e == nil {
		return "gemini api error"
	}
	return fmt.Sprintf("gemini api error: %s: %s", e.Status, e.Body)
}

// IsRateLimited reports whether the error represents a 429 from the API.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests
	}
	return false
}

// NewClient creates a new insight client. An empty apiKey is valid and
// short-circuits every request to the missing-key record. If httpClient is
// nil, a default client is used.
func NewClient(apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		httpClient:  httpClient,
		baseURL:     geminiBaseURL,
		model:       defaultModel,
		apiKey:      strings.TrimSpace(apiKey),
		maxAttempts: defaultMaxAttempts,
		retryBase:   defaultRetryBase,
		retryCap:    defaultRetryCap,
	}
}

// SetDebug enables stderr diagnostics for provider failures.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// MissingKeyInsights is the record served when no credential is configured.
func MissingKeyInsights() model.Insights {
	return model.Insights{
		Buzz:          "API Key missing. Unable to generate insights.",
		Mood:          []string{"Unknown"},
		ReviewSummary: "Details unavailable.",
	}
}

// FallbackInsights is the generic record served when the provider call
// fails for any reason.
func FallbackInsights() model.Insights {
	return model.Insights{
		Buzz:          "Experience the magic of cinema.",
		Mood:          []string{"Exciting", "Dramatic"},
		ReviewSummary: "Audiences are loving this latest release.",
	}
}

// MovieInsights generates marketing insights for a movie title. It never
// fails: with no key configured it returns the missing-key record without
// touching the network, and any provider error is logged and converted to
// the generic fallback.
func (c *Client) MovieInsights(ctx context.Context, movieTitle string) model.Insights {
	if c.apiKey == "" {
		return MissingKeyInsights()
	}

	insights, err := c.generate(ctx, movieTitle)
	if err != nil {
		c.logf("insight request for %q failed: %s", movieTitle, err.Error())
		return FallbackInsights()
	}
	return insights
}

type generateRequest struct {
	Contents         []content       `json:"contents"`
	GenerationConfig *generateConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateConfig struct {
	ResponseMimeType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// insightRecord is the provider-side shape: mood arrives as a single
// comma-separated string and is split into tags before leaving this package.
type insightRecord struct {
	Buzz          string `json:"buzz"`
	Mood          string `json:"mood"`
	ReviewSummary string `json:"reviewSummary"`
}

var insightSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"buzz": {"type": "STRING"},
		"mood": {"type": "STRING"},
		"reviewSummary": {"type": "STRING"}
	}
}`)

func insightPrompt(movieTitle string) string {
	return fmt.Sprintf(`Generate short, catchy marketing insights for the movie %q.
I need 3 specific things:
1. "buzz": A one-sentence hook on why this is a must-watch.
2. "mood": 3 adjectives describing the atmosphere (e.g., "Tense, Gripping, Dark").
3. "reviewSummary": A short 2-sentence fake critical consensus praising the visual effects and acting.`, movieTitle)
}

func (c *Client) generate(ctx context.Context, movieTitle string) (model.Insights, error) {
	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))

	payload := generateRequest{
		Contents: []content{{Parts: []part{{Text: insightPrompt(movieTitle)}}}},
		GenerationConfig: &generateConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   insightSchema,
		},
	}

	var decoded generateResponse
	if err := c.postJSON(ctx, endpoint, payload, &decoded); err != nil {
		return model.Insights{}, err
	}

	text := candidateText(decoded)
	if text == "" {
		return model.Insights{}, errors.New("no response from AI")
	}

	var record insightRecord
	if err := json.Unmarshal([]byte(text), &record); err != nil {
		return model.Insights{}, fmt.Errorf("decode insight payload: %w", err)
	}

	return model.Insights{
		Buzz:          record.Buzz,
		Mood:          splitMood(record.Mood),
		ReviewSummary: record.ReviewSummary,
	}, nil
}

func candidateText(res generateResponse) string {
	for _, candidate := range res.Candidates {
		for _, p := range candidate.Content.Parts {
			if text := strings.TrimSpace(p.Text); text != "" {
				return text
			}
		}
	}
	return ""
}

// splitMood turns the provider's comma-separated adjective list into tags.
func splitMood(raw string) []string {
	var tags []string
	for _, piece := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(piece); tag != "" {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return []string{"Unknown"}
	}
	return tags
}

func (c *Client) postJSON(ctx context.Context, endpoint string, in any, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	maxAttempts := c.maxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		res, err := c.httpClient.Do(req)
		if err != nil {
			if c.shouldRetryNetworkError(err) && attempt < maxAttempts {
				if waitErr := c.waitRetry(ctx, attempt); waitErr != nil {
					return waitErr
				}
				continue
			}
			return fmt.Errorf("request failed: %w", err)
		}

		if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
			snippet, _ := io.ReadAll(io.LimitReader(res.Body, 8<<10))
			_ = res.Body.Close()

			apiErr := &APIError{
				StatusCode: res.StatusCode,
				Status:     res.Status,
				Endpoint:   endpoint,
				Body:       strings.TrimSpace(string(snippet)),
			}
			if c.shouldRetryStatus(res.StatusCode) && attempt < maxAttempts {
				if waitErr := c.waitRetry(ctx, attempt); waitErr != nil {
					return waitErr
				}
				continue
			}
			return apiErr
		}

		dec := json.NewDecoder(res.Body)
		err = dec.Decode(out)
		_ = res.Body.Close()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	return errors.New("request failed after retries")
}

func (c *Client) shouldRetryStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func (c *Client) shouldRetryNetworkError(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func (c *Client) waitRetry(ctx context.Context, attempt int) error {
	delay := c.retryDelay(attempt)
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) retryDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	base := c.retryBase
	if base <= 0 {
		base = defaultRetryBase
	}
	cap := c.retryCap
	if cap <= 0 {
		cap = defaultRetryCap
	}

	delay := base
	for i := 1; i < attempt; i++ {
		if delay >= cap/2 {
			return cap
		}
		delay *= 2
	}
	if delay > cap {
		return cap
	}
	return delay
}

func (c *Client) logf(format string, args ...any) {
	if !c.debug {
		return
	}
	fmt.Fprintf(os.Stderr, "[insights] "+format+"\n", args...)
}
