package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const questionQuery = `query questionData($titleSlug: String!) {
  question(titleSlug: $titleSlug) {
    content
    sampleTestCase
    exampleTestcases
    codeSnippets { langSlug code }
  }
}`

// CatalogClient fetches the problem list and questions from LeetCode
type CatalogClient struct {
	client     *http.Client
	baseURL    string
	graphqlURL string
	creds      Credentials
	retries    int
	backoff    time.Duration
	converter  *md.Converter
	logger     *zap.Logger
}

// NewCatalogClient creates a client for the configured endpoints
func NewCatalogClient(settings *Settings, creds Credentials, logger *zap.Logger) *CatalogClient {
	return &CatalogClient{
		client:     &http.Client{Timeout: settings.Catalog.Timeout},
		baseURL:    strings.TrimRight(settings.URLs.Base, "/"),
		graphqlURL: settings.URLs.GraphQL,
		creds:      creds,
		retries:    settings.Catalog.Retries,
		backoff:    time.Second,
		converter:  md.NewConverter("", true, nil),
		logger:     logger,
	}
}

// FetchProblems downloads the problem list of one category
func (c *CatalogClient) FetchProblems(ctx context.Context, category string) ([]Problem, error) {
	url := fmt.Sprintf("%s/api/problems/%s/", c.baseURL, category)
	body, err := c.doWithRetries(ctx, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	})
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("malformed problem list from %s", url)
	}

	pairs := gjson.GetBytes(body, "stat_status_pairs").Array()
	problems := make([]Problem, 0, len(pairs))
	for _, pair := range pairs {
		stat := pair.Get("stat")
		problems = append(problems, Problem{
			ID:       int(stat.Get("frontend_question_id").Int()),
			Slug:     stat.Get("question__title_slug").String(),
			Name:     stat.Get("question__title").String(),
			Category: category,
			Level:    Difficulty(pair.Get("difficulty.level").Int()),
			Percent:  acceptance(stat.Get("total_acs").Float(), stat.Get("total_submitted").Float()),
			Starred:  pair.Get("is_favor").Bool(),
			Locked:   pair.Get("paid_only").Bool(),
		})
	}
	return problems, nil
}

// FetchQuestion downloads the statement, test cases and starter code of a
// problem. With bestEffort, missing content or test cases are tolerated.
func (c *CatalogClient) FetchQuestion(ctx context.Context, slug string, bestEffort bool) (*Question, error) {
	payload, err := json.Marshal(map[string]any{
		"operationName": "questionData",
		"query":         questionQuery,
		"variables":     map[string]string{"titleSlug": slug},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding question query: %w", err)
	}

	body, err := c.doWithRetries(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Referer", fmt.Sprintf("%s/problems/%s/", c.baseURL, slug))
		return req, nil
	})
	if err != nil {
		return nil, err
	}
	return c.parseQuestion(slug, body, bestEffort)
}

func (c *CatalogClient) parseQuestion(slug string, body []byte, bestEffort bool) (*Question, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("malformed question payload for %s", slug)
	}
	question := gjson.GetBytes(body, "data.question")
	if !question.Exists() || question.Type == gjson.Null {
		return nil, fmt.Errorf("question %s not found", slug)
	}

	content := question.Get("content").String()
	if content == "" && !bestEffort {
		return nil, fmt.Errorf("question %s has no content", slug)
	}
	statement, err := c.converter.ConvertString(content)
	if err != nil {
		if !bestEffort {
			return nil, fmt.Errorf("converting question %s: %w", slug, err)
		}
		c.logger.Debug("Keeping raw question content", zap.String("slug", slug), zap.Error(err))
		statement = content
	}

	q := &Question{Statement: statement}
	q.TestCases = question.Get("exampleTestcases").String()
	if q.TestCases == "" {
		q.TestCases = question.Get("sampleTestCase").String()
	}
	question.Get("codeSnippets").ForEach(func(_, snippet gjson.Result) bool {
		q.Defs = append(q.Defs, LanguageDef{
			Lang: snippet.Get("langSlug").String(),
			Code: snippet.Get("code").String(),
		})
		return true
	})
	return q, nil
}

// doWithRetries performs a request, retrying rate limited responses with
// exponential backoff.
func (c *CatalogClient) doWithRetries(ctx context.Context, newRequest func() (*http.Request, error)) ([]byte, error) {
	var lastErr error
	attempts := max(c.retries, 1)
	for i := 0; i < attempts; i++ {
		req, err := newRequest()
		if err != nil {
			return nil, err
		}
		body, err := c.do(req)
		if err == nil {
			return body, nil
		}
		lastErr = err

		httpErr, ok := err.(*HTTPError)
		if !ok || httpErr.StatusCode != http.StatusTooManyRequests {
			return nil, err
		}
		if i == attempts-1 {
			break
		}
		c.logger.Debug("Rate limited, backing off", zap.String("url", httpErr.URL), zap.Int("attempt", i+1))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.backoff * time.Duration(1<<uint(i))):
		}
	}
	return nil, fmt.Errorf("exceeded max retries after %d attempts: %w", attempts, lastErr)
}

func (c *CatalogClient) do(req *http.Request) ([]byte, error) {
	req.Header.Set("User-Agent", "leetcode-workspace")
	if c.creds.Session != "" {
		req.AddCookie(&http.Cookie{Name: "LEETCODE_SESSION", Value: c.creds.Session})
	}
	if c.creds.CSRF != "" {
		req.AddCookie(&http.Cookie{Name: "csrftoken", Value: c.creds.CSRF})
		req.Header.Set("X-CSRFToken", c.creds.CSRF)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", req.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: req.URL.String()}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}

// acceptance returns the accepted/submitted ratio as a percentage rounded to
// two decimals
func acceptance(accepted, submitted float64) float64 {
	if submitted <= 0 {
		return 0
	}
	return math.Round(accepted/submitted*10000) / 100
}
