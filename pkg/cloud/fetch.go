package cloud

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// maxBodySize caps metadata responses; identity documents are a few KiB.
const maxBodySize = 1 << 20

// errEmptyBody reports a 200 response without content.
var errEmptyBody = errors.New("empty response body")

// DefaultFunc produces the value returned when a metadata request fails. It is
// only evaluated on failure, so it may do work such as reading the hostname.
type DefaultFunc func() string

// Value returns a DefaultFunc that always yields s.
func Value(s string) DefaultFunc {
	return func() string { return s }
}

// Request describes one metadata lookup. It is built per call.
type Request struct {
	URL     string
	Params  url.Values
	Headers map[string]string
	Default DefaultFunc
	// Timeout bounds the whole request. Zero means the Fetcher's timeout.
	Timeout time.Duration
}

// Fetcher issues single, time-boxed GET requests against metadata services.
type Fetcher struct {
	Timeout time.Duration
}

// NewFetcher returns a Fetcher with the given per-request timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = defaultMetadataTimeout
	}
	return &Fetcher{Timeout: timeout}
}

// Fetch performs the request once and returns the trimmed response body.
// Any failure (timeout, connection error, non-200 status, empty body)
// yields the request's default. A nil default yields the empty string.
func (f *Fetcher) Fetch(ctx context.Context, req *Request) string {
	body, err := f.Get(ctx, req)
	if err == nil {
		return body
	}
	log.WithFields(log.Fields{
		"url":   req.URL,
		"error": err,
	}).Debug("metadata request failed, using default")
	if req.Default == nil {
		return ""
	}
	return req.Default()
}

// Get performs the request once without applying a default. An empty body
// is reported as an error.
func (f *Fetcher) Get(ctx context.Context, req *Request) (string, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = f.Timeout
	}
	if timeout <= 0 {
		timeout = defaultMetadataTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	target := req.URL
	if len(req.Params) > 0 {
		u, err := url.Parse(req.URL)
		if err != nil {
			return "", fmt.Errorf("parse %s: %w", req.URL, err)
		}
		q := u.Query()
		for k, vs := range req.Params {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
		target = u.String()
	}

	hreq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", target, err)
	}
	for k, v := range req.Headers {
		hreq.Header.Set(k, v)
	}

	// One transport per call; no connection outlives the request.
	transport := &http.Transport{DisableKeepAlives: true}
	defer transport.CloseIdleConnections()
	client := &http.Client{
		Transport: otelhttp.NewTransport(transport),
		Timeout:   timeout,
	}

	resp, err := client.Do(hreq)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", target, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("get %s: unexpected status %d", target, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", target, err)
	}
	body := strings.TrimSpace(string(data))
	if body == "" {
		return "", fmt.Errorf("get %s: %w", target, errEmptyBody)
	}
	return body, nil
}
