package source

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"net"
	"net/http"
	"strings"
	"time"
)

const defaultFetchTimeout = 10 * time.Second

// userAgent mimics a desktop browser: some feed servers reject obvious bots.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

var feedRoots = []string{"<rss", "<feed", "<rdf:RDF"}

// Client retrieves raw feed documents over HTTP and validates that the
// response plausibly is an RSS/Atom feed. It never retries on its own, retry
// policy belongs to callers.
type Client struct {
	http    *http.Client
	timeout time.Duration
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// FetchRaw downloads the document at url. It fails with a TimeoutError when
// the request exceeds the fetch timeout, a StatusError on a non-200 response,
// and a FetchError wrapping ErrEmptyResponse or ErrInvalidFormat when the
// body does not look like a feed.
func (c *Client) FetchRaw(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{URL: url}
		}
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{URL: url}
		}
		return nil, &FetchError{URL: url, Err: err}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &FetchError{URL: url, Err: ErrEmptyResponse}
	}
	if !looksLikeFeed(resp.Header.Get("Content-Type"), body) {
		return nil, &FetchError{URL: url, Err: ErrInvalidFormat}
	}

	return body, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// looksLikeFeed accepts a response when its content type indicates XML or the
// body starts with a recognizable feed root element.
func looksLikeFeed(contentType string, body []byte) bool {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && strings.Contains(mediaType, "xml") {
		return true
	}

	head := string(body[:min(len(body), 1024)])
	for _, root := range feedRoots {
		if strings.Contains(head, root) {
			return true
		}
	}
	return false
}
