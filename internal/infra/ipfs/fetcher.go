package ipfs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetcher downloads the voice sample from a content-addressed gateway URL.
type Fetcher struct {
	url        string
	httpClient *http.Client
}

func NewFetcher(url string) *Fetcher {
	return &Fetcher{
		url:        url,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching voice sample: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway error: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading sample: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty sample from %s", f.url)
	}

	return data, nil
}
