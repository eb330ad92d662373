package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// maxRemoteSize bounds the body read from a remote program.
const maxRemoteSize = 16 << 20

// FromURL fetches a program over HTTP.
func FromURL(ctx context.Context, client *http.Client, url string) (Source, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Source{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return Source{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Source{}, fmt.Errorf("fetch %s: %s", url, resp.Status)
	}
	return FromReader(url, io.LimitReader(resp.Body, maxRemoteSize))
}
