package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

const (
	userAgent = "cyber-feed-bot/1.0"
	// Ленты небольшие, больше не читаем
	maxBodySize = 10 << 20
)

// GET запрос от имени стратегии. Любой статус кроме 2xx считается ошибкой.
func get(ctx context.Context, client *http.Client, strategy, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", strategy, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, &TransportError{Strategy: strategy, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{Strategy: strategy, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &TransportError{Strategy: strategy, Err: err}
	}

	return body, nil
}
