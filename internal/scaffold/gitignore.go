package scaffold

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"
)

// GitignoreURL serves a Django-specific .gitignore. The response is plain
// text, ready to write as-is.
const GitignoreURL = "https://www.toptal.com/developers/gitignore/api/django"

// fetchTimeout bounds the .gitignore download. A hang here must not stall
// the whole run; expiry falls back to the bundled default.
const fetchTimeout = 5 * time.Second

// FetchGitignore downloads the Django .gitignore. Any failure (network,
// non-200 status, slow response past the timeout) is returned to the
// caller, which is expected to fall back to the bundled default.
func FetchGitignore(ctx context.Context, url string) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build gitignore request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gitignore response: %w", err)
	}
	return body, nil
}

// WriteGitignore writes .gitignore into dir, preferring content fetched
// from url and falling back to the bundled default. The returned bool
// reports whether the fallback was used; only a failed write is an error.
func WriteGitignore(ctx context.Context, dir, url string) (fellBack bool, err error) {
	content, fetchErr := FetchGitignore(ctx, url)
	if fetchErr != nil {
		content, err = readEmbedded("gitignore-fallback.txt")
		if err != nil {
			return true, err
		}
		fellBack = true
	}

	if err := WriteFile(filepath.Join(dir, ".gitignore"), content, 0o644); err != nil {
		return fellBack, err
	}
	return fellBack, nil
}
