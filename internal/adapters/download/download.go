package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-git/go-billy/v5"

	"github.com/Alazar42/CelerisProjectStarter/internal/ports"
)

const chunkSize = 32 * 1024

// HTTPDownloader streams archives over HTTP.
type HTTPDownloader struct {
	client *http.Client
}

// NewHTTPDownloader bounds connecting and waiting for response headers.
// Reading the body is bounded only by the caller's context.
func NewHTTPDownloader(connectTimeout, responseHeaderTimeout time.Duration) *HTTPDownloader {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: connectTimeout, KeepAlive: 30 * time.Second}).DialContext
	transport.TLSHandshakeTimeout = connectTimeout
	transport.ResponseHeaderTimeout = responseHeaderTimeout

	return &HTTPDownloader{client: &http.Client{Transport: transport}}
}

// Download writes the response body of url to dst and returns the number of bytes written.
func (d *HTTPDownloader) Download(ctx context.Context, fs billy.Filesystem, url, dst string, onProgress ports.ProgressFunc) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to request %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("failed to download %s: unexpected status %s", url, resp.Status)
	}

	out, err := fs.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", dst, err)
	}

	total, copyErr := copyChunks(ctx, out, resp.Body, onProgress)
	if err := out.Close(); err != nil && copyErr == nil {
		copyErr = fmt.Errorf("failed to close %s: %w", dst, err)
	}
	return total, copyErr
}

func copyChunks(ctx context.Context, dst io.Writer, src io.Reader, onProgress ports.ProgressFunc) (int64, error) {
	buf := make([]byte, chunkSize)
	var total int64

	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		n, readErr := src.Read(buf)
		if n > 0 {
			if _, err := dst.Write(buf[:n]); err != nil {
				return total, fmt.Errorf("failed to write archive: %w", err)
			}
			total += int64(n)
			if onProgress != nil {
				onProgress(total)
			}
		}
		if errors.Is(readErr, io.EOF) {
			return total, nil
		}
		if readErr != nil {
			return total, fmt.Errorf("failed to read response body: %w", readErr)
		}
	}
}
