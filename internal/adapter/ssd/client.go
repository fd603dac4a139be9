// Package ssd downloads fresh feed snapshots from the JPL SSD/CNEOS APIs
// so a run can work from current data instead of a checked-in snapshot.
package ssd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Default query endpoints. The object query mirrors the columns the CSV
// extractor requires; the approach query asks for the full catalog rather
// than the API's 60-day default window.
const (
	defaultObjectURL   = "https://ssd-api.jpl.nasa.gov/sbdb_query.api?fields=pdes,name,diameter,pha&sb-group=neo&fullname=false&www=1"
	defaultApproachURL = "https://ssd-api.jpl.nasa.gov/cad.api?date-min=1900-01-01&date-max=2100-01-01"
)

// Client fetches feed documents over HTTP and stages them on disk.
type Client struct {
	httpClient  *http.Client
	objectURL   string
	approachURL string
	logger      *slog.Logger
}

// NewClient creates a feed-refresh client with the given request timeout.
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		objectURL:   defaultObjectURL,
		approachURL: defaultApproachURL,
		logger:      logger,
	}
}

// RefreshObjects downloads the object feed to destPath.
func (c *Client) RefreshObjects(ctx context.Context, destPath string) error {
	return c.download(ctx, c.objectURL, destPath, "object")
}

// RefreshApproaches downloads the close-approach feed to destPath.
func (c *Client) RefreshApproaches(ctx context.Context, destPath string) error {
	return c.download(ctx, c.approachURL, destPath, "approach")
}

// download fetches the document into a temp file and renames it into place,
// so a failed fetch never clobbers the previous snapshot.
func (c *Client) download(ctx context.Context, srcURL, destPath, feed string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s feed: %w", feed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("ssd API error: status %d: %s", resp.StatusCode, body)
	}

	tmp, err := os.CreateTemp(filepath.Dir(destPath), filepath.Base(destPath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("stage %s feed: %w", feed, err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, resp.Body)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("write %s feed: %w", feed, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s feed: %w", feed, err)
	}
	if err := os.Rename(tmp.Name(), destPath); err != nil {
		return fmt.Errorf("install %s feed: %w", feed, err)
	}

	c.logger.Info("feed refreshed", "feed", feed, "path", destPath, "bytes", n)
	return nil
}
