// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package report

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/specialistvlad/hilseq/internal/ctxlog"
)

// Upload PUTs the file at path to a pre-signed URL, such as an S3 upload URL.
// A nil client means http.DefaultClient.
func Upload(ctx context.Context, client *http.Client, path, url string) error {
	if client == nil {
		client = http.DefaultClient
	}
	logger := ctxlog.FromContext(ctx).With("action", "upload")

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open report '%s': %w", path, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to get file stats for '%s': %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, file)
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = stat.Size()

	logger.Info("Uploading report.", "source", path, "size", humanize.Bytes(uint64(stat.Size())), "contentType", contentType)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("upload failed with status: %s", resp.Status)
	}

	logger.Info("Report uploaded.", "status", resp.Status)
	return nil
}
