package image

import (
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

const (
	// Document engines place bitmaps at 96 DPI when no physical size is
	// embedded; 1 inch = 2.54 cm.
	assumedDPI = 96.0
	cmPerInch  = 2.54

	maxImageBytes = 32 << 20
)

// Fetcher downloads remote images. Every failure is absorbed: a slow or
// unreachable host costs one image, never the document.
type Fetcher struct {
	client *http.Client
	logger log.Logger
}

// NewFetcher ...
func NewFetcher(timeout time.Duration, logger log.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Fetch retrieves url. Network failure or a non-success status yields
// (nil, false), logged, never an error.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, bool) {
	logger := log.WithPrefix(f.logger, "method", "Fetch", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		level.Warn(logger).Log("msg", "build request", "err", err)
		return nil, false
	}
	resp, err := f.client.Do(req)
	if err != nil {
		level.Warn(logger).Log("msg", "download image", "err", err)
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		level.Warn(logger).Log("msg", "download image", "status", resp.StatusCode)
		return nil, false
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		level.Warn(logger).Log("msg", "read image body", "err", err)
		return nil, false
	}
	if len(data) == 0 {
		level.Warn(logger).Log("msg", "empty image body")
		return nil, false
	}
	return data, true
}

// FitToWidth computes display dimensions in centimeters so the image spans
// widthCm with its aspect ratio preserved, assuming 96 DPI pixels. When the
// dimensions cannot be decoded ok is false and the caller should specify
// width only, leaving height to the document engine.
func FitToWidth(data []byte, widthCm float64) (wCm, hCm float64, ok bool) {
	cfg, _, err := image.DecodeConfig(bytesReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return widthCm, 0, false
	}
	naturalW := float64(cfg.Width) * cmPerInch / assumedDPI
	naturalH := float64(cfg.Height) * cmPerInch / assumedDPI
	return widthCm, naturalH * widthCm / naturalW, true
}
