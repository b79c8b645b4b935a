package common

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	"github.com/blacktop/go-termimg"
)

var errNoCover = errors.New("no cover image")

// FetchCover downloads and decodes a cover image. A nil client means
// http.DefaultClient.
func FetchCover(ctx context.Context, client *http.Client, url string) (image.Image, error) {
	if url == "" {
		return nil, errNoCover
	}
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch cover: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch cover: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch cover: status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode cover: %w", err)
	}
	return img, nil
}

// CoverCells returns the cell size that fits img inside maxW x maxH
// while keeping its aspect ratio. Halfblocks pack two pixel rows per cell.
func CoverCells(img image.Image, maxW, maxH int) (int, int, error) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return 0, 0, fmt.Errorf("invalid cover dimensions")
	}
	ar := float64(b.Dx()) / float64(b.Dy())
	w := float64(maxW)
	h := w / (ar * 2.0)
	if h > float64(maxH) {
		h = float64(maxH)
		w = ar * h * 2.0
	}
	return max(int(w), 1), max(int(h), 1), nil
}

// RenderCover draws img in the terminal with halfblocks.
func RenderCover(img image.Image, maxW, maxH int) (string, error) {
	cw, ch, err := CoverCells(img, maxW, maxH)
	if err != nil {
		return "", err
	}
	ti := termimg.New(img)
	ti.Width(cw).Height(ch).Scale(termimg.ScaleFit).Protocol(termimg.Halfblocks)

	out, err := ti.Render()
	if err != nil {
		return "", fmt.Errorf("render cover: %w", err)
	}
	return out, nil
}
