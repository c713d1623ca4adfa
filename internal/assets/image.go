package assets

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DefaultMaxTextureEdge bounds the longer side of uploaded textures.
const DefaultMaxTextureEdge = 2048

// DecodeImage sniffs path, decodes it and scales it down so neither side
// exceeds maxEdge. Files that are not images return ErrNotImage. A maxEdge of
// zero or less disables scaling.
func DecodeImage(path string, maxEdge int) (image.Image, error) {
	kind, err := filetype.MatchFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if kind == filetype.Unknown || kind.MIME.Type != "image" {
		return nil, fmt.Errorf("%w: %s", ErrNotImage, path)
	}
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return Fit(img, maxEdge), nil
}

// Fit scales img down proportionally so its longer side is at most maxEdge.
func Fit(img image.Image, maxEdge int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxEdge <= 0 || (w <= maxEdge && h <= maxEdge) {
		return img
	}
	if w >= h {
		h = max(1, h*maxEdge/w)
		w = maxEdge
	} else {
		w = max(1, w*maxEdge/h)
		h = maxEdge
	}
	return transform.Resize(img, w, h, transform.Linear)
}

// ImageResult is the outcome of an asynchronous DecodeImage.
type ImageResult struct {
	Path  string
	Image image.Image
	Err   error
}

// DecodeImageAsync decodes in a goroutine. The channel receives one result
// unless ctx is cancelled first.
func DecodeImageAsync(ctx context.Context, path string, maxEdge int) <-chan ImageResult {
	ch := make(chan ImageResult, 1)
	go func() {
		img, err := DecodeImage(path, maxEdge)
		if ctx.Err() != nil {
			return
		}
		ch <- ImageResult{Path: path, Image: img, Err: err}
	}()
	return ch
}
