// Package assets loads models and images off the frame loop. Loads report
// through buffered channels that the frame loop drains without blocking.
package assets

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"car-showroom/internal/scenegraph"
)

var (
	ErrUnsupportedFormat = errors.New("assets: unsupported model format")
	ErrNotImage          = errors.New("assets: file is not an image")
	ErrEmptyModel        = errors.New("assets: model has no content")
)

// ModelExtensions lists the model formats the renderer can load.
var ModelExtensions = []string{".gltf", ".glb", ".obj", ".iqm", ".vox", ".m3d"}

// CheckModelPath returns ErrUnsupportedFormat for paths the renderer cannot
// load, such as .fbx.
func CheckModelPath(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range ModelExtensions {
		if ext == e {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
}

// Result is the outcome of one model load. Exactly one of Node and Err is set.
type Result struct {
	Path string
	Node *scenegraph.Node
	Err  error
}

// Loader loads a model by path. The returned channel is buffered and receives
// exactly one Result, unless ctx is cancelled first, in which case it may
// receive nothing.
type Loader interface {
	Load(ctx context.Context, path string) <-chan Result
}

// LoaderFunc adapts a blocking load function to Loader by running it in a
// goroutine.
type LoaderFunc func(ctx context.Context, path string) (*scenegraph.Node, error)

func (f LoaderFunc) Load(ctx context.Context, path string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		n, err := f(ctx, path)
		if ctx.Err() != nil {
			return
		}
		ch <- Result{Path: path, Node: n, Err: err}
	}()
	return ch
}

// Poll returns the result waiting on ch, if any, without blocking.
func Poll(ch <-chan Result) (Result, bool) {
	select {
	case r, ok := <-ch:
		return r, ok
	default:
		return Result{}, false
	}
}
