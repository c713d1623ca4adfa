package assets

import (
	"context"
	"sync"

	"car-showroom/internal/scenegraph"

	"github.com/charmbracelet/log"
)

// TemplateCache loads each model path once and hands every caller its own deep
// copy. Templates are never returned directly, so callers may change
// materials, shadows and transforms freely.
type TemplateCache struct {
	loader Loader
	logger *log.Logger

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	done     bool
	template *scenegraph.Node
	err      error
	waiters  []waiter
}

type waiter struct {
	ctx context.Context
	ch  chan Result
}

func NewTemplateCache(loader Loader, logger *log.Logger) *TemplateCache {
	return &TemplateCache{
		loader:  loader,
		logger:  logger,
		entries: make(map[string]*entry),
	}
}

// Load returns a channel that receives a fresh copy of the model at path. The
// first request for a path starts the underlying load; later requests share
// it. A failed load is remembered and reported to every later caller.
func (c *TemplateCache) Load(ctx context.Context, path string) <-chan Result {
	ch := make(chan Result, 1)
	if err := CheckModelPath(path); err != nil {
		ch <- Result{Path: path, Err: err}
		return ch
	}

	c.mu.Lock()
	e, ok := c.entries[path]
	if ok && e.done {
		c.mu.Unlock()
		ch <- cloneResult(path, e)
		return ch
	}
	if !ok {
		e = &entry{}
		c.entries[path] = e
	}
	e.waiters = append(e.waiters, waiter{ctx: ctx, ch: ch})
	c.mu.Unlock()

	if !ok {
		c.logger.Debug("loading model", "path", path)
		go c.await(path, c.loader.Load(context.Background(), path))
	}
	return ch
}

func (c *TemplateCache) await(path string, src <-chan Result) {
	r := <-src
	c.mu.Lock()
	e := c.entries[path]
	e.done = true
	e.template = r.Node
	e.err = r.Err
	if r.Err == nil && r.Node == nil {
		e.err = ErrEmptyModel
	}
	waiters := e.waiters
	e.waiters = nil
	c.mu.Unlock()

	if e.err != nil {
		c.logger.Error("model load failed", "path", path, "err", e.err)
	}
	for _, w := range waiters {
		if w.ctx.Err() != nil {
			continue
		}
		w.ch <- cloneResult(path, e)
	}
}

func cloneResult(path string, e *entry) Result {
	if e.err != nil {
		return Result{Path: path, Err: e.err}
	}
	return Result{Path: path, Node: e.template.Clone()}
}

