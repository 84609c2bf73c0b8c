package system

import (
	"image"
	"sync"
)

// FramePool recycles RGBA frame buffers between rendering ticks so the
// capture pipeline does not allocate a multi-megabyte frame per tick.
// Pools are keyed by frame rectangle.
type FramePool struct {
	mu    sync.RWMutex
	pools map[string]*sync.Pool
}

var globalFramePool = &FramePool{pools: make(map[string]*sync.Pool)}

// GetFrame returns a frame buffer for rect, reused when possible.
func GetFrame(rect image.Rectangle) *image.RGBA {
	return globalFramePool.Get(rect)
}

// PutFrame returns a frame buffer to the pool. The caller must not touch
// it afterwards.
func PutFrame(img *image.RGBA) {
	globalFramePool.Put(img)
}

// Get returns a frame for rect from the pool, creating one when needed.
func (p *FramePool) Get(rect image.Rectangle) *image.RGBA {
	key := rect.String()
	p.mu.RLock()
	pool, ok := p.pools[key]
	p.mu.RUnlock()

	if !ok {
		p.mu.Lock()
		pool, ok = p.pools[key]
		if !ok {
			pool = &sync.Pool{
				New: func() any { return image.NewRGBA(rect) },
			}
			p.pools[key] = pool
		}
		p.mu.Unlock()
	}
	return pool.Get().(*image.RGBA)
}

// Put makes img available for reuse.
func (p *FramePool) Put(img *image.RGBA) {
	if img == nil {
		return
	}
	key := img.Rect.String()
	p.mu.RLock()
	pool, ok := p.pools[key]
	p.mu.RUnlock()
	if ok {
		pool.Put(img)
	}
}
