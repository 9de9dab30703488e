package texture

import (
	"sync"

	"github.com/achilleasa/diorama/asset"
	"github.com/achilleasa/diorama/log"
)

// Cache shares decoded textures between all materials that reference the
// same asset. Entries are keyed by the resolved asset path and are never
// mutated after insertion, so callers may hold on to them for the lifetime
// of the process.
type Cache struct {
	mu       sync.RWMutex
	textures map[string]*Texture
	opts     Options
	logger   log.Logger
}

// Create a new texture cache that decodes textures with the given options.
func NewCache(opts Options) *Cache {
	return &Cache{
		textures: make(map[string]*Texture),
		opts:     opts,
		logger:   log.New("texture cache"),
	}
}

// Get fetches a texture from the cache or loads it if not present. Relative
// paths are resolved against relTo.
func (c *Cache) Get(pathToTexture string, relTo *asset.Resource) (*Texture, error) {
	key, err := asset.ResolvePath(pathToTexture, relTo)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	tex, ok := c.textures[key]
	c.mu.RUnlock()
	if ok {
		return tex, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if tex, ok = c.textures[key]; ok {
		return tex, nil
	}

	res, err := asset.NewResource(pathToTexture, relTo)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	tex, err = New(res, c.opts)
	if err != nil {
		return nil, err
	}

	if res.IsRemote() {
		c.logger.Infof(`fetched remote texture "%s" from %s (%dx%d)`, res.RemotePath(), key, tex.Width, tex.Height)
	} else {
		c.logger.Infof(`loaded texture "%s" (%dx%d)`, key, tex.Width, tex.Height)
	}
	c.textures[key] = tex
	return tex, nil
}

// Len returns the number of distinct textures held by the cache.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.textures)
}
