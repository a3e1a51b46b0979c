package renderer

import (
	"sync"

	"GLScene/internal/gpu"
	"GLScene/internal/logger"

	"go.uber.org/zap"
)

// Texture is a loaded texture as referenced by a mesh. Type is the sampler
// family ("texture_diffuse", "texture_specular", ...).
type Texture struct {
	ID   uint32
	Type string
	Path string
}

// TextureStats provides debugging and profiling information
type TextureStats struct {
	TotalTextures  int
	CacheHits      int
	CacheMisses    int
	ActiveTextures int
}

// TextureCache keys loaded textures by path so every distinct image is
// uploaded once per cache, however many meshes reference it.
type TextureCache struct {
	textureCache    map[string]Texture // path -> texture
	textureRefCount map[uint32]int     // texture ID -> reference count
	texturePaths    map[uint32]string  // texture ID -> path
	mu              sync.RWMutex
	stats           TextureStats
	dev             gpu.Device
}

func NewTextureCache(dev gpu.Device) *TextureCache {
	return &TextureCache{
		textureCache:    make(map[string]Texture),
		textureRefCount: make(map[uint32]int),
		texturePaths:    make(map[uint32]string),
		dev:             dev,
	}
}

// Acquire returns the cached texture for path or calls load to create it.
// Every successful call adds a reference. A load returning 0 is not cached
// and the returned Texture has ID 0.
func (tc *TextureCache) Acquire(path, typeName string, load func() uint32) Texture {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if tex, exists := tc.textureCache[path]; exists {
		tc.textureRefCount[tex.ID]++
		tc.stats.CacheHits++

		logger.Log.Debug("Texture cache hit",
			zap.String("path", path),
			zap.Uint32("textureID", tex.ID),
			zap.Int("refCount", tc.textureRefCount[tex.ID]))

		tex.Type = typeName
		return tex
	}

	tc.stats.CacheMisses++
	id := load()
	if id == 0 {
		return Texture{Type: typeName, Path: path}
	}

	tex := Texture{ID: id, Type: typeName, Path: path}
	tc.textureCache[path] = tex
	tc.textureRefCount[id] = 1
	tc.texturePaths[id] = path
	tc.stats.TotalTextures++

	logger.Log.Info("Texture loaded and cached",
		zap.String("path", path),
		zap.String("type", typeName),
		zap.Uint32("textureID", id))

	return tex
}

// Release drops one reference and deletes the texture with the last one.
func (tc *TextureCache) Release(textureID uint32) {
	if textureID == 0 {
		return
	}

	tc.mu.Lock()
	defer tc.mu.Unlock()

	refCount, exists := tc.textureRefCount[textureID]
	if !exists {
		logger.Log.Warn("Attempted to release unknown texture",
			zap.Uint32("textureID", textureID))
		return
	}

	refCount--
	tc.textureRefCount[textureID] = refCount
	if refCount > 0 {
		return
	}

	tc.dev.DeleteTexture(textureID)
	path := tc.texturePaths[textureID]
	delete(tc.textureCache, path)
	delete(tc.textureRefCount, textureID)
	delete(tc.texturePaths, textureID)

	logger.Log.Debug("Texture freed",
		zap.Uint32("textureID", textureID),
		zap.String("path", path))
}

// Len is the number of distinct textures held.
func (tc *TextureCache) Len() int {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return len(tc.textureCache)
}

// Stats returns current cache statistics
func (tc *TextureCache) Stats() TextureStats {
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	stats := tc.stats
	stats.ActiveTextures = len(tc.textureRefCount)
	return stats
}

func (tc *TextureCache) LogStats() {
	stats := tc.Stats()
	hitRate := 0.0
	if lookups := stats.CacheHits + stats.CacheMisses; lookups > 0 {
		hitRate = float64(stats.CacheHits) / float64(lookups)
	}
	logger.Log.Info("Texture cache stats",
		zap.Int("totalTextures", stats.TotalTextures),
		zap.Int("activeTextures", stats.ActiveTextures),
		zap.Int("cacheHits", stats.CacheHits),
		zap.Int("cacheMisses", stats.CacheMisses),
		zap.Float64("hitRate", hitRate))
}

// Clear deletes every texture regardless of reference counts.
func (tc *TextureCache) Clear() {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	for textureID := range tc.textureRefCount {
		tc.dev.DeleteTexture(textureID)
	}

	tc.textureCache = make(map[string]Texture)
	tc.textureRefCount = make(map[uint32]int)
	tc.texturePaths = make(map[uint32]string)
}
