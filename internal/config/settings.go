package config

import (
	"sync"

	"chunk-mesher/internal/meshing"
)

// LightingSettings holds the lighting used for new chunk builds.
type LightingSettings struct {
	mu       sync.RWMutex
	lighting meshing.Lighting
}

var globalLightingSettings = &LightingSettings{
	lighting: meshing.DefaultLighting(),
}

// GetLighting returns the lighting for the next build submission
func GetLighting() meshing.Lighting {
	globalLightingSettings.mu.RLock()
	defer globalLightingSettings.mu.RUnlock()
	return globalLightingSettings.lighting
}

// SetLighting replaces the lighting. Chunks already meshed keep their
// colours until they are rebuilt.
func SetLighting(l meshing.Lighting) {
	globalLightingSettings.mu.Lock()
	defer globalLightingSettings.mu.Unlock()
	globalLightingSettings.lighting = l
}
