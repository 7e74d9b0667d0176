package spots

import (
	"errors"
	"sort"

	"github.com/giuliopb/surf-bot-whatsapp/internal/models"
)

// ErrUnknownSpot is returned when a requested key is not in the registry.
var ErrUnknownSpot = errors.New("unknown surf spot")

// Registry is the fixed set of supported surf spots. It is built once
// at startup and never mutated.
type Registry struct {
	byKey map[string]models.Spot
}

// NewRegistry returns the registry of the four supported spots.
func NewRegistry() *Registry {
	all := []models.Spot{
		{Key: "balneario", Name: "Balneário Camboriú", Lat: -26.9931, Lon: -48.6350},
		{Key: "guarda", Name: "Guarda do Embaú", Lat: -27.9496, Lon: -48.6189},
		{Key: "itajai", Name: "Itajaí", Lat: -26.9101, Lon: -48.6536},
		{Key: "floripa", Name: "Florianópolis", Lat: -27.5954, Lon: -48.5480},
	}

	byKey := make(map[string]models.Spot, len(all))
	for _, s := range all {
		byKey[s.Key] = s
	}

	return &Registry{byKey: byKey}
}

// Resolve looks up a spot by key.
func (r *Registry) Resolve(key string) (models.Spot, error) {
	spot, ok := r.byKey[key]
	if !ok {
		return models.Spot{}, ErrUnknownSpot
	}
	return spot, nil
}

// Keys returns the supported keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.byKey))
	for k := range r.byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
