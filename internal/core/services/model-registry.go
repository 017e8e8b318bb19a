package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"maternal-care-service/internal/core/domain"
	output "maternal-care-service/internal/core/ports/output"
)

// ArtifactState is the load outcome for one backend. Artifact is nil when
// the backend is unavailable, in which case Reason says why.
type ArtifactState struct {
	Name     string
	Artifact output.ModelArtifact
	Reason   string
}

func (s ArtifactState) Available() bool {
	return s.Artifact != nil
}

// ModelRegistry owns the model artifacts of the process. It is populated by
// Load during startup and must not be mutated once handed to request handlers;
// after that point concurrent Get calls are safe without locking.
type ModelRegistry struct {
	loaders map[string]output.ArtifactLoader
	states  map[string]ArtifactState
}

// NewModelRegistry registers one entry per loader name, each initially unavailable.
func NewModelRegistry(loaders map[string]output.ArtifactLoader) *ModelRegistry {
	r := &ModelRegistry{
		loaders: loaders,
		states:  make(map[string]ArtifactState, len(loaders)),
	}
	for name := range loaders {
		r.states[name] = ArtifactState{Name: name, Reason: domain.ErrNotLoaded.Error()}
	}
	return r
}

// Load materializes the named artifact from location. Failures are recorded
// as an unavailable state and logged; they never reach the caller.
func (r *ModelRegistry) Load(ctx context.Context, name, location string) {
	start := time.Now()
	logger := log.WithFields(log.Fields{
		"backend":  name,
		"location": location,
	})

	artifact, err := r.load(ctx, name, location)
	if err != nil {
		logger.WithError(err).Warnf("error loading %s model", domain.BackendDisplayName(name))
		r.states[name] = ArtifactState{Name: name, Reason: err.Error()}
		return
	}

	r.states[name] = ArtifactState{Name: name, Artifact: artifact}
	logger.WithField("latency_ms", time.Since(start).Milliseconds()).Info("model loaded")
}

func (r *ModelRegistry) load(ctx context.Context, name, location string) (artifact output.ModelArtifact, err error) {
	loader, ok := r.loaders[name]
	if !ok || loader == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoLoader, name)
	}

	defer func() {
		if p := recover(); p != nil {
			artifact = nil
			err = fmt.Errorf("loader panicked: %v", p)
		}
	}()

	artifact, err = loader.Load(ctx, location)
	if err == nil && artifact == nil {
		err = fmt.Errorf("loader returned no artifact")
	}
	return artifact, err
}

// Get returns the state of the named backend. Unknown names are reported as
// unavailable rather than as an error.
func (r *ModelRegistry) Get(name string) ArtifactState {
	if s, ok := r.states[name]; ok {
		return s
	}
	return ArtifactState{Name: name, Reason: domain.ErrUnknownBackend.Error()}
}

// States returns every registered backend sorted by name.
func (r *ModelRegistry) States() []ArtifactState {
	out := make([]ArtifactState, 0, len(r.states))
	for _, s := range r.states {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
