package tfserving

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"maternal-care-service/internal/config"
	output "maternal-care-service/internal/core/ports/output"
)

var savedModelFiles = []string{"saved_model.pb", "saved_model.pbtxt"}

type loader struct {
	cfg    *config.TFServingConfig
	kserve output.KServeClient
	client *http.Client
}

// NewLoader returns a loader for SavedModel directories served by TensorFlow
// Serving. kserve may be nil; when available and an InferenceService is
// configured, the serving URL is taken from its status.
func NewLoader(cfg *config.TFServingConfig, kserve output.KServeClient) output.ArtifactLoader {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &loader{
		cfg:    cfg,
		kserve: kserve,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (l *loader) Load(ctx context.Context, location string) (output.ModelArtifact, error) {
	if isLocalPath(location) {
		if err := checkSavedModel(location); err != nil {
			return nil, err
		}
	}

	baseURL, err := l.resolveURL(ctx)
	if err != nil {
		return nil, err
	}

	name := l.cfg.ModelName
	if name == "" {
		name = filepath.Base(filepath.Clean(location))
	}

	model := newModel(baseURL, name, l.client)
	version, err := model.Status(ctx)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"model":   name,
		"version": version,
		"url":     baseURL,
	}).Info("tensorflow serving model available")

	return model, nil
}

func (l *loader) resolveURL(ctx context.Context) (string, error) {
	if l.kserve != nil && l.kserve.IsAvailable() && l.cfg.InferenceService != "" {
		status, err := l.kserve.GetStatus(ctx, l.cfg.Namespace, l.cfg.InferenceService)
		if err != nil {
			return "", err
		}
		if !status.Ready {
			return "", fmt.Errorf("inference service %s is not ready: %s", l.cfg.InferenceService, status.Error)
		}
		if status.URL == "" {
			return "", fmt.Errorf("inference service %s has no url", l.cfg.InferenceService)
		}
		return status.URL, nil
	}

	if l.cfg.URL == "" {
		return "", errors.New("tensorflow serving url is not configured")
	}
	return l.cfg.URL, nil
}

// isLocalPath reports whether location is a filesystem path rather than a
// storage URI such as gs:// or s3://.
func isLocalPath(location string) bool {
	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" || u.Scheme == "file" {
		return true
	}
	// windows drive letters parse as a one-letter scheme
	return len(u.Scheme) == 1
}

// checkSavedModel accepts dir/saved_model.pb or the versioned layout
// dir/<n>/saved_model.pb used by TensorFlow Serving.
func checkSavedModel(location string) error {
	dir := location
	if u, err := url.Parse(location); err == nil && u.Scheme == "file" {
		dir = u.Path
	}

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat saved model: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("saved model location %s is not a directory", dir)
	}

	if hasSavedModel(dir) {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read saved model directory: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := strconv.ParseUint(e.Name(), 10, 64); err != nil {
			continue
		}
		if hasSavedModel(filepath.Join(dir, e.Name())) {
			return nil
		}
	}

	return fmt.Errorf("no saved_model.pb found in %s", dir)
}

func hasSavedModel(dir string) bool {
	for _, name := range savedModelFiles {
		if info, err := os.Stat(filepath.Join(dir, name)); err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}
