package sklearn

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	output "maternal-care-service/internal/core/ports/output"
)

type loader struct{}

// NewLoader returns a loader for serialized estimator files (.json, .yaml, .yml).
func NewLoader() output.ArtifactLoader {
	return loader{}
}

func (loader) Load(_ context.Context, location string) (output.ModelArtifact, error) {
	info, err := os.Stat(location)
	if err != nil {
		return nil, fmt.Errorf("stat model file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("model location %s is a directory, expected a serialized estimator file", location)
	}

	raw, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}

	exp, err := decodeExport(location, raw)
	if err != nil {
		return nil, err
	}

	est, err := NewEstimator(exp)
	if err != nil {
		return nil, fmt.Errorf("build estimator from %s: %w", location, err)
	}

	log.WithFields(log.Fields{
		"estimator": est.Name(),
		"features":  est.NFeatures(),
	}).Debug("sklearn estimator decoded")

	return est, nil
}

func decodeExport(location string, raw []byte) (Export, error) {
	var exp Export
	switch ext := strings.ToLower(filepath.Ext(location)); ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&exp); err != nil {
			return Export{}, fmt.Errorf("decode json model file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &exp); err != nil {
			return Export{}, fmt.Errorf("decode yaml model file: %w", err)
		}
	default:
		return Export{}, fmt.Errorf("unsupported model file format %q (want .json, .yaml or .yml)", ext)
	}
	return exp, nil
}
