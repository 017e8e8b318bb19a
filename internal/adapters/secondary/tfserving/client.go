package tfserving

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"

	"maternal-care-service/internal/core/domain"
	output "maternal-care-service/internal/core/ports/output"
)

// maxResponseBytes bounds how much of a TensorFlow Serving response is read.
const maxResponseBytes = 32 << 20

// TensorFlow Serving REST API structures
type predictRequest struct {
	Instances [][]float64 `json:"instances"`
}

type predictResponse struct {
	Predictions any    `json:"predictions"`
	Error       string `json:"error"`
}

type modelStatusResponse struct {
	ModelVersionStatus []modelVersionStatus `json:"model_version_status"`
	Error              string               `json:"error"`
}

type modelVersionStatus struct {
	Version string `json:"version"`
	State   string `json:"state"`
	Status  struct {
		ErrorCode    string `json:"error_code"`
		ErrorMessage string `json:"error_message"`
	} `json:"status"`
}

// Model is a SavedModel served by TensorFlow Serving, reached over its REST API.
type Model struct {
	baseURL string
	name    string
	client  *http.Client
}

func newModel(baseURL, name string, client *http.Client) *Model {
	return &Model{
		baseURL: strings.TrimRight(baseURL, "/"),
		name:    name,
		client:  client,
	}
}

func (m *Model) modelURL() string {
	return fmt.Sprintf("%s/v1/models/%s", m.baseURL, url.PathEscape(m.name))
}

// Status returns the available version, or an error when no version is AVAILABLE.
func (m *Model) Status(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.modelURL(), nil)
	if err != nil {
		return "", err
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("query model status: %w", err)
	}
	defer resp.Body.Close()

	var status modelStatusResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&status); err != nil {
		return "", fmt.Errorf("decode model status (http %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model status http %d: %s", resp.StatusCode, status.Error)
	}

	var last string
	for _, v := range status.ModelVersionStatus {
		if v.State == "AVAILABLE" {
			return v.Version, nil
		}
		last = v.State
		if v.Status.ErrorMessage != "" {
			last += ": " + v.Status.ErrorMessage
		}
	}
	if last == "" {
		return "", fmt.Errorf("model %s has no versions", m.name)
	}
	return "", fmt.Errorf("model %s has no available version (%s)", m.name, last)
}

func (m *Model) Predict(ctx context.Context, input domain.Tensor) (domain.Tensor, error) {
	rows, err := input.Rows()
	if err != nil {
		return domain.Tensor{}, err
	}

	body, err := json.Marshal(predictRequest{Instances: rows})
	if err != nil {
		return domain.Tensor{}, fmt.Errorf("encode predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.modelURL()+":predict", bytes.NewReader(body))
	if err != nil {
		return domain.Tensor{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	log.WithFields(log.Fields{
		"model": m.name,
		"url":   m.baseURL,
	}).Debug("forwarding prediction to tensorflow serving")

	resp, err := m.client.Do(req)
	if err != nil {
		return domain.Tensor{}, fmt.Errorf("tensorflow serving request: %w", err)
	}
	defer resp.Body.Close()

	var pr predictResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&pr); err != nil {
		return domain.Tensor{}, fmt.Errorf("decode tensorflow serving response (http %d): %w", resp.StatusCode, err)
	}
	if pr.Error != "" {
		return domain.Tensor{}, errors.New(pr.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.Tensor{}, fmt.Errorf("tensorflow serving returned http %d", resp.StatusCode)
	}

	out, err := domain.TensorFromNested(pr.Predictions)
	if err != nil {
		return domain.Tensor{}, fmt.Errorf("unexpected predictions: %w", err)
	}
	return out, nil
}

var _ output.ModelArtifact = (*Model)(nil)
