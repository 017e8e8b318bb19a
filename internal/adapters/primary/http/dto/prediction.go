package dto

import "maternal-care-service/internal/core/services"

// ============================================================================
// Request DTOs
// ============================================================================

// PredictRequest carries nested numeric input; validation happens in the gateway
type PredictRequest struct {
	Data any `json:"data"`
}

// ============================================================================
// Response DTOs
// ============================================================================

type PredictResponse struct {
	Prediction any `json:"prediction"`
}

// ModelStatusResponse represents one registry entry
type ModelStatusResponse struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// HealthResponse is the /healthz body; Models maps backend name to state
type HealthResponse struct {
	Status string            `json:"status"`
	Error  string            `json:"error,omitempty"`
	Models map[string]string `json:"models"`
}

type ListModelsResponse struct {
	Items []ModelStatusResponse `json:"items"`
	Total int                   `json:"total"`
}

// ============================================================================
// Converters
// ============================================================================

func ToModelStatusResponse(s services.ArtifactState) ModelStatusResponse {
	return ModelStatusResponse{
		Name:      s.Name,
		Available: s.Available(),
		Reason:    s.Reason,
	}
}

// ToModelHealth summarizes registry states as name -> "loaded" or "unavailable: <reason>"
func ToModelHealth(states []services.ArtifactState) map[string]string {
	out := make(map[string]string, len(states))
	for _, s := range states {
		if s.Available() {
			out[s.Name] = "loaded"
		} else {
			out[s.Name] = "unavailable: " + s.Reason
		}
	}
	return out
}
