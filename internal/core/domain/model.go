package domain

const (
	BackendSklearn    = "sklearn"
	BackendTensorFlow = "tf"
)

var backendDisplayNames = map[string]string{
	BackendSklearn:    "Scikit-learn",
	BackendTensorFlow: "TensorFlow",
}

// BackendDisplayName is the human-facing name used in error messages.
func BackendDisplayName(backend string) string {
	if name, ok := backendDisplayNames[backend]; ok {
		return name
	}
	return backend
}
