package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"maternal-care-service/internal/adapters/secondary/sklearn"
	"maternal-care-service/internal/adapters/secondary/static"
	"maternal-care-service/internal/core/domain"
	output "maternal-care-service/internal/core/ports/output"
	"maternal-care-service/internal/core/services"
	"maternal-care-service/internal/testutil"
)

// fixedLoader always yields artifact, or fails when it is nil.
func fixedLoader(artifact output.ModelArtifact) output.ArtifactLoader {
	return output.ArtifactLoaderFunc(func(ctx context.Context, location string) (output.ModelArtifact, error) {
		if artifact == nil {
			return nil, errors.New("open " + location + ": no such file or directory")
		}
		return artifact, nil
	})
}

// setupRouter wires real services around the given backends.
func setupRouter(t *testing.T, sklearnArtifact, tfArtifact output.ModelArtifact) *gin.Engine {
	t.Helper()
	h := newTestHandler(t, sklearnArtifact, tfArtifact)

	r := gin.New()
	h.RegisterRoutes(r.Group("/api"))
	h.RegisterHealthRoutes(r)
	return r
}

func newTestHandler(t *testing.T, sklearnArtifact, tfArtifact output.ModelArtifact) *Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := services.NewModelRegistry(map[string]output.ArtifactLoader{
		domain.BackendSklearn:    fixedLoader(sklearnArtifact),
		domain.BackendTensorFlow: fixedLoader(tfArtifact),
	})
	registry.Load(context.Background(), domain.BackendSklearn, "models/sklearn_model.json")
	registry.Load(context.Background(), domain.BackendTensorFlow, "models/tf_model")

	auth, err := services.NewCredentialChecker(services.DemoAccounts, bcrypt.MinCost)
	require.NoError(t, err)

	h := New(
		services.NewInferenceGateway(registry, domain.NewCoercer(1024)),
		registry,
		services.NewContentCatalog(static.NewContentRepository(), domain.DefaultLanguage),
		services.NewAssistantService(nil),
		auth,
	)
	return h
}

func fourFeatureRegression(t *testing.T) *sklearn.Estimator {
	t.Helper()
	est, err := sklearn.NewEstimator(sklearn.Export{
		Estimator:   sklearn.LinearRegression,
		NFeaturesIn: 4,
		Coef:        []any{0.1, 0.2, 0.3, 0.4},
		Intercept:   0.0,
	})
	require.NoError(t, err)
	return est
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

// ---------------------------------------------------------------------------
// Predict
// ---------------------------------------------------------------------------

func TestPredict_LoadedSklearn(t *testing.T) {
	r := setupRouter(t, fourFeatureRegression(t), nil)

	w, resp := doJSON(t, r, http.MethodPost, "/api/predict/sklearn", `{"data": [1, 2, 3, 4]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	prediction, ok := resp["prediction"].([]interface{})
	require.True(t, ok, "prediction should be an array, got %T", resp["prediction"])
	require.Len(t, prediction, 1)
	assert.InDelta(t, 3.0, prediction[0], 1e-9)
}

func TestPredict_UnloadedSklearn(t *testing.T) {
	r := setupRouter(t, nil, nil)

	w, resp := doJSON(t, r, http.MethodPost, "/api/predict/sklearn", `{"data": [1, 2, 3, 4]}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, map[string]interface{}{"error": "Scikit-learn model not loaded"}, resp)
}

func TestPredict_UnloadedTensorFlow(t *testing.T) {
	r := setupRouter(t, fourFeatureRegression(t), nil)

	w, resp := doJSON(t, r, http.MethodPost, "/api/predict/tf", `{"data": [[1.0, 2.0]]}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "TensorFlow model not loaded", resp["error"])
}

func TestPredict_UnavailableWinsOverMalformedBody(t *testing.T) {
	r := setupRouter(t, nil, nil)

	w, resp := doJSON(t, r, http.MethodPost, "/api/predict/sklearn", `{"data": [1, 2`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Scikit-learn model not loaded", resp["error"])
}

func TestPredict_UnknownBackend(t *testing.T) {
	r := setupRouter(t, fourFeatureRegression(t), nil)

	w, resp := doJSON(t, r, http.MethodPost, "/api/predict/xgboost", `{"data": [1]}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "xgboost model not loaded", resp["error"])
}

func TestPredict_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		errMsg string
	}{
		{name: "malformed json", body: `{"data": [1, 2`},
		{name: "missing data", body: `{}`, errMsg: "data is required"},
		{name: "null data", body: `{"data": null}`, errMsg: "data is required"},
		{name: "string values", body: `{"data": ["a", "b", "c", "d"]}`, errMsg: "non-numeric value"},
		{name: "ragged", body: `{"data": [[1, 2], [3]]}`, errMsg: "inhomogeneous shape"},
		{name: "empty", body: `{"data": []}`, errMsg: "empty sequence"},
		{name: "wrong feature count", body: `{"data": [1, 2, 3]}`, errMsg: "X has 3 features, but LinearRegression is expecting 4 features as input."},
	}

	r := setupRouter(t, fourFeatureRegression(t), nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := doJSON(t, r, http.MethodPost, "/api/predict/sklearn", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			msg, ok := resp["error"].(string)
			require.True(t, ok)
			assert.NotEmpty(t, msg)
			if tt.errMsg != "" {
				assert.Contains(t, msg, tt.errMsg)
			}
		})
	}
}

func TestPredict_BackendPanicIsBadRequest(t *testing.T) {
	panicking := testutil.FuncArtifact(func(ctx context.Context, input domain.Tensor) (domain.Tensor, error) {
		panic("graph execution error")
	})
	r := setupRouter(t, nil, panicking)

	w, resp := doJSON(t, r, http.MethodPost, "/api/predict/tf", `{"data": [1]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp["error"], "graph execution error")
}

func TestPredict_TensorFlowShapeReachesBackend(t *testing.T) {
	tf := new(testutil.MockModelArtifact)
	tf.On("Predict", mock.Anything, domain.Tensor{Shape: []int{1, 4}, Data: []float64{1, 2, 3, 4}}).
		Return(domain.Tensor{Shape: []int{1, 2}, Data: []float64{0.25, 0.75}}, nil)
	r := setupRouter(t, nil, tf)

	w, resp := doJSON(t, r, http.MethodPost, "/api/predict/tf", `{"data": [[1, 2], [3, 4]]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{[]interface{}{0.25, 0.75}}, resp["prediction"])
	tf.AssertExpectations(t)
}

// ---------------------------------------------------------------------------
// Models
// ---------------------------------------------------------------------------

func TestListModels(t *testing.T) {
	r := setupRouter(t, fourFeatureRegression(t), nil)

	w, resp := doJSON(t, r, http.MethodGet, "/api/models", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), resp["total"])

	items, ok := resp["items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 2)

	sk := items[0].(map[string]interface{})
	assert.Equal(t, "sklearn", sk["name"])
	assert.Equal(t, true, sk["available"])
	assert.NotContains(t, sk, "reason")

	tf := items[1].(map[string]interface{})
	assert.Equal(t, "tf", tf["name"])
	assert.Equal(t, false, tf["available"])
	assert.Contains(t, tf["reason"], "no such file or directory")
}

// ---------------------------------------------------------------------------
// Content, assistant, login
// ---------------------------------------------------------------------------

func TestGetEducation(t *testing.T) {
	tests := []struct {
		name       string
		language   string
		firstTitle string
	}{
		{name: "english", language: "en", firstTitle: "Nutrition During Pregnancy"},
		{name: "swahili", language: "sw", firstTitle: "Lishe Wakati wa Ujauzito"},
		{name: "unknown falls back to english", language: "fr", firstTitle: "Nutrition During Pregnancy"},
	}

	r := setupRouter(t, nil, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := doJSON(t, r, http.MethodGet, "/api/education/"+tt.language, "")

			assert.Equal(t, http.StatusOK, w.Code)
			content, ok := resp["content"].([]interface{})
			require.True(t, ok)
			require.Len(t, content, 3)
			first := content[0].(map[string]interface{})
			assert.Equal(t, tt.firstTitle, first["title"])
			assert.Contains(t, first, "description")
		})
	}
}

func TestGetFAQ(t *testing.T) {
	r := setupRouter(t, nil, nil)

	w, resp := doJSON(t, r, http.MethodGet, "/api/faq/sw", "")

	assert.Equal(t, http.StatusOK, w.Code)
	content, ok := resp["content"].([]interface{})
	require.True(t, ok)
	require.Len(t, content, 2)

	entry := content[0].(map[string]interface{})
	assert.Equal(t, "1", entry["id"])
	assert.Contains(t, entry["question"], "vyakula")
	assert.Contains(t, entry, "answer")
}

func TestAskAssistant(t *testing.T) {
	r := setupRouter(t, nil, nil)

	w, resp := doJSON(t, r, http.MethodPost, "/api/ai-assistant", `{"query": "When is my due date?"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, resp["response"], "40 weeks")

	w, resp = doJSON(t, r, http.MethodPost, "/api/ai-assistant", `{"query": "Hello"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Sorry, I don't have an answer for that yet. You asked: hello", resp["response"])
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		errMsg string
	}{
		{name: "valid", body: `{"email":"admin@example.com","password":"password123"}`, status: http.StatusOK},
		{name: "missing password", body: `{"email":"admin@example.com"}`, status: http.StatusBadRequest, errMsg: "Email and password are required"},
		{name: "wrong password", body: `{"email":"admin@example.com","password":"nope"}`, status: http.StatusUnauthorized, errMsg: "Invalid email or password"},
		{name: "unknown user", body: `{"email":"ghost@example.com","password":"password123"}`, status: http.StatusUnauthorized, errMsg: "Invalid email or password"},
		{name: "malformed json", body: `{"email":`, status: http.StatusBadRequest},
	}

	r := setupRouter(t, nil, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := doJSON(t, r, http.MethodPost, "/api/login", tt.body)
			assert.Equal(t, tt.status, w.Code)

			if tt.status != http.StatusOK {
				if tt.errMsg != "" {
					assert.Equal(t, tt.errMsg, resp["error"])
				}
				return
			}

			user, ok := resp["user"].(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, "1", user["id"])
			assert.Equal(t, "admin@example.com", user["email"])
			assert.Equal(t, "Admin User", user["fullName"])
			assert.Equal(t, "admin", user["role"])
			assert.NotContains(t, user, "password")
		})
	}
}

// ---------------------------------------------------------------------------
// Health
// ---------------------------------------------------------------------------

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(ctx context.Context) error {
	return p.err
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		db     Pinger
		status int
		state  string
	}{
		{name: "no database", status: http.StatusOK, state: "ok"},
		{name: "database reachable", db: stubPinger{}, status: http.StatusOK, state: "ok"},
		{name: "database down", db: stubPinger{err: errors.New("connection refused")}, status: http.StatusServiceUnavailable, state: "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, fourFeatureRegression(t), nil)
			if tt.db != nil {
				h.WithDatabase(tt.db)
			}
			r := gin.New()
			h.RegisterHealthRoutes(r)

			w, resp := doJSON(t, r, http.MethodGet, "/healthz", "")

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.state, resp["status"])

			models, ok := resp["models"].(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, "loaded", models["sklearn"])
			assert.Contains(t, models["tf"], "unavailable: ")

			if tt.status == http.StatusServiceUnavailable {
				assert.Equal(t, "connection refused", resp["error"])
			} else {
				assert.NotContains(t, resp, "error")
			}
		})
	}
}
