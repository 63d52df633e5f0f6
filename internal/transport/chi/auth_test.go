package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAPIKeyAuth_Disabled(t *testing.T) {
	for name, keys := range map[string][]string{
		"nil":   nil,
		"blank": {"", "  "},
	} {
		t.Run(name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			APIKeyAuth(keys)(okHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/search", http.NoBody))
			if rr.Code != http.StatusOK {
				t.Errorf("got %d, want %d", rr.Code, http.StatusOK)
			}
		})
	}
}

func TestAPIKeyAuth(t *testing.T) {
	handler := APIKeyAuth([]string{"key1", " key2 "})(okHandler())

	tests := []struct {
		name    string
		path    string
		headers map[string]string
		want    int
	}{
		{"missing", "/api/search", nil, http.StatusUnauthorized},
		{"basic scheme", "/api/search", map[string]string{"Authorization": "Basic dXNlcjpwYXNz"}, http.StatusUnauthorized},
		{"bearer without token", "/api/search", map[string]string{"Authorization": "Bearer"}, http.StatusUnauthorized},
		{"wrong key", "/api/search", map[string]string{"Authorization": "Bearer wrong-key"}, http.StatusUnauthorized},
		{"prefix of key", "/api/search", map[string]string{"Authorization": "Bearer key"}, http.StatusUnauthorized},
		{"bearer key1", "/api/search", map[string]string{"Authorization": "Bearer key1"}, http.StatusOK},
		{"bearer key2 trimmed in config", "/api/search", map[string]string{"Authorization": "Bearer key2"}, http.StatusOK},
		{"lowercase scheme", "/api/search", map[string]string{"Authorization": "bearer key1"}, http.StatusOK},
		{"trailing space", "/api/search", map[string]string{"Authorization": "Bearer key1 "}, http.StatusOK},
		{"x-api-key", "/api/search", map[string]string{APIKeyHeader: "key2"}, http.StatusOK},
		{"x-api-key wrong", "/api/search", map[string]string{APIKeyHeader: "nope"}, http.StatusUnauthorized},
		{"health public", "/health", nil, http.StatusOK},
		{"metrics public", "/metrics", nil, http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, http.NoBody)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tc.want {
				t.Fatalf("got %d, want %d", rr.Code, tc.want)
			}
			if tc.want != http.StatusUnauthorized {
				return
			}
			var errResp ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if errResp.Code != ErrorCodeUnauthorized {
				t.Errorf("error code: got %s, want %s", errResp.Code, ErrorCodeUnauthorized)
			}
		})
	}
}
