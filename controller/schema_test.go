package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
)

func TestGetSchema(t *testing.T) {
	t.Parallel()

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/schema/{name}", NewSchemaController().GetSchema).Methods(http.MethodGet)

	testCases := []struct {
		name   string
		status int
	}{
		{"scan-result", http.StatusOK},
		{"violation", http.StatusOK},
		{"impact-distribution", http.StatusOK},
		{"unknown", http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/schema/"+tc.name, nil))
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			var body map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if tc.status == http.StatusOK {
				if _, ok := body["type"]; !ok {
					t.Errorf("schema has no type: %v", body)
				}
			}
		})
	}
}

func TestViolationSchemaDescribesImpactEnum(t *testing.T) {
	t.Parallel()

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/schema/{name}", NewSchemaController().GetSchema).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/schema/violation", nil))

	var schema struct {
		Properties map[string]struct {
			Enum []string `json:"enum"`
		} `json:"properties"`
		Required []string `json:"required"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &schema); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got := schema.Properties["impact"].Enum; len(got) != 4 {
		t.Errorf("impact enum = %v", got)
	}
	for _, field := range schema.Required {
		if field == "impact" {
			t.Error("impact must be optional")
		}
	}
}
