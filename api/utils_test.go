package api

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetIntParam(t *testing.T) {
	minVal, maxVal := 1, 50

	tests := []struct {
		name     string
		url      string
		expected int
	}{
		{"missing uses default", "/x", 10},
		{"valid value", "/x?history=25", 25},
		{"not a number uses default", "/x?history=abc", 10},
		{"below range uses default", "/x?history=0", 10},
		{"above range uses default", "/x?history=500", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			got := getIntParam(r, "history", 10, &minVal, &maxVal)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	writeJSON(w, 201, map[string]string{"status": "created"})

	assert.Equal(t, 201, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status": "created"}`, w.Body.String())
}
