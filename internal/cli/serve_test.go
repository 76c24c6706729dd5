package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
)

func newTestRouter() http.Handler {
	return New(io.Discard, LogInfo).newRouter()
}

func postSort(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sort", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestHandleSortValues(t *testing.T) {
	rec := postSort(t, `{"values": [5, 2, 8, 1, 9]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body)
	}

	var resp sortResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if want := []string{"1", "2", "5", "8", "9"}; !slices.Equal(resp.Sorted, want) {
		t.Errorf("Sorted = %v, want %v", resp.Sorted, want)
	}
	if !resp.Converged {
		t.Error("Converged = false")
	}
}

func TestHandleSortPoints(t *testing.T) {
	rec := postSort(t, `{"points": [[5, 2], [1, 4], [3, 1]], "comparator": "sum"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body)
	}

	var resp sortResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if want := []string{"(3,1)", "(1,4)", "(5,2)"}; !slices.Equal(resp.Sorted, want) {
		t.Errorf("Sorted = %v, want %v", resp.Sorted, want)
	}
}

func TestHandleSortStubborn(t *testing.T) {
	rec := postSort(t, `{"values": [3, 1, 2], "stubborn": [0]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body)
	}

	var resp sortResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// A stubborn head never initiates, so the chain stays put.
	if want := []string{"3", "1", "2"}; !slices.Equal(resp.Sorted, want) {
		t.Errorf("Sorted = %v, want %v", resp.Sorted, want)
	}
	if resp.Swaps != 0 {
		t.Errorf("Swaps = %d, want 0", resp.Swaps)
	}
}

func TestHandleSortMaxRounds(t *testing.T) {
	rec := postSort(t, `{"values": [5, 4, 3, 2, 1], "max_rounds": 1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body)
	}

	var resp sortResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Converged {
		t.Error("Converged = true with max_rounds 1")
	}
	if resp.Rounds != 1 {
		t.Errorf("Rounds = %d, want 1", resp.Rounds)
	}
}

func TestHandleSortInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "Empty", body: `{}`},
		{name: "MixedInput", body: `{"values": [1], "points": [[1, 2]]}`},
		{name: "BadPointArity", body: `{"points": [[1, 2, 3]]}`},
		{name: "ComparatorWithoutPoints", body: `{"values": [1], "comparator": "sum"}`},
		{name: "UnknownComparator", body: `{"points": [[1, 2]], "comparator": "manhattan"}`},
		{name: "StubbornOutOfRange", body: `{"values": [1, 2], "stubborn": [5]}`},
		{name: "NegativeMaxRounds", body: `{"values": [1], "max_rounds": -1}`},
		{name: "NotJSON", body: `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postSort(t, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body: %s)", rec.Code, rec.Body)
			}

			var resp errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if resp.Error == "" {
				t.Error("error response has no message")
			}
		})
	}
}
