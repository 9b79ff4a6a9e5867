package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/pdf/validate-ranges", HandleValidateRanges)
	return r
}

func postForm(t *testing.T, r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestValidateRangesOK(t *testing.T) {
	r := newTestRouter()

	w := postForm(t, r, "/api/pdf/validate-ranges", url.Values{
		"ranges":     {"1, 2-, -3, 4-5, -"},
		"page_count": {"10"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Entries []struct {
			First int `json:"first"`
			Last  int `json:"last"`
		} `json:"entries"`
		PagesSelected int `json:"pages_selected"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body %q: %v", w.Body.String(), err)
	}

	want := [][2]int{{0, 0}, {1, 9}, {0, 2}, {3, 4}, {0, 9}}
	if len(resp.Entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(resp.Entries), len(want))
	}
	for i, e := range resp.Entries {
		if e.First != want[i][0] || e.Last != want[i][1] {
			t.Errorf("entry %d = {%d,%d}, want {%d,%d}", i, e.First, e.Last, want[i][0], want[i][1])
		}
	}
}

func TestValidateRangesParseErrors(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		name      string
		ranges    string
		wantKind  string
		wantToken string
	}{
		{"invalid shape", "1-2-3", "invalid_range", "1-2-3"},
		{"out of range", "11", "out_of_range", "11"},
		{"decreasing", "5-2", "invalid_order", "5-2"},
		{"zero page", "0", "invalid_page_number", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postForm(t, r, "/api/pdf/validate-ranges", url.Values{
				"ranges":     {tt.ranges},
				"page_count": {"10"},
			})
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body = %s", w.Code, w.Body.String())
			}

			var resp struct {
				Kind  string `json:"kind"`
				Token string `json:"token"`
				Error string `json:"error"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("bad response body %q: %v", w.Body.String(), err)
			}
			if resp.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", resp.Kind, tt.wantKind)
			}
			if resp.Token != tt.wantToken {
				t.Errorf("token = %q, want %q", resp.Token, tt.wantToken)
			}
			if resp.Error == "" {
				t.Error("error message is empty")
			}
		})
	}
}

func TestValidateRangesOutOfRangeContext(t *testing.T) {
	r := newTestRouter()

	w := postForm(t, r, "/api/pdf/validate-ranges", url.Values{
		"ranges":     {"3-42"},
		"page_count": {"10"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var resp struct {
		Bound     int `json:"bound"`
		PageCount int `json:"page_count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Bound != 42 || resp.PageCount != 10 {
		t.Errorf("bound/page_count = %d/%d, want 42/10", resp.Bound, resp.PageCount)
	}
}

func TestValidateRangesMissingFields(t *testing.T) {
	r := newTestRouter()

	// Missing ranges
	w := postForm(t, r, "/api/pdf/validate-ranges", url.Values{"page_count": {"10"}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing ranges: status = %d, want 400", w.Code)
	}

	// Missing page_count
	w = postForm(t, r, "/api/pdf/validate-ranges", url.Values{"ranges": {"1"}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing page_count: status = %d, want 400", w.Code)
	}

	// page_count below 1 is a caller error, rejected at binding
	w = postForm(t, r, "/api/pdf/validate-ranges", url.Values{"ranges": {"1"}, "page_count": {"0"}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("zero page_count: status = %d, want 400", w.Code)
	}
}
