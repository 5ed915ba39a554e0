package menu

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestGetSpecialUsesInjectedClock(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Late evening UTC is already the next day in Nairobi; the special
	// must follow the clock it is given, not the server's.
	nairobi, err := time.LoadLocation("Africa/Nairobi")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	at := time.Date(2025, time.June, 1, 23, 30, 0, 0, time.UTC).In(nairobi)

	r := gin.New()
	h := NewHandler(func() time.Time { return at })
	r.GET("/menu/special", h.GetSpecial)

	req := httptest.NewRequest(http.MethodGet, "/menu/special", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Label string `json:"label"`
		Price int    `json:"price"`
		Date  string `json:"date"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}

	if resp.Date != "2025-06-02" {
		t.Fatalf("date computed in the wrong timezone: %s", resp.Date)
	}
	if want := SpecialOfTheDay(at); resp.Label != want {
		t.Fatalf("label = %q, want %q", resp.Label, want)
	}
	if resp.Price != Price(resp.Label) {
		t.Fatalf("price %d does not match the label %q", resp.Price, resp.Label)
	}
}
