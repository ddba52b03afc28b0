package httpx_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gunvolt24/kafkabridge/pkg/httpx"
	"github.com/gin-gonic/gin"
)

// Утилита для создания *gin.Context с query-строкой
func ctxWithQuery(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/?"+rawQuery, http.NoBody)
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c
}

func TestClampInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		v, min, max int
		want        int
	}{
		{"below_min", 0, 1, 10, 1},
		{"above_max", 11, 1, 10, 10},
		{"inside", 5, 1, 10, 5},
		{"equal_min", 1, 1, 10, 1},
		{"equal_max", 10, 1, 10, 10},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := httpx.ClampInt(tt.v, tt.min, tt.max); got != tt.want {
				t.Fatalf("ClampInt(%d,%d,%d) = %d, want %d", tt.v, tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestParseCount_Default(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		def, max int
		want     int
	}{
		{"default", 1, 100, 1},
		{"default_above_max", 500, 100, 100},
		{"default_zero", 0, 100, 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := httpx.ParseCount(ctxWithQuery(""), tt.def, tt.max)
			if err != nil || got != tt.want {
				t.Fatalf("ParseCount() = %d, %v; want %d", got, err, tt.want)
			}
		})
	}
}

func TestParseCount_QueryProvided(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rawQuery string
		want     int
		wantErr  bool
	}{
		{"ok", "count=5", 5, false},
		{"ok_min", "count=1", 1, false},
		{"ok_max", "count=100", 100, false},
		{"empty_uses_default", "count=", 1, false},

		{"zero", "count=0", 0, true},
		{"negative", "count=-3", 0, true},
		{"above_max", "count=101", 0, true},
		{"non_int", "count=foo", 0, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := httpx.ParseCount(ctxWithQuery(tt.rawQuery), 1, 100)
			if tt.wantErr {
				if !errors.Is(err, httpx.ErrBadParam) {
					t.Fatalf("want ErrBadParam for %q, got %d, %v", tt.rawQuery, got, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("ParseCount(%q) = %d, %v; want %d", tt.rawQuery, got, err, tt.want)
			}
		})
	}
}
