package params

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newContext(query string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestNewQueryParams(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantPage   int
		wantSize   int
		wantSearch string
	}{
		{"defaults", "", 1, DefaultPageSize, ""},
		{"explicit values", "page=3&limit=10&search=acme", 3, 10, "acme"},
		{"zero page clamps to one", "page=0", 1, DefaultPageSize, ""},
		{"negative page clamps to one", "page=-2", 1, DefaultPageSize, ""},
		{"oversized limit capped", "limit=1000", 1, MaxPageSize, ""},
		{"garbage values fall back", "page=abc&limit=xyz", 1, DefaultPageSize, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewQueryParams(newContext(tt.query))
			if p.PageNumber != tt.wantPage {
				t.Errorf("PageNumber = %d, want %d", p.PageNumber, tt.wantPage)
			}
			if p.PageSize != tt.wantSize {
				t.Errorf("PageSize = %d, want %d", p.PageSize, tt.wantSize)
			}
			if p.Search != tt.wantSearch {
				t.Errorf("Search = %q, want %q", p.Search, tt.wantSearch)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := QueryParams{PageNumber: 3, PageSize: 20}
	if got := p.Offset(); got != 40 {
		t.Errorf("Offset() = %d, want 40", got)
	}
}

func TestPages(t *testing.T) {
	tests := []struct {
		total int
		size  int
		want  int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 20, 5},
	}
	for _, tt := range tests {
		p := QueryParams{PageNumber: 1, PageSize: tt.size}
		if got := p.Pages(tt.total); got != tt.want {
			t.Errorf("Pages(%d) with size %d = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}
