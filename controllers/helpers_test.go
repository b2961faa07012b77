package controllers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func paginationContext(t *testing.T, url string) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", url, nil)
	return c
}

func TestParsePaginationDefaults(t *testing.T) {
	page, limit, skip := parsePagination(paginationContext(t, "/api/events"))
	if page != 1 || limit != 10 || skip != 0 {
		t.Errorf("got page=%d limit=%d skip=%d, want 1/10/0", page, limit, skip)
	}
}

func TestParsePaginationExplicit(t *testing.T) {
	page, limit, skip := parsePagination(paginationContext(t, "/api/events?page=3&limit=25"))
	if page != 3 || limit != 25 || skip != 50 {
		t.Errorf("got page=%d limit=%d skip=%d, want 3/25/50", page, limit, skip)
	}
}

func TestParsePaginationIgnoresBadValues(t *testing.T) {
	page, limit, skip := parsePagination(paginationContext(t, "/api/events?page=-1&limit=junk"))
	if page != 1 || limit != 10 || skip != 0 {
		t.Errorf("got page=%d limit=%d skip=%d, want defaults", page, limit, skip)
	}
}

func TestParsePaginationCapsLimit(t *testing.T) {
	_, limit, _ := parsePagination(paginationContext(t, "/api/events?limit=1000"))
	if limit != 10 {
		t.Errorf("limit = %d, want default when over the cap", limit)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{5, 0, 0},
	}
	for _, tc := range cases {
		if got := totalPages(tc.total, tc.limit); got != tc.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}
