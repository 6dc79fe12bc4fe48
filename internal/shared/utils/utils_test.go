package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/query"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		target       string
		wantPage     int
		wantPageSize int
	}{
		{"/x", 1, 20},
		{"/x?page=3&page_size=50", 3, 50},
		{"/x?page=-1&page_size=abc", 1, 20},
		{"/x?page_size=5000", 1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			c, _ := newContext(tt.target)
			p := ParsePagination(c)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPageSize, p.PageSize)
		})
	}
}

func TestParseListFilter(t *testing.T) {
	fields := query.NewFields(
		query.Field{Name: "status", Column: "status", Kind: query.KindInt},
		query.Field{Name: "subject", Column: "subject", Kind: query.KindString},
	)

	c, _ := newContext("/x?page=2&status__in=4,5&subject__contains=toner&sort_by=updated_at")
	f, err := ParseListFilter(c, fields)
	require.NoError(t, err)
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, "updated_at", f.SortBy)
	assert.True(t, f.IsDescending())
	assert.Len(t, f.Predicates, 2)

	c, _ = newContext("/x?password=x")
	_, err = ParseListFilter(c, fields)
	assert.True(t, apperrors.IsValidationError(err))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 2, TotalPages(21, 20))
	assert.Equal(t, 1, TotalPages(5, 0))
}

func TestErrorResponseWithError(t *testing.T) {
	c, w := newContext("/x")
	ErrorResponseWithError(c, apperrors.NewNotFoundError("organization not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "not_found", resp.Error.Type)

	c, w = newContext("/x")
	ErrorResponseWithError(c, errors.New("dial tcp 10.0.0.5:3306: refused"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}

func TestParseUintParam(t *testing.T) {
	c, _ := newContext("/x")
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, err := ParseUintParam(c, "id", "branch")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	c.Params = gin.Params{{Key: "id", Value: "zero"}}
	_, err = ParseUintParam(c, "id", "branch")
	assert.True(t, apperrors.IsValidationError(err))
}

func TestBindingError(t *testing.T) {
	type payload struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"omitempty,email"`
	}

	c, _ := newContext("/x")
	c.Request = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"email":"nope"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var p payload
	err := BindingError(c.ShouldBindJSON(&p))
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Contains(t, appErr.Details, "name is required")
	assert.Contains(t, appErr.Details, "email must be a valid email address")
}

func TestMasking(t *testing.T) {
	assert.Equal(t, "a***@acme.mx", MaskEmail("ana@acme.mx"))
	assert.Equal(t, "x***@acme.mx", MaskEmail("x@acme.mx"))
	assert.Equal(t, "***", MaskEmail("not-an-email"))
	assert.Equal(t, "********wxyz", MaskSecret("abcdefghwxyz"))
	assert.Equal(t, "***", MaskSecret("abc"))
}
