package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"user-directory/internal/domain"
	"user-directory/internal/service"
)

// fixedListing serves one canned listing page.
type fixedListing struct {
	listing service.Listing
}

func (f fixedListing) List(context.Context, service.ListRequest) (*service.Listing, error) {
	l := f.listing
	return &l, nil
}

func (f fixedListing) Create(context.Context, *domain.Person) (int64, error) {
	return 0, service.ErrPersonNotFound
}

func (f fixedListing) Get(context.Context, int64) (*domain.Person, error) {
	return nil, service.ErrPersonNotFound
}

func (f fixedListing) Update(context.Context, *domain.Person) error {
	return service.ErrPersonNotFound
}

func (f fixedListing) Delete(context.Context, int64) (*domain.Person, error) {
	return nil, service.ErrPersonNotFound
}

func (f fixedListing) ImportCSV(context.Context, io.Reader) ([]int64, error) {
	return nil, nil
}

func TestListUsers_PaginationLinksKeepPageSize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := &Handler{
		people: fixedListing{listing: service.Listing{
			People:      []domain.Person{{ID: 6, Name: "Jane Doe", Email: "jane@x.com"}},
			Page:        2,
			TotalPages:  3,
			Total:       11,
			Highlighted: map[int64]bool{},
		}},
		logger: logrus.New(),
	}
	router := gin.New()
	router.LoadHTMLGlob("../../web/templates/*.html")
	router.GET("/users/", h.listUsers)

	req := httptest.NewRequest(http.MethodGet, "/users/?page=2&per_page=5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, ">Prev</a>")
	require.Contains(t, body, ">Next</a>")
	require.Equal(t, 2, strings.Count(body, "per_page=5"), "both pagination links must carry the requested page size")
}
