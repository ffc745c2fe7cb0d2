package admin

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/seoworks/indexable/internal/store"
	"github.com/seoworks/indexable/internal/tester"
	"github.com/stretchr/testify/assert"
)

func TestPage_Tabs(t *testing.T) {
	tester.Setup()
	page := NewPage(store.NewGormStore(tester.TestDB()))

	tabs := page.Tabs()
	assert.Len(t, tabs, 1)
	assert.Equal(t, "General", tabs[0].Label)
}

func TestPage_RenderAndSave(t *testing.T) {
	tester.Setup()
	page := NewPage(store.NewGormStore(tester.TestDB()))

	rec := httptest.NewRecorder()
	page.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/settings", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "General")
	assert.Contains(t, rec.Body.String(), `name="site_url"`)

	form := url.Values{}
	form.Set("site_url", "http://example.test")
	form.Set("front_page_id", "7")

	req := httptest.NewRequest(http.MethodPost, "/admin/settings", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec = httptest.NewRecorder()
	page.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Settings saved.")
	assert.Contains(t, rec.Body.String(), `value="http://example.test"`)
}
