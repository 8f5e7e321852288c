package web

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTemplatesParsesEveryPage(t *testing.T) {
	tmpl, err := LoadTemplates(nil)
	require.NoError(t, err)

	for _, name := range []string{
		"home.html", "business_list.html", "business_detail.html", "business_form.html",
		"login.html", "register.html", "404.html", "500.html", "staff_dashboard.html",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestRenderLoginPage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tmpl, err := LoadTemplates(nil)
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.GET("/accounts/login/", func(c *gin.Context) {
		Render(c, http.StatusOK, "login.html", gin.H{
			"Form":   struct{ Username string }{"joe"},
			"Errors": map[string]string{"__all__": "Invalid username or password"},
			"Next":   "/accounts/dashboard/",
		})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/accounts/login/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `value="joe"`)
	assert.Contains(t, body, "Invalid username or password")
	assert.Contains(t, body, `href="/accounts/register/"`)
}

func TestFuncs(t *testing.T) {
	funcs := Funcs(func(key string) string { return "https://cdn.test/" + key })

	media := funcs["media"].(func(interface{}) string)
	key := "logos/a.jpg"
	assert.Equal(t, "https://cdn.test/logos/a.jpg", media(key))
	assert.Equal(t, "https://cdn.test/logos/a.jpg", media(&key))
	assert.Equal(t, "", media((*string)(nil)))
	assert.Equal(t, "", media(""))

	stars := funcs["stars"].(func(int) string)
	assert.Equal(t, "★★★☆☆", stars(3))
	assert.Equal(t, "★★★★★", stars(9))
}

func TestQueryBase(t *testing.T) {
	assert.Equal(t, "", string(QueryBase(url.Values{"search": {""}})))
	assert.Equal(t, "search=pizza&sort=name&", string(QueryBase(url.Values{
		"search":   {"pizza"},
		"sort":     {"name"},
		"location": {""},
	})))
}

func TestPaginationKeepsQuery(t *testing.T) {
	tmpl, err := LoadTemplates(nil)
	require.NoError(t, err)

	type page struct {
		Number, TotalPages int
		HasPrev, HasNext   bool
		Prev, Next         int
	}
	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "pagination", map[string]interface{}{
		"Page":      page{Number: 1, TotalPages: 3, HasNext: true, Next: 2},
		"QueryBase": QueryBase(url.Values{"status": {"pending"}}),
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `href="?status=pending&amp;page=2"`)
}

func TestSafeNext(t *testing.T) {
	cases := map[string]string{
		"":                     "/fallback/",
		"/accounts/profile/":   "/accounts/profile/",
		"//evil.example.com/":  "/fallback/",
		"/\\evil.example.com/": "/fallback/",
		"https://evil.com/":    "/fallback/",
		"/":                    "/",
	}
	for in, want := range cases {
		assert.Equal(t, want, SafeNext(in, "/fallback/"), in)
	}
}
