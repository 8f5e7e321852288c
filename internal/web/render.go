package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"localbiz-backend/internal/shared/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static serves the embedded stylesheet under /static/.
func Static() http.FileSystem {
	sub, _ := fs.Sub(staticFS, "static")
	return http.FS(sub)
}

// MediaURLFunc maps a stored media key to a public URL.
type MediaURLFunc func(key string) string

// LoadTemplates parses every embedded page. Each page pulls in "header" and "footer" from layout.html.
func LoadTemplates(mediaURL MediaURLFunc) (*template.Template, error) {
	if mediaURL == nil {
		mediaURL = func(key string) string { return "/media/" + key }
	}
	t, err := template.New("").Funcs(Funcs(mediaURL)).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

// Funcs: helpers available to every template
func Funcs(mediaURL MediaURLFunc) template.FuncMap {
	return template.FuncMap{
		"media": func(v interface{}) string {
			switch key := v.(type) {
			case string:
				if key == "" {
					return ""
				}
				return mediaURL(key)
			case *string:
				if key == nil || *key == "" {
					return ""
				}
				return mediaURL(*key)
			}
			return ""
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"stars": func(rating int) string {
			if rating < 0 {
				rating = 0
			}
			if rating > 5 {
				rating = 5
			}
			return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
		},
		"fieldErr": func(errs map[string]string, key string) string {
			return errs[key]
		},
	}
}

// QueryBase is the query prefix kept by pagination links ("a=1&b=2&").
// Empty values are dropped.
func QueryBase(v url.Values) template.URL {
	for key, vals := range v {
		if len(vals) == 0 || vals[0] == "" {
			v.Del(key)
		}
	}
	if len(v) == 0 {
		return ""
	}
	return template.URL(v.Encode() + "&")
}

// Render adds the current user and pending flash messages, then renders an HTML page.
func Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["CurrentUser"] = middleware.CurrentUser(c)
	data["Flashes"] = PopFlashes(c)
	data["Path"] = c.Request.URL.Path
	c.HTML(status, name, data)
}
