// Package web holds the embedded HTML templates and static assets.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yigit/brainora/internal/app/models"
	"github.com/yigit/brainora/internal/pkg/validation"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

// URLResolver turns a stored file key into a public URL.
type URLResolver interface {
	URL(key string) string
}

// FuncMap returns the helpers available to every template.
func FuncMap(files URLResolver) template.FuncMap {
	return template.FuncMap{
		"media": func(key string) string {
			if key == "" || files == nil {
				return ""
			}
			return files.URL(key)
		},
		"date":      formatDate,
		"datetime":  formatDateTime,
		"truncate":  truncate,
		"fieldErrs": fieldErrors,
		"semesters": semesters,
		"initial":   initial,
		"year":      func() int { return time.Now().Year() },
	}
}

// Templates parses every embedded template into one set. Each page defines a
// template named after its file, e.g. "home.html".
func Templates(funcs template.FuncMap) (*template.Template, error) {
	tmpl, err := template.New("brainora").Funcs(funcs).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// MustTemplates is Templates for static setups such as tests.
func MustTemplates(funcs template.FuncMap) *template.Template {
	tmpl, err := Templates(funcs)
	if err != nil {
		panic(err)
	}
	return tmpl
}

// Static returns the embedded css/js tree.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006 3:04 PM")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n])) + "…"
}

func fieldErrors(errs validation.Errors, field string) []string {
	return errs.For(field)
}

func semesters() []int {
	out := make([]int, 0, models.MaxSemester)
	for i := models.MinSemester; i <= models.MaxSemester; i++ {
		out = append(out, i)
	}
	return out
}

// initial is the avatar letter for users without a picture.
func initial(u *models.User) string {
	if u == nil {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(u.DisplayName())
	if r == utf8.RuneError {
		return "?"
	}
	return strings.ToUpper(string(r))
}
