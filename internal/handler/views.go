package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"movie-web/internal/movieapi"
	"movie-web/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// StaticFS holds the stylesheet and placeholder image served under /static.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// View is what every page template receives.
type View struct {
	Title   string
	Session session.Snapshot
	Notice  string
	Error   string
	Data    any
}

// Views renders the embedded page templates inside the shared layout.
type Views struct {
	pages map[string]*template.Template
}

func templateFuncs(api *movieapi.Client) template.FuncMap {
	return template.FuncMap{
		"asset":       api.AssetURL,
		"placeholder": func() string { return movieapi.PlaceholderAsset },
		"str": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"num": func(i *int) string {
			if i == nil {
				return ""
			}
			return strconv.Itoa(*i)
		},
		"rating": func(f float64) string { return strconv.FormatFloat(f, 'f', 1, 64) },
		"date":   func(t time.Time) string { return t.Local().Format("2006-01-02 15:04") },
		"has":    func(ids []int, id int) bool { return slices.Contains(ids, id) },
		"scores": func() []int { return []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10} },
	}
}

// NewViews parses every page against the layout.
func NewViews(funcs template.FuncMap) (*Views, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	v := &Views{pages: make(map[string]*template.Template)}
	for _, file := range files {
		name := path.Base(file)
		if name == "layout.html" {
			continue
		}
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		v.pages[strings.TrimSuffix(name, ".html")] = t
	}
	return v, nil
}

// Render writes page with the given status.
func (v *Views) Render(c fiber.Ctx, status int, page string, view View) error {
	t, ok := v.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", view); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}
