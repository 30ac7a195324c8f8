package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/blog"
	"github.com/VitaminP8/yatube/internal/forms"
	"github.com/VitaminP8/yatube/internal/logging"
	"github.com/VitaminP8/yatube/internal/media"
	"github.com/VitaminP8/yatube/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

var templateFuncs = template.FuncMap{
	"mediaURL": media.URL,
	"date": func(t time.Time) string {
		return t.Format("02.01.2006 15:04")
	},
	"truncate": truncate,
	"uintStr": func(id uint) string {
		return strconv.FormatUint(uint64(id), 10)
	},
}

// truncate обрезает строку до n символов (не байт)
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "…"
}

// parseTemplates собирает каждую страницу вместе с layout
func parseTemplates() (map[string]*template.Template, error) {
	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	result := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		if page == layoutFile {
			continue
		}
		tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, layoutFile, page)
		if err != nil {
			return nil, fmt.Errorf("could not parse %s: %w", page, err)
		}
		result[page[len("templates/"):]] = tmpl
	}
	return result, nil
}

// base - общие для всех страниц данные
type base struct {
	Title    string
	Viewer   auth.Identity
	LoggedIn bool
}

func (h *Handler) base(r *http.Request, title string) base {
	id, ok := auth.IdentityFromContext(r.Context())
	return base{Title: title, Viewer: id, LoggedIn: ok}
}

type feedPage struct {
	base
	Feed    *blog.Feed
	Group   *models.Group
	Profile *blog.Profile
}

type detailPage struct {
	base
	Detail  *blog.Detail
	Form    formView
	IsOwner bool
}

type postFormPage struct {
	base
	Form   formView
	IsEdit bool
	Post   *models.Post
	Action string
}

type authPage struct {
	base
	Form formView
	Next string
}

type errorPage struct {
	base
	Path string
}

// formView - форма для шаблона: объявленные поля, введенные значения, ошибки
type formView struct {
	Fields []forms.Field
	Values map[string]string
	Errors forms.Errors
	Groups []*models.Group
}

// render сначала рендерит в буфер: ошибка шаблона не должна оставить полстраницы
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data interface{}) {
	tmpl, ok := h.templates[name]
	if !ok {
		logging.Ctx(r.Context()).Error().Str("template", name).Msg("template not found")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("template", name).Msg("template execution failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "404.html", errorPage{
		base: h.base(r, "Страница не найдена"),
		Path: r.URL.Path,
	})
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	h.render(w, r, http.StatusInternalServerError, "500.html", errorPage{
		base: h.base(r, "Ошибка сервера"),
		Path: r.URL.Path,
	})
}

// handleError: NotFound - страница 404, остальное - 500
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if blog.IsNotFound(err) {
		h.notFound(w, r)
		return
	}
	h.serverError(w, r, err)
}
