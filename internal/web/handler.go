// Package web - HTML-интерфейс сайта: роутер, обработчики, шаблоны.
package web

import (
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/blog"
	"github.com/VitaminP8/yatube/internal/logging"
	"github.com/VitaminP8/yatube/internal/media"
	"github.com/VitaminP8/yatube/internal/metrics"
	"github.com/VitaminP8/yatube/internal/pagecache"
)

const (
	loginURL = "/auth/login/"

	// IndexCachePrefix - префикс ключей кеша главной страницы
	IndexCachePrefix = "index_page"
)

type Options struct {
	JWTSecret    string
	SessionTTL   time.Duration
	SecureCookie bool
	// LoginRateLimit - попыток входа с IP в минуту; 0 - без ограничения
	LoginRateLimit int
	MaxUploadSize  int64
	Metrics        bool
}

type Handler struct {
	svc       *blog.Service
	cache     pagecache.Cache
	media     *media.Store
	opts      Options
	templates map[string]*template.Template
	now       func() time.Time
}

func NewHandler(svc *blog.Service, cache pagecache.Cache, store *media.Store, opts Options) (*Handler, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	if opts.MaxUploadSize <= 0 {
		opts.MaxUploadSize = 5 << 20
	}

	return &Handler{
		svc:       svc,
		cache:     cache,
		media:     store,
		opts:      opts,
		templates: templates,
		now:       time.Now,
	}, nil
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger)
	r.Use(middleware.Recoverer)
	if h.opts.Metrics {
		r.Use(metrics.Middleware)
	}
	r.Use(auth.Session(h.opts.JWTSecret))

	r.NotFound(h.notFound)

	r.With(pagecache.Middleware(h.cache, IndexCachePrefix, viewerKey)).Get("/", h.index)
	r.Get("/group/{slug}/", h.groupPosts)
	r.Get("/profile/{username}/", h.profile)
	r.Get("/posts/{id:[0-9]+}/", h.postDetail)
	// аноним может отправить форму, она молча игнорируется
	r.Post("/posts/{id:[0-9]+}/", h.postDetail)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireLogin(loginURL))

		r.Get("/create/", h.postCreate)
		r.Post("/create/", h.postCreate)
		r.Get("/posts/{id:[0-9]+}/edit/", h.postEdit)
		r.Post("/posts/{id:[0-9]+}/edit/", h.postEdit)
		r.Post("/posts/{id:[0-9]+}/comment/", h.addComment)
		r.Get("/follow/", h.followIndex)
		r.Get("/profile/{username}/follow/", h.profileFollow)
		r.Get("/profile/{username}/unfollow/", h.profileUnfollow)
	})

	r.Get("/auth/login/", h.login)
	if h.opts.LoginRateLimit > 0 {
		r.With(httprate.LimitByIP(h.opts.LoginRateLimit, time.Minute)).Post("/auth/login/", h.login)
	} else {
		r.Post("/auth/login/", h.login)
	}
	r.Get("/auth/signup/", h.signup)
	r.Post("/auth/signup/", h.signup)
	r.Get("/auth/logout/", h.logout)

	if h.media != nil {
		r.Handle("/media/*", http.StripPrefix("/media", h.media.Handler()))
	}
	if h.opts.Metrics {
		r.Handle("/metrics", metrics.Handler())
	}

	return r
}

// viewerKey разделяет кеш главной страницы по пользователям
func viewerKey(r *http.Request) string {
	if id, ok := auth.IdentityFromContext(r.Context()); ok {
		return strconv.FormatUint(uint64(id.UserID), 10)
	}
	return "anon"
}

// postID достает числовой id из пути; false - отдать 404
func postID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// viewer - вошедший пользователь; обработчики под RequireLogin всегда его имеют
func viewer(r *http.Request) (auth.Identity, bool) {
	return auth.IdentityFromContext(r.Context())
}
