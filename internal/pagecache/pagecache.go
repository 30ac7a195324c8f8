// Package pagecache хранит отрендеренные страницы ограниченное время.
// Сброс - только истечение TTL или явный Clear.
package pagecache

import (
	"bytes"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/VitaminP8/yatube/internal/metrics"
)

// Entry - сохраненный ответ
type Entry struct {
	Status      int
	ContentType string
	Body        []byte
}

type Cache interface {
	Get(key string) (Entry, bool)
	Set(key string, entry Entry)
	Clear()
	Len() int
}

type LRUCache struct {
	lru *expirable.LRU[string, Entry]
}

// New создает LRU на size записей, каждая живет ttl
func New(size int, ttl time.Duration) *LRUCache {
	return &LRUCache{lru: expirable.NewLRU[string, Entry](size, nil, ttl)}
}

func (c *LRUCache) Get(key string) (Entry, bool) {
	return c.lru.Get(key)
}

func (c *LRUCache) Set(key string, entry Entry) {
	c.lru.Add(key, entry)
}

func (c *LRUCache) Clear() {
	c.lru.Purge()
}

func (c *LRUCache) Len() int {
	return c.lru.Len()
}

// Key собирает ключ prefix:vary:RequestURI
func Key(prefix, vary string, r *http.Request) string {
	return prefix + ":" + vary + ":" + r.URL.RequestURI()
}

// Middleware кеширует успешные GET-ответы. vary различает зрителей,
// чтобы персональная навигация одного пользователя не попала другому.
func Middleware(c Cache, prefix string, vary func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			variant := ""
			if vary != nil {
				variant = vary(r)
			}
			key := Key(prefix, variant, r)

			if entry, ok := c.Get(key); ok {
				metrics.RecordCacheLookup(prefix, true)
				if entry.ContentType != "" {
					w.Header().Set("Content-Type", entry.ContentType)
				}
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(entry.Status)
				_, _ = w.Write(entry.Body)
				return
			}
			metrics.RecordCacheLookup(prefix, false)

			var buf bytes.Buffer
			w.Header().Set("X-Cache", "MISS")
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Tee(&buf)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			if status != http.StatusOK {
				return
			}
			c.Set(key, Entry{
				Status:      status,
				ContentType: ww.Header().Get("Content-Type"),
				Body:        append([]byte(nil), buf.Bytes()...),
			})
		})
	}
}
