package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/VitaminP8/yatube/internal/blog"
)

func (h *Handler) followIndex(w http.ResponseWriter, r *http.Request) {
	who, _ := viewer(r)

	feed, err := h.svc.FollowFeed(r.Context(), who.UserID, r.URL.Query().Get("page"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "follow.html", feedPage{
		base: h.base(r, "Избранные авторы"),
		Feed: feed,
	})
}

// profileFollow и profileUnfollow ведут на профиль автора, даже если ничего не изменилось
func (h *Handler) profileFollow(w http.ResponseWriter, r *http.Request) {
	who, _ := viewer(r)

	author, err := h.svc.Follow(r.Context(), who.UserID, chi.URLParam(r, "username"))
	if err != nil && !errors.Is(err, blog.ErrSelfFollow) {
		h.handleError(w, r, err)
		return
	}

	http.Redirect(w, r, profileURL(author.Username), http.StatusFound)
}

func (h *Handler) profileUnfollow(w http.ResponseWriter, r *http.Request) {
	who, _ := viewer(r)

	author, err := h.svc.Unfollow(r.Context(), who.UserID, chi.URLParam(r, "username"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	http.Redirect(w, r, profileURL(author.Username), http.StatusFound)
}
