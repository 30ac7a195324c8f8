package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/VitaminP8/yatube/internal/blog"
	"github.com/VitaminP8/yatube/internal/forms"
	"github.com/VitaminP8/yatube/internal/media"
	"github.com/VitaminP8/yatube/models"
)

// запас на текстовые поля формы сверх размера картинки
const formOverhead = 1 << 20

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	feed, err := h.svc.IndexFeed(r.Context(), r.URL.Query().Get("page"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "index.html", feedPage{
		base: h.base(r, "Последние обновления на сайте"),
		Feed: feed,
	})
}

func (h *Handler) groupPosts(w http.ResponseWriter, r *http.Request) {
	g, feed, err := h.svc.GroupFeed(r.Context(), chi.URLParam(r, "slug"), r.URL.Query().Get("page"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "group_list.html", feedPage{
		base:  h.base(r, "Записи сообщества "+g.Title),
		Feed:  feed,
		Group: g,
	})
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	var viewerID uint
	if id, ok := viewer(r); ok {
		viewerID = id.UserID
	}

	profile, err := h.svc.ProfileFeed(r.Context(), chi.URLParam(r, "username"), viewerID, r.URL.Query().Get("page"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "profile.html", feedPage{
		base:    h.base(r, "Профайл пользователя "+profile.Author.Username),
		Feed:    profile.Feed,
		Profile: profile,
	})
}

// postDetail показывает пост и принимает комментарий.
// POST от анонима игнорируется: комментарий не создается, страница рендерится как при GET.
func (h *Handler) postDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		h.notFound(w, r)
		return
	}

	form := forms.CommentForm{}
	var formErrs forms.Errors

	if who, loggedIn := viewer(r); r.Method == http.MethodPost && loggedIn {
		form = forms.ParseCommentForm(r)
		_, err := h.svc.AddComment(r.Context(), id, who.UserID, form)
		if err == nil {
			http.Redirect(w, r, detailURL(id), http.StatusSeeOther)
			return
		}
		errs, isFormErr := forms.AsErrors(err)
		if !isFormErr {
			h.handleError(w, r, err)
			return
		}
		formErrs = errs
	}

	detail, err := h.svc.PostDetail(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	who, _ := viewer(r)
	h.render(w, r, http.StatusOK, "post_detail.html", detailPage{
		base:   h.base(r, "Пост "+truncate(detail.Post.Text, 30)),
		Detail: detail,
		Form: formView{
			Fields: form.Fields(),
			Values: map[string]string{"text": form.Text},
			Errors: formErrs,
		},
		IsOwner: who.UserID != 0 && who.UserID == detail.Post.AuthorID,
	})
}

// addComment: некорректный комментарий молча отбрасывается, ответ - всегда редирект на пост
func (h *Handler) addComment(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		h.notFound(w, r)
		return
	}
	who, _ := viewer(r)

	_, err := h.svc.AddComment(r.Context(), id, who.UserID, forms.ParseCommentForm(r))
	if err != nil {
		if _, isFormErr := forms.AsErrors(err); !isFormErr {
			h.handleError(w, r, err)
			return
		}
	}

	http.Redirect(w, r, detailURL(id), http.StatusSeeOther)
}

func (h *Handler) postCreate(w http.ResponseWriter, r *http.Request) {
	who, _ := viewer(r)

	if r.Method != http.MethodPost {
		h.renderPostForm(w, r, nil, forms.PostForm{}, nil)
		return
	}

	upload, closeUpload, err := h.readUpload(w, r)
	defer closeUpload()
	form := forms.ParsePostForm(r)
	if err != nil {
		h.postFormError(w, r, nil, form, err)
		return
	}

	if _, err := h.svc.CreatePost(r.Context(), who.UserID, form, upload); err != nil {
		h.postFormError(w, r, nil, form, err)
		return
	}

	http.Redirect(w, r, profileURL(who.Username), http.StatusSeeOther)
}

func (h *Handler) postEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		h.notFound(w, r)
		return
	}
	who, _ := viewer(r)

	p, err := h.svc.PostForEdit(r.Context(), id, who.UserID)
	if err != nil {
		h.editError(w, r, id, err)
		return
	}

	if r.Method != http.MethodPost {
		form := forms.PostForm{Text: p.Text}
		if p.GroupID != nil {
			form.Group = strconv.FormatUint(uint64(*p.GroupID), 10)
		}
		h.renderPostForm(w, r, p, form, nil)
		return
	}

	upload, closeUpload, err := h.readUpload(w, r)
	defer closeUpload()
	form := forms.ParsePostForm(r)
	if err != nil {
		h.postFormError(w, r, p, form, err)
		return
	}

	if _, err := h.svc.EditPost(r.Context(), id, who.UserID, form, upload); err != nil {
		var authErr *blog.AuthorizationError
		if errors.As(err, &authErr) {
			h.editError(w, r, id, err)
			return
		}
		h.postFormError(w, r, p, form, err)
		return
	}

	http.Redirect(w, r, detailURL(id), http.StatusSeeOther)
}

// editError: чужой пост - тихий редирект на страницу поста
func (h *Handler) editError(w http.ResponseWriter, r *http.Request, id uint, err error) {
	var authErr *blog.AuthorizationError
	if errors.As(err, &authErr) {
		http.Redirect(w, r, detailURL(id), http.StatusFound)
		return
	}
	h.handleError(w, r, err)
}

// postFormError перерисовывает форму с ошибками полей или отдает 404/500
func (h *Handler) postFormError(w http.ResponseWriter, r *http.Request, p *models.Post, form forms.PostForm, err error) {
	errs, ok := forms.AsErrors(err)
	if !ok {
		h.handleError(w, r, err)
		return
	}
	h.renderPostForm(w, r, p, form, errs)
}

func (h *Handler) renderPostForm(w http.ResponseWriter, r *http.Request, p *models.Post, form forms.PostForm, errs forms.Errors) {
	groups, err := h.svc.Groups(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	page := postFormPage{
		base: h.base(r, "Новый пост"),
		Form: formView{
			Fields: form.Fields(),
			Values: map[string]string{"text": form.Text, "group": form.Group},
			Errors: errs,
			Groups: groups,
		},
		Action: "/create/",
	}
	if p != nil {
		page.Title = "Редактировать пост"
		page.IsEdit = true
		page.Post = p
		page.Action = fmt.Sprintf("/posts/%d/edit/", p.ID)
	}

	h.render(w, r, http.StatusOK, "create_post.html", page)
}

// readUpload разбирает форму и достает необязательную картинку.
// Возвращаемую функцию нужно вызвать, когда файл больше не нужен.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) (*media.Upload, func(), error) {
	noop := func() {}
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadSize+formOverhead)

	if err := r.ParseMultipartForm(formOverhead); err != nil {
		// обычная urlencoded-форма без файла; поля уже разобраны
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, noop, forms.Errors{"image": "Файл слишком большой."}
		}
		return nil, noop, forms.Errors{"__all__": "Не удалось прочитать форму."}
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, fmt.Errorf("could not read image: %w", err)
	}
	// пустое поле файла в некоторых браузерах приходит как файл без имени
	if header.Filename == "" && header.Size == 0 {
		_ = file.Close()
		return nil, noop, nil
	}

	upload := &media.Upload{File: file, Filename: header.Filename, Size: header.Size}
	return upload, func() { _ = file.Close() }, nil
}

func detailURL(id uint) string {
	return fmt.Sprintf("/posts/%d/", id)
}

func profileURL(username string) string {
	return "/profile/" + username + "/"
}
