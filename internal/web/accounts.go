package web

import (
	"net/http"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/forms"
	"github.com/VitaminP8/yatube/internal/logging"
	"github.com/VitaminP8/yatube/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	next := auth.SafeNext(r.FormValue("next"))

	if r.Method != http.MethodPost {
		h.renderAuth(w, r, "login.html", "Войти", forms.LoginForm{}.Fields(), nil, nil, next)
		return
	}

	form := forms.ParseLoginForm(r)
	u, err := h.svc.Login(r.Context(), form)
	if err != nil {
		errs, ok := forms.AsErrors(err)
		if !ok {
			h.serverError(w, r, err)
			return
		}
		values := map[string]string{"username": form.Username}
		h.renderAuth(w, r, "login.html", "Войти", form.Fields(), values, errs, next)
		return
	}

	if err := h.startSession(w, u); err != nil {
		h.serverError(w, r, err)
		return
	}
	logging.Ctx(r.Context()).Info().Uint("user_id", u.ID).Msg("user logged in")
	http.Redirect(w, r, next, http.StatusSeeOther)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.renderAuth(w, r, "signup.html", "Регистрация", forms.SignupForm{}.Fields(), nil, nil, "")
		return
	}

	form := forms.ParseSignupForm(r)
	u, err := h.svc.Signup(r.Context(), form)
	if err != nil {
		errs, ok := forms.AsErrors(err)
		if !ok {
			h.serverError(w, r, err)
			return
		}
		values := map[string]string{"username": form.Username}
		h.renderAuth(w, r, "signup.html", "Регистрация", form.Fields(), values, errs, "")
		return
	}

	if err := h.startSession(w, u); err != nil {
		h.serverError(w, r, err)
		return
	}
	logging.Ctx(r.Context()).Info().Uint("user_id", u.ID).Msg("user signed up")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.opts.SecureCookie)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) startSession(w http.ResponseWriter, u *models.User) error {
	token, err := auth.IssueToken(h.opts.JWTSecret, auth.Identity{UserID: u.ID, Username: u.Username}, h.opts.SessionTTL, h.now())
	if err != nil {
		return err
	}
	auth.SetSessionCookie(w, token, h.opts.SessionTTL, h.opts.SecureCookie)
	return nil
}

func (h *Handler) renderAuth(w http.ResponseWriter, r *http.Request, name, title string, fields []forms.Field, values map[string]string, errs forms.Errors, next string) {
	h.render(w, r, http.StatusOK, name, authPage{
		base: h.base(r, title),
		Form: formView{Fields: fields, Values: values, Errors: errs},
		Next: next,
	})
}
