// Package forms описывает формы сайта статическими структурами с тегами validate.
// Имена полей в ошибках совпадают с именами полей HTML-формы (тег form).
package forms

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Field - описание поля для шаблона
type Field struct {
	Name     string
	Label    string
	Type     string // text, textarea, password, select, file
	Required bool
	Help     string
}

type PostForm struct {
	Text  string `form:"text" validate:"required,notblank,max=10000"`
	Group string `form:"group" validate:"omitempty,number"`
}

// GroupID возвращает выбранную группу; пустое поле - без группы
func (f PostForm) GroupID() (*uint, bool) {
	if f.Group == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(f.Group, 10, 64)
	if err != nil || id == 0 {
		return nil, false
	}
	groupID := uint(id)
	return &groupID, true
}

func (PostForm) Fields() []Field {
	return []Field{
		{Name: "text", Label: "Текст поста", Type: "textarea", Required: true, Help: "Текст нового поста"},
		{Name: "group", Label: "Группа", Type: "select", Help: "Группа, к которой будет относиться пост"},
		{Name: "image", Label: "Картинка", Type: "file", Help: "Загрузите картинку"},
	}
}

type CommentForm struct {
	Text string `form:"text" validate:"required,notblank,max=2000"`
}

func (CommentForm) Fields() []Field {
	return []Field{
		{Name: "text", Label: "Текст комментария", Type: "textarea", Required: true},
	}
}

type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

func (LoginForm) Fields() []Field {
	return []Field{
		{Name: "username", Label: "Имя пользователя", Type: "text", Required: true},
		{Name: "password", Label: "Пароль", Type: "password", Required: true},
	}
}

type SignupForm struct {
	Username        string `form:"username" validate:"required,min=3,max=150,username"`
	Password        string `form:"password" validate:"required,min=8,max=128"`
	PasswordConfirm string `form:"password_confirm" validate:"required,eqfield=Password"`
}

func (SignupForm) Fields() []Field {
	return []Field{
		{Name: "username", Label: "Имя пользователя", Type: "text", Required: true, Help: "Буквы, цифры и символы @/./+/-/_"},
		{Name: "password", Label: "Пароль", Type: "password", Required: true},
		{Name: "password_confirm", Label: "Подтверждение пароля", Type: "password", Required: true},
	}
}

func ParsePostForm(r *http.Request) PostForm {
	return PostForm{
		Text:  r.FormValue("text"),
		Group: strings.TrimSpace(r.FormValue("group")),
	}
}

func ParseCommentForm(r *http.Request) CommentForm {
	return CommentForm{Text: r.FormValue("text")}
}

func ParseLoginForm(r *http.Request) LoginForm {
	return LoginForm{
		Username: strings.TrimSpace(r.FormValue("username")),
		Password: r.FormValue("password"),
	}
}

func ParseSignupForm(r *http.Request) SignupForm {
	return SignupForm{
		Username:        strings.TrimSpace(r.FormValue("username")),
		Password:        r.FormValue("password"),
		PasswordConfirm: r.FormValue("password_confirm"),
	}
}

// Errors - ошибки по имени поля формы
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Add запоминает первую ошибку поля
func (e Errors) Add(field, message string) {
	if _, ok := e[field]; !ok {
		e[field] = message
	}
}

// AsErrors достает ошибки формы из цепочки
func AsErrors(err error) (Errors, bool) {
	var formErrs Errors
	if errors.As(err, &formErrs) {
		return formErrs, true
	}
	return nil, false
}

var (
	validate     *validator.Validate
	validateOnce sync.Once

	usernameRe = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("notblank", validators.NotBlank)
		_ = validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernameRe.MatchString(fl.Field().String())
		})
	})
	return validate
}

// Validate проверяет форму; nil - форма корректна
func Validate(form interface{}) Errors {
	err := getValidator().Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Errors{"__all__": err.Error()}
	}

	result := Errors{}
	for _, fe := range fieldErrs {
		result.Add(fe.Field(), translateError(fe))
	}
	return result
}

var errorMessages = map[string]string{
	"required": "Обязательное поле.",
	"notblank": "Обязательное поле.",
	"number":   "Выберите корректный вариант.",
	"username": "Допустимы только буквы, цифры и символы @/./+/-/_.",
	"eqfield":  "Пароли не совпадают.",
}

func translateError(fe validator.FieldError) string {
	if message, ok := errorMessages[fe.Tag()]; ok {
		return message
	}
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("Минимальная длина: %s символов.", fe.Param())
	case "max":
		return fmt.Sprintf("Максимальная длина: %s символов.", fe.Param())
	}
	return fmt.Sprintf("Некорректное значение (%s).", fe.Tag())
}
