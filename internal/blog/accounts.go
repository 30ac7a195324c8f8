package blog

import (
	"context"
	"errors"

	"github.com/VitaminP8/yatube/internal/forms"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

// Signup регистрирует пользователя; занятое имя - ошибка поля формы
func (s *Service) Signup(ctx context.Context, form forms.SignupForm) (*models.User, error) {
	if errs := forms.Validate(form); errs != nil {
		return nil, errs
	}

	u, err := s.UserStore.CreateUser(ctx, form.Username, form.Password)
	if errors.Is(err, storage.ErrAlreadyExists) {
		return nil, forms.Errors{"username": "Пользователь с таким именем уже существует."}
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Login проверяет имя и пароль
func (s *Service) Login(ctx context.Context, form forms.LoginForm) (*models.User, error) {
	if errs := forms.Validate(form); errs != nil {
		return nil, errs
	}

	u, err := s.UserStore.Authenticate(ctx, form.Username, form.Password)
	if errors.Is(err, storage.ErrInvalidCredentials) {
		return nil, forms.Errors{"__all__": "Введите правильные имя пользователя и пароль."}
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
