package blog

import (
	"context"
	"errors"

	"github.com/VitaminP8/yatube/internal/forms"
	"github.com/VitaminP8/yatube/internal/logging"
	"github.com/VitaminP8/yatube/internal/media"
	"github.com/VitaminP8/yatube/internal/metrics"
	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

type Detail struct {
	Post     *models.Post
	Comments []*models.Comment
	// AuthorPostCount - сколько всего постов у автора
	AuthorPostCount int
}

func (s *Service) PostDetail(ctx context.Context, postID uint) (*Detail, error) {
	p, err := s.PostStore.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.CommentStore.ListComments(ctx, postID)
	if err != nil {
		return nil, err
	}

	count, err := s.PostStore.CountPosts(ctx, post.Filter{AuthorID: &p.AuthorID})
	if err != nil {
		return nil, err
	}

	return &Detail{Post: p, Comments: comments, AuthorPostCount: count}, nil
}

// AddComment возвращает forms.Errors, если текст не прошел проверку
func (s *Service) AddComment(ctx context.Context, postID, authorID uint, form forms.CommentForm) (*models.Comment, error) {
	if errs := forms.Validate(form); errs != nil {
		return nil, errs
	}

	c, err := s.CommentStore.CreateComment(ctx, postID, authorID, form.Text)
	if err != nil {
		return nil, err
	}

	metrics.CommentsCreated.Inc()
	logging.Ctx(ctx).Info().Uint("post_id", postID).Uint("author_id", authorID).Msg("comment created")
	return c, nil
}

// CreatePost сохраняет пост автора; upload может быть nil
func (s *Service) CreatePost(ctx context.Context, authorID uint, form forms.PostForm, upload *media.Upload) (*models.Post, error) {
	groupID, errs := s.validatePost(ctx, form)
	if errs != nil {
		return nil, errs
	}

	image, err := s.saveImage(upload)
	if err != nil {
		return nil, err
	}

	p, err := s.PostStore.CreatePost(ctx, authorID, form.Text, groupID, image)
	if err != nil {
		return nil, err
	}

	metrics.PostsCreated.Inc()
	logging.Ctx(ctx).Info().Uint("post_id", p.ID).Uint("author_id", authorID).Msg("post created")
	return p, nil
}

// PostForEdit отдает пост для редактирования только автору
func (s *Service) PostForEdit(ctx context.Context, postID, viewerID uint) (*models.Post, error) {
	p, err := s.PostStore.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.AuthorID != viewerID {
		return nil, &AuthorizationError{UserID: viewerID, PostID: postID}
	}
	return p, nil
}

// EditPost перезаписывает пост на месте. Пустая группа снимает группу,
// отсутствие новой картинки оставляет прежнюю.
func (s *Service) EditPost(ctx context.Context, postID, viewerID uint, form forms.PostForm, upload *media.Upload) (*models.Post, error) {
	p, err := s.PostForEdit(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}

	groupID, errs := s.validatePost(ctx, form)
	if errs != nil {
		return nil, errs
	}

	image := p.Image
	if upload != nil {
		image, err = s.saveImage(upload)
		if err != nil {
			return nil, err
		}
	}

	updated, err := s.PostStore.UpdatePost(ctx, postID, form.Text, groupID, image)
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().Uint("post_id", postID).Msg("post updated")
	return updated, nil
}

func (s *Service) validatePost(ctx context.Context, form forms.PostForm) (*uint, forms.Errors) {
	errs := forms.Validate(form)
	if errs == nil {
		errs = forms.Errors{}
	}

	groupID, ok := form.GroupID()
	if !ok {
		errs.Add("group", "Выберите корректный вариант.")
	} else if groupID != nil {
		if _, err := s.GroupStore.GetGroupByID(ctx, *groupID); err != nil {
			// ошибки хранилища тоже показываем как неверный выбор
			errs.Add("group", "Выберите корректный вариант.")
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return groupID, nil
}

// saveImage переводит отказ хранилища картинок в ошибку поля формы
func (s *Service) saveImage(upload *media.Upload) (string, error) {
	if upload == nil {
		return "", nil
	}
	if s.Images == nil {
		return "", errors.New("image storage is not configured")
	}

	rel, err := s.Images.Save(upload)
	switch {
	case errors.Is(err, media.ErrTooLarge):
		return "", forms.Errors{"image": "Файл слишком большой."}
	case errors.Is(err, media.ErrNotImage):
		return "", forms.Errors{"image": "Загрузите правильное изображение. Файл, который вы загрузили, поврежден или не является изображением."}
	case err != nil:
		return "", err
	}
	return rel, nil
}

// IsNotFound - объект не существует
func IsNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}
