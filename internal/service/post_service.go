// Package service implements the business rules on top of the repositories.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/policy"
	"inkwell/internal/repository"
)

// ErrNotOwner reports an edit attempt on somebody else's post. The handler
// turns it into a redirect to the post's detail page rather than an error
// response, so the post is shown instead of a denial.
var ErrNotOwner = errors.New("post belongs to another author")

type PostService struct {
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
	userRepo     repository.UserRepository
}

type CreatePostInput struct {
	AuthorID    uint
	Title       string
	Text        string
	PubDate     time.Time
	CategoryID  *uint
	LocationID  *uint
	ImageURL    string
	IsPublished *bool
}

type UpdatePostInput struct {
	ViewerID    uint
	PostID      uint
	Title       string
	Text        string
	PubDate     *time.Time
	CategoryID  *uint
	LocationID  *uint
	ImageURL    string
	IsPublished *bool
}

type ListPostsInput struct {
	Limit  int
	Offset int
}

func NewPostService(
	postRepo repository.PostRepository,
	categoryRepo repository.CategoryRepository,
	locationRepo repository.LocationRepository,
	userRepo repository.UserRepository,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		userRepo:     userRepo,
	}
}

const maxTitleLen = 256

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 256 characters)")
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if in.PubDate.IsZero() {
		return nil, models.NewValidationError("Publication date is required")
	}

	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	if err := s.checkLocation(ctx, in.LocationID); err != nil {
		return nil, err
	}

	published := true
	if in.IsPublished != nil {
		published = *in.IsPublished
	}

	post := &models.Post{
		Title:       title,
		Text:        text,
		PubDate:     in.PubDate,
		AuthorID:    in.AuthorID,
		CategoryID:  in.CategoryID,
		LocationID:  in.LocationID,
		ImageURL:    in.ImageURL,
		IsPublished: published,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// GetPost returns the post when the viewer may see it. Hidden posts report
// not found, never forbidden, so their existence is not leaked.
func (s *PostService) GetPost(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.PostVisible(post, viewerID, time.Now()) {
		return nil, models.NewNotFoundError("Post", id)
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	return s.postRepo.ListPublished(ctx, time.Now(), in.Limit, in.Offset)
}

// ListCategoryPosts lists the visible posts of a published category. Unknown
// and unpublished slugs both report not found.
func (s *PostService) ListCategoryPosts(ctx context.Context, slug string, limit, offset int) (*models.Category, []*models.Post, error) {
	category, err := s.categoryRepo.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	posts, err := s.postRepo.ListByCategory(ctx, category.ID, time.Now(), limit, offset)
	if err != nil {
		return nil, nil, err
	}
	return category, posts, nil
}

// ListUserPosts lists a profile's posts. Authors browsing their own profile
// see everything they wrote, including drafts and scheduled posts.
func (s *PostService) ListUserPosts(ctx context.Context, username string, viewerID uint, limit, offset int) (*models.User, []*models.Post, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	visibleOnly := user.ID != viewerID
	posts, err := s.postRepo.ListByAuthor(ctx, user.ID, visibleOnly, time.Now(), limit, offset)
	if err != nil {
		return nil, nil, err
	}
	return user, posts, nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if !policy.CanEditPost(post, in.ViewerID) {
		return nil, ErrNotOwner
	}

	if title := strings.TrimSpace(in.Title); title != "" {
		if len(title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 256 characters)")
		}
		post.Title = title
	}
	if text := strings.TrimSpace(in.Text); text != "" {
		post.Text = text
	}
	if in.PubDate != nil {
		post.PubDate = *in.PubDate
	}
	if in.CategoryID != nil {
		if err := s.checkCategory(ctx, in.CategoryID); err != nil {
			return nil, err
		}
		post.CategoryID = in.CategoryID
	}
	if in.LocationID != nil {
		if err := s.checkLocation(ctx, in.LocationID); err != nil {
			return nil, err
		}
		post.LocationID = in.LocationID
	}
	if in.ImageURL != "" {
		post.ImageURL = in.ImageURL
	}
	if in.IsPublished != nil {
		post.IsPublished = *in.IsPublished
	}

	// Save with associations cleared so Preloaded structs are not re-inserted.
	post.Author = models.User{}
	post.Category = nil
	post.Location = nil
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) DeletePost(ctx context.Context, viewerID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if !policy.CanDeletePost(post, viewerID) {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}

func (s *PostService) checkCategory(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}
	category, err := s.categoryRepo.GetByID(ctx, *id)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return models.NewValidationError("Category does not exist")
		}
		return err
	}
	if !category.IsPublished {
		return models.NewValidationError("Category is not accepting posts")
	}
	return nil
}

func (s *PostService) checkLocation(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}
	location, err := s.locationRepo.GetByID(ctx, *id)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return models.NewValidationError("Location does not exist")
		}
		return err
	}
	if !location.IsPublished {
		return models.NewValidationError("Location is not available")
	}
	return nil
}
