// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListPublished(ctx context.Context, now time.Time, limit, offset int) ([]*models.Post, error)
	ListByCategory(ctx context.Context, categoryID uint, now time.Time, limit, offset int) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID uint, visibleOnly bool, now time.Time, limit, offset int) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateIndex(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.withCommentCount(r.db.WithContext(ctx)).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) ListPublished(ctx context.Context, now time.Time, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.visibleScope(r.withCommentCount(r.db.WithContext(ctx)), now).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		Order("posts.pub_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByCategory(ctx context.Context, categoryID uint, now time.Time, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.visibleScope(r.withCommentCount(r.db.WithContext(ctx)), now).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		Where("posts.category_id = ?", categoryID).
		Order("posts.pub_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, visibleOnly bool, now time.Time, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	query := r.withCommentCount(r.db.WithContext(ctx))
	if visibleOnly {
		query = r.visibleScope(query, now)
	}
	err := query.
		Preload("Author").
		Preload("Category").
		Preload("Location").
		Where("posts.author_id = ?", authorID).
		Order("posts.pub_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// withCommentCount adds the comments_count annotation via a correlated subquery.
func (r *postRepository) withCommentCount(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Post{}).Select(
		"posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comments_count",
	)
}

// visibleScope restricts the query to posts a non-author viewer may see:
// the post and its category are published and the publication date has passed.
// A post whose category was removed never satisfies the join.
func (r *postRepository) visibleScope(db *gorm.DB, now time.Time) *gorm.DB {
	return db.
		Joins("JOIN categories ON categories.id = posts.category_id").
		Where("posts.is_published = ? AND categories.is_published = ? AND posts.pub_date <= ?", true, true, now)
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	cache.InvalidateIndex(ctx)
	return nil
}

// Delete removes a post and its comments in a single transaction. The comment
// cascade is explicit so it holds on databases without FK enforcement.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, id)
	cache.InvalidateIndex(ctx)
	return nil
}
