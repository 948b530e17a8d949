// Package policy holds the visibility and ownership predicates that gate
// every post and comment operation. Handlers and services consult these
// instead of duplicating ACL checks inline.
package policy

import (
	"time"

	"inkwell/internal/models"
)

// AnonymousViewer is the viewer ID used for unauthenticated requests.
const AnonymousViewer uint = 0

// PostVisible reports whether a post may be shown to the given viewer.
//
// The author always sees their own posts. Everyone else sees a post only when
// it is published, its category exists and is published, and its publication
// date is not in the future. A post without a category is therefore visible
// to its author alone.
func PostVisible(post *models.Post, viewerID uint, now time.Time) bool {
	if post == nil {
		return false
	}
	if viewerID != AnonymousViewer && post.AuthorID == viewerID {
		return true
	}
	if !post.IsPublished {
		return false
	}
	if post.Category == nil || !post.Category.IsPublished {
		return false
	}
	return !post.PubDate.After(now)
}

// CanEditPost reports whether the viewer may edit the post.
func CanEditPost(post *models.Post, viewerID uint) bool {
	return post != nil && viewerID != AnonymousViewer && post.AuthorID == viewerID
}

// CanDeletePost reports whether the viewer may delete the post.
func CanDeletePost(post *models.Post, viewerID uint) bool {
	return CanEditPost(post, viewerID)
}

// CanEditComment reports whether the viewer may edit the comment. Ownership
// is over the comment, not the post it belongs to.
func CanEditComment(comment *models.Comment, viewerID uint) bool {
	return comment != nil && viewerID != AnonymousViewer && comment.AuthorID == viewerID
}

// CanDeleteComment reports whether the viewer may delete the comment.
func CanDeleteComment(comment *models.Comment, viewerID uint) bool {
	return CanEditComment(comment, viewerID)
}
