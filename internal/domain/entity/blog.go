// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Blog is a single post. Posts are soft-deleted: DeletedAt is set instead of
// removing the row, so they can be restored until a hard delete.
type Blog struct {
	ID              uuid.UUID
	AuthorID        uuid.UUID
	Title           string
	Slug            string // Unique, URL-friendly key derived from the title when absent.
	Excerpt         string
	Content         string
	CoverImage      string
	Published       bool
	MetaTitle       string
	MetaDescription string
	IsActive        bool
	Categories      []string
	Tags            []string
	ViewCount       int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}

// BlogPage is one page of a blog listing plus the paging metadata the
// frontend renders.
type BlogPage struct {
	Items      []*Blog
	Page       int
	Size       int
	TotalItems int64
	TotalPages int
}

// BlogFilter narrows a blog listing. Nil pointer fields mean "no filter".
type BlogFilter struct {
	Query     string // LIKE match on title, excerpt and content.
	Published *bool
	Active    *bool
	Page      int
	Size      int
}
