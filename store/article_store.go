// Package store is the only path to persisted article state.
package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/codewith-lab/BlogHive/models"
	"gorm.io/gorm"
)

// ErrArticleNotFound is returned when a lookup by name matches nothing.
var ErrArticleNotFound = errors.New("article not found")

// ArticleStore is the keyed read/update surface over article documents.
type ArticleStore interface {
	List(ctx context.Context) ([]models.Article, error)
	GetByName(ctx context.Context, name string) (*models.Article, error)
	// Upvote atomically increments the counter and appends the user id,
	// guarded so a user already present in upvote_ids causes no mutation.
	// Reports whether the vote was applied.
	Upvote(ctx context.Context, name, userID string) (bool, error)
	// AddComment atomically appends a comment to the article's log.
	// Reports whether the article existed; it is never created implicitly.
	AddComment(ctx context.Context, name string, comment models.Comment) (bool, error)
}

// GormArticleStore implements ArticleStore backed by PostgreSQL.
type GormArticleStore struct {
	db *gorm.DB
}

// Compile-time check that GormArticleStore implements ArticleStore.
var _ ArticleStore = (*GormArticleStore)(nil)

func NewArticleStore(db *gorm.DB) *GormArticleStore {
	return &GormArticleStore{db: db}
}

func (s *GormArticleStore) List(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (s *GormArticleStore) GetByName(ctx context.Context, name string) (*models.Article, error) {
	var article models.Article
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&article).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// Upvote is a single conditional UPDATE: the containment guard makes the
// eligibility check and the mutation one statement, so two concurrent votes
// by the same user cannot both increment, and upvotes stays equal to the
// length of upvote_ids.
func (s *GormArticleStore) Upvote(ctx context.Context, name, userID string) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.Article{}).
		Where("name = ? AND NOT upvote_ids @> to_jsonb(?::text)", name, userID).
		Updates(map[string]interface{}{
			"upvotes":    gorm.Expr("upvotes + 1"),
			"upvote_ids": gorm.Expr("upvote_ids || to_jsonb(?::text)", userID),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormArticleStore) AddComment(ctx context.Context, name string, comment models.Comment) (bool, error) {
	payload, err := json.Marshal(comment)
	if err != nil {
		return false, err
	}
	res := s.db.WithContext(ctx).Model(&models.Article{}).
		Where("name = ?", name).
		Update("comments", gorm.Expr("comments || ?::jsonb", string(payload)))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
