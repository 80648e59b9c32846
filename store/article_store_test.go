package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/codewith-lab/BlogHive/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockStore creates a store over a sqlmock connection with automatic
// cleanup and expectation checking.
func newMockStore(t *testing.T) (*GormArticleStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		db.Close()
	})

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}
	return NewArticleStore(gdb), mock
}

var articleColumns = []string{
	"id", "created_at", "updated_at", "deleted_at",
	"name", "title", "content", "upvotes", "upvote_ids", "comments",
}

func articleRow(name string, upvotes int, upvoteIDs, comments string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(articleColumns).AddRow(
		1, now, now, nil,
		name, "A Title", []byte(`[]`), upvotes, []byte(upvoteIDs), []byte(comments),
	)
}

func TestGetByName(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "articles" WHERE name = $1`)).
		WillReturnRows(articleRow("learn-react", 2, `["u1","u2"]`, `[{"postedBy":"a@x.com","text":"nice post"}]`))

	article, err := s.GetByName(context.Background(), "learn-react")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if article.Name != "learn-react" || article.Upvotes != 2 {
		t.Errorf("article = %+v", article)
	}
	if len(article.UpvoteIDs) != 2 || !article.UpvoteIDs.Contains("u1") {
		t.Errorf("upvote ids = %v", article.UpvoteIDs)
	}
	if len(article.Comments) != 1 || article.Comments[0].PostedBy != "a@x.com" {
		t.Errorf("comments = %v", article.Comments)
	}
	if article.Upvotes != len(article.UpvoteIDs) {
		t.Errorf("invariant violated: upvotes=%d len(upvoteIds)=%d", article.Upvotes, len(article.UpvoteIDs))
	}
}

func TestGetByName_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "articles" WHERE name = $1`)).
		WillReturnRows(sqlmock.NewRows(articleColumns))

	_, err := s.GetByName(context.Background(), "ghost")
	if !errors.Is(err, ErrArticleNotFound) {
		t.Errorf("err = %v, want ErrArticleNotFound", err)
	}
}

func TestGetByName_StoreError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "articles" WHERE name = $1`)).
		WillReturnError(sql.ErrConnDone)

	_, err := s.GetByName(context.Background(), "learn-react")
	if err == nil || errors.Is(err, ErrArticleNotFound) {
		t.Errorf("err = %v, want a store error distinct from not-found", err)
	}
}

func TestUpvote_Applied(t *testing.T) {
	s, mock := newMockStore(t)

	// Increment and append happen in one guarded statement.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "articles" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	applied, err := s.Upvote(context.Background(), "learn-react", "u1")
	if err != nil {
		t.Fatalf("Upvote: %v", err)
	}
	if !applied {
		t.Error("applied = false, want true for a first-time voter")
	}
}

func TestUpvote_AlreadyVotedOrMissing(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "articles" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	applied, err := s.Upvote(context.Background(), "learn-react", "u1")
	if err != nil {
		t.Fatalf("Upvote: %v", err)
	}
	if applied {
		t.Error("applied = true, want false when the guard matches no row")
	}
}

func TestAddComment(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "articles" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	found, err := s.AddComment(context.Background(), "learn-react", models.Comment{PostedBy: "a@x.com", Text: "hi"})
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if !found {
		t.Error("found = false, want true")
	}
}

func TestAddComment_MissingArticle(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "articles" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	found, err := s.AddComment(context.Background(), "ghost", models.Comment{Text: "hi"})
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if found {
		t.Error("found = true, want false: missing articles are never created")
	}
}

func TestList(t *testing.T) {
	s, mock := newMockStore(t)

	rows := articleRow("learn-node", 0, `[]`, `[]`)
	now := time.Now()
	rows.AddRow(2, now, now, nil, "learn-react", "Another", []byte(`[]`), 1, []byte(`["u1"]`), []byte(`[]`))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "articles"`)).
		WillReturnRows(rows)

	articles, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("len = %d, want 2", len(articles))
	}
	if articles[0].Name != "learn-node" || articles[1].Name != "learn-react" {
		t.Errorf("articles = %v, %v", articles[0].Name, articles[1].Name)
	}
}
