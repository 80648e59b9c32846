package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// Article is the persisted article document. Name is the lookup key used by
// the API; list-valued fields live in jsonb columns so the store can mutate
// them with single atomic statements.
type Article struct {
	gorm.Model `json:"-"`
	Name       string      `gorm:"uniqueIndex;not null" json:"name"`
	Title      string      `json:"title"`
	Content    StringList  `gorm:"type:jsonb;not null;default:'[]'" json:"content"`
	Upvotes    int         `gorm:"not null;default:0" json:"upvotes"`
	UpvoteIDs  StringList  `gorm:"column:upvote_ids;type:jsonb;not null;default:'[]'" json:"upvoteIds"`
	Comments   CommentList `gorm:"type:jsonb;not null;default:'[]'" json:"comments"`
}

// Comment is embedded in an article's comment log. Immutable once appended.
type Comment struct {
	PostedBy string `json:"postedBy"`
	Text     string `json:"text"`
}

// CanUpvote reports whether the given identity may upvote this article:
// the caller must be authenticated and must not have upvoted it before.
func (a *Article) CanUpvote(id Identity) bool {
	return id.ID != "" && !a.UpvoteIDs.Contains(id.ID)
}

// StringList is a jsonb-backed list of strings.
type StringList []string

func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("unsupported type for StringList: %T", value)
}

// CommentList is a jsonb-backed, append-only list of comments.
type CommentList []Comment

func (l CommentList) Value() (driver.Value, error) {
	if l == nil {
		l = CommentList{}
	}
	return json.Marshal(l)
}

func (l *CommentList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = CommentList{}
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("unsupported type for CommentList: %T", value)
}
