package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/codewith-lab/BlogHive/middlewares"
	"github.com/codewith-lab/BlogHive/models"
	"github.com/codewith-lab/BlogHive/store"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

var cacheKey = "articles"

// ArticleController serves the article read and mutation routes. The store
// handle and cache client are injected once at startup.
type ArticleController struct {
	store store.ArticleStore
	cache *redis.Client
}

func NewArticleController(s store.ArticleStore, cache *redis.Client) *ArticleController {
	return &ArticleController{store: s, cache: cache}
}

// articleResponse augments an article with the caller-specific upvote
// eligibility flag. Only the GET-by-name route carries it.
type articleResponse struct {
	*models.Article
	CanUpvote bool `json:"canUpvote"`
}

func (ac *ArticleController) GetArticles(c *gin.Context) {
	var articles []models.Article
	ctx := c.Request.Context()

	if ac.cache != nil {
		if cachedData, err := ac.cache.Get(ctx, cacheKey).Result(); err == nil {
			if err := json.Unmarshal([]byte(cachedData), &articles); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, articles)
			return
		} else if err != redis.Nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	articles, err := ac.store.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if ac.cache != nil {
		articlesJSON, err := json.Marshal(articles)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := ac.cache.Set(ctx, cacheKey, articlesJSON, 10*time.Minute).Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, articles)
}

func (ac *ArticleController) GetArticleByName(c *gin.Context) {
	name := c.Param("name")
	identity := middlewares.IdentityFrom(c)

	article, err := ac.store.GetByName(c.Request.Context(), name)
	if errors.Is(err, store.ErrArticleNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, articleResponse{
		Article:   article,
		CanUpvote: article.CanUpvote(identity),
	})
}

// UpvoteArticle records at most one upvote per user per article. Repeating
// the request is a no-op that echoes the current state back.
func (ac *ArticleController) UpvoteArticle(c *gin.Context) {
	name := c.Param("name")
	identity := middlewares.IdentityFrom(c)

	if _, err := ac.store.GetByName(c.Request.Context(), name); err != nil {
		if errors.Is(err, store.ErrArticleNotFound) {
			ac.missingArticle(c, name)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	applied, err := ac.store.Upvote(c.Request.Context(), name, identity.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if applied {
		ac.invalidateCache()
	}

	updated, err := ac.store.GetByName(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, store.ErrArticleNotFound) {
			ac.missingArticle(c, name)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// AddComment appends to the article's comment log. The commenter's email may
// be empty if the token carried none; the text is taken as-is.
func (ac *ArticleController) AddComment(c *gin.Context) {
	name := c.Param("name")
	identity := middlewares.IdentityFrom(c)

	var body struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment := models.Comment{PostedBy: identity.Email, Text: body.Text}
	found, err := ac.store.AddComment(c.Request.Context(), name, comment)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !found {
		ac.missingArticle(c, name)
		return
	}
	ac.invalidateCache()

	updated, err := ac.store.GetByName(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, store.ErrArticleNotFound) {
			ac.missingArticle(c, name)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (ac *ArticleController) missingArticle(c *gin.Context, name string) {
	c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("the %s article doesn't exist", name)})
}

// invalidateCache drops the cached article list without blocking the request.
func (ac *ArticleController) invalidateCache() {
	if ac.cache == nil {
		return
	}
	go func() {
		_ = ac.cache.Del(context.Background(), cacheKey).Err()
	}()
}
