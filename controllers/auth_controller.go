package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/codewith-lab/BlogHive/config"
	"github.com/codewith-lab/BlogHive/models"
	"github.com/codewith-lab/BlogHive/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthController issues the bearer tokens the article routes verify.
type AuthController struct {
	db        *gorm.DB
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	ttl := time.Duration(cfg.JWT.TTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthController{db: db, jwtSecret: cfg.JWT.Secret, jwtTTL: ttl}
}

func (a *AuthController) Register(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashedPassword, err := utils.HashPassword(user.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	user.Password = hashedPassword

	if err := a.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := utils.GenerateJWT(strconv.FormatUint(uint64(user.ID), 10), user.Email, a.jwtSecret, a.jwtTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (a *AuthController) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := a.db.Where("username = ?", input.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	if !utils.CheckPassword(input.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		return
	}

	token, err := utils.GenerateJWT(strconv.FormatUint(uint64(user.ID), 10), user.Email, a.jwtSecret, a.jwtTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
