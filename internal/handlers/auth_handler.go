package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/docspot/docspot-api/internal/middleware"
	"github.com/docspot/docspot-api/internal/models"
	"github.com/docspot/docspot-api/internal/utils"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Gender   string `json:"gender" binding:"required"`
	Age      int    `json:"age"`
	Phone    string `json:"phone" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=admin patient"`
}

// setSessionCookie issues the signed token and embeds it in the HTTP-only,
// same-site-strict cookie with the fixed 24-hour expiry.
func (h *Handler) setSessionCookie(c *gin.Context, userID, role string) error {
	token, err := utils.GenerateJWT(userID, role)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookie, token, int(utils.SessionTTL.Seconds()), "/", "", h.secureCookies, true)
	return nil
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secureCookies, true)
}

// emailTaken interprets the pre-insert duplicate lookup: a found document
// means the address is already registered, ErrNoDocuments means it is free.
func emailTaken(lookupErr error) (bool, error) {
	if lookupErr == nil {
		return true, nil
	}
	if lookupErr == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, lookupErr
}

// Register creates an admin or patient account. Doctors are provisioned by
// admins only and never pass through here.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user := models.User{
		ID:     primitive.NewObjectID(),
		Name:   req.Name,
		Email:  strings.ToLower(strings.TrimSpace(req.Email)),
		Gender: req.Gender,
		Age:    req.Age,
		Phone:  req.Phone,
		Role:   req.Role,
	}
	if err := models.Validate(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	taken, err := emailTaken(h.users().FindOne(ctx, bson.M{"email": user.Email}).Err())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already in use"})
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
		return
	}
	user.Password = hashed

	if _, err := h.users().InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already in use"})
			return
		}
		log.Printf("Register: insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if err := h.setSessionCookie(c, user.ID.Hex(), user.Role); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    gin.H{"name": user.Name, "role": user.Role},
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates an admin or patient against the users collection.
func (h *Handler) Login(c *gin.Context) {
	h.login(c, h.users())
}

// DoctorLogin authenticates against the doctors collection.
func (h *Handler) DoctorLogin(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	var doctor models.Doctor
	err := h.doctors().FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(req.Email))}).Decode(&doctor)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	if !utils.CheckPasswordHash(req.Password, doctor.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}

	if err := h.setSessionCookie(c, doctor.ID.Hex(), models.RoleDoctor); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in successfully",
		"user":    gin.H{"name": doctor.Name, "role": models.RoleDoctor},
	})
}

func (h *Handler) login(c *gin.Context, col *mongo.Collection) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	var user models.User
	err := col.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(req.Email))}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}

	if err := h.setSessionCookie(c, user.ID.Hex(), user.Role); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in successfully",
		"user":    gin.H{"name": user.Name, "role": user.Role},
	})
}

// Logout clears the session cookie unconditionally and denylists the
// presented token for the rest of its lifetime. Idempotent.
func (h *Handler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil && token != "" {
		ttl := utils.SessionTTL
		if claims, err := utils.ValidateJWT(token); err == nil && claims.ExpiresAt != nil {
			ttl = time.Until(claims.ExpiresAt.Time)
		}
		h.Denylist.Revoke(c.Request.Context(), token, ttl)
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
