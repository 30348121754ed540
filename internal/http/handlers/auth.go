package handlers

import (
	"errors"
	"net/http"
	"time"

	"busbook/internal/http/middleware"
	"busbook/internal/services"

	"github.com/gin-gonic/gin"
)

func (a *API) accounts(c *gin.Context) (services.AccountService, bool) {
	if a.Users == nil {
		RespondError(c, http.StatusServiceUnavailable, "accounts require a configured database", nil)
		return services.AccountService{}, false
	}
	return services.AccountService{
		Users:     *a.Users,
		JWTSecret: []byte(a.Env.JWTSecret),
		TokenTTL:  24 * time.Hour,
		RequestID: middleware.GetRequestID(c),
	}, true
}

// POST /api/auth/register
func (a *API) Register(c *gin.Context) {
	svc, ok := a.accounts(c)
	if !ok {
		return
	}

	var req services.RegisterInput
	if !BindJSONOrError(c, &req) {
		return
	}

	user, err := svc.Register(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (a *API) Login(c *gin.Context) {
	svc, ok := a.accounts(c)
	if !ok {
		return
	}

	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	token, user, err := svc.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			RespondError(c, http.StatusUnauthorized, err.Error(), nil)
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// GET /api/profile used to prefill contact details in the payment step.
func (a *API) Profile(c *gin.Context) {
	svc, ok := a.accounts(c)
	if !ok {
		return
	}

	userID := middleware.GetUserID(c)
	if userID == 0 {
		RespondError(c, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	user, err := svc.Profile(userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
