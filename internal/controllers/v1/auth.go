package v1

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/demo-night/backend/internal/config"
	"github.com/demo-night/backend/internal/httputil"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// SessionDuration is how long an organizer session token is valid.
const SessionDuration = 24 * time.Hour

// RegisterAuthRoutes registers the routes for organizer authentication.
func RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/login", OptionsLogin)
	r.POST("/login", Login)
}

type LoginRequest struct {
	Password string `json:"password" binding:"required"` // The organizer password
}

type LoginResponse struct {
	Data  *LoginData `json:"data"`
	Error *string    `json:"error" example:"the password is not correct"` // The error, if any occurred
}

type LoginData struct {
	Token     string    `json:"token"`     // Bearer token for organizer endpoints
	ExpiresAt time.Time `json:"expiresAt"` // Time the token expires
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Router			/v1/auth/login [options]
func OptionsLogin(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Organizer login
// @Description	Exchanges the organizer password for a session token
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200			{object}	LoginResponse
// @Failure		400			{object}	LoginResponse
// @Failure		401			{object}	LoginResponse
// @Param			credentials	body		LoginRequest	true	"Credentials"
// @Router			/v1/auth/login [post]
func Login(c *gin.Context) {
	var request LoginRequest

	err := httputil.BindData(c, &request)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LoginResponse{Error: &e})
		return
	}

	if config.App.AdminPassword == "" {
		e := errLoginDisabled.Error()
		c.JSON(http.StatusUnauthorized, LoginResponse{Error: &e})
		return
	}

	if subtle.ConstantTimeCompare([]byte(request.Password), []byte(config.App.AdminPassword)) != 1 {
		e := errWrongPassword.Error()
		c.JSON(http.StatusUnauthorized, LoginResponse{Error: &e})
		return
	}

	expiresAt := time.Now().Add(SessionDuration)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin",
		"iat":  time.Now().Unix(),
		"exp":  expiresAt.Unix(),
	})

	signed, err := token.SignedString([]byte(config.App.JWTSecret))
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusInternalServerError, LoginResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Data: &LoginData{
			Token:     signed,
			ExpiresAt: expiresAt,
		},
	})
}
