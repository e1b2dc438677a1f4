// Authentication HTTP handlers.
//
// Endpoints:
//   - POST /auth/signup
//   - POST /auth/login
//
// Token validation for protected routes lives in middleware; these handlers
// only create accounts and issue tokens.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CredentialsRequest is the JSON payload for signup and login.
type CredentialsRequest struct {
	Username string `json:"username" binding:"required,min=1,max=64" example:"marta"`
	Password string `json:"password" binding:"required,min=8" example:"correct horse battery"`
}

// SignupResponse confirms account creation.
type SignupResponse struct {
	Message  string `json:"message" example:"User created successfully"`
	UserID   int    `json:"user_id" example:"1"`
	Username string `json:"username" example:"marta"`
}

// Signup godoc
// @ID          signup
// @Summary     Create an account
// @Tags        Authentication
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CredentialsRequest  true  "Credentials"
// @Success     201  {object} handlers.SignupResponse
// @Failure     409  {object} handlers.ErrorEnvelope "Username already taken"
// @Failure     422  {object} handlers.ErrorEnvelope "Malformed payload"
// @Failure     500  {object} handlers.ErrorEnvelope "Internal server error"
// @Router      /auth/signup [post]
func (h *Handlers) Signup(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	u, err := h.authSvc.Signup(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, h.verbose, err)
		return
	}
	ok(c, http.StatusCreated, SignupResponse{
		Message:  "User created successfully",
		UserID:   u.ID,
		Username: u.Username,
	})
}

// Login godoc
// @ID          login
// @Summary     Obtain an access token
// @Tags        Authentication
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CredentialsRequest  true  "Credentials"
// @Success     200  {object} services.TokenPair
// @Failure     401  {object} handlers.ErrorEnvelope "Incorrect username or password"
// @Failure     422  {object} handlers.ErrorEnvelope "Malformed payload"
// @Failure     500  {object} handlers.ErrorEnvelope "Internal server error"
// @Router      /auth/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	pair, err := h.authSvc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, h.verbose, err)
		return
	}
	ok(c, http.StatusOK, pair)
}
