package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sokoni/sokoni-api/initializers"
	"github.com/sokoni/sokoni-api/models"
	"github.com/sokoni/sokoni-api/services"
)

type registrationBody struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterBuyer handles public buyer registration.
func RegisterBuyer(ctx *gin.Context) {
	register(ctx, models.RoleBuyer)
}

// RegisterAdmin creates an admin account. The route is gated so only
// an existing admin can reach it.
func RegisterAdmin(ctx *gin.Context) {
	register(ctx, models.RoleAdmin)
}

func register(ctx *gin.Context, role string) {
	var body registrationBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendFail(ctx, http.StatusBadRequest, "invalid input")
		return
	}

	user, err := services.Register(initializers.DB, cfg, mailer, body.Name, body.Email, body.Password, role)
	if err != nil {
		sendError(ctx, err)
		return
	}

	sendSuccess(ctx, http.StatusCreated,
		"User registered successfully. Check your email to verify your account.", user.Profile())
}

// Login authenticates a user and returns a signed token.
func Login(ctx *gin.Context) {
	var body models.LoginData
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendFail(ctx, http.StatusBadRequest, "invalid input")
		return
	}

	token, err := services.Login(initializers.DB, cfg, body.Email, body.Password)
	if err != nil {
		sendError(ctx, err)
		return
	}

	sendSuccess(ctx, http.StatusOK, "Login successful", gin.H{"token": token})
}

// VerifyAccount consumes an email-verification token for the
// authenticated caller.
func VerifyAccount(ctx *gin.Context) {
	userID, _ := callerIdentity(ctx)
	token := ctx.Param("token")

	user, already, err := services.VerifyAccount(initializers.DB, cfg, token, userID)
	if err != nil {
		sendError(ctx, err)
		return
	}

	if already {
		sendSuccess(ctx, http.StatusOK, "Account is already verified", user.Profile())
		return
	}
	sendSuccess(ctx, http.StatusOK, "Account has been verified successfully", user.Profile())
}
