package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sokoni/sokoni-api/initializers"
	"github.com/sokoni/sokoni-api/services"
)

func GetProfile(ctx *gin.Context) {
	userID, _ := callerIdentity(ctx)

	user, err := services.ProfileDetails(initializers.DB, userID)
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendSuccess(ctx, http.StatusOK, "Profile found", user.Profile())
}

type updateProfileBody struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	CurrentPassword string `json:"currentPassword"`
}

func UpdateProfile(ctx *gin.Context) {
	var body updateProfileBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendFail(ctx, http.StatusBadRequest, "invalid input")
		return
	}

	userID, _ := callerIdentity(ctx)
	user, err := services.UpdateProfile(initializers.DB, cfg, mailer, userID, body.Name, body.Email, body.CurrentPassword)
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendSuccess(ctx, http.StatusOK, "Profile updated successfully", user.Profile())
}

// GetAllUsers is admin-only and returns identity projections without
// password hashes.
func GetAllUsers(ctx *gin.Context) {
	users, err := services.ListUsers(initializers.DB)
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendSuccess(ctx, http.StatusOK, "Users retrieved successfully", users)
}
