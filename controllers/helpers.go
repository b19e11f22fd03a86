package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/sokoni/sokoni-api/apperrors"
	"github.com/sokoni/sokoni-api/config"
	"github.com/sokoni/sokoni-api/utils"
)

var (
	cfg    *config.Config
	mailer utils.Mailer
)

// Init hands the controllers the process-wide configuration and the
// notification collaborator. Called once from main before routes are
// registered.
func Init(c *config.Config, m utils.Mailer) {
	cfg = c
	mailer = m
}

func sendSuccess(ctx *gin.Context, status int, message string, data any) {
	body := gin.H{"status": "Success", "message": message}
	if data != nil {
		body["data"] = data
	}
	ctx.JSON(status, body)
}

func sendFail(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"status": "Fail", "message": message})
}

// sendError translates a service error into the response envelope.
// Unexpected failures are logged with full detail and reported with a
// sanitized message.
func sendError(ctx *gin.Context, err error) {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation, apperrors.KindConflict, apperrors.KindInsufficientStock:
		sendFail(ctx, http.StatusUnprocessableEntity, apperrors.Message(err))
	case apperrors.KindNotFound:
		sendFail(ctx, http.StatusNotFound, apperrors.Message(err))
	case apperrors.KindUnauthorized:
		sendFail(ctx, http.StatusUnauthorized, apperrors.Message(err))
	case apperrors.KindForbidden:
		sendFail(ctx, http.StatusForbidden, apperrors.Message(err))
	default:
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("request failed")
		sendFail(ctx, http.StatusInternalServerError, "Internal server error")
	}
}

func callerIdentity(ctx *gin.Context) (uint, string) {
	userID, _ := ctx.Get("userId")
	role, _ := ctx.Get("role")
	id, _ := userID.(uint)
	roleName, _ := role.(string)
	return id, roleName
}
