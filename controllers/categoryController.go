package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sokoni/sokoni-api/initializers"
	"github.com/sokoni/sokoni-api/services"
)

type categoryBody struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func CreateCategory(ctx *gin.Context) {
	var body categoryBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendFail(ctx, http.StatusBadRequest, "invalid input")
		return
	}

	category, err := services.CreateCategory(initializers.DB, body.Name, body.Description)
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendSuccess(ctx, http.StatusCreated, "Category created successfully", category)
}

func GetCategories(ctx *gin.Context) {
	categories, err := services.ListCategories(initializers.DB)
	if err != nil {
		sendError(ctx, err)
		return
	}
	if len(categories) == 0 {
		sendSuccess(ctx, http.StatusOK, "No categories found", categories)
		return
	}
	sendSuccess(ctx, http.StatusOK, "Categories retrieved successfully", categories)
}
