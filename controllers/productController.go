package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/sokoni/sokoni-api/initializers"
	"github.com/sokoni/sokoni-api/models"
	"github.com/sokoni/sokoni-api/services"
)

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		sendFail(ctx, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(value), true
}

func CreateProduct(ctx *gin.Context) {
	var input services.ProductInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendFail(ctx, http.StatusBadRequest, "invalid input")
		return
	}

	product, err := services.CreateProduct(initializers.DB, input)
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendSuccess(ctx, http.StatusCreated, "Product created successfully", product)
}

func UpdateProduct(ctx *gin.Context) {
	productID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var update services.ProductUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		sendFail(ctx, http.StatusBadRequest, "invalid input")
		return
	}

	product, err := services.UpdateProduct(initializers.DB, productID, update)
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendSuccess(ctx, http.StatusOK, "Product updated successfully", product)
}

func FeatureProduct(ctx *gin.Context) {
	setFeatured(ctx, true)
}

func UnfeatureProduct(ctx *gin.Context) {
	setFeatured(ctx, false)
}

func setFeatured(ctx *gin.Context, featured bool) {
	productID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	product, err := services.SetFeatured(initializers.DB, productID, featured)
	if err != nil {
		sendError(ctx, err)
		return
	}

	message := "Product unfeatured successfully"
	if featured {
		message = "Product featured successfully"
	}
	sendSuccess(ctx, http.StatusOK, message, product)
}

func GetProduct(ctx *gin.Context) {
	productID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	product, err := services.GetProduct(initializers.DB, productID)
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendSuccess(ctx, http.StatusOK, "Product retrieved successfully", product)
}

func GetProducts(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))

	products, count, err := services.ListProducts(initializers.DB, page, limit)
	if err != nil {
		sendError(ctx, err)
		return
	}

	sendSuccess(ctx, http.StatusOK, "Products retrieved successfully", gin.H{
		"products": products,
		"metadata": gin.H{
			"total": count,
			"page":  page,
			"limit": limit,
		},
	})
}

func GetProductsByCategory(ctx *gin.Context) {
	categoryID, ok := parseIDParam(ctx, "categoryId")
	if !ok {
		return
	}

	products, err := services.ListProductsByCategory(initializers.DB, categoryID)
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendSuccess(ctx, http.StatusOK, "Products retrieved successfully", products)
}

func SearchProducts(ctx *gin.Context) {
	filter := services.SearchFilter{
		Name:     ctx.Query("name"),
		Category: ctx.Query("category"),
	}

	if raw := ctx.Query("minPrice"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			sendFail(ctx, http.StatusBadRequest, "invalid minPrice")
			return
		}
		filter.MinPrice = &value
	}
	if raw := ctx.Query("maxPrice"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			sendFail(ctx, http.StatusBadRequest, "invalid maxPrice")
			return
		}
		filter.MaxPrice = &value
	}

	products, err := services.SearchProducts(initializers.DB, filter)
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendSuccess(ctx, http.StatusOK, "Search results", products)
}

func getAWSUploader() (*manager.Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return manager.NewUploader(client), nil
}

// UploadProductImages stores product images in S3 and records their
// URLs. Per-file failures are collected and reported without failing
// the whole upload.
func UploadProductImages(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		sendFail(ctx, http.StatusBadRequest, "invalid form data")
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		sendFail(ctx, http.StatusBadRequest, "no files uploaded")
		return
	}

	productID, err := strconv.ParseUint(ctx.PostForm("productId"), 10, 32)
	if err != nil {
		sendFail(ctx, http.StatusBadRequest, "invalid productId")
		return
	}

	if _, err := services.GetProduct(initializers.DB, uint(productID)); err != nil {
		sendError(ctx, err)
		return
	}

	uploader, err := getAWSUploader()
	if err != nil {
		sendError(ctx, err)
		return
	}

	var uploadedUrls []string
	var failedUploads []string

	for _, file := range files {
		f, openErr := file.Open()
		if openErr != nil {
			log.Error().Err(openErr).Str("file", file.Filename).Msg("error opening upload")
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		uniqueFilename := fmt.Sprintf("%d-%s-%s", productID, time.Now().Format("20060102150405"), file.Filename)

		result, uploadErr := uploader.Upload(context.TODO(), &s3.PutObjectInput{
			Bucket:      aws.String(cfg.S3Bucket),
			Key:         aws.String(uniqueFilename),
			Body:        f,
			ACL:         "public-read",
			ContentType: aws.String(file.Header.Get("Content-Type")),
		})
		f.Close()

		if uploadErr != nil {
			log.Error().Err(uploadErr).Str("file", file.Filename).Msg("error uploading file")
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		uploadedUrls = append(uploadedUrls, result.Location)

		productImage := models.ProductImage{
			Url:       result.Location,
			ProductID: uint(productID),
		}
		if err := initializers.DB.Create(&productImage).Error; err != nil {
			// The object is already in S3, so only log the miss.
			log.Error().Err(err).Str("url", result.Location).Msg("error saving image record")
		}
	}

	data := gin.H{"urls": uploadedUrls}
	if len(failedUploads) > 0 {
		data["failed"] = failedUploads
	}
	sendSuccess(ctx, http.StatusOK, "Files processed", data)
}
