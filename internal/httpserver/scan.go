package httpserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"sme-storefront/internal/scan"
)

type scanRequest struct {
	URL string `json:"url" binding:"required"`
}

func scanHandler(scanner *scan.Scanner, logger *log.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req scanRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "url is required"})
			return
		}

		result, err := scanner.ScanURL(ctx.Request.Context(), req.URL)
		if err != nil {
			if errors.Is(err, scan.ErrNotEnoughContent) {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
				return
			}
			logger.Printf("scan %s: %v", req.URL, err)
			ctx.JSON(http.StatusBadGateway, gin.H{"message": "scan failed"})
			return
		}
		ctx.JSON(http.StatusOK, result)
	}
}

func scanHistoryHandler(scanner *scan.Scanner) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		results, err := scanner.History(ctx.Request.Context())
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "could not load scan history"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
	}
}
