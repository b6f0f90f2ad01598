package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sme-storefront/internal/blog"
	"sme-storefront/internal/recipes"
)

func listRecipesHandler(lib *recipes.Library) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		list := lib.All()
		if category := ctx.Query("category"); category != "" {
			list = lib.ByCategory(category)
		}
		ctx.JSON(http.StatusOK, gin.H{"recipes": list, "count": len(list)})
	}
}

func recipeCategoriesHandler(lib *recipes.Library) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"categories": lib.Categories(),
			"counts":     lib.CategoryCounts(),
		})
	}
}

func getRecipeHandler(lib *recipes.Library) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		recipe := lib.BySlug(ctx.Param("slug"))
		if recipe == nil {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "recipe not found"})
			return
		}
		ctx.JSON(http.StatusOK, recipe)
	}
}

type postSummary struct {
	URL         string  `json:"url"`
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Excerpt     string  `json:"excerpt"`
	ReadingTime int     `json:"readingTime"`
}

func listPostsHandler(lib *blog.Library) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		posts := lib.All()
		summaries := make([]postSummary, 0, len(posts))
		for _, p := range posts {
			summaries = append(summaries, postSummary{
				URL:         p.URL,
				Slug:        p.Slug,
				Title:       p.Title,
				Description: p.Description,
				Excerpt:     blog.Excerpt(p.Content, 160),
				ReadingTime: blog.ReadingTime(p.Content),
			})
		}
		ctx.JSON(http.StatusOK, gin.H{"posts": summaries, "count": len(summaries)})
	}
}

func getPostHandler(lib *blog.Library) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		post := lib.BySlug(ctx.Param("slug"))
		if post == nil {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "post not found"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{
			"post":        post,
			"readingTime": blog.ReadingTime(post.Content),
			"paragraphs":  blog.Paragraphs(post.Content),
		})
	}
}
