package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"feed-backend/internal/models"
	"feed-backend/internal/services"
	"feed-backend/internal/storage"
	"feed-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// CreatePostHandler accepts a multipart form with a "title" field and an
// "image" file (images or PDF).
func CreatePostHandler(postService *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(int)

		title := c.FormValue("title")
		if title == "" {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
		}

		fileHeader, err := c.FormFile("image")
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "image file is required"})
		}

		post, err := postService.Create(c.Context(), title, fileHeader, userID)
		if err != nil {
			if errors.Is(err, storage.ErrDisallowedExtension) {
				return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "file type not allowed"})
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		return c.Status(http.StatusCreated).JSON(post)
	}
}

// ListPostsHandler returns the feed, newest first. Pagination via ?skip and
// ?limit query params.
func ListPostsHandler(postService *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		skip := c.QueryInt("skip", 0)
		limit := c.QueryInt("limit", 100)
		if skip < 0 {
			skip = 0
		}
		if limit <= 0 || limit > 100 {
			limit = 100
		}

		posts, err := postService.List(c.Context(), skip, limit)
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch posts"})
		}
		if posts == nil {
			posts = []models.Post{}
		}
		return c.JSON(posts)
	}
}

// UpdatePostHandler changes a post's title. Owner only.
func UpdatePostHandler(postService *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(int)
		postID, err := strconv.Atoi(c.Params("post_id"))
		if err != nil || postID <= 0 {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
		}

		var req models.UpdatePostRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
		}
		if req.Title == "" {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
		}

		post, err := postService.UpdateTitle(c.Context(), postID, req.Title, userID)
		if err != nil {
			return resourceError(c, err, "post")
		}
		return c.JSON(post)
	}
}

// DeletePostHandler removes a post, its comments, its likes and its file.
// Owner only.
func DeletePostHandler(postService *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(int)
		postID, err := strconv.Atoi(c.Params("post_id"))
		if err != nil || postID <= 0 {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
		}

		if err := postService.Delete(c.Context(), postID, userID); err != nil {
			return resourceError(c, err, "post")
		}
		return c.SendStatus(http.StatusNoContent)
	}
}

// resourceError maps the service error taxonomy onto HTTP statuses. Not
// found and forbidden stay distinct outcomes.
func resourceError(c *fiber.Ctx, err error, resource string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": resource + " not found"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(http.StatusForbidden).JSON(fiber.Map{"error": "you do not own this " + resource})
	default:
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
