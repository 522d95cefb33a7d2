package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"feed-backend/internal/models"
	"feed-backend/internal/services"
	"feed-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// CreateCommentHandler adds a comment under a post. 404 if the parent post
// is gone.
func CreateCommentHandler(commentService *services.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(int)
		postID, err := strconv.Atoi(c.Params("post_id"))
		if err != nil || postID <= 0 {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
		}

		var req models.CreateCommentRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
		}
		if req.Text == "" {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "text is required"})
		}

		comment, err := commentService.Create(c.Context(), postID, req.Text, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "post not found"})
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(http.StatusCreated).JSON(comment)
	}
}

// ListCommentsHandler returns a post's comments, oldest first.
func ListCommentsHandler(commentService *services.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		postID, err := strconv.Atoi(c.Params("post_id"))
		if err != nil || postID <= 0 {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
		}

		comments, err := commentService.ListForPost(c.Context(), postID)
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch comments"})
		}
		if comments == nil {
			comments = []models.Comment{}
		}
		return c.JSON(comments)
	}
}

// UpdateCommentHandler changes a comment's text. Owner only.
func UpdateCommentHandler(commentService *services.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(int)
		commentID, err := strconv.Atoi(c.Params("comment_id"))
		if err != nil || commentID <= 0 {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid comment id"})
		}

		var req models.UpdateCommentRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
		}
		if req.Text == "" {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "text is required"})
		}

		comment, err := commentService.UpdateText(c.Context(), commentID, req.Text, userID)
		if err != nil {
			return resourceError(c, err, "comment")
		}
		return c.JSON(comment)
	}
}

// DeleteCommentHandler removes a single comment. Owner only.
func DeleteCommentHandler(commentService *services.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(int)
		commentID, err := strconv.Atoi(c.Params("comment_id"))
		if err != nil || commentID <= 0 {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid comment id"})
		}

		if err := commentService.Delete(c.Context(), commentID, userID); err != nil {
			return resourceError(c, err, "comment")
		}
		return c.SendStatus(http.StatusNoContent)
	}
}
