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

// ToggleLikeHandler flips the caller's like on a post and returns the new
// state.
func ToggleLikeHandler(likeService *services.LikeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(int)
		postID, err := strconv.Atoi(c.Params("post_id"))
		if err != nil || postID <= 0 {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
		}

		liked, err := likeService.Toggle(c.Context(), postID, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "post not found"})
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(models.LikeStatus{Liked: liked})
	}
}

// CountLikesHandler returns how many likes a post has. Public.
func CountLikesHandler(likeService *services.LikeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		postID, err := strconv.Atoi(c.Params("post_id"))
		if err != nil || postID <= 0 {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
		}

		count, err := likeService.Count(c.Context(), postID)
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to count likes"})
		}
		return c.JSON(models.LikeCount{Count: count})
	}
}
