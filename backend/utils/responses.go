package utils

import "github.com/gofiber/fiber/v2"

// Response envelope: success responses are {status:"success", data:...},
// failures are {status:"fail"|"error", message} where "fail" covers client
// errors (4xx) and "error" covers server errors (5xx).

func Success(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}

// SuccessList wraps a list payload with the results/total/pagination
// fields list endpoints carry.
func SuccessList(c *fiber.Ctx, data interface{}, results int, total int64, page, limit int) error {
	body := fiber.Map{
		"status":  "success",
		"results": results,
		"total":   total,
		"data":    data,
	}
	if limit > 0 {
		body["page"] = page
		body["limit"] = limit
		body["totalPages"] = (total + int64(limit) - 1) / int64(limit)
	}
	return c.JSON(body)
}

func Fail(c *fiber.Ctx, status int, message string) error {
	kind := "fail"
	if status >= fiber.StatusInternalServerError {
		kind = "error"
	}
	return c.Status(status).JSON(fiber.Map{
		"status":  kind,
		"message": message,
	})
}

func NotFound(c *fiber.Ctx, message string) error {
	return Fail(c, fiber.StatusNotFound, message)
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Fail(c, fiber.StatusBadRequest, message)
}

func Conflict(c *fiber.Ctx, message string) error {
	return Fail(c, fiber.StatusConflict, message)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Fail(c, fiber.StatusUnauthorized, message)
}

func Forbidden(c *fiber.Ctx, message string) error {
	return Fail(c, fiber.StatusForbidden, message)
}

func InternalError(c *fiber.Ctx, message string) error {
	return Fail(c, fiber.StatusInternalServerError, message)
}
