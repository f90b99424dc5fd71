// Package envelope implements the uniform {status, message, data} response
// body every endpoint returns.
package envelope

import "github.com/gofiber/fiber/v2"

type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// OK writes a 200 success envelope carrying data.
func OK(c *fiber.Ctx, data interface{}) error {
	return c.JSON(Envelope{Status: "success", Data: data})
}

// Created writes a 201 success envelope with a message and data.
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Status: "success", Message: message, Data: data})
}

// Message writes a 200 success envelope carrying only a message.
func Message(c *fiber.Ctx, message string) error {
	return c.JSON(Envelope{Status: "success", Message: message})
}

// MessageData writes a 200 success envelope with both message and data.
func MessageData(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Envelope{Status: "success", Message: message, Data: data})
}

// Error writes an error envelope with the given status code.
func Error(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(Envelope{Status: "error", Message: message})
}
