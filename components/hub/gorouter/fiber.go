package gorouter

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goliatone/go-contact-hub/components/hub/httpapi"
)

// FiberApp is a go-router fiber adapter option. It replaces the default app
// with one whose body limit fits project imports.
//
//	server := router.NewFiberAdapter(gorouter.FiberApp)
func FiberApp(*fiber.App) *fiber.App {
	return fiber.New(fiber.Config{
		BodyLimit:         int(httpapi.MaxRequestBody),
		UnescapePath:      true,
		PassLocalsToViews: true,
	})
}
