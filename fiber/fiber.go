package fiber

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/rs/zerolog"

	models "student-repetition-dashboard/app/models"
	"student-repetition-dashboard/middleware"
	"student-repetition-dashboard/utils"
	"student-repetition-dashboard/views"
)

func SetupFiber(appName string, logger zerolog.Logger) *fiber.App {
	engine := html.NewFileSystem(http.FS(views.FS), ".html")
	engine.AddFunc("levelName", models.LevelName)
	engine.AddFunc("levelColor", models.LevelColor)
	engine.AddFunc("thousands", utils.FormatThousands)

	app := fiber.New(fiber.Config{
		AppName:               appName,
		Views:                 engine,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(logger))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))

	return app
}

// errorHandler: *fiber.Error pakai kodenya sendiri, sisanya 500
func errorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			logger.Error().Err(err).Str("request_id", middleware.RequestID(c)).Msg("handler failed")
		}
		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}
}
