package controller

import (
	"lecturescribe-be/internal/pkg/serverutils"
	"lecturescribe-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMigrationController interface {
	RegisterRoutes(r fiber.Router)
	Run(ctx *fiber.Ctx) error
}

type migrationController struct {
	migrationService service.IMigrationService
}

func NewMigrationController(migrationService service.IMigrationService) IMigrationController {
	return &migrationController{
		migrationService: migrationService,
	}
}

func (c *migrationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/migration/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("run", c.Run)
}

func (c *migrationController) Run(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.migrationService.Migrate(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Migration finished", res))
}
