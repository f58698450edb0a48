package controller

import (
	"lecturescribe-be/internal/dto"
	"lecturescribe-be/internal/pkg/serverutils"
	"lecturescribe-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IProcessController interface {
	RegisterRoutes(r fiber.Router)
	ProcessAudio(ctx *fiber.Ctx) error
	ProcessText(ctx *fiber.Ctx) error
}

type processController struct {
	processService service.IProcessService
}

func NewProcessController(processService service.IProcessService) IProcessController {
	return &processController{
		processService: processService,
	}
}

func (c *processController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/process/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("audio", c.ProcessAudio)
	h.Post("text", c.ProcessText)
}

func (c *processController) ProcessAudio(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	file, err := ctx.FormFile("audio")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing audio file")
	}

	body, err := file.Open()
	if err != nil {
		return err
	}
	defer body.Close()

	input := &service.AudioInput{
		FileName:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
		Body:        body,
		Title:       ctx.FormValue("title"),
	}
	if folderIdStr := ctx.FormValue("folder_id"); folderIdStr != "" {
		folderId, err := uuid.Parse(folderIdStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid folder_id")
		}
		input.FolderId = &folderId
	}

	res, err := c.processService.ProcessAudio(ctx.Context(), userId, input)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process audio", res))
}

func (c *processController) ProcessText(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.ProcessTextRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.processService.ProcessText(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process text", res))
}
