package controller

import (
	"lessoncraft-be/internal/dto"
	"lessoncraft-be/internal/pkg/serverutils"
	"lessoncraft-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFileController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type fileController struct {
	fileService service.IFileService
	auth        fiber.Handler
}

func NewFileController(fileService service.IFileService, auth fiber.Handler) IFileController {
	return &fileController{
		fileService: fileService,
		auth:        auth,
	}
}

func (c *fileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/file/v1")
	h.Use(c.auth)
	h.Post("upload", c.Upload)
	h.Get("", c.List)
	h.Delete(":id", c.Delete)
}

func (c *fileController) Upload(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		return serverutils.NewBadRequestError("file is required")
	}

	lessonPlanId, err := optionalUUID(ctx.FormValue("lesson_plan_id"))
	if err != nil {
		return serverutils.NewBadRequestError("invalid lesson_plan_id")
	}

	src, err := header.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	res, err := c.fileService.Upload(ctx.UserContext(), userId, &dto.UploadFileRequest{
		LessonPlanId: lessonPlanId,
		OriginalName: header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Size:         header.Size,
		Body:         src,
	})
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("File uploaded successfully", res))
}

func (c *fileController) List(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}

	lessonPlanId, err := optionalUUID(ctx.Query("lesson_plan_id"))
	if err != nil {
		return serverutils.NewBadRequestError("invalid lesson_plan_id")
	}

	res, err := c.fileService.List(ctx.UserContext(), userId, lessonPlanId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list files", res))
}

func (c *fileController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.fileService.Delete(ctx.UserContext(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("File deleted successfully", nil))
}

func optionalUUID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
