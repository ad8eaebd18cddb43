package controller

import (
	"lessoncraft-be/internal/dto"
	"lessoncraft-be/internal/pkg/serverutils"
	"lessoncraft-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMediaController interface {
	RegisterRoutes(r fiber.Router)
	GenerateSong(ctx *fiber.Ctx) error
	GenerateVideo(ctx *fiber.Ctx) error
}

type mediaController struct {
	media service.MediaGenerator
	auth  fiber.Handler
}

func NewMediaController(media service.MediaGenerator, auth fiber.Handler) IMediaController {
	return &mediaController{media: media, auth: auth}
}

func (c *mediaController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/media/v1")
	h.Use(c.auth)
	h.Post("song", c.GenerateSong)
	h.Post("video", c.GenerateVideo)
}

func (c *mediaController) GenerateSong(ctx *fiber.Ctx) error {
	var req dto.GenerateSongRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.media.GenerateSong(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Song generated successfully", res))
}

func (c *mediaController) GenerateVideo(ctx *fiber.Ctx) error {
	var req dto.GenerateVideoRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.media.GenerateVideo(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Video generated successfully", res))
}
