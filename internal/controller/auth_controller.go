package controller

import (
	"lessoncraft-be/internal/pkg/serverutils"
	"lessoncraft-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Me(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
}

type authController struct {
	userService service.IUserService
	auth        fiber.Handler
}

func NewAuthController(userService service.IUserService, auth fiber.Handler) IAuthController {
	return &authController{
		userService: userService,
		auth:        auth,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth/v1")
	h.Get("me", c.auth, c.Me)
	h.Post("logout", c.auth, c.Logout)
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}

	res, err := c.userService.GetProfile(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get current user", res))
}

// Logout only acknowledges: tokens are stateless and expire on their own.
func (c *authController) Logout(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse[any]("Successfully logged out", nil))
}
