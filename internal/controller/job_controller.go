package controller

import (
	"chapchap-be/internal/pkg/serverutils"
	"chapchap-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IJobController interface {
	RegisterRoutes(r fiber.Router)
	GetActive(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type jobController struct {
	service service.IJobService
}

func NewJobController(service service.IJobService) IJobController {
	return &jobController{service: service}
}

func (c *jobController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/job_info")
	h.Get("/active", c.GetActive)
	h.Get("/:id", c.Show)
}

func (c *jobController) GetActive(ctx *fiber.Ctx) error {
	offset := ctx.QueryInt("offset", 0)
	limit := ctx.QueryInt("limit", 20)

	res, err := c.service.GetActive(ctx.Context(), offset, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get active postings", res))
}

func (c *jobController) Show(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "id must be an integer")
	}

	res, err := c.service.GetById(ctx.Context(), int64(id))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show posting", res))
}
