package controller

import (
	"device-assistant-ai/internal/dto"
	"device-assistant-ai/internal/pkg/serverutils"
	"device-assistant-ai/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRagController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
	QueryWithDevice(ctx *fiber.Ctx) error
	QueryWithHistory(ctx *fiber.Ctx) error
	Summarize(ctx *fiber.Ctx) error
}

type ragController struct {
	ragService service.IRagService
}

func NewRagController(ragService service.IRagService) IRagController {
	return &ragController{
		ragService: ragService,
	}
}

func (c *ragController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/rag")
	h.Post("query", c.Query)
	h.Post("query/device", c.QueryWithDevice)
	h.Post("query/history", c.QueryWithHistory)
	h.Post("summarize", c.Summarize)
}

func (c *ragController) Query(ctx *fiber.Ctx) error {
	var req dto.RagQueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ragService.RagQuery(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success answer query", res))
}

func (c *ragController) QueryWithDevice(ctx *fiber.Ctx) error {
	var req dto.RagQueryWithDeviceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ragService.RagQueryWithDevice(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success answer device query", res))
}

func (c *ragController) QueryWithHistory(ctx *fiber.Ctx) error {
	var req dto.RagQueryWithHistoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ragService.RagQueryWithHistory(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success answer conversation query", res))
}

func (c *ragController) Summarize(ctx *fiber.Ctx) error {
	var req dto.SummarizeQueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ragService.Summarize(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success summarize query", res))
}
