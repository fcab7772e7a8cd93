package controller

import (
	"context"
	"errors"

	"device-assistant-ai/internal/dto"
	"device-assistant-ai/internal/pkg/serverutils"
	"device-assistant-ai/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IIngestionController interface {
	RegisterRoutes(r fiber.Router)
	ExtractPdf(ctx *fiber.Ctx) error
	ChunkAndEmbed(ctx *fiber.Ctx) error
}

type ingestionController struct {
	ingestionService service.IIngestionService
}

func NewIngestionController(ingestionService service.IIngestionService) IIngestionController {
	return &ingestionController{
		ingestionService: ingestionService,
	}
}

func (c *ingestionController) RegisterRoutes(r fiber.Router) {
	r.Post("/pdf/extract", c.ExtractPdf)
	r.Post("/chunk-embed", c.ChunkAndEmbed)
}

func (c *ingestionController) ExtractPdf(ctx *fiber.Ctx) error {
	var req dto.ExtractPdfRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ingestionService.ExtractPdf(ctx.UserContext(), &req)
	if err != nil {
		return upstreamError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success extract pdf", res))
}

func (c *ingestionController) ChunkAndEmbed(ctx *fiber.Ctx) error {
	var req dto.ChunkAndEmbedRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ingestionService.ChunkAndEmbed(ctx.UserContext(), &req)
	if err != nil {
		return upstreamError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success chunk and embed", res))
}

func upstreamError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, service.ErrExtractorUnavailable):
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	case errors.Is(err, service.ErrExtractionFailed), errors.Is(err, service.ErrEmbeddingFailed):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	default:
		return err
	}
}
