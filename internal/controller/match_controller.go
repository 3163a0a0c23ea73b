package controller

import (
	"bufio"
	"context"
	"errors"
	"fmt"

	"chapchap-be/internal/constant"
	"chapchap-be/internal/dto"
	"chapchap-be/internal/pkg/serverutils"
	"chapchap-be/internal/service"
	"chapchap-be/pkg/match"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type IMatchController interface {
	RegisterRoutes(r fiber.Router)
	Analyze(ctx *fiber.Ctx) error
	GetMatches(ctx *fiber.Ctx) error
	CoverLetter(ctx *fiber.Ctx) error
	ResetSession(ctx *fiber.Ctx) error
}

type matchController struct {
	service service.IMatchService
}

func NewMatchController(service service.IMatchService) IMatchController {
	return &matchController{service: service}
}

func (c *matchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/resume")
	h.Post("/analyze", c.Analyze)
	h.Get("/matches", c.GetMatches)
	h.Get("/cover-letter/:job_id", c.CoverLetter)
	h.Delete("/session", c.ResetSession)
}

// Analyze streams the resume summary as plain-text chunks, terminated by the
// done token. Stream errors arrive in-band: HTTP status is already committed
// once the first token flushes.
func (c *matchController) Analyze(ctx *fiber.Ctx) error {
	sessionId := ctx.Locals(serverutils.SessionLocalKey).(string)

	var req dto.AnalyzeResumeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	c.stream(ctx, func(onToken func(string) error) error {
		return c.service.AnalyzeResume(context.Background(), sessionId, req.ResumeText, onToken)
	})
	return nil
}

func (c *matchController) GetMatches(ctx *fiber.Ctx) error {
	sessionId := ctx.Locals(serverutils.SessionLocalKey).(string)

	res, err := c.service.GetMatches(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get matches", res))
}

func (c *matchController) CoverLetter(ctx *fiber.Ctx) error {
	sessionId := ctx.Locals(serverutils.SessionLocalKey).(string)

	jobId, err := ctx.ParamsInt("job_id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "job_id must be an integer")
	}

	c.stream(ctx, func(onToken func(string) error) error {
		return c.service.StreamCoverLetter(context.Background(), sessionId, int64(jobId), onToken)
	})
	return nil
}

func (c *matchController) ResetSession(ctx *fiber.Ctx) error {
	sessionId := ctx.Locals(serverutils.SessionLocalKey).(string)

	if err := c.service.ResetSession(ctx.Context(), sessionId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Session cleared", nil))
}

// stream runs one generating operation behind a chunked plain-text response,
// flushing every token as it arrives. Success ends with the done token,
// failure with the error token and a client-safe message.
func (c *matchController) stream(ctx *fiber.Ctx, run func(onToken func(string) error) error) {
	ctx.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		err := run(func(token string) error {
			if _, werr := w.WriteString(token); werr != nil {
				return werr
			}
			return w.Flush()
		})
		if err != nil {
			fmt.Fprintf(w, "\n%s %s", constant.ErrorToken, clientMessage(err))
			w.Flush()
			return
		}

		w.WriteString(constant.DoneToken)
		w.Flush()
	}))
}

func clientMessage(err error) string {
	var matchErr *match.Error
	if errors.As(err, &matchErr) {
		return matchErr.Msg
	}
	return "generation failed"
}
