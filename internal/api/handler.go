package api

import (
	"context"
	"encoding/xml"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/giuliopb/surf-bot-whatsapp/internal/forecast"
)

// Forecaster answers a parsed command with rendered reply text.
type Forecaster interface {
	Forecast(ctx context.Context, spotKey string, w forecast.Window) string
}

// Usage hints shown when the inbound text is not a valid command.
const (
	msgUsageHint   = "Envie no formato: surf [praia]\nExemplo: surf itajai"
	msgMissingSpot = "Informe a praia. Exemplo: surf balneario"
)

type Handler struct {
	svc      Forecaster
	logger   *zap.Logger
	validate *validator.Validate
}

func NewHandler(svc Forecaster, logger *zap.Logger) *Handler {
	return &Handler{
		svc:      svc,
		logger:   logger,
		validate: validator.New(),
	}
}

// inboundMessage is the form-encoded webhook payload. Only Body is
// required; From is kept for logging.
type inboundMessage struct {
	Body string `form:"Body" validate:"required"`
	From string `form:"From"`
}

// twimlResponse is the XML reply envelope the messaging gateway expects.
type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// Webhook handles POST /webhook/whatsapp.
func (h *Handler) Webhook(c *fiber.Ctx) error {
	var in inboundMessage
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid webhook payload")
	}
	if err := h.validate.Struct(in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing message body")
	}

	h.logger.Info("message received",
		zap.String("from", in.From),
		zap.String("body", in.Body))

	reply := h.reply(c.Context(), in.Body)
	return respondTwiML(c, reply)
}

// reply parses the command and dispatches to the forecast service.
// Matching is case-insensitive and whitespace-trimmed.
func (h *Handler) reply(ctx context.Context, body string) string {
	parts := strings.Fields(strings.ToLower(strings.TrimSpace(body)))

	if len(parts) == 0 || parts[0] != "surf" {
		return msgUsageHint
	}
	if len(parts) < 2 {
		return msgMissingSpot
	}

	window := forecast.Window24h
	if len(parts) >= 3 && (parts[2] == "3dias" || parts[2] == "3") {
		window = forecast.Window3Days
	}

	return h.svc.Forecast(ctx, parts[1], window)
}

func respondTwiML(c *fiber.Ctx, message string) error {
	payload, err := xml.Marshal(twimlResponse{Message: message})
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/xml; charset=utf-8")
	return c.SendString(xml.Header + string(payload))
}
