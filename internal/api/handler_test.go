package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/giuliopb/surf-bot-whatsapp/internal/forecast"
)

type stubForecaster struct {
	reply      string
	lastKey    string
	lastWindow forecast.Window
	calls      int
}

func (s *stubForecaster) Forecast(ctx context.Context, spotKey string, w forecast.Window) string {
	s.calls++
	s.lastKey = spotKey
	s.lastWindow = w
	return s.reply
}

func newTestApp(stub *stubForecaster) *fiber.App {
	app := fiber.New()
	SetupRoutes(app, NewHandler(stub, zap.NewNop()))
	return app
}

func postWebhook(t *testing.T, app *fiber.App, form url.Values) (int, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading response body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestWebhookValidCommand(t *testing.T) {
	stub := &stubForecaster{reply: "previsão de teste"}
	app := newTestApp(stub)

	status, body := postWebhook(t, app, url.Values{"Body": {"surf floripa"}, "From": {"+5548999990000"}})

	if status != http.StatusOK {
		t.Fatalf("status %d, want 200", status)
	}
	if stub.lastKey != "floripa" || stub.lastWindow != forecast.Window24h {
		t.Errorf("dispatched (%q, %v), want (floripa, 24h)", stub.lastKey, stub.lastWindow)
	}
	if !strings.Contains(body, "<Response>") || !strings.Contains(body, "<Message>previsão de teste</Message>") {
		t.Errorf("unexpected TwiML body:\n%s", body)
	}
}

func TestWebhookNormalizesCaseAndWhitespace(t *testing.T) {
	stub := &stubForecaster{reply: "ok"}
	app := newTestApp(stub)

	postWebhook(t, app, url.Values{"Body": {"  SURF   Guarda  "}})

	if stub.lastKey != "guarda" {
		t.Errorf("dispatched key %q, want guarda", stub.lastKey)
	}
}

func TestWebhookThreeDayMode(t *testing.T) {
	stub := &stubForecaster{reply: "ok"}
	app := newTestApp(stub)

	postWebhook(t, app, url.Values{"Body": {"surf itajai 3dias"}})
	if stub.lastWindow != forecast.Window3Days {
		t.Errorf("window %v, want 3 days", stub.lastWindow)
	}

	postWebhook(t, app, url.Values{"Body": {"surf itajai 3"}})
	if stub.lastWindow != forecast.Window3Days {
		t.Errorf("window %v, want 3 days for shorthand", stub.lastWindow)
	}
}

func TestWebhookMissingSpot(t *testing.T) {
	stub := &stubForecaster{reply: "ok"}
	app := newTestApp(stub)

	_, body := postWebhook(t, app, url.Values{"Body": {"surf"}})

	if stub.calls != 0 {
		t.Error("forecaster must not be called without a spot")
	}
	if !strings.Contains(body, msgMissingSpot) {
		t.Errorf("expected missing-spot hint, got:\n%s", body)
	}
}

func TestWebhookUnrecognizedCommand(t *testing.T) {
	stub := &stubForecaster{reply: "ok"}
	app := newTestApp(stub)

	_, body := postWebhook(t, app, url.Values{"Body": {"oi tudo bem"}})

	if stub.calls != 0 {
		t.Error("forecaster must not be called for unrecognized commands")
	}
	if !strings.Contains(body, "surf [praia]") {
		t.Errorf("expected usage hint, got:\n%s", body)
	}
}

func TestWebhookMissingBody(t *testing.T) {
	stub := &stubForecaster{reply: "ok"}
	app := newTestApp(stub)

	status, _ := postWebhook(t, app, url.Values{"From": {"+5548999990000"}})

	if status != http.StatusBadRequest {
		t.Errorf("status %d, want 400", status)
	}
}
