package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/core"
)

const (
	defaultBaseURL        = "https://api.twilio.com"
	defaultRequestTimeout = 15 * time.Second
)

type Config struct {
	AccountSID string `valid:"required"`
	AuthToken  string `valid:"required"`
	// From and To are phone numbers in E.164 form; messages go out on the
	// WhatsApp channel.
	From string `valid:"required"`
	To   string `valid:"required"`

	BaseURL string
}

func New(cfg Config, logger *slog.Logger) core.Notifier {
	if _, err := govalidator.ValidateStruct(cfg); err != nil {
		panic(err)
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}

	return &service{
		cfg:    cfg,
		http:   &http.Client{Timeout: defaultRequestTimeout},
		logger: logger.With("service", "notify"),
	}
}

type service struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func (s *service) Send(ctx context.Context, message string) error {
	body := fmt.Sprintf(
		"*Message from OpenTuition Recipient*: %s \n\n _You can opt out of receiving recipient messages on your OpenTuition Profile_",
		message,
	)

	form := url.Values{
		"From": {"whatsapp:" + s.cfg.From},
		"To":   {"whatsapp:" + s.cfg.To},
		"Body": {body},
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json",
		strings.TrimSuffix(s.cfg.BaseURL, "/"), s.cfg.AccountSID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.cfg.AccountSID, s.cfg.AuthToken)

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("send notification: status %d: %s", resp.StatusCode, raw)
	}

	var created struct {
		SID string `json:"sid"`
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&created); err == nil {
		s.logger.Info("notification sent", "sid", created.SID)
	}

	return nil
}
