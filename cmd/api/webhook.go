package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"conversational-task-assistant/config"
	"conversational-task-assistant/pkg/log"
	"conversational-task-assistant/pkg/telegram"
)

const (
	telegramWebhookPath = "/webhook/telegram"
	ngrokAttempts       = 10
	ngrokInterval       = 3 * time.Second
)

var errNoTunnel = errors.New("ngrok has no active tunnel")

type ngrokTunnels struct {
	Tunnels []struct {
		PublicURL string `json:"public_url"`
		Proto     string `json:"proto"`
	} `json:"tunnels"`
}

// registerWebhook points Telegram at this service. The URL comes from config or,
// failing that, from a local ngrok tunnel. Registration problems are logged, not fatal.
func registerWebhook(ctx context.Context, l log.Logger, bot *telegram.Bot, cfg config.TelegramConfig) {
	webhookURL := cfg.WebhookURL
	if webhookURL == "" && cfg.NgrokAPI != "" {
		publicURL, err := detectTunnel(ctx, cfg.NgrokAPI, ngrokAttempts, ngrokInterval)
		if err != nil {
			l.Warnf(ctx, "cmd.api.registerWebhook: detect ngrok tunnel: %v", err)
			return
		}
		webhookURL = strings.TrimSuffix(publicURL, "/") + telegramWebhookPath
		l.Infof(ctx, "Detected ngrok tunnel, webhook URL %s", webhookURL)
	}
	if webhookURL == "" {
		l.Warnf(ctx, "Telegram webhook URL not configured, updates will not be delivered")
		return
	}

	if err := bot.SetWebhook(ctx, webhookURL, cfg.WebhookSecret); err != nil {
		l.Warnf(ctx, "cmd.api.registerWebhook: set webhook: %v", err)
		return
	}
	l.Infof(ctx, "Telegram webhook registered at %s", webhookURL)
}

// detectTunnel polls the ngrok local API until a tunnel shows up, preferring https.
func detectTunnel(ctx context.Context, apiBase string, attempts int, interval time.Duration) (string, error) {
	client := &http.Client{Timeout: 5 * time.Second}
	lastErr := errNoTunnel

	for attempt := 1; attempt <= attempts; attempt++ {
		publicURL, err := fetchTunnel(ctx, client, strings.TrimSuffix(apiBase, "/")+"/api/tunnels")
		if err == nil {
			return publicURL, nil
		}
		lastErr = err

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(interval):
		}
	}
	return "", fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

func fetchTunnel(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body ngrokTunnels
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode tunnels: %w", err)
	}
	for _, t := range body.Tunnels {
		if t.Proto == "https" {
			return t.PublicURL, nil
		}
	}
	if len(body.Tunnels) > 0 {
		return body.Tunnels[0].PublicURL, nil
	}
	return "", errNoTunnel
}
