package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.telegram.org"

// Telegram posts messages to a bot chat per configured recipient. Each
// recipient is delivered on its own goroutine so one unreachable chat never
// delays the others or the caller.
type Telegram struct {
	baseURL  string
	botToken string
	chatIDs  []string
	client   *http.Client
}

func NewTelegram(botToken string, chatIDs []string) *Telegram {
	return &Telegram{
		baseURL:  defaultBaseURL,
		botToken: botToken,
		chatIDs:  chatIDs,
		client:   &http.Client{Timeout: 2 * time.Second},
	}
}

// Send implements Notifier.
func (t *Telegram) Send(ctx context.Context, text string) {
	for _, chatID := range t.chatIDs {
		go func(chatID string) {
			// Detached from the request context: the notification should
			// survive the originating request completing.
			sendCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := t.send(sendCtx, chatID, text); err != nil {
				slog.Warn("notification delivery failed", "chat_id", chatID, "error", err)
			}
		}(chatID)
	}
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

func (t *Telegram) send(ctx context.Context, chatID, text string) error {
	body, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("post message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from notification API", resp.StatusCode)
	}

	return nil
}
