package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/stashops/depotd/internal/domain/deposits"
)

// Telegram relays deposit events to the admin chat. Formatting and delivery
// end here; the state machine never waits on us beyond the send call.
type Telegram struct {
	api  *tgbotapi.BotAPI
	log  *slog.Logger
	chat int64
}

func NewTelegram(token string, adminChat int64, log *slog.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Telegram{api: api, log: log, chat: adminChat}, nil
}

func (t *Telegram) Notify(_ context.Context, targetUID string, ev deposits.Event) error {
	msg := tgbotapi.NewMessage(t.chat, format(targetUID, ev))
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	t.log.Debug("notification relayed", "deposit", ev.Code, "severity", ev.Severity)
	return nil
}

func format(targetUID string, ev deposits.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Deposit %s — %s\n", icon(ev.Severity), ev.Code, ev.Severity)
	fmt.Fprintf(&b, "for: %s\n", targetUID)

	keys := make([]string, 0, len(ev.Resources))
	for k := range ev.Resources {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\n", k, ev.Resources[k].String())
	}
	return strings.TrimRight(b.String(), "\n")
}

func icon(s deposits.Severity) string {
	switch s {
	case deposits.SeverityShipped:
		return "📦"
	case deposits.SeverityRefused:
		return "❌"
	default:
		return "✅"
	}
}

// Nop drops every event; used when the relay is disabled in config.
type Nop struct{}

func (Nop) Notify(context.Context, string, deposits.Event) error { return nil }
