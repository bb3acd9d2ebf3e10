// Package bot runs the Telegram capture daemon: text messages from the one
// authorized user become encrypted journal entries on the sync backend.
package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/chronicle-cli/chronicle/internal/cryptox"
	"github.com/chronicle-cli/chronicle/internal/logbook"
	"github.com/chronicle-cli/chronicle/internal/logging"
	"github.com/chronicle-cli/chronicle/internal/models"
	"github.com/chronicle-cli/chronicle/internal/syncx"
)

// api is the slice of tgbotapi.BotAPI the bot needs; tests substitute a fake.
type api interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

// session is the pending metadata for the next entry. It lives on the Bot
// and is reset after every captured entry.
type session struct {
	tags      []string
	people    []string
	entryType string
}

func newSession() session {
	return session{entryType: "entry"}
}

// Bot wires Telegram updates to the encrypted sync backend.
type Bot struct {
	api          api
	backend      syncx.Backend
	key          []byte
	authorizedID int64
	backendName  string
	log          logging.Logger
	session      session

	now func() time.Time
}

// New builds a Bot. backendName only shows up in /status output.
func New(a api, backend syncx.Backend, key []byte, authorizedID int64, backendName string, log logging.Logger) *Bot {
	return &Bot{
		api:          a,
		backend:      backend,
		key:          key,
		authorizedID: authorizedID,
		backendName:  backendName,
		log:          log,
		session:      newSession(),
		now:          time.Now,
	}
}

// Run long-polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	b.log.Info(ctx, "bot started", "authorized_user", b.authorizedID, "backend", b.backendName)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil {
		return
	}
	if msg.From == nil || msg.From.ID != b.authorizedID {
		var from int64
		if msg.From != nil {
			from = msg.From.ID
		}
		b.log.Warn(ctx, "unauthorized user", "user_id", from)
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	b.handleText(ctx, msg)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.TrimSpace(msg.CommandArguments())

	switch msg.Command() {
	case "tag":
		if args == "" {
			b.reply(ctx, msg, "Usage: /tag work,go")
			return
		}
		b.session.tags = splitList(args)
		b.reply(ctx, msg, "Tags set: "+strings.Join(b.session.tags, ", "))
	case "people":
		if args == "" {
			b.reply(ctx, msg, "Usage: /people Alice,Bob")
			return
		}
		b.session.people = splitList(args)
		b.reply(ctx, msg, "People set: "+strings.Join(b.session.people, ", "))
	case "type":
		if args == "" {
			b.reply(ctx, msg, "Usage: /type decision")
			return
		}
		b.session.entryType = args
		b.reply(ctx, msg, "Entry type set: "+b.session.entryType)
	case "status":
		b.reply(ctx, msg, fmt.Sprintf(
			"Chronicle Bot active\nBackend: %s\nPending tags: [%s]\nPending people: [%s]\nEntry type: %s",
			b.backendName,
			strings.Join(b.session.tags, ", "),
			strings.Join(b.session.people, ", "),
			b.session.entryType,
		))
	default:
		b.reply(ctx, msg, "Unknown command. Send any text to log an entry.")
	}
}

// handleText turns a plain message into an entry, encrypts it and appends
// it to the backend. The pending session metadata is consumed either way.
func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	body := strings.TrimSpace(msg.Text)
	if body == "" {
		return
	}

	now := b.now().UTC()
	entry := &models.Entry{
		ID:        models.GenerateID(now),
		Timestamp: now,
		Type:      b.session.entryType,
		Tags:      b.session.tags,
		People:    b.session.people,
		Body:      body,
	}

	token, err := cryptox.Encrypt(logbook.Format(entry), b.key)
	if err != nil {
		b.log.Error(ctx, "encrypting entry failed", "error", err)
		b.reply(ctx, msg, "Failed to sync: "+err.Error())
		return
	}

	if err := b.backend.Append(ctx, token); err != nil {
		b.log.Error(ctx, "appending to backend failed", "error", err)
		b.reply(ctx, msg, "Failed to sync: "+err.Error())
	} else {
		b.log.Info(ctx, "entry logged", "id", entry.ID)
		b.reply(ctx, msg, "Logged: "+entry.ID)
	}

	b.session = newSession()
}

func (b *Bot) reply(ctx context.Context, msg *tgbotapi.Message, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, text)); err != nil {
		b.log.Error(ctx, "sending reply failed", "error", err)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
