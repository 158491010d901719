package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"healthy-bite-selector/internal/app"
	"healthy-bite-selector/internal/config"
)

// Sender is the part of the Telegram API the bot talks to.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot exposes the food picker and meal planner over Telegram.
type Bot struct {
	api    Sender
	app    *app.App
	cfg    *config.Config
	logger *zap.Logger

	// inflight tracks updates still being handled after their webhook returned.
	inflight sync.WaitGroup
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, a *app.App, logger *zap.Logger) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	logger.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

	wh, err := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("failed to build webhook for %s: %w", cfg.TelegramWebhookURL, err)
	}
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	logger.Info("webhook set", zap.String("response", resp.Description))

	return newBot(bot, a, cfg, logger), nil
}

func newBot(api Sender, a *app.App, cfg *config.Config, logger *zap.Logger) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bot{api: api, app: a, cfg: cfg, logger: logger}
}

// HandleWebhook decodes an update and processes it in the background.
func (b *Bot) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		b.logger.Warn("error parsing update", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)

	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		b.HandleUpdate(ctx, update)
	}()
}

// Wait blocks until every update accepted by HandleWebhook has been handled.
func (b *Bot) Wait() {
	b.inflight.Wait()
}

// HandleUpdate routes a single update. Messages from users outside the
// allow-list are dropped.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	ctx = app.WithSource(ctx, "telegram")

	if q := update.CallbackQuery; q != nil {
		if q.From == nil || !b.isAllowed(q.From.ID) {
			return
		}
		b.handleCallbackQuery(ctx, q)
		return
	}

	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	if !b.isAllowed(msg.From.ID) {
		b.logger.Warn("unauthorized access attempt",
			zap.Int64("user_id", msg.From.ID),
			zap.String("username", msg.From.UserName),
		)
		return
	}
	b.processMessage(ctx, msg)
}

func (b *Bot) isAllowed(id int64) bool {
	return slices.Contains(b.cfg.TelegramAllowedUserIDs, id)
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	cmd, args := parseCommand(msg.Text)
	chatID := msg.Chat.ID

	switch cmd {
	case "start", "help":
		b.reply(chatID, helpText)
	case "add":
		b.handleAdd(ctx, chatID, strings.Join(args, " "))
	case "remove":
		b.handleRemove(ctx, chatID, args)
	case "list":
		b.handleList(ctx, chatID)
	case "pick":
		b.handlePick(ctx, chatID)
	case "import":
		b.handleImport(ctx, chatID, args)
	case "plan":
		b.handlePlan(ctx, chatID, args)
	case "fav":
		b.handleFavorite(ctx, chatID, args)
	case "favorites":
		b.handleFavorites(ctx, chatID)
	case "unfav":
		b.handleUnfavorite(ctx, chatID, args)
	case "history":
		b.handleHistory(ctx, chatID, args)
	case "shopping":
		b.handleShopping(ctx, chatID)
	case "export":
		b.handleExport(ctx, chatID)
	case "metrics":
		if msg.From.ID != b.cfg.AdminTelegramID {
			b.reply(chatID, "⛔ *Access Denied*: Admin only.")
			return
		}
		b.handleMetricsCommand(ctx, chatID)
	case "":
		// Plain text adds a food item.
		b.handleAdd(ctx, chatID, msg.Text)
	default:
		b.reply(chatID, "🤔 Unknown command. Try /help.")
	}
}

func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	// Answer callback to remove spinner
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.logger.Warn("failed to answer callback", zap.Error(err))
	}

	action, payload, _ := strings.Cut(query.Data, "|")
	if action != "regen" || query.Message == nil {
		return
	}
	b.handlePlan(ctx, query.Message.Chat.ID, strings.Fields(payload))
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	b.send(msg)
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.logger.Warn("failed to send telegram message", zap.Error(err))
	}
}

func (b *Bot) replyError(chatID int64, action string, err error) {
	b.logger.Warn("telegram command failed", zap.String("action", action), zap.Error(err))
	safeErr := strings.ReplaceAll(err.Error(), "`", "'")
	b.reply(chatID, fmt.Sprintf("❌ *Error %s:*\n```\n%v\n```", action, safeErr))
}

// sendAdminAlert notifies the admin, when one is configured.
func (b *Bot) sendAdminAlert(text string) {
	if b.cfg.AdminTelegramID == 0 {
		return
	}
	b.reply(b.cfg.AdminTelegramID, text)
}

const helpText = `🥗 *Healthy Bite Selector*

*Food list*
/add <food> - add an item (or just send its name)
/remove <n> - remove item n
/list - show your items
/pick - pick one at random
/import <url> - add the list items of a web page

*Meal plans*
/plan [veg|nonveg|mixed] [1|2|3|5|7] [healthy|indian] [calories] [items] [vegdays=mon,tue]
/shopping - shopping list of the current plan
/export - current plan as a spreadsheet
/history [all] - recently planned days

*Favorites*
/fav <day#> <breakfast|lunch|dinner|snack>
/favorites
/unfav <id>`
