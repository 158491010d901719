package telegram

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"healthy-bite-selector/internal/app"
	"healthy-bite-selector/internal/foodlist"
	"healthy-bite-selector/internal/history"
	"healthy-bite-selector/internal/metrics"
	"healthy-bite-selector/internal/planner"
)

func (b *Bot) handleAdd(ctx context.Context, chatID int64, name string) {
	item, err := b.app.AddFood(ctx, name)
	switch {
	case errors.Is(err, foodlist.ErrEmptyItem):
		b.reply(chatID, "✏️ Send a food name, e.g. `/add Kimchi`.")
	case errors.Is(err, foodlist.ErrDuplicateItem):
		b.reply(chatID, fmt.Sprintf("ℹ️ *%s* is already on your list.", escapeMarkdown(strings.TrimSpace(name))))
	case err != nil:
		b.replyError(chatID, "adding item", err)
	default:
		b.reply(chatID, fmt.Sprintf("✅ Added *%s*.", escapeMarkdown(item)))
	}
}

func (b *Bot) handleRemove(ctx context.Context, chatID int64, args []string) {
	if len(args) != 1 {
		b.reply(chatID, "✏️ Usage: `/remove <n>` (see /list).")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		b.reply(chatID, "✏️ Usage: `/remove <n>` (see /list).")
		return
	}

	item, err := b.app.RemoveFood(ctx, n-1)
	if errors.Is(err, foodlist.ErrItemNotFound) {
		b.reply(chatID, fmt.Sprintf("🤷 There is no item %d.", n))
		return
	}
	if err != nil {
		b.replyError(chatID, "removing item", err)
		return
	}
	b.reply(chatID, fmt.Sprintf("🗑 Removed *%s*.", escapeMarkdown(item)))
}

func (b *Bot) handleList(ctx context.Context, chatID int64) {
	items, err := b.app.Foods(ctx)
	if err != nil {
		b.replyError(chatID, "listing items", err)
		return
	}
	b.reply(chatID, formatFoodList(items, b.app.SelectedFood()))
}

func (b *Bot) handlePick(ctx context.Context, chatID int64) {
	item, changed, err := b.app.PickFood(ctx)
	if errors.Is(err, foodlist.ErrEmptyList) {
		b.reply(chatID, "🫙 Your list is empty. Add something with /add.")
		return
	}
	if err != nil {
		b.replyError(chatID, "picking item", err)
		return
	}

	text := fmt.Sprintf("🎲 Today's pick: *%s*", escapeMarkdown(item))
	if !changed {
		text += "\n_(same as last time)_"
	}
	b.reply(chatID, text)
}

func (b *Bot) handleImport(ctx context.Context, chatID int64, args []string) {
	if len(args) != 1 {
		b.reply(chatID, "✏️ Usage: `/import <url>`")
		return
	}

	summary, err := b.app.ImportFoods(ctx, args[0])
	if err != nil {
		b.replyError(chatID, "importing items", err)
		return
	}
	b.reply(chatID, fmt.Sprintf("📥 Imported %d item(s), skipped %d.", len(summary.Added), summary.Skipped))
}

func (b *Bot) handlePlan(ctx context.Context, chatID int64, args []string) {
	prefs, err := parsePlanArgs(args)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("✏️ %s\n\nUsage: `/plan [veg|nonveg|mixed] [days] [healthy|indian]`", escapeMarkdown(err.Error())))
		return
	}

	status := tgbotapi.NewMessage(chatID, "🧑‍🍳 Putting your meal plan together...")
	sent, err := b.api.Send(status)
	if err != nil {
		b.logger.Warn("failed to send status message", zap.Error(err))
	}

	res, err := b.app.GeneratePlan(ctx, prefs)
	if err != nil {
		if !errors.Is(err, planner.ErrInvalidPreferences) && !errors.Is(err, planner.ErrNoEligibleDishes) {
			b.sendAdminAlert(fmt.Sprintf("⚠️ *Plan generation failed* for chat %d: %v", chatID, escapeMarkdown(err.Error())))
		}
		b.replyError(chatID, "generating plan", err)
		return
	}

	planText, shoppingText := formatPlanMarkdownParts(res.Plan, res.ShoppingList.Items)
	if sent.MessageID != 0 {
		edit := tgbotapi.NewEditMessageText(chatID, sent.MessageID, planText)
		edit.ParseMode = tgbotapi.ModeMarkdown
		markup := regenerateKeyboard(args)
		edit.ReplyMarkup = &markup
		b.send(edit)
	} else {
		msg := tgbotapi.NewMessage(chatID, planText)
		msg.ParseMode = tgbotapi.ModeMarkdown
		msg.ReplyMarkup = regenerateKeyboard(args)
		b.send(msg)
	}
	b.reply(chatID, shoppingText)
}

func (b *Bot) handleFavorite(ctx context.Context, chatID int64, args []string) {
	day, category, err := parseFavArgs(args)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("✏️ %s\n\nUsage: `/fav <day#> <breakfast|lunch|dinner|snack>`", escapeMarkdown(err.Error())))
		return
	}

	fav, err := b.app.FavoriteFromPlan(ctx, day-1, category)
	switch {
	case errors.Is(err, app.ErrNoPlan):
		b.reply(chatID, "📭 No meal plan yet. Try /plan first.")
	case errors.Is(err, app.ErrDayOutOfRange):
		b.reply(chatID, fmt.Sprintf("🤷 Day %d is not in the current plan.", day))
	case err != nil:
		b.replyError(chatID, "saving favorite", err)
	default:
		b.reply(chatID, fmt.Sprintf("⭐ Saved *%s* (%d kcal)\nid: `%s`", escapeMarkdown(fav.Name), fav.Calories, fav.ID))
	}
}

func (b *Bot) handleFavorites(ctx context.Context, chatID int64) {
	favs, err := b.app.Favorites(ctx)
	if err != nil {
		b.replyError(chatID, "listing favorites", err)
		return
	}
	b.reply(chatID, formatFavorites(favs))
}

func (b *Bot) handleUnfavorite(ctx context.Context, chatID int64, args []string) {
	// Ids embed the dish name, which may contain spaces.
	id := strings.Join(args, " ")
	if id == "" {
		b.reply(chatID, "✏️ Usage: `/unfav <id>` (see /favorites).")
		return
	}
	removed, err := b.app.RemoveFavorite(ctx, id)
	if err != nil {
		b.replyError(chatID, "removing favorite", err)
		return
	}
	if !removed {
		b.reply(chatID, "🤷 No favorite with that id.")
		return
	}
	b.reply(chatID, "🗑 Favorite removed.")
}

func (b *Bot) handleHistory(ctx context.Context, chatID int64, args []string) {
	var entries []history.HistoryEntry
	var err error
	if len(args) > 0 && strings.EqualFold(args[0], "all") {
		entries, err = b.app.AllHistory(ctx)
	} else {
		entries, err = b.app.RecentHistory(ctx, 0)
	}
	if err != nil {
		b.replyError(chatID, "reading history", err)
		return
	}
	b.reply(chatID, formatHistory(entries))
}

func (b *Bot) handleShopping(ctx context.Context, chatID int64) {
	list, err := b.app.ShoppingList(ctx)
	if errors.Is(err, app.ErrNoPlan) {
		b.reply(chatID, "📭 No shopping list yet. Try /plan first.")
		return
	}
	if err != nil {
		b.replyError(chatID, "reading shopping list", err)
		return
	}
	b.reply(chatID, formatShoppingList(list.Items))
}

func (b *Bot) handleExport(ctx context.Context, chatID int64) {
	var buf bytes.Buffer
	err := b.app.ExportCurrentPlan(ctx, &buf)
	if errors.Is(err, app.ErrNoPlan) {
		b.reply(chatID, "📭 No meal plan yet. Try /plan first.")
		return
	}
	if err != nil {
		b.replyError(chatID, "exporting plan", err)
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("meal-plan-%s.xlsx", time.Now().Format("2006-01-02")),
		Bytes: buf.Bytes(),
	})
	doc.Caption = "📊 Your meal plan"
	b.send(doc)
}

func (b *Bot) handleMetricsCommand(ctx context.Context, chatID int64) {
	health := b.app.SysHealth()
	usage, err := b.app.MetricsUsage(ctx, 7)
	if err != nil && !errors.Is(err, app.ErrMetricsDisabled) {
		b.replyError(chatID, "reading metrics", err)
		return
	}
	b.reply(chatID, formatMetricsReport(health, usage, errors.Is(err, app.ErrMetricsDisabled)))
}

func formatMetricsReport(health metrics.SysHealth, usage []metrics.DailyUsage, disabled bool) string {
	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")
	sb.WriteString("*System Health*\n")
	sb.WriteString(fmt.Sprintf("- RAM (Alloc): %d MB\n", health.AllocMB))
	sb.WriteString(fmt.Sprintf("- RAM (Sys): %d MB\n", health.SysMB))
	sb.WriteString(fmt.Sprintf("- Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("- GC cycles: %d\n", health.NumGC))
	sb.WriteString(fmt.Sprintf("- Disk (data): %s\n\n", health.DataDiskSize))

	sb.WriteString("*Plans (last 7 days)*\n")
	switch {
	case disabled:
		sb.WriteString("_metrics are not recorded by this storage backend_\n")
	case len(usage) == 0:
		sb.WriteString("_no plans generated_\n")
	default:
		for _, u := range usage {
			sb.WriteString(fmt.Sprintf("`%s` %d plan(s), %d day(s), %d fallback(s), %d ms avg\n",
				u.Date, u.Generations, u.DaysPlanned, u.FallbackPicks, u.AvgLatencyMS))
		}
	}
	return sb.String()
}
