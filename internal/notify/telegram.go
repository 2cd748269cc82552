package notify

import (
	"context"
	"fmt"
	"html"
	"log"
	"sort"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"study-planner/internal/model"
	"study-planner/internal/repository"
)

// Telegram pushes plan updates to users who linked a chat. Every send is best
// effort; a delivery failure is logged and forgotten.
type Telegram struct {
	api *tgbotapi.BotAPI
}

func NewTelegram(token string) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	log.Printf("[info] telegram notifier authorized on account %s", api.Self.UserName)
	return &Telegram{api: api}, nil
}

// SchedulePushed announces a freshly generated or replanned schedule.
func (t *Telegram) SchedulePushed(user *model.User, schedule *model.Schedule, replanned bool) {
	if user == nil || user.TelegramChatID == 0 {
		return
	}

	var b strings.Builder
	if replanned {
		b.WriteString("♻️ <b>Schedule replanned</b>\n")
		if schedule.ReplannedReason != "" {
			b.WriteString(fmt.Sprintf("Reason: %s\n", escape(schedule.ReplannedReason)))
		}
	} else {
		b.WriteString("🗓 <b>New study schedule</b>\n")
	}
	b.WriteString(fmt.Sprintf(
		"%s — %s · %d blocks · %d min planned",
		schedule.ValidFrom.Format("2006-01-02"),
		schedule.ValidUntil.Format("2006-01-02"),
		len(schedule.Items),
		schedule.TotalPlannedMinutes,
	))

	t.send(user.TelegramChatID, b.String())
}

// SendDailyAgendas pushes today's study blocks to every linked user.
func (t *Telegram) SendDailyAgendas(ctx context.Context, users *repository.UserRepository, schedules *repository.ScheduleRepository, categories *repository.CategoryRepository) error {
	all, err := users.ListAll(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, user := range all {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if user.TelegramChatID == 0 {
			continue
		}

		schedule, err := schedules.FindActive(ctx, user.ID)
		if err != nil {
			log.Printf("agenda for user %d: %v", user.ID, err)
			continue
		}
		if schedule == nil {
			continue
		}

		cats, err := categories.ListByUser(ctx, user.ID)
		if err != nil {
			log.Printf("agenda for user %d: %v", user.ID, err)
			continue
		}
		names := make(map[uint]string)
		for _, cat := range cats {
			names[cat.ID] = cat.Name
		}

		if text := buildAgenda(schedule, names, now); text != "" {
			t.send(user.TelegramChatID, text)
		}
	}
	return nil
}

// buildAgenda renders today's items, earliest first. Empty days render nothing.
func buildAgenda(schedule *model.Schedule, categoryNames map[uint]string, now time.Time) string {
	var today []model.ScheduleItem
	for _, item := range schedule.Items {
		start := item.StartTime.In(now.Location())
		if start.Year() == now.Year() && start.YearDay() == now.YearDay() {
			today = append(today, item)
		}
	}
	if len(today) == 0 {
		return ""
	}

	sort.Slice(today, func(i, j int) bool {
		return today[i].StartTime.Before(today[j].StartTime)
	})

	var b strings.Builder
	b.WriteString("📋 <b>Today's study plan</b>\n")
	b.WriteString(fmt.Sprintf("🗓 %s\n\n", now.Format("02.01.2006")))
	for _, item := range today {
		b.WriteString(formatItem(item, categoryNames[item.CategoryID], now))
	}
	return strings.TrimSpace(b.String())
}

func formatItem(item model.ScheduleItem, categoryName string, now time.Time) string {
	icon := "🟢"
	switch item.Priority {
	case model.PriorityHigh:
		icon = "🔥"
	case model.PriorityLow:
		icon = "💤"
	}

	name := strings.TrimSpace(categoryName)
	if name == "" {
		name = "Study"
	}

	start := item.StartTime.In(now.Location())
	end := item.EndTime.In(now.Location())
	return fmt.Sprintf(
		"%s %s–%s <b>%s</b> · %d min · %s\n",
		icon,
		start.Format("15:04"),
		end.Format("15:04"),
		escape(name),
		item.Duration,
		item.Mode,
	)
}

func (t *Telegram) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := t.api.Send(msg); err != nil {
		log.Printf("send telegram message to %d: %v", chatID, err)
	}
}

func escape(s string) string {
	return html.EscapeString(s)
}
