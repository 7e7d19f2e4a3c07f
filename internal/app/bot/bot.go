package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/dnestruev/VALERA-2.0/infrastructure/metrics"
	"github.com/dnestruev/VALERA-2.0/internal/model"
	"github.com/dnestruev/VALERA-2.0/internal/service/kafka"
	"github.com/dnestruev/VALERA-2.0/internal/service/notes"
	"github.com/dnestruev/VALERA-2.0/internal/service/weather"
	"gopkg.in/telebot.v3"
)

const (
	longProcessTimeout = 2

	premiumDuration = 30 * 24 * time.Hour

	dateTimeLayout = "2006-01-02 15:04"
)

const (
	welcomeMessage = "Привет! Я Валера‑бот 🤖. Выберите действие:"

	helpMessage = "Команды:\n" +
		"/start — запуск\n" +
		"/note <текст> — добавить заметку\n" +
		"/notes — список заметок\n" +
		"/weather <город> — погода\n" +
		"/premium — статус премиума\n" +
		"/help — показать это сообщение"

	noteUsageMessage    = "Пример: /note купить хлеб"
	noteSavedMessage    = "Заметка сохранена ✅"
	noNotesMessage      = "Заметок пока нет"
	weatherUsageMessage = "Пример: /weather Москва"
	confirmUsageMessage = "Пример: /confirm 123456789"
	adminOnlyMessage    = "Эта команда доступна только администратору"
	storageErrorMessage = "Что-то пошло не так. Попробуйте позже."
	timeoutMessage      = "Операция заняла слишком много времени. Попробуйте позже."
	premiumIdleMessage  = "Премиум не активен. Подключение — через администратора."
)

const (
	payloadMenuNotes   = "menu_notes"
	payloadMenuWeather = "menu_weather"
	payloadMenuPremium = "menu_premium"
)

var (
	btnNotes   = telebot.InlineButton{Unique: payloadMenuNotes, Text: "Мои заметки 📝"}
	btnWeather = telebot.InlineButton{Unique: payloadMenuWeather, Text: "Погода 🌤"}
	btnPremium = telebot.InlineButton{Unique: payloadMenuPremium, Text: "Премиум ⭐"}
)

type (
	// WeatherClient resolves a city name into a ready-to-send display result.
	WeatherClient interface {
		Fetch(ctx context.Context, city string) weather.Result
	}

	// PremiumGate answers whether a user currently has premium access.
	PremiumGate interface {
		IsActive(ctx context.Context, userID model.UserID) (bool, error)
		PremiumUntil(ctx context.Context, userID model.UserID) (*time.Time, error)
	}

	// sender is the slice of *telebot.Bot used for out-of-band pushes.
	sender interface {
		Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
	}
)

type Bot struct {
	bot     *telebot.Bot
	notes   notes.Service
	gate    PremiumGate
	weather WeatherClient
	broker  kafka.MessageBroker
	adminID model.UserID
	push    sender
	now     func() time.Time
}

func New(
	bot *telebot.Bot,
	notes notes.Service,
	gate PremiumGate,
	weather WeatherClient,
	broker kafka.MessageBroker,
	adminID model.UserID,
) *Bot {
	return &Bot{
		bot:     bot,
		notes:   notes,
		gate:    gate,
		weather: weather,
		broker:  broker,
		adminID: adminID,
		push:    bot,
		now:     time.Now,
	}
}

func (b *Bot) Start() {
	b.startHandler()
	b.helpHandler()
	b.addNoteHandler()
	b.listNotesHandler()
	b.weatherHandler()
	b.premiumHandler()
	b.confirmHandler()
	b.menuHandlers()
	b.textHandler()

	log.Println("Valera bot started...")
	b.bot.Start()
}

// startHandler обработчик приветствия с меню действий
func (b *Bot) startHandler() {
	b.bot.Handle("/start", func(c telebot.Context) error {
		metrics.CommandsProcessed.WithLabelValues("start").Inc()

		ctx, cancel := context.WithTimeout(context.Background(), longProcessTimeout*time.Second)
		defer cancel()

		userID := model.UserID(c.Sender().ID)

		if err := b.notes.EnsureUserExists(ctx, model.User{
			ID:       userID,
			Username: c.Sender().Username},
		); err != nil {
			log.Printf("failed to ensure user '%d' exists: %v", userID, err)
			return c.Send(storageErrorMessage)
		}

		markup := &telebot.ReplyMarkup{}
		markup.InlineKeyboard = [][]telebot.InlineButton{
			{btnNotes},
			{btnWeather},
			{btnPremium},
		}
		return c.Send(welcomeMessage, markup)
	})
}

// helpHandler обработчик помощь
func (b *Bot) helpHandler() {
	b.bot.Handle("/help", func(c telebot.Context) error {
		metrics.CommandsProcessed.WithLabelValues("help").Inc()
		return c.Send(helpMessage)
	})
}

// addNoteHandler обработчик создать заметку
func (b *Bot) addNoteHandler() {
	b.bot.Handle("/note", func(c telebot.Context) error {
		metrics.CommandsProcessed.WithLabelValues("note").Inc()
		start := time.Now()
		defer func() { metrics.ResponseTimeHistogram.Observe(time.Since(start).Seconds()) }()

		ctx, cancel := context.WithTimeout(context.Background(), longProcessTimeout*time.Second)
		defer cancel()

		user := model.User{
			ID:       model.UserID(c.Sender().ID),
			Username: c.Sender().Username,
		}
		return c.Send(b.addNote(ctx, user, c.Message().Payload))
	})
}

func (b *Bot) addNote(ctx context.Context, user model.User, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return noteUsageMessage
	}

	if err := b.notes.EnsureUserExists(ctx, user); err != nil {
		log.Printf("failed to ensure user '%d' exists: %v", user.ID, err)
		return storageErrorMessage
	}

	if _, err := b.notes.Create(ctx, model.Note{
		UserID: user.ID,
		Text:   text,
	}); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			log.Printf("context deadline exceeded while creating note for user '%d': %v", user.ID, err)
			return timeoutMessage
		}
		log.Printf("failed to create note for user '%d': %v", user.ID, err)
		return storageErrorMessage
	}

	return noteSavedMessage
}

// listNotesHandler обработчик получить список заметок
func (b *Bot) listNotesHandler() {
	b.bot.Handle("/notes", func(c telebot.Context) error {
		metrics.CommandsProcessed.WithLabelValues("notes").Inc()
		start := time.Now()
		defer func() { metrics.ResponseTimeHistogram.Observe(time.Since(start).Seconds()) }()

		ctx, cancel := context.WithTimeout(context.Background(), longProcessTimeout*time.Second)
		defer cancel()

		return c.Send(b.listNotes(ctx, model.UserID(c.Sender().ID)))
	})
}

func (b *Bot) listNotes(ctx context.Context, userID model.UserID) string {
	notesList, err := b.notes.List(ctx, userID)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			log.Printf("context deadline exceeded while fetch notes for user '%d': %v", userID, err)
			return timeoutMessage
		}
		log.Printf("failed to fetch notes for user '%d': %v", userID, err)
		return storageErrorMessage
	}

	if len(notesList) == 0 {
		return noNotesMessage
	}

	var response strings.Builder
	response.WriteString("Ваши заметки:")
	for _, note := range notesList {
		response.WriteString("\n• " + note.Text)
	}

	return response.String()
}

// weatherHandler обработчик запроса погоды
func (b *Bot) weatherHandler() {
	b.bot.Handle("/weather", func(c telebot.Context) error {
		metrics.CommandsProcessed.WithLabelValues("weather").Inc()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		return c.Send(b.weatherReply(ctx, c.Message().Payload))
	})
}

func (b *Bot) weatherReply(ctx context.Context, city string) string {
	city = strings.TrimSpace(city)
	if city == "" {
		return weatherUsageMessage
	}

	return b.weather.Fetch(ctx, city).Display()
}

// premiumHandler обработчик статуса премиум-подписки
func (b *Bot) premiumHandler() {
	b.bot.Handle("/premium", func(c telebot.Context) error {
		metrics.CommandsProcessed.WithLabelValues("premium").Inc()

		ctx, cancel := context.WithTimeout(context.Background(), longProcessTimeout*time.Second)
		defer cancel()

		return c.Send(b.premiumStatus(ctx, model.UserID(c.Sender().ID)))
	})
}

func (b *Bot) premiumStatus(ctx context.Context, userID model.UserID) string {
	active, err := b.gate.IsActive(ctx, userID)
	if err != nil {
		log.Printf("failed to check premium for user '%d': %v", userID, err)
		return storageErrorMessage
	}

	if !active {
		return premiumIdleMessage
	}

	until, err := b.gate.PremiumUntil(ctx, userID)
	if err != nil || until == nil {
		log.Printf("failed to get premium expiry for user '%d': %v", userID, err)
		return "Премиум активен ⭐"
	}

	return fmt.Sprintf("Премиум активен до %s ⭐", until.Format(dateTimeLayout))
}

// confirmHandler обработчик выдачи премиума администратором
func (b *Bot) confirmHandler() {
	b.bot.Handle("/confirm", func(c telebot.Context) error {
		metrics.CommandsProcessed.WithLabelValues("confirm").Inc()

		ctx, cancel := context.WithTimeout(context.Background(), longProcessTimeout*time.Second)
		defer cancel()

		return c.Send(b.grantPremium(ctx, model.UserID(c.Sender().ID), c.Message().Payload))
	})
}

func (b *Bot) grantPremium(ctx context.Context, caller model.UserID, payload string) string {
	if caller != b.adminID {
		return adminOnlyMessage
	}

	target, err := strconv.ParseInt(strings.TrimSpace(payload), 10, 64)
	if err != nil {
		return confirmUsageMessage
	}
	targetID := model.UserID(target)

	until := b.now().Add(premiumDuration)

	if err = b.notes.SetPremiumUntil(ctx, targetID, until); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			log.Printf("context deadline exceeded while granting premium to user '%d': %v", targetID, err)
			return timeoutMessage
		}
		log.Printf("failed to grant premium to user '%d': %v", targetID, err)
		return storageErrorMessage
	}

	notice := fmt.Sprintf("Вам подключён премиум до %s 🎉", until.Format(dateTimeLayout))
	if _, err = b.push.Send(&telebot.User{ID: int64(targetID)}, notice); err != nil {
		log.Printf("failed to notify user '%d' about premium: %v", targetID, err)
	}

	if err = b.broker.SendMessage(ctx,
		[]byte(strconv.FormatInt(int64(targetID), 10)),
		[]byte(until.Format(time.RFC3339)),
	); err != nil {
		log.Printf("failed to send grant event to kafka: %v", err)
	} else {
		log.Printf("premium grant for user '%d' sent to kafka", targetID)
	}

	return fmt.Sprintf("Премиум для пользователя %d действует до %s", targetID, until.Format(dateTimeLayout))
}

// menuHandlers обработчики кнопок приветственного меню
func (b *Bot) menuHandlers() {
	for _, btn := range []telebot.InlineButton{btnNotes, btnWeather, btnPremium} {
		btn := btn
		b.bot.Handle(&btn, func(c telebot.Context) error {
			// Убираем "часики" на кнопке
			if err := c.Respond(); err != nil {
				log.Printf("failed to respond to callback '%s': %v", btn.Unique, err)
			}

			reply, ok := menuReply(btn.Unique)
			if !ok {
				return nil
			}
			return c.Send(reply)
		})
	}
}

func menuReply(payload string) (string, bool) {
	switch payload {
	case payloadMenuNotes:
		return "Заметки: /note <текст> — добавить, /notes — посмотреть список", true
	case payloadMenuWeather:
		return "Погода: /weather <город>", true
	case payloadMenuPremium:
		return "Премиум ⭐ открывает все возможности бота. Статус: /premium, подключение — через администратора.", true
	}
	return "", false
}

// textHandler обработчик обычного текста
func (b *Bot) textHandler() {
	b.bot.Handle(telebot.OnText, func(c telebot.Context) error {
		// Незнакомые команды молча игнорируем
		if strings.HasPrefix(c.Text(), "/") {
			return nil
		}
		return c.Send("Ты написал: " + c.Text())
	})
}
