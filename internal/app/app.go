// Package app assembles the chatbots from a configuration: validators,
// handler registries, dispatchers, endpoints and the dispatch journal.
// Every entry point (HTTP server, Lambda, Cloud Functions, Azure, MCP and
// the CLI) builds one App and serves from it.
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/mymmrac/telego"

	"github.com/ziadkadry99/chatbots/internal/assistant"
	"github.com/ziadkadry99/chatbots/internal/basecamp"
	"github.com/ziadkadry99/chatbots/internal/chatbot"
	"github.com/ziadkadry99/chatbots/internal/config"
	"github.com/ziadkadry99/chatbots/internal/db"
	"github.com/ziadkadry99/chatbots/internal/journal"
	"github.com/ziadkadry99/chatbots/internal/logger"
	"github.com/ziadkadry99/chatbots/internal/server"
	"github.com/ziadkadry99/chatbots/internal/telegram"
	"github.com/ziadkadry99/chatbots/internal/textresource"
	"github.com/ziadkadry99/chatbots/internal/webhook"
)

// Platforms lists the supported platform names.
var Platforms = []string{telegram.Platform, basecamp.Platform}

// ErrUnknownPlatform is returned for a platform name other than Platforms.
var ErrUnknownPlatform = errors.New("unknown platform")

// ErrDisabled is returned for a platform whose endpoint is switched off.
var ErrDisabled = errors.New("endpoint disabled")

// previewChatID is the chat Telegram previews pretend to come from.
const previewChatID = 1

// Answerer answers free text. Both platform assistant handlers accept it.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

type options struct {
	fsys     fs.FS
	answerer Answerer
	database *db.DB
}

// Option customizes New.
type Option func(*options)

// WithFS reads static commands from fsys instead of the configured folder
// on disk. The configured folder is resolved inside fsys.
func WithFS(fsys fs.FS) Option {
	return func(o *options) { o.fsys = fsys }
}

// WithAnswerer replaces the OpenAI assistant.
func WithAnswerer(a Answerer) Option {
	return func(o *options) { o.answerer = a }
}

// WithDatabase stores the journal in database instead of journal.path.
// The caller keeps ownership of database.
func WithDatabase(database *db.DB) Option {
	return func(o *options) { o.database = database }
}

// App is a fully wired set of chatbots.
type App struct {
	cfg *config.Config
	log *slog.Logger

	Loader   *textresource.Loader
	Renderer *textresource.Renderer

	TelegramValidator *chatbot.TokenValidator
	BasecampBot       *chatbot.Bot
	Telegram          *telegram.Endpoint
	Basecamp          *basecamp.Endpoint

	// Journal and Hub are nil when the journal is disabled.
	Journal *journal.Store
	Hub     *journal.Hub

	db     *db.DB
	ownsDB bool
}

// New validates cfg and builds the App.
func New(cfg *config.Config, log *slog.Logger, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if log == nil {
		log = logger.Discard()
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{cfg: cfg, log: log, Renderer: textresource.NewRenderer()}
	if o.fsys != nil {
		a.Loader = textresource.New(o.fsys, cfg.Folder, cfg.Formats()...)
	} else {
		a.Loader = textresource.New(os.DirFS(cfg.Folder), ".", cfg.Formats()...)
	}

	answerer := o.answerer
	if answerer == nil && cfg.Assistant.Enabled {
		client, err := assistant.New(cfg.Assistant)
		if err != nil {
			return nil, err
		}
		answerer = client
	}

	telegramDispatcher, err := a.telegramDispatcher(answerer)
	if err != nil {
		return nil, err
	}
	basecampDispatcher, err := a.basecampDispatcher(answerer)
	if err != nil {
		return nil, err
	}

	// Opened last: nothing below can fail and leave the database open.
	var recorder webhook.Recorder
	if cfg.Journal.Enabled {
		if err := a.openJournal(o.database); err != nil {
			return nil, err
		}
		recorder = a.Journal
	}

	a.TelegramValidator = chatbot.NewTokenValidator(TelegramBots(cfg), logger.Component(log, "validator"))
	a.BasecampBot = BasecampBot(cfg)
	a.Telegram = telegram.NewEndpoint(a.TelegramValidator, telegramDispatcher, recorder, logger.Component(log, telegram.Platform))
	a.Basecamp = basecamp.NewEndpoint(
		chatbot.NewMarkerValidator(basecamp.Marker, logger.Component(log, "validator")),
		a.BasecampBot, basecampDispatcher, recorder, logger.Component(log, basecamp.Platform),
	)
	return a, nil
}

func (a *App) openJournal(database *db.DB) error {
	if database == nil {
		opened, err := db.Open(a.cfg.Journal.Path)
		if err != nil {
			return fmt.Errorf("opening journal: %w", err)
		}
		database = opened
		a.ownsDB = true
	}
	a.db = database
	a.Hub = journal.NewHub(logger.Component(a.log, "journal"))
	a.Journal = journal.NewStore(database, a.Hub, logger.Component(a.log, "journal"))
	return nil
}

func (a *App) telegramDispatcher(answerer Answerer) (*chatbot.Dispatcher[telegram.Update, telegram.Reply], error) {
	handlers, err := telegram.StaticCommandHandlers(a.Loader)
	if err != nil {
		return nil, err
	}
	handlers = append(handlers, telegram.UnknownCommandHandler{})
	if answerer != nil {
		handlers = append(handlers, &telegram.AssistantHandler{Answerer: answerer})
	}
	return chatbot.NewDispatcher(chatbot.NewRegistry(handlers...), logger.Component(a.log, "dispatch")), nil
}

func (a *App) basecampDispatcher(answerer Answerer) (*chatbot.Dispatcher[basecamp.Query, string], error) {
	handlers, err := basecamp.StaticCommandHandlers(a.Loader, a.Renderer)
	if err != nil {
		return nil, err
	}
	handlers = append(handlers, basecamp.UnknownCommandHandler{})
	if answerer != nil {
		handlers = append(handlers, &basecamp.AssistantHandler{Answerer: answerer, Renderer: a.Renderer})
	}
	return chatbot.NewDispatcher(chatbot.NewRegistry(handlers...), logger.Component(a.log, "dispatch")), nil
}

// TelegramBots converts the configured Telegram bots, in credential
// matching order.
func TelegramBots(cfg *config.Config) []chatbot.Bot {
	names := cfg.TelegramBotNames()
	bots := make([]chatbot.Bot, 0, len(names))
	for _, name := range names {
		b := cfg.Telegram.Bots[name]
		bots = append(bots, chatbot.Bot{
			Name:       name,
			Enabled:    b.Enabled,
			Credential: b.Token,
			Username:   b.AtUsername,
		})
	}
	return bots
}

// BasecampBot returns the first enabled Basecamp bot by name, or nil.
// Basecamp calls carry no bot identity, so all of them are attributed to it.
func BasecampBot(cfg *config.Config) *chatbot.Bot {
	for _, name := range cfg.BasecampBotNames() {
		if cfg.Basecamp.Bots[name].Enabled {
			return &chatbot.Bot{Name: name, Enabled: true}
		}
	}
	return nil
}

// Active reports whether platform's endpoint is served. Basecamp is off
// when bots are configured but none of them is enabled.
func (a *App) Active(platform string) bool {
	if !a.cfg.Enabled {
		return false
	}
	switch platform {
	case telegram.Platform:
		return a.cfg.Telegram.Endpoint.Enabled
	case basecamp.Platform:
		if !a.cfg.Basecamp.Endpoint.Enabled {
			return false
		}
		return len(a.cfg.Basecamp.Bots) == 0 || a.BasecampBot != nil
	}
	return false
}

// Handler returns the endpoint serving platform.
func (a *App) Handler(platform string) (webhook.Handler, error) {
	var h webhook.Handler
	switch platform {
	case telegram.Platform:
		h = a.Telegram
	case basecamp.Platform:
		h = a.Basecamp
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownPlatform, platform)
	}
	if !a.Active(platform) {
		return nil, fmt.Errorf("%s: %w", platform, ErrDisabled)
	}
	return h, nil
}

// Mount registers the active endpoints and the journal API on srv.
func (a *App) Mount(srv *server.Server) {
	srv.Webhooks(func(r chi.Router) {
		if a.Active(telegram.Platform) {
			telegram.RegisterRoutes(r, a.cfg.Telegram.Endpoint.Path, a.Telegram)
			a.log.Info("endpoint mounted", "platform", telegram.Platform, "path", a.cfg.Telegram.Endpoint.Path)
		}
		if a.Active(basecamp.Platform) {
			basecamp.RegisterRoutes(r, a.cfg.Basecamp.Endpoint.Path, a.Basecamp)
			a.log.Info("endpoint mounted", "platform", basecamp.Platform, "path", a.cfg.Basecamp.Endpoint.Path)
		}
	})
	if a.Journal != nil {
		journal.RegisterRoutes(srv.Router(), a.Journal, a.Hub, a.cfg.Server.AdminToken)
	}
}

// Prune drops journal entries older than the configured retention.
func (a *App) Prune(ctx context.Context) (int64, error) {
	if a.Journal == nil || a.cfg.Journal.RetentionDays <= 0 {
		return 0, nil
	}
	return a.Journal.Prune(ctx, a.cfg.Journal.RetentionDays)
}

// Commands lists the static commands found in the configured folder.
func (a *App) Commands() ([]string, error) {
	return a.Loader.Commands()
}

// Preview dispatches text as if it came from platform, bypassing
// authentication, and returns the reply body. botName selects the bot;
// empty means the first enabled one. ok is false when nothing replies.
func (a *App) Preview(ctx context.Context, platform, botName, text string) (reply string, ok bool, err error) {
	switch platform {
	case telegram.Platform:
		bot, err := a.previewBot(botName)
		if err != nil {
			return "", false, err
		}
		u := telegram.Update{Message: &telego.Message{
			Chat: telego.Chat{ID: previewChatID, Type: "private"},
			Text: text,
		}}
		out, ok, err := a.Telegram.Dispatcher.Dispatch(ctx, bot, u)
		if err != nil || !ok {
			return "", false, err
		}
		return out.Text, true, nil
	case basecamp.Platform:
		bot := a.BasecampBot
		if botName != "" {
			if !a.cfg.Basecamp.Bots[botName].Enabled {
				return "", false, fmt.Errorf("no enabled basecamp bot named %q", botName)
			}
			bot = &chatbot.Bot{Name: botName, Enabled: true}
		}
		out, ok, err := a.Basecamp.Dispatcher.Dispatch(ctx, bot, basecamp.Query{Command: text})
		if err != nil || !ok {
			return "", false, err
		}
		return out, true, nil
	}
	return "", false, fmt.Errorf("%w %q", ErrUnknownPlatform, platform)
}

func (a *App) previewBot(name string) (*chatbot.Bot, error) {
	if name != "" {
		bot, ok := a.TelegramValidator.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("no enabled telegram bot named %q", name)
		}
		return bot, nil
	}
	for _, b := range a.TelegramValidator.Bots() {
		if b.Enabled {
			return &b, nil
		}
	}
	return nil, nil
}

// Close releases the journal database if the App opened it.
func (a *App) Close() error {
	if a.ownsDB && a.db != nil {
		return a.db.Close()
	}
	return nil
}
