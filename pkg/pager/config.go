package pager

import (
	"log/slog"
	"time"

	"github.com/pagekit-go/pagekit/pkg/message"
	"github.com/pagekit-go/pagekit/pkg/messenger"
)

// Component roles encoded into control custom IDs.
const (
	RoleSelect   = "select"
	RoleFirst    = "first"
	RoleBack     = "back"
	RoleCallback = "callback"
	RoleNext     = "next"
	RoleLast     = "last"
)

// allRoles lists every role a paginator registers, in layout order.
func allRoles() []string {
	return []string{RoleSelect, RoleFirst, RoleBack, RoleCallback, RoleNext, RoleLast}
}

// minWatchdogTimeout is the smallest idle timeout that activates the
// watchdog; anything at or below it disables idle handling.
const minWatchdogTimeout = time.Second

// Config controls which controls a paginator renders and how it behaves.
type Config struct {
	// ShowFirstButton, ShowBackButton, ShowNextButton and ShowLastButton
	// toggle the four navigation buttons.
	ShowFirstButton bool
	ShowBackButton  bool
	ShowNextButton  bool
	ShowLastButton  bool

	// ShowCallbackButton shows a button that invokes Callback.
	ShowCallbackButton bool

	// ShowSelectMenu shows a page-jump select menu above the buttons.
	ShowSelectMenu bool

	// Per-control emoji.
	FirstEmoji    string
	BackEmoji     string
	NextEmoji     string
	LastEmoji     string
	CallbackEmoji string

	// ButtonStyle is the visual style of all navigation buttons.
	ButtonStyle message.ButtonStyle

	// WrongUserMessage is sent ephemerally when a user other than the
	// paginator's author presses a control. Empty means silent defer.
	WrongUserMessage string

	// DefaultTitle is applied to text pages that carry no title of their
	// own.
	DefaultTitle string

	// DefaultColor is applied to embeds that carry no color.
	DefaultColor message.Color

	// IdleTimeout disables the controls after this long without an
	// interaction. Values of one second or less disable idle handling.
	IdleTimeout time.Duration

	// PageSize is the character budget per page for the segmentation
	// factories.
	PageSize int

	// Prefix and Suffix wrap the content of every generated page.
	Prefix string
	Suffix string

	// Callback, when set, handles presses of the callback button and
	// fully owns the interaction response.
	Callback messenger.Handler

	// Logger receives paginator lifecycle logs. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the stock configuration: all four navigation
// buttons, no select menu, no callback, 4000-character pages.
func DefaultConfig() Config {
	return Config{
		ShowFirstButton:  true,
		ShowBackButton:   true,
		ShowNextButton:   true,
		ShowLastButton:   true,
		FirstEmoji:       "⏮️",
		BackEmoji:        "⬅️",
		NextEmoji:        "➡️",
		LastEmoji:        "⏩",
		CallbackEmoji:    "✅",
		ButtonStyle:      message.StylePrimary,
		WrongUserMessage: "This paginator is not for you",
		DefaultColor:     message.ColorBlurple,
		PageSize:         4000,
	}
}

// Option mutates a paginator's configuration at construction time.
type Option func(*Config)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *Config) { *c = cfg }
}

// WithIdleTimeout sets how long the paginator stays interactive without
// activity.
func WithIdleTimeout(d time.Duration) Option {
	return func(c *Config) { c.IdleTimeout = d }
}

// WithWrongUserMessage sets the ephemeral notice shown to non-authors.
// An empty string switches to a silent acknowledgement.
func WithWrongUserMessage(msg string) Option {
	return func(c *Config) { c.WrongUserMessage = msg }
}

// WithNavButtons toggles the four navigation buttons individually.
func WithNavButtons(first, back, next, last bool) Option {
	return func(c *Config) {
		c.ShowFirstButton = first
		c.ShowBackButton = back
		c.ShowNextButton = next
		c.ShowLastButton = last
	}
}

// WithSelectMenu enables the page-jump select menu.
func WithSelectMenu() Option {
	return func(c *Config) { c.ShowSelectMenu = true }
}

// WithCallback enables the callback button and sets its handler. The
// handler owns the interaction response entirely.
func WithCallback(h messenger.Handler) Option {
	return func(c *Config) {
		c.Callback = h
		c.ShowCallbackButton = true
	}
}

// WithButtonStyle sets the style of all navigation buttons.
func WithButtonStyle(s message.ButtonStyle) Option {
	return func(c *Config) { c.ButtonStyle = s }
}

// WithDefaultTitle sets the title applied to untitled text pages.
func WithDefaultTitle(title string) Option {
	return func(c *Config) { c.DefaultTitle = title }
}

// WithDefaultColor sets the color applied to colorless embeds.
func WithDefaultColor(color message.Color) Option {
	return func(c *Config) { c.DefaultColor = color }
}

// WithPageSize sets the character budget per generated page.
func WithPageSize(n int) Option {
	return func(c *Config) { c.PageSize = n }
}

// WithAffixes sets the prefix and suffix wrapped around every generated
// page.
func WithAffixes(prefix, suffix string) Option {
	return func(c *Config) {
		c.Prefix = prefix
		c.Suffix = suffix
	}
}

// WithLogger sets the paginator's logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}
