package message

import "strings"

// Color is a 24-bit RGB embed color.
type Color int

// Brand colors used as embed defaults.
const (
	ColorNone    Color = 0
	ColorBlurple Color = 0x5865F2
	ColorGreen   Color = 0x57F287
	ColorYellow  Color = 0xFEE75C
	ColorRed     Color = 0xED4245
)

// ButtonStyle selects the visual style of a button.
type ButtonStyle int

const (
	StylePrimary   ButtonStyle = 1
	StyleSecondary ButtonStyle = 2
	StyleSuccess   ButtonStyle = 3
	StyleDanger    ButtonStyle = 4
	StyleLink      ButtonStyle = 5
)

// Component type discriminators on the wire.
const (
	typeActionRow  = 1
	typeButton     = 2
	typeSelectMenu = 3
)

// rowCapacity is the component budget of one action row. A button costs
// one unit, a select menu the whole row.
const rowCapacity = 5

// EmbedFooter is the footer line of an embed.
type EmbedFooter struct {
	Text string `json:"text"`
}

// Embed is a rich message body.
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       Color        `json:"color,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
}

// Clone returns a copy of the embed that shares no mutable state with
// the original.
func (e *Embed) Clone() *Embed {
	c := *e
	if e.Footer != nil {
		f := *e.Footer
		c.Footer = &f
	}
	return &c
}

// Component is an interactive element placed inside an action row.
type Component interface {
	// width reports how many row units the component occupies.
	width() int
}

// Button is a clickable button component.
type Button struct {
	Type     int         `json:"type"`
	Style    ButtonStyle `json:"style"`
	Label    string      `json:"label,omitempty"`
	Emoji    string      `json:"emoji,omitempty"`
	CustomID string      `json:"custom_id"`
	Disabled bool        `json:"disabled,omitempty"`
}

// NewButton creates a button with the wire type discriminator set.
func NewButton(style ButtonStyle, emoji, customID string, disabled bool) *Button {
	return &Button{Type: typeButton, Style: style, Emoji: emoji, CustomID: customID, Disabled: disabled}
}

func (b *Button) width() int { return 1 }

// SelectOption is one entry of a select menu.
type SelectOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SelectMenu is a dropdown component. It always occupies a full row.
type SelectMenu struct {
	Type        int            `json:"type"`
	CustomID    string         `json:"custom_id"`
	Placeholder string         `json:"placeholder,omitempty"`
	MaxValues   int            `json:"max_values,omitempty"`
	Options     []SelectOption `json:"options"`
	Disabled    bool           `json:"disabled,omitempty"`
}

// NewSelectMenu creates a single-choice select menu with the wire type
// discriminator set.
func NewSelectMenu(customID, placeholder string, options []SelectOption, disabled bool) *SelectMenu {
	return &SelectMenu{
		Type:        typeSelectMenu,
		CustomID:    customID,
		Placeholder: placeholder,
		MaxValues:   1,
		Options:     options,
		Disabled:    disabled,
	}
}

func (s *SelectMenu) width() int { return rowCapacity }

// ActionRow groups up to five components on one message row.
type ActionRow struct {
	Type       int         `json:"type"`
	Components []Component `json:"components"`
}

// SpreadToRows distributes components over action rows, filling each row
// up to its capacity in order. Select menus take a full row.
func SpreadToRows(components ...Component) []ActionRow {
	var rows []ActionRow
	var cur ActionRow
	used := 0

	flush := func() {
		if len(cur.Components) > 0 {
			cur.Type = typeActionRow
			rows = append(rows, cur)
		}
		cur = ActionRow{}
		used = 0
	}

	for _, c := range components {
		if c == nil {
			continue
		}
		if used+c.width() > rowCapacity {
			flush()
		}
		cur.Components = append(cur.Components, c)
		used += c.width()
	}
	flush()

	return rows
}

// Payload is the full outbound message body: embeds plus component rows.
type Payload struct {
	Content    string      `json:"content,omitempty"`
	Embeds     []*Embed    `json:"embeds,omitempty"`
	Components []ActionRow `json:"components,omitempty"`
}

// customIDSeparator separates the session ID from the role in component
// custom IDs.
const customIDSeparator = "|"

// JoinCustomID builds the custom ID scoping a component role to a
// paginator session.
func JoinCustomID(sessionID, role string) string {
	return sessionID + customIDSeparator + role
}

// SplitCustomID splits a custom ID into its session ID and role. ok is
// false when the ID does not carry both parts.
func SplitCustomID(customID string) (sessionID, role string, ok bool) {
	sessionID, role, ok = strings.Cut(customID, customIDSeparator)
	if !ok || sessionID == "" || role == "" {
		return "", "", false
	}
	return sessionID, role, true
}
