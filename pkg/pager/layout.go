package pager

import (
	"strconv"

	"github.com/pagekit-go/pagekit/pkg/message"
)

// controls builds the ordered control set for the given position:
// select menu, first, back, callback, next, last. The disabled flag
// forces every control off; first/back are additionally disabled on the
// first page and next/last on the last page.
//
// Pure given its inputs; callers hold the paginator lock.
func controls(sessionID string, pageIndex int, items []Item, cfg Config, disabled bool) []message.ActionRow {
	var out []message.Component

	if cfg.ShowSelectMenu {
		options := make([]message.SelectOption, len(items))
		for i, it := range items {
			options[i] = message.SelectOption{
				Label: strconv.Itoa(i+1) + " " + it.Summary(),
				Value: strconv.Itoa(i),
			}
		}
		out = append(out, message.NewSelectMenu(
			message.JoinCustomID(sessionID, RoleSelect),
			options[pageIndex].Label,
			options,
			disabled,
		))
	}

	atFirst := pageIndex == 0
	atLast := pageIndex >= len(items)-1

	if cfg.ShowFirstButton {
		out = append(out, message.NewButton(cfg.ButtonStyle, cfg.FirstEmoji,
			message.JoinCustomID(sessionID, RoleFirst), disabled || atFirst))
	}
	if cfg.ShowBackButton {
		out = append(out, message.NewButton(cfg.ButtonStyle, cfg.BackEmoji,
			message.JoinCustomID(sessionID, RoleBack), disabled || atFirst))
	}
	if cfg.ShowCallbackButton {
		out = append(out, message.NewButton(cfg.ButtonStyle, cfg.CallbackEmoji,
			message.JoinCustomID(sessionID, RoleCallback), disabled))
	}
	if cfg.ShowNextButton {
		out = append(out, message.NewButton(cfg.ButtonStyle, cfg.NextEmoji,
			message.JoinCustomID(sessionID, RoleNext), disabled || atLast))
	}
	if cfg.ShowLastButton {
		out = append(out, message.NewButton(cfg.ButtonStyle, cfg.LastEmoji,
			message.JoinCustomID(sessionID, RoleLast), disabled || atLast))
	}

	return message.SpreadToRows(out...)
}
