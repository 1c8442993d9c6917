package gateway

import (
	"github.com/pagekit-go/pagekit/pkg/message"
	"github.com/pagekit-go/pagekit/pkg/messenger"
)

// Frame op codes.
const (
	opSend        = "send"
	opReply       = "reply"
	opEdit        = "edit"
	opAck         = "ack"
	opError       = "error"
	opInteraction = "interaction"
	opDefer       = "defer"
	opEphemeral   = "ephemeral"
	opEditOrigin  = "edit_origin"
)

// frame is the single wire shape of the gateway protocol. Which fields
// are populated depends on Op.
type frame struct {
	Op    string `json:"op"`
	Nonce string `json:"nonce,omitempty"`

	ChannelID string `json:"channel_id,omitempty"`
	MessageID string `json:"message_id,omitempty"`
	ReplyToID string `json:"reply_to_id,omitempty"`

	InteractionID string          `json:"interaction_id,omitempty"`
	CustomID      string          `json:"custom_id,omitempty"`
	Values        []string        `json:"values,omitempty"`
	User          *messenger.User `json:"user,omitempty"`

	Content string           `json:"content,omitempty"`
	Payload *message.Payload `json:"payload,omitempty"`
	Error   string           `json:"error,omitempty"`
}
