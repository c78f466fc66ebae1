package bot

import (
	"log"

	"github.com/mozhnovpn/portal/internal/services"
)

// Sender is the outbound side of the chat transport; *Client in production,
// a fake in tests.
type Sender interface {
	SendMessage(chatID int64, text string) error
}

type Dispatcher struct {
	send        Sender
	siteURL     string
	botUsername string
}

func NewDispatcher(send Sender, siteURL, botUsername string) *Dispatcher {
	return &Dispatcher{send: send, siteURL: siteURL, botUsername: botUsername}
}

// Handle routes one inbound update. Exactly one reply per text message;
// updates without text are ignored.
func (d *Dispatcher) Handle(u *Update) {
	if u.Message == nil || u.Message.Text == "" {
		return
	}
	m := u.Message
	if m.From == nil || m.Chat == nil {
		return
	}
	chat := m.Chat.ID
	ident := services.TelegramIdentity{
		ID:        m.From.ID,
		Username:  m.From.Username,
		FirstName: m.From.FirstName,
		LastName:  m.From.LastName,
	}

	cmd := ParseCommand(m.Text)
	switch cmd.Kind {
	case CmdStart:
		d.handleStart(chat, ident, cmd.Arg)
	case CmdLink:
		d.handleLink(chat, ident, cmd.Arg)
	case CmdRegister:
		d.handleRegister(chat, ident, cmd.Arg)
	case CmdStatus:
		d.handleStatus(chat, ident)
	case CmdReferral:
		d.handleReferral(chat, ident)
	case CmdHelp:
		d.reply(chat, helpText)
	default:
		d.reply(chat, "Unknown command. Try /help.")
	}
}

func (d *Dispatcher) reply(chat int64, text string) {
	if err := d.send.SendMessage(chat, text); err != nil {
		log.Printf("telegram send failed: %v", err)
	}
}
