package bot

import (
	"strings"
	"unicode"
)

type CommandKind int

const (
	CmdUnknown CommandKind = iota
	CmdStart
	CmdLink
	CmdRegister
	CmdStatus
	CmdReferral
	CmdHelp
)

// Command is the parsed form of one inbound message: a recognized kind plus
// the trimmed remainder after the command token. For CmdUnknown, Arg holds
// the whole message.
type Command struct {
	Kind CommandKind
	Arg  string
}

// ParseCommand splits off the first whitespace-delimited token
// (case-sensitive, /-prefixed) and maps it to a command.
func ParseCommand(text string) Command {
	text = strings.TrimSpace(text)
	name, arg := text, ""
	if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
		name, arg = text[:i], strings.TrimSpace(text[i+1:])
	}
	switch name {
	case "/start":
		return Command{CmdStart, arg}
	case "/link":
		return Command{CmdLink, arg}
	case "/register":
		return Command{CmdRegister, arg}
	case "/status":
		return Command{CmdStatus, arg}
	case "/referral":
		return Command{CmdReferral, arg}
	case "/help":
		return Command{CmdHelp, arg}
	default:
		return Command{CmdUnknown, text}
	}
}
