package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/mozhnovpn/portal/internal/services"
)

const helpText = "<b>MozhnoVPN bot:</b>\n" +
	"/start — get started\n" +
	"/link CODE — link your site account\n" +
	"/register email password — sign up\n" +
	"/status — subscription status\n" +
	"/referral — referral links\n" +
	"/help — this list"

const welcomeText = "👋 Welcome to MozhnoVPN!\n\n" +
	"<b>Link your site account:</b>\n/link YOUR_CODE\n(get the code in your profile dashboard)\n\n" +
	"<b>Or sign up right here:</b>\n/register email@example.com your_password\n\n" +
	"<b>Help:</b> /help"

const referralWelcomeText = "🎉 You arrived via a referral link!\n\n" +
	"To sign up right here, send:\n/register email@example.com your_password\n\n" +
	"Or link an existing site account:\n/link YOUR_CODE"

func (d *Dispatcher) handleStart(chat int64, ident services.TelegramIdentity, payload string) {
	// already bound: short-circuit before any other /start branch
	if p, err := services.ProfileByTelegramID(ident.ID); err == nil {
		d.reply(chat, fmt.Sprintf("👋 Welcome back! Your account is already linked.\n\nYour referral code: <code>%s</code>", p.ReferralCode))
		return
	}
	if ref, ok := services.ParseReferralPayload(payload); ok {
		services.StorePendingReferral(ident.ID, ref)
		d.reply(chat, referralWelcomeText)
		return
	}
	d.reply(chat, welcomeText)
}

func (d *Dispatcher) handleLink(chat int64, ident services.TelegramIdentity, code string) {
	if strings.TrimSpace(code) == "" {
		d.reply(chat, "❌ Usage: /link YOUR_CODE\nGet the code in your profile dashboard on the site.")
		return
	}
	switch services.Bind(code, ident) {
	case services.Bound:
		d.reply(chat, "✅ Account linked!")
	case services.AlreadyLinkedSameAccount:
		d.reply(chat, "✅ This Telegram is already linked to that account.")
	case services.AlreadyLinkedToAnotherAccount:
		d.reply(chat, "⚠️ This Telegram is already linked to a different account.")
	case services.CodeInvalidOrExpired:
		d.reply(chat, "❌ Code invalid or expired. Get a new one in your profile dashboard.")
	default:
		d.reply(chat, "❌ Linking failed. Please try again later.")
	}
}

func (d *Dispatcher) handleRegister(chat int64, ident services.TelegramIdentity, args string) {
	parts := strings.Fields(args)
	if len(parts) != 2 {
		d.reply(chat, "❌ Usage: /register email@example.com your_password\nOr: /register +79991234567 your_password")
		return
	}
	identifier, password := parts[0], parts[1]

	res, refCode := services.RegisterViaChat(identifier, password, ident)
	switch res {
	case services.Provisioned:
		d.reply(chat, fmt.Sprintf("✅ Registration complete!\n\nSign in on the site with: %s\n\nYour referral code: <code>%s</code>", identifier, refCode))
	case services.ProvisionAlreadyLinked:
		d.reply(chat, "⚠️ This Telegram is already linked to an account.")
	case services.ProvisionIdentifierTaken:
		d.reply(chat, "⚠️ That email/phone is already registered. Use /link CODE instead.")
	case services.ProvisionInvalidIdentifier:
		d.reply(chat, "❌ That doesn't look like an email or phone number. Usage: /register email@example.com your_password")
	default:
		d.reply(chat, "❌ Registration failed. Please try again later.")
	}
}

func (d *Dispatcher) handleStatus(chat int64, ident services.TelegramIdentity) {
	p, err := services.ProfileByTelegramID(ident.ID)
	if err != nil {
		d.reply(chat, "❌ No account linked yet. Use /link or /register.")
		return
	}
	sub, err := services.CurrentSubscription(p.UserID)
	if err != nil {
		d.reply(chat, "📭 No active subscription.")
		return
	}
	status := "Active"
	if sub.Status == "trial" {
		status = "Trial"
	}
	days := services.DaysLeft(sub.EndDate, time.Now())
	d.reply(chat, fmt.Sprintf("📊 <b>Subscription:</b>\nTariff: %s\nStatus: %s\nDays left: %d", sub.Tariff.Name, status, days))
}

func (d *Dispatcher) handleReferral(chat int64, ident services.TelegramIdentity) {
	p, err := services.ProfileByTelegramID(ident.ID)
	if err != nil {
		d.reply(chat, "❌ No account linked yet. Use /link or /register.")
		return
	}
	site, botLink := services.ReferralLinks(d.siteURL, d.botUsername, p.ReferralCode)
	d.reply(chat, fmt.Sprintf("🔗 <b>Your referral links:</b>\n\n🌐 %s\n🤖 %s\n\n+3 days for every friend!", site, botLink))
}
