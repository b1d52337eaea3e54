// Package calendar builds coffee-chat invitations for matched members.
package calendar

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/okian/matchmaker/internal/domain/model"
)

// googleCalendarURL is the Google Calendar event template endpoint.
const googleCalendarURL = "https://calendar.google.com/calendar/render"

// CoffeeChatLink returns a Google Calendar template link for a coffee chat
// between a prospective member and a roster member. A blank PNM name is
// shown as model.DefaultQueryName.
func CoffeeChatLink(pnmName, memberName string) string {
	if strings.TrimSpace(pnmName) == "" {
		pnmName = model.DefaultQueryName
	}

	title := fmt.Sprintf("Coffee Chat: %s & %s", pnmName, memberName)
	details := fmt.Sprintf("Coffee chat between %s (PNM) and %s (Brother).", pnmName, memberName)

	return googleCalendarURL +
		"?action=TEMPLATE" +
		"&text=" + escape(title) +
		"&details=" + escape(details)
}

// escape query-escapes s with spaces as %20. QueryEscape already turns a
// literal "+" into %2B, so every remaining "+" is a space.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
