// Package signature composes the footer appended to outgoing email.
//
// Broadcast messages are never signed here: the broadcast provider manages
// its own per-account signature. Transactional messages get a footer whose
// richness depends on the calling app: the house app receives the full
// branded block, every other caller an unsubscribe-only footer.
package signature

import (
	"fmt"
	"strings"

	"github.com/shamanic-technologies/email-sending-service/internal/model"
)

// BrandPlaceholder is substituted for the attribution link target when no
// brand URL is available, so the omission stays detectable downstream
// instead of silently producing a broken link.
const BrandPlaceholder = "{{BRAND_URL}}"

const unsubscribeFooter = `<p style="font-size:12px;color:#888888;margin-top:24px;">` +
	`If you no longer wish to receive these emails, you can ` +
	`<a href="{{{ pm:unsubscribe }}}" style="color:#888888;">unsubscribe</a>.</p>`

// Composer builds outgoing footers. HouseApp is the distinguished caller
// that receives the full branded signature block.
type Composer struct {
	HouseApp string
}

// Compose returns the footer markup for a message on the given channel sent
// by the given app. The result is empty for the broadcast channel.
func (c Composer) Compose(channel model.Channel, appID, brandURL string) string {
	if channel != model.ChannelTransactional {
		return ""
	}

	if appID != c.HouseApp || c.HouseApp == "" {
		return unsubscribeFooter
	}

	href := brandURL
	if strings.TrimSpace(href) == "" {
		href = BrandPlaceholder
	}

	return fmt.Sprintf(`<table role="presentation" style="margin-top:32px;border-top:1px solid #eeeeee;width:100%%;">`+
		`<tr><td style="padding-top:16px;font-size:12px;color:#888888;">`+
		`Sent via <a href="%s" style="color:#556cd6;">our platform</a>`+
		`</td></tr></table>`, href) + unsubscribeFooter
}

// AppendFooter appends the composed footer to an HTML body. An absent body
// is returned unchanged so a text-only message never grows a footer.
func (c Composer) AppendFooter(body string, channel model.Channel, appID, brandURL string) string {
	if body == "" {
		return body
	}
	footer := c.Compose(channel, appID, brandURL)
	if footer == "" {
		return body
	}
	return body + "\n" + footer
}
