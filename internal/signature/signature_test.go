package signature

import (
	"strings"
	"testing"

	"github.com/shamanic-technologies/email-sending-service/internal/model"
)

func TestComposeBroadcastAlwaysEmpty(t *testing.T) {
	c := Composer{HouseApp: "house"}

	for _, appID := range []string{"house", "crm", ""} {
		if footer := c.Compose(model.ChannelBroadcast, appID, "https://brand.example.com"); footer != "" {
			t.Errorf("Compose(broadcast, %q) = %q, want empty", appID, footer)
		}
	}
}

func TestComposeNonHouseCallerGetsUnsubscribeOnly(t *testing.T) {
	c := Composer{HouseApp: "house"}

	footer := c.Compose(model.ChannelTransactional, "crm", "https://brand.example.com")
	if !strings.Contains(footer, "unsubscribe") {
		t.Errorf("footer missing unsubscribe control: %q", footer)
	}
	if strings.Contains(footer, "Sent via") {
		t.Errorf("non-house caller received the branded block: %q", footer)
	}
}

func TestComposeHouseCallerGetsBrandedBlock(t *testing.T) {
	c := Composer{HouseApp: "house"}

	footer := c.Compose(model.ChannelTransactional, "house", "https://brand.example.com")
	if !strings.Contains(footer, "Sent via") {
		t.Errorf("house caller missing branded block: %q", footer)
	}
	if !strings.Contains(footer, `href="https://brand.example.com"`) {
		t.Errorf("brand URL not substituted into the attribution link: %q", footer)
	}
	if !strings.Contains(footer, "unsubscribe") {
		t.Errorf("house footer missing unsubscribe control: %q", footer)
	}
}

func TestComposeMissingBrandURLUsesPlaceholder(t *testing.T) {
	c := Composer{HouseApp: "house"}

	for _, brandURL := range []string{"", "   "} {
		footer := c.Compose(model.ChannelTransactional, "house", brandURL)
		if !strings.Contains(footer, `href="`+BrandPlaceholder+`"`) {
			t.Errorf("Compose with brandURL=%q missing placeholder href: %q", brandURL, footer)
		}
		if strings.Contains(footer, `href=""`) {
			t.Errorf("Compose with brandURL=%q produced an empty href: %q", brandURL, footer)
		}
	}
}

func TestAppendFooter(t *testing.T) {
	c := Composer{HouseApp: "house"}

	t.Run("absent body stays absent", func(t *testing.T) {
		if got := c.AppendFooter("", model.ChannelTransactional, "crm", ""); got != "" {
			t.Errorf("AppendFooter(\"\") = %q, want empty", got)
		}
	})

	t.Run("broadcast body unchanged", func(t *testing.T) {
		body := "<p>Hi</p>"
		if got := c.AppendFooter(body, model.ChannelBroadcast, "house", ""); got != body {
			t.Errorf("broadcast body modified: %q", got)
		}
	})

	t.Run("transactional body grows footer", func(t *testing.T) {
		body := "<p>Hi</p>"
		got := c.AppendFooter(body, model.ChannelTransactional, "crm", "")
		if !strings.HasPrefix(got, body) {
			t.Errorf("footer must be appended, not prepended: %q", got)
		}
		if !strings.Contains(got, "unsubscribe") {
			t.Errorf("appended body missing footer: %q", got)
		}
	})
}
