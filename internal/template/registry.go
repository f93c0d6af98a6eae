package template

import (
	"strings"

	"github.com/Cracken-1/pandamart-notifications/internal/domain"
)

// Set holds the channel-specific content skeletons for one category.
// Placeholders use {{key}} tokens substituted from the request data.
type Set struct {
	EmailSubject string
	EmailHTML    string
	EmailText    string
	SMSText      string
}

var sets = map[domain.Category]Set{
	domain.CategoryOrder: {
		EmailSubject: "Order {{orderNumber}}: {{title}}",
		EmailHTML: `<div style="font-family:sans-serif;max-width:600px;margin:0 auto">
<h2 style="color:#e53935">Panda Mart</h2>
<h3>{{title}}</h3>
<p>{{body}}</p>
<p>Order number: <strong>{{orderNumber}}</strong></p>
<p><a href="{{actionUrl}}" style="background:#e53935;color:#fff;padding:10px 20px;border-radius:4px;text-decoration:none">Track your order</a></p>
</div>`,
		EmailText: "{{title}}\n\n{{body}}\n\nOrder number: {{orderNumber}}\nTrack your order: {{actionUrl}}",
		SMSText:   "Panda Mart: {{body}} Order {{orderNumber}}.",
	},
	domain.CategoryPayment: {
		EmailSubject: "Payment received: {{title}}",
		EmailHTML: `<div style="font-family:sans-serif;max-width:600px;margin:0 auto">
<h2 style="color:#e53935">Panda Mart</h2>
<h3>{{title}}</h3>
<p>{{body}}</p>
<p>Amount: <strong>KES {{amount}}</strong></p>
<p>Order number: {{orderNumber}}</p>
</div>`,
		EmailText: "{{title}}\n\n{{body}}\n\nAmount: KES {{amount}}\nOrder number: {{orderNumber}}",
		SMSText:   "Panda Mart: {{body}} KES {{amount}} for order {{orderNumber}}.",
	},
	domain.CategoryLoyalty: {
		EmailSubject: "Panda Points update: {{title}}",
		EmailHTML: `<div style="font-family:sans-serif;max-width:600px;margin:0 auto">
<h2 style="color:#e53935">Panda Mart</h2>
<h3>{{title}}</h3>
<p>{{body}}</p>
<p>Points: <strong>{{points}}</strong> &middot; Balance: {{balance}} &middot; Tier: {{tier}}</p>
</div>`,
		EmailText: "{{title}}\n\n{{body}}\n\nPoints: {{points}} | Balance: {{balance}} | Tier: {{tier}}",
		SMSText:   "Panda Mart: {{body}} Balance: {{balance}} points.",
	},
	domain.CategorySecurity: {
		EmailSubject: "Security alert: {{title}}",
		EmailHTML: `<div style="font-family:sans-serif;max-width:600px;margin:0 auto">
<h2 style="color:#e53935">Panda Mart</h2>
<h3 style="color:#b71c1c">{{title}}</h3>
<p>{{body}}</p>
<p>If this was not you, secure your account immediately.</p>
<p><a href="{{actionUrl}}" style="background:#b71c1c;color:#fff;padding:10px 20px;border-radius:4px;text-decoration:none">Review account activity</a></p>
</div>`,
		EmailText: "SECURITY ALERT: {{title}}\n\n{{body}}\n\nIf this was not you, secure your account immediately: {{actionUrl}}",
		SMSText:   "Panda Mart security alert: {{body}} If this was not you, secure your account now.",
	},
	domain.CategoryPromotion: {
		EmailSubject: "{{title}}",
		EmailHTML: `<div style="font-family:sans-serif;max-width:600px;margin:0 auto">
<h2 style="color:#e53935">Panda Mart</h2>
<h3>{{title}}</h3>
<p>{{body}}</p>
<p><a href="{{actionUrl}}" style="background:#e53935;color:#fff;padding:10px 20px;border-radius:4px;text-decoration:none">Shop now</a></p>
</div>`,
		EmailText: "{{title}}\n\n{{body}}\n\nShop now: {{actionUrl}}",
		SMSText:   "Panda Mart: {{body}}",
	},
	domain.CategorySystem: {
		EmailSubject: "{{title}}",
		EmailHTML: `<div style="font-family:sans-serif;max-width:600px;margin:0 auto">
<h2 style="color:#e53935">Panda Mart</h2>
<h3>{{title}}</h3>
<p>{{body}}</p>
</div>`,
		EmailText: "{{title}}\n\n{{body}}",
		SMSText:   "Panda Mart: {{body}}",
	},
	domain.CategoryCommunity: {
		EmailSubject: "Community: {{title}}",
		EmailHTML: `<div style="font-family:sans-serif;max-width:600px;margin:0 auto">
<h2 style="color:#e53935">Panda Mart</h2>
<h3>{{title}}</h3>
<p>{{body}}</p>
<p><a href="{{actionUrl}}">View in the community hub</a></p>
</div>`,
		EmailText: "{{title}}\n\n{{body}}\n\n{{actionUrl}}",
		SMSText:   "Panda Mart: {{body}}",
	},
}

// Resolve returns the template set for a category. Unknown categories fall
// back to the system set so every notification stays deliverable, if in
// degraded form.
func Resolve(category domain.Category) Set {
	if s, ok := sets[category]; ok {
		return s
	}
	return sets[domain.CategorySystem]
}

// Render substitutes every {{key}} occurrence with data[key]. Placeholders
// with no matching key are left verbatim so a missing field degrades the
// content instead of blocking delivery.
func Render(text string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(text, "{{") {
		return text
	}
	for key, value := range data {
		text = strings.ReplaceAll(text, "{{"+key+"}}", value)
	}
	return text
}
