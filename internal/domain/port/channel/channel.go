package channel

import (
	"context"

	"github.com/Cracken-1/pandamart-notifications/internal/domain"
)

// Message is one rendered payload bound to one destination. Only the fields a
// given channel needs are populated: email uses Subject/HTML/Text, SMS uses
// Text, push uses Title/Body/Data, and in-app carries the full Request.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
	Title   string
	Body    string
	Data    map[string]string
	Request domain.NotificationRequest
}

// Sender is the contract every delivery channel implements. Provider errors
// stay behind this boundary: the dispatcher converts them to a false result
// and never sees provider detail beyond the returned error.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
