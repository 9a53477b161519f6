package models

const NotificationType = "result"

// Notification is the payload pushed for one lottery draw.
type Notification struct {
	Key     NotificationKey
	Lottery string
	Date    string
	Time    string
	Numbers string
	Source  string
}

// Data renders the notification as the flat string map push transports expect.
func (n *Notification) Data() map[string]string {
	return map[string]string{
		"type":    NotificationType,
		"lottery": n.Lottery,
		"date":    n.Date,
		"time":    n.Time,
		"numbers": n.Numbers,
		"source":  n.Source,
	}
}

// CollapseKey lets the transport replace a pending message for the same topic and day.
func (n *Notification) CollapseKey(topic string) string {
	return topic + "_" + n.Date
}
