package yookassa

import (
	"time"

	"github.com/tidwall/gjson"
)

// notification wraps one stored webhook payload together with its arrival
// time. Read-only after ingestion; a new SetResponse replaces the whole
// value.
type notification struct {
	raw        []byte
	receivedAt time.Time
}

func newNotification(body []byte) notification {
	raw := make([]byte, len(body))
	copy(raw, body)
	return notification{raw: raw, receivedAt: time.Now()}
}

// param reads a dotted-path field from the payment object of the
// notification envelope. A missing field (or an empty notification) yields
// def; reads never fail.
func (n notification) param(path, def string) string {
	if len(n.raw) == 0 {
		return def
	}
	v := gjson.GetBytes(n.raw, "object."+path)
	if !v.Exists() {
		return def
	}
	return v.String()
}
