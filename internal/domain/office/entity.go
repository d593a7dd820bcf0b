package office

import "time"

// Office is a physical location inside one tenant. The engine only reads it
// to label summaries and resolve device mappings.
type Office struct {
	ID        string
	TenantID  string
	Label     string
	CreatedAt time.Time
}
