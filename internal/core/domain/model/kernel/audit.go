package kernel

import (
	"strings"
	"time"
)

// DefaultAuditUser is recorded when a mutation carries no explicit user.
const DefaultAuditUser = "System"

// Audit records who touched an aggregate last and when.
type Audit struct {
	updatedBy string
	updatedAt time.Time
}

// NewAudit stamps user and timestamp. An empty user falls back to DefaultAuditUser and a
// zero timestamp to the current UTC time.
func NewAudit(user string, at time.Time) Audit {
	user = strings.TrimSpace(user)
	if user == "" {
		user = DefaultAuditUser
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}
	return Audit{updatedBy: user, updatedAt: at}
}

// UpdatedBy returns the user of the last mutation.
func (a Audit) UpdatedBy() string {
	return a.updatedBy
}

// UpdatedAt returns the time of the last mutation.
func (a Audit) UpdatedAt() time.Time {
	return a.updatedAt
}
