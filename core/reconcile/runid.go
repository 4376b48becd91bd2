package reconcile

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewRunID returns an identifier unique to one invocation.
// The timestamp format is YYYYMMDDHHMMSS followed by milliseconds; the uuid
// format is a dashless UUID so it stays usable inside dataset names.
func NewRunID(format string, now time.Time) string {
	if format == RunIDUUID {
		return strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	return now.Format("20060102150405") + fmt.Sprintf("%03d", now.Nanosecond()/int(time.Millisecond))
}
