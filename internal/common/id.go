package common

import (
	"fmt"

	"github.com/google/uuid"
)

// NewJobID generates a unique job id for one-off triggers so that concurrent
// manual refreshes never collide with the recurring job of the same action.
// Format: <action>_<uuid>
func NewJobID(action string) string {
	return fmt.Sprintf("%s_%s", action, uuid.New().String())
}
