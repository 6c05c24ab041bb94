package events

import (
	"warranty-console/internal/dto"
)

const ConsoleActionName = "console.action"

// ConsoleActionEvent is published after an admin action succeeded
// upstream, and after every export.
type ConsoleActionEvent struct {
	Actor      dto.Principal
	Action     string
	TargetType string
	TargetID   string
	TargetName string
	Details    map[string]interface{}
}

func (e ConsoleActionEvent) Name() string {
	return ConsoleActionName
}
