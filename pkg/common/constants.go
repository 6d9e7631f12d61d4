package common

import "time"

const (
	// MaxHistory bounds the number of messages retained per session.
	// Oldest entries are dropped first once the bound is exceeded.
	MaxHistory = 20

	DefaultMaxPrompts  = 4000
	DefaultQuotaWindow = 7 * 24 * time.Hour

	DefaultSystemPrompt = "You are a helpful assistant answering questions for visitors of a personal website. Keep answers concise."
)
