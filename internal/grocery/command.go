package grocery

import (
	"time"

	"github.com/mmynk/groceries/internal/storage"
)

// NoticeDuration is how long a transient notice stays on screen.
const NoticeDuration = 3 * time.Second

// CommandKind identifies a side effect requested by the engine.
type CommandKind string

const (
	// CommandPersist asks the caller to save Document.
	CommandPersist CommandKind = "persist"

	// CommandNotify asks the caller to show Message for Duration.
	CommandNotify CommandKind = "notify"
)

// Command is a side effect the engine hands back instead of performing it.
type Command struct {
	Kind     CommandKind      `json:"kind"`
	Document storage.Document `json:"document,omitempty"`
	Message  string           `json:"message,omitempty"`
	Duration time.Duration    `json:"duration,omitempty"`
}

func persist(doc storage.Document) Command {
	return Command{Kind: CommandPersist, Document: doc}
}

func notify(message string) Command {
	return Command{Kind: CommandNotify, Message: message, Duration: NoticeDuration}
}
