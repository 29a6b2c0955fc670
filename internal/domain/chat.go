package domain

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one entry of the append-only conversation log.
type ChatMessage struct {
	Role ChatRole
	Text string
}
