package ai

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is a single entry in a chat conversation sent to a model.
type Message struct {
	Role    Role
	Content string

	// ToolCalls carries the calls requested by an assistant message.
	// Only set on RoleAssistant messages.
	ToolCalls []ToolCall

	// ToolCallID and Name identify which call a RoleTool message answers.
	ToolCallID string
	Name       string
}

// ToolCall is a function invocation requested by the model.
type ToolCall struct {
	// ID correlates the call with its RoleTool response message.
	ID string

	// Name is the tool's function name.
	Name string

	// Arguments is the raw JSON argument payload produced by the model.
	Arguments string
}

// ToolDefinition describes a function the model may call.
type ToolDefinition struct {
	Name        string
	Description string

	// Parameters is a JSON Schema object describing the function arguments.
	Parameters map[string]any
}

// Completion is the model's response to a Complete call.
type Completion struct {
	Content   string
	ToolCalls []ToolCall
}

// CompleteOptions controls a single Complete call.
type CompleteOptions struct {
	// Temperature controls sampling randomness. Zero is deterministic.
	Temperature float64

	// JSONMode constrains the model to emit a JSON object.
	JSONMode bool

	// MaxTokens caps the response length. Zero means provider default.
	MaxTokens int

	// Tools are the functions the model may call during this completion.
	Tools []ToolDefinition
}
