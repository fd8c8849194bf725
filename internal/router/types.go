package router

// Role identifies the speaker of a prompt message or the audience of content.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ToolDescriptor describes one callable tool. Schemas are JSON Schema documents kept as text.
type ToolDescriptor struct {
	Name         string
	Description  string
	InputSchema  string
	OutputSchema string // empty when the tool declares no output schema
}

// ToolsCapability advertises the tool catalog.
type ToolsCapability struct {
	ListChanged bool
}

// ResourcesCapability advertises the resource catalog.
type ResourcesCapability struct {
	Subscribe   bool
	ListChanged bool
}

// PromptsCapability advertises the prompt catalog.
type PromptsCapability struct {
	ListChanged bool
}

// Capabilities lists which catalogs the router advertises. A nil field is not advertised.
type Capabilities struct {
	Tools     *ToolsCapability
	Resources *ResourcesCapability
	Prompts   *PromptsCapability
}

// Annotations qualify a piece of content for its consumer.
type Annotations struct {
	Audience  []Role
	Priority  float64
	Timestamp string
}

// TextContent is the only content kind the router produces.
type TextContent struct {
	Text        string
	Annotations *Annotations
}

// ToolResult is returned once per invocation. IsError is always set by the router.
type ToolResult struct {
	Content []TextContent
	IsError *bool
}

// Failed reports whether the result carries the soft error flag.
func (r *ToolResult) Failed() bool {
	return r != nil && r.IsError != nil && *r.IsError
}

// Text joins the text of every content item.
func (r *ToolResult) Text() string {
	if r == nil {
		return ""
	}
	var s string
	for _, c := range r.Content {
		s += c.Text
	}
	return s
}

// ResourceDescriptor is one entry of the resource catalog.
type ResourceDescriptor struct {
	URI         string
	Name        string
	Description string
	MIMEType    string
}

// ResourceContents is the text payload of a read resource.
type ResourceContents struct {
	URI      string
	MIMEType string
	Text     string
}

// ReadResourceResult is returned by ReadResource.
type ReadResourceResult struct {
	Contents []ResourceContents
}

// PromptArgument describes one parameter of a prompt template.
type PromptArgument struct {
	Name        string
	Description string
	Required    bool
}

// PromptDescriptor is one entry of the prompt catalog.
type PromptDescriptor struct {
	Name        string
	Description string
	Arguments   []PromptArgument
}

// PromptMessage is one message of a rendered prompt.
type PromptMessage struct {
	Role    Role
	Content TextContent
}

// GetPromptResult is returned by GetPrompt.
type GetPromptResult struct {
	Description string
	Messages    []PromptMessage
}

// SecretDescription declares a secret the router needs from its host.
type SecretDescription struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

func textResult(text string, isError bool) *ToolResult {
	return &ToolResult{
		Content: []TextContent{{Text: text}},
		IsError: &isError,
	}
}
