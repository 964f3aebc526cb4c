package operation

// Type identifies a logical text operation requested by a caller.
type Type string

const (
	TypeSummarize      Type = "summarize"
	TypeTranslate      Type = "translate"
	TypeGenerateResume Type = "generate-resume"
	TypeGenerateStudy  Type = "generate-study"
	TypeGenerateQuiz   Type = "generate-quiz"
	TypeEnhanceText    Type = "enhance-text"
	TypeChat           Type = "chat"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeSummarize, TypeTranslate, TypeGenerateResume, TypeGenerateStudy,
		TypeGenerateQuiz, TypeEnhanceText, TypeChat:
		return true
	default:
		return false
	}
}

// StyleRewrite selects the rewrite-oriented enhancement template.
const StyleRewrite = "rewrite"

// ChatTurn is one prior turn of a chat conversation.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Payload is the canonical, normalized input for one operation. Which fields
// are meaningful depends on the operation type; ambiguous wire shapes are
// resolved into this form before any further processing.
type Payload struct {
	Text           string
	TargetLanguage string
	Style          string
	Data           map[string]any
	Message        string
	// History is accepted for chat operations but not yet folded into the
	// outgoing prompt; conversations are single-turn from the provider's
	// point of view.
	History []ChatTurn
}

// Request represents one logical operation to dispatch.
type Request struct {
	Type    Type
	Payload Payload
}

// Result is the normalized successful provider outcome.
type Result struct {
	Output string `json:"output"`
}

// Endpoint is a provider API path.
type Endpoint string

const (
	EndpointSummarization Endpoint = "/summarization"
	EndpointTranslation   Endpoint = "/neural-machine-translation"
	EndpointTextGenerator Endpoint = "/text-generator"
)

// Params are generation parameters attached to a provider request. Zero
// values mean the provider default applies.
type Params struct {
	MaxLength      int
	Temperature    float64
	TargetLanguage string
}

// ProviderRequest is a fully built downstream request. It is consumed once by
// the provider client and is never retried or cached.
type ProviderRequest struct {
	Endpoint Endpoint
	Prompt   string
	Params   Params
}

// EnhancePayloadFromData extracts the canonical enhance-text payload from the
// loosely shaped tools payload, where "text" may arrive either as a bare
// string or as an object wrapping another "text" field.
func EnhancePayloadFromData(data map[string]any) Payload {
	p := Payload{}
	switch v := data["text"].(type) {
	case string:
		p.Text = v
	case map[string]any:
		if s, ok := v["text"].(string); ok {
			p.Text = s
		}
	}
	if style, ok := data["style"].(string); ok {
		p.Style = style
	}
	return p
}
