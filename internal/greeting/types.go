package greeting

// Length selects roughly how long the generated greeting should be.
type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

// Request describes the greeting to generate.
type Request struct {
	Occasion      string `json:"occasion"`      // e.g. "birthday"
	OccasionName  string `json:"occasion_name"` // e.g. "Ana's Birthday"
	RecipientName string `json:"recipient_name"`
	Tone          string `json:"tone,omitempty"` // e.g. "warm", "funny", "formal"
	ExtraDetails  string `json:"extra_details,omitempty"`
	Length        Length `json:"length,omitempty"`
}

// Response carries the generated text and token accounting.
type Response struct {
	Text  string `json:"text"`
	Usage Usage  `json:"usage"`
}

type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}
