package greeting

import (
	"fmt"
	"strings"
)

// systemPrompt keeps both providers on the same behavior: plain greeting
// text only, no meta commentary.
const systemPrompt = "You write short personal greeting messages. " +
	"Output only the greeting text itself: no preamble, no explanation, " +
	"no quotation marks around the message, no sign-off placeholders."

func lengthHint(l Length) string {
	switch l {
	case LengthShort:
		return "one or two sentences"
	case LengthLong:
		return "two short paragraphs"
	default:
		return "three to five sentences"
	}
}

// buildPrompt renders a Request into the user prompt sent to either
// provider, so DeepSeek and Ollama behave identically.
func buildPrompt(req Request) string {
	var b strings.Builder

	occasion := req.Occasion
	if req.OccasionName != "" {
		occasion = fmt.Sprintf("%s (%q)", occasion, req.OccasionName)
	}
	fmt.Fprintf(&b, "Write a greeting for %s for the occasion: %s.\n", req.RecipientName, occasion)

	tone := req.Tone
	if tone == "" {
		tone = "warm"
	}
	fmt.Fprintf(&b, "Tone: %s. Length: %s.\n", tone, lengthHint(req.Length))

	if req.ExtraDetails != "" {
		fmt.Fprintf(&b, "Work in these details naturally: %s\n", req.ExtraDetails)
	}

	return b.String()
}
