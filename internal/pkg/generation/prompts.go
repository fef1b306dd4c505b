package generation

import "fmt"

const (
	// DefaultRewriteMode is used when the caller supplies no or an
	// unknown rewrite mode.
	DefaultRewriteMode = "default"
	// DefaultReplyTone is used when the caller supplies no or an unknown
	// reply tone.
	DefaultReplyTone = "professional"
)

var rewritePrompts = map[string]string{
	"default": "You are a humanizer tool. Given a sentence, generate 3 to 5 alternative ways to phrase it, " +
		"making them sound natural and human. Only output the alternatives as a numbered list, no explanations. " +
		"At the end, always read it again, and hopefully it makes logical sense and reads like it was written by a human. " +
		"Sentence: %s",
	"empathy": "Rewrite the following message in a warm, understanding tone. Acknowledge any emotions the reader might feel " +
		"(e.g., frustration, confusion, concern), and reassure them that they're being heard and supported. " +
		"Aim to show that a real person is behind the message. Generate 3 to 5 alternatives as a numbered list, no explanations. " +
		"Speak as if you're addressing someone going through something difficult. " +
		"Offer kindness, honesty, and clarity without sounding robotic or overly formal. Avoid sugarcoating but be deeply respectful. " +
		"Message: %s",
	"professional": "Rephrase the message to sound constructive, supportive, and professional. Keep the original meaning but shift the tone " +
		"to encourage growth, collaboration, or continued effort. Assume the reader is trying their best and deserves dignity. " +
		"Generate 3 to 5 alternatives as a numbered list, no explanations. " +
		"Message: %s",
	"storytelling": "Turn this factual explanation into a short, relatable story that even a 12-year-old could enjoy. " +
		"Use metaphor, analogy, or a mini-narrative to explain the concept in a fun and memorable way. " +
		"Generate 3 to 5 alternatives as a numbered list, no explanations. " +
		"Message: %s",
}

var replyToneInstructions = map[string]string{
	"professional": "Write in a polished, business-appropriate voice. Courteous, clear, and to the point.",
	"friendly":     "Write in a warm, approachable voice, as if replying to a colleague you know well.",
	"formal":       "Write in a strictly formal register with complete sentences and no contractions.",
	"concise":      "Keep the reply as short as possible while still addressing every point raised.",
}

// RewritePrompt builds the prompt for a rewrite request. Unknown modes
// fall back to the default humanizer prompt.
func RewritePrompt(mode, message string) string {
	tmpl, ok := rewritePrompts[mode]
	if !ok {
		tmpl = rewritePrompts[DefaultRewriteMode]
	}
	return fmt.Sprintf(tmpl, message)
}

// ReplyPrompt builds the prompt for an email-reply request. Unknown tones
// fall back to the professional tone.
func ReplyPrompt(tone, subject, message string) string {
	instruction, ok := replyToneInstructions[tone]
	if !ok {
		instruction = replyToneInstructions[DefaultReplyTone]
	}

	prompt := "You are drafting a reply to the email below on behalf of the user. " + instruction +
		" Output only the reply body, ready to send, with no preamble or explanations."
	if subject != "" {
		prompt += "\n\nSubject: " + subject
	}
	prompt += "\n\nEmail:\n" + message
	return prompt
}

// IsKnownRewriteMode reports whether mode has its own prompt.
func IsKnownRewriteMode(mode string) bool {
	_, ok := rewritePrompts[mode]
	return ok
}

// IsKnownReplyTone reports whether tone has its own instruction.
func IsKnownReplyTone(tone string) bool {
	_, ok := replyToneInstructions[tone]
	return ok
}
