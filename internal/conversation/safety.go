package conversation

import "strings"

var crisisKeywords = []string{
	"suicide",
	"kill myself",
	"end my life",
	"don't want to live",
	"hurt myself",
	"self harm",
	"cut myself",
	"harm myself",
}

// CrisisResponse is returned in place of a generated reply when a message mentions self harm.
var CrisisResponse = strings.Join([]string{
	"I'm concerned about what you've shared. If you're thinking about harming yourself, please reach out to a mental health professional or crisis hotline immediately.",
	"If you're in the US, you can call the National Suicide Prevention Lifeline at 988 or 1-800-273-8255, available 24 hours every day.",
	"Remember that you're not alone, and help is available.",
}, "\n\n")

const emptyReplyResponse = "I'm having trouble generating a response."

// CheckMessage reports whether message is safe to pass to the provider. When it is not,
// the second value is the reply to send instead.
func CheckMessage(message string) (bool, string) {
	lower := strings.ToLower(message)
	for _, keyword := range crisisKeywords {
		if strings.Contains(lower, keyword) {
			return false, CrisisResponse
		}
	}
	return true, ""
}

// CheckResponse screens a generated reply. Replies currently pass through unchanged
// unless they are empty.
func CheckResponse(reply, userMessage string) (string, bool) {
	if strings.TrimSpace(reply) == "" {
		return emptyReplyResponse, false
	}
	return reply, true
}
