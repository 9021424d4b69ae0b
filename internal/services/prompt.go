package services

import (
	"strings"

	"github.com/dmitrijs2005/cyberdoom/internal/models"
)

// builderInstruction steers the generation service toward a single-file
// artifact wrapped in one html fence, which is what the splitter extracts.
const builderInstruction = `You are the CyberDoom application builder agent.
You build and modify complete single-file web applications: one HTML document
containing all markup, CSS and JavaScript.

Rules:
1. Always answer with a short explanation followed by exactly one fenced code
   block opened with ` + "```html" + ` and closed with ` + "```" + `, containing the
   COMPLETE application document. Never output partial snippets.
2. When the user asks to change an existing application, apply the change to
   the current code you were given and return the whole updated document.
3. Keep the explanation under 100 words.`

// backendKeywords flag a prompt as requesting backend functionality, which
// pulls the raw backend configuration into the system prompt.
var backendKeywords = []string{"backend", "firebase", "database", "server", "login", "signup", "auth"}

func wantsBackendCode(prompt string) bool {
	lower := strings.ToLower(prompt)
	for _, kw := range backendKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// builderSystemInstruction assembles the system prompt for one generation.
// The raw backend configuration blob from AppConfig is injected verbatim
// when the prompt requests backend code.
func builderSystemInstruction(appCfg models.AppConfig, prompt string) string {
	instruction := builderInstruction
	if appCfg.FirebaseConfigRaw != "" && wantsBackendCode(prompt) {
		instruction += "\n\nWhen backend functionality is required, wire it against this Firebase configuration, verbatim:\n" + appCfg.FirebaseConfigRaw
	}
	return instruction
}

// builderPrompt pairs the user request with the current artifact so the
// model can modify it in place.
func builderPrompt(project *models.Project, request string) string {
	var b strings.Builder
	b.WriteString("Current application code:\n```html\n")
	b.WriteString(project.HTML)
	b.WriteString("\n```\n\nRequest: ")
	b.WriteString(request)
	return b.String()
}
