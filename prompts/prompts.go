package prompts

import (
	"bytes"
	"embed"
	"text/template"
)

//go:embed templates/*
var templatesFS embed.FS

// RenderAnswerPrompt renders the answer-generation prompt using embedded Go templates
func RenderAnswerPrompt(question, context, transcript string) (systemPrompt, userPrompt string, err error) {
	// Load and parse system prompt template from embedded file
	systemTemplateContent, err := templatesFS.ReadFile("templates/answer_system.md")
	if err != nil {
		return "", "", err
	}

	systemTmpl, err := template.New("answer_system").Parse(string(systemTemplateContent))
	if err != nil {
		return "", "", err
	}

	data := struct {
		Question   string
		Context    string
		Transcript string
	}{
		Question:   question,
		Context:    context,
		Transcript: transcript,
	}

	var systemBuf bytes.Buffer
	if err := systemTmpl.Execute(&systemBuf, data); err != nil {
		return "", "", err
	}

	// Load and parse user prompt template from embedded file
	userTemplateContent, err := templatesFS.ReadFile("templates/answer_user.md")
	if err != nil {
		return "", "", err
	}

	userTmpl, err := template.New("answer_user").Parse(string(userTemplateContent))
	if err != nil {
		return "", "", err
	}

	var userBuf bytes.Buffer
	if err := userTmpl.Execute(&userBuf, data); err != nil {
		return "", "", err
	}

	return systemBuf.String(), userBuf.String(), nil
}
