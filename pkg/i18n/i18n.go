// Package i18n formats the user-facing messages of the run gate in the editor's locale.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	KeyNoActiveConnection       = "workflowRun.noActiveConnectionToTheServer"
	KeyResolveOutstandingIssues = "workflowRun.showError.resolveOutstandingIssues"
	KeyRunErrorTitle            = "workflowRun.showError.title"
	KeyActiveWebhookTitle       = "workflowActivate.showMessage.activeWorkflowWebhook.title"
	KeyActiveWebhookMessage     = "workflowActivate.showMessage.activeWorkflowWebhook.message"
)

var messages = map[language.Tag]map[string]string{
	language.English: {
		KeyNoActiveConnection:       "No active connection to the server",
		KeyResolveOutstandingIssues: "Please resolve outstanding issues before running the workflow",
		KeyRunErrorTitle:            "Problem running workflow",
		KeyActiveWebhookTitle:       "Workflow is active",
		KeyActiveWebhookMessage:     "Deactivate the workflow to test the %q trigger (%s): it is already listening for calls",
	},
	language.German: {
		KeyNoActiveConnection:       "Keine aktive Verbindung zum Server",
		KeyResolveOutstandingIssues: "Bitte beheben Sie die offenen Probleme, bevor Sie den Workflow ausführen",
		KeyRunErrorTitle:            "Problem beim Ausführen des Workflows",
		KeyActiveWebhookTitle:       "Workflow ist aktiv",
		KeyActiveWebhookMessage:     "Deaktivieren Sie den Workflow, um den Trigger %q (%s) zu testen: er wartet bereits auf Aufrufe",
	},
}

var supported = []language.Tag{language.English, language.German}

// Formatter renders message keys for one locale.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Formatter for the closest supported match of locale. Unknown or empty
// locales fall back to English.
func New(locale string) (*Formatter, error) {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))

	for tag, entries := range messages {
		for key, msg := range entries {
			if err := builder.SetString(tag, key, msg); err != nil {
				return nil, err
			}
		}
	}

	tag := language.English

	if locale != "" {
		requested, err := language.Parse(locale)
		if err == nil {
			_, index, _ := language.NewMatcher(supported).Match(requested)
			tag = supported[index]
		}
	}

	return &Formatter{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(builder)),
	}, nil
}

// Language returns the locale the formatter renders in.
func (f *Formatter) Language() string {
	return f.tag.String()
}

// Format renders the message for key with args.
func (f *Formatter) Format(key string, args ...any) string {
	return f.printer.Sprintf(key, args...)
}
