package i18n_test

import (
	"testing"

	"github.com/dukex/operion-runner/pkg/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter_Format(t *testing.T) {
	tests := []struct {
		locale   string
		language string
		want     string
	}{
		{locale: "", language: "en", want: "No active connection to the server"},
		{locale: "en-US", language: "en", want: "No active connection to the server"},
		{locale: "de", language: "de", want: "Keine aktive Verbindung zum Server"},
		{locale: "pt-BR", language: "en", want: "No active connection to the server"},
		{locale: "not a locale", language: "en", want: "No active connection to the server"},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			formatter, err := i18n.New(tt.locale)
			require.NoError(t, err)

			assert.Equal(t, tt.language, formatter.Language())
			assert.Equal(t, tt.want, formatter.Format(i18n.KeyNoActiveConnection))
		})
	}
}

func TestFormatter_FormatWithArgs(t *testing.T) {
	formatter, err := i18n.New("en")
	require.NoError(t, err)

	msg := formatter.Format(i18n.KeyActiveWebhookMessage, "Webhook", "trigger:webhook")

	assert.Equal(t, `Deactivate the workflow to test the "Webhook" trigger (trigger:webhook): it is already listening for calls`, msg)
}
