package cmd

import (
	"fmt"
	"strings"

	"github.com/dukex/operion-runner/pkg/persistence"
	"github.com/dukex/operion-runner/pkg/persistence/file"
)

var supportedPersistenceProviders = []string{"file"}

// NewPersistence creates the persistence layer for a database URL. Only file:// is supported;
// a URL without a scheme is treated as a directory.
func NewPersistence(databaseURL string) (persistence.Persistence, error) {
	switch provider := parsePersistenceProvider(databaseURL); provider {
	case "file":
		return file.NewPersistence(databaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported persistence provider %q (supported: %s)",
			provider, strings.Join(supportedPersistenceProviders, ", "))
	}
}

func parsePersistenceProvider(databaseURL string) string {
	parts := strings.SplitN(databaseURL, "://", 2)
	if len(parts) == 1 {
		return "file"
	}

	return parts[0]
}
