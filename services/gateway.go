package services

import (
	"fmt"
	"os"
	"sync"

	"github.com/ABHISHEKSUNDARAMOORTHI/Data-Lineage-Mapper/pkg/lineage"
)

var defaultGateway = sync.OnceValues(func() (lineage.Gateway, error) {
	if os.Getenv("LINEAGE_PROVIDER") == "openai" {
		return DefaultOpenAIGateway()
	}
	return DefaultGeminiGateway()
})

// DefaultGateway returns the process-wide model gateway, selected by
// LINEAGE_PROVIDER (gemini by default). Initialization happens on first use
// and its failure is surfaced to every caller.
func DefaultGateway() (lineage.Gateway, error) {
	return defaultGateway()
}

// CheckCredentials verifies at startup that the selected provider has a
// usable credential. It does not open a connection; a missing or placeholder
// key is a fatal configuration error.
func CheckCredentials() error {
	if os.Getenv("LINEAGE_PROVIDER") == "openai" {
		if os.Getenv("OPENAI_API_KEY") == "" {
			return fmt.Errorf("OPENAI_API_KEY is not set; AI features will not work")
		}
		return nil
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" || apiKey == geminiKeyPlaceholder {
		return fmt.Errorf("GEMINI_API_KEY not found or is the placeholder value; " +
			"set it in a .env file in your project root (GEMINI_API_KEY=\"YOUR_API_KEY\") or as an environment variable")
	}
	return nil
}
