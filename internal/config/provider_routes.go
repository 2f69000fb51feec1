package config

import (
	"fmt"
	"os"
	"strings"
)

// ProviderEndpoint represents a specific voice provider API endpoint
type ProviderEndpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// VoiceProviderRoutes contains the voice AI provider's endpoint table
type VoiceProviderRoutes struct {
	BaseURL     string                      `json:"base_url"`
	Description string                      `json:"description"`
	Endpoints   map[string]ProviderEndpoint `json:"endpoints"`
}

// GetVoiceProviderRoutes returns the voice provider endpoint configuration.
// The base URL can be overridden with VOICE_PROVIDER_BASE_URL for staging.
func GetVoiceProviderRoutes() *VoiceProviderRoutes {
	baseURL := os.Getenv("VOICE_PROVIDER_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.voice-provider.example.com"
	}

	return &VoiceProviderRoutes{
		BaseURL:     baseURL,
		Description: "Conversational voice AI provider",
		Endpoints: map[string]ProviderEndpoint{
			"place_call": {
				Method:      "POST",
				Path:        "/v1/calls",
				Description: "Place an outbound call with prompt and opening line",
			},
			"get_conversation": {
				Method:      "GET",
				Path:        "/v1/conversations/{conversation_id}",
				Description: "Fetch conversation status, duration and transcript",
			},
			"get_audio": {
				Method:      "GET",
				Path:        "/v1/conversations/{conversation_id}/audio",
				Description: "Fetch recorded audio for a conversation",
			},
		},
	}
}

// GetVoiceEndpointURL constructs the full URL for a provider endpoint,
// substituting the {conversation_id} placeholder when given.
func GetVoiceEndpointURL(endpointName, conversationID string) (string, error) {
	routes := GetVoiceProviderRoutes()

	endpoint, exists := routes.Endpoints[endpointName]
	if !exists {
		return "", fmt.Errorf("endpoint '%s' not found for voice provider", endpointName)
	}

	path := strings.Replace(endpoint.Path, "{conversation_id}", conversationID, 1)
	return routes.BaseURL + path, nil
}
