package osu

// Config is the constructor input for a Client. The values come from the
// central configuration; this package never reads the environment itself.
type Config struct {
	// ApiURL is the base URL of the osu! v2 API.
	ApiURL string
	// TokenURL is the OAuth token endpoint.
	TokenURL string
	// ClientID is the OAuth client id.
	ClientID string
	// ClientSecret is the OAuth client secret.
	ClientSecret string
	// RequestIntervalMs is the minimum time between request dispatches
	// in milliseconds.
	RequestIntervalMs int
}
