package openapifx

type Config struct {
	Enabled bool
	// PublicHost and PublicPath override the host and base path advertised
	// in the document, for deployments behind a reverse proxy.
	PublicHost string
	PublicPath string
}
