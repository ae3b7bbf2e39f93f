package platforms

type PlatformResponse struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	APIBaseURL       string   `json:"apiBaseUrl"`
	AuthType         string   `json:"authType"         enums:"token,key,oauth"`
	SupportedFormats []string `json:"supportedFormats"`
	Features         []string `json:"features"`
	Pricing          string   `json:"pricing"          enums:"free,paid,freemium"`
	Credentials      []string `json:"credentials"`
}
