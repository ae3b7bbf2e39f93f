package git

import "time"

type Config struct {
	Timeout     time.Duration
	AuthorName  string
	AuthorEmail string
}

func DefaultConfig() Config {
	return Config{
		Timeout:     5 * time.Minute,
		AuthorName:  "udeploy",
		AuthorEmail: "deploy@udeploy.local",
	}
}
