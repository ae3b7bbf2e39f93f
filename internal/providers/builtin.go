package providers

import "github.com/mayaweb/udeploy/internal/platforms"

type factory func(b base, deps Deps) Adapter

// builtins maps catalog ids to adapter constructors.
//
//nolint:gochecknoglobals //static table
var builtins = map[string]factory{
	platforms.Vercel:          newVercel,
	platforms.Netlify:         newNetlify,
	platforms.CloudflarePages: newCloudflarePages,
	platforms.GitHubPages:     newGitHubPages,
	platforms.GitLabPages:     newGitLabPages,
	platforms.Firebase:        newFirebase,
	platforms.Surge:           newSurge,
	platforms.AWSS3:           newAWSS3,
	platforms.S3Compatible:    newS3Compatible,
	platforms.Heroku:          newHeroku,
	platforms.Neocities:       newNeocities,
	platforms.DenoDeploy:      newDenoDeploy,
}
