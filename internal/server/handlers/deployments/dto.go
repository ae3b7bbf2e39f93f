package deployments

import (
	"time"

	"github.com/google/uuid"
)

// ProjectRequest is the platform-independent part of a deployment request.
type ProjectRequest struct {
	ProjectID string `json:"projectId" validate:"required,max=128,printascii"`

	// An empty string skips the build; omit it to use the server default.
	BuildCommand         *string           `json:"buildCommand,omitempty"`
	OutputDirectory      string            `json:"outputDirectory,omitempty"      validate:"omitempty,max=1024"`
	EnvironmentVariables map[string]string `json:"environmentVariables,omitempty"`

	CustomDomain string `json:"customDomain,omitempty" validate:"omitempty,fqdn"`
	SSL          bool   `json:"ssl,omitempty"`
	CDN          bool   `json:"cdn,omitempty"`
}

// DeployRequest represents the request payload for a single-platform deployment.
type DeployRequest struct {
	Platform string `json:"platform" validate:"required,max=64"`

	ProjectRequest
}

// BatchRequest represents the request payload for deploying one project to several platforms.
type BatchRequest struct {
	Platforms []string `json:"platforms" validate:"required,min=1,max=32,dive,required,max=64"`

	ProjectRequest
}

// DeploymentResponse represents the tracked state of a deployment.
type DeploymentResponse struct {
	DeploymentID         uuid.UUID  `json:"deploymentId"`
	Platform             string     `json:"platform"`
	ProjectID            string     `json:"projectId"`
	Success              bool       `json:"success"`
	Status               string     `json:"status"                         enums:"pending,building,deployed,failed"`
	URL                  string     `json:"url,omitempty"`
	ProviderDeploymentID string     `json:"providerDeploymentId,omitempty"`
	Logs                 []string   `json:"logs"`
	Error                string     `json:"error,omitempty"`
	EstimatedTime        int64      `json:"estimatedTime"`
	RollbackOf           *uuid.UUID `json:"rollbackOf,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}
