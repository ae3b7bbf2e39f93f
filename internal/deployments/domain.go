package deployments

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"  // Accepted, build not started
	StatusBuilding Status = "building" // Build, packaging or upload in progress
	StatusDeployed Status = "deployed" // Published by the provider
	StatusFailed   Status = "failed"   // Terminal failure, including cancellation
)

const (
	ErrMessageCancelled = "Deployment cancelled by user"
	ErrMessageNotFound  = "Deployment not found"
)

// Terminal reports whether the status is final for a deployment id.
func (s Status) Terminal() bool {
	return s == StatusDeployed || s == StatusFailed
}

// CanTransitionTo reports whether moving from s to next respects the
// pending -> building -> deployed|failed lifecycle.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusPending || next == StatusBuilding || next == StatusFailed
	case StatusBuilding:
		return next == StatusBuilding || next == StatusDeployed || next == StatusFailed
	case StatusDeployed, StatusFailed:
		return false
	}

	return false
}

// Config is a single deployment request.
type Config struct {
	Platform  string `json:"platform"  validate:"required,max=64"`
	ProjectID string `json:"projectId" validate:"required,max=128,printascii"`

	// BuildCommand overrides the configured command; an explicit empty string skips the build.
	BuildCommand         *string           `json:"buildCommand,omitempty"`
	OutputDirectory      string            `json:"outputDirectory,omitempty"      validate:"omitempty,max=1024"`
	EnvironmentVariables map[string]string `json:"environmentVariables,omitempty"`

	CustomDomain string `json:"customDomain,omitempty" validate:"omitempty,fqdn"`
	SSL          bool   `json:"ssl,omitempty"`
	CDN          bool   `json:"cdn,omitempty"`
}

type DeploymentDraft struct {
	Platform  string
	ProjectID string

	Status               Status
	URL                  string        // Set iff deployed
	ProviderDeploymentID string        // Identifier assigned by the hosting provider
	Logs                 []string      // Append-only
	Error                string        // Set iff failed
	EstimatedTime        time.Duration // Provider's latency guess, progress display only

	RollbackOf *uuid.UUID // Source deployment of a rollback entry
}

// Success mirrors the deployed status.
func (d *DeploymentDraft) Success() bool {
	return d.Status == StatusDeployed
}

func (d *DeploymentDraft) AppendLog(lines ...string) {
	d.Logs = append(d.Logs, lines...)
}

func (d *DeploymentDraft) MarkBuilding() {
	d.Status = StatusBuilding
}

func (d *DeploymentDraft) MarkDeployed(url, providerID string, estimated time.Duration) {
	d.Status = StatusDeployed
	d.URL = url
	d.ProviderDeploymentID = providerID
	d.EstimatedTime = estimated
	d.Error = ""
}

func (d *DeploymentDraft) MarkFailed(message string) {
	d.Status = StatusFailed
	d.URL = ""
	d.Error = message
}

// normalize enforces the url/error invariants of the status.
func (d *DeploymentDraft) normalize() {
	if d.Status != StatusDeployed {
		d.URL = ""
	}
	if d.Status != StatusFailed {
		d.Error = ""
	} else if d.Error == "" {
		d.Error = "Deployment failed"
	}
	if d.Logs == nil {
		d.Logs = []string{}
	}
}

type Deployment struct {
	DeploymentDraft

	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}
