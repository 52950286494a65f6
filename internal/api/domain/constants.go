package domain

import "math"

// Role identifies what a principal may do
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// JobStatus is the publication state of a job posting
type JobStatus string

const (
	JobStatusActive JobStatus = "ACTIVE"
	JobStatusClosed JobStatus = "CLOSED"
	JobStatusDraft  JobStatus = "DRAFT"

	// JobStatusAll is a listing sentinel that disables the status filter
	JobStatusAll JobStatus = "ALL"
)

// Valid reports whether s can be stored on a job
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusActive, JobStatusClosed, JobStatusDraft:
		return true
	}
	return false
}

// Toggled returns the status a job moves to on an open/close toggle.
// Drafts are published.
func (s JobStatus) Toggled() JobStatus {
	if s == JobStatusActive {
		return JobStatusClosed
	}
	return JobStatusActive
}

// ApplicationStatus is the review state of an application. Every status may
// move to every other status, itself included.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "PENDING"
	ApplicationStatusAccepted ApplicationStatus = "ACCEPTED"
	ApplicationStatusRejected ApplicationStatus = "REJECTED"
	ApplicationStatusOnHold   ApplicationStatus = "ON_HOLD"
)

// ApplicationStatuses lists the states in display order
var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusPending,
	ApplicationStatusAccepted,
	ApplicationStatusRejected,
	ApplicationStatusOnHold,
}

// Valid reports whether s is a known application status
func (s ApplicationStatus) Valid() bool {
	for _, known := range ApplicationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Pagination defaults shared by the listing endpoints
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxOffset bounds (page-1)*limit
	MaxOffset = math.MaxInt32
)
