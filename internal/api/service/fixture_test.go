package service

import (
	"testing"

	"github.com/cuongbtq/job-board/internal/api/auth"
	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/cuongbtq/job-board/internal/api/model"
)

const (
	a1 = "a1000000-0000-4000-8000-000000000001"
	a2 = "a2000000-0000-4000-8000-000000000002"
	u1 = "b1000000-0000-4000-8000-000000000001"
	u2 = "b2000000-0000-4000-8000-000000000002"

	j1      = "c1000000-0000-4000-8000-000000000001"
	missing = "ffffffff-0000-4000-8000-00000000ffff"
)

var (
	admin1 = &auth.Principal{UserID: a1, Email: "a1@example.com", Role: domain.RoleAdmin}
	admin2 = &auth.Principal{UserID: a2, Email: "a2@example.com", Role: domain.RoleAdmin}
	user1  = &auth.Principal{UserID: u1, Email: "u1@example.com", Role: domain.RoleUser}
	user2  = &auth.Principal{UserID: u2, Email: "u2@example.com", Role: domain.RoleUser}
)

type fixture struct {
	store    *memStore
	events   *recordingPublisher
	jobs     *JobService
	apps     *ApplicationService
	profiles *ProfileService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := newMemStore()
	store.addUser(model.User{ID: a1, Email: "a1@example.com", Name: "Ada", Role: domain.RoleAdmin})
	store.addUser(model.User{ID: a2, Email: "a2@example.com", Name: "Alan", Role: domain.RoleAdmin})
	store.addUser(model.User{ID: u1, Email: "u1@example.com", Name: "Grace", Role: domain.RoleUser})
	store.addUser(model.User{ID: u2, Email: "u2@example.com", Name: "Linus", Role: domain.RoleUser})

	clock := newTickingClock()
	store.now = clock.Now
	store.addJob(model.Job{
		ID:           j1,
		Title:        "Senior Backend Engineer",
		Department:   "Engineering",
		Location:     "Remote",
		Description:  "Own the hiring platform APIs",
		Requirements: "Go, PostgreSQL",
		CustomFields: domain.CustomFields{
			{ID: "q1", Label: "Are you open to relocation?", Type: domain.FieldTypeRadio, Required: true, Options: []string{"yes", "no"}},
		},
		Status:    domain.JobStatusActive,
		CreatedBy: a1,
		CreatedAt: clock.Now(),
		UpdatedAt: clock.Now(),
	})

	pub := &recordingPublisher{}
	f := &fixture{
		store:    store,
		events:   pub,
		jobs:     NewJobService(store, discardLogger()),
		apps:     NewApplicationService(store, pub, discardLogger()),
		profiles: NewProfileService(store, discardLogger()),
	}
	f.jobs.now = clock.Now
	return f
}
