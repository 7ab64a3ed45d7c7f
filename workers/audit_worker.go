// workers/audit_worker.go
package workers

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"contest-platform/store"
)

// LinkageAuditor periodically cross-checks user projects lists against
// the projects collection. Registration and creation keep the two sides
// consistent, but renames and manual edits can leave dangling entries;
// the auditor only reports them.
type LinkageAuditor struct {
	Store    store.Interface
	Interval time.Duration

	scheduler gocron.Scheduler
}

func NewLinkageAuditor(st store.Interface, interval time.Duration) *LinkageAuditor {
	return &LinkageAuditor{Store: st, Interval: interval}
}

// Start schedules the periodic audit run.
func (a *LinkageAuditor) Start() error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	a.scheduler = sched

	_, err = sched.NewJob(
		gocron.DurationJob(a.Interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			dangling, err := a.audit(ctx)
			if err != nil {
				log.Printf("[AUDIT] run failed: %v", err)
				return
			}
			if dangling > 0 {
				log.Printf("⚠️ [AUDIT] found %d dangling project references", dangling)
			}
		}),
	)
	if err != nil {
		return err
	}

	sched.Start()
	log.Printf("🕒 [AUDIT] linkage auditor running every %s", a.Interval)
	return nil
}

// Stop shuts the scheduler down.
func (a *LinkageAuditor) Stop() {
	if a.scheduler != nil {
		_ = a.scheduler.Shutdown()
	}
}

// audit counts projects-list entries that no longer resolve to a
// project document, logging each one.
func (a *LinkageAuditor) audit(ctx context.Context) (int, error) {
	projects, err := a.Store.ListProjects(ctx, "")
	if err != nil {
		return 0, err
	}
	known := make(map[string]bool, len(projects))
	for _, p := range projects {
		known[p.Name] = true
	}

	users, err := a.Store.ListUsers(ctx)
	if err != nil {
		return 0, err
	}

	dangling := 0
	for _, u := range users {
		for _, name := range u.Projects {
			if !known[name] {
				log.Printf("[AUDIT] user %s references missing project %q", u.UID, name)
				dangling++
			}
		}
	}
	return dangling, nil
}
