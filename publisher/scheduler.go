package publisher

import (
	"context"
	"fmt"

	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"

	"bikeshare/session"
)

// Scheduler republishes the current session of s every time the cron spec fires
type Scheduler struct {
	cron      *cron.Cron
	publisher *Publisher
	session   *session.Session
}

// NewScheduler registers the periodic publication. spec follows robfig/cron, e.g. "@every 10m"
func NewScheduler(ctx context.Context, spec string, publisher *Publisher, s *session.Session) (*Scheduler, error) {
	scheduler := &Scheduler{
		cron:      cron.New(),
		publisher: publisher,
		session:   s,
	}

	err := scheduler.cron.AddFunc(spec, func() {
		scheduler.publish(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("error scheduling publication %q: %w", spec, err)
	}

	return scheduler, nil
}

func (sc *Scheduler) publish(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	sent, err := sc.publisher.PublishSession(ctx, sc.session)
	if err != nil {
		log.Error(getLogMessage("Scheduler", "scheduled publication failed", err))
		return
	}
	log.Info(getLogMessage("Scheduler", fmt.Sprintf("scheduled publication sent %v messages", sent), nil))
}

func (sc *Scheduler) Start() {
	sc.cron.Start()
}

func (sc *Scheduler) Stop() {
	sc.cron.Stop()
}
