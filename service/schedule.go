package service

import (
	"context"
	"time"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/utils"
)

// ScheduleDailyTaskAt runs task every day at the given local time until ctx ends.
func ScheduleDailyTaskAt(ctx context.Context, hour, min, sec int, task func(context.Context)) {
	go func() {
		for {
			wait := untilNext(time.Now(), hour, min, sec)
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				task(ctx)
			}
		}
	}()
}

// untilNext is the delay from t to the next hour:min:sec, today or tomorrow.
func untilNext(t time.Time, hour, min, sec int) time.Duration {
	next := time.Date(t.Year(), t.Month(), t.Day(), hour, min, sec, 0, t.Location())
	if !next.After(t) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(t)
}

// OverdueDigest mails every user a list of their overdue tasks.
type OverdueDigest struct {
	tasks    *TaskService
	users    *UserService
	notifier *Notifier
}

func NewOverdueDigest(tasks *TaskService, users *UserService, notifier *Notifier) *OverdueDigest {
	return &OverdueDigest{tasks: tasks, users: users, notifier: notifier}
}

// Run groups overdue tasks by assignee and queues one mail per user.
// It returns how many digests were queued.
func (d *OverdueDigest) Run(ctx context.Context) int {
	start := time.Now()
	utils.Logger.Info().Msg("overdue task digest started")

	tasks, err := d.tasks.AllOverdue(ctx)
	if err != nil {
		utils.LogError(err, nil, "load overdue tasks failed")
		return 0
	}

	byUser := map[string][]models.Task{}
	for _, t := range tasks {
		if t.AssignedUserID != "" {
			byUser[t.AssignedUserID] = append(byUser[t.AssignedUserID], t)
		}
	}
	ids := make([]string, 0, len(byUser))
	for id := range byUser {
		ids = append(ids, id)
	}

	users, err := d.users.FindByIDs(ctx, ids)
	if err != nil {
		utils.LogError(err, nil, "load digest recipients failed")
		return 0
	}

	queued := 0
	for id, list := range byUser {
		user, ok := users[id]
		if !ok || !user.IsActive {
			continue
		}
		result := d.notifier.Queue(overdueDigestMessage(user, list))
		if result.Status == DeliveryQueued {
			queued++
		} else {
			utils.Logger.Warn().Str("userId", id).Str("status", string(result.Status)).Str("error", result.Error).Msg("overdue digest not queued")
		}
	}

	utils.Logger.Info().
		Int("overdueTasks", len(tasks)).
		Int("recipients", len(byUser)).
		Int("queued", queued).
		Dur("took", time.Since(start)).
		Msg("overdue task digest finished")
	return queued
}
