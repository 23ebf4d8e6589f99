package clone

import (
	"context"
	"fmt"

	"github.com/geocoder89/eventclone/internal/domain/event"
)

// CopyTasks creates a new tenant task per task linked to the source event. Each task is
// saved on its own so its id can be used by the link row to the new event.
func (c *Copier) CopyTasks(ctx context.Context, target *event.Event, sourceID int64) error {
	return c.step(ctx, "tasks", sourceID, func(ctx context.Context, src *event.Event) (int, error) {
		tasks, err := c.sess.TaskItems(ctx, c.actor.TenantID, src.ID)
		if err != nil {
			return 0, err
		}

		rows := 0
		for _, t := range tasks {
			n := &event.TaskItem{
				TenantID:                     c.actor.TenantID,
				ProjectID:                    t.ProjectID,
				Name:                         t.Name,
				Description:                  t.Description,
				TaskPriorityID:               t.TaskPriorityID,
				SystemTaskTypeID:             t.SystemTaskTypeID,
				TaskTypeID:                   t.TaskTypeID,
				StartDate:                    t.StartDate,
				DueDate:                      t.DueDate,
				DueTime:                      t.DueTime,
				AssignedToContactID:          t.AssignedToContactID,
				SecondaryContactID:           t.SecondaryContactID,
				ContactID:                    t.ContactID,
				EstimatedHours:               t.EstimatedHours,
				DependentOnTaskID:            t.DependentOnTaskID,
				DependentOnMustCompleteFirst: t.DependentOnMustCompleteFirst,
				ProjectMilestoneID:           t.ProjectMilestoneID,
				DependentsMustCompleteFirst:  t.DependentsMustCompleteFirst,
				TaskItemInfoJSON:             t.TaskItemInfoJSON,
				AuditID:                      t.AuditID,
				TaskData:                     t.TaskData,
				ForumTopicID:                 t.ForumTopicID,
			}
			c.sess.Add(n)

			if err := c.sess.SaveChanges(ctx); err != nil {
				return rows, fmt.Errorf("save task copy: %w", err)
			}

			c.sess.Add(&event.TaskLink{EventID: target.ID, TaskItemID: n.ID})
			rows += 2
		}
		return rows, nil
	})
}
