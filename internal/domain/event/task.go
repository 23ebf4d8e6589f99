package event

import "time"

type TaskItem struct {
	ID                           int64      `db:"id" goqu:"skipinsert,skipupdate"`
	TenantID                     int64      `db:"tenant_id"`
	ProjectID                    *int64     `db:"project_id"`
	Name                         string     `db:"name"`
	Description                  string     `db:"description"`
	TaskPriorityID               *int64     `db:"task_priority_id"`
	SystemTaskTypeID             *int64     `db:"system_task_type_id"`
	TaskTypeID                   *int64     `db:"task_type_id"`
	StartDate                    *time.Time `db:"start_date"`
	DueDate                      *time.Time `db:"due_date"`
	DueTime                      string     `db:"due_time"`
	AssignedToContactID          *int64     `db:"assigned_to_contact_id"`
	SecondaryContactID           *int64     `db:"secondary_contact_id"`
	ContactID                    *int64     `db:"contact_id"`
	EstimatedHours               *float64   `db:"estimated_hours"`
	DependentOnTaskID            *int64     `db:"dependent_on_task_id"`
	DependentOnMustCompleteFirst bool       `db:"dependent_on_must_complete_first"`
	ProjectMilestoneID           *int64     `db:"project_milestone_id"`
	DependentsMustCompleteFirst  bool       `db:"dependents_must_complete_first"`
	TaskItemInfoJSON             string     `db:"task_item_info_json"`
	AuditID                      *int64     `db:"audit_id"`
	TaskData                     string     `db:"task_data"`
	ForumTopicID                 *int64     `db:"forum_topic_id"`
	IsDeleted                    bool       `db:"is_deleted"`
}

func (t *TaskItem) Table() string      { return "task_items" }
func (t *TaskItem) PrimaryKey() *int64 { return &t.ID }

// TaskLink associates a task item with an event.
type TaskLink struct {
	ID         int64 `db:"id" goqu:"skipinsert,skipupdate"`
	EventID    int64 `db:"event_id"`
	TaskItemID int64 `db:"task_item_id"`
}

func (t *TaskLink) Table() string      { return "event_task_items" }
func (t *TaskLink) PrimaryKey() *int64 { return &t.ID }
