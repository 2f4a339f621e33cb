package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/SergiyLacitis/habit-tasks-backend/internal/model"
	"github.com/SergiyLacitis/habit-tasks-backend/internal/repository"
	"gorm.io/gorm"
)

type SyncLogInput struct {
	TaskID uint
	Date   time.Time
	Status bool
}

type SyncResult struct {
	ProcessedTasks int
	ProcessedLogs  int
}

// Sync merges a client batch in one transaction.
//
// Task creation is at-least-once: every submitted task becomes a new
// row, there is no de-duplication. Log insertion is idempotent: a log
// whose (task, date) pair already exists is skipped, as is a log that
// references a missing task or a task owned by someone else.
//
// Tasks are created before logs are resolved so a log may reference a
// task submitted in the same batch.
//
// When a concurrent identical submission wins the race and the commit
// hits the (task_id, date) unique index, the whole batch rolls back
// and the caller gets ErrConflict rather than counts that overstate
// what was stored; retrying is safe because of the idempotent skip.
func (s *Service) Sync(user *model.User, createdTasks []TaskInput, newLogs []SyncLogInput) (*SyncResult, error) {
	result := &SyncResult{}

	err := s.repo.Transaction(func(tx *repository.Repository) error {
		for _, in := range createdTasks {
			if err := validateTaskInput(in.Title, in.Description); err != nil {
				return err
			}
			task := &model.Task{
				UserID:      user.ID,
				Title:       in.Title,
				Description: in.Description,
				Frequency:   in.Frequency,
				Reminders:   in.Reminders,
			}
			if err := tx.CreateTask(task); err != nil {
				return fmt.Errorf("failed to create task: %w", err)
			}
			result.ProcessedTasks++
		}

		for _, in := range newLogs {
			if _, err := tx.GetUserTask(user.ID, in.TaskID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}

			if _, err := tx.GetTaskLog(in.TaskID, in.Date); err == nil {
				continue
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			taskLog := &model.TaskLog{TaskID: in.TaskID, Date: in.Date, Status: in.Status}
			if err := tx.CreateTaskLog(taskLog); err != nil {
				return fmt.Errorf("failed to create task log: %w", err)
			}
			result.ProcessedLogs++
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: concurrent duplicate submission", ErrConflict)
		}
		return nil, err
	}

	return result, nil
}
