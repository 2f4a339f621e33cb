package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/SergiyLacitis/habit-tasks-backend/internal/model"
	"gorm.io/gorm"
)

type TaskInput struct {
	Title       string
	Description string
	Frequency   string
	Reminders   []string
}

// TaskPatch carries a partial update; nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Frequency   *string
	Reminders   *[]string
}

type TaskWithStatus struct {
	model.Task
	IsCompleted bool `json:"is_completed"`
}

func validateTaskInput(title, description string) error {
	if len(title) < 1 || len(title) > 100 {
		return fmt.Errorf("%w: title must be 1-100 characters", ErrInvalidInput)
	}
	if len(description) > 500 {
		return fmt.Errorf("%w: description must be at most 500 characters", ErrInvalidInput)
	}
	return nil
}

// ListTasks returns the user's tasks in creation order, each flagged
// with whether it has a completion log for today.
func (s *Service) ListTasks(user *model.User) ([]TaskWithStatus, error) {
	tasks, err := s.repo.ListUserTasks(user.ID)
	if err != nil {
		return nil, err
	}

	completed, err := s.repo.CompletedTaskIDs(user.ID, time.Now())
	if err != nil {
		return nil, err
	}

	result := make([]TaskWithStatus, 0, len(tasks))
	for _, task := range tasks {
		result = append(result, TaskWithStatus{Task: task, IsCompleted: completed[task.ID]})
	}
	return result, nil
}

func (s *Service) GetTask(user *model.User, taskID uint) (*model.Task, error) {
	task, err := s.repo.GetUserTask(user.ID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: task", ErrNotFound)
		}
		return nil, err
	}
	return task, nil
}

func (s *Service) CreateTask(user *model.User, in TaskInput) (*model.Task, error) {
	if err := validateTaskInput(in.Title, in.Description); err != nil {
		return nil, err
	}

	task := &model.Task{
		UserID:      user.ID,
		Title:       in.Title,
		Description: in.Description,
		Frequency:   in.Frequency,
		Reminders:   in.Reminders,
	}
	if err := s.repo.CreateTask(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

func (s *Service) UpdateTask(user *model.User, taskID uint, patch TaskPatch) (*model.Task, error) {
	task, err := s.GetTask(user, taskID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Frequency != nil {
		task.Frequency = *patch.Frequency
	}
	if patch.Reminders != nil {
		task.Reminders = *patch.Reminders
	}

	if err := validateTaskInput(task.Title, task.Description); err != nil {
		return nil, err
	}

	if err := s.repo.SaveTask(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

func (s *Service) DeleteTask(user *model.User, taskID uint) error {
	task, err := s.GetTask(user, taskID)
	if err != nil {
		return err
	}
	return s.repo.DeleteTask(task)
}

// CompleteTask writes today's completion log. A second call on the
// same day fails: the pre-check catches the common case, the unique
// index on (task_id, date) catches the race between two concurrent
// calls.
func (s *Service) CompleteTask(user *model.User, taskID uint) (*model.TaskLog, error) {
	task, err := s.GetTask(user, taskID)
	if err != nil {
		return nil, err
	}

	today := model.Day(time.Now())
	if _, err := s.repo.GetTaskLog(task.ID, today); err == nil {
		return nil, ErrAlreadyCompleted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	taskLog := &model.TaskLog{TaskID: task.ID, Date: today, Status: true}
	if err := s.repo.CreateTaskLog(taskLog); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: task already completed", ErrConflict)
		}
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}
	return taskLog, nil
}

// UndoCompleteTask deletes the log for the given day, defaulting to
// today.
func (s *Service) UndoCompleteTask(user *model.User, taskID uint, date *time.Time) error {
	task, err := s.GetTask(user, taskID)
	if err != nil {
		return err
	}

	day := model.Day(time.Now())
	if date != nil {
		day = model.Day(*date)
	}

	taskLog, err := s.repo.GetTaskLog(task.ID, day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: task was not completed on %s", ErrNotFound, day.Format("2006-01-02"))
		}
		return err
	}

	return s.repo.DeleteTaskLog(taskLog)
}

func (s *Service) TaskLogs(user *model.User, taskID uint, from, to *time.Time) ([]model.TaskLog, error) {
	task, err := s.GetTask(user, taskID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListTaskLogs(task.ID, from, to)
}
