package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SergiyLacitis/habit-tasks-backend/internal/model"
	"gorm.io/gorm"
)

func TestCreateTaskValidation(t *testing.T) {
	svc, _ := newTestService(t)
	user := mustRegister(t, svc, "alice", "alice@x.com", "pw123456")

	if _, err := svc.CreateTask(user, TaskInput{Title: ""}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty title: got %v, want ErrInvalidInput", err)
	}
	if _, err := svc.CreateTask(user, TaskInput{Title: strings.Repeat("x", 101)}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("long title: got %v, want ErrInvalidInput", err)
	}
	if _, err := svc.CreateTask(user, TaskInput{
		Title:       "Read",
		Description: strings.Repeat("x", 501),
	}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("long description: got %v, want ErrInvalidInput", err)
	}

	task, err := svc.CreateTask(user, TaskInput{
		Title:     "Drink water",
		Frequency: "daily",
		Reminders: []string{"09:00", "15:00"},
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if task.ID == 0 || task.UserID != user.ID {
		t.Errorf("task = %+v", task)
	}
}

func TestTaskOwnershipScoping(t *testing.T) {
	svc, _ := newTestService(t)
	alice := mustRegister(t, svc, "alice", "alice@x.com", "pw123456")
	bob := mustRegister(t, svc, "bob", "bob@x.com", "pw123456")

	task, err := svc.CreateTask(alice, TaskInput{Title: "Drink water"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	if _, err := svc.GetTask(bob, task.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign GetTask: got %v, want ErrNotFound", err)
	}
	if err := svc.DeleteTask(bob, task.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign DeleteTask: got %v, want ErrNotFound", err)
	}
	if _, err := svc.CompleteTask(bob, task.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign CompleteTask: got %v, want ErrNotFound", err)
	}
}

func TestUpdateTaskPatchesOnlySetFields(t *testing.T) {
	svc, _ := newTestService(t)
	user := mustRegister(t, svc, "alice", "alice@x.com", "pw123456")

	task, err := svc.CreateTask(user, TaskInput{Title: "Drink water", Description: "8 glasses"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	title := "Drink more water"
	updated, err := svc.UpdateTask(user, task.ID, TaskPatch{Title: &title})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.Title != "Drink more water" {
		t.Errorf("title = %q", updated.Title)
	}
	if updated.Description != "8 glasses" {
		t.Errorf("description lost on patch: %q", updated.Description)
	}

	bad := ""
	if _, err := svc.UpdateTask(user, task.ID, TaskPatch{Title: &bad}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty patched title: got %v, want ErrInvalidInput", err)
	}
}

func TestCompleteTaskTwiceSameDay(t *testing.T) {
	svc, repo := newTestService(t)
	user := mustRegister(t, svc, "alice", "alice@x.com", "pw123456")

	task, err := svc.CreateTask(user, TaskInput{Title: "Drink water"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	taskLog, err := svc.CompleteTask(user, task.ID)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if !taskLog.Status {
		t.Error("completion log status = false")
	}

	if _, err := svc.CompleteTask(user, task.ID); !errors.Is(err, ErrAlreadyCompleted) {
		t.Errorf("second completion: got %v, want ErrAlreadyCompleted", err)
	}

	var count int64
	if err := repo.DB.Model(&model.TaskLog{}).Where("task_id = ?", task.ID).Count(&count).Error; err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if count != 1 {
		t.Errorf("log rows = %d, want 1", count)
	}
}

// The unique index is the last line of defense when two requests pass
// the existence pre-check concurrently.
func TestTaskLogUniqueConstraint(t *testing.T) {
	svc, repo := newTestService(t)
	user := mustRegister(t, svc, "alice", "alice@x.com", "pw123456")

	task, err := svc.CreateTask(user, TaskInput{Title: "Drink water"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	day := model.Day(time.Now())
	if err := repo.CreateTaskLog(&model.TaskLog{TaskID: task.ID, Date: day, Status: true}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err = repo.CreateTaskLog(&model.TaskLog{TaskID: task.ID, Date: day, Status: true})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("duplicate insert: got %v, want ErrDuplicatedKey", err)
	}
}

func TestUndoCompleteTask(t *testing.T) {
	svc, _ := newTestService(t)
	user := mustRegister(t, svc, "alice", "alice@x.com", "pw123456")

	task, err := svc.CreateTask(user, TaskInput{Title: "Drink water"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, err := svc.CompleteTask(user, task.ID); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}

	if err := svc.UndoCompleteTask(user, task.ID, nil); err != nil {
		t.Fatalf("UndoCompleteTask: %v", err)
	}
	if err := svc.UndoCompleteTask(user, task.ID, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("second undo: got %v, want ErrNotFound", err)
	}

	// Completing again after undo starts a fresh log.
	if _, err := svc.CompleteTask(user, task.ID); err != nil {
		t.Errorf("complete after undo: %v", err)
	}
}

func TestListTasksMarksTodayCompletion(t *testing.T) {
	svc, _ := newTestService(t)
	user := mustRegister(t, svc, "alice", "alice@x.com", "pw123456")

	done, err := svc.CreateTask(user, TaskInput{Title: "Drink water"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, err := svc.CreateTask(user, TaskInput{Title: "Read"}); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, err := svc.CompleteTask(user, done.ID); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}

	tasks, err := svc.ListTasks(user)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("len(tasks) = %d, want 2", len(tasks))
	}
	for _, task := range tasks {
		want := task.ID == done.ID
		if task.IsCompleted != want {
			t.Errorf("task %d is_completed = %v, want %v", task.ID, task.IsCompleted, want)
		}
	}
}

func TestTaskLogsDateFilters(t *testing.T) {
	svc, repo := newTestService(t)
	user := mustRegister(t, svc, "alice", "alice@x.com", "pw123456")

	task, err := svc.CreateTask(user, TaskInput{Title: "Drink water"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	days := []string{"2025-01-01", "2025-01-02", "2025-01-03"}
	for _, raw := range days {
		day, _ := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err := repo.CreateTaskLog(&model.TaskLog{TaskID: task.ID, Date: day, Status: true}); err != nil {
			t.Fatalf("insert log %s: %v", raw, err)
		}
	}

	from, _ := time.ParseInLocation("2006-01-02", "2025-01-02", time.UTC)
	to, _ := time.ParseInLocation("2006-01-02", "2025-01-02", time.UTC)

	logs, err := svc.TaskLogs(user, task.ID, &from, nil)
	if err != nil {
		t.Fatalf("TaskLogs: %v", err)
	}
	if len(logs) != 2 {
		t.Errorf("from-filter rows = %d, want 2", len(logs))
	}

	logs, err = svc.TaskLogs(user, task.ID, &from, &to)
	if err != nil {
		t.Fatalf("TaskLogs: %v", err)
	}
	if len(logs) != 1 {
		t.Errorf("range-filter rows = %d, want 1", len(logs))
	}
}
