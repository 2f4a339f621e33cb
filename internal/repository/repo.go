package repository

import (
	"time"

	"github.com/SergiyLacitis/habit-tasks-backend/internal/model"
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Transaction runs fn against a repository bound to one database
// transaction: committed when fn returns nil, rolled back otherwise.
func (r *Repository) Transaction(fn func(tx *Repository) error) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{DB: tx})
	})
}

func (r *Repository) CreateUser(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *Repository) GetUserByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) ListUsers() ([]model.User, error) {
	var users []model.User
	err := r.DB.Order("id").Find(&users).Error
	return users, err
}

func (r *Repository) CreateTask(task *model.Task) error {
	return r.DB.Create(task).Error
}

// GetUserTask looks a task up scoped to its owner. A task owned by
// someone else is indistinguishable from a missing one.
func (r *Repository) GetUserTask(userID, taskID uint) (*model.Task, error) {
	var task model.Task
	err := r.DB.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *Repository) ListUserTasks(userID uint) ([]model.Task, error) {
	var tasks []model.Task
	err := r.DB.Where("user_id = ?", userID).Order("created_at").Find(&tasks).Error
	return tasks, err
}

func (r *Repository) SaveTask(task *model.Task) error {
	return r.DB.Save(task).Error
}

func (r *Repository) DeleteTask(task *model.Task) error {
	return r.DB.Delete(task).Error
}

// CompletedTaskIDs returns the ids of the user's tasks that have a log
// on the given day.
func (r *Repository) CompletedTaskIDs(userID uint, day time.Time) (map[uint]bool, error) {
	var ids []uint
	err := r.DB.Model(&model.TaskLog{}).
		Joins("JOIN tasks ON tasks.id = task_logs.task_id").
		Where("tasks.user_id = ? AND task_logs.date = ?", userID, model.Day(day)).
		Pluck("task_logs.task_id", &ids).Error
	if err != nil {
		return nil, err
	}

	completed := make(map[uint]bool, len(ids))
	for _, id := range ids {
		completed[id] = true
	}
	return completed, nil
}

func (r *Repository) CreateTaskLog(taskLog *model.TaskLog) error {
	taskLog.Date = model.Day(taskLog.Date)
	return r.DB.Create(taskLog).Error
}

func (r *Repository) GetTaskLog(taskID uint, date time.Time) (*model.TaskLog, error) {
	var taskLog model.TaskLog
	err := r.DB.Where("task_id = ? AND date = ?", taskID, model.Day(date)).First(&taskLog).Error
	if err != nil {
		return nil, err
	}
	return &taskLog, nil
}

func (r *Repository) ListTaskLogs(taskID uint, from, to *time.Time) ([]model.TaskLog, error) {
	query := r.DB.Where("task_id = ?", taskID).Order("date DESC")
	if from != nil {
		query = query.Where("date >= ?", model.Day(*from))
	}
	if to != nil {
		query = query.Where("date <= ?", model.Day(*to))
	}

	var logs []model.TaskLog
	err := query.Find(&logs).Error
	return logs, err
}

func (r *Repository) DeleteTaskLog(taskLog *model.TaskLog) error {
	return r.DB.Delete(taskLog).Error
}
