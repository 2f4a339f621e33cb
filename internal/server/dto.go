package server

import (
	"fmt"
	"time"

	"github.com/SergiyLacitis/habit-tasks-backend/internal/model"
	"github.com/SergiyLacitis/habit-tasks-backend/internal/service"
)

const dateLayout = "2006-01-02"

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login is form-encoded; JSON is accepted as well.
type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type userResponse struct {
	ID       uint       `json:"id"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Role     model.Role `json:"role"`
}

func toUserResponse(user *model.User) userResponse {
	return userResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
}

type registerResponse struct {
	User         userResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
}

type taskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Frequency   string   `json:"frequency"`
	Reminders   []string `json:"reminders"`
}

func (r taskRequest) toInput() service.TaskInput {
	return service.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		Frequency:   r.Frequency,
		Reminders:   r.Reminders,
	}
}

type taskPatchRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Frequency   *string   `json:"frequency"`
	Reminders   *[]string `json:"reminders"`
}

type taskLogResponse struct {
	ID     uint   `json:"id"`
	TaskID uint   `json:"task_id"`
	Date   string `json:"date"`
	Status bool   `json:"status"`
}

func toTaskLogResponse(taskLog *model.TaskLog) taskLogResponse {
	return taskLogResponse{
		ID:     taskLog.ID,
		TaskID: taskLog.TaskID,
		Date:   taskLog.Date.Format(dateLayout),
		Status: taskLog.Status,
	}
}

type syncLogRequest struct {
	TaskID uint   `json:"task_id"`
	Date   string `json:"date"`
	Status bool   `json:"status"`
}

type syncRequest struct {
	CreatedTasks []taskRequest    `json:"created_tasks"`
	NewLogs      []syncLogRequest `json:"new_logs"`
}

type syncResponse struct {
	ProcessedTasks int    `json:"processed_tasks"`
	ProcessedLogs  int    `json:"processed_logs"`
	Status         string `json:"status"`
}

func parseDate(value string) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", value)
	}
	return day, nil
}
