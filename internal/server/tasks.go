package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/SergiyLacitis/habit-tasks-backend/internal/service"
	"github.com/labstack/echo/v4"
)

func taskID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}
	return uint(id), nil
}

func (s *Server) listTasks(c echo.Context) error {
	tasks, err := s.svc.ListTasks(currentUser(c))
	if err != nil {
		return s.httpError(err)
	}
	return c.JSON(http.StatusOK, tasks)
}

func (s *Server) createTask(c echo.Context) error {
	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := s.svc.CreateTask(currentUser(c), req.toInput())
	if err != nil {
		return s.httpError(err)
	}
	return c.JSON(http.StatusCreated, task)
}

func (s *Server) getTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := s.svc.GetTask(currentUser(c), id)
	if err != nil {
		return s.httpError(err)
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) updateTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req taskPatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := s.svc.UpdateTask(currentUser(c), id, service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Frequency:   req.Frequency,
		Reminders:   req.Reminders,
	})
	if err != nil {
		return s.httpError(err)
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) deleteTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	if err := s.svc.DeleteTask(currentUser(c), id); err != nil {
		return s.httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) taskLogs(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	var from, to *time.Time
	if value := c.QueryParam("date_from"); value != "" {
		day, err := parseDate(value)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		from = &day
	}
	if value := c.QueryParam("date_to"); value != "" {
		day, err := parseDate(value)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		to = &day
	}

	logs, err := s.svc.TaskLogs(currentUser(c), id, from, to)
	if err != nil {
		return s.httpError(err)
	}

	resp := make([]taskLogResponse, 0, len(logs))
	for i := range logs {
		resp = append(resp, toTaskLogResponse(&logs[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) completeTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	taskLog, err := s.svc.CompleteTask(currentUser(c), id)
	if err != nil {
		return s.httpError(err)
	}
	return c.JSON(http.StatusOK, toTaskLogResponse(taskLog))
}

func (s *Server) undoCompleteTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	var date *time.Time
	if value := c.QueryParam("date"); value != "" {
		day, err := parseDate(value)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		date = &day
	}

	if err := s.svc.UndoCompleteTask(currentUser(c), id, date); err != nil {
		return s.httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) sync(c echo.Context) error {
	var req syncRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	createdTasks := make([]service.TaskInput, 0, len(req.CreatedTasks))
	for _, t := range req.CreatedTasks {
		createdTasks = append(createdTasks, t.toInput())
	}

	newLogs := make([]service.SyncLogInput, 0, len(req.NewLogs))
	for _, l := range req.NewLogs {
		day, err := parseDate(l.Date)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		newLogs = append(newLogs, service.SyncLogInput{
			TaskID: l.TaskID,
			Date:   day,
			Status: l.Status,
		})
	}

	result, err := s.svc.Sync(currentUser(c), createdTasks, newLogs)
	if err != nil {
		return s.httpError(err)
	}

	return c.JSON(http.StatusOK, syncResponse{
		ProcessedTasks: result.ProcessedTasks,
		ProcessedLogs:  result.ProcessedLogs,
		Status:         "ok",
	})
}
