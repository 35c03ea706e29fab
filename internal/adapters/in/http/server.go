package http

import (
	"errors"
	"net/http"

	"tasking/internal/core/application/usecases/commands"
	"tasking/internal/core/application/usecases/queries"
	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/generated/servers"
	"tasking/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	enqueueTaskHandler    commands.EnqueueTaskCommandHandler
	cancelTaskHandler     commands.CancelTaskCommandHandler
	createScheduleHandler commands.CreateScheduleCommandHandler

	// Query handlers
	getTaskHandler            queries.GetTaskQueryHandler
	getUnfinishedTasksHandler queries.GetUnfinishedTasksQueryHandler
	getAllWorkersHandler      queries.GetAllWorkersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	enqueueTaskHandler commands.EnqueueTaskCommandHandler,
	cancelTaskHandler commands.CancelTaskCommandHandler,
	createScheduleHandler commands.CreateScheduleCommandHandler,
	getTaskHandler queries.GetTaskQueryHandler,
	getUnfinishedTasksHandler queries.GetUnfinishedTasksQueryHandler,
	getAllWorkersHandler queries.GetAllWorkersQueryHandler,
) *Server {
	return &Server{
		enqueueTaskHandler:        enqueueTaskHandler,
		cancelTaskHandler:         cancelTaskHandler,
		createScheduleHandler:     createScheduleHandler,
		getTaskHandler:            getTaskHandler,
		getUnfinishedTasksHandler: getUnfinishedTasksHandler,
		getAllWorkersHandler:      getAllWorkersHandler,
	}
}

// CreateTask handles POST /api/v1/tasks - enqueues a task for execution.
func (s *Server) CreateTask(ctx echo.Context) error {
	var newTask servers.NewTask
	if err := ctx.Bind(&newTask); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	// The caller may supply its own identifier for status polling
	taskID := kernel.NewUUID()
	if newTask.Id != nil {
		parsed, err := kernel.UUIDFromBytes((*newTask.Id)[:])
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, servers.Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid task id: " + err.Error(),
			})
		}
		taskID = parsed
	}

	resource, err := parseResource(newTask.Resource)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid resource: " + err.Error(),
		})
	}

	var payload []byte
	if newTask.Payload != nil {
		payload = *newTask.Payload
	}
	maxRetries := 0
	if newTask.MaxRetries != nil {
		maxRetries = *newTask.MaxRetries
	}

	cmd, err := commands.NewEnqueueTaskCommand(taskID, newTask.Name, resource, payload, maxRetries)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid task data: " + err.Error(),
		})
	}

	if handleErr := s.enqueueTaskHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to enqueue task",
		})
	}

	return ctx.JSON(http.StatusAccepted, servers.TaskCreated{Id: taskID.Bytes()})
}

// GetTask handles GET /api/v1/tasks/{taskId} - retrieves a task's status.
func (s *Server) GetTask(ctx echo.Context, taskId openapi_types.UUID) error {
	taskID, err := kernel.UUIDFromBytes(taskId[:])
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid task id",
		})
	}

	query, err := queries.NewGetTaskQuery(taskID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid task id",
		})
	}

	found, err := s.getTaskHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, servers.Error{
				Code:    http.StatusNotFound,
				Message: "Task not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve task",
		})
	}

	return ctx.JSON(http.StatusOK, taskToResponse(found))
}

// DeleteTask handles DELETE /api/v1/tasks/{taskId} - cancels a waiting or
// dispatched task.
func (s *Server) DeleteTask(ctx echo.Context, taskId openapi_types.UUID) error {
	taskID, err := kernel.UUIDFromBytes(taskId[:])
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid task id",
		})
	}

	cmd, err := commands.NewCancelTaskCommand(taskID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid task id",
		})
	}

	if handleErr := s.cancelTaskHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		if errors.Is(handleErr, commands.ErrTaskNotFound) {
			return ctx.JSON(http.StatusNotFound, servers.Error{
				Code:    http.StatusNotFound,
				Message: "Task not found",
			})
		}
		// A running or settled task can no longer be canceled
		return ctx.JSON(http.StatusConflict, servers.Error{
			Code:    http.StatusConflict,
			Message: "Task cannot be canceled: " + handleErr.Error(),
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetTasks handles GET /api/v1/tasks - retrieves all unfinished tasks.
func (s *Server) GetTasks(ctx echo.Context) error {
	query := queries.NewGetUnfinishedTasksQuery()

	tasks, err := s.getUnfinishedTasksHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve tasks",
		})
	}

	response := make([]servers.Task, len(tasks))
	for i, unfinished := range tasks {
		entry := servers.Task{
			Id:         unfinished.ID.Bytes(),
			Name:       unfinished.Name,
			Status:     servers.TaskStatus(unfinished.Status),
			Attempts:   unfinished.Attempts,
			MaxRetries: unfinished.MaxRetries,
			EnqueuedAt: unfinished.EnqueuedAt,
		}
		if unfinished.Resource != "" {
			resource := unfinished.Resource
			entry.Resource = &resource
		}
		if unfinished.WorkerID != nil {
			workerID := unfinished.WorkerID.Bytes()
			entry.WorkerId = &workerID
		}
		response[i] = entry
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetWorkers handles GET /api/v1/workers - retrieves all known workers.
func (s *Server) GetWorkers(ctx echo.Context) error {
	query := queries.NewGetAllWorkersQuery()

	workers, err := s.getAllWorkersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve workers",
		})
	}

	response := make([]servers.Worker, len(workers))
	for i, registered := range workers {
		response[i] = servers.Worker{
			Id:            registered.ID.Bytes(),
			Name:          registered.Name,
			Status:        registered.Status,
			LastHeartbeat: registered.LastHeartbeat,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateSchedule handles POST /api/v1/schedules - creates a periodic
// schedule.
func (s *Server) CreateSchedule(ctx echo.Context) error {
	var newSchedule servers.NewSchedule
	if err := ctx.Bind(&newSchedule); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	resource, err := parseResource(newSchedule.Resource)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid resource: " + err.Error(),
		})
	}

	var payload []byte
	if newSchedule.Payload != nil {
		payload = *newSchedule.Payload
	}
	maxRetries := 0
	if newSchedule.MaxRetries != nil {
		maxRetries = *newSchedule.MaxRetries
	}

	scheduleID := kernel.NewUUID()
	cmd, err := commands.NewCreateScheduleCommand(
		scheduleID,
		newSchedule.Name,
		newSchedule.TaskName,
		resource,
		payload,
		newSchedule.Cron,
		maxRetries,
	)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid schedule data: " + err.Error(),
		})
	}

	if handleErr := s.createScheduleHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return ctx.JSON(http.StatusConflict, servers.Error{
			Code:    http.StatusConflict,
			Message: "Failed to create schedule",
		})
	}

	return ctx.JSON(http.StatusCreated, servers.ScheduleCreated{Id: scheduleID.Bytes()})
}

// parseResource converts the optional wire form "type:name" to a resource
// name.
func parseResource(raw *string) (*kernel.ResourceName, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	resource, err := kernel.ResourceNameFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

// taskToResponse maps the task read model to its wire form.
func taskToResponse(found queries.GetTaskQueryResponse) servers.Task {
	response := servers.Task{
		Id:         found.ID.Bytes(),
		Name:       found.Name,
		Status:     servers.TaskStatus(found.Status),
		Attempts:   found.Attempts,
		MaxRetries: found.MaxRetries,
		EnqueuedAt: found.EnqueuedAt,
	}
	if found.Resource != "" {
		resource := found.Resource
		response.Resource = &resource
	}
	if found.WorkerID != nil {
		workerID := found.WorkerID.Bytes()
		response.WorkerId = &workerID
	}
	if len(found.Result) > 0 {
		result := found.Result
		response.Result = &result
	}
	if found.Failure != "" {
		failure := found.Failure
		response.Failure = &failure
	}
	response.StartedAt = found.StartedAt
	response.FinishedAt = found.FinishedAt
	return response
}
