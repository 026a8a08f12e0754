package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/studylog/studylog/internal/domain/progress"
	"github.com/studylog/studylog/internal/domain/resource"
	"github.com/studylog/studylog/internal/domain/task"
	"github.com/studylog/studylog/internal/domain/user"
	"github.com/studylog/studylog/internal/stats"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type createTaskParams struct {
	UserID           string   `json:"user_id,omitempty" jsonschema:"owner user id"`
	Title            string   `json:"title" jsonschema:"task title"`
	Description      string   `json:"description,omitempty"`
	Subject          string   `json:"subject,omitempty" jsonschema:"subject or topic area"`
	Priority         string   `json:"priority,omitempty" jsonschema:"low, medium or high"`
	DueDate          string   `json:"due_date,omitempty" jsonschema:"RFC 3339 due date"`
	EstimatedMinutes int      `json:"estimated_minutes,omitempty"`
	Tags             []string `json:"tags,omitempty"`
}

type listTasksParams struct {
	UserID string `json:"user_id,omitempty" jsonschema:"filter by owner user id"`
}

type getTaskParams struct {
	ID string `json:"id" jsonschema:"task id"`
}

type updateTaskParams struct {
	ID               string   `json:"id" jsonschema:"task id"`
	Title            *string  `json:"title,omitempty"`
	Description      *string  `json:"description,omitempty"`
	Subject          *string  `json:"subject,omitempty"`
	Status           *string  `json:"status,omitempty" jsonschema:"todo, in_progress or done"`
	Priority         *string  `json:"priority,omitempty" jsonschema:"low, medium or high"`
	DueDate          string   `json:"due_date,omitempty" jsonschema:"RFC 3339 due date"`
	EstimatedMinutes *int     `json:"estimated_minutes,omitempty"`
	Tags             []string `json:"tags,omitempty"`
}

type deleteTaskParams struct {
	ID string `json:"id" jsonschema:"task id"`
}

type searchTasksParams struct {
	UserID string `json:"user_id,omitempty" jsonschema:"filter by owner user id"`
	Term   string `json:"term" jsonschema:"case-insensitive search term"`
}

type taskListResult struct {
	Tasks []task.Task `json:"tasks"`
}

type deleteTaskResult struct {
	Deleted                bool `json:"deleted"`
	ProgressEntriesRemoved int  `json:"progress_entries_removed"`
}

type addResourceParams struct {
	UserID string `json:"user_id,omitempty" jsonschema:"owner user id"`
	Title  string `json:"title" jsonschema:"resource title"`
	URL    string `json:"url,omitempty"`
	Kind   string `json:"kind,omitempty" jsonschema:"article, video, book, course or other"`
	Notes  string `json:"notes,omitempty"`
	TaskID string `json:"task_id,omitempty" jsonschema:"task this resource belongs to"`
}

type listResourcesParams struct {
	UserID string `json:"user_id,omitempty" jsonschema:"filter by owner user id"`
}

type updateResourceParams struct {
	ID        string  `json:"id" jsonschema:"resource id"`
	Title     *string `json:"title,omitempty"`
	URL       *string `json:"url,omitempty"`
	Kind      *string `json:"kind,omitempty" jsonschema:"article, video, book, course or other"`
	Notes     *string `json:"notes,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

type deleteResourceParams struct {
	ID string `json:"id" jsonschema:"resource id"`
}

type searchResourcesParams struct {
	UserID string `json:"user_id,omitempty" jsonschema:"filter by owner user id"`
	Term   string `json:"term" jsonschema:"case-insensitive search term"`
}

type resourceListResult struct {
	Resources []resource.Resource `json:"resources"`
}

type deletedResult struct {
	Deleted bool `json:"deleted"`
}

type logProgressParams struct {
	UserID       string   `json:"user_id,omitempty" jsonschema:"owner user id"`
	TaskID       string   `json:"task_id,omitempty" jsonschema:"task worked on"`
	CompletedAt  string   `json:"completed_at,omitempty" jsonschema:"RFC 3339 completion time, defaults to now"`
	Minutes      int      `json:"minutes" jsonschema:"session duration in minutes, 0-1440"`
	Satisfaction int      `json:"satisfaction,omitempty" jsonschema:"1-5, omit when unrated"`
	Difficulty   string   `json:"difficulty,omitempty" jsonschema:"easy, medium or hard"`
	ProgressType string   `json:"progress_type,omitempty" jsonschema:"free-form kind of work, e.g. reading or practice"`
	Notes        string   `json:"notes,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

type listProgressParams struct {
	UserID string `json:"user_id,omitempty" jsonschema:"filter by owner user id"`
}

type deleteProgressParams struct {
	ID string `json:"id" jsonschema:"progress entry id"`
}

type progressListResult struct {
	Entries []progress.Entry `json:"entries"`
}

type getStatsParams struct {
	UserID string `json:"user_id,omitempty" jsonschema:"subject user id"`
}

type getHeatmapParams struct {
	UserID string `json:"user_id,omitempty" jsonschema:"subject user id"`
	Days   int    `json:"days,omitempty" jsonschema:"window length in days ending today, defaults to 90"`
}

type heatmapResult struct {
	Entries []stats.HeatmapEntry `json:"entries"`
}

type getGoalProgressParams struct {
	UserID string `json:"user_id" jsonschema:"subject user id"`
}

type createUserParams struct {
	Name  string `json:"name" jsonschema:"display name"`
	Email string `json:"email,omitempty"`
}

type getUserParams struct {
	ID string `json:"id" jsonschema:"user id"`
}

type listUsersResult struct {
	Users []user.User `json:"users"`
}

type setGoalsParams struct {
	UserID         string `json:"user_id" jsonschema:"user id"`
	DailyMinutes   int    `json:"daily_minutes,omitempty" jsonschema:"daily study target in minutes, 0 clears"`
	WeeklyMinutes  int    `json:"weekly_minutes,omitempty" jsonschema:"weekly study target in minutes, 0 clears"`
	MonthlyMinutes int    `json:"monthly_minutes,omitempty" jsonschema:"monthly study target in minutes, 0 clears"`
}

// registerTools wires every tool to its domain service.
func registerTools(server *sdkmcp.Server, svcs Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_task",
		Description: "Create a new study task",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in createTaskParams) (*sdkmcp.CallToolResult, *task.Task, error) {
		due, err := parseTimestamp(in.DueDate)
		if err != nil {
			return nil, nil, err
		}
		created, err := svcs.Tasks.Create(ctx, task.CreateRequest{
			UserID:           in.UserID,
			Title:            in.Title,
			Description:      in.Description,
			Subject:          in.Subject,
			Priority:         task.Priority(in.Priority),
			DueDate:          due,
			EstimatedMinutes: in.EstimatedMinutes,
			Tags:             in.Tags,
		})
		return nil, created, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_tasks",
		Description: "List study tasks in creation order",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in listTasksParams) (*sdkmcp.CallToolResult, *taskListResult, error) {
		tasks, err := svcs.Tasks.List(ctx, in.UserID)
		if err != nil {
			return nil, nil, err
		}
		return nil, &taskListResult{Tasks: tasks}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_task",
		Description: "Get a task by id",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in getTaskParams) (*sdkmcp.CallToolResult, *task.Task, error) {
		t, err := svcs.Tasks.Get(ctx, in.ID)
		return nil, t, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_task",
		Description: "Update task fields; omitted fields are untouched",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in updateTaskParams) (*sdkmcp.CallToolResult, *task.Task, error) {
		due, err := parseTimestamp(in.DueDate)
		if err != nil {
			return nil, nil, err
		}
		update := task.UpdateRequest{
			Title:            in.Title,
			Description:      in.Description,
			Subject:          in.Subject,
			DueDate:          due,
			EstimatedMinutes: in.EstimatedMinutes,
			Tags:             in.Tags,
		}
		if in.Status != nil {
			status := task.Status(*in.Status)
			update.Status = &status
		}
		if in.Priority != nil {
			priority := task.Priority(*in.Priority)
			update.Priority = &priority
		}
		t, err := svcs.Tasks.Update(ctx, in.ID, update)
		return nil, t, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "complete_task",
		Description: "Mark a task done",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in getTaskParams) (*sdkmcp.CallToolResult, *task.Task, error) {
		t, err := svcs.Tasks.Complete(ctx, in.ID)
		return nil, t, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task and the progress entries logged against it",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in deleteTaskParams) (*sdkmcp.CallToolResult, *deleteTaskResult, error) {
		if err := svcs.Tasks.Delete(ctx, in.ID); err != nil {
			return nil, nil, err
		}
		removed, err := svcs.Progress.DeleteForTask(ctx, in.ID)
		if err != nil {
			return nil, nil, err
		}
		return nil, &deleteTaskResult{Deleted: true, ProgressEntriesRemoved: removed}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "search_tasks",
		Description: "Search tasks by title, description or subject",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in searchTasksParams) (*sdkmcp.CallToolResult, *taskListResult, error) {
		tasks, err := svcs.Tasks.Search(ctx, in.UserID, in.Term)
		if err != nil {
			return nil, nil, err
		}
		return nil, &taskListResult{Tasks: tasks}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_resource",
		Description: "Add a learning resource, optionally attached to a task",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in addResourceParams) (*sdkmcp.CallToolResult, *resource.Resource, error) {
		res, err := svcs.Resources.Create(ctx, resource.CreateRequest{
			UserID: in.UserID,
			Title:  in.Title,
			URL:    in.URL,
			Kind:   resource.Kind(in.Kind),
			Notes:  in.Notes,
			TaskID: in.TaskID,
		})
		return nil, res, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_resources",
		Description: "List learning resources in creation order",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in listResourcesParams) (*sdkmcp.CallToolResult, *resourceListResult, error) {
		resources, err := svcs.Resources.List(ctx, in.UserID)
		if err != nil {
			return nil, nil, err
		}
		return nil, &resourceListResult{Resources: resources}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_resource",
		Description: "Update resource fields; omitted fields are untouched",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in updateResourceParams) (*sdkmcp.CallToolResult, *resource.Resource, error) {
		update := resource.UpdateRequest{
			Title:     in.Title,
			URL:       in.URL,
			Notes:     in.Notes,
			Completed: in.Completed,
		}
		if in.Kind != nil {
			kind := resource.Kind(*in.Kind)
			update.Kind = &kind
		}
		res, err := svcs.Resources.Update(ctx, in.ID, update)
		return nil, res, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_resource",
		Description: "Delete a learning resource",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in deleteResourceParams) (*sdkmcp.CallToolResult, *deletedResult, error) {
		if err := svcs.Resources.Delete(ctx, in.ID); err != nil {
			return nil, nil, err
		}
		return nil, &deletedResult{Deleted: true}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "search_resources",
		Description: "Search resources by title, notes or url",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in searchResourcesParams) (*sdkmcp.CallToolResult, *resourceListResult, error) {
		resources, err := svcs.Resources.Search(ctx, in.UserID, in.Term)
		if err != nil {
			return nil, nil, err
		}
		return nil, &resourceListResult{Resources: resources}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "log_progress",
		Description: "Log one study session, optionally against a task",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in logProgressParams) (*sdkmcp.CallToolResult, *progress.Entry, error) {
		completedAt, err := parseTimestamp(in.CompletedAt)
		if err != nil {
			return nil, nil, err
		}
		logReq := progress.LogRequest{
			UserID:       in.UserID,
			TaskID:       in.TaskID,
			Minutes:      in.Minutes,
			Satisfaction: in.Satisfaction,
			Difficulty:   progress.Difficulty(in.Difficulty),
			ProgressType: in.ProgressType,
			Notes:        in.Notes,
			Tags:         in.Tags,
		}
		if completedAt != nil {
			logReq.CompletedAt = *completedAt
		}
		entry, err := svcs.Progress.Log(ctx, logReq)
		return nil, entry, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_progress",
		Description: "List logged study sessions in the order they were logged",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in listProgressParams) (*sdkmcp.CallToolResult, *progressListResult, error) {
		entries, err := svcs.Progress.List(ctx, in.UserID)
		if err != nil {
			return nil, nil, err
		}
		return nil, &progressListResult{Entries: entries}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_progress",
		Description: "Delete one logged study session",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in deleteProgressParams) (*sdkmcp.CallToolResult, *deletedResult, error) {
		if err := svcs.Progress.Delete(ctx, in.ID); err != nil {
			return nil, nil, err
		}
		return nil, &deletedResult{Deleted: true}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_stats",
		Description: "Get the full statistics summary: totals, daily/weekly/monthly rollups, most productive day, longest session",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in getStatsParams) (*sdkmcp.CallToolResult, *stats.Summary, error) {
		summary, err := svcs.Progress.Summary(ctx, in.UserID)
		return nil, summary, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_heatmap",
		Description: "Get the activity heatmap for a window of days ending today",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in getHeatmapParams) (*sdkmcp.CallToolResult, *heatmapResult, error) {
		days := in.Days
		if days <= 0 {
			days = 90
		}
		entries, err := svcs.Progress.Heatmap(ctx, in.UserID, days)
		if err != nil {
			return nil, nil, err
		}
		return nil, &heatmapResult{Entries: entries}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_goal_progress",
		Description: "Evaluate the user's daily, weekly and monthly study goals for the current period",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in getGoalProgressParams) (*sdkmcp.CallToolResult, *stats.GoalReport, error) {
		report, err := svcs.Progress.Goals(ctx, in.UserID)
		if err != nil {
			return nil, nil, err
		}
		return nil, &report, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_user",
		Description: "Create a new user",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in createUserParams) (*sdkmcp.CallToolResult, *user.User, error) {
		u, err := svcs.Users.Create(ctx, user.CreateRequest{Name: in.Name, Email: in.Email})
		return nil, u, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_user",
		Description: "Get a user by id",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in getUserParams) (*sdkmcp.CallToolResult, *user.User, error) {
		u, err := svcs.Users.Get(ctx, in.ID)
		return nil, u, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_users",
		Description: "List users in creation order",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in struct{}) (*sdkmcp.CallToolResult, *listUsersResult, error) {
		users, err := svcs.Users.List(ctx)
		if err != nil {
			return nil, nil, err
		}
		return nil, &listUsersResult{Users: users}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_goals",
		Description: "Set the user's study goal targets in minutes",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in setGoalsParams) (*sdkmcp.CallToolResult, *user.User, error) {
		u, err := svcs.Users.SetGoals(ctx, in.UserID, stats.GoalTargets{
			DailyMinutes:   in.DailyMinutes,
			WeeklyMinutes:  in.WeeklyMinutes,
			MonthlyMinutes: in.MonthlyMinutes,
		})
		return nil, u, err
	})
}

func parseTimestamp(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp %q: %w", value, err)
	}
	return &t, nil
}
