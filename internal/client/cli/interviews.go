package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/dmitrijs2005/prepadmin/internal/client/models"
	"github.com/dmitrijs2005/prepadmin/internal/client/views"
)

const pathInterviews = "/admin/interviews"

// Interviews lists interviews, optionally filtered with key=value arguments
// (user_id, lesson_id, status, skip, limit).
func (a *App) Interviews(ctx context.Context, args []string) error {
	f, err := models.ParseInterviewFilters(args)
	if err != nil {
		return err
	}
	if _, ok := a.open(pathInterviews); !ok {
		return nil
	}
	return a.listInterviews(ctx, f)
}

func (a *App) Interview(ctx context.Context, id string) error {
	return a.Go(ctx, pathInterviews+"/"+id)
}

func (a *App) interviewView() *views.ListView[models.InterviewFilters, models.Interview] {
	if a.interviews == nil {
		a.interviews = views.NewListView[models.InterviewFilters, models.Interview](a.res.Interviews.List, msgFetchInterviews)
	}
	return a.interviews
}

func (a *App) interviewFilter() models.InterviewFilters {
	if a.interviews == nil {
		return models.InterviewFilters{}
	}
	return a.interviews.Snapshot().Filter
}

func (a *App) listInterviews(ctx context.Context, f models.InterviewFilters) error {
	v := a.interviewView()
	if err := v.Load(ctx, f); err != nil {
		if errors.Is(err, views.ErrSuperseded) || errors.Is(err, views.ErrClosed) {
			return nil
		}
		return errors.New(v.Snapshot().Err)
	}

	items := v.Snapshot().Items
	if len(items) == 0 {
		printlnFn("No interviews found.")
		return nil
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{it.ID, it.UserID, it.LessonID, it.Status, it.StartedAt, duration(it.DurationSec)})
	}
	printTable([]string{"ID", "USER", "LESSON", "STATUS", "STARTED", "DURATION"}, rows)
	return nil
}

func (a *App) showInterview(ctx context.Context, id string) error {
	it, err := a.res.Interviews.Get(ctx, id)
	if err != nil {
		return failed(err, msgFetchInterview)
	}
	printlnFn("ID:       ", it.ID)
	printlnFn("User:     ", it.UserID)
	printlnFn("Lesson:   ", it.LessonID)
	printlnFn("Status:   ", it.Status)
	printlnFn("Started:  ", it.StartedAt)
	if it.EndedAt != "" {
		printlnFn("Ended:    ", it.EndedAt)
	}
	printlnFn("Duration: ", duration(it.DurationSec))
	if len(it.OverallScore) > 0 {
		printlnFn("Score:")
		printlnFn(indentJSON(it.OverallScore))
	}
	printlnFn("Turns:    ", len(it.Turns))
	return nil
}

func duration(sec *int) string {
	if sec == nil {
		return "-"
	}
	return strconv.Itoa(*sec) + "s"
}
