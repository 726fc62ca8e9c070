package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/dmitrijs2005/prepadmin/internal/client/models"
	"github.com/dmitrijs2005/prepadmin/internal/client/views"
)

const pathLessons = "/admin/lessons"

func lessonPath(id string) string { return pathLessons + "/" + id }

// Lessons lists lessons; skip=N and limit=N page through them.
func (a *App) Lessons(ctx context.Context, args []string) error {
	p, err := models.ParsePage(args)
	if err != nil {
		return err
	}
	if _, ok := a.open(pathLessons); !ok {
		return nil
	}
	return a.listLessons(ctx, p)
}

func (a *App) Lesson(ctx context.Context, id string) error {
	return a.Go(ctx, lessonPath(id))
}

func (a *App) LessonNew(ctx context.Context) error {
	return a.Go(ctx, pathLessons+"/new")
}

// LessonEdit loads a lesson into the form and saves it with PATCH. The id
// cannot be changed.
func (a *App) LessonEdit(ctx context.Context, id string) error {
	if _, ok := a.open(lessonPath(id)); !ok {
		return nil
	}
	l, err := a.res.Lessons.Get(ctx, id)
	if err != nil {
		return failed(err, msgFetchLesson)
	}
	if err := a.lessonForm(ctx, l, false); err != nil {
		return err
	}
	if _, err := a.res.Lessons.Update(ctx, id, *l); err != nil {
		return failed(err, msgSaveLesson)
	}
	printlnFn("Lesson updated.")
	return a.Go(ctx, pathLessons)
}

func (a *App) LessonDelete(ctx context.Context, id string) error {
	if _, ok := a.open(pathLessons); !ok {
		return nil
	}
	ok, err := confirm(a.reader, a.out, "Are you sure you want to delete this lesson?")
	if err != nil || !ok {
		return err
	}
	v := a.lessonView()
	if err := a.res.Lessons.Delete(ctx, id); err != nil {
		v.SetError(err, msgDeleteLesson)
		return failed(err, msgDeleteLesson)
	}
	v.Remove(func(l models.Lesson) bool { return l.ID == id })
	printlnFn("Lesson deleted.")
	return nil
}

func (a *App) lessonView() *views.ListView[models.Page, models.Lesson] {
	if a.lessons == nil {
		a.lessons = views.NewListView[models.Page, models.Lesson](a.res.Lessons.List, msgFetchLessons)
	}
	return a.lessons
}

func (a *App) lessonPage() models.Page {
	if a.lessons == nil {
		return models.Page{}
	}
	return a.lessons.Snapshot().Filter
}

func (a *App) listLessons(ctx context.Context, p models.Page) error {
	v := a.lessonView()
	if err := v.Load(ctx, p); err != nil {
		if errors.Is(err, views.ErrSuperseded) || errors.Is(err, views.ErrClosed) {
			return nil
		}
		return errors.New(v.Snapshot().Err)
	}

	items := v.Snapshot().Items
	if len(items) == 0 {
		printlnFn("No lessons found.")
		return nil
	}
	rows := make([][]string, 0, len(items))
	for _, l := range items {
		questions := "-"
		if b, err := models.ParseLessonBody(l.Body); err == nil {
			questions = strconv.Itoa(b.QuestionCount())
		}
		rows = append(rows, []string{l.ID, truncate(l.Title, 40), l.Difficulty, l.Company, questions})
	}
	printTable([]string{"ID", "TITLE", "DIFFICULTY", "COMPANY", "QUESTIONS"}, rows)
	return nil
}

func (a *App) showLesson(ctx context.Context, id string) error {
	l, err := a.res.Lessons.Get(ctx, id)
	if err != nil {
		return failed(err, msgFetchLesson)
	}
	printlnFn("ID:         ", l.ID)
	printlnFn("Title:      ", l.Title)
	printlnFn("Difficulty: ", l.Difficulty)
	printlnFn("Company:    ", l.Company)
	if l.ImageURL != "" {
		printlnFn("Image:      ", l.ImageURL)
	}
	printlnFn("Summary:    ", l.ShortDescription)
	if l.LongDescription != "" {
		printlnFn(l.LongDescription)
	}
	printlnFn("Body:")
	printlnFn(indentJSON(l.Body))
	return nil
}

func (a *App) createLesson(ctx context.Context) error {
	l := models.NewLesson()
	if err := a.lessonForm(ctx, &l, true); err != nil {
		return err
	}
	saved, err := a.res.Lessons.Create(ctx, l)
	if err != nil {
		return failed(err, msgSaveLesson)
	}
	printlnFn("Lesson created:", saved.ID)
	return a.Go(ctx, pathLessons)
}

func (a *App) lessonForm(ctx context.Context, l *models.Lesson, isNew bool) error {
	f := a.form()
	if isNew {
		f.text("Lesson ID", &l.ID)
	}
	f.text("Title", &l.Title)
	f.choice("Difficulty", &l.Difficulty, models.LessonDifficulties)
	f.text("Company", &l.Company)
	f.text("Short description", &l.ShortDescription)
	f.multiline("Long description", &l.LongDescription)
	f.image(ctx, &l.ImageURL)

	if f.err == nil {
		printlnFn("Current body:")
		printlnFn(indentJSON(l.Body))
	}
	body := string(l.Body)
	f.multiline("Body (JSON)", &body)
	l.Body = json.RawMessage(body)
	return f.err
}

// indentJSON pretty-prints raw, returning it unchanged when it is not JSON.
func indentJSON(raw json.RawMessage) string {
	var b bytes.Buffer
	if err := json.Indent(&b, raw, "", "  "); err != nil {
		return string(raw)
	}
	return b.String()
}
