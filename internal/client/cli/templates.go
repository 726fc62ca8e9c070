package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/prepadmin/internal/client/models"
	"github.com/dmitrijs2005/prepadmin/internal/client/views"
)

const pathTemplates = "/admin/templates"

func templatePath(id string) string { return pathTemplates + "/edit/" + id }

// Templates lists templates, optionally filtered with key=value arguments
// (case_type, lead_type, difficulty, company, industry, skip, limit).
func (a *App) Templates(ctx context.Context, args []string) error {
	f, err := models.ParseTemplateFilters(args)
	if err != nil {
		return err
	}
	if _, ok := a.open(pathTemplates); !ok {
		return nil
	}
	return a.listTemplates(ctx, f)
}

// Template shows one template.
func (a *App) Template(ctx context.Context, id string) error {
	return a.Go(ctx, templatePath(id))
}

func (a *App) TemplateNew(ctx context.Context) error {
	return a.Go(ctx, pathTemplates+"/new")
}

// TemplateEdit loads a template into the form and saves it with PUT.
func (a *App) TemplateEdit(ctx context.Context, id string) error {
	if _, ok := a.open(templatePath(id)); !ok {
		return nil
	}
	t, err := a.res.Templates.Get(ctx, id)
	if err != nil {
		return failed(err, msgFetchTemplate)
	}
	if err := a.templateForm(ctx, t); err != nil {
		return err
	}
	if _, err := a.res.Templates.Update(ctx, id, *t); err != nil {
		return failed(err, msgSaveTemplate)
	}
	printlnFn("Template updated.")
	return a.Go(ctx, pathTemplates)
}

// TemplateDelete removes a template after confirmation.
func (a *App) TemplateDelete(ctx context.Context, id string) error {
	if _, ok := a.open(pathTemplates); !ok {
		return nil
	}
	ok, err := confirm(a.reader, a.out, "Are you sure you want to delete this template?")
	if err != nil || !ok {
		return err
	}
	v := a.templateView()
	if err := a.res.Templates.Delete(ctx, id); err != nil {
		v.SetError(err, msgDeleteTemplate)
		return failed(err, msgDeleteTemplate)
	}
	v.Remove(func(t models.Template) bool { return t.ID == id })
	printlnFn("Template deleted.")
	return nil
}

func (a *App) templateView() *views.ListView[models.TemplateFilters, models.Template] {
	if a.templates == nil {
		a.templates = views.NewListView[models.TemplateFilters, models.Template](a.res.Templates.List, msgFetchTemplates)
	}
	return a.templates
}

func (a *App) templateFilter() models.TemplateFilters {
	if a.templates == nil {
		return models.TemplateFilters{}
	}
	return a.templates.Snapshot().Filter
}

func (a *App) listTemplates(ctx context.Context, f models.TemplateFilters) error {
	v := a.templateView()
	if err := v.Load(ctx, f); err != nil {
		if errors.Is(err, views.ErrSuperseded) || errors.Is(err, views.ErrClosed) {
			return nil
		}
		return errors.New(v.Snapshot().Err)
	}

	items := v.Snapshot().Items
	if len(items) == 0 {
		printlnFn("No templates found.")
		return nil
	}
	rows := make([][]string, 0, len(items))
	for _, t := range items {
		rows = append(rows, []string{t.ID, truncate(t.Title, 40), t.CaseType, t.LeadType, t.Difficulty, t.Company})
	}
	printTable([]string{"ID", "TITLE", "CASE TYPE", "LEAD", "DIFFICULTY", "COMPANY"}, rows)
	return nil
}

func (a *App) showTemplate(ctx context.Context, id string) error {
	t, err := a.res.Templates.Get(ctx, id)
	if err != nil {
		return failed(err, msgFetchTemplate)
	}
	printlnFn("ID:         ", t.ID)
	printlnFn("Title:      ", t.Title)
	printlnFn("Case type:  ", t.CaseType)
	printlnFn("Lead type:  ", t.LeadType)
	printlnFn("Difficulty: ", t.Difficulty)
	printlnFn("Company:    ", t.Company)
	printlnFn("Industry:   ", t.Industry)
	printlnFn("Duration:   ", strconv.Itoa(t.Duration)+" min")
	printlnFn("Version:    ", t.Version)
	if t.ImageURL != "" {
		printlnFn("Image:      ", t.ImageURL)
	}
	printlnFn("Summary:    ", t.DescriptionShort)
	printlnFn("Prompt:")
	printlnFn(t.Prompt)
	for _, k := range t.SlotKeys() {
		q := t.Structure[k]
		printlnFn(fmt.Sprintf("[%s] %s", k, q.Prompt))
		if q.Context != "" {
			printlnFn("    context:", q.Context)
		}
	}
	return nil
}

func (a *App) createTemplate(ctx context.Context) error {
	t := models.NewTemplate()
	if err := a.templateForm(ctx, &t); err != nil {
		return err
	}
	saved, err := a.res.Templates.Create(ctx, t)
	if err != nil {
		return failed(err, msgSaveTemplate)
	}
	printlnFn("Template created:", saved.ID)
	return a.Go(ctx, pathTemplates)
}

func (a *App) templateForm(ctx context.Context, t *models.Template) error {
	if t.Structure == nil {
		t.Structure = models.NewTemplate().Structure
	}

	f := a.form()
	f.text("Title", &t.Title)
	f.text("Case type", &t.CaseType)
	f.choice("Lead type", &t.LeadType, models.LeadTypes)
	f.choice("Difficulty", &t.Difficulty, models.Difficulties)
	f.text("Company", &t.Company)
	f.text("Industry", &t.Industry)
	f.multiline("Prompt", &t.Prompt)
	f.text("Short description", &t.DescriptionShort)
	f.multiline("Long description", &t.DescriptionLong)
	f.number("Duration (minutes)", &t.Duration)
	f.text("Version", &t.Version)
	f.image(ctx, &t.ImageURL)

	for _, k := range t.SlotKeys() {
		q := t.Structure[k]
		f.text(k+" prompt", &q.Prompt)
		f.text(k+" context", &q.Context)
		t.Structure[k] = q
	}
	return f.err
}
