package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chronicle-app/chronicle-api/internal/models"
	"github.com/chronicle-app/chronicle-api/internal/scheduling"
	appErrors "github.com/chronicle-app/chronicle-api/pkg/errors"
	"github.com/chronicle-app/chronicle-api/pkg/export"
)

var weekExportHeaders = []string{"Day", "Start", "End", "Title", "Category", "Duration"}

// ExportService renders the committed week as CSV, PDF or iCalendar.
type ExportService struct {
	repo         eventRepository
	csv          *export.CSVExporter
	pdf          *export.PDFExporter
	ics          *export.ICSExporter
	logger       *zap.Logger
	calendarName string
}

// NewExportService constructs the service.
func NewExportService(repo eventRepository, csv *export.CSVExporter, pdf *export.PDFExporter, ics *export.ICSExporter, logger *zap.Logger, calendarName string) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if calendarName == "" {
		calendarName = "Chronicle"
	}
	return &ExportService{repo: repo, csv: csv, pdf: pdf, ics: ics, logger: logger, calendarName: calendarName}
}

// WeekCSV renders the week containing the reference time as CSV.
func (s *ExportService) WeekCSV(ctx context.Context, ref time.Time) ([]byte, error) {
	events, err := s.weekEvents(ctx, ref)
	if err != nil {
		return nil, err
	}
	payload, err := s.csv.Render(weekDataset(events))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
	}
	return payload, nil
}

// WeekPDF renders the week containing the reference time as PDF.
func (s *ExportService) WeekPDF(ctx context.Context, ref time.Time) ([]byte, error) {
	events, err := s.weekEvents(ctx, ref)
	if err != nil {
		return nil, err
	}
	weekStart := scheduling.StartOfWeek(ref.UTC())
	title := fmt.Sprintf("%s week of %s", s.calendarName, weekStart.Format("2006-01-02"))
	payload, err := s.pdf.Render(weekDataset(events), title)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
	}
	return payload, nil
}

// WeekICS renders the week containing the reference time as an
// iCalendar feed.
func (s *ExportService) WeekICS(ctx context.Context, ref time.Time) ([]byte, error) {
	events, err := s.weekEvents(ctx, ref)
	if err != nil {
		return nil, err
	}

	icsEvents := make([]export.ICSEvent, 0, len(events))
	for _, ev := range events {
		icsEvents = append(icsEvents, export.ICSEvent{
			UID:      ev.ID,
			Summary:  ev.Title,
			Start:    ev.Start,
			End:      ev.End(),
			Category: ev.CategoryOverride,
		})
	}

	payload, err := s.ics.Render(icsEvents)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render ics export")
	}
	return payload, nil
}

func (s *ExportService) weekEvents(ctx context.Context, ref time.Time) ([]models.Event, error) {
	weekStart := scheduling.StartOfWeek(ref.UTC())
	weekEnd := weekStart.AddDate(0, 0, 7)
	events, err := s.repo.List(ctx, models.EventFilter{After: &weekStart, Before: &weekEnd})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	return events, nil
}

func weekDataset(events []models.Event) export.Dataset {
	rows := make([]map[string]string, 0, len(events))
	for _, ev := range events {
		rows = append(rows, map[string]string{
			"Day":      ev.Start.Format("Monday"),
			"Start":    ev.Start.Format("15:04"),
			"End":      ev.End().Format("15:04"),
			"Title":    ev.Title,
			"Category": ev.CategoryOverride,
			"Duration": ev.Duration.Clock(),
		})
	}
	return export.Dataset{Headers: weekExportHeaders, Rows: rows}
}
