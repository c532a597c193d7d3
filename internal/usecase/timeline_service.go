package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/scorecast/internal/domain/history"
	"github.com/riskibarqy/scorecast/internal/domain/prediction"
)

const (
	TimelineKindView       = "view"
	TimelineKindPrediction = "prediction"
)

type TimelineItem struct {
	Kind       string
	At         time.Time
	View       *history.Entry
	Prediction *prediction.Saved
}

type TimelineGroup struct {
	Label string
	Items []TimelineItem
}

// TimelineService merges match views and saved predictions into one feed.
type TimelineService struct {
	history     history.Repository
	predictions prediction.Repository
	now         func() time.Time
	loc         *time.Location
}

func NewTimelineService(historyRepo history.Repository, predictionRepo prediction.Repository) *TimelineService {
	return &TimelineService{
		history:     historyRepo,
		predictions: predictionRepo,
		now:         time.Now,
		loc:         time.UTC,
	}
}

// Timeline returns activity grouped by day, newest day and item first.
func (s *TimelineService) Timeline(ctx context.Context, userID string) ([]TimelineGroup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TimelineService.Timeline")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	var (
		views      []history.Entry
		saved      []prediction.Saved
		viewErr    error
		predictErr error
	)
	var wg conc.WaitGroup
	wg.Go(func() {
		views, viewErr = s.history.ListByUser(ctx, userID)
	})
	wg.Go(func() {
		saved, predictErr = s.predictions.ListByUser(ctx, userID)
	})
	wg.Wait()
	if viewErr != nil {
		return nil, fmt.Errorf("list history: %w", viewErr)
	}
	if predictErr != nil {
		return nil, fmt.Errorf("list predictions: %w", predictErr)
	}

	items := make([]TimelineItem, 0, len(views)+len(saved))
	for i := range views {
		items = append(items, TimelineItem{Kind: TimelineKindView, At: views[i].ViewedAt, View: &views[i]})
	}
	for i := range saved {
		items = append(items, TimelineItem{Kind: TimelineKindPrediction, At: saved[i].CreatedAt, Prediction: &saved[i]})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].At.After(items[j].At)
	})

	return GroupByDay(items, s.now().In(s.loc), s.loc), nil
}

// GroupByDay expects items sorted newest first.
func GroupByDay(items []TimelineItem, now time.Time, loc *time.Location) []TimelineGroup {
	groups := make([]TimelineGroup, 0)
	for _, item := range items {
		label := DayLabel(item.At, now, loc)
		if n := len(groups); n > 0 && groups[n-1].Label == label {
			groups[n-1].Items = append(groups[n-1].Items, item)
			continue
		}
		groups = append(groups, TimelineGroup{Label: label, Items: []TimelineItem{item}})
	}
	return groups
}

func DayLabel(at, now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	day := truncateDay(at.In(loc))
	today := truncateDay(now.In(loc))
	switch {
	case day.Equal(today):
		return "Today"
	case day.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday"
	default:
		return day.Format("January 2, 2006")
	}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
