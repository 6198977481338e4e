package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronicle-app/chronicle-api/internal/dto"
	"github.com/chronicle-app/chronicle-api/internal/models"
	appErrors "github.com/chronicle-app/chronicle-api/pkg/errors"
)

type stubTimeSlotRepo struct {
	slots  []models.TimeSlot
	nextID int64
}

func (r *stubTimeSlotRepo) List(ctx context.Context) ([]models.TimeSlot, error) {
	return r.slots, nil
}

func (r *stubTimeSlotRepo) FindByID(ctx context.Context, id int64) (*models.TimeSlot, error) {
	for _, slot := range r.slots {
		if slot.ID == id {
			found := slot
			return &found, nil
		}
	}
	return nil, nil
}

func (r *stubTimeSlotRepo) Create(ctx context.Context, slot *models.TimeSlot) error {
	r.nextID++
	slot.ID = r.nextID
	r.slots = append(r.slots, *slot)
	return nil
}

func (r *stubTimeSlotRepo) Update(ctx context.Context, slot *models.TimeSlot) (bool, error) {
	for i, existing := range r.slots {
		if existing.ID == slot.ID {
			r.slots[i] = *slot
			return true, nil
		}
	}
	return false, nil
}

func (r *stubTimeSlotRepo) Delete(ctx context.Context, id int64) (bool, error) {
	for i, slot := range r.slots {
		if slot.ID == id {
			r.slots = append(r.slots[:i], r.slots[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func TestTimeSlotServiceCreateAssignsID(t *testing.T) {
	repo := &stubTimeSlotRepo{}
	svc := NewTimeSlotService(repo, nil, nil)

	resp, err := svc.Create(context.Background(), dto.TimeSlotRequest{
		Title:    "Morning run",
		Start:    6 * 60,
		Duration: models.Duration{Minutes: 45},
		Days:     []int{1, 3, 5},
		Color:    "#22aa44",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "06:00", resp.Start)
	assert.Equal(t, "00:45:00", resp.Duration)
}

func TestTimeSlotServiceCreateRejectsZeroDuration(t *testing.T) {
	svc := NewTimeSlotService(&stubTimeSlotRepo{}, nil, nil)

	_, err := svc.Create(context.Background(), dto.TimeSlotRequest{
		Title: "Empty",
		Start: 600,
		Days:  []int{1},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTimeSlotServiceWeekOccurrences(t *testing.T) {
	repo := &stubTimeSlotRepo{slots: []models.TimeSlot{{
		ID:       7,
		Title:    "Morning run",
		Start:    models.TimeOfDay(6 * 60),
		Duration: models.Duration{Minutes: 45},
		Days:     []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		Color:    "#22aa44",
	}}}
	svc := NewTimeSlotService(repo, nil, nil)

	// Week of Sunday 2024-03-03.
	occurrences, err := svc.WeekOccurrences(context.Background(), testMonday(12, 0))
	require.NoError(t, err)
	require.Len(t, occurrences, 3)

	assert.Equal(t, time.Date(2024, time.March, 4, 6, 0, 0, 0, time.UTC), occurrences[0].Start)
	assert.Equal(t, time.Date(2024, time.March, 4, 6, 45, 0, 0, time.UTC), occurrences[0].End)
	assert.Equal(t, time.Date(2024, time.March, 6, 6, 0, 0, 0, time.UTC), occurrences[1].Start)
	assert.Equal(t, time.Date(2024, time.March, 8, 6, 0, 0, 0, time.UTC), occurrences[2].Start)
	assert.Equal(t, int64(7), occurrences[0].SlotID)
}

func TestTimeSlotServiceUpdate(t *testing.T) {
	repo := &stubTimeSlotRepo{slots: []models.TimeSlot{{
		ID:       3,
		Title:    "Morning run",
		Start:    models.TimeOfDay(6 * 60),
		Duration: models.Duration{Minutes: 45},
		Days:     []time.Weekday{time.Monday},
	}}}
	svc := NewTimeSlotService(repo, nil, nil)

	resp, err := svc.Update(context.Background(), 3, dto.TimeSlotRequest{
		Title:    "Evening run",
		Start:    18 * 60,
		Duration: models.Duration{Minutes: 30},
		Days:     []int{2, 4},
		Color:    "#112233",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.ID)
	assert.Equal(t, "18:00", resp.Start)
	assert.Equal(t, "Evening run", repo.slots[0].Title)
}

func TestTimeSlotServiceUpdateMissing(t *testing.T) {
	svc := NewTimeSlotService(&stubTimeSlotRepo{}, nil, nil)

	_, err := svc.Update(context.Background(), 9, dto.TimeSlotRequest{
		Title:    "Ghost",
		Start:    600,
		Duration: models.Duration{Minutes: 15},
		Days:     []int{1},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTimeSlotServiceDeleteMissing(t *testing.T) {
	svc := NewTimeSlotService(&stubTimeSlotRepo{}, nil, nil)

	err := svc.Delete(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
