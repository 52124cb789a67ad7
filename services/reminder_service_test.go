package services

import (
	"errors"
	"testing"
	"time"

	"diabkit/models"
)

func TestValidateReminderInput(t *testing.T) {
	cases := []struct {
		name string
		in   ReminderInput
		want error
	}{
		{"valid meal", ReminderInput{Kind: "meal", Time: "07:30"}, nil},
		{"valid medication", ReminderInput{Kind: "medication", Time: "23:59"}, nil},
		{"midnight", ReminderInput{Kind: "meal", Time: "00:00"}, nil},
		{"unknown kind", ReminderInput{Kind: "exercise", Time: "07:30"}, ErrInvalidReminderKind},
		{"missing leading zero", ReminderInput{Kind: "meal", Time: "7:30"}, ErrInvalidReminderTime},
		{"hour overflow", ReminderInput{Kind: "meal", Time: "24:00"}, ErrInvalidReminderTime},
		{"minute overflow", ReminderInput{Kind: "meal", Time: "12:60"}, ErrInvalidReminderTime},
		{"free text", ReminderInput{Kind: "meal", Time: "noon"}, ErrInvalidReminderTime},
	}
	for _, tc := range cases {
		if err := ValidateReminderInput(tc.in); !errors.Is(err, tc.want) {
			t.Errorf("%s: ValidateReminderInput() = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestSeedRemindersIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	const userID = 1

	if err := SeedReminders(userID); err != nil {
		t.Fatalf("SeedReminders() error: %v", err)
	}
	if err := SeedReminders(userID); err != nil {
		t.Fatalf("second SeedReminders() error: %v", err)
	}

	var count int64
	db.Model(&models.Reminder{}).Where("user_id = ?", userID).Count(&count)
	if count != int64(len(DefaultReminders)) {
		t.Fatalf("seeded %d reminders, want %d", count, len(DefaultReminders))
	}
}

func TestReminderCRUDScopedToUser(t *testing.T) {
	setupTestDB(t)

	r, err := CreateReminder(1, ReminderInput{Kind: "medication", Name: "metformin", Time: "08:00", Active: true})
	if err != nil {
		t.Fatalf("CreateReminder() error: %v", err)
	}

	// another user cannot see, update or delete it
	if _, err := UpdateReminder(2, r.ID, ReminderInput{Kind: "medication", Name: "x", Time: "09:00"}); !errors.Is(err, ErrReminderNotFound) {
		t.Fatalf("UpdateReminder() as another user = %v, want ErrReminderNotFound", err)
	}
	if err := DeleteReminder(2, r.ID); !errors.Is(err, ErrReminderNotFound) {
		t.Fatalf("DeleteReminder() as another user = %v, want ErrReminderNotFound", err)
	}

	updated, err := UpdateReminder(1, r.ID, ReminderInput{Kind: "medication", Name: "metformin", Time: "20:00", Active: false})
	if err != nil {
		t.Fatalf("UpdateReminder() error: %v", err)
	}
	if updated.Time != "20:00" || updated.Active {
		t.Fatalf("UpdateReminder() = %+v, want 20:00 inactive", updated)
	}

	if err := DeleteReminder(1, r.ID); err != nil {
		t.Fatalf("DeleteReminder() error: %v", err)
	}
	list, err := ListReminders(1)
	if err != nil {
		t.Fatalf("ListReminders() error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("reminder survived deletion: %+v", list)
	}
}

func TestDueRemindersMatchesActiveAtMinute(t *testing.T) {
	setupTestDB(t)

	if _, err := CreateReminder(1, ReminderInput{Kind: "meal", Name: "lunch", Time: "12:00", Active: true}); err != nil {
		t.Fatalf("CreateReminder() error: %v", err)
	}
	if _, err := CreateReminder(1, ReminderInput{Kind: "meal", Name: "dinner", Time: "18:30", Active: true}); err != nil {
		t.Fatalf("CreateReminder() error: %v", err)
	}
	if _, err := CreateReminder(1, ReminderInput{Kind: "medication", Name: "paused", Time: "12:00", Active: false}); err != nil {
		t.Fatalf("CreateReminder() error: %v", err)
	}

	noon := time.Date(2026, 8, 28, 12, 0, 30, 0, time.Local)
	due, err := DueReminders(noon)
	if err != nil {
		t.Fatalf("DueReminders() error: %v", err)
	}
	if len(due) != 1 || due[0].Name != "lunch" {
		t.Fatalf("DueReminders(12:00) = %+v, want just lunch", due)
	}

	due, err = DueReminders(time.Date(2026, 8, 28, 15, 15, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("DueReminders() error: %v", err)
	}
	if len(due) != 0 {
		t.Fatalf("DueReminders(15:15) = %+v, want none", due)
	}
}

func TestReminderMessage(t *testing.T) {
	med := reminderMessage(models.Reminder{Kind: models.ReminderMedication, Name: "metformin", Time: "08:00"})
	if med != "Time to take metformin (08:00)" {
		t.Errorf("medication message = %q", med)
	}
	meal := reminderMessage(models.Reminder{Kind: models.ReminderMeal, Name: "lunch", Time: "12:00"})
	if meal != "Time for lunch, remember to log your meal" {
		t.Errorf("meal message = %q", meal)
	}
}
