package services

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"diabkit/config"
	"diabkit/models"
)

var (
	ErrInvalidReminderKind = errors.New("reminder kind must be meal or medication")
	ErrInvalidReminderTime = errors.New("reminder time must be HH:MM")
	ErrReminderNotFound    = errors.New("reminder not found")
)

var timeOfDayRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// DefaultReminders seeds a new account with the standard meal slots.
var DefaultReminders = []models.Reminder{
	{Kind: models.ReminderMeal, Name: "breakfast", Time: "07:30", Active: true},
	{Kind: models.ReminderMeal, Name: "lunch", Time: "12:00", Active: true},
	{Kind: models.ReminderMeal, Name: "dinner", Time: "18:30", Active: true},
}

func SeedReminders(userID uint) error {
	var count int64
	if err := config.DB.Model(&models.Reminder{}).
		Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, r := range DefaultReminders {
		r.UserID = userID
		if err := config.DB.Create(&r).Error; err != nil {
			return err
		}
	}
	return nil
}

func ListReminders(userID uint) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := config.DB.
		Where("user_id = ?", userID).
		Order("time ASC").
		Find(&reminders).Error
	return reminders, err
}

type ReminderInput struct {
	Kind   string `json:"kind"`
	Name   string `json:"name"`
	Time   string `json:"time"`
	Active bool   `json:"active"`
}

func ValidateReminderInput(in ReminderInput) error {
	if in.Kind != models.ReminderMeal && in.Kind != models.ReminderMedication {
		return ErrInvalidReminderKind
	}
	if !timeOfDayRe.MatchString(in.Time) {
		return ErrInvalidReminderTime
	}
	return nil
}

func CreateReminder(userID uint, in ReminderInput) (*models.Reminder, error) {
	if err := ValidateReminderInput(in); err != nil {
		return nil, err
	}
	r := &models.Reminder{
		UserID: userID,
		Kind:   in.Kind,
		Name:   in.Name,
		Time:   in.Time,
		Active: in.Active,
	}
	if err := config.DB.Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

func UpdateReminder(userID, reminderID uint, in ReminderInput) (*models.Reminder, error) {
	if err := ValidateReminderInput(in); err != nil {
		return nil, err
	}
	var r models.Reminder
	if err := config.DB.
		Where("id = ? AND user_id = ?", reminderID, userID).
		First(&r).Error; err != nil {
		return nil, ErrReminderNotFound
	}
	r.Kind = in.Kind
	r.Name = in.Name
	r.Time = in.Time
	r.Active = in.Active
	if err := config.DB.Save(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func DeleteReminder(userID, reminderID uint) error {
	res := config.DB.
		Where("id = ? AND user_id = ?", reminderID, userID).
		Delete(&models.Reminder{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrReminderNotFound
	}
	return nil
}

// DueReminders returns the active reminders matching the given
// wall-clock minute.
func DueReminders(at time.Time) ([]models.Reminder, error) {
	hhmm := at.Format("15:04")
	var due []models.Reminder
	err := config.DB.
		Where("active = ? AND time = ?", true, hhmm).
		Find(&due).Error
	return due, err
}

// RunReminderLoop fires due reminders once a minute until the stop
// channel closes. Alerts go through the alert bus, so each delivery is
// a DB row, a websocket event and a push.
func RunReminderLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			due, err := DueReminders(now)
			if err != nil {
				continue
			}
			for _, r := range due {
				msg := reminderMessage(r)
				EmitAlert(r.UserID, "reminder."+r.Kind, msg)
			}
		}
	}
}

func reminderMessage(r models.Reminder) string {
	if r.Kind == models.ReminderMedication {
		return fmt.Sprintf("Time to take %s (%s)", r.Name, r.Time)
	}
	return fmt.Sprintf("Time for %s, remember to log your meal", r.Name)
}
