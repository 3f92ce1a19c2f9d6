package models

import "time"

// TimeUnit is the repeat unit of a watering reminder.
type TimeUnit string

const (
	UnitMinutes TimeUnit = "minutes"
	UnitHours   TimeUnit = "hours"
	UnitDays    TimeUnit = "days"
	UnitWeeks   TimeUnit = "weeks"
)

// ReminderSchedule is the single JSON blob persisted per plant under the
// reminder_<plantId> key. NotificationID is an opaque handle owned by the
// notification subsystem, stored only to support cancellation.
// NextNotification is a display hint computed once at schedule time, not
// re-derived after each firing.
type ReminderSchedule struct {
	NotificationID   string    `json:"notificationId"`
	Interval         int       `json:"interval"`
	TimeUnit         TimeUnit  `json:"timeUnit"`
	Time             time.Time `json:"time"`
	NextNotification time.Time `json:"nextNotification"`
}
