package entity

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

type MeetingType string

const (
	MeetingTypeConsultation MeetingType = "consultation"
	MeetingTypeProduct      MeetingType = "product"
	MeetingTypeCustom       MeetingType = "custom"
	MeetingTypeSamples      MeetingType = "samples"
	MeetingTypePartnership  MeetingType = "partnership"
)

type MeetingMode string

const (
	MeetingModeVideo    MeetingMode = "video"
	MeetingModePhone    MeetingMode = "phone"
	MeetingModeWhatsapp MeetingMode = "whatsapp"
	MeetingModeInPerson MeetingMode = "inperson"
)

type MeetingStatus string

const (
	MeetingStatusScheduled MeetingStatus = "scheduled"
	MeetingStatusCompleted MeetingStatus = "completed"
	MeetingStatusCancelled MeetingStatus = "cancelled"
)

var validMeetingTypes = map[MeetingType]bool{
	MeetingTypeConsultation: true,
	MeetingTypeProduct:      true,
	MeetingTypeCustom:       true,
	MeetingTypeSamples:      true,
	MeetingTypePartnership:  true,
}

var validMeetingModes = map[MeetingMode]bool{
	MeetingModeVideo:    true,
	MeetingModePhone:    true,
	MeetingModeWhatsapp: true,
	MeetingModeInPerson: true,
}

// MeetingTimeSlots is the fixed half-hour grid offered by the booking form,
// business hours of the showroom.
var MeetingTimeSlots = []string{
	"09:00 AM", "09:30 AM", "10:00 AM", "10:30 AM",
	"11:00 AM", "11:30 AM", "12:00 PM", "12:30 PM",
	"01:00 PM", "01:30 PM", "02:00 PM", "02:30 PM",
	"03:00 PM", "03:30 PM", "04:00 PM", "04:30 PM",
	"05:00 PM", "05:30 PM",
}

func IsValidMeetingTimeSlot(slot string) bool {
	for _, s := range MeetingTimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

type MeetingRequest struct {
	Id                int            `db:"id"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
	Status            MeetingStatus  `db:"status"`
	LinkingKey        string         `db:"linking_key"`
	MeetLink          sql.NullString `db:"meet_link"`
	CalendarEventId   sql.NullString `db:"calendar_event_id"`
	RequesterNotified bool           `db:"requester_notified"`
	StaffNotified     bool           `db:"staff_notified"`
	MeetingRequestInsert
}

type MeetingRequestInsert struct {
	Name        string      `db:"name"`
	Email       string      `db:"email"`
	Company     string      `db:"company"`
	Phone       string      `db:"phone"`
	MeetingType MeetingType `db:"meeting_type"`
	MeetingMode MeetingMode `db:"meeting_mode"`
	Date        time.Time   `db:"meeting_date"`
	TimeSlot    string      `db:"time_slot"`
	Timezone    string      `db:"timezone"`
	Message     string      `db:"message"`
	SampleItems []SampleItem
}

// SampleItem is a sample-cart line referenced from a meeting or inquiry.
type SampleItem struct {
	Id          int    `db:"id"`
	ProductName string `db:"product_name"`
	Quantity    int    `db:"quantity"`
}

type MeetingFilters struct {
	Status      *MeetingStatus
	MeetingType *MeetingType
	Email       string
	DateFrom    *time.Time
	DateTo      *time.Time
}

func ValidateMeetingRequestInsert(m *MeetingRequestInsert) error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Company = strings.TrimSpace(m.Company)
	m.Phone = strings.TrimSpace(m.Phone)
	m.Message = strings.TrimSpace(m.Message)

	if m.Name == "" {
		return &ValidationError{Message: "name is required"}
	}
	if m.Email == "" {
		return &ValidationError{Message: "email is required"}
	}
	if !isValidEmail(m.Email) {
		return &ValidationError{Message: "invalid email format"}
	}
	if !validMeetingTypes[m.MeetingType] {
		return &ValidationError{Message: fmt.Sprintf("invalid meeting type: %s", m.MeetingType)}
	}
	if !validMeetingModes[m.MeetingMode] {
		return &ValidationError{Message: fmt.Sprintf("invalid meeting mode: %s", m.MeetingMode)}
	}
	if m.Date.IsZero() {
		return &ValidationError{Message: "date is required"}
	}
	if !IsValidMeetingTimeSlot(m.TimeSlot) {
		return &ValidationError{Message: fmt.Sprintf("invalid time slot: %s", m.TimeSlot)}
	}
	if m.Timezone != "" {
		if _, err := time.LoadLocation(m.Timezone); err != nil {
			return &ValidationError{Message: fmt.Sprintf("invalid timezone: %s", m.Timezone)}
		}
	}
	if len(m.Message) > 5000 {
		return &ValidationError{Message: "message must not exceed 5000 characters"}
	}
	for _, si := range m.SampleItems {
		if strings.TrimSpace(si.ProductName) == "" {
			return &ValidationError{Message: "sample item product name is required"}
		}
		if si.Quantity <= 0 {
			return &ValidationError{Message: "sample item quantity must be positive"}
		}
	}
	return nil
}

// CanTransitionMeetingStatus reports whether a staff update from one status
// to another is allowed. Completed and cancelled are terminal.
func CanTransitionMeetingStatus(from, to MeetingStatus) bool {
	if from != MeetingStatusScheduled {
		return false
	}
	return to == MeetingStatusCompleted || to == MeetingStatusCancelled
}
