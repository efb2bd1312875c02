package mail

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hidecraft/hidecraft-manager/internal/dependency"
	"github.com/hidecraft/hidecraft-manager/internal/entity"
)

type fakeSender struct {
	sent []entity.SendEmailRequest
	fail bool
}

func (f *fakeSender) Send(ctx context.Context, ser *entity.SendEmailRequest) error {
	if f.fail {
		return fmt.Errorf("transport down")
	}
	f.sent = append(f.sent, *ser)
	return nil
}

type fakeMailRepo struct {
	rows map[int]*entity.SendEmailRequest
	next int
}

func (f *fakeMailRepo) AddMail(ctx context.Context, ser *entity.SendEmailRequest) (int, error) {
	f.next++
	cp := *ser
	f.rows[f.next] = &cp
	return f.next, nil
}

func (f *fakeMailRepo) UpdateSent(ctx context.Context, id int) error {
	f.rows[id].Sent = true
	return nil
}

func (f *fakeMailRepo) AddError(ctx context.Context, id int, errMsg string) error {
	f.rows[id].ErrorMsg = sql.NullString{String: errMsg, Valid: true}
	return nil
}

type fakeRepo struct {
	dependency.Repository
	mails *fakeMailRepo
}

func (f *fakeRepo) Mail() dependency.Mail {
	return f.mails
}

func newTestMailer(t *testing.T, sender dependency.Sender) *Mailer {
	m, err := New(&Config{
		APIKey:     "key",
		FromEmail:  "noreply@hidecraft.test",
		FromName:   "Hidecraft",
		ReplyTo:    "sales@hidecraft.test",
		StaffEmail: "staff@hidecraft.test",
	}, sender)
	require.NoError(t, err)
	return m
}

func testMeeting() *entity.MeetingRequest {
	return &entity.MeetingRequest{
		Id:       1,
		Status:   entity.MeetingStatusScheduled,
		MeetLink: sql.NullString{String: "https://meet.google.com/abc-defg-hij", Valid: true},
		MeetingRequestInsert: entity.MeetingRequestInsert{
			Name:        "Jane",
			Email:       "jane@acme.com",
			Company:     "Acme",
			MeetingType: entity.MeetingTypeConsultation,
			MeetingMode: entity.MeetingModeVideo,
			Date:        time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC),
			TimeSlot:    "10:00 AM",
			Timezone:    "America/New_York",
		},
	}
}

func TestNotifyMeeting(t *testing.T) {
	sender := &fakeSender{}
	m := newTestMailer(t, sender)
	rep := &fakeRepo{mails: &fakeMailRepo{rows: map[int]*entity.SendEmailRequest{}}}

	outcome := m.NotifyMeeting(context.Background(), rep, testMeeting())
	assert.True(t, outcome.RequesterSent)
	assert.True(t, outcome.StaffSent)

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "jane@acme.com", sender.sent[0].To)
	assert.Contains(t, sender.sent[0].Html, "https://meet.google.com/abc-defg-hij")
	assert.Equal(t, "staff@hidecraft.test", sender.sent[1].To)

	for _, row := range rep.mails.rows {
		assert.True(t, row.Sent)
	}
}

func TestNotifyMeetingTransportDown(t *testing.T) {
	sender := &fakeSender{fail: true}
	m := newTestMailer(t, sender)
	rep := &fakeRepo{mails: &fakeMailRepo{rows: map[int]*entity.SendEmailRequest{}}}

	// dispatch must absorb the failure, never panic or error out
	outcome := m.NotifyMeeting(context.Background(), rep, testMeeting())
	assert.False(t, outcome.RequesterSent)
	assert.False(t, outcome.StaffSent)

	// failed rows keep their error message and stay unsent
	require.Len(t, rep.mails.rows, 2)
	for _, row := range rep.mails.rows {
		assert.False(t, row.Sent)
		assert.True(t, row.ErrorMsg.Valid)
	}
}

func TestNotifyOrderStatusGoesToBuyerOnly(t *testing.T) {
	sender := &fakeSender{}
	m := newTestMailer(t, sender)
	rep := &fakeRepo{mails: &fakeMailRepo{rows: map[int]*entity.SendEmailRequest{}}}

	order := &entity.Order{
		UUID:   "ord-1",
		Status: entity.OrderStatusShipped,
		OrderInsert: entity.OrderInsert{
			Name:  "Jane",
			Email: "jane@acme.com",
		},
	}

	outcome := m.NotifyOrderStatus(context.Background(), rep, order)
	assert.True(t, outcome.RequesterSent)
	assert.False(t, outcome.StaffSent)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "jane@acme.com", sender.sent[0].To)
}

func TestBuildSendMailRequest(t *testing.T) {
	m := newTestMailer(t, &fakeSender{})

	ser, err := m.buildSendMailRequest("to@acme.com", InquiryConfirmed, &entity.InquiryRequest{
		InquiryRequestInsert: entity.InquiryRequestInsert{
			Name:        "John",
			Email:       "to@acme.com",
			InquiryType: entity.InquiryTypeBulk,
			Message:     "bulk quote please",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "We received your inquiry", ser.Subject)
	assert.Contains(t, ser.Html, "John")

	_, err = m.buildSendMailRequest("to@acme.com", "missing.gohtml", nil)
	assert.Error(t, err)
}
