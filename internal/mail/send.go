package mail

import (
	"context"

	"github.com/hidecraft/hidecraft-manager/internal/dependency"
	"github.com/hidecraft/hidecraft-manager/internal/entity"
)

const (
	MeetingConfirmed  = "meeting_confirmed.gohtml"
	MeetingStaffAlert = "meeting_staff_alert.gohtml"
	InquiryConfirmed  = "inquiry_confirmed.gohtml"
	InquiryStaffAlert = "inquiry_staff_alert.gohtml"
	OrderConfirmed    = "order_confirmed.gohtml"
	OrderStaffAlert   = "order_staff_alert.gohtml"
	OrderStatusUpdate = "order_status_update.gohtml"
)

var templateSubjects = map[string]string{
	MeetingConfirmed:  "Your meeting with Hidecraft is booked",
	MeetingStaffAlert: "New meeting request",
	InquiryConfirmed:  "We received your inquiry",
	InquiryStaffAlert: "New inquiry",
	OrderConfirmed:    "Your sample order has been placed",
	OrderStaffAlert:   "New sample order",
	OrderStatusUpdate: "Your sample order status changed",
}

// NotifyMeeting notifies the requester and the sales staff about a booked
// meeting. Requester and staff sends are independent: either may fail
// without affecting the other or the booking itself.
func (m *Mailer) NotifyMeeting(ctx context.Context, rep dependency.Repository, mr *entity.MeetingRequest) entity.NotificationOutcome {
	data := struct {
		*entity.MeetingRequest
		MeetLink string
	}{
		MeetingRequest: mr,
		MeetLink:       mr.MeetLink.String,
	}

	return entity.NotificationOutcome{
		RequesterSent: m.dispatch(ctx, rep, mr.Email, MeetingConfirmed, data),
		StaffSent:     m.dispatch(ctx, rep, m.c.StaffEmail, MeetingStaffAlert, data),
	}
}

// NotifyInquiry notifies the requester and the sales staff about a new inquiry.
func (m *Mailer) NotifyInquiry(ctx context.Context, rep dependency.Repository, i *entity.InquiryRequest) entity.NotificationOutcome {
	return entity.NotificationOutcome{
		RequesterSent: m.dispatch(ctx, rep, i.Email, InquiryConfirmed, i),
		StaffSent:     m.dispatch(ctx, rep, m.c.StaffEmail, InquiryStaffAlert, i),
	}
}

// NotifyOrder confirms a placed sample order to the buyer and alerts staff.
func (m *Mailer) NotifyOrder(ctx context.Context, rep dependency.Repository, o *entity.Order) entity.NotificationOutcome {
	return entity.NotificationOutcome{
		RequesterSent: m.dispatch(ctx, rep, o.Email, OrderConfirmed, o),
		StaffSent:     m.dispatch(ctx, rep, m.c.StaffEmail, OrderStaffAlert, o),
	}
}

// NotifyOrderStatus tells the buyer their order moved to a new status.
// Staff already drive the status change, so there is no staff leg and
// StaffSent stays false.
func (m *Mailer) NotifyOrderStatus(ctx context.Context, rep dependency.Repository, o *entity.Order) entity.NotificationOutcome {
	return entity.NotificationOutcome{
		RequesterSent: m.dispatch(ctx, rep, o.Email, OrderStatusUpdate, o),
	}
}
