package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/hidecraft/hidecraft-manager/internal/dependency"
	"github.com/hidecraft/hidecraft-manager/internal/entity"
	gerr "github.com/hidecraft/hidecraft-manager/internal/errors"
)

type meetingStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Meetings() dependency.Meetings {
	return &meetingStore{
		MYSQLStore: ms,
	}
}

func (s *meetingStore) AddMeetingRequest(ctx context.Context, m *entity.MeetingRequestInsert, linkingKey string, meetLink, calendarEventId *string) (int, error) {
	var id int
	err := s.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		query := `
		INSERT INTO meeting_request (
			status, linking_key, name, email, company, phone,
			meeting_type, meeting_mode, meeting_date, time_slot, timezone,
			message, meet_link, calendar_event_id
		)
		VALUES (
			:status, :linkingKey, :name, :email, :company, :phone,
			:meetingType, :meetingMode, :meetingDate, :timeSlot, :timezone,
			:message, :meetLink, :calendarEventId
		)
		`
		var link, eventId sql.NullString
		if meetLink != nil {
			link = sql.NullString{String: *meetLink, Valid: true}
		}
		if calendarEventId != nil {
			eventId = sql.NullString{String: *calendarEventId, Valid: true}
		}

		mid, err := ExecNamedLastId(ctx, rep.DB(), query, map[string]any{
			"status":          entity.MeetingStatusScheduled,
			"linkingKey":      linkingKey,
			"name":            m.Name,
			"email":           m.Email,
			"company":         m.Company,
			"phone":           m.Phone,
			"meetingType":     m.MeetingType,
			"meetingMode":     m.MeetingMode,
			"meetingDate":     m.Date,
			"timeSlot":        m.TimeSlot,
			"timezone":        m.Timezone,
			"message":         m.Message,
			"meetLink":        link,
			"calendarEventId": eventId,
		})
		if err != nil {
			return fmt.Errorf("can't insert meeting request: %w", err)
		}

		if len(m.SampleItems) > 0 {
			rows := make([]map[string]any, 0, len(m.SampleItems))
			for _, si := range m.SampleItems {
				rows = append(rows, map[string]any{
					"meeting_request_id": mid,
					"product_name":       si.ProductName,
					"quantity":           si.Quantity,
				})
			}
			if err := BulkInsert(ctx, rep.DB(), "meeting_sample_item", rows); err != nil {
				return fmt.Errorf("can't insert meeting sample items: %w", err)
			}
		}

		id = mid
		return nil
	})
	return id, err
}

const meetingSelectColumns = `
	id, created_at, updated_at, status, linking_key, name, email, company, phone,
	meeting_type, meeting_mode, meeting_date, time_slot, timezone, message,
	meet_link, calendar_event_id, requester_notified, staff_notified`

func (s *meetingStore) GetMeetingRequestById(ctx context.Context, id int) (entity.MeetingRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM meeting_request WHERE id = ?`, meetingSelectColumns)

	var m entity.MeetingRequest
	err := s.DB().GetContext(ctx, &m, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.MeetingRequest{}, gerr.ErrNotFound
		}
		return entity.MeetingRequest{}, fmt.Errorf("can't get meeting request: %w", err)
	}

	items, err := s.sampleItems(ctx, []int{m.Id})
	if err != nil {
		return entity.MeetingRequest{}, err
	}
	m.SampleItems = items[m.Id]
	return m, nil
}

func (s *meetingStore) GetMeetingRequestsMine(ctx context.Context, linkingKey, email string) ([]entity.MeetingRequest, error) {
	// slot_time is the generated column parsing time_slot; the raw strings
	// sort lexicographically and would put the PM slots first
	query := fmt.Sprintf(`
		SELECT %s FROM meeting_request
		WHERE linking_key = :linkingKey OR email = :email
		ORDER BY meeting_date ASC, slot_time ASC
	`, meetingSelectColumns)

	meetings, err := QueryListNamed[entity.MeetingRequest](ctx, s.DB(), query, map[string]any{
		"linkingKey": linkingKey,
		"email":      email,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []entity.MeetingRequest{}, nil
		}
		return nil, fmt.Errorf("can't get meeting requests: %w", err)
	}
	return s.attachSampleItems(ctx, meetings)
}

func (s *meetingStore) GetMeetingRequestsPaged(ctx context.Context, limit, offset int, orderFactor entity.OrderFactor, filters entity.MeetingFilters) ([]entity.MeetingRequest, int, error) {
	whereConditions := []string{}
	args := map[string]any{
		"limit":  limit,
		"offset": offset,
	}

	if filters.Status != nil {
		whereConditions = append(whereConditions, "status = :status")
		args["status"] = *filters.Status
	}
	if filters.MeetingType != nil {
		whereConditions = append(whereConditions, "meeting_type = :meetingType")
		args["meetingType"] = *filters.MeetingType
	}
	if filters.Email != "" {
		whereConditions = append(whereConditions, "email LIKE :email")
		args["email"] = "%" + filters.Email + "%"
	}
	if filters.DateFrom != nil {
		whereConditions = append(whereConditions, "meeting_date >= :dateFrom")
		args["dateFrom"] = *filters.DateFrom
	}
	if filters.DateTo != nil {
		whereConditions = append(whereConditions, "meeting_date <= :dateTo")
		args["dateTo"] = *filters.DateTo
	}

	whereClause := ""
	if len(whereConditions) > 0 {
		whereClause = "WHERE " + strings.Join(whereConditions, " AND ")
	}

	orderByClause := "meeting_date DESC, slot_time DESC"
	if orderFactor == entity.Ascending {
		orderByClause = "meeting_date ASC, slot_time ASC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM meeting_request
		%s
		ORDER BY %s
		LIMIT :limit OFFSET :offset
	`, meetingSelectColumns, whereClause, orderByClause)

	meetings, err := QueryListNamed[entity.MeetingRequest](ctx, s.DB(), query, args)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []entity.MeetingRequest{}, 0, nil
		}
		return nil, 0, fmt.Errorf("can't get meeting requests: %w", err)
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM meeting_request %s`, whereClause)
	totalCount, err := QueryCountNamed(ctx, s.DB(), countQuery, args)
	if err != nil {
		return nil, 0, fmt.Errorf("can't get total count: %w", err)
	}

	meetings, err = s.attachSampleItems(ctx, meetings)
	if err != nil {
		return nil, 0, err
	}
	return meetings, totalCount, nil
}

// UpdateMeetingStatus moves a meeting forward in its lifecycle. Scheduled is
// the only status that can be left; completed and cancelled are terminal.
func (s *meetingStore) UpdateMeetingStatus(ctx context.Context, id int, status entity.MeetingStatus) error {
	if !entity.CanTransitionMeetingStatus(entity.MeetingStatusScheduled, status) {
		return gerr.ErrInvalidTransition
	}

	// guard on the current status in the UPDATE itself: last-write-wins is
	// accepted for concurrent staff updates, but terminal statuses stay put.
	query := `
		UPDATE meeting_request
		SET status = :status
		WHERE id = :id AND status = :fromStatus
	`
	n, err := ExecNamedRows(ctx, s.DB(), query, map[string]any{
		"id":         id,
		"status":     status,
		"fromStatus": entity.MeetingStatusScheduled,
	})
	if err != nil {
		return fmt.Errorf("can't update meeting status: %w", err)
	}
	if n == 0 {
		if _, err := s.GetMeetingRequestById(ctx, id); err != nil {
			return err
		}
		return gerr.ErrInvalidTransition
	}
	return nil
}

func (s *meetingStore) SetMeetingNotified(ctx context.Context, id int, outcome entity.NotificationOutcome) error {
	query := `
		UPDATE meeting_request
		SET requester_notified = :requester, staff_notified = :staff
		WHERE id = :id
	`
	err := ExecNamed(ctx, s.DB(), query, map[string]any{
		"id":        id,
		"requester": outcome.RequesterSent,
		"staff":     outcome.StaffSent,
	})
	if err != nil {
		return fmt.Errorf("can't set meeting notified: %w", err)
	}
	return nil
}

// RelinkGuestMeetingRequests migrates guest records to the authenticated
// user's stable id. Once every matching record carries the user id the
// update affects zero rows and the call is a pure read.
func (s *meetingStore) RelinkGuestMeetingRequests(ctx context.Context, email, userId string) (int, error) {
	query := `
		UPDATE meeting_request
		SET linking_key = :userId
		WHERE email = :email AND linking_key != :userId
	`
	n, err := ExecNamedRows(ctx, s.DB(), query, map[string]any{
		"email":  email,
		"userId": userId,
	})
	if err != nil {
		return 0, fmt.Errorf("can't relink guest meeting requests: %w", err)
	}
	return n, nil
}

func (s *meetingStore) sampleItems(ctx context.Context, meetingIds []int) (map[int][]entity.SampleItem, error) {
	if len(meetingIds) == 0 {
		return map[int][]entity.SampleItem{}, nil
	}

	type row struct {
		Id               int    `db:"id"`
		MeetingRequestId int    `db:"meeting_request_id"`
		ProductName      string `db:"product_name"`
		Quantity         int    `db:"quantity"`
	}

	query := `
		SELECT id, meeting_request_id, product_name, quantity
		FROM meeting_sample_item
		WHERE meeting_request_id IN (:ids)
	`
	rows, err := QueryListNamed[row](ctx, s.DB(), query, map[string]any{"ids": meetingIds})
	if err != nil {
		return nil, fmt.Errorf("can't get meeting sample items: %w", err)
	}

	items := make(map[int][]entity.SampleItem, len(meetingIds))
	for _, r := range rows {
		items[r.MeetingRequestId] = append(items[r.MeetingRequestId], entity.SampleItem{
			Id:          r.Id,
			ProductName: r.ProductName,
			Quantity:    r.Quantity,
		})
	}
	return items, nil
}

func (s *meetingStore) attachSampleItems(ctx context.Context, meetings []entity.MeetingRequest) ([]entity.MeetingRequest, error) {
	ids := make([]int, 0, len(meetings))
	for _, m := range meetings {
		ids = append(ids, m.Id)
	}
	items, err := s.sampleItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range meetings {
		meetings[i].SampleItems = items[meetings[i].Id]
	}
	return meetings, nil
}
