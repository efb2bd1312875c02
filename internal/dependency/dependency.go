package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/hidecraft/hidecraft-manager/internal/entity"
	"github.com/jmoiron/sqlx"
)

type (
	ContextStore interface {
		Tx(ctx context.Context, fn func(ctx context.Context, store Repository) error) error
	}

	Products interface {
		AddProduct(ctx context.Context, prd *entity.ProductInsert) (int, error)
		UpdateProduct(ctx context.Context, id int, prd *entity.ProductInsert) error
		GetProductsPaged(ctx context.Context, limit, offset int, orderFactor entity.OrderFactor, filters entity.ProductFilters, showHidden bool) ([]entity.Product, int, error)
		GetProductById(ctx context.Context, id int) (*entity.ProductFull, error)
		GetProductBySlug(ctx context.Context, slug string) (*entity.ProductFull, error)
		DeleteProductById(ctx context.Context, id int) error
		SetProductHidden(ctx context.Context, id int, hidden bool) error
		SetProductThumbnail(ctx context.Context, id int, mediaId int) error
		SetProductMedia(ctx context.Context, id int, mediaIds []int) error
	}

	Categories interface {
		AddCategory(ctx context.Context, c *entity.CategoryInsert) (int, error)
		UpdateCategory(ctx context.Context, id int, c *entity.CategoryInsert) error
		ListCategories(ctx context.Context) ([]entity.Category, error)
		GetCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error)
		DeleteCategoryById(ctx context.Context, id int) error
	}

	Meetings interface {
		AddMeetingRequest(ctx context.Context, m *entity.MeetingRequestInsert, linkingKey string, meetLink, calendarEventId *string) (int, error)
		GetMeetingRequestById(ctx context.Context, id int) (entity.MeetingRequest, error)
		// GetMeetingRequestsMine matches by linking key or stored email so
		// both pre- and post-reconciliation records are found, soonest first.
		GetMeetingRequestsMine(ctx context.Context, linkingKey, email string) ([]entity.MeetingRequest, error)
		GetMeetingRequestsPaged(ctx context.Context, limit, offset int, orderFactor entity.OrderFactor, filters entity.MeetingFilters) ([]entity.MeetingRequest, int, error)
		UpdateMeetingStatus(ctx context.Context, id int, status entity.MeetingStatus) error
		SetMeetingNotified(ctx context.Context, id int, outcome entity.NotificationOutcome) error
		// RelinkGuestMeetingRequests rewrites the linking key of records whose
		// stored email matches but whose key is still the guest surrogate.
		// Idempotent; returns the number of migrated rows.
		RelinkGuestMeetingRequests(ctx context.Context, email, userId string) (int, error)
	}

	Inquiries interface {
		AddInquiryRequest(ctx context.Context, i *entity.InquiryRequestInsert, linkingKey string) (int, error)
		GetInquiryRequestById(ctx context.Context, id int) (entity.InquiryRequest, error)
		GetInquiryRequestsMine(ctx context.Context, linkingKey, email string) ([]entity.InquiryRequest, error)
		GetInquiryRequestsPaged(ctx context.Context, limit, offset int, orderFactor entity.OrderFactor, filters entity.InquiryFilters) ([]entity.InquiryRequest, int, error)
		UpdateInquiryStatus(ctx context.Context, id int, status entity.InquiryStatus) error
		RelinkGuestInquiryRequests(ctx context.Context, email, userId string) (int, error)
	}

	Orders interface {
		CreateOrder(ctx context.Context, o *entity.OrderInsert, linkingKey string) (*entity.Order, error)
		GetOrderByUUID(ctx context.Context, uuid string) (*entity.Order, error)
		GetOrdersMine(ctx context.Context, linkingKey, email string) ([]entity.Order, error)
		GetOrdersPaged(ctx context.Context, limit, offset int, orderFactor entity.OrderFactor, filters entity.OrderFilters) ([]entity.Order, int, error)
		UpdateOrderStatus(ctx context.Context, uuid string, status entity.OrderStatus) error
		RelinkGuestOrders(ctx context.Context, email, userId string) (int, error)
	}

	Carts interface {
		GetCartItems(ctx context.Context, userId string) ([]entity.CartItem, error)
		ReplaceCartItems(ctx context.Context, userId string, items []entity.CartItem) error
	}

	Testimonials interface {
		AddTestimonial(ctx context.Context, t *entity.TestimonialInsert) (int, error)
		UpdateTestimonial(ctx context.Context, id int, t *entity.TestimonialInsert) error
		ListTestimonials(ctx context.Context, publishedOnly bool) ([]entity.Testimonial, error)
		DeleteTestimonialById(ctx context.Context, id int) error
	}

	Media interface {
		AddMedia(ctx context.Context, media *entity.MediaInsert) (int, error)
		DeleteMediaById(ctx context.Context, id int) error
		ListMediaPaged(ctx context.Context, limit, offset int, orderFactor entity.OrderFactor) ([]entity.MediaFull, int, error)
	}

	Admin interface {
		AddAdmin(ctx context.Context, un, pwHash string) error
		DeleteAdmin(ctx context.Context, username string) error
		ChangePassword(ctx context.Context, un, newHash string) error
		PasswordHashByUsername(ctx context.Context, un string) (string, error)
	}

	Users interface {
		// UpsertUser creates or refreshes the account for a provider identity
		// and returns it with the stable id populated.
		UpsertUser(ctx context.Context, providerId, email, name, avatarURL string) (*entity.User, error)
		GetUserById(ctx context.Context, id string) (*entity.User, error)
		GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	}

	Mail interface {
		AddMail(ctx context.Context, ser *entity.SendEmailRequest) (int, error)
		UpdateSent(ctx context.Context, id int) error
		AddError(ctx context.Context, id int, errMsg string) error
	}

	Repository interface {
		Products() Products
		Categories() Categories
		Meetings() Meetings
		Inquiries() Inquiries
		Orders() Orders
		Carts() Carts
		Testimonials() Testimonials
		Media() Media
		Admin() Admin
		Users() Users
		Mail() Mail
		Tx(ctx context.Context, f func(context.Context, Repository) error) error
		TxBegin(ctx context.Context) (Repository, error)
		TxCommit(ctx context.Context) error
		TxRollback(ctx context.Context) error
		Now() time.Time
		InTx() bool
		Close()
		IsErrUniqueViolation(err error) bool
		IsErrorRepeat(err error) bool
		DB() DB
	}

	// DB represents database interface.
	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

		// sqlx methods
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
		NamedQuery(query string, arg interface{}) (*sqlx.Rows, error)
		PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
		PreparexContext(ctx context.Context, query string) (*sqlx.Stmt, error)
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}

	// Mailer dispatches transactional mail. Dispatch methods absorb transport
	// failures and report them through the outcome, never through an error.
	Mailer interface {
		NotifyMeeting(ctx context.Context, rep Repository, m *entity.MeetingRequest) entity.NotificationOutcome
		NotifyInquiry(ctx context.Context, rep Repository, i *entity.InquiryRequest) entity.NotificationOutcome
		NotifyOrder(ctx context.Context, rep Repository, o *entity.Order) entity.NotificationOutcome
		NotifyOrderStatus(ctx context.Context, rep Repository, o *entity.Order) entity.NotificationOutcome
	}

	// Sender is the raw mail transport.
	Sender interface {
		Send(ctx context.Context, ser *entity.SendEmailRequest) error
	}

	// EventScheduler books external calendar events for video meetings.
	EventScheduler interface {
		Schedule(ctx context.Context, det MeetingDetails) EventResult
	}

	FileStore interface {
		UploadContentImage(ctx context.Context, rawB64Image, folder, imageName string) (*entity.MediaInsert, error)
		DeleteFromBucket(ctx context.Context, objectKeys []string) error
		GetBaseFolder() string
	}
)

// MeetingDetails carries what the calendar needs to book a slot.
type MeetingDetails struct {
	Name        string
	Email       string
	Company     string
	Date        time.Time
	TimeSlot    string
	Timezone    string
	MeetingType string
	Message     string
}

// EventResult is always usable: when the provider is down the link is a
// locally generated fallback and Fallback is set.
type EventResult struct {
	MeetLink string
	EventId  string
	Fallback bool
}
