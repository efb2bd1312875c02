package entity

import "github.com/asaskevich/govalidator"

// ValidationError marks request payload errors so the transport layer can
// answer with a client error instead of a server error.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func isValidEmail(email string) bool {
	return govalidator.IsEmail(email)
}

// OrderFactor is the sort direction for paged listings.
type OrderFactor string

const (
	Ascending  OrderFactor = "ASC"
	Descending OrderFactor = "DESC"
)
