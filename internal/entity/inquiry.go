package entity

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

type InquiryType string

const (
	InquiryTypeBulk        InquiryType = "bulk"
	InquiryTypeSample      InquiryType = "sample"
	InquiryTypeGeneral     InquiryType = "general"
	InquiryTypePartnership InquiryType = "partnership"
	InquiryTypeSupport     InquiryType = "support"
)

type InquirySource string

const (
	InquirySourceContactForm       InquirySource = "contact-form"
	InquirySourceProductPage       InquirySource = "product-page"
	InquirySourceCustomizationForm InquirySource = "customization-form"
)

type InquiryStatus string

const (
	InquiryStatusNew       InquiryStatus = "new"
	InquiryStatusContacted InquiryStatus = "contacted"
	InquiryStatusQuoted    InquiryStatus = "quoted"
	InquiryStatusConverted InquiryStatus = "converted"
	InquiryStatusClosed    InquiryStatus = "closed"
)

// inquiryStatusRank orders the lifecycle; staff can only move forward.
var inquiryStatusRank = map[InquiryStatus]int{
	InquiryStatusNew:       0,
	InquiryStatusContacted: 1,
	InquiryStatusQuoted:    2,
	InquiryStatusConverted: 3,
	InquiryStatusClosed:    4,
}

var validInquiryTypes = map[InquiryType]bool{
	InquiryTypeBulk:        true,
	InquiryTypeSample:      true,
	InquiryTypeGeneral:     true,
	InquiryTypePartnership: true,
	InquiryTypeSupport:     true,
}

var validInquirySources = map[InquirySource]bool{
	InquirySourceContactForm:       true,
	InquirySourceProductPage:       true,
	InquirySourceCustomizationForm: true,
}

type InquiryRequest struct {
	Id         int           `db:"id"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
	Status     InquiryStatus `db:"status"`
	LinkingKey string        `db:"linking_key"`
	InquiryRequestInsert
}

type InquiryRequestInsert struct {
	Name            string        `db:"name"`
	Email           string        `db:"email"`
	Company         string        `db:"company"`
	Phone           string        `db:"phone"`
	InquiryType     InquiryType   `db:"inquiry_type"`
	InquirySource   InquirySource `db:"inquiry_source"`
	ProductInterest string        `db:"product_interest"`
	ProductId       sql.NullInt32 `db:"product_id"`
	Message         string        `db:"message"`
	Customization   *CustomizationDetails
	SampleItems     []SampleItem
}

// CustomizationDetails is the structured payload of the customization form.
type CustomizationDetails struct {
	Id         int    `db:"id"`
	CustomType string `db:"custom_type"`
	Quantity   int    `db:"quantity"`
	Budget     string `db:"budget"`
	Timeline   string `db:"timeline"`
}

type InquiryFilters struct {
	Status      *InquiryStatus
	InquiryType *InquiryType
	Email       string
	DateFrom    *time.Time
	DateTo      *time.Time
}

func ValidateInquiryRequestInsert(i *InquiryRequestInsert) error {
	i.Name = strings.TrimSpace(i.Name)
	i.Email = strings.TrimSpace(i.Email)
	i.Company = strings.TrimSpace(i.Company)
	i.Phone = strings.TrimSpace(i.Phone)
	i.Message = strings.TrimSpace(i.Message)
	i.ProductInterest = strings.TrimSpace(i.ProductInterest)

	if i.Name == "" {
		return &ValidationError{Message: "name is required"}
	}
	if i.Email == "" {
		return &ValidationError{Message: "email is required"}
	}
	if !isValidEmail(i.Email) {
		return &ValidationError{Message: "invalid email format"}
	}
	if !validInquiryTypes[i.InquiryType] {
		return &ValidationError{Message: fmt.Sprintf("invalid inquiry type: %s", i.InquiryType)}
	}
	if !validInquirySources[i.InquirySource] {
		return &ValidationError{Message: fmt.Sprintf("invalid inquiry source: %s", i.InquirySource)}
	}
	if i.Message == "" {
		return &ValidationError{Message: "message is required"}
	}
	if len(i.Message) > 5000 {
		return &ValidationError{Message: "message must not exceed 5000 characters"}
	}
	if i.Customization != nil {
		if i.Customization.CustomType == "" {
			return &ValidationError{Message: "customization type is required"}
		}
		if i.Customization.Quantity < 0 {
			return &ValidationError{Message: "customization quantity must not be negative"}
		}
	}
	for _, si := range i.SampleItems {
		if strings.TrimSpace(si.ProductName) == "" {
			return &ValidationError{Message: "sample item product name is required"}
		}
		if si.Quantity <= 0 {
			return &ValidationError{Message: "sample item quantity must be positive"}
		}
	}
	return nil
}

// CanTransitionInquiryStatus reports whether a staff update moves the status
// forward through the lifecycle. Equal or backwards moves are rejected.
func CanTransitionInquiryStatus(from, to InquiryStatus) bool {
	fromRank, ok := inquiryStatusRank[from]
	if !ok {
		return false
	}
	toRank, ok := inquiryStatusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}
