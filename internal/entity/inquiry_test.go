package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInquiry() InquiryRequestInsert {
	return InquiryRequestInsert{
		Name:          "Sam Ortiz",
		Email:         "sam@retailgroup.com",
		InquiryType:   InquiryTypeBulk,
		InquirySource: InquirySourceContactForm,
		Message:       "Looking for 500 units of the belt line.",
	}
}

func TestValidateInquiryRequestInsert(t *testing.T) {
	i := validInquiry()
	require.NoError(t, ValidateInquiryRequestInsert(&i))

	i = validInquiry()
	i.Message = ""
	assert.Error(t, ValidateInquiryRequestInsert(&i))

	i = validInquiry()
	i.InquiryType = "urgent"
	assert.Error(t, ValidateInquiryRequestInsert(&i))

	i = validInquiry()
	i.InquirySource = "carrier-pigeon"
	assert.Error(t, ValidateInquiryRequestInsert(&i))

	i = validInquiry()
	i.Customization = &CustomizationDetails{Quantity: 10}
	assert.Error(t, ValidateInquiryRequestInsert(&i))

	i = validInquiry()
	i.Customization = &CustomizationDetails{CustomType: "embossing", Quantity: 10}
	require.NoError(t, ValidateInquiryRequestInsert(&i))
}

func TestCanTransitionInquiryStatus(t *testing.T) {
	assert.True(t, CanTransitionInquiryStatus(InquiryStatusNew, InquiryStatusContacted))
	assert.True(t, CanTransitionInquiryStatus(InquiryStatusNew, InquiryStatusClosed))
	assert.True(t, CanTransitionInquiryStatus(InquiryStatusQuoted, InquiryStatusConverted))

	// backwards and same-status moves are rejected
	assert.False(t, CanTransitionInquiryStatus(InquiryStatusQuoted, InquiryStatusContacted))
	assert.False(t, CanTransitionInquiryStatus(InquiryStatusNew, InquiryStatusNew))
	assert.False(t, CanTransitionInquiryStatus(InquiryStatusClosed, InquiryStatusNew))
	assert.False(t, CanTransitionInquiryStatus("unknown", InquiryStatusClosed))
}
