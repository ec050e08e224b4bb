// Package model defines the dispute data types shared across rebuttal.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Reason is the card network's classification of why a dispute was raised.
type Reason string

const (
	ReasonGeneral              Reason = "general"
	ReasonProductNotReceived   Reason = "product_not_received"
	ReasonProductUnacceptable  Reason = "product_unacceptable"
	ReasonCreditNotProcessed   Reason = "credit_not_processed"
	ReasonDuplicate            Reason = "duplicate"
	ReasonSubscriptionCanceled Reason = "subscription_canceled"
	ReasonFraudulent           Reason = "fraudulent"
	ReasonUnrecognized         Reason = "unrecognized"
	ReasonNoncompliant         Reason = "noncompliant"
)

// Reasons lists every reason code the engine knows about.
var Reasons = []Reason{
	ReasonGeneral,
	ReasonProductNotReceived,
	ReasonProductUnacceptable,
	ReasonCreditNotProcessed,
	ReasonDuplicate,
	ReasonSubscriptionCanceled,
	ReasonFraudulent,
	ReasonUnrecognized,
	ReasonNoncompliant,
}

// Normalize maps empty and unrecognized reasons to ReasonGeneral.
func (r Reason) Normalize() Reason {
	for _, known := range Reasons {
		if r == known {
			return r
		}
	}
	return ReasonGeneral
}

func (r Reason) String() string {
	return string(r.Normalize())
}

// ProductType is the merchant-declared category of what was sold.
type ProductType string

const (
	ProductUnspecified        ProductType = ""
	ProductPhysical           ProductType = "physical_product"
	ProductDigital            ProductType = "digital_product_or_service"
	ProductOfflineService     ProductType = "offline_service"
	ProductBookingReservation ProductType = "booking_reservation"
	ProductMultiple           ProductType = "multiple"
)

// ProductTypes is the selection order offered to merchants.
var ProductTypes = []ProductType{
	ProductUnspecified,
	ProductPhysical,
	ProductDigital,
	ProductOfflineService,
	ProductBookingReservation,
	ProductMultiple,
}

func (p ProductType) String() string {
	if p == ProductUnspecified {
		return "unspecified"
	}
	return string(p)
}

// RefundStatus only matters for credit_not_processed disputes.
type RefundStatus string

const (
	RefundUnset   RefundStatus = ""
	RefundIssued  RefundStatus = "refund_has_been_issued"
	RefundNotOwed RefundStatus = "refund_was_not_owed"
)

// DuplicateStatus only matters for duplicate disputes.
type DuplicateStatus string

const (
	DuplicateUnset DuplicateStatus = ""
	IsDuplicate    DuplicateStatus = "is_duplicate"
	IsNotDuplicate DuplicateStatus = "is_not_duplicate"
)

// ParseProductType validates a product type. The empty string and
// "unspecified" both mean no product type.
func ParseProductType(s string) (ProductType, error) {
	if s == "unspecified" {
		return ProductUnspecified, nil
	}
	for _, p := range ProductTypes {
		if ProductType(s) == p {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown product type %q", s)
}

// ParseRefundStatus validates a refund status. Empty means unset.
func ParseRefundStatus(s string) (RefundStatus, error) {
	switch r := RefundStatus(s); r {
	case RefundUnset, RefundIssued, RefundNotOwed:
		return r, nil
	}
	return "", fmt.Errorf("unknown refund status %q", s)
}

// ParseDuplicateStatus validates a duplicate status. Empty means unset.
func ParseDuplicateStatus(s string) (DuplicateStatus, error) {
	switch d := DuplicateStatus(s); d {
	case DuplicateUnset, IsDuplicate, IsNotDuplicate:
		return d, nil
	}
	return "", fmt.Errorf("unknown duplicate status %q", s)
}

// Address is a postal address. Empty fields are legal everywhere.
type Address struct {
	Line1      string `yaml:"line1" json:"line1" mapstructure:"line1"`
	Line2      string `yaml:"line2" json:"line2" mapstructure:"line2"`
	City       string `yaml:"city" json:"city" mapstructure:"city"`
	State      string `yaml:"state" json:"state" mapstructure:"state"`
	PostalCode string `yaml:"postal_code" json:"postal_code" mapstructure:"postal_code"`
	Country    string `yaml:"country" json:"country" mapstructure:"country"`
}

// AccountInfo holds the merchant's business details used in the letter header.
type AccountInfo struct {
	Name         string  `yaml:"name" json:"name" mapstructure:"name"`
	Address      Address `yaml:"address" json:"address" mapstructure:"address"`
	SupportEmail string  `yaml:"support_email" json:"support_email" mapstructure:"support_email"`
	SupportPhone string  `yaml:"support_phone" json:"support_phone" mapstructure:"support_phone"`
}

// BillingDetails are the cardholder details captured on the charge.
type BillingDetails struct {
	Name    string  `yaml:"name" json:"name"`
	Email   string  `yaml:"email" json:"email"`
	Address Address `yaml:"address" json:"address"`
}

// PaymentMethod describes the card used for the charge.
type PaymentMethod struct {
	Brand string `yaml:"brand" json:"brand"`
	Last4 string `yaml:"last4" json:"last4"`
}

// LineItem is one purchased item on the order.
type LineItem struct {
	Description string `yaml:"description" json:"description"`
	Quantity    int    `yaml:"quantity" json:"quantity"`
}

// Charge is the disputed payment.
type Charge struct {
	ID             string         `yaml:"id" json:"id"`
	Created        time.Time      `yaml:"created" json:"created"`
	BillingDetails BillingDetails `yaml:"billing_details" json:"billing_details"`
	PaymentMethod  PaymentMethod  `yaml:"payment_method_details" json:"payment_method_details"`
	LineItems      []LineItem     `yaml:"line_items" json:"line_items"`
}

// Order is the store order behind the charge.
type Order struct {
	ID         string    `yaml:"id" json:"id"`
	CustomerIP string    `yaml:"customer_ip" json:"customer_ip"`
	CreatedAt  time.Time `yaml:"created_at" json:"created_at"`
}

// DisputeCase is the snapshot every recommendation and letter is computed from.
type DisputeCase struct {
	ID              string          `yaml:"id" json:"id"`
	Reason          Reason          `yaml:"reason" json:"reason"`
	ProductType     ProductType     `yaml:"product_type" json:"product_type"`
	RefundStatus    RefundStatus    `yaml:"refund_status" json:"refund_status"`
	DuplicateStatus DuplicateStatus `yaml:"duplicate_status" json:"duplicate_status"`
	Amount          *int64          `yaml:"amount" json:"amount"`
	Currency        string          `yaml:"currency" json:"currency"`
	CreatedAt       time.Time       `yaml:"created_at" json:"created_at"`
	Order           Order           `yaml:"order" json:"order"`
	Charge          Charge          `yaml:"charge" json:"charge"`
	Evidence        map[string]any  `yaml:"evidence" json:"evidence"`
	BankName        *string         `yaml:"bank_name" json:"bank_name"`
	CoverLetter     string          `yaml:"cover_letter" json:"cover_letter"`
}

// SubStatus returns the sub-classification relevant to the case's reason.
func (c DisputeCase) SubStatus() string {
	switch c.Reason.Normalize() {
	case ReasonCreditNotProcessed:
		return string(c.RefundStatus)
	case ReasonDuplicate:
		return string(c.DuplicateStatus)
	default:
		return ""
	}
}

// EvidenceText returns the evidence value for key if it is a non-empty plain string.
func (c DisputeCase) EvidenceText(key string) (string, bool) {
	v, ok := c.Evidence[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}
