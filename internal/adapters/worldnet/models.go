package worldnet

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodType is the billing period of a stored subscription
type PeriodType string

const (
	PeriodWeekly    PeriodType = "WEEKLY"
	PeriodFortnight PeriodType = "FORTNIGHTLY"
	PeriodMonthly   PeriodType = "MONTHLY"
	PeriodQuarterly PeriodType = "QUARTERLY"
	PeriodYearly    PeriodType = "YEARLY"
)

// SubscriptionType controls how subscription payments are collected
type SubscriptionType string

const (
	TypeAutomatic          SubscriptionType = "AUTOMATIC"
	TypeManual             SubscriptionType = "MANUAL"
	TypeAutomaticNoAmounts SubscriptionType = "AUTOMATIC (WITHOUT AMOUNTS)"
)

// OnUpdate controls what happens to subscriptions when their stored subscription changes
type OnUpdate string

const (
	OnUpdateContinue OnUpdate = "CONTINUE"
	OnUpdateUpdate   OnUpdate = "UPDATE"
)

// OnDelete controls what happens to subscriptions when their stored subscription is deleted
type OnDelete string

const (
	OnDeleteContinue OnDelete = "CONTINUE"
	OnDeleteCancel   OnDelete = "CANCEL"
)

// Payment response codes
const (
	ResponseCodeApproved = "A"
	ResponseCodeDeclined = "D"
	ResponseCodeReferral = "R"
)

// StoredSubscriptionRequest creates or updates a stored subscription (a billing template)
type StoredSubscriptionRequest struct {
	MerchantRef     string           `json:"merchant_ref"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	PeriodType      PeriodType       `json:"period_type"`
	Length          int              `json:"length"`
	Currency        string           `json:"currency"`
	RecurringAmount decimal.Decimal  `json:"recurring_amount"`
	InitialAmount   decimal.Decimal  `json:"initial_amount"`
	Type            SubscriptionType `json:"type"`
	OnUpdate        OnUpdate         `json:"on_update"`
	OnDelete        OnDelete         `json:"on_delete"`
}

// DeleteRequest deletes a stored subscription or a subscription by merchant reference
type DeleteRequest struct {
	MerchantRef string `json:"merchant_ref"`
}

// AddSubscriptionRequest instantiates a subscription from a stored subscription.
// A zero StartDate is sent as an empty STARTDATE.
type AddSubscriptionRequest struct {
	MerchantRef           string     `json:"merchant_ref"`
	StoredSubscriptionRef string     `json:"stored_subscription_ref"`
	SecureCardMerchantRef string     `json:"secure_card_merchant_ref"`
	StartDate             time.Time  `json:"start_date"`
	EndDate               *time.Time `json:"end_date,omitempty"`
	EDCCDecision          *string    `json:"edcc_decision,omitempty"`
}

// UpdateSubscriptionRequest changes the card or dates of a subscription
type UpdateSubscriptionRequest struct {
	MerchantRef           string     `json:"merchant_ref"`
	SecureCardMerchantRef string     `json:"secure_card_merchant_ref"`
	StartDate             time.Time  `json:"start_date"`
	EndDate               *time.Time `json:"end_date,omitempty"`
	EDCCDecision          *string    `json:"edcc_decision,omitempty"`
}

// SubscriptionPaymentRequest charges a subscription manually.
// Empty optional strings are treated as not supplied.
type SubscriptionPaymentRequest struct {
	OrderID                    string          `json:"order_id"`
	SubscriptionRef            string          `json:"subscription_ref"`
	Amount                     decimal.Decimal `json:"amount"`
	Description                string          `json:"description,omitempty"`
	ForeignCurrencyInformation string          `json:"foreign_currency_information,omitempty"`
	Email                      string          `json:"email,omitempty"`
}

// Response is the decoded body of a successful reply
type Response struct {
	Operation string
	Fields    *Fields
}

// Get returns a response field by its lower-cased name
func (r *Response) Get(name string) string {
	return r.Fields.Value(name)
}

// Map returns the response fields as a plain map
func (r *Response) Map() map[string]string {
	return r.Fields.Map()
}

// MerchantRef returns the echoed merchant reference
func (r *Response) MerchantRef() string { return r.Get(ResponseFieldMerchantRef) }

// UniqueRef returns the gateway's transaction reference
func (r *Response) UniqueRef() string { return r.Get(ResponseFieldUniqueRef) }

// ResponseCode returns the payment response code (A, D or R)
func (r *Response) ResponseCode() string { return r.Get(ResponseFieldResponseCode) }

// ResponseText returns the gateway's response text
func (r *Response) ResponseText() string { return r.Get(ResponseFieldResponseText) }

// ApprovalCode returns the issuer approval code
func (r *Response) ApprovalCode() string { return r.Get(ResponseFieldApprovalCode) }

// Approved reports whether a payment reply is an approval
func (r *Response) Approved() bool {
	return r.ResponseCode() == ResponseCodeApproved
}
