package worldnet

import (
	"strconv"
	"time"

	"github.com/kevin07696/worldnet-gateway/pkg/timeutil"
)

// newFields starts a request record with the terminal and a fresh timestamp
func (c *Client) newFields() *Fields {
	f := NewFields()
	f.Set(FieldTerminalID, c.config.TerminalID)
	f.Set(FieldDateTime, c.timestamp())
	return f
}

func (c *Client) timestamp() string {
	return timeutil.FormatPattern(c.now().In(c.config.Location), c.config.DateTimeFormat)
}

func (c *Client) buildStoredSubscription(req *StoredSubscriptionRequest) *Fields {
	f := c.newFields()
	f.Set(FieldMerchantRef, req.MerchantRef)
	f.Set(FieldName, req.Name)
	f.Set(FieldDescription, req.Description)
	f.Set(FieldPeriodType, string(req.PeriodType))
	f.Set(FieldLength, strconv.Itoa(req.Length))
	f.Set(FieldCurrency, req.Currency)
	f.Set(FieldRecurringAmount, req.RecurringAmount.String())
	f.Set(FieldInitialAmount, req.InitialAmount.String())
	f.Set(FieldType, string(req.Type))
	f.Set(FieldOnUpdate, string(req.OnUpdate))
	f.Set(FieldOnDelete, string(req.OnDelete))
	return f
}

func (c *Client) buildDelete(req *DeleteRequest) *Fields {
	f := c.newFields()
	f.Set(FieldMerchantRef, req.MerchantRef)
	return f
}

func (c *Client) buildAddSubscription(req *AddSubscriptionRequest) *Fields {
	f := c.newFields()
	f.Set(FieldMerchantRef, req.MerchantRef)
	f.Set(FieldStoredSubscriptionRef, req.StoredSubscriptionRef)
	f.Set(FieldSecureCardMerchantRef, req.SecureCardMerchantRef)
	f.Set(FieldStartDate, timeutil.FormatDate(req.StartDate))
	f.SetOptional(FieldEndDate, formatOptionalDate(req.EndDate))
	f.SetOptional(FieldEDCCDecision, req.EDCCDecision)
	return f
}

func (c *Client) buildUpdateSubscription(req *UpdateSubscriptionRequest) *Fields {
	f := c.newFields()
	f.Set(FieldMerchantRef, req.MerchantRef)
	f.Set(FieldSecureCardMerchantRef, req.SecureCardMerchantRef)
	f.Set(FieldStartDate, timeutil.FormatDate(req.StartDate))
	f.SetOptional(FieldEndDate, formatOptionalDate(req.EndDate))
	f.SetOptional(FieldEDCCDecision, req.EDCCDecision)
	return f
}

func (c *Client) buildSubscriptionPayment(req *SubscriptionPaymentRequest) *Fields {
	f := c.newFields()
	f.Set(FieldOrderID, req.OrderID)
	f.Set(FieldAmount, req.Amount.String())
	f.Set(FieldSubscriptionRef, req.SubscriptionRef)
	f.SetNonEmpty(FieldDescription, req.Description)
	f.SetNonEmpty(FieldForeignCurrencyInformation, req.ForeignCurrencyInformation)
	f.SetNonEmpty(FieldEmail, req.Email)
	return f
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := timeutil.FormatDate(*t)
	return &s
}
