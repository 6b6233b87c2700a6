package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kevin07696/worldnet-gateway/internal/adapters/worldnet"
	pkgerrors "github.com/kevin07696/worldnet-gateway/pkg/errors"
	"github.com/kevin07696/worldnet-gateway/pkg/timeutil"
)

// orderIDLength is the length of generated ORDERIDs
const orderIDLength = 12

type actionFunc func(ctx context.Context, client *worldnet.Client, params []byte) (*worldnet.Response, error)

var actions = map[string]actionFunc{
	"add-stored-subscription":    addStoredSubscription,
	"update-stored-subscription": updateStoredSubscription,
	"delete-stored-subscription": deleteStoredSubscription,
	"add-subscription":           addSubscription,
	"update-subscription":        updateSubscription,
	"delete-subscription":        deleteSubscription,
	"subscription-payment":       subscriptionPayment,
}

func actionNames() []string {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func dispatch(ctx context.Context, client *worldnet.Client, action string, params []byte) (*worldnet.Response, error) {
	fn, ok := actions[action]
	if !ok {
		return nil, pkgerrors.NewValidationError("action", fmt.Sprintf("unknown action %q", action))
	}
	return fn(ctx, client, params)
}

// subscriptionParams is the CLI form of a subscription request; dates are DD-MM-YYYY
type subscriptionParams struct {
	MerchantRef           string  `json:"merchant_ref"`
	StoredSubscriptionRef string  `json:"stored_subscription_ref"`
	SecureCardMerchantRef string  `json:"secure_card_merchant_ref"`
	StartDate             string  `json:"start_date"`
	EndDate               string  `json:"end_date,omitempty"`
	EDCCDecision          *string `json:"edcc_decision,omitempty"`
}

func (p *subscriptionParams) dates() (time.Time, *time.Time, error) {
	start, err := timeutil.ParseDate(p.StartDate)
	if err != nil {
		return time.Time{}, nil, pkgerrors.NewValidationError("start_date", "expected DD-MM-YYYY")
	}
	if p.EndDate == "" {
		return start, nil, nil
	}
	end, err := timeutil.ParseDate(p.EndDate)
	if err != nil {
		return time.Time{}, nil, pkgerrors.NewValidationError("end_date", "expected DD-MM-YYYY")
	}
	return start, &end, nil
}

func decode(params []byte, v interface{}) error {
	if err := json.Unmarshal(params, v); err != nil {
		return pkgerrors.NewValidationError("json", err.Error())
	}
	return nil
}

func addStoredSubscription(ctx context.Context, client *worldnet.Client, params []byte) (*worldnet.Response, error) {
	var req worldnet.StoredSubscriptionRequest
	if err := decode(params, &req); err != nil {
		return nil, err
	}
	return client.AddStoredSubscription(ctx, &req)
}

func updateStoredSubscription(ctx context.Context, client *worldnet.Client, params []byte) (*worldnet.Response, error) {
	var req worldnet.StoredSubscriptionRequest
	if err := decode(params, &req); err != nil {
		return nil, err
	}
	return client.UpdateStoredSubscription(ctx, &req)
}

func deleteStoredSubscription(ctx context.Context, client *worldnet.Client, params []byte) (*worldnet.Response, error) {
	var req worldnet.DeleteRequest
	if err := decode(params, &req); err != nil {
		return nil, err
	}
	return client.DeleteStoredSubscription(ctx, &req)
}

func addSubscription(ctx context.Context, client *worldnet.Client, params []byte) (*worldnet.Response, error) {
	var p subscriptionParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	start, end, err := p.dates()
	if err != nil {
		return nil, err
	}
	return client.AddSubscription(ctx, &worldnet.AddSubscriptionRequest{
		MerchantRef:           p.MerchantRef,
		StoredSubscriptionRef: p.StoredSubscriptionRef,
		SecureCardMerchantRef: p.SecureCardMerchantRef,
		StartDate:             start,
		EndDate:               end,
		EDCCDecision:          p.EDCCDecision,
	})
}

func updateSubscription(ctx context.Context, client *worldnet.Client, params []byte) (*worldnet.Response, error) {
	var p subscriptionParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	start, end, err := p.dates()
	if err != nil {
		return nil, err
	}
	return client.UpdateSubscription(ctx, &worldnet.UpdateSubscriptionRequest{
		MerchantRef:           p.MerchantRef,
		SecureCardMerchantRef: p.SecureCardMerchantRef,
		StartDate:             start,
		EndDate:               end,
		EDCCDecision:          p.EDCCDecision,
	})
}

func deleteSubscription(ctx context.Context, client *worldnet.Client, params []byte) (*worldnet.Response, error) {
	var req worldnet.DeleteRequest
	if err := decode(params, &req); err != nil {
		return nil, err
	}
	return client.DeleteSubscription(ctx, &req)
}

func subscriptionPayment(ctx context.Context, client *worldnet.Client, params []byte) (*worldnet.Response, error) {
	var req worldnet.SubscriptionPaymentRequest
	if err := decode(params, &req); err != nil {
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, pkgerrors.NewValidationError("amount", "amount must be positive")
	}
	if req.OrderID == "" {
		req.OrderID = newOrderID()
	}
	return client.SubscriptionPayment(ctx, &req)
}

func newOrderID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(id[:orderIDLength])
}
