package worldnet

// Gateway field names
const (
	FieldTerminalID                 = "TERMINALID"
	FieldDateTime                   = "DATETIME"
	FieldMerchantRef                = "MERCHANTREF"
	FieldName                       = "NAME"
	FieldDescription                = "DESCRIPTION"
	FieldPeriodType                 = "PERIODTYPE"
	FieldLength                     = "LENGTH"
	FieldCurrency                   = "CURRENCY"
	FieldRecurringAmount            = "RECURRINGAMOUNT"
	FieldInitialAmount              = "INITIALAMOUNT"
	FieldType                       = "TYPE"
	FieldOnUpdate                   = "ONUPDATE"
	FieldOnDelete                   = "ONDELETE"
	FieldStoredSubscriptionRef      = "STOREDSUBSCRIPTIONREF"
	FieldSecureCardMerchantRef      = "SECURECARDMERCHANTREF"
	FieldStartDate                  = "STARTDATE"
	FieldEndDate                    = "ENDDATE"
	FieldEDCCDecision               = "EDCCDECISION"
	FieldOrderID                    = "ORDERID"
	FieldAmount                     = "AMOUNT"
	FieldSubscriptionRef            = "SUBSCRIPTIONREF"
	FieldForeignCurrencyInformation = "FOREIGNCURRENCYINFORMATION"
	FieldEmail                      = "EMAIL"
)

// Response field names, as decoded (lower-cased)
const (
	ResponseFieldDateTime     = "datetime"
	ResponseFieldResponseCode = "responsecode"
	ResponseFieldResponseText = "responsetext"
	ResponseFieldUniqueRef    = "uniqueref"
	ResponseFieldApprovalCode = "approvalcode"
	ResponseFieldMerchantRef  = "merchantref"
)

// ErrorElement is the root element of a gateway error reply
const ErrorElement = "error"

// Operation describes one gateway request type
type Operation struct {
	// Root is the request document element
	Root string
	// Response is the decoded (lower-cased) element of a successful reply
	Response string
	// HashKeys signs the request
	HashKeys HashKeys
}

func (op Operation) clone() Operation {
	op.HashKeys = append(HashKeys(nil), op.HashKeys...)
	return op
}

var (
	opAddStoredSubscription = Operation{
		Root:     "ADDSTOREDSUBSCRIPTION",
		Response: "addstoredsubscriptionresponse",
		HashKeys: storedSubscriptionHashKeys(),
	}

	opUpdateStoredSubscription = Operation{
		Root:     "UPDATESTOREDSUBSCRIPTION",
		Response: "updatestoredsubscriptionresponse",
		HashKeys: storedSubscriptionHashKeys(),
	}

	opDeleteStoredSubscription = Operation{
		Root:     "DELETESTOREDSUBSCRIPTION",
		Response: "deletestoredsubscriptionresponse",
		HashKeys: HashKeys{FieldTerminalID, FieldMerchantRef, FieldDateTime},
	}

	opAddSubscription = Operation{
		Root:     "ADDSUBSCRIPTION",
		Response: "addsubscriptionresponse",
		HashKeys: HashKeys{
			FieldTerminalID, FieldMerchantRef, FieldStoredSubscriptionRef,
			FieldSecureCardMerchantRef, FieldDateTime, FieldStartDate,
		},
	}

	opUpdateSubscription = Operation{
		Root:     "UPDATESUBSCRIPTION",
		Response: "updatesubscriptionresponse",
		HashKeys: HashKeys{
			FieldTerminalID, FieldMerchantRef, FieldSecureCardMerchantRef,
			FieldDateTime, FieldStartDate,
		},
	}

	opDeleteSubscription = Operation{
		Root:     "DELETESUBSCRIPTION",
		Response: "deletesubscriptionresponse",
		HashKeys: HashKeys{FieldTerminalID, FieldMerchantRef, FieldDateTime},
	}

	opSubscriptionPayment = Operation{
		Root:     "SUBSCRIPTIONPAYMENT",
		Response: "subscriptionpaymentresponse",
		HashKeys: HashKeys{
			FieldTerminalID, FieldOrderID, FieldSubscriptionRef, FieldAmount, FieldDateTime,
		},
	}
)

func storedSubscriptionHashKeys() HashKeys {
	return HashKeys{
		FieldTerminalID, FieldMerchantRef, FieldDateTime, FieldType, FieldName,
		FieldPeriodType, FieldCurrency, FieldRecurringAmount, FieldInitialAmount, FieldLength,
	}
}

// PaymentResponseHashKeys returns the keys that verify a SUBSCRIPTIONPAYMENT reply.
// They mix request fields (upper-case) with reply fields (lower-case).
func PaymentResponseHashKeys() HashKeys {
	return HashKeys{
		FieldTerminalID, FieldOrderID, FieldAmount,
		ResponseFieldDateTime, ResponseFieldResponseCode, ResponseFieldResponseText,
	}
}

// Operations returns a copy of every supported operation
func Operations() []Operation {
	ops := []Operation{
		opAddStoredSubscription,
		opUpdateStoredSubscription,
		opDeleteStoredSubscription,
		opAddSubscription,
		opUpdateSubscription,
		opDeleteSubscription,
		opSubscriptionPayment,
	}
	for i := range ops {
		ops[i] = ops[i].clone()
	}
	return ops
}
