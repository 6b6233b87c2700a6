package worldnet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deleteFields() *Fields {
	f := NewFields()
	f.Set(FieldMerchantRef, "M1")
	f.Set(FieldTerminalID, "1")
	f.Set(FieldDateTime, "01-01-2020:00:00:00:000")
	return f
}

// signedAsResponse feeds a signed record back the way a reply would carry it
func signedAsResponse(f *Fields) *Fields {
	out := f.Clone()
	out.Set(ResponseHashField, strings.ToLower(f.Value(RequestHashField)))
	return out
}

func TestSign_KnownDigest(t *testing.T) {
	f := deleteFields()

	hash := Sign(f, "s", opDeleteStoredSubscription.HashKeys)

	// md5("1" + "M1" + "01-01-2020:00:00:00:000" + "s")
	assert.Equal(t, "7c7c1d4bf32b241135f522947aa33ba4", hash)
	assert.Equal(t, hash, f.Value(RequestHashField))
}

func TestDigest_MissingFieldsAreEmpty(t *testing.T) {
	// md5("s")
	assert.Equal(t, "03c7c0ace395d80182db07ae2c30f034", Digest(NewFields(), "s", HashKeys{FieldTerminalID, FieldOrderID}))
}

func TestDigest_LowercaseHex(t *testing.T) {
	hash := Digest(deleteFields(), "secret", opDeleteSubscription.HashKeys)

	assert.Regexp(t, "^[0-9a-f]{32}$", hash)
}

func TestDigest_KeyOrderMatters(t *testing.T) {
	f := deleteFields()

	a := Digest(f, "s", HashKeys{FieldTerminalID, FieldMerchantRef, FieldDateTime})
	b := Digest(f, "s", HashKeys{FieldMerchantRef, FieldTerminalID, FieldDateTime})

	assert.NotEqual(t, a, b)
}

func TestSignThenVerify(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		secret string
		keys   HashKeys
	}{
		{
			name:   "delete",
			fields: map[string]string{FieldTerminalID: "6491002", FieldMerchantRef: "SUB-1", FieldDateTime: "15-10-2026:09:30:00:123"},
			secret: "x8f3",
			keys:   opDeleteSubscription.HashKeys,
		},
		{
			name: "stored subscription",
			fields: map[string]string{
				FieldTerminalID: "6491002", FieldMerchantRef: "GOLD", FieldDateTime: "15-10-2026:09:30:00:123",
				FieldType: "AUTOMATIC", FieldName: "Gold", FieldPeriodType: "MONTHLY", FieldCurrency: "EUR",
				FieldRecurringAmount: "9.99", FieldInitialAmount: "0", FieldLength: "12",
			},
			secret: "secret",
			keys:   opAddStoredSubscription.HashKeys,
		},
		{
			name:   "empty record",
			fields: map[string]string{},
			secret: "only-secret",
			keys:   opSubscriptionPayment.HashKeys,
		},
		{
			name:   "unicode values",
			fields: map[string]string{FieldTerminalID: "1", FieldMerchantRef: "Ünïcødé €", FieldDateTime: "x"},
			secret: "s",
			keys:   opDeleteStoredSubscription.HashKeys,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFields()
			for k, v := range tt.fields {
				f.Set(k, v)
			}

			Sign(f, tt.secret, tt.keys)

			assert.True(t, Verify(signedAsResponse(f), tt.secret, tt.keys))
		})
	}
}

func TestVerify_DetectsTampering(t *testing.T) {
	keys := opAddStoredSubscription.HashKeys
	f := NewFields()
	for i, key := range keys {
		f.Set(key, strings.Repeat("v", i+1))
	}
	Sign(f, "secret", keys)
	signed := signedAsResponse(f)
	require.True(t, Verify(signed, "secret", keys))

	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			tampered := signed.Clone()
			tampered.Set(key, tampered.Value(key)+"x")

			assert.False(t, Verify(tampered, "secret", keys))
		})
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	f := deleteFields()
	Sign(f, "s", opDeleteStoredSubscription.HashKeys)

	assert.False(t, Verify(signedAsResponse(f), "t", opDeleteStoredSubscription.HashKeys))
}

func TestVerify_CaseSensitive(t *testing.T) {
	f := deleteFields()
	hash := Sign(f, "s", opDeleteStoredSubscription.HashKeys)
	f.Set(ResponseHashField, strings.ToUpper(hash))

	assert.False(t, Verify(f, "s", opDeleteStoredSubscription.HashKeys))
}

func TestVerify_MissingHash(t *testing.T) {
	f := deleteFields()
	Sign(f, "s", opDeleteStoredSubscription.HashKeys)

	// only the request-side HASH is present
	assert.False(t, Verify(f, "s", opDeleteStoredSubscription.HashKeys))
}
