package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACSignatureService_SignAndVerify(t *testing.T) {
	svc := NewHMACSignatureService()
	at := time.Unix(1708092000, 0)
	body := []byte(`{"event":"fulfillment.created"}`)

	header := svc.Sign("whsec", at, body)

	assert.Regexp(t, `^t=1708092000,v1=[0-9a-f]{64}$`, header)
	require.NoError(t, svc.Verify("whsec", header, body, at.Add(time.Minute), 5*time.Minute))
	assert.Equal(t, header, svc.Sign("whsec", at, body))
}

func TestHMACSignatureService_VerifyFails(t *testing.T) {
	svc := NewHMACSignatureService()
	at := time.Unix(1708092000, 0)
	body := []byte("original payload")
	header := svc.Sign("correct-key", at, body)

	tests := []struct {
		name   string
		key    string
		header string
		body   string
		now    time.Time
		want   error
	}{
		{"wrong key", "wrong-key", header, "original payload", at, errSignatureMismatch},
		{"tampered body", "correct-key", header, "tampered payload", at, errSignatureMismatch},
		{"replayed later", "correct-key", header, "original payload", at.Add(time.Hour), errSignatureExpired},
		{"missing v1", "correct-key", "t=1708092000", "original payload", at, errMalformedSignature},
		{"bad timestamp", "correct-key", "t=yesterday,v1=abc", "original payload", at, errMalformedSignature},
		{"garbage", "correct-key", "invalidsignature", "original payload", at, errMalformedSignature},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Verify(tt.key, tt.header, []byte(tt.body), tt.now, 5*time.Minute)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestHMACSignatureService_ZeroToleranceSkipsWindow(t *testing.T) {
	svc := NewHMACSignatureService()
	header := svc.Sign("k", time.Unix(0, 0), []byte("x"))
	assert.NoError(t, svc.Verify("k", header, []byte("x"), time.Now(), 0))
}
