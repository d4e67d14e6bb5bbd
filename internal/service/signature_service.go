package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	errMalformedSignature = errors.New("malformed signature header")
	errSignatureMismatch  = errors.New("signature mismatch")
	errSignatureExpired   = errors.New("signature timestamp outside tolerance")
)

// HMACSignatureService implements ports.SignatureService. Headers carry the
// signing time and a hex HMAC-SHA256 of "<unix>.<body>":
//
//	t=1708092000,v1=5257a869...
type HMACSignatureService struct{}

func NewHMACSignatureService() *HMACSignatureService {
	return &HMACSignatureService{}
}

func (s *HMACSignatureService) Sign(secret string, at time.Time, body []byte) string {
	ts := strconv.FormatInt(at.Unix(), 10)
	return "t=" + ts + ",v1=" + digest(secret, ts, body)
}

// Verify checks header against body. A zero tolerance disables the
// timestamp window.
func (s *HMACSignatureService) Verify(secret, header string, body []byte, now time.Time, tolerance time.Duration) error {
	var ts, sig string
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return errMalformedSignature
		}
		switch k {
		case "t":
			ts = v
		case "v1":
			sig = v
		}
	}
	if ts == "" || sig == "" {
		return errMalformedSignature
	}
	unix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return errMalformedSignature
	}

	if !hmac.Equal([]byte(digest(secret, ts, body)), []byte(sig)) {
		return errSignatureMismatch
	}
	if tolerance > 0 {
		skew := now.Sub(time.Unix(unix, 0))
		if skew > tolerance || skew < -tolerance {
			return errSignatureExpired
		}
	}
	return nil
}

func digest(secret, ts string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts))
	mac.Write([]byte{'.'})
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
