package webhook

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultSignatureTolerance bounds how old a signed payload may be before
// verification rejects it, defeating replay of captured payloads.
const DefaultSignatureTolerance = 300 * time.Second

// Sign produces the X-Webhook-Signature header value: "t=<unix>,v1=<hex>",
// where the HMAC-SHA256 covers "<timestamp>.<payload>" keyed by the
// subscription secret.
func Sign(payload []byte, secret string, at time.Time) string {
	ts := at.Unix()
	mac := computeMAC(payload, secret, ts)
	return fmt.Sprintf("t=%d,v1=%s", ts, mac)
}

// Verify recomputes the HMAC and requires a constant-time match plus a
// timestamp within tolerance of now. Rotating the secret invalidates old
// signatures immediately.
func Verify(payload []byte, header, secret string, tolerance time.Duration, now time.Time) bool {
	ts, mac, ok := parseHeader(header)
	if !ok {
		return false
	}

	age := now.Unix() - ts
	if age < 0 {
		age = -age
	}
	if float64(age) > tolerance.Seconds() {
		return false
	}

	expected := computeMAC(payload, secret, ts)
	return hmac.Equal([]byte(mac), []byte(expected))
}

func computeMAC(payload []byte, secret string, ts int64) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(strconv.FormatInt(ts, 10)))
	h.Write([]byte("."))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

func parseHeader(header string) (ts int64, mac string, ok bool) {
	for _, part := range strings.Split(header, ",") {
		k, v, found := strings.Cut(part, "=")
		if !found {
			return 0, "", false
		}
		switch k {
		case "t":
			parsed, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return 0, "", false
			}
			ts = parsed
		case "v1":
			mac = v
		}
	}
	if ts == 0 || mac == "" {
		return 0, "", false
	}
	return ts, mac, true
}

// NewSecret returns a 64-hex-char shared secret for a new subscription.
func NewSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
