package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"
)

func signPayload(payload []byte, secret string, ts time.Time) string {
	timestamp := fmt.Sprintf("%d", ts.Unix())
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	return fmt.Sprintf("t=%s,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifySignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	secret := "whsec_test"
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	header := signPayload(payload, secret, now)
	if !verifySignatureAt(payload, header, secret, DefaultTolerance, now) {
		t.Fatalf("expected valid signature to verify")
	}

	// Tampered payload
	if verifySignatureAt([]byte(`{"id":"evt_2"}`), header, secret, DefaultTolerance, now) {
		t.Fatalf("expected tampered payload to fail")
	}

	// Wrong secret
	if verifySignatureAt(payload, header, "whsec_other", DefaultTolerance, now) {
		t.Fatalf("expected wrong secret to fail")
	}
}

func TestVerifySignatureRejectsStaleTimestamp(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	secret := "whsec_test"
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	stale := signPayload(payload, secret, now.Add(-10*time.Minute))
	if verifySignatureAt(payload, stale, secret, DefaultTolerance, now) {
		t.Fatalf("expected stale timestamp to fail")
	}

	future := signPayload(payload, secret, now.Add(10*time.Minute))
	if verifySignatureAt(payload, future, secret, DefaultTolerance, now) {
		t.Fatalf("expected far-future timestamp to fail")
	}

	// Within tolerance on both sides
	recent := signPayload(payload, secret, now.Add(-4*time.Minute))
	if !verifySignatureAt(payload, recent, secret, DefaultTolerance, now) {
		t.Fatalf("expected recent timestamp to verify")
	}
}

func TestVerifySignatureMalformedHeaders(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	secret := "whsec_test"
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []string{
		"",
		"garbage",
		"t=,v1=",
		"t=notanumber,v1=deadbeef",
		"v1=deadbeef",
		fmt.Sprintf("t=%d", now.Unix()),
		fmt.Sprintf("t=%d,v1=nothex", now.Unix()),
	}
	for _, header := range cases {
		if verifySignatureAt(payload, header, secret, DefaultTolerance, now) {
			t.Fatalf("expected header %q to fail verification", header)
		}
	}

	// Empty secret never verifies
	valid := signPayload(payload, secret, now)
	if verifySignatureAt(payload, valid, "", DefaultTolerance, now) {
		t.Fatalf("expected empty secret to fail verification")
	}
}

func TestVerifySignatureAcceptsAnyValidV1(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	secret := "whsec_test"
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	timestamp := fmt.Sprintf("%d", now.Unix())
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	good := hex.EncodeToString(mac.Sum(nil))

	header := fmt.Sprintf("t=%s,v1=%s,v1=%s", timestamp, hex.EncodeToString([]byte("bogus sig")), good)
	if !verifySignatureAt(payload, header, secret, DefaultTolerance, now) {
		t.Fatalf("expected header with one valid v1 entry to verify")
	}
}
