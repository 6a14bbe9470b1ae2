package domain

import (
	"testing"
	"time"
)

func TestAccount_HasOTP(t *testing.T) {
	a := Account{}
	if a.HasOTP() {
		t.Fatalf("empty account should have no OTP")
	}
	a.OTP = "123456"
	a.OTPExpiry = time.Now().Add(10 * time.Minute)
	if !a.HasOTP() {
		t.Fatalf("expected OTP on record")
	}
}

func TestAccount_CanLogin(t *testing.T) {
	cases := []struct {
		verified bool
		status   string
		want     bool
	}{
		{false, StatusPending, false},
		{true, StatusPending, false},
		{false, StatusApproved, false},
		{true, StatusApproved, true},
	}

	for _, c := range cases {
		a := Account{EmailVerified: c.verified, Status: c.status}
		if a.CanLogin() != c.want {
			t.Fatalf("CanLogin(verified=%v status=%s) != %v", c.verified, c.status, c.want)
		}
	}
}
