package domain

import "testing"

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusApplied, StatusInterview, StatusOffer, StatusRejected} {
		if !ValidStatus(s) {
			t.Fatalf("%q rejected", s)
		}
	}
	for _, s := range []string{"", "applied", "Hired", "APPLIED"} {
		if ValidStatus(s) {
			t.Fatalf("%q accepted", s)
		}
	}
}

func TestValidInterviewType(t *testing.T) {
	for _, s := range []string{InterviewVideo, InterviewPhone, InterviewInPerson} {
		if !ValidInterviewType(s) {
			t.Fatalf("%q rejected", s)
		}
	}
	if ValidInterviewType("onsite") {
		t.Fatal("unknown type accepted")
	}
}

func TestTenantKey(t *testing.T) {
	var u User
	if u.TenantKey() != "" {
		t.Fatal("expected empty tenant for unset company")
	}
	co := "Co1"
	u.RecruiterCompany = &co
	if u.TenantKey() != "Co1" {
		t.Fatalf("got %q", u.TenantKey())
	}
}
