package entities

import "testing"

func TestKYCStatusValid(t *testing.T) {
	for _, s := range []KYCStatus{KYCPending, KYCReviewing, KYCApproved, KYCRejected} {
		if !s.Valid() {
			t.Fatalf("expected %s to be valid", s)
		}
	}
	for _, s := range []KYCStatus{"", "approved", "DONE"} {
		if s.Valid() {
			t.Fatalf("expected %s to be invalid", s)
		}
	}
}

func TestKYCStatusDecision(t *testing.T) {
	if !KYCApproved.Decision() || !KYCRejected.Decision() {
		t.Fatal("expected APPROVED and REJECTED to be decisions")
	}
	if KYCPending.Decision() || KYCReviewing.Decision() {
		t.Fatal("expected PENDING and REVIEWING not to be decisions")
	}
}
