package models

import "testing"

func TestDecided(t *testing.T) {
	if Decided(StatusPending) {
		t.Error("pending must not be terminal")
	}
	if !Decided(StatusApproved) {
		t.Error("approved must be terminal")
	}
	if !Decided(StatusRejected) {
		t.Error("rejected must be terminal")
	}
	if Decided("") {
		t.Error("empty status must not be terminal")
	}
}
