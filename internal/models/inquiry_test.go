package models

import "testing"

func TestValidInquiryStatus(t *testing.T) {
	for _, s := range []InquiryStatus{InquiryStatusNew, InquiryStatusRead, InquiryStatusReplied} {
		if !ValidInquiryStatus(s) {
			t.Errorf("ValidInquiryStatus(%q) = false", s)
		}
	}
	for _, s := range []InquiryStatus{"", "archived", "NEW"} {
		if ValidInquiryStatus(s) {
			t.Errorf("ValidInquiryStatus(%q) = true", s)
		}
	}
}
