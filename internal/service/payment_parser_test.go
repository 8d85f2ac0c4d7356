package service

import "testing"

func TestParseTransferIntent(t *testing.T) {
	cases := []struct {
		name     string
		content  string
		wantOK   bool
		courseID uint
		userID   uint
	}{
		{name: "plain", content: "COURSE42USER7", wantOK: true, courseID: 42, userID: 7},
		{name: "gateway noise around", content: "MBVCB.123456.COURSE42USER7.CT tu 0123456789", wantOK: true, courseID: 42, userID: 7},
		{name: "first match wins", content: "COURSE1USER2 COURSE3USER4", wantOK: true, courseID: 1, userID: 2},
		{name: "empty", content: "", wantOK: false},
		{name: "unrelated transfer", content: "thanh toan tien dien thang 8", wantOK: false},
		{name: "lowercase not accepted", content: "course42user7", wantOK: false},
		{name: "missing user part", content: "COURSE42", wantOK: false},
		{name: "zero course id", content: "COURSE0USER7", wantOK: false},
		{name: "zero user id", content: "COURSE42USER0", wantOK: false},
		{name: "course id overflow", content: "COURSE99999999999999999999USER7", wantOK: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			intent, ok := parseTransferIntent(tc.content)
			if ok != tc.wantOK {
				t.Fatalf("parseTransferIntent(%q) ok = %v, want %v", tc.content, ok, tc.wantOK)
			}
			if !tc.wantOK {
				return
			}
			if intent.CourseID != tc.courseID || intent.UserID != tc.userID {
				t.Fatalf("parseTransferIntent(%q) = %+v, want course %d user %d",
					tc.content, intent, tc.courseID, tc.userID)
			}
		})
	}
}
