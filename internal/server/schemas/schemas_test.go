package schemas

import (
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestAuthRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     AuthRequest
		wantOK  bool
		wantMsg string
	}{
		{"valid", AuthRequest{Email: "a@x.com", Password: "secret1"}, true, ""},
		{"missing email", AuthRequest{Password: "secret1"}, false, "Email is required"},
		{"bad email", AuthRequest{Email: "not-an-email", Password: "secret1"}, false, "Email must be a valid email"},
		{"missing password", AuthRequest{Email: "a@x.com"}, false, "Password is required"},
		{"short password", AuthRequest{Email: "a@x.com", Password: "abc"}, false, "Password must be at least 6 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.req.Validate()
			if errs.OK() != tt.wantOK {
				t.Fatalf("OK() = %v, want %v (errs: %v)", errs.OK(), tt.wantOK, errs)
			}
			if !tt.wantOK && errs.Message() != tt.wantMsg {
				t.Fatalf("Message() = %q, want %q", errs.Message(), tt.wantMsg)
			}
		})
	}
}

func TestSubscriptionRequest_Validate(t *testing.T) {
	for _, valid := range []string{"starter", "pro", "business"} {
		if errs := (SubscriptionRequest{Subscription: valid}).Validate(); !errs.OK() {
			t.Fatalf("%q rejected: %v", valid, errs)
		}
	}
	for _, invalid := range []string{"", "premium", "Starter"} {
		errs := (SubscriptionRequest{Subscription: invalid}).Validate()
		if errs.OK() {
			t.Fatalf("%q accepted", invalid)
		}
		if errs.Message() != "Invalid subscription value" {
			t.Fatalf("unexpected message: %q", errs.Message())
		}
	}
}

func TestResendVerificationRequest_Validate(t *testing.T) {
	if errs := (ResendVerificationRequest{}).Validate(); errs.OK() || errs.Message() != "missing required field email" {
		t.Fatalf("missing email not reported: %v", errs)
	}
	if errs := (ResendVerificationRequest{Email: "a@x.com"}).Validate(); !errs.OK() {
		t.Fatalf("valid email rejected: %v", errs)
	}
}

func TestCreateContactRequest_Validate(t *testing.T) {
	valid := CreateContactRequest{Name: "Jo", Email: "jo@x.com", Phone: "123-456"}
	if errs := valid.Validate(); !errs.OK() {
		t.Fatalf("valid payload rejected: %v", errs)
	}

	empty := CreateContactRequest{}
	errs := empty.Validate()
	if errs.OK() || len(errs) != 3 {
		t.Fatalf("expected 3 field errors, got %v", errs)
	}

	badPhone := CreateContactRequest{Name: "Jo", Email: "jo@x.com", Phone: "call me maybe"}
	if errs := badPhone.Validate(); errs.OK() || !strings.Contains(errs.Message(), "Phone") {
		t.Fatalf("bad phone not reported: %v", errs)
	}
}

func TestUpdateContactRequest_Validate(t *testing.T) {
	if errs := (UpdateContactRequest{}).Validate(); errs.OK() || errs.Message() != "Body must have at least one field" {
		t.Fatalf("empty body not reported: %v", errs)
	}
	if errs := (UpdateContactRequest{Name: strPtr("Jo")}).Validate(); !errs.OK() {
		t.Fatalf("single-field update rejected: %v", errs)
	}
	if errs := (UpdateContactRequest{Email: strPtr("nope")}).Validate(); errs.OK() {
		t.Fatalf("invalid email accepted")
	}
}

func TestFavoriteRequest_Validate(t *testing.T) {
	if errs := (FavoriteRequest{}).Validate(); errs.OK() {
		t.Fatalf("missing favorite accepted")
	}
	if errs := (FavoriteRequest{Favorite: boolPtr(false)}).Validate(); !errs.OK() {
		t.Fatalf("explicit false rejected: %v", errs)
	}
}
