package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/ratewise/ratewise-backend/pkg/errors"
)

type sampleBody struct {
	Name     string `json:"name" validate:"required,min=20,max=60"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,account_password"`
}

func decode(t *testing.T, body string) error {
	t.Helper()
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	var dest sampleBody
	return DecodeJSONBody(req, &dest)
}

func TestDecodeJSONBodyAcceptsValidPayload(t *testing.T) {
	err := decode(t, `{"name":"Jordan Q Example Tester","email":"a@example.com","password":"Sup3rSecret!"}`)
	if err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	err := decode(t, `{"name":"Jordan Q Example Tester","email":"a@example.com","password":"Sup3rSecret!","role":"admin"}`)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for unknown field, got %v", err)
	}
}

func TestDecodeJSONBodyRejectsMalformedJSON(t *testing.T) {
	err := decode(t, `{"name":`)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for malformed body, got %v", err)
	}
}

func TestDecodeJSONBodyReportsFieldDetails(t *testing.T) {
	err := decode(t, `{"name":"Too Short","email":"not-an-email","password":"weak"}`)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected detail map, got %T", typed.Details())
	}
	for _, field := range []string{"name", "email", "password"} {
		if _, present := details[field]; !present {
			t.Fatalf("expected detail for %q, got %v", field, details)
		}
	}
}

func TestAccountPasswordPolicy(t *testing.T) {
	cases := []struct {
		password string
		valid    bool
	}{
		{"Sup3rSecret!", true},
		{"A!bcdefg", true},
		{"Ab!45678901234567", false}, // 17 chars
		{"Sh0rt!A", false},           // 7 chars
		{"nouppercase1!", false},
		{"NoSpecialChar1", false},
		{"", false},
	}
	for _, tc := range cases {
		err := decode(t, `{"name":"Jordan Q Example Tester","email":"a@example.com","password":"`+tc.password+`"}`)
		if tc.valid && err != nil {
			t.Errorf("password %q: expected valid, got %v", tc.password, err)
		}
		if !tc.valid && err == nil {
			t.Errorf("password %q: expected rejection", tc.password)
		}
	}
}

func TestParseSortOrder(t *testing.T) {
	for raw, want := range map[string]string{"": "asc", "asc": "asc", "DESC": "desc"} {
		req := httptest.NewRequest("GET", "/?order="+raw, nil)
		got, err := ParseSortOrder(req)
		if err != nil {
			t.Fatalf("order %q: unexpected error %v", raw, err)
		}
		if got != want {
			t.Fatalf("order %q: expected %q, got %q", raw, want, got)
		}
	}

	req := httptest.NewRequest("GET", "/?order=sideways", nil)
	if _, err := ParseSortOrder(req); err == nil {
		t.Fatal("expected rejection of unknown order")
	}
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest("GET", "/?rating=4", nil)
	value, err := ParseQueryInt(req, "rating", 1, 1, 5)
	if err != nil || value != 4 {
		t.Fatalf("expected 4, got %d err=%v", value, err)
	}

	req = httptest.NewRequest("GET", "/?rating=9", nil)
	if _, err := ParseQueryInt(req, "rating", 1, 1, 5); err == nil {
		t.Fatal("expected out of range rejection")
	}

	req = httptest.NewRequest("GET", "/?rating=abc", nil)
	if _, err := ParseQueryInt(req, "rating", 1, 1, 5); err == nil {
		t.Fatal("expected non-numeric rejection")
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  padded value  ", 0); got != "padded value" {
		t.Fatalf("expected trim, got %q", got)
	}
	if got := SanitizeString("abcdef", 3); got != "abc" {
		t.Fatalf("expected truncation, got %q", got)
	}
}
