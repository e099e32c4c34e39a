package validators

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFormOrQueryValuePrefersQuery(t *testing.T) {
	body := strings.NewReader("work_order_no=FROM-BODY")
	r := httptest.NewRequest("POST", "/checkout/commit?work_order_no=FROM-QUERY", body)
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if got := FormOrQueryValue(r, "work_order_no"); got != "FROM-QUERY" {
		t.Fatalf("expected query value to win, got %q", got)
	}
}

func TestFormOrQueryValueReadsFormBody(t *testing.T) {
	body := strings.NewReader("work_order_no=WO-9")
	r := httptest.NewRequest("POST", "/checkout/commit", body)
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if got := FormOrQueryValue(r, "work_order_no"); got != "WO-9" {
		t.Fatalf("expected form value, got %q", got)
	}
}

func TestFormOrQueryValueToleratesJunkBody(t *testing.T) {
	body := strings.NewReader("{\"not\": \"a form\"}")
	r := httptest.NewRequest("POST", "/checkout/commit?work_order_no=WO-1", body)
	r.Header.Set("Content-Type", "application/json")

	if got := FormOrQueryValue(r, "work_order_no"); got != "WO-1" {
		t.Fatalf("junk body must not block the query value, got %q", got)
	}
}

func TestFormOrQueryValueMissing(t *testing.T) {
	r := httptest.NewRequest("POST", "/checkout/commit", nil)

	if got := FormOrQueryValue(r, "work_order_no"); got != "" {
		t.Fatalf("expected empty for absent field, got %q", got)
	}
}
