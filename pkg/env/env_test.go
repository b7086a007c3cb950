package env

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("SPORTOMIC_TEST_VALUE", "  console ")
	if got := Get("SPORTOMIC_TEST_VALUE", "json"); got != "console" {
		t.Fatalf("expected trimmed value, got %q", got)
	}

	t.Setenv("SPORTOMIC_TEST_VALUE", "   ")
	if got := Get("SPORTOMIC_TEST_VALUE", "json"); got != "json" {
		t.Fatalf("blank value should fall back, got %q", got)
	}

	if got := Get("SPORTOMIC_TEST_UNSET", "3001"); got != "3001" {
		t.Fatalf("unset value should fall back, got %q", got)
	}
}
