package contact

import "testing"

func TestExtractMobile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		expect string
	}{
		{name: "international number kept as is", text: "Phone: +1-(415)-555-0199", expect: "+1-(415)-555-0199"},
		{name: "indian mobile masked", text: "Call 9876543210 anytime", expect: "98XXXXXX10"},
		{name: "spaced local number", text: "tel 415 555 0199", expect: "415 555 0199"},
		{name: "not found", text: "no digits here", expect: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExtractMobile(tt.text); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestExtractEmail(t *testing.T) {
	t.Parallel()

	if got := ExtractEmail("Reach me at jane.doe@example.com or via phone"); got != "jane.doe@example.com" {
		t.Fatalf("unexpected email %q", got)
	}
	if got := ExtractEmail("no address"); got != "" {
		t.Fatalf("expected empty email, got %q", got)
	}
}

func TestExtract(t *testing.T) {
	t.Parallel()

	c := Extract("Jane Doe\n+1-(415)-555-0199\njane.doe@example.com")
	if c.Mobile != "+1-(415)-555-0199" || c.Email != "jane.doe@example.com" {
		t.Fatalf("unexpected contact %+v", c)
	}
}
