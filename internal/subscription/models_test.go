package subscription

import "testing"

func TestTopicKeys(t *testing.T) {
	t.Parallel()

	if got := BillTopic("House", "100"); got != "bill-House-100" {
		t.Errorf("BillTopic() = %q, want bill-House-100", got)
	}
	if got := OrgTopic("42"); got != "org-42" {
		t.Errorf("OrgTopic() = %q, want org-42", got)
	}
}

func TestValidTopic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		topic string
		want  bool
	}{
		{topic: "bill-House-100", want: true},
		{topic: "bill-192-H1000", want: true},
		{topic: "org-42", want: true},
		{topic: "bill-House-", want: false},
		{topic: "bill--100", want: false},
		{topic: "bill-House", want: false},
		{topic: "org-", want: false},
		{topic: "committee-J33", want: false},
		{topic: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			t.Parallel()

			if got := validTopic(tt.topic); got != tt.want {
				t.Errorf("validTopic(%q) = %v, want %v", tt.topic, got, tt.want)
			}
		})
	}
}
