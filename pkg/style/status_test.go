package style

import (
	"strings"
	"testing"
)

func TestRenderLinkStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   LinkStatus
		contains []string
	}{
		{
			name: "linked entry",
			status: LinkStatus{
				Name:   "Portal 2",
				Target: "/steam/userdata/100/760/remote/620/screenshots",
				Status: StatusLinked,
			},
			contains: []string{"linked", "Portal 2", "linked to /steam/userdata/100/760/remote/620/screenshots"},
		},
		{
			name: "pending entry",
			status: LinkStatus{
				Name:   "Portal 2",
				Target: "/steam/userdata/100/760/remote/620/screenshots",
				Status: StatusPending,
			},
			contains: []string{"pending", "Portal 2", "will be linked to /steam/userdata/100/760/remote/620/screenshots"},
		},
		{
			name: "stale entry",
			status: LinkStatus{
				Name:   "Half-Life",
				Target: "/steam/userdata/100/760/remote/70/screenshots",
				Status: StatusStale,
			},
			contains: []string{"stale", "Half-Life", "will be removed"},
		},
		{
			name: "conflicting entry",
			status: LinkStatus{
				Name:   "Portal 2",
				Status: StatusConflict,
				Detail: "link path is occupied by a real directory",
			},
			contains: []string{"conflict", "Portal 2", "occupied by a real directory"},
		},
		{
			name: "failed entry",
			status: LinkStatus{
				Name:   "Portal 2",
				Status: StatusFailed,
				Detail: "permission denied",
			},
			contains: []string{"failed", "Portal 2", "permission denied"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RenderLinkStatus(tt.status)
			for _, expected := range tt.contains {
				if !strings.Contains(result, expected) {
					t.Errorf("Expected output to contain %q, got %q", expected, result)
				}
			}
		})
	}
}

func TestRenderAccountStatus(t *testing.T) {
	tests := []struct {
		name     string
		account  AccountStatus
		contains []string
	}{
		{
			name: "account with entries",
			account: AccountStatus{
				Name:   "alice",
				Status: StatusLinked,
				Links: []LinkStatus{
					{Name: "Portal 2", Target: "/steam/screenshots/620", Status: StatusLinked},
					{Name: "Dota 2", Target: "/steam/screenshots/570", Status: StatusPending},
				},
			},
			contains: []string{"alice:", "Portal 2", "Dota 2"},
		},
		{
			name: "account without entries",
			account: AccountStatus{
				Name:   "bob",
				Status: StatusLinked,
			},
			contains: []string{"bob:", "no games with screenshots yet"},
		},
		{
			name: "conflicted account",
			account: AccountStatus{
				Name:   "carol",
				Status: StatusConflict,
				Links: []LinkStatus{
					{Name: "Portal", Status: StatusConflict, Detail: "link path is occupied by a file"},
				},
			},
			contains: []string{"carol:", "Portal", "occupied by a file"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RenderAccountStatus(tt.account)
			for _, expected := range tt.contains {
				if !strings.Contains(result, expected) {
					t.Errorf("Expected output to contain %q, got %q", expected, result)
				}
			}
		})
	}
}

func TestAggregateAccountStatus(t *testing.T) {
	tests := []struct {
		name     string
		links    []LinkStatus
		expected Status
	}{
		{
			name:     "no entries",
			links:    nil,
			expected: StatusLinked,
		},
		{
			name: "all linked",
			links: []LinkStatus{
				{Status: StatusLinked},
				{Status: StatusLinked},
			},
			expected: StatusLinked,
		},
		{
			name: "one pending",
			links: []LinkStatus{
				{Status: StatusLinked},
				{Status: StatusPending},
			},
			expected: StatusPending,
		},
		{
			name: "stale only",
			links: []LinkStatus{
				{Status: StatusLinked},
				{Status: StatusStale},
			},
			expected: StatusStale,
		},
		{
			name: "conflict wins over pending",
			links: []LinkStatus{
				{Status: StatusPending},
				{Status: StatusConflict},
			},
			expected: StatusConflict,
		},
		{
			name: "failure counts as conflict",
			links: []LinkStatus{
				{Status: StatusLinked},
				{Status: StatusFailed},
			},
			expected: StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AggregateAccountStatus(tt.links)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestStatusStyle(t *testing.T) {
	// Every status must map to a usable style, including unknown ones.
	statuses := []Status{StatusLinked, StatusPending, StatusStale, StatusConflict, StatusFailed, Status("bogus")}
	for _, s := range statuses {
		if StatusStyle(s) == nil {
			t.Errorf("StatusStyle(%q) returned nil", s)
		}
	}
}
