package expense

import (
	"encoding/json"
	"errors"
	"testing"

	"expenseshare/internal/expense/split"
)

func TestAllocateRequestUnmarshal(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantMethod split.Method
		wantNil    bool
		wantErr    bool
	}{
		{
			name:       "equal split with email list",
			body:       `{"amount":300,"splitMethod":"EQUAL","users_count":3,"users":["b@x.com","c@x.com"]}`,
			wantMethod: split.MethodEqual,
		},
		{
			name:       "exact split with payer amount",
			body:       `{"amount":100,"splitMethod":"EXACT","users_count":2,"users":[{"email":"b@x.com","exact_amount":30}],"exact_amount":70}`,
			wantMethod: split.MethodExact,
		},
		{
			name:       "percentage split with payer percentage",
			body:       `{"amount":200,"splitMethod":"PERCENTAGE","users_count":2,"users":[{"email":"b@x.com","percentage":40}],"percentage":60}`,
			wantMethod: split.MethodPercentage,
		},
		{
			name:       "recognized method without users yields empty variant",
			body:       `{"amount":50,"splitMethod":"EQUAL","users_count":1}`,
			wantMethod: split.MethodEqual,
		},
		{
			name:    "unknown method leaves split unset",
			body:    `{"amount":100,"splitMethod":"HALVSIES","users_count":2,"users":["b@x.com"]}`,
			wantNil: true,
		},
		{
			name:    "wrong users shape for method",
			body:    `{"amount":100,"splitMethod":"EXACT","users_count":2,"users":["b@x.com"]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req AllocateRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Unmarshal succeeded, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal returned error: %v", err)
			}
			if tt.wantNil {
				if req.Split != nil {
					t.Fatalf("Split = %T, want nil for unknown method", req.Split)
				}
				return
			}
			if req.Split == nil {
				t.Fatal("Split is nil")
			}
			if req.Split.Method() != tt.wantMethod {
				t.Errorf("Split.Method() = %s, want %s", req.Split.Method(), tt.wantMethod)
			}
		})
	}

	t.Run("missing users is not reported as an unknown method", func(t *testing.T) {
		var req AllocateRequest
		if err := json.Unmarshal([]byte(`{"amount":50,"splitMethod":"EQUAL","users_count":1}`), &req); err != nil {
			t.Fatalf("Unmarshal returned error: %v", err)
		}
		if req.Split == nil {
			t.Fatal("Split is nil; a recognized method must select its variant even without users")
		}
		if len(req.Split.Emails()) != 0 {
			t.Errorf("Emails() = %v, want empty", req.Split.Emails())
		}
	})

	t.Run("exact variant carries payer declared value", func(t *testing.T) {
		var req AllocateRequest
		body := `{"amount":100,"splitMethod":"EXACT","users_count":2,"users":[{"email":"b@x.com","exact_amount":30}],"exact_amount":70}`
		if err := json.Unmarshal([]byte(body), &req); err != nil {
			t.Fatalf("Unmarshal returned error: %v", err)
		}
		payer := req.Split.Payer()
		if payer.ExactAmount == nil || *payer.ExactAmount != 70 {
			t.Errorf("payer declared exact amount = %v, want 70", payer.ExactAmount)
		}
		if emails := req.Split.Emails(); len(emails) != 1 || emails[0] != "b@x.com" {
			t.Errorf("Emails() = %v", emails)
		}
	})
}

func TestValidatorOrder(t *testing.T) {
	v := NewValidator(split.NewFactory())
	resolved := map[string]ParticipantRef{"b@x.com": {ID: 2, Name: "Bob"}}

	// Count mismatch is reported before unknown participants
	req := &AllocateRequest{
		Amount:      100,
		SplitMethod: "EQUAL",
		UsersCount:  4,
		Split:       &EqualSplit{UserEmails: []string{"b@x.com", "nobody@x.com"}},
	}
	if err := v.Validate(req, resolved); !errors.Is(err, ErrParticipantCountMismatch) {
		t.Errorf("Validate() error = %v, want ErrParticipantCountMismatch", err)
	}

	// With a correct count the unresolved email is reported
	req.UsersCount = 3
	if err := v.Validate(req, resolved); !errors.Is(err, ErrUnknownParticipant) {
		t.Errorf("Validate() error = %v, want ErrUnknownParticipant", err)
	}

	// Nil split details are rejected as an unknown method
	bad := &AllocateRequest{Amount: 100, SplitMethod: "HALVSIES", UsersCount: 2}
	if err := v.Validate(bad, nil); !errors.Is(err, split.ErrUnknownMethod) {
		t.Errorf("Validate() error = %v, want ErrUnknownMethod", err)
	}
}
