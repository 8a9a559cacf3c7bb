package notify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lshmam/neucler-square-sub000/internal/models"
)

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name  string
		award models.ProgramAward
		want  string
	}{
		{
			"custom terminology",
			models.ProgramAward{ProgramName: "Coffee Club", Terminology: "stars", Points: 5, NewBalance: 47},
			"Coffee Club: you earned 5 stars! Your balance is now 47 stars.",
		},
		{
			"default terminology",
			models.ProgramAward{ProgramName: "Rewards", Points: 42, NewBalance: 42},
			"Rewards: you earned 42 points! Your balance is now 42 points.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatMessage(tt.award); got != tt.want {
				t.Errorf("FormatMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

// recordingSender captures sent messages for assertions.
type recordingSender struct {
	sent []string
	err  error
}

func (r *recordingSender) Send(_ context.Context, to, body string) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, to+": "+body)
	return nil
}

func TestDispatcher_SkipsBlankDestination(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender)

	d.Notify(context.Background(), "", models.ProgramAward{ProgramID: "p1", Points: 5})

	if len(sender.sent) != 0 {
		t.Errorf("sent = %v, want none for blank destination", sender.sent)
	}
}

func TestDispatcher_SwallowsSendErrors(t *testing.T) {
	sender := &recordingSender{err: errors.New("gateway down")}
	d := NewDispatcher(sender)

	// Must not panic or propagate anything.
	d.Notify(context.Background(), "+15550001111", models.ProgramAward{ProgramID: "p1", Points: 5})
}

func TestSMSClient_Send(t *testing.T) {
	var gotPath, gotTo, gotFrom, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm() error = %v", err)
		}
		gotTo = r.FormValue("To")
		gotFrom = r.FormValue("From")
		gotBody = r.FormValue("Body")

		if _, _, ok := r.BasicAuth(); !ok {
			t.Error("request should carry basic auth credentials")
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewSMSClient(server.URL, "acct-1", "secret", "+15550009999")
	err := client.Send(context.Background(), "+15550001111", "hello")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if gotPath != "/accounts/acct-1/messages" {
		t.Errorf("path = %s, want /accounts/acct-1/messages", gotPath)
	}
	if gotTo != "+15550001111" || gotFrom != "+15550009999" || gotBody != "hello" {
		t.Errorf("form = to %q, from %q, body %q", gotTo, gotFrom, gotBody)
	}
}

func TestSMSClient_Send_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewSMSClient(server.URL, "acct-1", "secret", "+15550009999")
	if err := client.Send(context.Background(), "+15550001111", "hello"); err == nil {
		t.Error("Send() error = nil, want error for 503 response")
	}
}
