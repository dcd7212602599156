package airtable

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMentorIDFromEmail(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr bool
	}{
		{name: "found", status: 200, body: `{"records":[{"id":"recABC"}]}`, want: "recABC"},
		{name: "not found is not an error", status: 200, body: `{"records":[]}`, want: ""},
		{name: "auth failure", status: 401, body: `{"error":"AUTHENTICATION_REQUIRED"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotFormula string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotFormula = r.URL.Query().Get("filterByFormula")
				if got := r.Header.Get("Authorization"); got != "Bearer key123" {
					t.Errorf("auth header = %q", got)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := New(srv.URL, "appBASE", "key123")
			got, err := c.MentorIDFromEmail(context.Background(), "mentor@example.com")
			if tt.wantErr {
				if err == nil {
					t.Fatal("want error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("mentor ID = %q, want %q", got, tt.want)
			}
			if gotPath != "/appBASE/Mentors" {
				t.Errorf("path = %q", gotPath)
			}
			if gotFormula != "{Email}='mentor@example.com'" {
				t.Errorf("formula = %q", gotFormula)
			}
		})
	}
}

func TestUpdateRequest(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotBody)
		w.Write([]byte(`{"id":"recREQ"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "appBASE", "key123")
	if err := c.UpdateRequest(context.Background(), "recREQ", "recMENTOR"); err != nil {
		t.Fatal(err)
	}

	if gotMethod != http.MethodPatch {
		t.Errorf("method = %q, want PATCH", gotMethod)
	}
	if gotPath != "/appBASE/Mentor%20Request/recREQ" && gotPath != "/appBASE/Mentor Request/recREQ" {
		t.Errorf("path = %q", gotPath)
	}
	fields, _ := gotBody["fields"].(map[string]interface{})
	assigned, _ := fields["Mentor Assigned"].([]interface{})
	if len(assigned) != 1 || assigned[0] != "recMENTOR" {
		t.Errorf("body = %+v", gotBody)
	}
}

func TestUpdateRequestFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := New(srv.URL, "appBASE", "key123")
	if err := c.UpdateRequest(context.Background(), "recREQ", "recMENTOR"); err == nil {
		t.Fatal("want error for non-200")
	}
}
