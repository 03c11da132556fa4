package schema

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantLists int
		wantPath  string
		wantErr   string
	}{
		{name: "empty", input: `{"lists":[]}`},
		{name: "null lists", input: `{"lists":null}`},
		{name: "full", input: `{"lists":[{"date":"2024-01-01","tasks":[{"id":"1","text":"Buy milk","done":false}]},{"date":"2024-01-02"}]}`, wantLists: 2},
		{name: "extra fields ignored", input: `{"lists":[{"date":"2024-01-01","tasks":[],"color":"red"}],"v":2}`, wantLists: 1},
		{name: "not json", input: `{`, wantErr: "not valid JSON"},
		{name: "missing lists", input: `{}`, wantErr: "lists"},
		{name: "bad date format", input: `{"lists":[{"date":"01/02/2024","tasks":[]}]}`, wantPath: "lists[0].date"},
		{name: "impossible date", input: `{"lists":[{"date":"2024-02-31","tasks":[]}]}`, wantPath: "lists[0].date"},
		{name: "done not bool", input: `{"lists":[{"date":"2024-01-01","tasks":[{"id":"1","text":"a","done":"yes"}]}]}`, wantPath: "lists[0].tasks[0].done"},
		{name: "blank text", input: `{"lists":[{"date":"2024-01-01","tasks":[{"id":"1","text":"   ","done":false}]}]}`, wantPath: "lists[0].tasks[0].text"},
		{name: "duplicate date", input: `{"lists":[{"date":"2024-01-01"},{"date":"2024-01-01"}]}`, wantErr: "duplicate list date"},
		{name: "duplicate id", input: `{"lists":[{"date":"2024-01-01","tasks":[{"id":"1","text":"a","done":false},{"id":"1","text":"b","done":true}]}]}`, wantErr: "duplicate task id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := Validate([]byte(tt.input))
			if tt.wantErr == "" && tt.wantPath == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				if len(db.Lists) != tt.wantLists {
					t.Errorf("Validate() lists = %d, want %d", len(db.Lists), tt.wantLists)
				}
				return
			}

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if tt.wantPath != "" && ve.Path != tt.wantPath {
				t.Errorf("Validate() path = %q, want %q (%v)", ve.Path, tt.wantPath, err)
			}
			if tt.wantErr != "" && !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestPointerToPath(t *testing.T) {
	tests := map[string]string{
		"":                       "",
		"/lists":                 "lists",
		"/lists/0/date":          "lists[0].date",
		"/lists/12/tasks/3/text": "lists[12].tasks[3].text",
	}
	for in, want := range tests {
		if got := pointerToPath(in); got != want {
			t.Errorf("pointerToPath(%q) = %q, want %q", in, got, want)
		}
	}
}
