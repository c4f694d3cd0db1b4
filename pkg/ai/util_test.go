package ai

import (
	"testing"
)

func TestUnmarshalFlexible_ObjectVariants(t *testing.T) {
	type extracted struct {
		Name string `json:"name"`
		Type string `json:"type,omitempty"`
	}

	tests := []struct {
		name  string
		input string
		want  extracted
	}{
		{
			name:  "valid json object",
			input: `{"name":"Juan Perez"}`,
			want:  extracted{Name: "Juan Perez"},
		},
		{
			name:  "unquoted key and single quotes",
			input: `{name: 'Juan Perez'}`,
			want:  extracted{Name: "Juan Perez"},
		},
		{
			name:  "trailing comma",
			input: `{"name":"Juan Perez",}`,
			want:  extracted{Name: "Juan Perez"},
		},
		{
			name:  "missing endbracket",
			input: `{"name":"Juan Perez`,
			want:  extracted{Name: "Juan Perez"},
		},
		{
			name:  "stringified invalid json object",
			input: `"{name: 'Juan Perez'}"`,
			want:  extracted{Name: "Juan Perez"},
		},
		{
			name:  "duplicate leading brace",
			input: "{\n{\n  \"name\": \"Juan Perez\"\n}\n",
			want:  extracted{Name: "Juan Perez"},
		},
		{
			name:  "duplicate leading brace no newlines",
			input: `{ { "name": "Juan Perez" }`,
			want:  extracted{Name: "Juan Perez"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got extracted
			if err := UnmarshalFlexible(tc.input, &got); err != nil {
				t.Fatalf("UnmarshalFlexible() error = %v", err)
			}
			if got.Name != tc.want.Name || got.Type != tc.want.Type {
				t.Fatalf("UnmarshalFlexible() got = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestUnmarshalFlexible_ArrayVariants(t *testing.T) {
	type extracted struct {
		Name string `json:"name"`
		Type string `json:"type,omitempty"`
	}

	input := `[{name:'A'},{name:'B',}]`
	var got []extracted
	if err := UnmarshalFlexible(input, &got); err != nil {
		t.Fatalf("UnmarshalFlexible() error = %v", err)
	}
	if len(got) != 2 || got[0].Name != "A" || got[1].Name != "B" {
		t.Fatalf("UnmarshalFlexible() got = %+v, want two entries A,B", got)
	}
}

func TestUnmarshalFlexible_Unrecoverable(t *testing.T) {
	type extracted struct {
		Name string `json:"name"`
	}

	var got extracted
	if err := UnmarshalFlexible("hello", &got); err == nil {
		t.Fatalf("UnmarshalFlexible() expected error for unrecoverable input")
	}
}

func TestUnmarshalFlexible_NestedExamples(t *testing.T) {
	type network struct {
		Name     string   `json:"name"`
		Capital  string   `json:"capital"`
		Contacts []string `json:"contacts"`
	}

	tests := []struct {
		name  string
		input string
		want  network
	}{
		{
			name:  "simple stringified",
			input: `"{ \"name\": \"Andina\", \"capital\": \"2.4M\", \"contacts\": [ \"Perez\", \"Diaz\" ] }"`,
			want:  network{Name: "Andina", Capital: "2.4M", Contacts: []string{"Perez", "Diaz"}},
		},
		{
			name:  "stringified with newlines",
			input: `"{\n  \"name\": \"Andina\",\n  \"capital\": \"2.4M\",\n  \"contacts\": [\"Perez\", \"Diaz\", \"Suarez (minority partner)\"]\n  }\n"`,
			want:  network{Name: "Andina", Capital: "2.4M", Contacts: []string{"Perez", "Diaz", "Suarez (minority partner)"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got network
			if err := UnmarshalFlexible(tc.input, &got); err != nil {
				t.Fatalf("UnmarshalFlexible() error = %v", err)
			}
			if got.Name != tc.want.Name || got.Capital != tc.want.Capital {
				t.Fatalf("UnmarshalFlexible() got = %+v, want %+v", got, tc.want)
			}
			if len(got.Contacts) != len(tc.want.Contacts) {
				t.Fatalf("UnmarshalFlexible() contacts length got = %d, want %d", len(got.Contacts), len(tc.want.Contacts))
			}
			for i := range got.Contacts {
				if got.Contacts[i] != tc.want.Contacts[i] {
					t.Fatalf("UnmarshalFlexible() contacts[%d] = %q, want %q", i, got.Contacts[i], tc.want.Contacts[i])
				}
			}
		})
	}
}
