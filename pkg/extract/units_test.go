package extract

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/luppa-project/luppa/pkg/loader"
)

func TestSplitIntoSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty input",
			text: "",
			want: []string(nil),
		},
		{
			name: "single sentence",
			text: "The mayor signed the contract.",
			want: []string{"The mayor signed the contract."},
		},
		{
			name: "multiple sentences",
			text: "The mayor signed the contract. The firm belongs to his brother! Who approved this?",
			want: []string{
				"The mayor signed the contract.",
				"The firm belongs to his brother!",
				"Who approved this?",
			},
		},
		{
			name: "sentences with empty lines",
			text: "First declaration.\n\nSecond declaration.\n\nThird declaration.",
			want: []string{
				"First declaration.",
				"Second declaration.",
				"Third declaration.",
			},
		},
		{
			name: "multi-line sentence",
			text: "This is a long\nsentence that spans\nmultiple lines.",
			want: []string{"This is a long sentence that spans multiple lines."},
		},
		{
			name: "text with no punctuation",
			text: "Just some text without punctuation\nMore text here",
			want: []string{"Just some text without punctuation More text here"},
		},
		{
			name: "numeric listing should stay in same sentence",
			text: "The audit lists three items. 1. First item 2. Second item 3. Third item. Done!",
			want: []string{
				"The audit lists three items.",
				"1. First item 2. Second item 3. Third item.",
				"Done!",
			},
		},
		{
			name: "quoted sentence end",
			text: `He said "the award was clean." Records disagree.`,
			want: []string{
				`He said "the award was clean."`,
				"Records disagree.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitIntoSentences(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitIntoSentences() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

type mockLoader struct {
	text string
}

func (m *mockLoader) GetDocumentText(ctx context.Context, doc loader.Document) ([]byte, error) {
	return []byte(m.text), nil
}

func TestUnitsFromDocument(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		maxTokens int
		want      []textUnit
	}{
		{
			name:      "single sentence under limit",
			text:      "The mayor signed.",
			maxTokens: 10,
			want: []textUnit{
				{
					documentID: "doc-1",
					start:      0,
					end:        1,
					text:       "The mayor signed.",
				},
			},
		},
		{
			name:      "multiple sentences under limit",
			text:      "First sentence. Second sentence.",
			maxTokens: 20,
			want: []textUnit{
				{
					documentID: "doc-1",
					start:      0,
					end:        2,
					text:       "First sentence. Second sentence.",
				},
			},
		},
		{
			name:      "sentences split by token limit",
			text:      "First sentence. Second sentence. Third sentence.",
			maxTokens: 1,
			want: []textUnit{
				{
					documentID: "doc-1",
					start:      0,
					end:        1,
					text:       "First sentence.",
				},
				{
					documentID: "doc-1",
					start:      1,
					end:        2,
					text:       "Second sentence.",
				},
				{
					documentID: "doc-1",
					start:      2,
					end:        3,
					text:       "Third sentence.",
				},
			},
		},
		{
			name:      "empty text",
			text:      "",
			maxTokens: 10,
			want:      []textUnit{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := loader.Document{
				ID:        "doc-1",
				Path:      "doc.txt",
				MaxTokens: tt.maxTokens,
				Loader:    &mockLoader{text: tt.text},
			}

			got, err := unitsFromDocument(context.Background(), doc, "cl100k_base")
			if err != nil {
				t.Fatalf("unitsFromDocument() error = %v", err)
			}

			if len(got) != len(tt.want) {
				t.Fatalf("unitsFromDocument() returned %d units, want %d", len(got), len(tt.want))
			}

			for i, unit := range got {
				expected := tt.want[i]

				if unit.documentID != expected.documentID {
					t.Errorf("unit[%d].documentID = %s, want %s", i, unit.documentID, expected.documentID)
				}
				if unit.start != expected.start {
					t.Errorf("unit[%d].start = %d, want %d", i, unit.start, expected.start)
				}
				if unit.end != expected.end {
					t.Errorf("unit[%d].end = %d, want %d", i, unit.end, expected.end)
				}

				gotText := strings.TrimSpace(unit.text)
				wantText := strings.TrimSpace(expected.text)
				if gotText != wantText {
					t.Errorf("unit[%d].text = %q, want %q", i, gotText, wantText)
				}
			}
		})
	}
}
