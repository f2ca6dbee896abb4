package textscan

import (
	"reflect"
	"testing"
)

func TestHashtags(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "no hashtags",
			text: "just some plain text",
			want: nil,
		},
		{
			name: "single hashtag",
			text: "studying for #finals tonight",
			want: []string{"finals"},
		},
		{
			name: "multiple in order of appearance",
			text: "#golang tips for #exams and more #golang love",
			want: []string{"golang", "exams"},
		},
		{
			name: "case preserved, dedup case-insensitive",
			text: "#GoLang and #golang and #GOLANG",
			want: []string{"GoLang"},
		},
		{
			name: "underscores and digits",
			text: "#cs_101 #2024",
			want: []string{"cs_101", "2024"},
		},
		{
			name: "punctuation terminates token",
			text: "love #go! and #rust, too",
			want: []string{"go", "rust"},
		},
		{
			name: "bare hash is not a tag",
			text: "a # alone and #",
			want: nil,
		},
		{
			name: "hashtag at start and end",
			text: "#first middle #last",
			want: []string{"first", "last"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hashtags(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Hashtags(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestHashtagsNoStaleResidue(t *testing.T) {
	// Deleting every #token from the text must yield an empty list; the
	// whole-text rescan cannot leave stale tags behind.
	withTags := "working on #thesis with @advisor #deadline"
	if got := Hashtags(withTags); len(got) != 2 {
		t.Fatalf("expected 2 hashtags, got %v", got)
	}

	edited := "working on thesis with @advisor deadline"
	if got := Hashtags(edited); got != nil {
		t.Errorf("expected no hashtags after edit, got %v", got)
	}
}

func TestMentions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"none", "no mentions here", nil},
		{"single", "thanks @jane for the notes", []string{"jane"}},
		{"multiple with dedup", "@jane @bob @Jane", []string{"jane", "bob"}},
		{"mid-word at sign", "email me at jane@example.com", []string{"example"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Mentions(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Mentions(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTriggerAt(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		cursor     int
		wantActive bool
		wantQuery  string
	}{
		{
			name:       "bare at sign activates with empty query",
			text:       "hello @",
			cursor:     7,
			wantActive: true,
			wantQuery:  "",
		},
		{
			name:       "partial name before cursor",
			text:       "hello @joh",
			cursor:     10,
			wantActive: true,
			wantQuery:  "joh",
		},
		{
			name:       "space after name deactivates",
			text:       "hello @john ",
			cursor:     12,
			wantActive: false,
		},
		{
			name:       "punctuation after at deactivates",
			text:       "hey @john!",
			cursor:     10,
			wantActive: false,
		},
		{
			name:       "cursor in middle of mention",
			text:       "hello @john there",
			cursor:     9,
			wantActive: true,
			wantQuery:  "jo",
		},
		{
			name:       "cursor before the at sign",
			text:       "hello @john",
			cursor:     6,
			wantActive: false,
		},
		{
			name:       "no at sign at all",
			text:       "hello world",
			cursor:     11,
			wantActive: false,
		},
		{
			name:       "cursor clamped past end",
			text:       "@ab",
			cursor:     99,
			wantActive: true,
			wantQuery:  "ab",
		},
		{
			name:       "negative cursor clamped to start",
			text:       "@ab",
			cursor:     -1,
			wantActive: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TriggerAt(tt.text, tt.cursor)
			if got.Active != tt.wantActive {
				t.Errorf("TriggerAt(%q, %d).Active = %v, want %v", tt.text, tt.cursor, got.Active, tt.wantActive)
			}
			if got.Active && got.Query != tt.wantQuery {
				t.Errorf("TriggerAt(%q, %d).Query = %q, want %q", tt.text, tt.cursor, got.Query, tt.wantQuery)
			}
		})
	}
}

func TestTriggerRecomputedOnCursorMoveAlone(t *testing.T) {
	// Same text, different cursor positions: clicking around in already
	// typed text must flip the trigger without any text change.
	text := "ping @sam about #lab"

	inMention := TriggerAt(text, 9) // inside "@sam"
	if !inMention.Active || inMention.Query != "sam" {
		t.Errorf("expected active trigger with query 'sam', got %+v", inMention)
	}

	atEnd := TriggerAt(text, len([]rune(text)))
	if atEnd.Active {
		t.Errorf("expected inactive trigger at end of text, got %+v", atEnd)
	}
}

func TestAnalyze(t *testing.T) {
	text := "draft for @prof_lee on #Algorithms #algorithms @"
	a := Analyze(text, len([]rune(text)))

	if want := []string{"Algorithms"}; !reflect.DeepEqual(a.Hashtags, want) {
		t.Errorf("Hashtags = %v, want %v", a.Hashtags, want)
	}
	if want := []string{"prof_lee"}; !reflect.DeepEqual(a.Mentions, want) {
		t.Errorf("Mentions = %v, want %v", a.Mentions, want)
	}
	if !a.Trigger.Active || a.Trigger.Query != "" {
		t.Errorf("expected active trigger with empty query, got %+v", a.Trigger)
	}
}
