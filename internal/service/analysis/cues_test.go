package analysis

import "testing"

func TestCueText_SRT(t *testing.T) {
	t.Parallel()

	srt := "\uFEFF1\r\n00:00:01,000 --> 00:00:03,500\r\n<i>Hello there.</i>\r\n\r\n" +
		"2\r\n00:00:04,000 --> 00:00:06,000\r\n{\\an8}How are\r\nyou doing?\r\n\r\n"

	got := CueText(srt)
	want := "Hello there. How are you doing?"
	if got != want {
		t.Errorf("CueText() = %q, want %q", got, want)
	}
}

func TestCueText_VTT(t *testing.T) {
	t.Parallel()

	vtt := "WEBVTT\nKind: captions\nLanguage: en\n\n" +
		"00:00.000 --> 00:02.000 align:start position:0%\nIt's raining <c.blue>cats</c> and dogs.\n\n" +
		"00:02.000 --> 00:04.000\nIt's raining <c.blue>cats</c> and dogs.\n\n" +
		"NOTE this is a comment\n\n" +
		"00:00:04.000 --> 00:00:06.000\nBreak a leg!\n"

	got := CueText(vtt)
	want := "It's raining cats and dogs. Break a leg!"
	if got != want {
		t.Errorf("CueText() = %q, want %q", got, want)
	}
}

func TestTextFromFile(t *testing.T) {
	t.Parallel()

	plain := "12\nApples are red.\n"
	if got := TextFromFile("notes.txt", plain); got != plain {
		t.Errorf("txt should pass through, got %q", got)
	}
	if got := TextFromFile("EP01.SRT", "1\n00:00:01,000 --> 00:00:02,000\nHi.\n"); got != "Hi." {
		t.Errorf("srt should be stripped, got %q", got)
	}
}
