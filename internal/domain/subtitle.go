package domain

// SubtitleFormat is the only format subtitles are converted to.
const SubtitleFormat = "srt"

// LanguageAuto is reported when no explicit subtitle language was requested.
const LanguageAuto = "auto"

// Subtitle is a fetched subtitle file.
type Subtitle struct {
	Content  string `json:"content"`
	Title    string `json:"title"`
	Language string `json:"language"`
	Format   string `json:"format"`
}
