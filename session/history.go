package session

// Who identifies the author of one history entry.
type Who string

const (
	WhoUser   Who = "user"
	WhoEngine Who = "engine"
)

// Entry is one turn of the conversation, kept for audit and replay.
type Entry struct {
	Who  Who    `json:"who"`
	Text string `json:"text"`
}

// appendEntry adds an entry, dropping an exact repeat of the last one.
func appendEntry(history []Entry, who Who, text string) []Entry {
	if text == "" {
		return history
	}
	if len(history) > 0 {
		last := history[len(history)-1]
		if last.Who == who && last.Text == text {
			return history
		}
	}
	return append(history, Entry{Who: who, Text: text})
}

// trimHistory keeps the last n entries. n <= 0 disables trimming.
func trimHistory(history []Entry, n int) []Entry {
	if n <= 0 || len(history) <= n {
		return history
	}
	out := make([]Entry, n)
	copy(out, history[len(history)-n:])
	return out
}
