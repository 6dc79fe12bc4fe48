package usecases

// NotesRenderer turns markdown notes into sanitized HTML.
type NotesRenderer interface {
	Render(markdown string) (string, error)
}
