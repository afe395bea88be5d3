package domain

// Note is a free-text annotation attached to a book. Notes are scoped by
// their own OwnerID: a note is visible only to the user who wrote it, even
// if the parent book later changes hands (which it can't, today).
type Note struct {
	ID      string `json:"id"`
	OwnerID string `json:"ownerId"`
	BookID  string `json:"bookId"`
	Content string `json:"content"`
	Timestamps

	// Book is the denormalized parent reference populated on note detail
	// responses. Never persisted.
	Book *NoteBookRef `json:"book,omitempty"`
}

// NoteBookRef is the slim parent-book view embedded in note detail responses.
type NoteBookRef struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
}
