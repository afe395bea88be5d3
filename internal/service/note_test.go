package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pagekeep/pagekeep-server/internal/domain"
	domainerrors "github.com/pagekeep/pagekeep-server/internal/errors"
	"github.com/pagekeep/pagekeep-server/internal/service"
)

func createNote(t *testing.T, svc *testServices, ownerID, bookID, content string) *domain.Note {
	t.Helper()

	resp, err := svc.notes.Create(context.Background(), ownerID, bookID, service.NoteRequest{Content: content})
	require.NoError(t, err)
	return resp.Note
}

func TestNoteService_Create(t *testing.T) {
	svc := setupServices(t)

	book := createBook(t, svc, "user-a", service.CreateBookRequest{
		Title:  "Dune",
		Author: "Frank Herbert",
	})

	note := createNote(t, svc, "user-a", book.ID, "the spice must flow")
	require.Equal(t, "the spice must flow", note.Content)
	require.Equal(t, book.ID, note.BookID)
	require.NotNil(t, note.Book)
	require.Equal(t, "Dune", note.Book.Title)
	require.Equal(t, "Frank Herbert", note.Book.Author)
}

func TestNoteService_Create_WhitespaceOnlyContent(t *testing.T) {
	svc := setupServices(t)

	book := createBook(t, svc, "user-a", service.CreateBookRequest{Title: "Dune"})

	_, err := svc.notes.Create(context.Background(), "user-a", book.ID, service.NoteRequest{Content: "   \n\t "})
	require.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestNoteService_Create_ForeignBook(t *testing.T) {
	svc := setupServices(t)

	book := createBook(t, svc, "user-a", service.CreateBookRequest{Title: "Dune"})

	_, err := svc.notes.Create(context.Background(), "user-c", book.ID, service.NoteRequest{Content: "sneaky"})
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestNoteService_Get_ForeignNote(t *testing.T) {
	svc := setupServices(t)

	book := createBook(t, svc, "user-a", service.CreateBookRequest{Title: "Dune"})
	note := createNote(t, svc, "user-a", book.ID, "private thought")

	_, err := svc.notes.Get(context.Background(), "user-c", note.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestNoteService_Get_MalformedID(t *testing.T) {
	svc := setupServices(t)

	_, err := svc.notes.Get(context.Background(), "user-a", "note")
	require.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestNoteService_Update(t *testing.T) {
	svc := setupServices(t)

	book := createBook(t, svc, "user-a", service.CreateBookRequest{Title: "Dune"})
	note := createNote(t, svc, "user-a", book.ID, "first draft")

	resp, err := svc.notes.Update(context.Background(), "user-a", note.ID, service.NoteRequest{
		Content: "  second draft  ",
	})
	require.NoError(t, err)
	require.Equal(t, "second draft", resp.Note.Content)

	got, err := svc.notes.Get(context.Background(), "user-a", note.ID)
	require.NoError(t, err)
	require.Equal(t, "second draft", got.Note.Content)
}

func TestNoteService_Update_ForeignNote(t *testing.T) {
	svc := setupServices(t)

	book := createBook(t, svc, "user-a", service.CreateBookRequest{Title: "Dune"})
	note := createNote(t, svc, "user-a", book.ID, "original")

	_, err := svc.notes.Update(context.Background(), "user-c", note.ID, service.NoteRequest{Content: "tampered"})
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	got, err := svc.notes.Get(context.Background(), "user-a", note.ID)
	require.NoError(t, err)
	require.Equal(t, "original", got.Note.Content)
}

func TestNoteService_Delete(t *testing.T) {
	svc := setupServices(t)

	book := createBook(t, svc, "user-a", service.CreateBookRequest{Title: "Dune"})
	note := createNote(t, svc, "user-a", book.ID, "ephemeral")

	require.NoError(t, svc.notes.Delete(context.Background(), "user-a", note.ID))

	_, err := svc.notes.Get(context.Background(), "user-a", note.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestNoteService_Delete_ForeignNote(t *testing.T) {
	svc := setupServices(t)

	book := createBook(t, svc, "user-a", service.CreateBookRequest{Title: "Dune"})
	note := createNote(t, svc, "user-a", book.ID, "keep out")

	err := svc.notes.Delete(context.Background(), "user-c", note.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestNoteService_ListForBook(t *testing.T) {
	svc := setupServices(t)

	book := createBook(t, svc, "user-a", service.CreateBookRequest{Title: "Dune"})
	createNote(t, svc, "user-a", book.ID, "chapter one")
	createNote(t, svc, "user-a", book.ID, "chapter two")

	other := createBook(t, svc, "user-a", service.CreateBookRequest{Title: "Hyperion"})
	createNote(t, svc, "user-a", other.ID, "unrelated")

	resp, err := svc.notes.ListForBook(context.Background(), "user-a", book.ID)
	require.NoError(t, err)
	require.Equal(t, book.ID, resp.BookID)
	require.Len(t, resp.Notes, 2)

	contents := []string{resp.Notes[0].Content, resp.Notes[1].Content}
	require.ElementsMatch(t, []string{"chapter one", "chapter two"}, contents)
}
