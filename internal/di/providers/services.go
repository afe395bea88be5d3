package providers

import (
	"github.com/samber/do/v2"

	"github.com/pagekeep/pagekeep-server/internal/auth"
	"github.com/pagekeep/pagekeep-server/internal/logger"
	"github.com/pagekeep/pagekeep-server/internal/service"
	"github.com/pagekeep/pagekeep-server/internal/validation"
)

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	validate := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokens, validate, log.Logger), nil
}

// ProvideBookService provides the book catalog service.
func ProvideBookService(i do.Injector) (*service.BookService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validate := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBookService(storeHandle.Store, validate, log.Logger), nil
}

// ProvideProgressService provides the reading progress service.
func ProvideProgressService(i do.Injector) (*service.ProgressService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	books := do.MustInvoke[*service.BookService](i)
	validate := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewProgressService(storeHandle.Store, books, validate, log.Logger), nil
}

// ProvideNoteService provides the notes service.
func ProvideNoteService(i do.Injector) (*service.NoteService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	books := do.MustInvoke[*service.BookService](i)
	validate := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewNoteService(storeHandle.Store, books, validate, log.Logger), nil
}

// ProvideLookupService provides the external catalog lookup service.
func ProvideLookupService(i do.Injector) (*service.LookupService, error) {
	google := do.MustInvoke[*GoogleBooksClientHandle](i)
	openLibrary := do.MustInvoke[*OpenLibraryClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewLookupService(google.Client, openLibrary.Client, log.Logger), nil
}
