package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/user-directory/internal/guard"
	"github.com/MKhiriev/user-directory/internal/logger"
	"github.com/MKhiriev/user-directory/internal/session"
	"github.com/MKhiriev/user-directory/internal/store"
	"github.com/MKhiriev/user-directory/internal/validators"
	"github.com/MKhiriev/user-directory/models"
)

// Notices attached to account outcomes.
const (
	NoticeSignInRequired = "Please sign in to access this page."
	NoticeWelcome        = "Welcome to the Sample App!"
	NoticeProfileUpdated = "Profile updated."
	NoticeAccountCreated = "Your account was created. Please sign in."

	msgEmailTaken = "Email has already been taken"
)

type accountService struct {
	users       store.UserStore
	credentials CredentialService
	validator   validators.Validator

	pageSize int

	logger *logger.Logger
}

// NewAccountService constructs the [AccountService]. A pageSize below 1 falls
// back to [models.DefaultPageSize].
func NewAccountService(users store.UserStore, credentials CredentialService, pageSize int, logger *logger.Logger) AccountService {
	if pageSize < 1 {
		pageSize = models.DefaultPageSize
	}

	return &accountService{
		users:       users,
		credentials: credentials,
		validator:   validators.NewUserValidator(),
		pageSize:    pageSize,
		logger:      logger,
	}
}

func requireSignIn() models.Outcome {
	return models.Outcome{
		Kind:  models.OutcomeRequireSignIn,
		Flash: &models.Flash{Kind: models.FlashNotice, Message: NoticeSignInRequired},
	}
}

func redirectToRoot() models.Outcome {
	return models.Outcome{Kind: models.OutcomeRedirectToRoot}
}

func notFound() models.Outcome {
	return models.Outcome{Kind: models.OutcomeNotFound}
}

// denied maps a non-permit decision to its redirect outcome.
func denied(decision guard.Decision) models.Outcome {
	if decision == guard.DenyUnauthenticated {
		return requireSignIn()
	}
	return redirectToRoot()
}

func (a *accountService) Index(ctx context.Context, sc session.Context, pageIndex int) (models.Outcome, error) {
	if !guard.CanView(sc) {
		return requireSignIn(), nil
	}

	if pageIndex < 1 {
		pageIndex = 1
	}

	page, err := a.users.Page(ctx, pageIndex, a.pageSize)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "accountService.Index").Int("page", pageIndex).Msg("error listing users")
		return models.Outcome{}, err
	}

	return models.Outcome{Kind: models.OutcomeRenderIndex, Page: &page}, nil
}

func (a *accountService) Show(ctx context.Context, sc session.Context, id int64) (models.Outcome, error) {
	if !guard.CanViewProfile(sc, id) {
		return requireSignIn(), nil
	}

	user, err := a.users.Fetch(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return notFound(), nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "accountService.Show").Int64("id", id).Msg("error fetching user")
		return models.Outcome{}, err
	}

	return models.Outcome{Kind: models.OutcomeRenderShow, User: &user}, nil
}

func (a *accountService) New(ctx context.Context, sc session.Context) (models.Outcome, error) {
	return models.Outcome{Kind: models.OutcomeRenderNew, User: &models.User{}}, nil
}

// Create signs up a new user and signs the caller in as that user. Invalid
// input and a taken email re-render the signup form without touching the store.
func (a *accountService) Create(ctx context.Context, sc session.Context, form models.SignupForm) (models.Outcome, error) {
	log := logger.FromContext(ctx)

	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	submitted := &models.User{Name: form.Name, Email: form.Email}

	if err := a.validator.Validate(ctx, form); err != nil {
		verrs, ok := validators.AsValidationErrors(err)
		if !ok {
			return models.Outcome{}, fmt.Errorf("error validating signup form: %w", err)
		}
		return renderNew(submitted, verrs), nil
	}

	hash, err := a.credentials.Hash(ctx, form.Password)
	if err != nil {
		return models.Outcome{}, err
	}

	user, err := a.users.Create(ctx, form.Name, form.Email, hash)
	if errors.Is(err, store.ErrDuplicateEmail) {
		return renderNew(submitted, emailTaken()), nil
	}
	if err != nil {
		log.Err(err).Str("func", "accountService.Create").Msg("error creating user")
		return models.Outcome{}, err
	}

	// the account exists from here on
	token, err := a.credentials.IssueSession(ctx, user.ID)
	if err != nil {
		log.Err(err).Str("func", "accountService.Create").Int64("id", user.ID).Msg("user created but session was not issued")
		return models.Outcome{
			Kind:  models.OutcomeRequireSignIn,
			Flash: &models.Flash{Kind: models.FlashNotice, Message: NoticeAccountCreated},
		}, nil
	}

	log.Info().Str("func", "accountService.Create").Int64("id", user.ID).Msg("user signed up")

	return models.Outcome{
		Kind:           models.OutcomeRedirectToShow,
		User:           &user,
		RedirectUserID: user.ID,
		Flash:          &models.Flash{Kind: models.FlashSuccess, Message: NoticeWelcome},
		Token:          &token,
	}, nil
}

func (a *accountService) Edit(ctx context.Context, sc session.Context, id int64) (models.Outcome, error) {
	if decision := guard.CanMutate(sc, id); decision != guard.Permit {
		return denied(decision), nil
	}

	user, err := a.users.Fetch(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return notFound(), nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "accountService.Edit").Int64("id", id).Msg("error fetching user")
		return models.Outcome{}, err
	}

	return models.Outcome{Kind: models.OutcomeRenderEdit, User: &user}, nil
}

// Update applies exactly the submitted fields of form to the caller's own
// record. A blank password leaves the credential untouched.
func (a *accountService) Update(ctx context.Context, sc session.Context, id int64, form models.EditForm) (models.Outcome, error) {
	log := logger.FromContext(ctx)

	if decision := guard.CanMutate(sc, id); decision != guard.Permit {
		return denied(decision), nil
	}

	current, err := a.users.Fetch(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return notFound(), nil
	}
	if err != nil {
		log.Err(err).Str("func", "accountService.Update").Int64("id", id).Msg("error fetching user")
		return models.Outcome{}, err
	}

	update := models.UserUpdate{
		Name:  trimmed(form.Name),
		Email: trimmed(form.Email),
	}
	form.Name, form.Email = update.Name, update.Email
	submitted := update.Apply(current)

	if err = a.validator.Validate(ctx, form); err != nil {
		verrs, ok := validators.AsValidationErrors(err)
		if !ok {
			return models.Outcome{}, fmt.Errorf("error validating edit form: %w", err)
		}
		return renderEdit(&submitted, verrs), nil
	}

	if form.ChangesPassword() {
		hash, hashErr := a.credentials.Hash(ctx, *form.Password)
		if hashErr != nil {
			return models.Outcome{}, hashErr
		}
		update.PasswordHash = &hash
	}

	if update.IsEmpty() {
		verrs := validators.ValidationErrors{}
		verrs.Add(validators.FieldBase, validators.ErrNoFieldsToUpdate.Error())
		return renderEdit(&submitted, verrs), nil
	}

	updated, err := a.users.Update(ctx, id, update)
	switch {
	case errors.Is(err, store.ErrDuplicateEmail):
		return renderEdit(&submitted, emailTaken()), nil
	case errors.Is(err, store.ErrNotFound):
		return notFound(), nil
	case err != nil:
		log.Err(err).Str("func", "accountService.Update").Int64("id", id).Msg("error updating user")
		return models.Outcome{}, err
	}

	log.Info().Str("func", "accountService.Update").Int64("id", id).Msg("profile updated")

	return models.Outcome{
		Kind:           models.OutcomeRedirectToShow,
		User:           &updated,
		RedirectUserID: id,
		Flash:          &models.Flash{Kind: models.FlashSuccess, Message: NoticeProfileUpdated},
	}, nil
}

func renderNew(submitted *models.User, errs validators.ValidationErrors) models.Outcome {
	return models.Outcome{Kind: models.OutcomeRenderNew, User: submitted, Errors: errs}
}

func renderEdit(submitted *models.User, errs validators.ValidationErrors) models.Outcome {
	return models.Outcome{Kind: models.OutcomeRenderEdit, User: submitted, Errors: errs}
}

func emailTaken() validators.ValidationErrors {
	return validators.ValidationErrors{validators.FieldEmail: {msgEmailTaken}}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
