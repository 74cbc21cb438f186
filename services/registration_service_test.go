package services

import (
	"context"
	"errors"
	"testing"

	"github.com/muqabla/sportshub/models"
	"github.com/muqabla/sportshub/repositories"
)

func openEvent(maxTeams int) *models.Event {
	return &models.Event{ID: 1, Status: models.EventStatusRegistrationOpen, MaxTeams: maxTeams}
}

func TestRegisterTeamRequiresOpenRegistration(t *testing.T) {
	eventRepo := &fakeEventRepo{
		GetByIDFn: func(ctx context.Context, id int) (*models.Event, error) {
			return &models.Event{ID: id, Status: models.EventStatusOngoing, MaxTeams: 8}, nil
		},
	}
	svc := NewRegistrationService(&fakeRegistrationRepo{}, eventRepo, &fakeTeamRepo{})

	if _, err := svc.RegisterTeam(context.Background(), 1, RegisterTeamInput{TeamID: 2}); !errors.Is(err, ErrRegistrationNotOpen) {
		t.Fatalf("got %v, want ErrRegistrationNotOpen", err)
	}
}

func TestRegisterTeamRejectsFullEvent(t *testing.T) {
	eventRepo := &fakeEventRepo{
		GetByIDFn: func(ctx context.Context, id int) (*models.Event, error) {
			return openEvent(4), nil
		},
	}
	registrationRepo := &fakeRegistrationRepo{
		CountApprovedByEventFn: func(ctx context.Context, eventID int) (int, error) {
			return 4, nil
		},
	}
	svc := NewRegistrationService(registrationRepo, eventRepo, &fakeTeamRepo{})

	if _, err := svc.RegisterTeam(context.Background(), 1, RegisterTeamInput{TeamID: 2}); !errors.Is(err, ErrEventFull) {
		t.Fatalf("got %v, want ErrEventFull", err)
	}
}

func TestRegisterTeamDuplicateConflict(t *testing.T) {
	eventRepo := &fakeEventRepo{
		GetByIDFn: func(ctx context.Context, id int) (*models.Event, error) {
			return openEvent(8), nil
		},
	}
	registrationRepo := &fakeRegistrationRepo{
		CreateFn: func(ctx context.Context, registration *models.EventRegistration) error {
			return repositories.ErrRegistrationConflict
		},
	}
	svc := NewRegistrationService(registrationRepo, eventRepo, &fakeTeamRepo{})

	if _, err := svc.RegisterTeam(context.Background(), 1, RegisterTeamInput{TeamID: 2}); !errors.Is(err, ErrRegistrationConflict) {
		t.Fatalf("got %v, want ErrRegistrationConflict", err)
	}
}

func TestRegisterTeamCreatesPending(t *testing.T) {
	eventRepo := &fakeEventRepo{
		GetByIDFn: func(ctx context.Context, id int) (*models.Event, error) {
			return openEvent(8), nil
		},
	}
	registrationRepo := &fakeRegistrationRepo{
		CreateFn: func(ctx context.Context, registration *models.EventRegistration) error {
			registration.ID = 42
			return nil
		},
	}
	svc := NewRegistrationService(registrationRepo, eventRepo, &fakeTeamRepo{})

	registration, err := svc.RegisterTeam(context.Background(), 1, RegisterTeamInput{TeamID: 2})
	if err != nil {
		t.Fatalf("RegisterTeam: %v", err)
	}
	if registration.Status != models.RegistrationPending {
		t.Errorf("status = %s, want PENDING", registration.Status)
	}
	if registration.EventID != 1 || registration.TeamID != 2 {
		t.Errorf("registration = %+v, want eventID 1 teamID 2", registration)
	}
}

func TestRegisterTeamRequiresTeamID(t *testing.T) {
	svc := NewRegistrationService(&fakeRegistrationRepo{}, &fakeEventRepo{}, &fakeTeamRepo{})

	if _, err := svc.RegisterTeam(context.Background(), 1, RegisterTeamInput{}); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("got %v, want ErrValidationFailed", err)
	}
}

func TestUpdateRegistrationRejectsUnknownStatus(t *testing.T) {
	svc := NewRegistrationService(&fakeRegistrationRepo{}, &fakeEventRepo{}, &fakeTeamRepo{})

	bogus := "WAITLISTED"
	if _, err := svc.UpdateRegistration(context.Background(), 1, UpdateRegistrationInput{Status: &bogus}); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("got %v, want ErrValidationFailed", err)
	}
}

func TestUpdateRegistrationNotFound(t *testing.T) {
	registrationRepo := &fakeRegistrationRepo{
		GetByIDFn: func(ctx context.Context, id int) (*models.EventRegistration, error) {
			return nil, repositories.ErrRegistrationNotFound
		},
	}
	svc := NewRegistrationService(registrationRepo, &fakeEventRepo{}, &fakeTeamRepo{})

	approved := string(models.RegistrationApproved)
	if _, err := svc.UpdateRegistration(context.Background(), 99, UpdateRegistrationInput{Status: &approved}); !errors.Is(err, ErrRegistrationNotFound) {
		t.Fatalf("got %v, want ErrRegistrationNotFound", err)
	}
}

func TestUpdateRegistrationApprovalRespectsCapacity(t *testing.T) {
	registrationRepo := &fakeRegistrationRepo{
		GetByIDFn: func(ctx context.Context, id int) (*models.EventRegistration, error) {
			return &models.EventRegistration{ID: id, EventID: 3, TeamID: 2, Status: models.RegistrationPending}, nil
		},
		CountApprovedByEventFn: func(ctx context.Context, eventID int) (int, error) {
			return 4, nil
		},
	}
	eventRepo := &fakeEventRepo{
		GetByIDFn: func(ctx context.Context, id int) (*models.Event, error) {
			return &models.Event{ID: id, MaxTeams: 4, Status: models.EventStatusRegistrationOpen}, nil
		},
	}
	svc := NewRegistrationService(registrationRepo, eventRepo, &fakeTeamRepo{})

	approved := string(models.RegistrationApproved)
	if _, err := svc.UpdateRegistration(context.Background(), 8, UpdateRegistrationInput{Status: &approved}); !errors.Is(err, ErrEventFull) {
		t.Fatalf("got %v, want ErrEventFull", err)
	}
}

func TestUpdateRegistrationRejectionSkipsCapacityCheck(t *testing.T) {
	registrationRepo := &fakeRegistrationRepo{
		GetByIDFn: func(ctx context.Context, id int) (*models.EventRegistration, error) {
			return &models.EventRegistration{ID: id, EventID: 3, TeamID: 2, Status: models.RegistrationPending}, nil
		},
		CountApprovedByEventFn: func(ctx context.Context, eventID int) (int, error) {
			t.Fatal("capacity check must not run for a rejection")
			return 0, nil
		},
	}
	svc := NewRegistrationService(registrationRepo, &fakeEventRepo{}, &fakeTeamRepo{})

	rejected := string(models.RegistrationRejected)
	registration, err := svc.UpdateRegistration(context.Background(), 8, UpdateRegistrationInput{Status: &rejected})
	if err != nil {
		t.Fatalf("UpdateRegistration: %v", err)
	}
	if registration == nil {
		t.Fatal("registration is nil")
	}
}
