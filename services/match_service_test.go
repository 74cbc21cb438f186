package services

import (
	"context"
	"errors"
	"testing"

	"github.com/muqabla/sportshub/models"
)

func newTestMatchService(matchRepo *fakeMatchRepo, standings StandingService, broadcaster LiveBroadcaster) MatchService {
	return NewMatchService(
		matchRepo,
		&fakeScorecardRepo{},
		&fakeTeamRepo{},
		&fakeEventRepo{},
		&fakeUserRepo{},
		standings,
		broadcaster,
		discardLogger(),
	)
}

func validCreateMatchInput() CreateMatchInput {
	return CreateMatchInput{
		EventID:     1,
		HomeTeamID:  2,
		AwayTeamID:  3,
		Venue:       "Court 1",
		ScheduledAt: "2026-09-10T15:00:00Z",
	}
}

func TestCreateMatchMissingFields(t *testing.T) {
	svc := newTestMatchService(&fakeMatchRepo{}, &fakeStandingService{}, nil)

	cases := map[string]func(*CreateMatchInput){
		"eventId":     func(in *CreateMatchInput) { in.EventID = 0 },
		"homeTeamId":  func(in *CreateMatchInput) { in.HomeTeamID = 0 },
		"awayTeamId":  func(in *CreateMatchInput) { in.AwayTeamID = 0 },
		"venue":       func(in *CreateMatchInput) { in.Venue = "" },
		"scheduledAt": func(in *CreateMatchInput) { in.ScheduledAt = "" },
	}
	for name, mutate := range cases {
		input := validCreateMatchInput()
		mutate(&input)
		if _, err := svc.CreateMatch(context.Background(), input); !errors.Is(err, ErrMatchMissingFields) {
			t.Errorf("missing %s: got %v, want ErrMatchMissingFields", name, err)
		}
	}
}

func TestCreateMatchRejectsSameTeam(t *testing.T) {
	svc := newTestMatchService(&fakeMatchRepo{}, &fakeStandingService{}, nil)

	input := validCreateMatchInput()
	input.AwayTeamID = input.HomeTeamID
	if _, err := svc.CreateMatch(context.Background(), input); !errors.Is(err, ErrMatchSameTeam) {
		t.Fatalf("got %v, want ErrMatchSameTeam", err)
	}
}

func TestCreateMatchDefaultsToScheduled(t *testing.T) {
	var created *models.Match
	matchRepo := &fakeMatchRepo{
		CreateFn: func(ctx context.Context, match *models.Match) error {
			match.ID = 11
			created = match
			return nil
		},
		GetByIDFn: func(ctx context.Context, id int) (*models.Match, error) {
			copied := *created
			return &copied, nil
		},
	}
	svc := newTestMatchService(matchRepo, &fakeStandingService{}, nil)

	match, err := svc.CreateMatch(context.Background(), validCreateMatchInput())
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	if match.Status != models.MatchStatusScheduled {
		t.Errorf("status = %s, want SCHEDULED", match.Status)
	}
}

func TestUpdateMatchCompletionTriggersStandings(t *testing.T) {
	stored := &models.Match{ID: 11, EventID: 5, HomeTeamID: 2, AwayTeamID: 3, Status: models.MatchStatusLive}
	matchRepo := &fakeMatchRepo{
		GetByIDFn: func(ctx context.Context, id int) (*models.Match, error) {
			copied := *stored
			return &copied, nil
		},
		UpdateFn: func(ctx context.Context, match *models.Match) error {
			stored = match
			return nil
		},
	}

	var recalculated []int
	standings := &fakeStandingService{
		RecalculateForEventFn: func(ctx context.Context, eventID int) ([]models.Standing, error) {
			recalculated = append(recalculated, eventID)
			return nil, nil
		},
	}
	broadcaster := &fakeBroadcaster{}
	svc := newTestMatchService(matchRepo, standings, broadcaster)

	status := string(models.MatchStatusCompleted)
	homeScore, awayScore := 2, 1
	match, err := svc.UpdateMatch(context.Background(), 11, UpdateMatchInput{
		Status:    &status,
		HomeScore: &homeScore,
		AwayScore: &awayScore,
	})
	if err != nil {
		t.Fatalf("UpdateMatch: %v", err)
	}

	if len(recalculated) != 1 || recalculated[0] != 5 {
		t.Errorf("recalculated events = %v, want [5]", recalculated)
	}
	if match.EndedAt == nil {
		t.Error("endedAt not set on completion")
	}
	if len(broadcaster.matchUpdates) != 1 || broadcaster.matchUpdates[0] != 5 {
		t.Errorf("match broadcasts = %v, want [5]", broadcaster.matchUpdates)
	}
}

func TestUpdateMatchAlreadyCompletedSkipsRecalcTrigger(t *testing.T) {
	stored := &models.Match{ID: 11, EventID: 5, Status: models.MatchStatusCompleted}
	matchRepo := &fakeMatchRepo{
		GetByIDFn: func(ctx context.Context, id int) (*models.Match, error) {
			copied := *stored
			return &copied, nil
		},
	}

	var recalculated []int
	standings := &fakeStandingService{
		RecalculateForEventFn: func(ctx context.Context, eventID int) ([]models.Standing, error) {
			recalculated = append(recalculated, eventID)
			return nil, nil
		},
	}
	svc := newTestMatchService(matchRepo, standings, nil)

	notes := "rescheduled kickoff"
	if _, err := svc.UpdateMatch(context.Background(), 11, UpdateMatchInput{Notes: &notes}); err != nil {
		t.Fatalf("UpdateMatch: %v", err)
	}
	if len(recalculated) != 0 {
		t.Errorf("recalculated = %v, want none for a notes-only patch", recalculated)
	}
}

func TestUpdateMatchScoreCorrectionTriggersRecalc(t *testing.T) {
	stored := &models.Match{ID: 11, EventID: 5, Status: models.MatchStatusCompleted}
	matchRepo := &fakeMatchRepo{
		GetByIDFn: func(ctx context.Context, id int) (*models.Match, error) {
			copied := *stored
			return &copied, nil
		},
	}

	var recalculated []int
	standings := &fakeStandingService{
		RecalculateForEventFn: func(ctx context.Context, eventID int) ([]models.Standing, error) {
			recalculated = append(recalculated, eventID)
			return nil, nil
		},
	}
	svc := newTestMatchService(matchRepo, standings, nil)

	homeScore, awayScore := 4, 2
	if _, err := svc.UpdateMatch(context.Background(), 11, UpdateMatchInput{
		HomeScore: &homeScore,
		AwayScore: &awayScore,
	}); err != nil {
		t.Fatalf("UpdateMatch: %v", err)
	}
	if len(recalculated) != 1 || recalculated[0] != 5 {
		t.Errorf("recalculated = %v, want [5] after a score correction", recalculated)
	}
}

func TestUpdateMatchRejectsUnknownStatus(t *testing.T) {
	svc := newTestMatchService(&fakeMatchRepo{}, &fakeStandingService{}, nil)

	bogus := "HALFTIME"
	if _, err := svc.UpdateMatch(context.Background(), 1, UpdateMatchInput{Status: &bogus}); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("got %v, want ErrValidationFailed", err)
	}
}

func TestAddScorecardEntryValidation(t *testing.T) {
	svc := newTestMatchService(&fakeMatchRepo{}, &fakeStandingService{}, nil)

	if _, err := svc.AddScorecardEntry(context.Background(), 1, CreateScorecardInput{Minute: 10}); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("empty eventType: got %v, want ErrValidationFailed", err)
	}
	if _, err := svc.AddScorecardEntry(context.Background(), 1, CreateScorecardInput{EventType: "GOAL", Minute: -1}); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("negative minute: got %v, want ErrValidationFailed", err)
	}
}

func TestAddStatisticRequiresMember(t *testing.T) {
	svc := newTestMatchService(&fakeMatchRepo{}, &fakeStandingService{}, nil)

	if _, err := svc.AddStatistic(context.Background(), 1, CreateStatisticInput{Goals: 2}); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("got %v, want ErrValidationFailed", err)
	}
}
