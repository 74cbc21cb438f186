package services

import (
	"context"
	"time"

	"github.com/muqabla/sportshub/models"
	"github.com/muqabla/sportshub/repositories"
)

// Function-field fakes. Tests set only the calls they expect; everything else
// returns zero values.

type fakeSportRepo struct {
	CreateFn     func(ctx context.Context, sport *models.Sport) error
	GetByIDFn    func(ctx context.Context, id int) (*models.Sport, error)
	ListActiveFn func(ctx context.Context) ([]models.Sport, error)
	UpdateFn     func(ctx context.Context, sport *models.Sport) error
	DeleteFn     func(ctx context.Context, id int) error
}

func (f *fakeSportRepo) Create(ctx context.Context, sport *models.Sport) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, sport)
	}
	return nil
}

func (f *fakeSportRepo) GetByID(ctx context.Context, id int) (*models.Sport, error) {
	if f.GetByIDFn != nil {
		return f.GetByIDFn(ctx, id)
	}
	return &models.Sport{ID: id}, nil
}

func (f *fakeSportRepo) ListActive(ctx context.Context) ([]models.Sport, error) {
	if f.ListActiveFn != nil {
		return f.ListActiveFn(ctx)
	}
	return nil, nil
}

func (f *fakeSportRepo) Update(ctx context.Context, sport *models.Sport) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, sport)
	}
	return nil
}

func (f *fakeSportRepo) Delete(ctx context.Context, id int) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

type fakeUserRepo struct {
	CreateFn          func(ctx context.Context, user *models.User) error
	GetByIDFn         func(ctx context.Context, id int) (*models.User, error)
	ListFn            func(ctx context.Context, filter repositories.ListUsersFilter) ([]models.User, error)
	UpdateFn          func(ctx context.Context, user *models.User) error
	UpdateAvatarKeyFn func(ctx context.Context, userID int, avatarKey *string) error
	DeleteFn          func(ctx context.Context, id int) error
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, user)
	}
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	if f.GetByIDFn != nil {
		return f.GetByIDFn(ctx, id)
	}
	return &models.User{ID: id}, nil
}

func (f *fakeUserRepo) List(ctx context.Context, filter repositories.ListUsersFilter) ([]models.User, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx, filter)
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, user)
	}
	return nil
}

func (f *fakeUserRepo) UpdateAvatarKey(ctx context.Context, userID int, avatarKey *string) error {
	if f.UpdateAvatarKeyFn != nil {
		return f.UpdateAvatarKeyFn(ctx, userID, avatarKey)
	}
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

type fakeTeamRepo struct {
	CreateFn        func(ctx context.Context, exec repositories.SQLExecutor, team *models.Team) error
	GetByIDFn       func(ctx context.Context, id int) (*models.Team, error)
	ListFn          func(ctx context.Context, filter repositories.ListTeamsFilter) ([]models.Team, error)
	UpdateFn        func(ctx context.Context, team *models.Team) error
	UpdateLogoKeyFn func(ctx context.Context, teamID int, logoKey *string) error
	DeleteFn        func(ctx context.Context, id int) error
	AddMemberFn     func(ctx context.Context, exec repositories.SQLExecutor, member *models.TeamMember) error
	ListMembersFn   func(ctx context.Context, teamID int) ([]models.TeamMember, error)
}

func (f *fakeTeamRepo) Create(ctx context.Context, exec repositories.SQLExecutor, team *models.Team) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, exec, team)
	}
	return nil
}

func (f *fakeTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	if f.GetByIDFn != nil {
		return f.GetByIDFn(ctx, id)
	}
	return &models.Team{ID: id}, nil
}

func (f *fakeTeamRepo) List(ctx context.Context, filter repositories.ListTeamsFilter) ([]models.Team, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx, filter)
	}
	return nil, nil
}

func (f *fakeTeamRepo) Update(ctx context.Context, team *models.Team) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, team)
	}
	return nil
}

func (f *fakeTeamRepo) UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error {
	if f.UpdateLogoKeyFn != nil {
		return f.UpdateLogoKeyFn(ctx, teamID, logoKey)
	}
	return nil
}

func (f *fakeTeamRepo) Delete(ctx context.Context, id int) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

func (f *fakeTeamRepo) AddMember(ctx context.Context, exec repositories.SQLExecutor, member *models.TeamMember) error {
	if f.AddMemberFn != nil {
		return f.AddMemberFn(ctx, exec, member)
	}
	return nil
}

func (f *fakeTeamRepo) ListMembers(ctx context.Context, teamID int) ([]models.TeamMember, error) {
	if f.ListMembersFn != nil {
		return f.ListMembersFn(ctx, teamID)
	}
	return nil, nil
}

type fakeEventRepo struct {
	CreateFn            func(ctx context.Context, event *models.Event) error
	GetByIDFn           func(ctx context.Context, id int) (*models.Event, error)
	ListFn              func(ctx context.Context, filter repositories.ListEventsFilter) ([]models.Event, error)
	CountFn             func(ctx context.Context, filter repositories.ListEventsFilter) (int, error)
	ListRecentBySportFn func(ctx context.Context, sportID, limit int) ([]models.Event, error)
	UpdateFn            func(ctx context.Context, event *models.Event) error
	UpdateStatusFn      func(ctx context.Context, exec repositories.SQLExecutor, id int, status models.EventStatus) error
	UpdateBannerKeyFn   func(ctx context.Context, eventID int, bannerKey *string) error
	DeleteFn            func(ctx context.Context, id int) error
	AutoStatusFn        func(ctx context.Context, currentTime time.Time) ([]*models.Event, error)
}

func (f *fakeEventRepo) Create(ctx context.Context, event *models.Event) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, event)
	}
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int) (*models.Event, error) {
	if f.GetByIDFn != nil {
		return f.GetByIDFn(ctx, id)
	}
	return &models.Event{ID: id}, nil
}

func (f *fakeEventRepo) List(ctx context.Context, filter repositories.ListEventsFilter) ([]models.Event, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx, filter)
	}
	return nil, nil
}

func (f *fakeEventRepo) Count(ctx context.Context, filter repositories.ListEventsFilter) (int, error) {
	if f.CountFn != nil {
		return f.CountFn(ctx, filter)
	}
	return 0, nil
}

func (f *fakeEventRepo) ListRecentBySport(ctx context.Context, sportID, limit int) ([]models.Event, error) {
	if f.ListRecentBySportFn != nil {
		return f.ListRecentBySportFn(ctx, sportID, limit)
	}
	return nil, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, event *models.Event) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, event)
	}
	return nil
}

func (f *fakeEventRepo) UpdateStatus(ctx context.Context, exec repositories.SQLExecutor, id int, status models.EventStatus) error {
	if f.UpdateStatusFn != nil {
		return f.UpdateStatusFn(ctx, exec, id, status)
	}
	return nil
}

func (f *fakeEventRepo) UpdateBannerKey(ctx context.Context, eventID int, bannerKey *string) error {
	if f.UpdateBannerKeyFn != nil {
		return f.UpdateBannerKeyFn(ctx, eventID, bannerKey)
	}
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id int) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

func (f *fakeEventRepo) GetEventsForAutoStatusUpdate(ctx context.Context, currentTime time.Time) ([]*models.Event, error) {
	if f.AutoStatusFn != nil {
		return f.AutoStatusFn(ctx, currentTime)
	}
	return nil, nil
}

type fakeRegistrationRepo struct {
	CreateFn               func(ctx context.Context, registration *models.EventRegistration) error
	GetByIDFn              func(ctx context.Context, id int) (*models.EventRegistration, error)
	ListByEventFn          func(ctx context.Context, eventID int) ([]models.EventRegistration, error)
	ListByTeamFn           func(ctx context.Context, teamID int) ([]models.EventRegistration, error)
	CountApprovedByEventFn func(ctx context.Context, eventID int) (int, error)
	UpdateStatusFn         func(ctx context.Context, id int, status models.RegistrationStatus) error
	DeleteFn               func(ctx context.Context, id int) error
}

func (f *fakeRegistrationRepo) Create(ctx context.Context, registration *models.EventRegistration) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, registration)
	}
	return nil
}

func (f *fakeRegistrationRepo) GetByID(ctx context.Context, id int) (*models.EventRegistration, error) {
	if f.GetByIDFn != nil {
		return f.GetByIDFn(ctx, id)
	}
	return &models.EventRegistration{ID: id}, nil
}

func (f *fakeRegistrationRepo) ListByEvent(ctx context.Context, eventID int) ([]models.EventRegistration, error) {
	if f.ListByEventFn != nil {
		return f.ListByEventFn(ctx, eventID)
	}
	return nil, nil
}

func (f *fakeRegistrationRepo) ListByTeam(ctx context.Context, teamID int) ([]models.EventRegistration, error) {
	if f.ListByTeamFn != nil {
		return f.ListByTeamFn(ctx, teamID)
	}
	return nil, nil
}

func (f *fakeRegistrationRepo) CountApprovedByEvent(ctx context.Context, eventID int) (int, error) {
	if f.CountApprovedByEventFn != nil {
		return f.CountApprovedByEventFn(ctx, eventID)
	}
	return 0, nil
}

func (f *fakeRegistrationRepo) UpdateStatus(ctx context.Context, id int, status models.RegistrationStatus) error {
	if f.UpdateStatusFn != nil {
		return f.UpdateStatusFn(ctx, id, status)
	}
	return nil
}

func (f *fakeRegistrationRepo) Delete(ctx context.Context, id int) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

type fakeMatchRepo struct {
	CreateFn               func(ctx context.Context, match *models.Match) error
	GetByIDFn              func(ctx context.Context, id int) (*models.Match, error)
	ListFn                 func(ctx context.Context, filter repositories.ListMatchesFilter) ([]models.Match, error)
	ListByEventFn          func(ctx context.Context, eventID int) ([]models.Match, error)
	ListCompletedByEventFn func(ctx context.Context, exec repositories.SQLExecutor, eventID int) ([]models.Match, error)
	ListRecentByTeamFn     func(ctx context.Context, teamID int, home bool, limit int) ([]models.Match, error)
	UpdateFn               func(ctx context.Context, match *models.Match) error
	DeleteFn               func(ctx context.Context, id int) error
}

func (f *fakeMatchRepo) Create(ctx context.Context, match *models.Match) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, match)
	}
	return nil
}

func (f *fakeMatchRepo) GetByID(ctx context.Context, id int) (*models.Match, error) {
	if f.GetByIDFn != nil {
		return f.GetByIDFn(ctx, id)
	}
	return &models.Match{ID: id}, nil
}

func (f *fakeMatchRepo) List(ctx context.Context, filter repositories.ListMatchesFilter) ([]models.Match, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx, filter)
	}
	return nil, nil
}

func (f *fakeMatchRepo) ListByEvent(ctx context.Context, eventID int) ([]models.Match, error) {
	if f.ListByEventFn != nil {
		return f.ListByEventFn(ctx, eventID)
	}
	return nil, nil
}

func (f *fakeMatchRepo) ListCompletedByEvent(ctx context.Context, exec repositories.SQLExecutor, eventID int) ([]models.Match, error) {
	if f.ListCompletedByEventFn != nil {
		return f.ListCompletedByEventFn(ctx, exec, eventID)
	}
	return nil, nil
}

func (f *fakeMatchRepo) ListRecentByTeam(ctx context.Context, teamID int, home bool, limit int) ([]models.Match, error) {
	if f.ListRecentByTeamFn != nil {
		return f.ListRecentByTeamFn(ctx, teamID, home, limit)
	}
	return nil, nil
}

func (f *fakeMatchRepo) Update(ctx context.Context, match *models.Match) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, match)
	}
	return nil
}

func (f *fakeMatchRepo) Delete(ctx context.Context, id int) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

type fakeScorecardRepo struct {
	CreateEntryFn           func(ctx context.Context, entry *models.Scorecard) error
	ListByMatchFn           func(ctx context.Context, matchID int) ([]models.Scorecard, error)
	CreateStatisticFn       func(ctx context.Context, stat *models.MatchStatistic) error
	ListStatisticsByMatchFn func(ctx context.Context, matchID int) ([]models.MatchStatistic, error)
}

func (f *fakeScorecardRepo) CreateEntry(ctx context.Context, entry *models.Scorecard) error {
	if f.CreateEntryFn != nil {
		return f.CreateEntryFn(ctx, entry)
	}
	return nil
}

func (f *fakeScorecardRepo) ListByMatch(ctx context.Context, matchID int) ([]models.Scorecard, error) {
	if f.ListByMatchFn != nil {
		return f.ListByMatchFn(ctx, matchID)
	}
	return nil, nil
}

func (f *fakeScorecardRepo) CreateStatistic(ctx context.Context, stat *models.MatchStatistic) error {
	if f.CreateStatisticFn != nil {
		return f.CreateStatisticFn(ctx, stat)
	}
	return nil
}

func (f *fakeScorecardRepo) ListStatisticsByMatch(ctx context.Context, matchID int) ([]models.MatchStatistic, error) {
	if f.ListStatisticsByMatchFn != nil {
		return f.ListStatisticsByMatchFn(ctx, matchID)
	}
	return nil, nil
}

type fakeStandingRepo struct {
	ListByEventFn     func(ctx context.Context, eventID int) ([]models.Standing, error)
	ReplaceForEventFn func(ctx context.Context, exec repositories.SQLExecutor, eventID int, standings []*models.Standing) error
	DeleteByEventFn   func(ctx context.Context, exec repositories.SQLExecutor, eventID int) error
}

func (f *fakeStandingRepo) ListByEvent(ctx context.Context, eventID int) ([]models.Standing, error) {
	if f.ListByEventFn != nil {
		return f.ListByEventFn(ctx, eventID)
	}
	return nil, nil
}

func (f *fakeStandingRepo) ReplaceForEvent(ctx context.Context, exec repositories.SQLExecutor, eventID int, standings []*models.Standing) error {
	if f.ReplaceForEventFn != nil {
		return f.ReplaceForEventFn(ctx, exec, eventID, standings)
	}
	return nil
}

func (f *fakeStandingRepo) DeleteByEvent(ctx context.Context, exec repositories.SQLExecutor, eventID int) error {
	if f.DeleteByEventFn != nil {
		return f.DeleteByEventFn(ctx, exec, eventID)
	}
	return nil
}

type fakeStandingService struct {
	ListByEventFn         func(ctx context.Context, eventID int) ([]models.Standing, error)
	RecalculateForEventFn func(ctx context.Context, eventID int) ([]models.Standing, error)
}

func (f *fakeStandingService) ListByEvent(ctx context.Context, eventID int) ([]models.Standing, error) {
	if f.ListByEventFn != nil {
		return f.ListByEventFn(ctx, eventID)
	}
	return nil, nil
}

func (f *fakeStandingService) RecalculateForEvent(ctx context.Context, eventID int) ([]models.Standing, error) {
	if f.RecalculateForEventFn != nil {
		return f.RecalculateForEventFn(ctx, eventID)
	}
	return nil, nil
}

type fakeBroadcaster struct {
	matchUpdates     []int
	standingsUpdates []int
}

func (f *fakeBroadcaster) BroadcastMatchUpdate(eventID int, match *models.Match) {
	f.matchUpdates = append(f.matchUpdates, eventID)
}

func (f *fakeBroadcaster) BroadcastStandingsUpdate(eventID int, standings []models.Standing) {
	f.standingsUpdates = append(f.standingsUpdates, eventID)
}
