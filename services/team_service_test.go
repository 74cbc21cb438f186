package services

import (
	"context"
	"errors"
	"testing"

	"github.com/muqabla/sportshub/models"
	"github.com/muqabla/sportshub/repositories"
)

func newTestTeamService(teamRepo *fakeTeamRepo) TeamService {
	return NewTeamService(nil, teamRepo, &fakeRegistrationRepo{}, &fakeMatchRepo{}, &fakeSportRepo{}, nil)
}

func TestCreateTeamMissingFields(t *testing.T) {
	svc := newTestTeamService(&fakeTeamRepo{})

	cases := []CreateTeamInput{
		{Name: "", SportID: 1},
		{Name: "   ", SportID: 1},
		{Name: "Lions", SportID: 0},
	}
	for _, input := range cases {
		if _, err := svc.CreateTeam(context.Background(), input); !errors.Is(err, ErrTeamMissingFields) {
			t.Errorf("input %+v: got %v, want ErrTeamMissingFields", input, err)
		}
	}
}

func TestGetTeamHydration(t *testing.T) {
	teamRepo := &fakeTeamRepo{
		GetByIDFn: func(ctx context.Context, id int) (*models.Team, error) {
			return &models.Team{ID: id, Name: "Lions", SportID: 3}, nil
		},
		ListMembersFn: func(ctx context.Context, teamID int) ([]models.TeamMember, error) {
			return []models.TeamMember{{ID: 1, TeamID: teamID, Role: models.MemberRolePlayer}}, nil
		},
	}
	svc := newTestTeamService(teamRepo)

	team, err := svc.GetTeamByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetTeamByID: %v", err)
	}
	if team.Sport == nil || team.Sport.ID != 3 {
		t.Errorf("sport = %+v, want id 3", team.Sport)
	}
	if len(team.Members) != 1 {
		t.Errorf("members = %d, want 1", len(team.Members))
	}
}

func TestGetTeamNotFound(t *testing.T) {
	teamRepo := &fakeTeamRepo{
		GetByIDFn: func(ctx context.Context, id int) (*models.Team, error) {
			return nil, repositories.ErrTeamNotFound
		},
	}
	svc := newTestTeamService(teamRepo)

	if _, err := svc.GetTeamByID(context.Background(), 99); !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("got %v, want ErrTeamNotFound", err)
	}
}

func TestUpdateTeamAllowList(t *testing.T) {
	stored := &models.Team{ID: 7, Name: "Lions", SportID: 3, IsActive: true}
	teamRepo := &fakeTeamRepo{
		GetByIDFn: func(ctx context.Context, id int) (*models.Team, error) {
			return stored, nil
		},
		UpdateFn: func(ctx context.Context, team *models.Team) error {
			stored = team
			return nil
		},
	}
	svc := newTestTeamService(teamRepo)

	inactive := false
	if _, err := svc.UpdateTeam(context.Background(), 7, UpdateTeamInput{IsActive: &inactive}); err != nil {
		t.Fatalf("UpdateTeam: %v", err)
	}
	if stored.IsActive {
		t.Error("isActive still true, pointer false should be applied")
	}
	if stored.Name != "Lions" {
		t.Errorf("name changed to %q, absent fields must be kept", stored.Name)
	}
}

func TestAddMemberDefaultsToPlayer(t *testing.T) {
	var added *models.TeamMember
	teamRepo := &fakeTeamRepo{
		AddMemberFn: func(ctx context.Context, exec repositories.SQLExecutor, member *models.TeamMember) error {
			member.ID = 5
			added = member
			return nil
		},
	}
	svc := newTestTeamService(teamRepo)

	member, err := svc.AddMember(context.Background(), 7, CreateTeamMemberInput{UserID: 2})
	if err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	if member.Role != models.MemberRolePlayer {
		t.Errorf("role = %s, want PLAYER", member.Role)
	}
	if added.TeamID != 7 || added.UserID != 2 {
		t.Errorf("member = %+v, want teamID 7 userID 2", added)
	}
}

func TestAddMemberConflict(t *testing.T) {
	teamRepo := &fakeTeamRepo{
		AddMemberFn: func(ctx context.Context, exec repositories.SQLExecutor, member *models.TeamMember) error {
			return repositories.ErrTeamMemberConflict
		},
	}
	svc := newTestTeamService(teamRepo)

	if _, err := svc.AddMember(context.Background(), 7, CreateTeamMemberInput{UserID: 2}); !errors.Is(err, ErrTeamMemberConflict) {
		t.Fatalf("got %v, want ErrTeamMemberConflict", err)
	}
}

func TestUploadLogoWithoutStorage(t *testing.T) {
	svc := newTestTeamService(&fakeTeamRepo{})

	if _, err := svc.UploadLogo(context.Background(), 1, nil, "image/png"); !errors.Is(err, ErrMediaStorageUnavailable) {
		t.Fatalf("got %v, want ErrMediaStorageUnavailable", err)
	}
}
