package services

import (
	"testing"

	"github.com/muqabla/sportshub/models"
)

func intPtr(v int) *int { return &v }

func completedMatch(home, away, homeScore, awayScore int) models.Match {
	return models.Match{
		HomeTeamID: home,
		AwayTeamID: away,
		Status:     models.MatchStatusCompleted,
		HomeScore:  intPtr(homeScore),
		AwayScore:  intPtr(awayScore),
	}
}

func TestBuildStandingsPoints(t *testing.T) {
	matches := []models.Match{
		completedMatch(1, 2, 3, 0),
		completedMatch(2, 3, 1, 1),
		completedMatch(3, 1, 0, 2),
	}

	rows := buildStandings(5, nil, matches)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	byTeam := map[int]*models.Standing{}
	for _, row := range rows {
		byTeam[row.TeamID] = row
	}

	team1 := byTeam[1]
	if team1.Points != 6 || team1.Won != 2 || team1.Played != 2 {
		t.Errorf("team 1 = %+v, want 2 wins, 6 points", team1)
	}
	if team1.GoalsFor != 5 || team1.GoalsAgainst != 0 || team1.GoalDifference != 5 {
		t.Errorf("team 1 goals = %d/%d/%d, want 5/0/5", team1.GoalsFor, team1.GoalsAgainst, team1.GoalDifference)
	}

	team2 := byTeam[2]
	if team2.Points != 1 || team2.Drawn != 1 || team2.Lost != 1 {
		t.Errorf("team 2 = %+v, want 1 draw, 1 loss, 1 point", team2)
	}

	team3 := byTeam[3]
	if team3.Points != 1 {
		t.Errorf("team 3 points = %d, want 1", team3.Points)
	}
}

func TestBuildStandingsOrderingAndPositions(t *testing.T) {
	// Teams 2 and 3 finish level on points; goal difference splits them.
	matches := []models.Match{
		completedMatch(1, 2, 2, 0),
		completedMatch(1, 3, 1, 0),
		completedMatch(2, 3, 3, 0),
		completedMatch(3, 2, 0, 1),
	}

	rows := buildStandings(5, nil, matches)
	wantOrder := []int{1, 2, 3}
	for i, teamID := range wantOrder {
		if rows[i].TeamID != teamID {
			t.Errorf("position %d: team %d, want %d", i+1, rows[i].TeamID, teamID)
		}
		if rows[i].Position != i+1 {
			t.Errorf("team %d position = %d, want %d", rows[i].TeamID, rows[i].Position, i+1)
		}
	}
}

func TestBuildStandingsTieBreaksOnTeamID(t *testing.T) {
	// Perfectly level records resolve on the lower team id.
	matches := []models.Match{
		completedMatch(4, 9, 1, 1),
	}

	rows := buildStandings(5, nil, matches)
	if rows[0].TeamID != 4 || rows[1].TeamID != 9 {
		t.Fatalf("order = %d, %d; want 4, 9", rows[0].TeamID, rows[1].TeamID)
	}
}

func TestBuildStandingsIncludesApprovedTeamsWithoutMatches(t *testing.T) {
	registrations := []models.EventRegistration{
		{TeamID: 1, Status: models.RegistrationApproved},
		{TeamID: 2, Status: models.RegistrationApproved},
		{TeamID: 3, Status: models.RegistrationPending},
	}
	matches := []models.Match{
		completedMatch(1, 2, 1, 0),
	}

	rows := buildStandings(5, registrations, matches)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (pending team excluded)", len(rows))
	}
	last := rows[len(rows)-1]
	if last.TeamID != 2 || last.Played != 1 {
		t.Errorf("last row = %+v, want team 2 with 1 played", last)
	}
}

func TestBuildStandingsSkipsMatchesWithoutScores(t *testing.T) {
	matches := []models.Match{
		{HomeTeamID: 1, AwayTeamID: 2, Status: models.MatchStatusCompleted},
	}
	rows := buildStandings(5, nil, matches)
	if len(rows) != 0 {
		t.Fatalf("got %d rows, want 0 for a completed match without scores", len(rows))
	}
}
