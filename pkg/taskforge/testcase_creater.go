package taskforge

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskforge/taskforge/pkg/tfdb"
	"github.com/taskforge/taskforge/pkg/tfdb/stor"
	"github.com/taskforge/taskforge/pkg/tfdb/tfmodel"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type serviceTestCase struct {
	*testing.T

	db       *gorm.DB
	stors    *stor.Stors
	services *Services
}

type NullLogger struct{}

func (l *NullLogger) Printf(_ string, _ ...interface{}) {
	// do nothing
}

// newServiceTestCase creates a private in-memory database named after the
// test so cases can't see each other's rows, runs the migrations, and wires
// the full service graph over it.
func newServiceTestCase(t *testing.T) *serviceTestCase {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	gormLogger := logger.New(&NullLogger{},
		logger.Config{
			SlowThreshold:             time.Second * 5,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		})
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormLogger, TranslateError: true})
	require.NoErrorf(t, err, "gorm.Open failed: %s", err)

	sqlitedb, err := db.DB()
	require.NoError(t, err)
	sqlitedb.SetMaxOpenConns(1)

	err = tfdb.RunMigrations(db)
	require.NoErrorf(t, err, "Migration failed with: %s", err)

	stors := stor.NewGormStors(db)

	return &serviceTestCase{
		T:        t,
		db:       db,
		stors:    stors,
		services: NewServices(stors),
	}
}

func (tc *serviceTestCase) createUser(username string) *tfmodel.User {
	user, err := tc.services.Auth.RegisterUser(username, username+"@example.com", "test-password")
	require.NoErrorf(tc.T, err, "RegisterUser(%s) failed: %s", username, err)
	return user
}

func (tc *serviceTestCase) createTeam(name string, ownerID int) *tfmodel.Team {
	team, err := tc.services.Teams.CreateTeam(name, ownerID)
	require.NoErrorf(tc.T, err, "CreateTeam(%s) failed: %s", name, err)
	return team
}

// addMember invites the user and accepts on their behalf, leaving them an
// ACCEPTED member of the team.
func (tc *serviceTestCase) addMember(userID, teamID int, role tfmodel.Role) {
	err := tc.services.Teams.InviteUserToTeam(userID, teamID, role)
	require.NoError(tc.T, err)
	err = tc.services.Teams.AcceptTeamInvitation(userID, teamID)
	require.NoError(tc.T, err)
}

func (tc *serviceTestCase) createTask(req TaskRequest, creatorID int) *tfmodel.Task {
	task, err := tc.services.Tasks.CreateTask(req, creatorID)
	require.NoErrorf(tc.T, err, "CreateTask(%s) failed: %s", req.Title, err)
	return task
}

func (tc *serviceTestCase) notificationsFor(userID int) []tfmodel.Notification {
	notifications, err := tc.services.Notifications.GetNotificationsForUser(userID)
	require.NoError(tc.T, err)
	return notifications
}
