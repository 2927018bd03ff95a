package taskforge

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/taskforge/pkg/tfdb/tfmodel"
	"gorm.io/gorm"
)

func TestClassifyStorErr(t *testing.T) {
	require.NoError(t, classifyStorErr(nil, "nothing"))

	err := classifyStorErr(gorm.ErrRecordNotFound, "user %d", 7)
	require.True(t, errors.Is(err, ErrNotFound))

	err = classifyStorErr(gorm.ErrDuplicatedKey, "user %d", 7)
	require.True(t, errors.Is(err, ErrConflict))

	err = classifyStorErr(errors.New("disk on fire"), "user %d", 7)
	require.True(t, errors.Is(err, ErrInfrastructure))
	require.Contains(t, err.Error(), "disk on fire")
}

// A unique-index violation at the storage layer must come back as a conflict,
// not an opaque infrastructure failure. This is the backstop for races that
// slip past the service-level existence checks.
func TestStorageDuplicateKeyBecomesConflict(t *testing.T) {
	tc := newServiceTestCase(t)
	tc.createUser("alice")

	_, err := tc.stors.UserStor.CreateUser(&tfmodel.User{
		Username: "alice",
		Email:    "other@example.com",
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
	require.True(t, errors.Is(classifyStorErr(err, "creating user"), ErrConflict))
}
