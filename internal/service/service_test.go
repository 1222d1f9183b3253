package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Fatimata-sang/OC-S.F-Project10/internal/authz"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory database. cache=shared keeps every
// pooled connection on the same database; the test name keeps tests isolated
// from each other.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Contributor{},
		&model.Issue{},
		&model.Comment{},
	))
	return db
}

func newEngine(db *gorm.DB) (*authz.Graph, *authz.Engine) {
	graph := authz.NewGraph(db)
	return graph, authz.NewEngine(graph)
}

func createUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Age:          30,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createProject seeds a project owned by ownerID, with the owner materialized
// as contributor, bypassing the service under test.
func createProject(t *testing.T, db *gorm.DB, ownerID uint, name string) *model.Project {
	t.Helper()
	project := &model.Project{
		Name:    name,
		Type:    model.ProjectTypeBackend,
		OwnerID: ownerID,
	}
	require.NoError(t, db.Create(project).Error)
	require.NoError(t, db.Create(&model.Contributor{ProjectID: project.ID, UserID: ownerID}).Error)
	return project
}

func addContributor(t *testing.T, db *gorm.DB, projectID, userID uint) {
	t.Helper()
	require.NoError(t, db.Create(&model.Contributor{ProjectID: projectID, UserID: userID}).Error)
}
