package authz

import (
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/model"
	"gorm.io/gorm"
)

// Graph resolves resource relationships from storage. It is the query-time
// view of project → contributor membership used by the engine.
type Graph struct {
	db *gorm.DB
}

func NewGraph(db *gorm.DB) *Graph {
	return &Graph{db: db}
}

func (g *Graph) IsContributor(projectID, userID uint) (bool, error) {
	var count int64
	err := g.db.Model(&model.Contributor{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
