package repository

import (
	"gorm.io/gorm"

	"github.com/elimuhub/homework_go_server/internal/model"
)

type ChildRepository struct {
	db *gorm.DB
}

func NewChildRepository(db *gorm.DB) *ChildRepository {
	return &ChildRepository{db: db}
}

func (r *ChildRepository) Create(child *model.Child) error {
	return r.db.Create(child).Error
}

func (r *ChildRepository) GetByID(id int64) (*model.Child, error) {
	var child model.Child
	err := r.db.Where("id = ?", id).First(&child).Error
	if err != nil {
		return nil, err
	}
	return &child, nil
}

func (r *ChildRepository) ListByParentID(parentID int64) ([]*model.Child, error) {
	var children []*model.Child
	err := r.db.Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&children).Error
	return children, err
}

func (r *ChildRepository) Update(child *model.Child) error {
	return r.db.Save(child).Error
}

func (r *ChildRepository) Delete(id int64) error {
	return r.db.Delete(&model.Child{}, id).Error
}
