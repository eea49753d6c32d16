package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/elimuhub/homework_go_server/internal/model"
	"github.com/elimuhub/homework_go_server/internal/model/dto"
	"github.com/elimuhub/homework_go_server/internal/repository"
)

var ErrChildNotFound = errors.New("child profile not found")

type ChildService struct {
	childRepo *repository.ChildRepository
}

func NewChildService(childRepo *repository.ChildRepository) *ChildService {
	return &ChildService{childRepo: childRepo}
}

func (s *ChildService) Create(parentID int64, req *dto.CreateChildRequest) (*dto.ChildInfo, error) {
	child := &model.Child{
		ParentID: parentID,
		Name:     req.Name,
		Grade:    req.Grade,
		Subjects: req.Subjects,
	}
	if err := s.childRepo.Create(child); err != nil {
		return nil, err
	}
	return buildChildInfo(child), nil
}

func (s *ChildService) List(parentID int64) ([]*dto.ChildInfo, error) {
	children, err := s.childRepo.ListByParentID(parentID)
	if err != nil {
		return nil, err
	}
	infos := make([]*dto.ChildInfo, len(children))
	for i, c := range children {
		infos[i] = buildChildInfo(c)
	}
	return infos, nil
}

func (s *ChildService) Update(parentID, childID int64, req *dto.UpdateChildRequest) (*dto.ChildInfo, error) {
	child, err := s.getOwned(parentID, childID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		child.Name = *req.Name
	}
	if req.Grade != nil {
		child.Grade = *req.Grade
	}
	if req.Subjects != nil {
		child.Subjects = req.Subjects
	}

	if err := s.childRepo.Update(child); err != nil {
		return nil, err
	}
	return buildChildInfo(child), nil
}

func (s *ChildService) Delete(parentID, childID int64) error {
	if _, err := s.getOwned(parentID, childID); err != nil {
		return err
	}
	return s.childRepo.Delete(childID)
}

// getOwned fetches the child, reporting not-found for other parents'
// children so the API does not reveal they exist.
func (s *ChildService) getOwned(parentID, childID int64) (*model.Child, error) {
	child, err := s.childRepo.GetByID(childID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, err
	}
	if child.ParentID != parentID {
		return nil, ErrChildNotFound
	}
	return child, nil
}

func buildChildInfo(c *model.Child) *dto.ChildInfo {
	subjects := c.Subjects
	if subjects == nil {
		subjects = []string{}
	}
	return &dto.ChildInfo{
		ID:        c.ID,
		Name:      c.Name,
		Grade:     c.Grade,
		Subjects:  subjects,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
