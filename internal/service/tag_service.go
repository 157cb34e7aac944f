package service

import (
	"errors"
	"fmt"

	"github.com/assessly-hq/assessly/internal/dto"
	"github.com/assessly-hq/assessly/internal/model"
	"github.com/assessly-hq/assessly/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type TagService interface {
	FindOrCreate(name, tagType string) (*model.Tag, error)
	CreateCategory(req dto.CategoryCreateDTO) (*dto.CategoryResponseDTO, error)
	GetCategoryChildren(id uint) ([]dto.TagResponseDTO, error)
	GetCategoryParent(id uint) (*dto.TagResponseDTO, error)
	GetRootCategories() ([]dto.TagResponseDTO, error)
	GetAllCategories() ([]dto.TagResponseDTO, error)
	ListTags(tagType string) ([]dto.TagResponseDTO, error)

	// SyncQuestionTags replaces the question's associations of exactly one
	// type partition with the given names, creating missing tags. It runs on
	// the caller's transaction handle so a failing question write takes the
	// sync down with it.
	SyncQuestionTags(tx *gorm.DB, questionID uint, names []string, tagType string) error
}

type tagService struct {
	tagRepo repository.TagRepository
	db      *gorm.DB
}

func NewTagService(tagRepo repository.TagRepository, db *gorm.DB) TagService {
	return &tagService{tagRepo: tagRepo, db: db}
}

func (s *tagService) FindOrCreate(name, tagType string) (*model.Tag, error) {
	return s.findOrCreateOn(s.tagRepo, name, tagType)
}

func (s *tagService) CreateCategory(req dto.CategoryCreateDTO) (*dto.CategoryResponseDTO, error) {
	var resp *dto.CategoryResponseDTO

	err := s.db.Transaction(func(tx *gorm.DB) error {
		txTags := repository.NewTagRepository(tx)

		tag, err := s.findOrCreateOn(txTags, req.Name, model.TagTypeCategory)
		if err != nil {
			return err
		}

		if req.Description != nil && *req.Description != "" {
			tag.Description = *req.Description
			if err := txTags.Save(tag); err != nil {
				return fmt.Errorf("saving category description: %w", err)
			}
		}

		var parent *model.Tag
		if req.ParentID != nil {
			parent, err = txTags.FindByID(*req.ParentID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrTagNotFound
				}
				return err
			}
			if parent.Type != model.TagTypeCategory {
				return ErrParentNotCategory
			}
			if err := s.checkNoCycle(txTags, tag.ID, parent.ID); err != nil {
				return err
			}
			edge := &model.CategoryHierarchy{TagID: tag.ID, ParentTagID: parent.ID}
			if err := txTags.CreateEdge(edge); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					// The category already has a parent edge.
					return fmt.Errorf("category %q already has a parent: %w", tag.Name, err)
				}
				return fmt.Errorf("creating hierarchy edge: %w", err)
			}
		}

		resp = &dto.CategoryResponseDTO{TagResponseDTO: toTagDTO(tag)}
		if parent != nil {
			p := toTagDTO(parent)
			resp.Parent = &p
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("CreateCategory failed")
		return nil, err
	}
	return resp, nil
}

// checkNoCycle walks the parent chain starting at parentID and fails when it
// reaches tagID. The at-most-one-parent constraint makes the walk linear.
func (s *tagService) checkNoCycle(tags repository.TagRepository, tagID, parentID uint) error {
	if tagID == parentID {
		return ErrCategoryCycle
	}
	current := parentID
	for {
		edge, err := tags.FindEdgeByTagID(current)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if edge.ParentTagID == tagID {
			return ErrCategoryCycle
		}
		current = edge.ParentTagID
	}
}

func (s *tagService) GetCategoryChildren(id uint) ([]dto.TagResponseDTO, error) {
	if _, err := s.categoryByID(id); err != nil {
		return nil, err
	}
	children, err := s.tagRepo.FindChildren(id)
	if err != nil {
		return nil, err
	}
	return toTagDTOs(children), nil
}

func (s *tagService) GetCategoryParent(id uint) (*dto.TagResponseDTO, error) {
	if _, err := s.categoryByID(id); err != nil {
		return nil, err
	}
	edge, err := s.tagRepo.FindEdgeByTagID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // root category, no parent
		}
		return nil, err
	}
	parent, err := s.tagRepo.FindByID(edge.ParentTagID)
	if err != nil {
		return nil, err
	}
	p := toTagDTO(parent)
	return &p, nil
}

func (s *tagService) GetRootCategories() ([]dto.TagResponseDTO, error) {
	roots, err := s.tagRepo.FindRootCategories()
	if err != nil {
		return nil, err
	}
	return toTagDTOs(roots), nil
}

func (s *tagService) GetAllCategories() ([]dto.TagResponseDTO, error) {
	return s.ListTags(model.TagTypeCategory)
}

func (s *tagService) ListTags(tagType string) ([]dto.TagResponseDTO, error) {
	tags, err := s.tagRepo.FindAllByType(tagType)
	if err != nil {
		return nil, err
	}
	return toTagDTOs(tags), nil
}

func (s *tagService) SyncQuestionTags(tx *gorm.DB, questionID uint, names []string, tagType string) error {
	txTags := repository.NewTagRepository(tx)

	// Drop only this partition's join rows; the other type's associations
	// stay untouched.
	err := tx.Where("question_id = ? AND tag_id IN (?)", questionID,
		tx.Model(&model.Tag{}).Select("id").Where("type = ?", tagType)).
		Delete(&model.QuestionTag{}).Error
	if err != nil {
		return fmt.Errorf("clearing %s associations: %w", tagType, err)
	}

	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		tag, err := s.findOrCreateOn(txTags, name, tagType)
		if err != nil {
			return err
		}
		join := &model.QuestionTag{QuestionID: questionID, TagID: tag.ID}
		if err := tx.Create(join).Error; err != nil {
			return fmt.Errorf("associating tag %q: %w", name, err)
		}
	}
	return nil
}

func (s *tagService) findOrCreateOn(tags repository.TagRepository, name, tagType string) (*model.Tag, error) {
	tag, err := tags.FindByNameAndType(name, tagType)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("looking up tag %q: %w", name, err)
	}
	created := &model.Tag{Name: name, Type: tagType}
	if err := tags.Create(created); err != nil {
		// A concurrent caller may have won the race on the (name, type)
		// unique index; re-read before giving up.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return tags.FindByNameAndType(name, tagType)
		}
		return nil, fmt.Errorf("creating tag %q: %w", name, err)
	}
	return created, nil
}

func (s *tagService) categoryByID(id uint) (*model.Tag, error) {
	tag, err := s.tagRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	if tag.Type != model.TagTypeCategory {
		return nil, ErrParentNotCategory
	}
	return tag, nil
}

func toTagDTO(tag *model.Tag) dto.TagResponseDTO {
	return dto.TagResponseDTO{
		ID:          tag.ID,
		Name:        tag.Name,
		Type:        tag.Type,
		Description: tag.Description,
	}
}

func toTagDTOs(tags []model.Tag) []dto.TagResponseDTO {
	out := make([]dto.TagResponseDTO, len(tags))
	for i := range tags {
		out[i] = toTagDTO(&tags[i])
	}
	return out
}
