package repository

import (
	"github.com/assessly-hq/assessly/internal/model"
	"gorm.io/gorm"
)

type TagRepository interface {
	Create(tag *model.Tag) error
	Save(tag *model.Tag) error
	FindByID(id uint) (*model.Tag, error)
	FindByNameAndType(name, tagType string) (*model.Tag, error)
	FindAllByType(tagType string) ([]model.Tag, error)

	CreateEdge(edge *model.CategoryHierarchy) error
	FindEdgeByTagID(tagID uint) (*model.CategoryHierarchy, error)
	FindChildren(parentTagID uint) ([]model.Tag, error)
	FindRootCategories() ([]model.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(tag *model.Tag) error {
	return r.db.Create(tag).Error
}

func (r *tagRepository) Save(tag *model.Tag) error {
	return r.db.Save(tag).Error
}

func (r *tagRepository) FindByID(id uint) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.First(&tag, id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) FindByNameAndType(name, tagType string) (*model.Tag, error) {
	var tag model.Tag
	// Exact, case-sensitive match scoped to the type partition.
	if err := r.db.Where("name = ? AND type = ?", name, tagType).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) FindAllByType(tagType string) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.Where("type = ?", tagType).Order("name ASC").Find(&tags).Error
	return tags, err
}

func (r *tagRepository) CreateEdge(edge *model.CategoryHierarchy) error {
	return r.db.Create(edge).Error
}

func (r *tagRepository) FindEdgeByTagID(tagID uint) (*model.CategoryHierarchy, error) {
	var edge model.CategoryHierarchy
	if err := r.db.Where("tag_id = ?", tagID).First(&edge).Error; err != nil {
		return nil, err
	}
	return &edge, nil
}

func (r *tagRepository) FindChildren(parentTagID uint) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.
		Joins("JOIN category_hierarchies ON category_hierarchies.tag_id = tags.id").
		Where("category_hierarchies.parent_tag_id = ?", parentTagID).
		Order("tags.name ASC").
		Find(&tags).Error
	return tags, err
}

func (r *tagRepository) FindRootCategories() ([]model.Tag, error) {
	var tags []model.Tag
	// Roots are categories that never appear as a child in the edge table.
	err := r.db.
		Where("type = ?", model.TagTypeCategory).
		Where("id NOT IN (?)", r.db.Model(&model.CategoryHierarchy{}).Select("tag_id")).
		Order("name ASC").
		Find(&tags).Error
	return tags, err
}
