package dto

type TagResponseDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

type CategoryCreateDTO struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	ParentID    *uint   `json:"parent_id"`
}

// CategoryResponseDTO adds the single-level hierarchy neighbours to a tag.
type CategoryResponseDTO struct {
	TagResponseDTO
	Parent   *TagResponseDTO  `json:"parent,omitempty"`
	Children []TagResponseDTO `json:"children,omitempty"`
}
