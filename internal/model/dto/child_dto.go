package dto

// CreateChildRequest child creation payload
type CreateChildRequest struct {
	Name     string   `json:"name" binding:"required,max=100"`
	Grade    string   `json:"grade" binding:"required,max=20"`
	Subjects []string `json:"subjects,omitempty" binding:"omitempty,max=20,dive,max=100"`
}

// UpdateChildRequest child update payload
type UpdateChildRequest struct {
	Name     *string  `json:"name,omitempty" binding:"omitempty,max=100"`
	Grade    *string  `json:"grade,omitempty" binding:"omitempty,max=20"`
	Subjects []string `json:"subjects,omitempty" binding:"omitempty,max=20,dive,max=100"`
}

// ChildInfo child shape returned to the app
type ChildInfo struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Grade     string   `json:"grade"`
	Subjects  []string `json:"subjects"`
	CreatedAt string   `json:"created_at"`
}
