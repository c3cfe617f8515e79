package department

import (
	"time"

	"go-ems/internal/shared/ref"

	"github.com/shopspring/decimal"
)

type CreateDepartmentRequest struct {
	Name        string           `json:"name" binding:"required,max=255"`
	Description string           `json:"description"`
	Budget      *decimal.Decimal `json:"budget"`
	ManagerID   string           `json:"managerId" binding:"omitempty,uuid"`
	Manager     *ref.Ref         `json:"manager"`
}

// UpdateDepartmentRequest is a partial patch; nil fields are left alone.
// ClearManager removes the manager.
type UpdateDepartmentRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Description  *string          `json:"description"`
	Budget       *decimal.Decimal `json:"budget"`
	ManagerID    string           `json:"managerId" binding:"omitempty,uuid"`
	Manager      *ref.Ref         `json:"manager"`
	ClearManager bool             `json:"clearManager"`
}

type ManagerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type DepartmentResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Budget        decimal.Decimal `json:"budget"`
	Manager       *ManagerSummary `json:"manager,omitempty"`
	EmployeeCount int64           `json:"employeeCount"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type ListFilter struct {
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

func mapToResponse(d Department, employeeCount int64) DepartmentResponse {
	resp := DepartmentResponse{
		ID:            d.ID.String(),
		Name:          d.Name,
		Description:   d.Description,
		Budget:        d.Budget,
		EmployeeCount: employeeCount,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	if d.Manager != nil {
		resp.Manager = &ManagerSummary{
			ID:    d.Manager.ID.String(),
			Name:  d.Manager.Name,
			Email: d.Manager.Email,
		}
	}
	return resp
}
