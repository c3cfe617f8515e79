package employee

import (
	"time"

	"go-ems/internal/domain"
	"go-ems/internal/shared/ref"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type CreateEmployeeRequest struct {
	Name         string           `json:"name" binding:"required,max=255"`
	Email        string           `json:"email" binding:"required,email"`
	Password     string           `json:"password" binding:"required"`
	Role         string           `json:"role" binding:"omitempty,oneof=ADMIN MANAGER EMPLOYEE"`
	EmployeeID   string           `json:"employeeId" binding:"omitempty,max=50"`
	Phone        string           `json:"phone" binding:"omitempty,max=50"`
	Address      string           `json:"address"`
	Position     string           `json:"position" binding:"omitempty,max=255"`
	Salary       *decimal.Decimal `json:"salary"`
	HireDate     string           `json:"hireDate"`
	Status       string           `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE ON_LEAVE TERMINATED"`
	DepartmentID string           `json:"departmentId" binding:"omitempty,uuid"`
	Department   *ref.Ref         `json:"department"`
	ManagerID    string           `json:"managerId" binding:"omitempty,uuid"`
	Manager      *ref.Ref         `json:"manager"`
}

// UpdateEmployeeRequest is a partial patch; nil fields are left alone.
type UpdateEmployeeRequest struct {
	Name            *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Email           *string          `json:"email" binding:"omitempty,email"`
	Phone           *string          `json:"phone" binding:"omitempty,max=50"`
	Address         *string          `json:"address"`
	Avatar          *string          `json:"avatar" binding:"omitempty,url"`
	Position        *string          `json:"position" binding:"omitempty,max=255"`
	Salary          *decimal.Decimal `json:"salary"`
	HireDate        *string          `json:"hireDate"`
	Status          *string          `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE ON_LEAVE TERMINATED"`
	DepartmentID    string           `json:"departmentId" binding:"omitempty,uuid"`
	Department      *ref.Ref         `json:"department"`
	ManagerID       string           `json:"managerId" binding:"omitempty,uuid"`
	Manager         *ref.Ref         `json:"manager"`
	ClearDepartment bool             `json:"clearDepartment"`
	ClearManager    bool             `json:"clearManager"`
}

// restricted reports whether the patch touches anything beyond the
// self-service contact fields.
func (r UpdateEmployeeRequest) restricted() bool {
	return r.Name != nil || r.Email != nil || r.Position != nil || r.Salary != nil ||
		r.HireDate != nil || r.Status != nil ||
		r.DepartmentID != "" || !r.Department.IsZero() ||
		r.ManagerID != "" || !r.Manager.IsZero() ||
		r.ClearDepartment || r.ClearManager
}

type ListFilter struct {
	UserID          *uuid.UUID
	Department      *ref.Ref
	Status          Status
	IncludeInactive bool
	Search          string
	SortBy          string
	SortOrder       string
	Page            int
	Limit           int
}

type DepartmentSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ManagerSummary struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
}

type EmployeeResponse struct {
	ID         string             `json:"id"`
	EmployeeID string             `json:"employeeId"`
	UserID     string             `json:"userId"`
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Role       domain.Role        `json:"role"`
	Phone      string             `json:"phone"`
	Address    string             `json:"address"`
	Avatar     string             `json:"avatar"`
	Position   string             `json:"position"`
	Salary     decimal.Decimal    `json:"salary"`
	HireDate   string             `json:"hireDate"`
	Status     Status             `json:"status"`
	IsActive   bool               `json:"isActive"`
	Department *DepartmentSummary `json:"department,omitempty"`
	Manager    *ManagerSummary    `json:"manager,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

type HierarchyNode struct {
	ID         string           `json:"id"`
	EmployeeID string           `json:"employeeId"`
	Name       string           `json:"name"`
	Position   string           `json:"position"`
	Department string           `json:"department,omitempty"`
	Children   []*HierarchyNode `json:"children"`
}

type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

type EmployeeStats struct {
	Total         int64             `json:"total"`
	Active        int64             `json:"active"`
	Inactive      int64             `json:"inactive"`
	RecentHires   int64             `json:"recentHires"`
	AverageSalary decimal.Decimal   `json:"averageSalary"`
	ByStatus      map[Status]int64  `json:"byStatus"`
	ByDepartment  []DepartmentCount `json:"byDepartment"`
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:         e.ID.String(),
		EmployeeID: e.EmployeeCode,
		UserID:     e.UserID.String(),
		Position:   e.Position,
		Salary:     e.Salary,
		HireDate:   e.HireDate.Format(dateLayout),
		Status:     e.Status,
		IsActive:   e.IsActive,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
	if u := e.User; u != nil {
		resp.Name = u.Name
		resp.Email = u.Email
		resp.Role = u.Role
		resp.Phone = u.Phone
		resp.Address = u.Address
		resp.Avatar = u.AvatarURL
	}
	if d := e.Department; d != nil {
		resp.Department = &DepartmentSummary{ID: d.ID.String(), Name: d.Name}
	}
	if m := e.Manager; m != nil {
		resp.Manager = &ManagerSummary{ID: m.ID.String(), EmployeeID: m.EmployeeCode, Name: m.Name()}
	}
	return resp
}

func mapToListResponse(rows []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(rows))
	for i, e := range rows {
		res[i] = mapToResponse(e)
	}
	return res
}
