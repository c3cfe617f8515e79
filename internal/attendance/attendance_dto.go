package attendance

import (
	"time"

	"go-ems/internal/shared/ref"

	"github.com/google/uuid"
)

type CheckInRequest struct {
	Latitude  *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" binding:"omitempty,longitude"`
	Notes     *string  `json:"notes" binding:"omitempty,max=500"`
}

type CheckOutRequest struct {
	Latitude  *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" binding:"omitempty,longitude"`
	Notes     *string  `json:"notes" binding:"omitempty,max=500"`
}

type ListFilter struct {
	UserID     *uuid.UUID
	EmployeeID *uuid.UUID
	Department *ref.Ref
	Status     Status
	StartDate  string
	EndDate    string
	Search     string
	SortBy     string
	SortOrder  string
	Page       int
	Limit      int
}

type AttendanceResponse struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	EmployeeID   string     `json:"employeeId"`
	EmployeeCode string     `json:"employeeCode,omitempty"`
	EmployeeName string     `json:"employeeName,omitempty"`
	Department   string     `json:"department,omitempty"`
	Date         string     `json:"date"`
	CheckIn      time.Time  `json:"checkIn"`
	CheckOut     *time.Time `json:"checkOut"`
	TotalHours   float64    `json:"totalHours"`
	Status       Status     `json:"status"`
	Latitude     *float64   `json:"latitude,omitempty"`
	Longitude    *float64   `json:"longitude,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:         a.ID.String(),
		UserID:     a.UserID.String(),
		EmployeeID: a.EmployeeID.String(),
		Date:       a.Date.Format("2006-01-02"),
		CheckIn:    a.CheckIn,
		CheckOut:   a.CheckOut,
		TotalHours: a.TotalHours,
		Status:     a.Status,
		Latitude:   a.Latitude,
		Longitude:  a.Longitude,
		Notes:      a.Notes,
	}
	if e := a.Employee; e != nil {
		resp.EmployeeCode = e.EmployeeCode
		resp.EmployeeName = e.Name()
		if e.Department != nil {
			resp.Department = e.Department.Name
		}
	}
	return resp
}
