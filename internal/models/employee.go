package models

import "encoding/json"

// Employee is the user record returned with a successful login.
type Employee struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	CreatedAt     string          `json:"createdAt"`
	Active        bool            `json:"active"`
	CreatedBy     int64           `json:"createdBy"`
	UpdatedAt     *string         `json:"updatedAt"`
	UpdatedBy     *int64          `json:"updatedBy"`
	UserType      string          `json:"userType"`
	AccessLevelID *int64          `json:"accessLevelId"`
	EmployeeInfo  json.RawMessage `json:"employeeInfo,omitempty"`
}
