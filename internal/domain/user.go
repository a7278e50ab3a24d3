package domain

import "time"

type User struct {
	ID               string    `json:"user_id"`
	EmployeeID       string    `json:"employee_id"`
	FullName         string    `json:"full_name"`
	AdsID            string    `json:"ads_id"`
	ManagerID        string    `json:"manager_id"`
	ManagerName      string    `json:"manager_name"`
	ManagerEmailHash string    `json:"manager_email_hash"`
	Department       string    `json:"department"`
	Band             string    `json:"band"`
	JobTitle         string    `json:"job_title"`
	IsActive         bool      `json:"is_active"`
	EmailHash        string    `json:"email_hash"`
	CreatedAt        time.Time `json:"created_at"`
}
