package domain

type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleHospital UserRole = "hospital"
	UserRoleDoctor   UserRole = "doctor"
	UserRolePatient  UserRole = "patient"
)

// User is the public view of an account. It never carries password material.
type User struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"fullName"`
	Role     UserRole `json:"role"`
}
