package entity

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleSupplier   UserRole = "supplier"
	RoleEnterprise UserRole = "enterprise"
	RoleUser       UserRole = "user"
)

// User carries only the fields every role shares. Role-specific data
// (supplier pricing, enterprise beneficiaries) lives in its own tables.
type User struct {
	Base
	FullName     string   `db:"full_name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Phone        *string  `db:"phone"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`
}
