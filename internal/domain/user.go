package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserType is the role a user account was registered with
type UserType string

const (
	UserTypeCustomer      UserType = "customer"
	UserTypeDistributor   UserType = "distributor"
	UserTypeAdministrator UserType = "administrator"
	UserTypeEmployee      UserType = "employee"
)

func (t UserType) Valid() bool {
	switch t {
	case UserTypeCustomer, UserTypeDistributor, UserTypeAdministrator, UserTypeEmployee:
		return true
	}
	return false
}

// User is the shared account record of every role
type User struct {
	ID               uuid.UUID   `json:"user_id" db:"user_id"`
	Email            string      `json:"email" db:"email"`
	FullName         *string     `json:"full_name" db:"full_name"`
	Phone            *string     `json:"phone" db:"phone"`
	IsActive         bool        `json:"is_active" db:"is_active"`
	Role             UserType    `json:"role" db:"role"`
	RegistrationDate time.Time   `json:"registration_date" db:"registration_date"`
	LastLogin        *time.Time  `json:"last_login" db:"last_login"`
	Profile          RoleProfile `json:"profile"`
}

// RoleProfile is the role-specific part of a user.
// Exactly one of Customer, Distributor, Administrator or Employee.
type RoleProfile interface {
	UserType() UserType
	isRoleProfile()
}

type Customer struct {
	ShippingAddress *string    `json:"shipping_address"`
	BillingAddress  *string    `json:"billing_address"`
	MembershipLevel string     `json:"membership_level"`
	BirthDate       *time.Time `json:"birth_date"`
	PurchaseCount   int        `json:"purchase_count"`
}

type Distributor struct {
	CompanyName      string          `json:"company_name"`
	TaxID            *string         `json:"tax_id"`
	BusinessAddress  string          `json:"business_address"`
	DistributionZone *string         `json:"distribution_zone"`
	CreditLimit      decimal.Decimal `json:"credit_limit"`
	ContractDate     *time.Time      `json:"contract_date"`
}

type Administrator struct {
	AccessLevel       string     `json:"access_level"`
	Department        *string    `json:"department"`
	CanCreateUsers    bool       `json:"can_create_users"`
	CanModifyProducts bool       `json:"can_modify_products"`
	CanViewReports    bool       `json:"can_view_reports"`
	AssignmentDate    *time.Time `json:"assignment_date"`
}

type Employee struct {
	Position       string           `json:"position"`
	Department     string           `json:"department"`
	HireDate       time.Time        `json:"hire_date"`
	Salary         *decimal.Decimal `json:"salary,omitempty"`
	EmployeeNumber *string          `json:"employee_number"`
	Schedule       *string          `json:"schedule"`
	SupervisorID   *int64           `json:"supervisor_id"`
}

func (Customer) UserType() UserType      { return UserTypeCustomer }
func (Distributor) UserType() UserType   { return UserTypeDistributor }
func (Administrator) UserType() UserType { return UserTypeAdministrator }
func (Employee) UserType() UserType      { return UserTypeEmployee }

func (Customer) isRoleProfile()      {}
func (Distributor) isRoleProfile()   {}
func (Administrator) isRoleProfile() {}
func (Employee) isRoleProfile()      {}
