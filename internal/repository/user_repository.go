package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pvc-shop/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user with this email already exists")
)

// UserPageRequest is a paginated user listing optionally restricted to one role
type UserPageRequest struct {
	PageRequest
	Role *domain.UserType
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Paginated(ctx context.Context, req UserPageRequest) ([]domain.User, int, error)
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// Sort columns allowed in the user listing; user ids are random so they sort by registration
var userSortColumns = map[string]string{
	"user_id":           "u.registration_date",
	"email":             "u.email",
	"full_name":         "u.full_name",
	"role":              "u.role",
	"registration_date": "u.registration_date",
	"last_login":        "u.last_login",
}

const userColumns = `
	u.user_id, u.email, u.full_name, u.phone, u.is_active, u.role, u.registration_date, u.last_login,
	cu.customer_id IS NOT NULL, cu.shipping_address, cu.billing_address, cu.membership_level, cu.birth_date, cu.purchase_count,
	di.distributor_id IS NOT NULL, di.company_name, di.tax_id, di.business_address, di.distribution_zone, di.credit_limit, di.contract_date,
	ad.administrator_id IS NOT NULL, ad.access_level, ad.department, ad.can_create_users, ad.can_modify_products, ad.can_view_reports, ad.assignment_date,
	em.employee_id IS NOT NULL, em.position, em.department, em.hire_date, em.salary, em.employee_number, em.schedule, em.supervisor_id`

const userJoins = `
	FROM users u
	LEFT JOIN customers cu ON cu.user_id = u.user_id
	LEFT JOIN distributors di ON di.user_id = u.user_id
	LEFT JOIN administrators ad ON ad.user_id = u.user_id
	LEFT JOIN employees em ON em.user_id = u.user_id`

// Create inserts a user and its role profile in one transaction
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO users (user_id, email, full_name, phone, is_active, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING registration_date
	`

	err = tx.QueryRowContext(ctx, query, user.ID, user.Email, user.FullName, user.Phone, user.IsActive, user.Role).
		Scan(&user.RegistrationDate)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := insertRoleProfile(ctx, tx, user.ID, user.Profile); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user: %w", err)
	}

	return nil
}

// FindByID retrieves a user with its role profile
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE u.user_id = $1`, userColumns, userJoins)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}

	return &user, nil
}

// Paginated lists users matching the search and role, sorted by a whitelisted column
func (r *userRepository) Paginated(ctx context.Context, req UserPageRequest) ([]domain.User, int, error) {
	column, ok := userSortColumns[req.Sort]
	if !ok {
		column = "u.registration_date"
	}

	where := &whereClause{}
	if search := strings.TrimSpace(req.Search); search != "" {
		p := where.arg(containsPattern(search))
		where.add(fmt.Sprintf("(u.email ILIKE %[1]s OR u.full_name ILIKE %[1]s OR u.phone ILIKE %[1]s)", p))
	}
	if req.Role != nil {
		where.add(fmt.Sprintf("u.role = %s", where.arg(string(*req.Role))))
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM users u %s", where)
	if err := r.db.QueryRowContext(ctx, countQuery, where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		%s
		%s
		ORDER BY %s %s NULLS LAST, u.user_id ASC
		LIMIT $%d OFFSET $%d
	`, userColumns, userJoins, where, column, req.direction(), where.next(), where.next()+1)

	rows, err := r.db.QueryContext(ctx, query, append(where.args, req.Size, req.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating users: %w", err)
	}

	return users, total, nil
}

func insertRoleProfile(ctx context.Context, tx execer, userID uuid.UUID, profile domain.RoleProfile) error {
	var (
		query string
		args  []interface{}
	)

	switch p := profile.(type) {
	case nil:
		return nil
	case domain.Customer:
		query = `INSERT INTO customers (user_id, shipping_address, billing_address, membership_level, birth_date, purchase_count)
			VALUES ($1, $2, $3, $4, $5, $6)`
		args = []interface{}{userID, p.ShippingAddress, p.BillingAddress, p.MembershipLevel, p.BirthDate, p.PurchaseCount}
	case domain.Distributor:
		query = `INSERT INTO distributors (user_id, company_name, tax_id, business_address, distribution_zone, credit_limit, contract_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		args = []interface{}{userID, p.CompanyName, p.TaxID, p.BusinessAddress, p.DistributionZone, p.CreditLimit, p.ContractDate}
	case domain.Administrator:
		query = `INSERT INTO administrators (user_id, access_level, department, can_create_users, can_modify_products, can_view_reports, assignment_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		args = []interface{}{userID, p.AccessLevel, p.Department, p.CanCreateUsers, p.CanModifyProducts, p.CanViewReports, p.AssignmentDate}
	case domain.Employee:
		query = `INSERT INTO employees (user_id, position, department, hire_date, salary, employee_number, schedule, supervisor_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
		args = []interface{}{userID, p.Position, p.Department, p.HireDate, p.Salary, p.EmployeeNumber, p.Schedule, p.SupervisorID}
	default:
		return fmt.Errorf("unsupported role profile %T", profile)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create %s profile: %w", profile.UserType(), err)
	}

	return nil
}

// userRow holds the nullable columns of every role table joined to a user
type userRow struct {
	hasCustomer     bool
	shippingAddress *string
	billingAddress  *string
	membershipLevel *string
	birthDate       *time.Time
	purchaseCount   *int

	hasDistributor   bool
	companyName      *string
	taxID            *string
	businessAddress  *string
	distributionZone *string
	creditLimit      decimal.NullDecimal
	contractDate     *time.Time

	hasAdministrator  bool
	accessLevel       *string
	adminDepartment   *string
	canCreateUsers    *bool
	canModifyProducts *bool
	canViewReports    *bool
	assignmentDate    *time.Time

	hasEmployee        bool
	position           *string
	employeeDepartment *string
	hireDate           *time.Time
	salary             decimal.NullDecimal
	employeeNumber     *string
	schedule           *string
	supervisorID       *int64
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		user domain.User
		r    userRow
	)

	err := row.Scan(
		&user.ID, &user.Email, &user.FullName, &user.Phone, &user.IsActive, &user.Role, &user.RegistrationDate, &user.LastLogin,
		&r.hasCustomer, &r.shippingAddress, &r.billingAddress, &r.membershipLevel, &r.birthDate, &r.purchaseCount,
		&r.hasDistributor, &r.companyName, &r.taxID, &r.businessAddress, &r.distributionZone, &r.creditLimit, &r.contractDate,
		&r.hasAdministrator, &r.accessLevel, &r.adminDepartment, &r.canCreateUsers, &r.canModifyProducts, &r.canViewReports, &r.assignmentDate,
		&r.hasEmployee, &r.position, &r.employeeDepartment, &r.hireDate, &r.salary, &r.employeeNumber, &r.schedule, &r.supervisorID,
	)
	if err != nil {
		return user, err
	}

	user.Profile = r.profile(user.Role)
	return user, nil
}

// profile picks the role table matching the user's role; nil when that row is missing
func (r userRow) profile(role domain.UserType) domain.RoleProfile {
	switch role {
	case domain.UserTypeCustomer:
		if r.hasCustomer {
			return domain.Customer{
				ShippingAddress: r.shippingAddress,
				BillingAddress:  r.billingAddress,
				MembershipLevel: deref(r.membershipLevel),
				BirthDate:       r.birthDate,
				PurchaseCount:   derefInt(r.purchaseCount),
			}
		}
	case domain.UserTypeDistributor:
		if r.hasDistributor {
			return domain.Distributor{
				CompanyName:      deref(r.companyName),
				TaxID:            r.taxID,
				BusinessAddress:  deref(r.businessAddress),
				DistributionZone: r.distributionZone,
				CreditLimit:      r.creditLimit.Decimal,
				ContractDate:     r.contractDate,
			}
		}
	case domain.UserTypeAdministrator:
		if r.hasAdministrator {
			return domain.Administrator{
				AccessLevel:       deref(r.accessLevel),
				Department:        r.adminDepartment,
				CanCreateUsers:    derefBool(r.canCreateUsers),
				CanModifyProducts: derefBool(r.canModifyProducts),
				CanViewReports:    derefBool(r.canViewReports),
				AssignmentDate:    r.assignmentDate,
			}
		}
	case domain.UserTypeEmployee:
		if r.hasEmployee {
			employee := domain.Employee{
				Position:       deref(r.position),
				Department:     deref(r.employeeDepartment),
				EmployeeNumber: r.employeeNumber,
				Schedule:       r.schedule,
				SupervisorID:   r.supervisorID,
			}
			if r.hireDate != nil {
				employee.HireDate = *r.hireDate
			}
			if r.salary.Valid {
				salary := r.salary.Decimal
				employee.Salary = &salary
			}
			return employee
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

func derefBool(b *bool) bool {
	return b != nil && *b
}
