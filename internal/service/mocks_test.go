package service

import (
	"context"
	"sort"
	"time"

	"pvc-shop/internal/domain"
	"pvc-shop/internal/repository"

	"github.com/google/uuid"
)

// Mock repositories for testing

type mockProductRepository struct {
	products        map[int64]*domain.ProductListItem
	nextID          int64
	lastFilter      domain.ProductFilter
	lastSkip        int
	lastLimit       int
	lastWithFacets  bool
	lastCriteria    repository.SuggestionCriteria
	lastQuickSearch string
	err             error
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[int64]*domain.ProductListItem)}
}

func (m *mockProductRepository) add(item domain.ProductListItem) {
	m.products[item.ID] = &item
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	product.ID = m.nextID
	m.products[product.ID] = &domain.ProductListItem{Product: *product}
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if _, ok := m.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	m.products[product.ID] = &domain.ProductListItem{Product: *product}
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id int64) (*domain.ProductListItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	item, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	copied := *item
	return &copied, nil
}

func (m *mockProductRepository) Search(ctx context.Context, filter domain.ProductFilter, skip, limit int, withFacets bool) (*domain.ProductPage, error) {
	m.lastFilter, m.lastSkip, m.lastLimit, m.lastWithFacets = filter, skip, limit, withFacets
	if m.err != nil {
		return nil, m.err
	}
	page := &domain.ProductPage{Items: []domain.ProductListItem{}, Total: len(m.products)}
	if withFacets {
		page.FilterValues = &domain.FilterValues{}
	}
	return page, nil
}

func (m *mockProductRepository) Suggestions(ctx context.Context, criteria repository.SuggestionCriteria) ([]domain.ProductListItem, error) {
	m.lastCriteria = criteria
	items := []domain.ProductListItem{}
	for _, item := range m.products {
		if item.ID != criteria.ExcludeID {
			items = append(items, *item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	if len(items) > criteria.Limit {
		items = items[:criteria.Limit]
	}
	return items, nil
}

func (m *mockProductRepository) QuickSearch(ctx context.Context, search string, limit int) ([]domain.ProductQuickView, error) {
	m.lastQuickSearch, m.lastLimit = search, limit
	return []domain.ProductQuickView{}, nil
}

type mockInventoryRepository struct {
	rows map[int64]*domain.Inventory
}

func newMockInventoryRepository() *mockInventoryRepository {
	return &mockInventoryRepository{rows: make(map[int64]*domain.Inventory)}
}

func (m *mockInventoryRepository) FindByProductID(ctx context.Context, productID int64) (*domain.Inventory, error) {
	inventory, ok := m.rows[productID]
	if !ok {
		return nil, repository.ErrInventoryNotFound
	}
	return inventory, nil
}

func (m *mockInventoryRepository) Upsert(ctx context.Context, inventory *domain.Inventory) error {
	m.rows[inventory.ProductID] = inventory
	return nil
}

type mockSpecificationRepository struct {
	rows map[int64]*domain.TechnicalSpecification
}

func newMockSpecificationRepository() *mockSpecificationRepository {
	return &mockSpecificationRepository{rows: make(map[int64]*domain.TechnicalSpecification)}
}

func (m *mockSpecificationRepository) FindByProductID(ctx context.Context, productID int64) (*domain.TechnicalSpecification, error) {
	spec, ok := m.rows[productID]
	if !ok {
		return nil, repository.ErrSpecificationNotFound
	}
	return spec, nil
}

func (m *mockSpecificationRepository) Upsert(ctx context.Context, spec *domain.TechnicalSpecification) error {
	m.rows[spec.ProductID] = spec
	return nil
}

type mockPromotionRepository struct {
	promotions      map[int64]*domain.Promotion
	nextID          int64
	lastCategoryIDs []int64
}

func newMockPromotionRepository() *mockPromotionRepository {
	return &mockPromotionRepository{promotions: make(map[int64]*domain.Promotion)}
}

func (m *mockPromotionRepository) Create(ctx context.Context, promotion *domain.Promotion) error {
	m.nextID++
	promotion.ID = m.nextID
	m.promotions[promotion.ID] = promotion
	return nil
}

func (m *mockPromotionRepository) Update(ctx context.Context, promotion *domain.Promotion) error {
	if _, ok := m.promotions[promotion.ID]; !ok {
		return repository.ErrPromotionNotFound
	}
	m.promotions[promotion.ID] = promotion
	return nil
}

func (m *mockPromotionRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.promotions[id]; !ok {
		return repository.ErrPromotionNotFound
	}
	delete(m.promotions, id)
	return nil
}

func (m *mockPromotionRepository) FindByID(ctx context.Context, id int64) (*domain.Promotion, error) {
	promotion, ok := m.promotions[id]
	if !ok {
		return nil, repository.ErrPromotionNotFound
	}
	return promotion, nil
}

func (m *mockPromotionRepository) List(ctx context.Context, skip, limit int) ([]domain.Promotion, int, error) {
	promotions := []domain.Promotion{}
	for _, p := range m.promotions {
		promotions = append(promotions, *p)
	}
	return promotions, len(promotions), nil
}

// ActiveFor returns every stored promotion for the product or categories and leaves the
// time window check to the caller
func (m *mockPromotionRepository) ActiveFor(ctx context.Context, productID int64, categoryIDs []int64, at time.Time) ([]domain.Promotion, error) {
	m.lastCategoryIDs = categoryIDs
	promotions := []domain.Promotion{}
	for id := int64(1); id <= m.nextID; id++ {
		p, ok := m.promotions[id]
		if !ok {
			continue
		}
		if p.ProductID != nil && *p.ProductID == productID {
			promotions = append(promotions, *p)
			continue
		}
		for _, categoryID := range categoryIDs {
			if p.CategoryID != nil && *p.CategoryID == categoryID {
				promotions = append(promotions, *p)
				break
			}
		}
	}
	return promotions, nil
}

type mockCategoryRepository struct {
	categories map[int64]*domain.Category
	nextID     int64
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{categories: make(map[int64]*domain.Category)}
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	m.nextID++
	category.ID = m.nextID
	stored := *category
	m.categories[category.ID] = &stored
	return nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if _, ok := m.categories[category.ID]; !ok {
		return repository.ErrCategoryNotFound
	}
	stored := *category
	m.categories[category.ID] = &stored
	return nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.categories[id]; !ok {
		return repository.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	category, ok := m.categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	return category, nil
}

func (m *mockCategoryRepository) List(ctx context.Context, filter repository.CategoryFilter, skip, limit int) ([]domain.Category, int, error) {
	categories := []domain.Category{}
	for id := int64(1); id <= m.nextID; id++ {
		c, ok := m.categories[id]
		if !ok || (filter.MainOnly && !c.IsMain()) || (filter.IsActive != nil && c.IsActive != *filter.IsActive) {
			continue
		}
		categories = append(categories, *c)
	}
	return categories, len(categories), nil
}

func (m *mockCategoryRepository) AncestorIDs(ctx context.Context, id int64) ([]int64, error) {
	ids := []int64{}
	seen := map[int64]bool{}
	for current, ok := m.categories[id]; ok && !seen[current.ID]; {
		seen[current.ID] = true
		ids = append(ids, current.ID)
		if current.ParentCategoryID == nil {
			break
		}
		current, ok = m.categories[*current.ParentCategoryID]
	}
	return ids, nil
}

type mockUserRepository struct {
	users   map[uuid.UUID]*domain.User
	lastReq repository.UserPageRequest
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[uuid.UUID]*domain.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return repository.ErrUserAlreadyExists
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) Paginated(ctx context.Context, req repository.UserPageRequest) ([]domain.User, int, error) {
	m.lastReq = req
	users := []domain.User{}
	for _, user := range m.users {
		if req.Role == nil || user.Role == *req.Role {
			users = append(users, *user)
		}
	}
	return users, len(users), nil
}
