package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"dealradar/internal/domain/entity"
	"dealradar/internal/domain/repository"
	"dealradar/internal/domain/service"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUserRepo is a hand-rolled stub. Unstubbed methods panic so a test
// fails loudly when the service touches a repo it should not.
type fakeUserRepo struct {
	findByIDFn           func(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	findByEmailFn        func(ctx context.Context, email string) (*entity.User, error)
	findByReferralCodeFn func(ctx context.Context, code string) (*entity.User, error)
	createFn             func(ctx context.Context, user *entity.User) error
	updateFn             func(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.User, error)
	deleteFn             func(ctx context.Context, id primitive.ObjectID) error
	incrementBountyFn    func(ctx context.Context, id primitive.ObjectID, delta int) error
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	if f.findByIDFn == nil {
		panic("unexpected call: UserRepository.FindByID")
	}

	return f.findByIDFn(ctx, id)
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if f.findByEmailFn == nil {
		panic("unexpected call: UserRepository.FindByEmail")
	}

	return f.findByEmailFn(ctx, email)
}

func (f *fakeUserRepo) FindByReferralCode(ctx context.Context, code string) (*entity.User, error) {
	if f.findByReferralCodeFn == nil {
		panic("unexpected call: UserRepository.FindByReferralCode")
	}

	return f.findByReferralCodeFn(ctx, code)
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if f.createFn == nil {
		panic("unexpected call: UserRepository.Create")
	}

	return f.createFn(ctx, user)
}

func (f *fakeUserRepo) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.User, error) {
	if f.updateFn == nil {
		panic("unexpected call: UserRepository.Update")
	}

	return f.updateFn(ctx, id, fields)
}

func (f *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if f.deleteFn == nil {
		panic("unexpected call: UserRepository.Delete")
	}

	return f.deleteFn(ctx, id)
}

func (f *fakeUserRepo) IncrementBounty(ctx context.Context, id primitive.ObjectID, delta int) error {
	if f.incrementBountyFn == nil {
		panic("unexpected call: UserRepository.IncrementBounty")
	}

	return f.incrementBountyFn(ctx, id, delta)
}

type fakeBusinessRepo struct {
	findByIDFn       func(ctx context.Context, id primitive.ObjectID) (*entity.Business, error)
	findByUserIDFn   func(ctx context.Context, userID primitive.ObjectID) ([]*entity.Business, error)
	createFn         func(ctx context.Context, business *entity.Business) error
	updateFn         func(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.Business, error)
	deleteFn         func(ctx context.Context, id primitive.ObjectID) error
	deleteByUserIDFn func(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
	discoverDealsFn  func(ctx context.Context, q repository.DiscoveryQuery) ([]*entity.DiscoveredDeal, error)
}

func (f *fakeBusinessRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Business, error) {
	if f.findByIDFn == nil {
		panic("unexpected call: BusinessRepository.FindByID")
	}

	return f.findByIDFn(ctx, id)
}

func (f *fakeBusinessRepo) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*entity.Business, error) {
	if f.findByUserIDFn == nil {
		panic("unexpected call: BusinessRepository.FindByUserID")
	}

	return f.findByUserIDFn(ctx, userID)
}

func (f *fakeBusinessRepo) Create(ctx context.Context, business *entity.Business) error {
	if f.createFn == nil {
		panic("unexpected call: BusinessRepository.Create")
	}

	return f.createFn(ctx, business)
}

func (f *fakeBusinessRepo) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.Business, error) {
	if f.updateFn == nil {
		panic("unexpected call: BusinessRepository.Update")
	}

	return f.updateFn(ctx, id, fields)
}

func (f *fakeBusinessRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if f.deleteFn == nil {
		panic("unexpected call: BusinessRepository.Delete")
	}

	return f.deleteFn(ctx, id)
}

func (f *fakeBusinessRepo) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	if f.deleteByUserIDFn == nil {
		panic("unexpected call: BusinessRepository.DeleteByUserID")
	}

	return f.deleteByUserIDFn(ctx, userID)
}

func (f *fakeBusinessRepo) DiscoverDeals(ctx context.Context, q repository.DiscoveryQuery) ([]*entity.DiscoveredDeal, error) {
	if f.discoverDealsFn == nil {
		panic("unexpected call: BusinessRepository.DiscoverDeals")
	}

	return f.discoverDealsFn(ctx, q)
}

type fakeProductRepo struct {
	findByIDFn           func(ctx context.Context, id primitive.ObjectID) (*entity.Product, error)
	findByBusinessIDFn   func(ctx context.Context, businessID primitive.ObjectID) ([]*entity.Product, error)
	createFn             func(ctx context.Context, product *entity.Product) error
	updateFn             func(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.Product, error)
	replaceQuantityFn    func(ctx context.Context, id primitive.ObjectID, next entity.Quantity) (*entity.Product, error)
	deleteFn             func(ctx context.Context, id primitive.ObjectID) error
	deleteByBusinessIDFn func(ctx context.Context, businessID primitive.ObjectID) error
	deleteByUserIDFn     func(ctx context.Context, userID primitive.ObjectID) error
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	if f.findByIDFn == nil {
		panic("unexpected call: ProductRepository.FindByID")
	}

	return f.findByIDFn(ctx, id)
}

func (f *fakeProductRepo) FindByBusinessID(ctx context.Context, businessID primitive.ObjectID) ([]*entity.Product, error) {
	if f.findByBusinessIDFn == nil {
		panic("unexpected call: ProductRepository.FindByBusinessID")
	}

	return f.findByBusinessIDFn(ctx, businessID)
}

func (f *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if f.createFn == nil {
		panic("unexpected call: ProductRepository.Create")
	}

	return f.createFn(ctx, product)
}

func (f *fakeProductRepo) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.Product, error) {
	if f.updateFn == nil {
		panic("unexpected call: ProductRepository.Update")
	}

	return f.updateFn(ctx, id, fields)
}

func (f *fakeProductRepo) ReplaceQuantity(ctx context.Context, id primitive.ObjectID, next entity.Quantity) (*entity.Product, error) {
	if f.replaceQuantityFn == nil {
		panic("unexpected call: ProductRepository.ReplaceQuantity")
	}

	return f.replaceQuantityFn(ctx, id, next)
}

func (f *fakeProductRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if f.deleteFn == nil {
		panic("unexpected call: ProductRepository.Delete")
	}

	return f.deleteFn(ctx, id)
}

func (f *fakeProductRepo) DeleteByBusinessID(ctx context.Context, businessID primitive.ObjectID) error {
	if f.deleteByBusinessIDFn == nil {
		panic("unexpected call: ProductRepository.DeleteByBusinessID")
	}

	return f.deleteByBusinessIDFn(ctx, businessID)
}

func (f *fakeProductRepo) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	if f.deleteByUserIDFn == nil {
		panic("unexpected call: ProductRepository.DeleteByUserID")
	}

	return f.deleteByUserIDFn(ctx, userID)
}

type fakeDealRepo struct {
	findByIDFn         func(ctx context.Context, id primitive.ObjectID) (*entity.Deal, error)
	findByBusinessIDFn func(ctx context.Context, businessID primitive.ObjectID) ([]*entity.Deal, error)
	createFn           func(ctx context.Context, deal *entity.Deal) error
	updateFn           func(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.Deal, error)
	deleteFn           func(ctx context.Context, id primitive.ObjectID) error
}

func (f *fakeDealRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Deal, error) {
	if f.findByIDFn == nil {
		panic("unexpected call: DealRepository.FindByID")
	}

	return f.findByIDFn(ctx, id)
}

func (f *fakeDealRepo) FindByBusinessID(ctx context.Context, businessID primitive.ObjectID) ([]*entity.Deal, error) {
	if f.findByBusinessIDFn == nil {
		panic("unexpected call: DealRepository.FindByBusinessID")
	}

	return f.findByBusinessIDFn(ctx, businessID)
}

func (f *fakeDealRepo) Create(ctx context.Context, deal *entity.Deal) error {
	if f.createFn == nil {
		panic("unexpected call: DealRepository.Create")
	}

	return f.createFn(ctx, deal)
}

func (f *fakeDealRepo) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.Deal, error) {
	if f.updateFn == nil {
		panic("unexpected call: DealRepository.Update")
	}

	return f.updateFn(ctx, id, fields)
}

func (f *fakeDealRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if f.deleteFn == nil {
		panic("unexpected call: DealRepository.Delete")
	}

	return f.deleteFn(ctx, id)
}

type fakeCategoryRepo struct {
	findCategoryByIDFn                func(ctx context.Context, id primitive.ObjectID) (*entity.Category, error)
	listCategoriesFn                  func(ctx context.Context) ([]*entity.Category, error)
	createCategoryFn                  func(ctx context.Context, category *entity.Category) error
	updateCategoryFn                  func(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.Category, error)
	deleteCategoryFn                  func(ctx context.Context, id primitive.ObjectID) error
	findSubCategoryByIDFn             func(ctx context.Context, id primitive.ObjectID) (*entity.SubCategory, error)
	findSubCategoriesByCategoryIDFn   func(ctx context.Context, categoryID primitive.ObjectID) ([]*entity.SubCategory, error)
	createSubCategoryFn               func(ctx context.Context, sub *entity.SubCategory) error
	updateSubCategoryFn               func(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.SubCategory, error)
	deleteSubCategoryFn               func(ctx context.Context, id primitive.ObjectID) error
	deleteSubCategoriesByCategoryIDFn func(ctx context.Context, categoryID primitive.ObjectID) error
}

func (f *fakeCategoryRepo) FindCategoryByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error) {
	if f.findCategoryByIDFn == nil {
		panic("unexpected call: CategoryRepository.FindCategoryByID")
	}

	return f.findCategoryByIDFn(ctx, id)
}

func (f *fakeCategoryRepo) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	if f.listCategoriesFn == nil {
		panic("unexpected call: CategoryRepository.ListCategories")
	}

	return f.listCategoriesFn(ctx)
}

func (f *fakeCategoryRepo) CreateCategory(ctx context.Context, category *entity.Category) error {
	if f.createCategoryFn == nil {
		panic("unexpected call: CategoryRepository.CreateCategory")
	}

	return f.createCategoryFn(ctx, category)
}

func (f *fakeCategoryRepo) UpdateCategory(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.Category, error) {
	if f.updateCategoryFn == nil {
		panic("unexpected call: CategoryRepository.UpdateCategory")
	}

	return f.updateCategoryFn(ctx, id, fields)
}

func (f *fakeCategoryRepo) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	if f.deleteCategoryFn == nil {
		panic("unexpected call: CategoryRepository.DeleteCategory")
	}

	return f.deleteCategoryFn(ctx, id)
}

func (f *fakeCategoryRepo) FindSubCategoryByID(ctx context.Context, id primitive.ObjectID) (*entity.SubCategory, error) {
	if f.findSubCategoryByIDFn == nil {
		panic("unexpected call: CategoryRepository.FindSubCategoryByID")
	}

	return f.findSubCategoryByIDFn(ctx, id)
}

func (f *fakeCategoryRepo) FindSubCategoriesByCategoryID(ctx context.Context, categoryID primitive.ObjectID) ([]*entity.SubCategory, error) {
	if f.findSubCategoriesByCategoryIDFn == nil {
		panic("unexpected call: CategoryRepository.FindSubCategoriesByCategoryID")
	}

	return f.findSubCategoriesByCategoryIDFn(ctx, categoryID)
}

func (f *fakeCategoryRepo) CreateSubCategory(ctx context.Context, sub *entity.SubCategory) error {
	if f.createSubCategoryFn == nil {
		panic("unexpected call: CategoryRepository.CreateSubCategory")
	}

	return f.createSubCategoryFn(ctx, sub)
}

func (f *fakeCategoryRepo) UpdateSubCategory(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.SubCategory, error) {
	if f.updateSubCategoryFn == nil {
		panic("unexpected call: CategoryRepository.UpdateSubCategory")
	}

	return f.updateSubCategoryFn(ctx, id, fields)
}

func (f *fakeCategoryRepo) DeleteSubCategory(ctx context.Context, id primitive.ObjectID) error {
	if f.deleteSubCategoryFn == nil {
		panic("unexpected call: CategoryRepository.DeleteSubCategory")
	}

	return f.deleteSubCategoryFn(ctx, id)
}

func (f *fakeCategoryRepo) DeleteSubCategoriesByCategoryID(ctx context.Context, categoryID primitive.ObjectID) error {
	if f.deleteSubCategoriesByCategoryIDFn == nil {
		panic("unexpected call: CategoryRepository.DeleteSubCategoriesByCategoryID")
	}

	return f.deleteSubCategoriesByCategoryIDFn(ctx, categoryID)
}

// fakeFactory hands out the fakes wired into the test case.
type fakeFactory struct {
	users      repository.UserRepository
	businesses repository.BusinessRepository
	products   repository.ProductRepository
	deals      repository.DealRepository
	categories repository.CategoryRepository
}

func (f *fakeFactory) Users() repository.UserRepository {
	return f.users
}

func (f *fakeFactory) Businesses() repository.BusinessRepository {
	return f.businesses
}

func (f *fakeFactory) Products() repository.ProductRepository {
	return f.products
}

func (f *fakeFactory) Deals() repository.DealRepository {
	return f.deals
}

func (f *fakeFactory) Categories() repository.CategoryRepository {
	return f.categories
}

// fakeTxManager runs the cascade inline against the test's factory,
// mirroring the non-transactional store path.
type fakeTxManager struct {
	factory repository.RepositoryFactory
}

func (m *fakeTxManager) Execute(ctx context.Context, fn func(txCtx context.Context, repos repository.RepositoryFactory) error) error {
	return fn(ctx, m.factory)
}

type fakeHasher struct {
	hashFn  func(password string) (string, error)
	checkFn func(password, hash string) bool
}

func (f *fakeHasher) Hash(password string) (string, error) {
	if f.hashFn == nil {
		return "hashed:" + password, nil
	}

	return f.hashFn(password)
}

func (f *fakeHasher) Check(password, hash string) bool {
	if f.checkFn == nil {
		return hash == "hashed:"+password
	}

	return f.checkFn(password, hash)
}

type fakeTokenService struct {
	issuePairFn    func(userID string, data service.UserData) (string, string, error)
	issueAccessFn  func(userID string, data service.UserData) (string, error)
	issueRefreshFn func(userID string, data service.UserData) (string, error)
	parseAccessFn  func(token string) (*service.Claims, error)
	parseRefreshFn func(token string) (*service.Claims, error)
}

func (f *fakeTokenService) IssueTokenPair(userID string, data service.UserData) (string, string, error) {
	if f.issuePairFn == nil {
		return "access-" + userID, "refresh-" + userID, nil
	}

	return f.issuePairFn(userID, data)
}

func (f *fakeTokenService) IssueAccessToken(userID string, data service.UserData) (string, error) {
	if f.issueAccessFn == nil {
		return "access-" + userID, nil
	}

	return f.issueAccessFn(userID, data)
}

func (f *fakeTokenService) IssueRefreshToken(userID string, data service.UserData) (string, error) {
	if f.issueRefreshFn == nil {
		return "refresh-" + userID, nil
	}

	return f.issueRefreshFn(userID, data)
}

func (f *fakeTokenService) ParseAccess(token string) (*service.Claims, error) {
	if f.parseAccessFn == nil {
		panic("unexpected call: TokenService.ParseAccess")
	}

	return f.parseAccessFn(token)
}

func (f *fakeTokenService) ParseRefresh(token string) (*service.Claims, error) {
	if f.parseRefreshFn == nil {
		panic("unexpected call: TokenService.ParseRefresh")
	}

	return f.parseRefreshFn(token)
}

func (f *fakeTokenService) AccessTTL() time.Duration  { return time.Hour }
func (f *fakeTokenService) RefreshTTL() time.Duration { return 7 * 24 * time.Hour }

// fakeMailer records every message instead of sending it.
type fakeMailer struct {
	sent []*service.EmailMessage
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg *service.EmailMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)

	return nil
}

// fakePushSender records every push instead of delivering it.
type fakePushSender struct {
	tokens []string
	titles []string
	err    error
}

func (f *fakePushSender) SendPush(_ context.Context, token, title, _ string, _ map[string]string) error {
	if f.err != nil {
		return f.err
	}
	f.tokens = append(f.tokens, token)
	f.titles = append(f.titles, title)

	return nil
}

// fakePublisher records every deal event.
type fakePublisher struct {
	events []*service.DealEvent
	err    error
}

func (f *fakePublisher) PublishDealEvent(_ context.Context, event *service.DealEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)

	return nil
}

func (f *fakePublisher) Close() error { return nil }

type fakeValidator struct {
	err error
}

func (f *fakeValidator) Validate(context.Context, *service.Claims) error {
	return f.err
}
