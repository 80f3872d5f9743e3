package services

import (
	"context"
	"errors"

	"github.com/opencampus/coursehub/internal/app/models"
	"github.com/opencampus/coursehub/internal/pkg/identity"
)

// errStore simulates a backend failure.
var errStore = errors.New("store unavailable")

// ctxAs returns a context authenticated as the given login with roles.
func ctxAs(login string, roles ...models.RoleType) context.Context {
	return identity.NewContext(context.Background(), identity.Identity{
		Login: login,
		Roles: roles,
	})
}

// fakeProgramStore implements programStore with function fields. Nil fields
// behave as successful no-ops.
type fakeProgramStore struct {
	saveFn   func(ctx context.Context, program *models.Program) error
	getFn    func(ctx context.Context, id int64) (*models.Program, error)
	getAllFn func(ctx context.Context) ([]*models.Program, error)
	searchFn func(ctx context.Context, queryText string) ([]*models.Program, error)
	deleteFn func(ctx context.Context, id int64) error

	saveCalls   int
	deleteCalls int
}

func (f *fakeProgramStore) Save(ctx context.Context, program *models.Program) error {
	f.saveCalls++
	if f.saveFn != nil {
		return f.saveFn(ctx, program)
	}
	if program.ID == 0 {
		program.ID = 1
	}
	return nil
}

func (f *fakeProgramStore) GetByIDWithCourses(ctx context.Context, id int64) (*models.Program, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return &models.Program{ID: id}, nil
}

func (f *fakeProgramStore) GetAll(ctx context.Context) ([]*models.Program, error) {
	if f.getAllFn != nil {
		return f.getAllFn(ctx)
	}
	return []*models.Program{}, nil
}

func (f *fakeProgramStore) Search(ctx context.Context, queryText string) ([]*models.Program, error) {
	if f.searchFn != nil {
		return f.searchFn(ctx, queryText)
	}
	return []*models.Program{}, nil
}

func (f *fakeProgramStore) Delete(ctx context.Context, id int64) error {
	f.deleteCalls++
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

// fakeProgramIndex implements programIndex.
type fakeProgramIndex struct {
	indexFn  func(ctx context.Context, program *models.Program) error
	deleteFn func(ctx context.Context, id int64) error

	indexCalls  int
	deleteCalls int
}

func (f *fakeProgramIndex) IndexProgram(ctx context.Context, program *models.Program) error {
	f.indexCalls++
	if f.indexFn != nil {
		return f.indexFn(ctx, program)
	}
	return nil
}

func (f *fakeProgramIndex) DeleteProgram(ctx context.Context, id int64) error {
	f.deleteCalls++
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

// fakeCourseStore implements courseStore.
type fakeCourseStore struct {
	saveFn   func(ctx context.Context, course *models.Course) error
	getFn    func(ctx context.Context, id int64) (*models.Course, error)
	getAllFn func(ctx context.Context) ([]*models.Course, error)
	searchFn func(ctx context.Context, queryText string) ([]*models.Course, error)
	deleteFn func(ctx context.Context, id int64) error

	saveCalls   int
	deleteCalls int
}

func (f *fakeCourseStore) Save(ctx context.Context, course *models.Course) error {
	f.saveCalls++
	if f.saveFn != nil {
		return f.saveFn(ctx, course)
	}
	if course.ID == 0 {
		course.ID = 1
	}
	return nil
}

func (f *fakeCourseStore) GetByIDWithProgram(ctx context.Context, id int64) (*models.Course, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return &models.Course{ID: id}, nil
}

func (f *fakeCourseStore) GetAllWithProgram(ctx context.Context) ([]*models.Course, error) {
	if f.getAllFn != nil {
		return f.getAllFn(ctx)
	}
	return []*models.Course{}, nil
}

func (f *fakeCourseStore) Search(ctx context.Context, queryText string) ([]*models.Course, error) {
	if f.searchFn != nil {
		return f.searchFn(ctx, queryText)
	}
	return []*models.Course{}, nil
}

func (f *fakeCourseStore) Delete(ctx context.Context, id int64) error {
	f.deleteCalls++
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

// fakeCourseIndex implements courseIndex.
type fakeCourseIndex struct {
	indexFn  func(ctx context.Context, course *models.Course) error
	deleteFn func(ctx context.Context, id int64) error

	indexCalls  int
	deleteCalls int
}

func (f *fakeCourseIndex) IndexCourse(ctx context.Context, course *models.Course) error {
	f.indexCalls++
	if f.indexFn != nil {
		return f.indexFn(ctx, course)
	}
	return nil
}

func (f *fakeCourseIndex) DeleteCourse(ctx context.Context, id int64) error {
	f.deleteCalls++
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

// fakeCourseValidator implements courseValidator.
type fakeCourseValidator struct {
	validateFn func(ctx context.Context, course *models.Course) error
	calls      int
}

func (f *fakeCourseValidator) Validate(ctx context.Context, course *models.Course) error {
	f.calls++
	if f.validateFn != nil {
		return f.validateFn(ctx, course)
	}
	return nil
}

// fakeEnrollmentStore implements enrollmentStore.
type fakeEnrollmentStore struct {
	saveFn     func(ctx context.Context, enrollment *models.Enrollment) error
	getFn      func(ctx context.Context, id int64) (*models.Enrollment, error)
	getAllFn   func(ctx context.Context) ([]*models.Enrollment, error)
	getOwnedFn func(ctx context.Context, login string) ([]*models.Enrollment, error)
	searchFn   func(ctx context.Context, queryText string) ([]*models.Enrollment, error)
	deleteFn   func(ctx context.Context, id int64) error

	saveCalls     int
	deleteCalls   int
	getAllCalls   int
	getOwnedCalls int
	ownedLogins   []string
}

func (f *fakeEnrollmentStore) Save(ctx context.Context, enrollment *models.Enrollment) error {
	f.saveCalls++
	if f.saveFn != nil {
		return f.saveFn(ctx, enrollment)
	}
	if enrollment.ID == 0 {
		enrollment.ID = 1
	}
	return nil
}

func (f *fakeEnrollmentStore) GetByIDWithRelations(ctx context.Context, id int64) (*models.Enrollment, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return &models.Enrollment{ID: id}, nil
}

func (f *fakeEnrollmentStore) GetAllWithRelations(ctx context.Context) ([]*models.Enrollment, error) {
	f.getAllCalls++
	if f.getAllFn != nil {
		return f.getAllFn(ctx)
	}
	return []*models.Enrollment{}, nil
}

func (f *fakeEnrollmentStore) GetOwnedBy(ctx context.Context, login string) ([]*models.Enrollment, error) {
	f.getOwnedCalls++
	f.ownedLogins = append(f.ownedLogins, login)
	if f.getOwnedFn != nil {
		return f.getOwnedFn(ctx, login)
	}
	return []*models.Enrollment{}, nil
}

func (f *fakeEnrollmentStore) Search(ctx context.Context, queryText string) ([]*models.Enrollment, error) {
	if f.searchFn != nil {
		return f.searchFn(ctx, queryText)
	}
	return []*models.Enrollment{}, nil
}

func (f *fakeEnrollmentStore) Delete(ctx context.Context, id int64) error {
	f.deleteCalls++
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

// fakeEnrollmentIndex implements enrollmentIndex.
type fakeEnrollmentIndex struct {
	indexFn  func(ctx context.Context, enrollment *models.Enrollment) error
	deleteFn func(ctx context.Context, id int64) error

	indexCalls  int
	deleteCalls int
}

func (f *fakeEnrollmentIndex) IndexEnrollment(ctx context.Context, enrollment *models.Enrollment) error {
	f.indexCalls++
	if f.indexFn != nil {
		return f.indexFn(ctx, enrollment)
	}
	return nil
}

func (f *fakeEnrollmentIndex) DeleteEnrollment(ctx context.Context, id int64) error {
	f.deleteCalls++
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

// fakeUserStore implements userStore.
type fakeUserStore struct {
	getByLoginFn func(ctx context.Context, login string) (*models.User, error)
}

func (f *fakeUserStore) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	if f.getByLoginFn != nil {
		return f.getByLoginFn(ctx, login)
	}
	return nil, errors.New("not configured")
}
