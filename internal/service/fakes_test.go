package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/sdroman/ticketlogger/internal/domain/repository"
)

// Fakes en memoria de los repositorios. Reproducen los contratos que
// los tests necesitan: unicidad sin distinguir mayúsculas, traducción
// de referencias rotas a ErrInvalidInput y ErrNotFound para lo ausente.

type fakeRegionRepo struct {
	rows   map[int64]repository.Region
	nextID int64
}

func newFakeRegionRepo() *fakeRegionRepo {
	return &fakeRegionRepo{rows: map[int64]repository.Region{}, nextID: 1}
}

func (f *fakeRegionRepo) List(_ context.Context, req repository.PageRequest) (repository.Page[repository.Region], error) {
	req = req.Normalize()
	items := make([]repository.Region, 0, len(f.rows))
	for _, r := range f.rows {
		items = append(items, r)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return repository.Page[repository.Region]{
		Items: items,
		Meta:  repository.NewPageMeta(req, int64(len(items))),
	}, nil
}

func (f *fakeRegionRepo) GetByID(_ context.Context, id int64) (*repository.Region, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (f *fakeRegionRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	return f.existsExcluding(code, 0), nil
}

func (f *fakeRegionRepo) ExistsByCodeExcluding(_ context.Context, code string, excludeID int64) (bool, error) {
	return f.existsExcluding(code, excludeID), nil
}

func (f *fakeRegionRepo) existsExcluding(code string, excludeID int64) bool {
	for _, r := range f.rows {
		if r.ID != excludeID && strings.EqualFold(r.Code, code) {
			return true
		}
	}
	return false
}

func (f *fakeRegionRepo) Insert(_ context.Context, region *repository.Region) (int64, error) {
	if f.existsExcluding(region.Code, 0) {
		return 0, &repository.ConflictError{Field: "code", Value: region.Code}
	}
	region.ID = f.nextID
	f.nextID++
	f.rows[region.ID] = *region
	return region.ID, nil
}

func (f *fakeRegionRepo) Update(_ context.Context, region *repository.Region) error {
	if _, ok := f.rows[region.ID]; !ok {
		return repository.ErrNotFound
	}
	f.rows[region.ID] = *region
	return nil
}

func (f *fakeRegionRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := f.rows[id]; !ok {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}

type fakeProvinceRepo struct {
	rows    map[int64]repository.Province
	regions *fakeRegionRepo
	nextID  int64
}

func newFakeProvinceRepo(regions *fakeRegionRepo) *fakeProvinceRepo {
	return &fakeProvinceRepo{rows: map[int64]repository.Province{}, regions: regions, nextID: 1}
}

func (f *fakeProvinceRepo) List(_ context.Context, req repository.PageRequest) (repository.Page[repository.Province], error) {
	req = req.Normalize()
	items := make([]repository.Province, 0, len(f.rows))
	for _, p := range f.rows {
		if parent, ok := f.regions.rows[p.Region.ID]; ok {
			p.RegionName = parent.Name
			items = append(items, p)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return repository.Page[repository.Province]{
		Items: items,
		Meta:  repository.NewPageMeta(req, int64(len(items))),
	}, nil
}

func (f *fakeProvinceRepo) GetByID(_ context.Context, id int64) (*repository.Province, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProvinceRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	return f.existsExcluding(code, 0), nil
}

func (f *fakeProvinceRepo) ExistsByCodeExcluding(_ context.Context, code string, excludeID int64) (bool, error) {
	return f.existsExcluding(code, excludeID), nil
}

func (f *fakeProvinceRepo) existsExcluding(code string, excludeID int64) bool {
	for _, p := range f.rows {
		if p.ID != excludeID && strings.EqualFold(p.Code, code) {
			return true
		}
	}
	return false
}

func (f *fakeProvinceRepo) Insert(_ context.Context, province *repository.Province) (int64, error) {
	if _, ok := f.regions.rows[province.Region.ID]; !ok {
		return 0, repository.ErrInvalidInput
	}
	province.ID = f.nextID
	f.nextID++
	f.rows[province.ID] = *province
	return province.ID, nil
}

func (f *fakeProvinceRepo) Update(_ context.Context, province *repository.Province) error {
	if _, ok := f.rows[province.ID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := f.regions.rows[province.Region.ID]; !ok {
		return repository.ErrInvalidInput
	}
	f.rows[province.ID] = *province
	return nil
}

func (f *fakeProvinceRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := f.rows[id]; !ok {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}

type fakeRoleRepo struct {
	roles map[int64]repository.Role
}

func newFakeRoleRepo(names ...string) *fakeRoleRepo {
	f := &fakeRoleRepo{roles: map[int64]repository.Role{}}
	for i, n := range names {
		id := int64(i + 1)
		f.roles[id] = repository.Role{ID: id, Name: n}
	}
	return f
}

func (f *fakeRoleRepo) List(context.Context) ([]repository.Role, error) {
	out := make([]repository.Role, 0, len(f.roles))
	for _, r := range f.roles {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeRoleRepo) ExistAll(_ context.Context, ids []int64) (bool, error) {
	for _, id := range ids {
		if _, ok := f.roles[id]; !ok {
			return false, nil
		}
	}
	return true, nil
}

type fakeUserRepo struct {
	rows   map[int64]repository.User
	roles  *fakeRoleRepo
	nextID int64
}

func newFakeUserRepo(roles *fakeRoleRepo) *fakeUserRepo {
	return &fakeUserRepo{rows: map[int64]repository.User{}, roles: roles, nextID: 1}
}

func (f *fakeUserRepo) List(_ context.Context, req repository.PageRequest) (repository.Page[repository.User], error) {
	req = req.Normalize()
	items := make([]repository.User, 0, len(f.rows))
	for _, u := range f.rows {
		items = append(items, u)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Email < items[j].Email })
	return repository.Page[repository.User]{
		Items: items,
		Meta:  repository.NewPageMeta(req, int64(len(items))),
	}, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*repository.User, error) {
	u, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	return f.existsExcluding(email, 0), nil
}

func (f *fakeUserRepo) ExistsByEmailExcluding(_ context.Context, email string, excludeID int64) (bool, error) {
	return f.existsExcluding(email, excludeID), nil
}

func (f *fakeUserRepo) existsExcluding(email string, excludeID int64) bool {
	for _, u := range f.rows {
		if u.ID != excludeID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (f *fakeUserRepo) Insert(_ context.Context, user *repository.User) (int64, error) {
	if f.existsExcluding(user.Email, 0) {
		return 0, &repository.ConflictError{Field: "email", Value: user.Email}
	}
	user.ID = f.nextID
	f.nextID++
	f.rows[user.ID] = *user
	return user.ID, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *repository.User) error {
	if _, ok := f.rows[user.ID]; !ok {
		return repository.ErrNotFound
	}
	f.rows[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) ReplaceRoles(_ context.Context, userID int64, roleIDs []int64) error {
	u, ok := f.rows[userID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, id := range roleIDs {
		if _, ok := f.roles.roles[id]; !ok {
			return repository.ErrInvalidInput
		}
	}
	u.RoleIDs = append([]int64(nil), roleIDs...)
	f.rows[userID] = u
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := f.rows[id]; !ok {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}

type fakeProfileRepo struct {
	rows  map[int64]repository.UserProfile
	users *fakeUserRepo

	// failSetImage fuerza el fallo de persistencia de la referencia.
	failSetImage error
}

func newFakeProfileRepo(users *fakeUserRepo) *fakeProfileRepo {
	return &fakeProfileRepo{rows: map[int64]repository.UserProfile{}, users: users}
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID int64) (*repository.UserProfile, error) {
	p, ok := f.rows[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProfileRepo) Insert(_ context.Context, profile *repository.UserProfile) error {
	if _, ok := f.users.rows[profile.ID]; !ok {
		return repository.ErrInvalidInput
	}
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	f.rows[profile.ID] = *profile
	return nil
}

func (f *fakeProfileRepo) Update(_ context.Context, profile *repository.UserProfile) error {
	if _, ok := f.rows[profile.ID]; !ok {
		return repository.ErrNotFound
	}
	profile.UpdatedAt = time.Now()
	f.rows[profile.ID] = *profile
	return nil
}

func (f *fakeProfileRepo) SetImagePath(_ context.Context, userID int64, path *string) error {
	if f.failSetImage != nil {
		return f.failSetImage
	}
	p, ok := f.rows[userID]
	if !ok {
		return repository.ErrNotFound
	}
	p.ProfileImage = path
	f.rows[userID] = p
	return nil
}
