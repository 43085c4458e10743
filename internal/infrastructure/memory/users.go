package memory

import (
	"context"

	"openconference/internal/domain/entities"
	"openconference/internal/ports/output"
)

type userRepo struct{ v *view }

func (r userRepo) CreateIfAbsent(_ context.Context, user *entities.User) error {
	return r.v.write(func(t *tables) error {
		for _, existing := range t.users {
			if existing.value.Subject == user.Subject {
				*user = existing.value
				return nil
			}
		}
		if _, ok := t.users[user.ID]; ok {
			return output.ErrDuplicate
		}
		t.users[user.ID] = row[entities.User]{value: *user, seq: t.next()}
		return nil
	})
}

func (r userRepo) FindByID(_ context.Context, id string) (*entities.User, error) {
	var out *entities.User
	err := r.v.read(func(t *tables) error {
		u, ok := t.users[id]
		if !ok {
			return output.ErrNotFound
		}
		value := u.value
		out = &value
		return nil
	})
	return out, err
}

func (r userRepo) FindBySubject(_ context.Context, subject string) (*entities.User, error) {
	return r.findFirst(func(u entities.User) bool { return u.Subject == subject })
}

func (r userRepo) FindByName(_ context.Context, name string) (*entities.User, error) {
	return r.findFirst(func(u entities.User) bool { return u.Name == name })
}

func (r userRepo) findFirst(match func(entities.User) bool) (*entities.User, error) {
	var out *entities.User
	err := r.v.read(func(t *tables) error {
		for _, u := range sortedRows(t.users) {
			if match(u) {
				value := u
				out = &value
				return nil
			}
		}
		return output.ErrNotFound
	})
	return out, err
}

func (r userRepo) Update(_ context.Context, user *entities.User) error {
	return r.v.write(func(t *tables) error {
		existing, ok := t.users[user.ID]
		if !ok {
			return output.ErrNotFound
		}
		updated := *user
		updated.Subject = existing.value.Subject
		updated.CreatedAt = existing.value.CreatedAt
		t.users[user.ID] = row[entities.User]{value: updated, seq: existing.seq}
		return nil
	})
}

// Delete removes the user only; rows referencing it stay and render as unknown.
func (r userRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(t *tables) error {
		if _, ok := t.users[id]; !ok {
			return output.ErrNotFound
		}
		delete(t.users, id)
		return nil
	})
}
