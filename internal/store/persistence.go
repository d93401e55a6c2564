package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nhle/taskflow/internal/model"
)

// Storage keys. Task collections are namespaced per user id.
const (
	UsersKey       = "taskflow_users"
	SessionKey     = "taskflow_current_user"
	TasksKeyPrefix = "taskflow_tasks_"
)

// ErrMalformed wraps every failure to decode or validate a stored document.
// Loads that fail this way return no partial data.
var ErrMalformed = errors.New("malformed persisted data")

// TasksKey returns the key holding the task collection of userID.
func TasksKey(userID string) string {
	return TasksKeyPrefix + userID
}

// Persistence serializes tasks, the credential table and the session
// record to JSON documents in a KV. Every save overwrites the whole
// document under its key.
type Persistence struct {
	kv     KV
	logger logrus.FieldLogger
}

// NewPersistence creates a persistence adapter over kv.
func NewPersistence(kv KV, logger logrus.FieldLogger) *Persistence {
	return &Persistence{kv: kv, logger: logger}
}

// LoadTasks reads the task collection of userID. A missing slot yields an
// empty collection.
func (p *Persistence) LoadTasks(ctx context.Context, userID string) ([]model.Task, error) {
	key := TasksKey(userID)

	var tasks []model.Task
	found, err := p.load(ctx, key, &tasks)
	if err != nil {
		return nil, err
	}
	if !found || tasks == nil {
		return []model.Task{}, nil
	}

	seen := make(map[string]bool, len(tasks))
	for i, t := range tasks {
		if err := t.Validate(); err != nil {
			return nil, malformed(key, fmt.Errorf("task %d: %w", i, err))
		}
		if seen[t.ID] {
			return nil, malformed(key, fmt.Errorf("task %d: duplicate id %s", i, t.ID))
		}
		seen[t.ID] = true
	}

	p.logger.WithFields(logrus.Fields{"key": key, "count": len(tasks)}).Debug("loaded tasks")
	return tasks, nil
}

// SaveTasks overwrites the task collection of userID.
func (p *Persistence) SaveTasks(ctx context.Context, userID string, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	key := TasksKey(userID)
	if err := p.save(ctx, key, tasks); err != nil {
		return err
	}
	p.logger.WithFields(logrus.Fields{"key": key, "count": len(tasks)}).Debug("saved tasks")
	return nil
}

// LoadUsers reads the credential table. A missing slot yields an empty table.
func (p *Persistence) LoadUsers(ctx context.Context) (model.CredentialTable, error) {
	var table model.CredentialTable
	found, err := p.load(ctx, UsersKey, &table)
	if err != nil {
		return nil, err
	}
	if !found || table == nil {
		return model.CredentialTable{}, nil
	}

	for email, cred := range table {
		if cred.User.ID == "" {
			return nil, malformed(UsersKey, fmt.Errorf("account %s has no user id", email))
		}
		if email != model.NormalizeEmail(email) || email != cred.User.Email {
			return nil, malformed(UsersKey, fmt.Errorf("account key %s does not match email %q", email, cred.User.Email))
		}
	}
	return table, nil
}

// SaveUsers overwrites the credential table.
func (p *Persistence) SaveUsers(ctx context.Context, table model.CredentialTable) error {
	if table == nil {
		table = model.CredentialTable{}
	}
	return p.save(ctx, UsersKey, table)
}

// LoadSession returns the logged-in user, or nil when nobody is logged in.
func (p *Persistence) LoadSession(ctx context.Context) (*model.User, error) {
	var user model.User
	found, err := p.load(ctx, SessionKey, &user)
	if err != nil || !found {
		return nil, err
	}
	if user.ID == "" || user.Email == "" {
		return nil, malformed(SessionKey, errors.New("session user has no id or email"))
	}
	return &user, nil
}

// SaveSession records user as the logged-in user.
func (p *Persistence) SaveSession(ctx context.Context, user model.User) error {
	return p.save(ctx, SessionKey, user)
}

// ClearSession removes the session record.
func (p *Persistence) ClearSession(ctx context.Context) error {
	if err := p.kv.Delete(ctx, SessionKey); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// load decodes the document under key into dst. It reports false when the
// key is absent.
func (p *Persistence) load(ctx context.Context, key string, dst any) (bool, error) {
	data, err := p.kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("loading %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, malformed(key, err)
	}
	return true, nil
}

// save encodes v and writes it under key.
func (p *Persistence) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := p.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

func malformed(key string, err error) error {
	return fmt.Errorf("%w in %s: %w", ErrMalformed, key, err)
}
