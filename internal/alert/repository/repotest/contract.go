// Package repotest holds the behaviour every alert repository must share.
package repotest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"alert-srv/internal/alert/repository"
	"alert-srv/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tenantID = "6f1c2a8e-3b7d-4c55-9a1e-2f4b8d0c9e71"

var base = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// NewAlert returns an unread alert of ruleID created at createdAt with a 24h lifetime.
func NewAlert(id, ruleID string, createdAt time.Time) model.Alert {
	return model.Alert{
		ID:               id,
		TenantID:         tenantID,
		RuleID:           ruleID,
		Category:         model.CategoryFinancial,
		Severity:         model.SeverityHigh,
		Title:            "Factures en Retard de Paiement",
		CreatedAt:        createdAt,
		ExpiresAt:        createdAt.Add(24 * time.Hour),
		AutomatedActions: []model.AutomatedActionState{model.NewPendingAction("send_payment_reminders")},
	}
}

// Run exercises newRepo against the repository contract.
func Run(t *testing.T, newRepo func() repository.Repository) {
	t.Run("dedup while active", func(t *testing.T) {
		repo := newRepo()
		ctx := context.Background()

		ok, err := repo.InsertIfAbsent(ctx, NewAlert("a1", "overdue_invoices", base))
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.InsertIfAbsent(ctx, NewAlert("a2", "overdue_invoices", base.Add(time.Minute)))
		require.NoError(t, err)
		assert.False(t, ok, "second alert of an active rule must be suppressed")

		ok, err = repo.InsertIfAbsent(ctx, NewAlert("b1", "project_delays", base.Add(time.Minute)))
		require.NoError(t, err)
		assert.True(t, ok, "other rules are independent")

		list, err := repo.List(ctx, repository.ListOptions{TenantID: tenantID, Now: base.Add(time.Minute)})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "a1", list[0].ID)
		assert.Equal(t, "b1", list[1].ID)
	})

	t.Run("read alert releases its rule", func(t *testing.T) {
		repo := newRepo()
		ctx := context.Background()

		_, err := repo.InsertIfAbsent(ctx, NewAlert("a1", "overdue_invoices", base))
		require.NoError(t, err)

		a, err := repo.Get(ctx, tenantID, "a1")
		require.NoError(t, err)
		a.IsRead = true
		require.NoError(t, repo.Update(ctx, repository.UpdateOptions{Alert: a, Now: base.Add(time.Minute)}))

		ok, err := repo.InsertIfAbsent(ctx, NewAlert("a2", "overdue_invoices", base.Add(2*time.Minute)))
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := repo.Get(ctx, tenantID, "a1")
		require.NoError(t, err)
		assert.True(t, got.IsRead)
	})

	t.Run("expired alerts are neither listed nor blocking", func(t *testing.T) {
		repo := newRepo()
		ctx := context.Background()

		_, err := repo.InsertIfAbsent(ctx, NewAlert("a1", "overdue_invoices", base))
		require.NoError(t, err)
		later := base.Add(25 * time.Hour)

		list, err := repo.List(ctx, repository.ListOptions{TenantID: tenantID, Now: later})
		require.NoError(t, err)
		assert.Empty(t, list)

		ok, err := repo.InsertIfAbsent(ctx, NewAlert("a2", "overdue_invoices", later))
		require.NoError(t, err)
		assert.True(t, ok)

		n, err := repo.Purge(ctx, repository.PurgeOptions{TenantID: tenantID, Now: later})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1)

		_, err = repo.Get(ctx, tenantID, "a1")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		_, err = repo.Get(ctx, tenantID, "a2")
		assert.NoError(t, err)
	})

	t.Run("update of unknown or expired alert", func(t *testing.T) {
		repo := newRepo()
		ctx := context.Background()

		err := repo.Update(ctx, repository.UpdateOptions{Alert: NewAlert("nope", "x", base), Now: base})
		assert.ErrorIs(t, err, repository.ErrNotFound)

		a := NewAlert("a1", "overdue_invoices", base)
		_, err = repo.InsertIfAbsent(ctx, a)
		require.NoError(t, err)
		err = repo.Update(ctx, repository.UpdateOptions{Alert: a, Now: base.Add(48 * time.Hour)})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("stale version is rejected", func(t *testing.T) {
		repo := newRepo()
		ctx := context.Background()

		_, err := repo.InsertIfAbsent(ctx, NewAlert("a1", "overdue_invoices", base))
		require.NoError(t, err)
		first, err := repo.Get(ctx, tenantID, "a1")
		require.NoError(t, err)
		second, err := repo.Get(ctx, tenantID, "a1")
		require.NoError(t, err)

		first.AutomatedActions[0].Status = model.ActionStatusExecuting
		require.NoError(t, repo.Update(ctx, repository.UpdateOptions{Alert: first, Now: base}))

		second.AutomatedActions[0].Status = model.ActionStatusExecuting
		err = repo.Update(ctx, repository.UpdateOptions{Alert: second, Now: base})
		assert.ErrorIs(t, err, repository.ErrConflict)

		got, err := repo.Get(ctx, tenantID, "a1")
		require.NoError(t, err)
		assert.Equal(t, first.Version+1, got.Version)

		got.IsActioned = true
		assert.NoError(t, repo.Update(ctx, repository.UpdateOptions{Alert: got, Now: base}))
	})

	t.Run("concurrent updates of one version apply once", func(t *testing.T) {
		repo := newRepo()
		ctx := context.Background()

		_, err := repo.InsertIfAbsent(ctx, NewAlert("a1", "overdue_invoices", base))
		require.NoError(t, err)
		read, err := repo.Get(ctx, tenantID, "a1")
		require.NoError(t, err)

		var wg sync.WaitGroup
		var mu sync.Mutex
		applied := 0
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				a := read
				a.AutomatedActions = []model.AutomatedActionState{model.NewPendingAction("send_payment_reminders")}
				a.AutomatedActions[0].Status = model.ActionStatusExecuting
				err := repo.Update(ctx, repository.UpdateOptions{Alert: a, Now: base})
				if err == nil {
					mu.Lock()
					applied++
					mu.Unlock()
					return
				}
				assert.ErrorIs(t, err, repository.ErrConflict)
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, applied)
	})

	t.Run("stored alerts are copies", func(t *testing.T) {
		repo := newRepo()
		ctx := context.Background()

		a := NewAlert("a1", "overdue_invoices", base)
		_, err := repo.InsertIfAbsent(ctx, a)
		require.NoError(t, err)
		a.AutomatedActions[0].Status = model.ActionStatusFailed

		got, err := repo.Get(ctx, tenantID, "a1")
		require.NoError(t, err)
		assert.Equal(t, model.ActionStatusPending, got.AutomatedActions[0].Status)
	})

	t.Run("concurrent inserts admit one alert per rule", func(t *testing.T) {
		repo := newRepo()
		ctx := context.Background()

		var wg sync.WaitGroup
		var mu sync.Mutex
		admitted := 0
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				ok, err := repo.InsertIfAbsent(ctx, NewAlert(fmt.Sprintf("a%d", i), "overdue_invoices", base))
				assert.NoError(t, err)
				if ok {
					mu.Lock()
					admitted++
					mu.Unlock()
				}
			}(i)
		}
		wg.Wait()
		assert.Equal(t, 1, admitted)
	})
}
